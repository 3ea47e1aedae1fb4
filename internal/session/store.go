// Package session persists the authenticated identity between client runs. It
// is the local analog of the browser's key/value storage: a small entries table
// holding the bearer token, the current user, and a few legacy settings keys.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"zocial/models"
)

const (
	keyToken = "token"
	keyUser  = "user"

	// Legacy settings keys carried over from the original client.
	KeyNotif    = "zm_notif"
	KeyFullName = "zm_fullname"
)

// Entry is one persisted key/value pair.
type Entry struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// Store is an explicitly constructed session store. There is no package-level
// singleton: tests and independent sessions each open their own.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the store at path. Parent directories are
// created so the default location under the home directory works first run.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Value reads an arbitrary key. The second return is false when the key is
// absent.
func (s *Store) Value(key string) (string, bool) {
	var e Entry
	if err := s.db.First(&e, "key = ?", key).Error; err != nil {
		return "", false
	}
	return e.Value, true
}

// SetValue writes an arbitrary key.
func (s *Store) SetValue(key, value string) error {
	return s.db.Save(&Entry{Key: key, Value: value}).Error
}

// Get reads the stored session. It returns absent when either the token or the
// user entry is missing, or when the user entry does not parse.
func (s *Store) Get() (models.Session, bool) {
	token, ok := s.Value(keyToken)
	if !ok || token == "" {
		return models.Session{}, false
	}
	raw, ok := s.Value(keyUser)
	if !ok {
		return models.Session{}, false
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return models.Session{}, false
	}
	return models.Session{Token: token, User: user}, true
}

// Require returns the session or models.ErrNoSession. Callers treat the error
// as terminal for the gated operation: no data fetch happens after it.
func (s *Store) Require() (models.Session, error) {
	sess, ok := s.Get()
	if !ok {
		return models.Session{}, models.ErrNoSession
	}
	return sess, nil
}

// SetSession stores the token and user together, as written at login.
func (s *Store) SetSession(sess models.Session) error {
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	if err := s.SetValue(keyToken, sess.Token); err != nil {
		return err
	}
	return s.SetValue(keyUser, string(raw))
}

// Clear removes the token and user entries; subsequent Get calls return
// absent. Settings keys survive a logout.
func (s *Store) Clear() error {
	err := s.db.Delete(&Entry{}, "key IN ?", []string{keyToken, keyUser}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
