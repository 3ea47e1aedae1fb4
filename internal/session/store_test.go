package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zocial/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGetAbsentWhenEmpty(t *testing.T) {
	store := openTestStore(t)

	_, ok := store.Get()
	assert.False(t, ok)

	_, err := store.Require()
	assert.ErrorIs(t, err, models.ErrNoSession)
}

func TestSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)

	want := models.Session{
		Token: "tok-123",
		User:  models.User{ID: 7, Name: "Alice", Email: "alice@example.com"},
	}
	require.NoError(t, store.SetSession(want))

	got, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, want, got)

	got, err := store.Require()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", got.Token)
}

func TestGetAbsentWhenPartial(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"token only", "token", "tok-123"},
		{"user only", "user", `{"id":1,"name":"Alice"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openTestStore(t)
			require.NoError(t, store.SetValue(tt.key, tt.value))

			_, ok := store.Get()
			assert.False(t, ok)
		})
	}
}

func TestGetAbsentWhenUserMalformed(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.SetValue("token", "tok-123"))
	require.NoError(t, store.SetValue("user", "{not json"))

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.SetSession(models.Session{
		Token: "tok-123",
		User:  models.User{ID: 1, Name: "Alice"},
	}))
	require.NoError(t, store.SetValue(KeyFullName, "Alice Doe"))

	require.NoError(t, store.Clear())

	_, ok := store.Get()
	assert.False(t, ok)

	// Settings keys survive a logout.
	name, ok := store.Value(KeyFullName)
	require.True(t, ok)
	assert.Equal(t, "Alice Doe", name)
}

func TestSettingsKeys(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SetValue(KeyNotif, "on"))
	got, ok := store.Value(KeyNotif)
	require.True(t, ok)
	assert.Equal(t, "on", got)

	// Overwrite sticks.
	require.NoError(t, store.SetValue(KeyNotif, "off"))
	got, _ = store.Value(KeyNotif)
	assert.Equal(t, "off", got)
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SetSession(models.Session{
		Token: "tok-123",
		User:  models.User{ID: 1, Name: "Alice"},
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	sess, ok := reopened.Get()
	require.True(t, ok)
	assert.Equal(t, "Alice", sess.User.Name)
}
