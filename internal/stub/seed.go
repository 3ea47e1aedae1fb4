package stub

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the password every seeded account gets.
const SeedPassword = "password123"

// Seed fills the stub with fake users and posts for local development. The
// first seeded account is admin@example.com.
func Seed(db *gorm.DB, users, posts int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seeded := make([]userRecord, 0, users)
	for i := 0; i < users; i++ {
		user := userRecord{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("user%d@example.com", i+1),
			Password: string(hash),
			Avatar:   gofakeit.ImageURL(128, 128),
		}
		if i == 0 {
			user.Name = "Admin"
			user.Email = "admin@example.com"
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		seeded = append(seeded, user)
	}

	for i := 0; i < posts; i++ {
		author := seeded[gofakeit.Number(0, len(seeded)-1)]
		post := postRecord{
			ID:        uuid.NewString(),
			AuthorID:  author.ID,
			Content:   gofakeit.Sentence(12),
			CreatedAt: time.Now().UTC().Add(-time.Duration(i) * time.Minute),
		}
		if gofakeit.Bool() {
			post.Image = gofakeit.ImageURL(640, 480)
		}
		if err := db.Create(&post).Error; err != nil {
			return err
		}
	}
	return nil
}
