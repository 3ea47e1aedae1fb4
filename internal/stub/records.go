package stub

import (
	"time"

	"zocial/models"
)

type userRecord struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Avatar   string
}

func (userRecord) TableName() string { return "users" }

func (u userRecord) toUser() models.User {
	return models.User{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

type postRecord struct {
	ID        string `gorm:"primaryKey"`
	AuthorID  uint   `gorm:"not null;index"`
	Author    userRecord `gorm:"foreignKey:AuthorID"`
	Content   string
	Image     string
	CreatedAt time.Time
}

func (postRecord) TableName() string { return "posts" }

func (p postRecord) toPost() models.Post {
	return models.Post{
		ID:        p.ID,
		Author:    p.Author.toUser(),
		Content:   p.Content,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
	}
}

type productRecord struct {
	ID    string `gorm:"primaryKey"`
	Name  string `gorm:"not null"`
	Price float64
	Image string
}

func (productRecord) TableName() string { return "products" }

func (p productRecord) toProduct() models.Product {
	return models.Product{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image}
}

type orderRecord struct {
	ID        string `gorm:"primaryKey"`
	ProductID string `gorm:"not null"`
	Buyer     string
	CreatedAt time.Time
}

func (orderRecord) TableName() string { return "orders" }

func (o orderRecord) toOrder() models.Order {
	return models.Order{ID: o.ID, ProductID: o.ProductID, Buyer: o.Buyer, CreatedAt: o.CreatedAt}
}
