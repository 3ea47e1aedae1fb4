package models

import (
	"time"
)

// Post is a feed entry as returned by the backend. Posts are immutable from the
// client's perspective; identifiers and timestamps are assigned server-side, and
// the like/comment counters are derived there too.
type Post struct {
	ID            string    `json:"id"`
	Author        User      `json:"author"`
	Content       string    `json:"content"`
	Image         string    `json:"image,omitempty"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Product is a shop catalog entry.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

// Order records a product purchase.
type Order struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Buyer     string    `json:"buyer"`
	CreatedAt time.Time `json:"created_at"`
}
