package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"zocial/models"
)

type credentialsRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and returns the session the server issued. The caller is
// responsible for persisting it.
func (c *Client) Login(ctx context.Context, email, password string) (models.Session, error) {
	return c.auth(ctx, "/auth/login", credentialsRequest{Email: email, Password: password})
}

// Register creates an account and returns the session the server issued.
func (c *Client) Register(ctx context.Context, name, email, password string) (models.Session, error) {
	return c.auth(ctx, "/auth/register", credentialsRequest{Name: name, Email: email, Password: password})
}

// auth posts credentials, falling back to the /api-prefixed variant when the
// bare path is not routed on this deployment.
func (c *Client) auth(ctx context.Context, path string, req credentialsRequest) (models.Session, error) {
	raw, err := c.Request(ctx, http.MethodPost, path, req)
	var httpErr *models.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
		raw, err = c.Request(ctx, http.MethodPost, "/api"+path, req)
	}
	if err != nil {
		return models.Session{}, err
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil || sess.Token == "" {
		return models.Session{}, models.ErrMalformedResponse
	}
	return sess, nil
}

// Posts fetches the post collection.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/api/posts", nil)
	if err != nil {
		return nil, err
	}
	return decodePostList(raw)
}

// CreatePost submits a new post as a multipart form; image may be nil.
func (c *Client) CreatePost(ctx context.Context, content string, image *Upload) (models.Post, error) {
	raw, err := c.RequestMultipart(ctx, "/api/posts", map[string]string{"content": content}, image)
	if err != nil {
		return models.Post{}, err
	}

	var post models.Post
	if err := json.Unmarshal(raw, &post); err != nil {
		return models.Post{}, models.ErrMalformedResponse
	}
	return post, nil
}

// Users lists all accounts. The endpoint is admin-only server-side.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, models.ErrMalformedResponse
	}
	return users, nil
}

// DeleteUser removes an account by id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.Request(ctx, http.MethodDelete, "/api/users/"+id, nil)
	return err
}

// Products lists the shop catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/api/products", nil)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, models.ErrMalformedResponse
	}
	return products, nil
}

// CreateProduct adds a catalog entry.
func (c *Client) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	raw, err := c.Request(ctx, http.MethodPost, "/api/products", p)
	if err != nil {
		return models.Product{}, err
	}
	var created models.Product
	if err := json.Unmarshal(raw, &created); err != nil {
		return models.Product{}, models.ErrMalformedResponse
	}
	return created, nil
}

// DeleteProduct removes a catalog entry by id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.Request(ctx, http.MethodDelete, "/api/products/"+id, nil)
	return err
}

// Orders lists placed orders.
func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/api/orders", nil)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, models.ErrMalformedResponse
	}
	return orders, nil
}

// CreateOrder places an order.
func (c *Client) CreateOrder(ctx context.Context, o models.Order) (models.Order, error) {
	raw, err := c.Request(ctx, http.MethodPost, "/api/orders", o)
	if err != nil {
		return models.Order{}, err
	}
	var placed models.Order
	if err := json.Unmarshal(raw, &placed); err != nil {
		return models.Order{}, models.ErrMalformedResponse
	}
	return placed, nil
}
