// Package api issues authenticated HTTP requests against the backend. All
// response-shape defensiveness lives here: callers get typed values or a typed
// error, never a raw body to re-interpret.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"zocial/internal/session"
	"zocial/models"
)

// Upload is a file attached to a multipart request.
type Upload struct {
	Name   string
	Reader io.Reader
}

// Client talks to one backend origin on behalf of one session store.
type Client struct {
	http  *http.Client
	store *session.Store
}

// NewClient builds a client for the given origin. The session store may be nil
// for unauthenticated use; requests then carry no Authorization header.
func NewClient(baseURL string, store *session.Store) *Client {
	token := func() string {
		if store == nil {
			return ""
		}
		sess, ok := store.Get()
		if !ok {
			return ""
		}
		return sess.Token
	}

	return &Client{
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &transport{baseURL: baseURL, token: token},
		},
		store: store,
	}
}

// Request sends a JSON request and returns the raw response body. body may be
// nil. Non-2xx responses become *models.HTTPError; there is no retry.
func (c *Client) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("json marshal error: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	return c.do(req)
}

// RequestMultipart sends a multipart form POST, used for image attachments.
func (c *Client) RequestMultipart(ctx context.Context, path string, fields map[string]string, file *Upload) (json.RawMessage, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if file != nil {
		part, err := w.CreateFormFile("image", file.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &models.HTTPError{
			Status:  res.StatusCode,
			Message: errorMessage(raw),
		}
	}
	return raw, nil
}

// errorMessage pulls the server's "message" field out of an error body,
// accepting "error" as a fallback spelling. Anything else gets a generic line.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return "request failed"
}

// decodePostList accepts the three shapes the backend has been seen returning
// for a post collection: a bare array, or an object wrapping it under "posts"
// or "data". The fallback is resolved once here, not by every caller.
func decodePostList(raw json.RawMessage) ([]models.Post, error) {
	var posts []models.Post
	if err := json.Unmarshal(raw, &posts); err == nil {
		return posts, nil
	}

	var wrapped struct {
		Posts []models.Post `json:"posts"`
		Data  []models.Post `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, models.ErrMalformedResponse
	}
	if wrapped.Posts != nil {
		return wrapped.Posts, nil
	}
	if wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return nil, models.ErrMalformedResponse
}
