package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zocial/internal/session"
	"zocial/models"
)

func testStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRequestAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	store := testStore(t)
	require.NoError(t, store.SetSession(models.Session{
		Token: "tok-123",
		User:  models.User{ID: 1, Name: "Alice"},
	}))

	client := NewClient(srv.URL, store)
	_, err := client.Request(context.Background(), http.MethodGet, "/api/posts", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestRequestWithoutSessionSendsNoAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.Request(context.Background(), http.MethodGet, "/api/products", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestHTTPErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", 401, `{"message":"Invalid email or password"}`, "Invalid email or password"},
		{"error field fallback", 400, `{"error":"Bad input"}`, "Bad input"},
		{"no body", 500, ``, "request failed"},
		{"non-json body", 502, `upstream exploded`, "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, nil)
			_, err := client.Request(context.Background(), http.MethodGet, "/x", nil)

			var httpErr *models.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestDecodePostList(t *testing.T) {
	post := `{"id":"p1","author":{"name":"Alice"},"content":"hi","created_at":"2024-05-01T10:00:00Z"}`

	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"bare array", `[` + post + `]`, 1, false},
		{"wrapped in posts", `{"posts":[` + post + `]}`, 1, false},
		{"wrapped in data", `{"data":[` + post + `]}`, 1, false},
		{"empty array", `[]`, 0, false},
		{"empty wrapped", `{"posts":[]}`, 0, false},
		{"unrelated object", `{"whatever":1}`, 0, true},
		{"scalar", `42`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := decodePostList(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Len(t, posts, tt.want)
		})
	}
}

func TestPostsDecodesWrappedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts", r.URL.Path)
		_, _ = w.Write([]byte(`{"posts":[{"id":"p1","author":{"name":"Alice"},"content":"hi"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	posts, err := client.Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Alice", posts[0].Author.Name)
}

func TestLoginFallsBackToAPIPrefix(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/auth/login" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok-123","user":{"id":1,"name":"Alice"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	sess, err := client.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", sess.Token)
	assert.Equal(t, []string{"/auth/login", "/api/auth/login"}, paths)
}

func TestLoginRejectsTokenlessResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"id":1}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.Login(context.Background(), "alice@example.com", "pw")
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
}

func TestCreatePostSendsMultipart(t *testing.T) {
	created := models.Post{ID: "p1", Author: models.User{Name: "Alice"}, Content: "hello", CreatedAt: time.Now().UTC()}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "hello", r.FormValue("content"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "pic.png", header.Filename)
		data, _ := io.ReadAll(file)
		assert.Equal(t, "fake-image-bytes", string(data))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	post, err := client.CreatePost(context.Background(), "hello", &Upload{
		Name:   "pic.png",
		Reader: strings.NewReader("fake-image-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", post.ID)
}

func TestCreatePostWithoutImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "text only", r.FormValue("content"))
		_, _, err := r.FormFile("image")
		assert.Error(t, err)

		_ = json.NewEncoder(w).Encode(models.Post{ID: "p2", Content: "text only"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	post, err := client.CreatePost(context.Background(), "text only", nil)
	require.NoError(t, err)
	assert.Equal(t, "p2", post.ID)
}
