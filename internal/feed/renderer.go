// Package feed turns the post collection into rendered cards and handles new
// post submission. Rendering is plain HTML fragments written to an io.Writer;
// all user text is escaped on the way in.
package feed

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"zocial/models"
)

// PostLister is the slice of the API client the renderer needs.
type PostLister interface {
	Posts(ctx context.Context) ([]models.Post, error)
}

// Renderer fetches, orders and projects posts into cards. State is guarded so
// Append may run from the realtime pump goroutine while the owner renders.
type Renderer struct {
	client PostLister

	mu      sync.Mutex
	posts   []models.Post
	loadErr error
	gen     uint64
}

// NewRenderer builds a renderer over the given client.
func NewRenderer(client PostLister) *Renderer {
	return &Renderer{client: client}
}

// LoadPosts fetches the collection, orders it newest first (stable, so equal
// timestamps keep arrival order) and replaces the renderer's contents. When
// loads overlap, only the most recently started one may apply its result;
// stale responses are discarded.
func (r *Renderer) LoadPosts(ctx context.Context) error {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	posts, err := r.client.Posts(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		// a newer load superseded this one
		return nil
	}
	if err != nil {
		r.loadErr = err
		r.posts = nil
		return err
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	r.posts = posts
	r.loadErr = nil
	return nil
}

// Append inserts a realtime-pushed post at the top slot without refetching or
// resorting the rest of the feed.
func (r *Renderer) Append(post models.Post) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = append([]models.Post{post}, r.posts...)
}

// Posts returns a copy of the current ordering.
func (r *Renderer) Posts() []models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Post, len(r.posts))
	copy(out, r.posts)
	return out
}

// Render writes the feed as cards. A failed load renders an inline error in
// place of the feed; an empty collection renders a single placeholder card.
func (r *Renderer) Render(w io.Writer) error {
	r.mu.Lock()
	posts := make([]models.Post, len(r.posts))
	copy(posts, r.posts)
	loadErr := r.loadErr
	r.mu.Unlock()

	if loadErr != nil {
		_, err := fmt.Fprintf(w, "<div class=\"feed-error\">Could not load the feed: %s</div>\n", EscapeText(loadErr.Error()))
		return err
	}
	if len(posts) == 0 {
		_, err := fmt.Fprint(w, "<div class=\"feed-empty\">No posts yet.</div>\n")
		return err
	}

	for _, post := range posts {
		if err := RenderCard(w, post); err != nil {
			return err
		}
	}
	return nil
}

// HTML renders into a string.
func (r *Renderer) HTML() string {
	var b strings.Builder
	_ = r.Render(&b)
	return b.String()
}

// RenderCard projects one post. A post with a missing author or content gets
// placeholders rather than being dropped.
func RenderCard(w io.Writer, post models.Post) error {
	author := post.Author.Name
	if author == "" {
		author = "unknown"
	}
	content := post.Content
	if content == "" && post.Image == "" {
		content = "(no content)"
	}

	if _, err := fmt.Fprintf(w, "<article class=\"post-card\" data-id=\"%s\">\n", EscapeText(post.ID)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  <header>%s · %s</header>\n", EscapeText(author), post.CreatedAt.Format("2006-01-02 15:04")); err != nil {
		return err
	}
	if content != "" {
		if _, err := fmt.Fprintf(w, "  <p>%s</p>\n", EscapeText(content)); err != nil {
			return err
		}
	}
	if post.Image != "" {
		if _, err := fmt.Fprintf(w, "  <img src=\"%s\" alt=\"\">\n", EscapeText(post.Image)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "  <footer>%d likes · %d comments</footer>\n</article>\n", post.LikesCount, post.CommentsCount); err != nil {
		return err
	}
	return nil
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeText replaces markup-significant characters with their entity forms so
// raw user text never reaches a rendered card.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}
