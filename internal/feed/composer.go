package feed

import (
	"context"
	"log/slog"
	"strings"

	"zocial/internal/api"
	"zocial/models"
)

// PostCreator is the slice of the API client the composer needs.
type PostCreator interface {
	CreatePost(ctx context.Context, content string, image *api.Upload) (models.Post, error)
}

// Emitter publishes realtime events. realtime.Channel satisfies it.
type Emitter interface {
	Emit(tag string, payload any) error
}

// Composer submits new posts and reflects the result locally before anyone
// else sees it.
type Composer struct {
	client   PostCreator
	renderer *Renderer
	channel  Emitter
	logger   *slog.Logger
}

// NewComposer wires a composer to its collaborators. channel may be nil when
// no realtime connection is up; the post still submits and renders locally.
func NewComposer(client PostCreator, renderer *Renderer, channel Emitter) *Composer {
	return &Composer{
		client:   client,
		renderer: renderer,
		channel:  channel,
		logger:   slog.Default(),
	}
}

// Submit validates and sends a new post. At least one of content or image is
// required; failing that is a local validation error and no network call is
// made. On success the returned post is appended to the renderer and announced
// over the channel; on API failure nothing is consumed, so the caller can
// retry with the same input.
func (c *Composer) Submit(ctx context.Context, content string, image *api.Upload) (models.Post, error) {
	if strings.TrimSpace(content) == "" && image == nil {
		return models.Post{}, models.NewValidationError("a post needs text or an image")
	}

	post, err := c.client.CreatePost(ctx, content, image)
	if err != nil {
		return models.Post{}, err
	}

	c.renderer.Append(post)

	if c.channel != nil {
		// At-most-once: a failed emit does not undo the local append.
		if err := c.channel.Emit(models.TagNewPost, post); err != nil {
			c.logger.Warn("new-post broadcast failed", "post_id", post.ID, "error", err)
		}
	}
	return post, nil
}
