package feed

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zocial/internal/api"
	"zocial/internal/realtime"
	"zocial/models"
)

type fakeCreator struct {
	calls int
	post  models.Post
	err   error
}

func (f *fakeCreator) CreatePost(ctx context.Context, content string, image *api.Upload) (models.Post, error) {
	f.calls++
	if f.err != nil {
		return models.Post{}, f.err
	}
	return f.post, nil
}

type fakeEmitter struct {
	events []models.Event
	err    error
}

func (f *fakeEmitter) Emit(tag string, payload any) error {
	if f.err != nil {
		return f.err
	}
	evt, _ := models.NewEvent(tag, payload)
	f.events = append(f.events, evt)
	return nil
}

func TestSubmitEmptyFailsValidationLocally(t *testing.T) {
	creator := &fakeCreator{}
	emitter := &fakeEmitter{}
	renderer := NewRenderer(staticLister(nil))
	composer := NewComposer(creator, renderer, emitter)

	_, err := composer.Submit(context.Background(), "", nil)
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))

	// No network call, nothing rendered, nothing broadcast.
	assert.Zero(t, creator.calls)
	assert.Empty(t, renderer.Posts())
	assert.Empty(t, emitter.events)
}

func TestSubmitWhitespaceOnlyFailsValidation(t *testing.T) {
	creator := &fakeCreator{}
	composer := NewComposer(creator, NewRenderer(staticLister(nil)), nil)

	_, err := composer.Submit(context.Background(), "   \t\n", nil)
	assert.True(t, models.IsValidation(err))
	assert.Zero(t, creator.calls)
}

func TestSubmitImageOnlyIsValid(t *testing.T) {
	creator := &fakeCreator{post: models.Post{ID: "p1", Image: "/uploads/pic.png"}}
	composer := NewComposer(creator, NewRenderer(staticLister(nil)), nil)

	_, err := composer.Submit(context.Background(), "", &api.Upload{Name: "pic.png"})
	require.NoError(t, err)
	assert.Equal(t, 1, creator.calls)
}

func TestSubmitAppendsAndBroadcasts(t *testing.T) {
	created := models.Post{
		ID:        "p1",
		Author:    models.User{Name: "Alice"},
		Content:   "hello",
		CreatedAt: time.Now().UTC(),
	}
	creator := &fakeCreator{post: created}
	emitter := &fakeEmitter{}
	renderer := NewRenderer(staticLister(nil))
	composer := NewComposer(creator, renderer, emitter)

	post, err := composer.Submit(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, created, post)
	assert.Equal(t, 1, creator.calls)

	got := renderer.Posts()
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)

	require.Len(t, emitter.events, 1)
	assert.Equal(t, models.TagNewPost, emitter.events[0].Tag)
	var echoed models.Post
	require.NoError(t, json.Unmarshal(emitter.events[0].Data, &echoed))
	assert.Equal(t, "p1", echoed.ID)
}

func TestSubmitAPIFailureLeavesStateIntact(t *testing.T) {
	creator := &fakeCreator{err: &models.HTTPError{Status: 500, Message: "boom"}}
	emitter := &fakeEmitter{}
	renderer := NewRenderer(staticLister(nil))
	composer := NewComposer(creator, renderer, emitter)

	_, err := composer.Submit(context.Background(), "hello", nil)
	var httpErr *models.HTTPError
	require.ErrorAs(t, err, &httpErr)

	assert.Empty(t, renderer.Posts())
	assert.Empty(t, emitter.events)
}

func TestSubmitEmitFailureKeepsLocalAppend(t *testing.T) {
	creator := &fakeCreator{post: models.Post{ID: "p1", Content: "hello"}}
	emitter := &fakeEmitter{err: errors.New("connection lost")}
	renderer := NewRenderer(staticLister(nil))
	composer := NewComposer(creator, renderer, emitter)

	post, err := composer.Submit(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "p1", post.ID)
	assert.Len(t, renderer.Posts(), 1)
}

type fakeChannel struct {
	handlers map[string][]realtime.Handler
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{handlers: make(map[string][]realtime.Handler)}
}

func (f *fakeChannel) On(tag string, h realtime.Handler) {
	f.handlers[tag] = append(f.handlers[tag], h)
}

// Emit loops the event straight back, like the server echo does.
func (f *fakeChannel) Emit(tag string, payload any) error {
	evt, err := models.NewEvent(tag, payload)
	if err != nil {
		return err
	}
	for _, h := range f.handlers[evt.Tag] {
		h(evt.Data)
	}
	return nil
}

func TestChatLogRecordsEcho(t *testing.T) {
	channel := newFakeChannel()
	chatLog := NewChatLog(channel)

	var notified []models.ChatMessage
	chatLog.OnMessage = func(m models.ChatMessage) {
		notified = append(notified, m)
	}

	require.NoError(t, chatLog.Send("Alice", "hi there"))
	require.NoError(t, chatLog.Send("Alice", "anyone home?"))

	msgs := chatLog.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, models.ChatMessage{Author: "Alice", Text: "hi there"}, msgs[0])
	assert.Equal(t, models.ChatMessage{Author: "Alice", Text: "anyone home?"}, msgs[1])
	assert.Equal(t, msgs, notified)
}
