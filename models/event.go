package models

import "encoding/json"

// Realtime event tags. Within a tag, delivery order matches emission order on a
// single connection; nothing is guaranteed across tags.
const (
	TagChat    = "chat"
	TagLike    = "like"
	TagComment = "comment"
	TagNewPost = "new-post"
)

// Event is the wire envelope for realtime traffic: a tag plus a tag-specific
// payload left raw until a handler decodes it.
type Event struct {
	Tag  string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

// NewEvent wraps a payload into an Event envelope.
func NewEvent(tag string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Tag: tag, Data: data}, nil
}

// ChatPayload is the payload carried by TagChat events. The server echoes it to
// all participants, including the sender.
type ChatPayload struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// ReactionPayload is the payload carried by TagLike and TagComment events: the
// acting user, the target post, and the comment text when there is one.
type ReactionPayload struct {
	User   string `json:"user"`
	PostID string `json:"post_id"`
	Text   string `json:"text,omitempty"`
}
