package models

// ChatMessage is a single chat line. It is never persisted client-side and
// exists only for the lifetime of the realtime connection's in-memory log.
type ChatMessage struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}
