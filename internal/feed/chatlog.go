package feed

import (
	"encoding/json"
	"sync"

	"zocial/internal/realtime"
	"zocial/models"
)

// Receiver registers handlers for realtime tags. realtime.Channel satisfies it.
type Receiver interface {
	Emitter
	On(tag string, h realtime.Handler)
}

// ChatLog is the in-memory message log for one realtime connection. It holds
// nothing across connections and persists nothing.
type ChatLog struct {
	channel Receiver

	mu       sync.Mutex
	messages []models.ChatMessage

	// OnMessage, when set, is called for every received message after it is
	// logged. Set it before any traffic arrives.
	OnMessage func(models.ChatMessage)
}

// NewChatLog binds a log to a channel's chat tag. Sent messages show up via
// the server echo like everyone else's, so Send does not append locally.
func NewChatLog(channel Receiver) *ChatLog {
	l := &ChatLog{channel: channel}
	channel.On(models.TagChat, func(data json.RawMessage) {
		var payload models.ChatPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return
		}
		msg := models.ChatMessage{Author: payload.Author, Text: payload.Text}

		l.mu.Lock()
		l.messages = append(l.messages, msg)
		notify := l.OnMessage
		l.mu.Unlock()

		if notify != nil {
			notify(msg)
		}
	})
	return l
}

// Send emits a chat message. Display happens when the echo comes back.
func (l *ChatLog) Send(author, text string) error {
	return l.channel.Emit(models.TagChat, models.ChatPayload{Author: author, Text: text})
}

// Messages returns a copy of the log so far.
func (l *ChatLog) Messages() []models.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}
