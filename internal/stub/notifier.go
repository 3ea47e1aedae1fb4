package stub

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const eventsChannel = "events:feed"

// notifier routes realtime frames through Redis pub/sub so multiple stub
// instances fan out the same events. With no Redis configured it is inert and
// the hub broadcasts directly.
type notifier struct {
	rdb *redis.Client
}

func newNotifier(rdb *redis.Client) *notifier {
	return &notifier{rdb: rdb}
}

func (n *notifier) active() bool {
	return n.rdb != nil
}

// publish sends a frame into the shared events channel.
func (n *notifier) publish(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, eventsChannel, payload).Err()
}

// startSubscriber subscribes to the events channel and calls onMessage for
// each incoming frame.
func (n *notifier) startSubscriber(ctx context.Context, onMessage func(payload string)) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	go func() {
		for msg := range ch {
			onMessage(msg.Payload)
		}
	}()

	return nil
}
