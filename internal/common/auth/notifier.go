package auth

import (
	"context"
	"encoding/json"

	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

// Notifier carries session change events over a redis pub/sub channel.
// fluiqctl session watch is the subscriber.
type Notifier struct {
	client  *redis.Client
	channel string
	logger  logger.Logger
}

func NewNotifier(client *redis.Client, channel string, log logger.Logger) *Notifier {
	return &Notifier{client: client, channel: channel, logger: log}
}

func (n *Notifier) Publish(ctx context.Context, ev models.SessionEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if err := n.client.Publish(ctx, n.channel, data).Err(); err != nil {
		return errors.NewStorageWriteError(n.channel, err)
	}
	return nil
}

// Subscribe returns a stream of decoded events. The stream closes when ctx is
// done or the returned stop func is called. Malformed payloads are logged and
// skipped.
func (n *Notifier) Subscribe(ctx context.Context) (<-chan models.SessionEvent, func(), error) {
	sub := n.client.Subscribe(ctx, n.channel)
	// wait for the subscription to be confirmed so no event published after
	// Subscribe returns is missed
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, errors.NewStorageReadError(n.channel, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	out := make(chan models.SessionEvent)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev models.SessionEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					n.logger.Warn("Dropping malformed session event", map[string]interface{}{
						"channel": n.channel,
						"error":   err.Error(),
					})
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, cancel, nil
}
