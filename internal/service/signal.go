package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/totegamma/sendlog/internal/domain"
)

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, event domain.Event) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, event.Channel, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime subscribes to every channel list received on input and forwards the
// decoded events to output until ctx is cancelled or input is closed.
func (s *SignalService) Realtime(ctx context.Context, input <-chan []string, output chan<- domain.Event) {
	pubsub := s.rdb.Subscribe(ctx)
	defer pubsub.Close()

	messages := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case channels, ok := <-input:
			if !ok {
				return
			}
			if len(channels) == 0 {
				continue
			}
			if err := pubsub.Subscribe(ctx, channels...); err != nil {
				slog.ErrorContext(
					ctx, "failed to subscribe",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
			}
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.WarnContext(
					ctx, "dropping malformed event",
					slog.String("channel", msg.Channel),
					slog.String("module", "signal"),
				)
				continue
			}
			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
