package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/scirota/selection-api/internal/domain"
)

// BookingEventChannel is the redis pub/sub channel carrying booking
// transitions to the realtime feed.
const BookingEventChannel = "selection:booking-events"

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) PublishBookingEvent(ctx context.Context, event domain.BookingEvent) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, BookingEventChannel, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// SubscribeBookingEvents fans the channel out as decoded events. The returned
// channel closes when ctx is cancelled; malformed payloads are skipped.
func (s *SignalService) SubscribeBookingEvents(ctx context.Context) <-chan domain.BookingEvent {
	sub := s.rdb.Subscribe(ctx, BookingEventChannel)
	out := make(chan domain.BookingEvent)

	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var event domain.BookingEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
