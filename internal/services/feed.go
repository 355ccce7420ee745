package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// feedChannel is the Redis pub/sub channel carrying activity events. Going
// through Redis keeps the feed correct when multiple instances run.
const feedChannel = "activity:feed"

// FeedEvent is the payload broadcast over Redis and WebSocket when a notable
// action happens.
type FeedEvent struct {
	Type        string    `json:"type"`
	Email       string    `json:"email"`
	Username    string    `json:"username,omitempty"`
	Description string    `json:"description,omitempty"`
	Points      int64     `json:"points,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// FeedConn is the minimal interface a WebSocket connection must satisfy.
type FeedConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// FeedService fans activity events out to connected WebSocket clients via a
// shared Redis subscription.
type FeedService struct {
	rdb *redis.Client

	mu    sync.RWMutex
	conns map[FeedConn]struct{}

	started sync.Once
}

func NewFeedService(rdb *redis.Client) *FeedService {
	return &FeedService{
		rdb:   rdb,
		conns: make(map[FeedConn]struct{}),
	}
}

// Publish pushes an event onto the Redis channel.
func (s *FeedService) Publish(ctx context.Context, event FeedEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, feedChannel, data).Err()
}

// Register adds a client connection to the fan-out set.
func (s *FeedService) Register(conn FeedConn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

// Unregister removes a client connection.
func (s *FeedService) Unregister(conn FeedConn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// Start launches the single shared Redis subscriber for this instance.
func (s *FeedService) Start(ctx context.Context) {
	s.started.Do(func() {
		go s.run(ctx)
	})
}

func (s *FeedService) run(ctx context.Context) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := s.rdb.Subscribe(ctx, feedChannel)
			defer pubsub.Close()

			log.Printf("✅ Activity feed subscriber started (channel: %s)", feedChannel)

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("feed subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event FeedEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal feed event: %v", err)
					continue
				}

				s.fanOut(event)
			}
		}()
	}
}

func (s *FeedService) fanOut(event FeedEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.conns {
		// Non-blocking best-effort send.
		go func(c FeedConn) {
			if err := c.WriteJSON(event); err != nil {
				log.Printf("error writing feed event to websocket: %v", err)
			}
		}(conn)
	}
}
