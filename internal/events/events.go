// Package events is a small pub/sub bus over the valkey events cache.
// Mutations to the directory are announced here and fanned out to
// subscribers such as the websocket manager.
package events

import (
	"context"
	"encoding/json"
	"staffdir/config"
	"staffdir/internal/database"
	"staffdir/internal/logger"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

const ChannelEmployees = "employees"

type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type EventBus struct {
	client database.CacheClient
	config config.Config
	log    logger.Logger

	mu      sync.Mutex
	cancels []context.CancelFunc
}

func New(client database.CacheClient, config config.Config) *EventBus {
	return &EventBus{
		client: client,
		config: config,
		log:    logger.New("events"),
	}
}

func (b *EventBus) Publish(channel string, event Event) error {
	log := b.log.Function("Publish")

	if b.client == nil {
		log.Debug("event bus has no cache client, dropping event", "channel", channel)
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "event", event)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := b.client.B().Publish().Channel(channel).Message(string(payload)).Build()
	if err := b.client.Do(ctx, cmd).Error(); err != nil {
		return log.Err("failed to publish event", err, "channel", channel)
	}

	return nil
}

// Subscribe delivers every event on channel to handler until the bus is
// closed. The receive loop runs on its own goroutine.
func (b *EventBus) Subscribe(channel string, handler func(Event)) {
	log := b.log.Function("Subscribe")

	if b.client == nil {
		log.Debug("event bus has no cache client, subscription ignored", "channel", channel)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.mu.Lock()
	b.cancels = append(b.cancels, cancel)
	b.mu.Unlock()

	go func() {
		err := b.client.Receive(ctx, b.client.B().Subscribe().Channel(channel).Build(),
			func(msg valkey.PubSubMessage) {
				var event Event
				if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
					log.Er("failed to unmarshal event", err, "channel", channel)
					return
				}
				handler(event)
			})
		if err != nil && ctx.Err() == nil {
			log.Er("subscription receive loop ended", err, "channel", channel)
		}
	}()
}

func (b *EventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, cancel := range b.cancels {
		cancel()
	}
	b.cancels = nil
	return nil
}
