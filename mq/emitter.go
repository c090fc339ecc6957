package mq

import (
	"context"
	"encoding/json"
	"log"

	"kasuwa/rdx"
)

// Channel carries entity-change events to live subscribers (the booking
// websocket feed) over Redis pub/sub.
const Channel = "entity-events"

// Event is an entity-change message: which entity changed, how, and which
// listing it concerns.
type Event struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Action     string `json:"action"`
	ListingID  string `json:"listing_id,omitempty"`
	Status     string `json:"status,omitempty"`
}

// Emit publishes an event to Redis. Best-effort: failures are logged and
// never reach the caller, so a dead broker cannot fail a state transition.
// Invoked as `go mq.Emit(...)` after writes.
func Emit(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[mq] failed to marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), Channel, data).Err(); err != nil {
		log.Printf("[mq] failed to publish %s/%s: %v", event.EntityType, event.Action, err)
	}
}

// Subscribe delivers decoded events until ctx is cancelled.
func Subscribe(ctx context.Context, fn func(Event)) {
	sub := rdx.Conn.Subscribe(ctx, Channel)
	ch := sub.Channel()

	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("[mq] failed to parse event: %v", err)
					continue
				}
				fn(event)
			}
		}
	}()
}
