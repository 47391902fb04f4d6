package mq

import (
	"context"
	"encoding/json"
	"log"

	"voyago/rdx"
)

const itineraryChannel = "itinerary-events"

// ItineraryEvent announces lifecycle changes of an itinerary.
type ItineraryEvent struct {
	Event       string `json:"event"`
	ItineraryID string `json:"itineraryId"`
	UserID      string `json:"userId"`
	Destination string `json:"destination"`
	SafetyScore int    `json:"safetyScore,omitempty"`
}

// Emit publishes an itinerary event to Redis Pub/Sub. Publishing is
// best-effort; a missing Redis connection is logged and ignored.
func Emit(ctx context.Context, event ItineraryEvent) {
	if rdx.Conn == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] marshal error: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, itineraryChannel, data).Err(); err != nil {
		log.Printf("[Emit] publish error: %v", err)
	}
}

// StartItineraryWorker consumes itinerary events, currently for audit
// logging. Runs until the Redis connection closes.
func StartItineraryWorker() {
	if rdx.Conn == nil {
		log.Println("[ItineraryWorker] redis unavailable, worker not started")
		return
	}
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, itineraryChannel)
	ch := sub.Channel()

	log.Println("[ItineraryWorker] listening for itinerary events...")
	for msg := range ch {
		var event ItineraryEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[ItineraryWorker] parse error: %v", err)
			continue
		}
		log.Printf("[ItineraryWorker] %s itinerary=%s user=%s", event.Event, event.ItineraryID, event.UserID)
	}
}
