package mq

import (
	"context"
	"encoding/json"
	"log"

	"wanderlust/models"
	"wanderlust/rdx"
)

const channel = "indexing-events"

// Emitter publishes mutation events to the indexing channel. A nil Emitter
// or a missing cache drops events silently; mutations never depend on it.
type Emitter struct {
	Cache *rdx.Cache
}

func New(cache *rdx.Cache) *Emitter {
	return &Emitter{Cache: cache}
}

// Emit publishes an indexing event. Failures are logged, never propagated.
func (e *Emitter) Emit(ctx context.Context, eventName string, content models.Index) {
	if e == nil || e.Cache == nil {
		return
	}
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] failed to marshal %s event: %v", eventName, err)
		return
	}
	if err := e.Cache.Publish(ctx, channel, data); err != nil {
		log.Printf("[Emit] failed to publish %s event: %v", eventName, err)
	}
}

// StartIndexingWorker consumes indexing events; the handler runs per event.
func (e *Emitter) StartIndexingWorker(ctx context.Context, handle func(context.Context, models.Index)) {
	sub := e.Cache.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[IndexingWorker] listening for indexing events")
	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[IndexingWorker] failed to parse event: %v", err)
			continue
		}
		handle(ctx, event)
	}
}
