package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// HandlerFunc handles the decoded data field of one message.
type HandlerFunc func(ctx context.Context, data json.RawMessage) error

// Router maps topics to handlers.
type Router struct {
	handlers map[string]HandlerFunc
}

func NewRouter() *Router {
	return &Router{handlers: map[string]HandlerFunc{}}
}

// On registers h for topic, replacing any earlier handler.
func (r *Router) On(topic string, h HandlerFunc) {
	r.handlers[topic] = h
}

// Topics returns the registered topics in sorted order.
func (r *Router) Topics() []string {
	out := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Handle runs the handler registered for msg.Topic.
func (r *Router) Handle(ctx context.Context, msg Message) error {
	h, ok := r.handlers[msg.Topic]
	if !ok {
		return fmt.Errorf("no handler for topic %s", msg.Topic)
	}
	return h(ctx, msg.Data)
}

// decode is a helper for typed handlers.
func decode[T any](fn func(ctx context.Context, payload T) error) HandlerFunc {
	return func(ctx context.Context, data json.RawMessage) error {
		var payload T
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		return fn(ctx, payload)
	}
}
