package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kendall-kelly/lightwork-auth-api/metrics"
	"go.uber.org/zap"
)

// Publisher emits a JSON payload on a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Message is one stream entry.
type Message struct {
	Topic string
	ID    string
	Data  json.RawMessage
}

// BusConfig configures a consumer.
type BusConfig struct {
	Group    string
	Consumer string
	Block    time.Duration
	Count    int64
}

// Bus publishes to and consumes from Redis Streams through a consumer group.
type Bus struct {
	client *redis.Client
	cfg    BusConfig
	logger *zap.Logger
}

// NewBus wraps client. A zero Count reads ten entries per call.
func NewBus(client *redis.Client, cfg BusConfig, logger *zap.Logger) *Bus {
	if cfg.Count <= 0 {
		cfg.Count = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{client: client, cfg: cfg, logger: logger}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// Publish appends payload to the topic stream as {"data": json, "timestamp": unix}.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", topic, err)
	}
	err = b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: topic,
		Values: map[string]any{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	metrics.RecordPublish(topic)
	return nil
}

// EnsureGroups creates the consumer group on every topic, creating the
// streams as needed.
func (b *Bus) EnsureGroups(ctx context.Context, topics []string) error {
	for _, topic := range topics {
		err := b.client.XGroupCreateMkStream(ctx, topic, b.cfg.Group, "0").Err()
		if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
			return fmt.Errorf("create group on %s: %w", topic, err)
		}
	}
	return nil
}

// Read returns the next batch of undelivered entries across topics.
func (b *Bus) Read(ctx context.Context, topics []string) ([]Message, error) {
	streams := make([]string, 0, len(topics)*2)
	streams = append(streams, topics...)
	for range topics {
		streams = append(streams, ">")
	}
	res, err := b.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    b.cfg.Group,
		Consumer: b.cfg.Consumer,
		Streams:  streams,
		Count:    b.cfg.Count,
		Block:    b.cfg.Block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []Message
	for _, s := range res {
		for _, m := range s.Messages {
			raw, _ := m.Values["data"].(string)
			out = append(out, Message{Topic: s.Stream, ID: m.ID, Data: json.RawMessage(raw)})
		}
	}
	return out, nil
}

// Ack marks an entry processed.
func (b *Bus) Ack(ctx context.Context, msg Message) error {
	return b.client.XAck(ctx, msg.Topic, b.cfg.Group, msg.ID).Err()
}

// Dispatch runs the handler for msg. A failure is forwarded to the dead
// letter topic; either way the entry is acked.
func (b *Bus) Dispatch(ctx context.Context, router *Router, msg Message) {
	err := router.Handle(ctx, msg)
	outcome := "ok"
	if err != nil {
		outcome = "failed"
		b.logger.Error("Event handler failed",
			zap.String("topic", msg.Topic),
			zap.String("id", msg.ID),
			zap.Error(err),
		)
		if msg.Topic != TopicDeadLetter {
			dl := DeadLetter{Topic: msg.Topic, Payload: msg.Data, Error: err.Error()}
			if pubErr := b.Publish(ctx, TopicDeadLetter, dl); pubErr != nil {
				b.logger.Error("Failed to publish dead letter", zap.String("topic", msg.Topic), zap.Error(pubErr))
			}
		}
	}
	metrics.RecordEvent(msg.Topic, outcome)
	if err := b.Ack(ctx, msg); err != nil {
		b.logger.Warn("Failed to ack event", zap.String("topic", msg.Topic), zap.String("id", msg.ID), zap.Error(err))
	}
}

// Poll reads one batch and dispatches it. It returns the number handled.
func (b *Bus) Poll(ctx context.Context, router *Router) (int, error) {
	msgs, err := b.Read(ctx, router.Topics())
	if err != nil {
		return 0, err
	}
	for _, msg := range msgs {
		b.Dispatch(ctx, router, msg)
	}
	return len(msgs), nil
}

// Run polls until ctx is cancelled. Messages within a batch are handled
// concurrently; the next batch waits for the current one.
func (b *Bus) Run(ctx context.Context, router *Router) error {
	if err := b.EnsureGroups(ctx, router.Topics()); err != nil {
		return err
	}
	b.logger.Info("Event consumer started",
		zap.String("group", b.cfg.Group),
		zap.String("consumer", b.cfg.Consumer),
		zap.Strings("topics", router.Topics()),
	)
	for {
		if ctx.Err() != nil {
			return nil
		}
		msgs, err := b.Read(ctx, router.Topics())
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.logger.Error("Failed to read events", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		var wg sync.WaitGroup
		for _, msg := range msgs {
			wg.Add(1)
			go func(m Message) {
				defer wg.Done()
				b.Dispatch(ctx, router, m)
			}(msg)
		}
		wg.Wait()
	}
}

// NopPublisher drops every message. It stands in when no Redis URL is set.
type NopPublisher struct {
	Logger *zap.Logger
}

func (p NopPublisher) Publish(ctx context.Context, topic string, payload any) error {
	if p.Logger != nil {
		p.Logger.Debug("Event bus disabled, dropping message", zap.String("topic", topic))
	}
	return nil
}
