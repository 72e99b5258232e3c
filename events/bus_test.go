package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBus(t *testing.T) (*Bus, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	// A negative block makes XREADGROUP return immediately.
	bus := NewBus(client, BusConfig{Group: "auth-service", Consumer: "test-1", Block: -1}, nil)
	return bus, client
}

func TestPublishWritesDataAndTimestamp(t *testing.T) {
	bus, client := setupBus(t)
	ctx := context.Background()

	require.NoError(t, bus.Publish(ctx, TopicProvisionPhoneNumber, ProvisionPhoneNumber{UserID: "u1"}))

	entries, err := client.XRange(ctx, TopicProvisionPhoneNumber, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.JSONEq(t, `{"user_id":"u1"}`, entries[0].Values["data"].(string))
	assert.NotEmpty(t, entries[0].Values["timestamp"])
}

func TestPollDispatchesAndAcks(t *testing.T) {
	bus, client := setupBus(t)
	ctx := context.Background()

	var got []string
	router := NewRouter()
	router.On(TopicStripeConnectVerified, decode(func(ctx context.Context, p StripeConnectVerified) error {
		got = append(got, p.ID)
		return nil
	}))
	require.NoError(t, bus.EnsureGroups(ctx, router.Topics()))
	// Creating the group twice is fine.
	require.NoError(t, bus.EnsureGroups(ctx, router.Topics()))

	require.NoError(t, bus.Publish(ctx, TopicStripeConnectVerified, StripeConnectVerified{ID: "acct_1"}))
	require.NoError(t, bus.Publish(ctx, TopicStripeConnectVerified, StripeConnectVerified{ID: "acct_2"}))

	n, err := bus.Poll(ctx, router)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"acct_1", "acct_2"}, got)

	pending, err := client.XPending(ctx, TopicStripeConnectVerified, "auth-service").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending.Count)

	n, err = bus.Poll(ctx, router)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestFailedHandlerGoesToDeadLetter(t *testing.T) {
	bus, client := setupBus(t)
	ctx := context.Background()

	router := NewRouter()
	router.On(TopicSendEmail, func(ctx context.Context, data json.RawMessage) error {
		return errors.New("smtp down")
	})
	require.NoError(t, bus.EnsureGroups(ctx, router.Topics()))
	require.NoError(t, bus.Publish(ctx, TopicSendEmail, map[string]string{"to": "a@b.co"}))

	_, err := bus.Poll(ctx, router)
	require.NoError(t, err)

	entries, err := client.XRange(ctx, TopicDeadLetter, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var dl DeadLetter
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values["data"].(string)), &dl))
	assert.Equal(t, TopicSendEmail, dl.Topic)
	assert.Equal(t, "smtp down", dl.Error)
	assert.JSONEq(t, `{"to":"a@b.co"}`, string(dl.Payload))

	pending, err := client.XPending(ctx, TopicSendEmail, "auth-service").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending.Count)
}

func TestDeadLetterFailureIsNotRequeued(t *testing.T) {
	bus, client := setupBus(t)
	ctx := context.Background()

	router := NewRouter()
	router.On(TopicDeadLetter, func(ctx context.Context, data json.RawMessage) error {
		return errors.New("still broken")
	})
	require.NoError(t, bus.EnsureGroups(ctx, router.Topics()))
	require.NoError(t, bus.Publish(ctx, TopicDeadLetter, DeadLetter{Topic: "x", Error: "y"}))

	_, err := bus.Poll(ctx, router)
	require.NoError(t, err)

	n, err := client.XLen(ctx, TopicDeadLetter).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRunStopsOnCancel(t *testing.T) {
	bus, _ := setupBus(t)
	ctx, cancel := context.WithCancel(context.Background())

	handled := make(chan string, 1)
	router := NewRouter()
	router.On(TopicProvisionPhoneNumber, decode(func(ctx context.Context, p ProvisionPhoneNumber) error {
		handled <- p.UserID
		return nil
	}))

	done := make(chan error, 1)
	go func() { done <- bus.Run(ctx, router) }()

	require.Eventually(t, func() bool {
		return bus.Publish(context.Background(), TopicProvisionPhoneNumber, ProvisionPhoneNumber{UserID: "u9"}) == nil
	}, time.Second, 10*time.Millisecond)

	select {
	case id := <-handled:
		assert.Equal(t, "u9", id)
	case <-time.After(2 * time.Second):
		t.Fatal("message was not handled")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestRouterUnknownTopic(t *testing.T) {
	router := NewRouter()
	err := router.Handle(context.Background(), Message{Topic: "nope"})
	assert.Error(t, err)
}

func TestDecodeRejectsMalformedPayload(t *testing.T) {
	h := decode(func(ctx context.Context, p ProvisionPhoneNumber) error { return nil })
	assert.Error(t, h(context.Background(), json.RawMessage(`{"user_id":`)))
}
