package events

import (
	"context"
	"encoding/json"
	"sync"
)

// Published is a message captured by MockPublisher.
type Published struct {
	Topic   string
	Payload json.RawMessage
}

// MockPublisher records published messages for tests.
type MockPublisher struct {
	mu       sync.RWMutex
	messages []Published
	Err      error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, payload any) error {
	if m.Err != nil {
		return m.Err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.messages = append(m.messages, Published{Topic: topic, Payload: data})
	m.mu.Unlock()
	return nil
}

// Messages returns a copy of everything published so far.
func (m *MockPublisher) Messages() []Published {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Published(nil), m.messages...)
}

// OnTopic returns the messages published on topic.
func (m *MockPublisher) OnTopic(topic string) []Published {
	var out []Published
	for _, p := range m.Messages() {
		if p.Topic == topic {
			out = append(out, p)
		}
	}
	return out
}
