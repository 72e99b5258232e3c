package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/kendall-kelly/lightwork-auth-api/models"
)

// MockEmailSender records sent messages.
type MockEmailSender struct {
	mu   sync.RWMutex
	sent []models.EmailMessage
	Err  error
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) Send(ctx context.Context, msg models.EmailMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of every message sent so far.
func (m *MockEmailSender) Sent() []models.EmailMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.EmailMessage(nil), m.sent...)
}

// SMS is one text recorded by MockTelephony.
type SMS struct {
	To   string
	Body string
}

// MockTelephony hands out sequential numbers and records texts.
type MockTelephony struct {
	mu       sync.RWMutex
	bought   []string
	messages []SMS
	Err      error
}

func NewMockTelephony() *MockTelephony {
	return &MockTelephony{}
}

func (m *MockTelephony) BuyNumber(ctx context.Context, country string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	number := fmt.Sprintf("+4470000%05d", len(m.bought)+1)
	m.bought = append(m.bought, number)
	return number, nil
}

func (m *MockTelephony) SendSMS(ctx context.Context, to, body string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, SMS{To: to, Body: body})
	return nil
}

func (m *MockTelephony) Bought() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.bought...)
}

func (m *MockTelephony) Messages() []SMS {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]SMS(nil), m.messages...)
}

// Completion is one prompt pair seen by MockLLM.
type Completion struct {
	System string
	User   string
}

// MockLLM answers every prompt with Reply.
type MockLLM struct {
	mu    sync.RWMutex
	calls []Completion
	Reply string
	Err   error
}

func NewMockLLM(reply string) *MockLLM {
	return &MockLLM{Reply: reply}
}

func (m *MockLLM) Complete(ctx context.Context, system, user string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Completion{System: system, User: user})
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

func (m *MockLLM) Calls() []Completion {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Completion(nil), m.calls...)
}

// MockFetcher serves documents from a map keyed by URL.
type MockFetcher struct {
	mu    sync.RWMutex
	Pages map[string]string
}

func NewMockFetcher(pages map[string]string) *MockFetcher {
	if pages == nil {
		pages = map[string]string{}
	}
	return &MockFetcher{Pages: pages}
}

func (m *MockFetcher) FetchText(ctx context.Context, url string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	body, ok := m.Pages[url]
	if !ok {
		return "", fmt.Errorf("fetch %s: status 404", url)
	}
	return body, nil
}

func (m *MockFetcher) FetchPage(ctx context.Context, url string) ([]byte, error) {
	body, err := m.FetchText(ctx, url)
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}
