package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kendall-kelly/lightwork-auth-api/models"
	"go.uber.org/zap"
)

// EmailSender delivers transactional email.
type EmailSender interface {
	Send(ctx context.Context, msg models.EmailMessage) error
}

// SendGridClient sends mail through the SendGrid v3 API.
type SendGridClient struct {
	httpClient *resty.Client
	from       string
	logger     *zap.Logger
}

// NewSendGridClient builds a client for baseURL authenticated with apiKey.
func NewSendGridClient(baseURL, apiKey, from string, logger *zap.Logger) *SendGridClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")
	return &SendGridClient{httpClient: client, from: from, logger: logger}
}

type sendGridAddress struct {
	Email string `json:"email"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridMail struct {
	Personalizations []struct {
		To []sendGridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendGridAddress   `json:"from"`
	Subject string            `json:"subject"`
	Content []sendGridContent `json:"content"`
}

// Send posts msg to /v3/mail/send. An empty From uses the configured sender.
func (c *SendGridClient) Send(ctx context.Context, msg models.EmailMessage) error {
	from := msg.From
	if from == "" {
		from = c.from
	}
	body := sendGridMail{From: sendGridAddress{Email: from}, Subject: msg.Subject}
	body.Personalizations = make([]struct {
		To []sendGridAddress `json:"to"`
	}, 1)
	body.Personalizations[0].To = []sendGridAddress{{Email: msg.To}}
	if msg.Text != "" {
		body.Content = append(body.Content, sendGridContent{Type: "text/plain", Value: msg.Text})
	}
	if msg.HTML != "" {
		body.Content = append(body.Content, sendGridContent{Type: "text/html", Value: msg.HTML})
	}

	resp, err := c.httpClient.R().SetContext(ctx).SetBody(body).Post("/v3/mail/send")
	if err != nil {
		return fmt.Errorf("failed to call SendGrid: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("SendGrid rejected email",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("to", msg.To),
		)
		return fmt.Errorf("SendGrid error: status %d", resp.StatusCode())
	}
	c.logger.Info("Email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
