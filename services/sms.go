package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Telephony buys assistant numbers and sends text messages.
type Telephony interface {
	BuyNumber(ctx context.Context, country string) (string, error)
	SendSMS(ctx context.Context, to, body string) error
}

// TwilioClient talks to the Twilio REST API with basic auth.
type TwilioClient struct {
	httpClient *resty.Client
	accountSID string
	from       string
	logger     *zap.Logger
}

func NewTwilioClient(baseURL, accountSID, authToken, from string, logger *zap.Logger) *TwilioClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(20*time.Second).
		SetBasicAuth(accountSID, authToken).
		SetHeader("Accept", "application/json")
	return &TwilioClient{httpClient: client, accountSID: accountSID, from: from, logger: logger}
}

type twilioAvailableNumbers struct {
	AvailablePhoneNumbers []struct {
		PhoneNumber string `json:"phone_number"`
	} `json:"available_phone_numbers"`
}

type twilioIncomingNumber struct {
	PhoneNumber string `json:"phone_number"`
	SID         string `json:"sid"`
}

type twilioError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// BuyNumber picks the first available mobile number in country and buys it.
func (c *TwilioClient) BuyNumber(ctx context.Context, country string) (string, error) {
	var available twilioAvailableNumbers
	var apiErr twilioError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&available).
		SetError(&apiErr).
		SetPathParams(map[string]string{"sid": c.accountSID, "country": country}).
		Get("/2010-04-01/Accounts/{sid}/AvailablePhoneNumbers/{country}/Mobile.json")
	if err != nil {
		return "", fmt.Errorf("failed to list Twilio numbers: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("Twilio error: %s (status: %d)", apiErr.Message, resp.StatusCode())
	}
	if len(available.AvailablePhoneNumbers) == 0 {
		return "", fmt.Errorf("no %s mobile numbers available", country)
	}
	candidate := available.AvailablePhoneNumbers[0].PhoneNumber

	var bought twilioIncomingNumber
	resp, err = c.httpClient.R().
		SetContext(ctx).
		SetResult(&bought).
		SetError(&apiErr).
		SetPathParam("sid", c.accountSID).
		SetFormData(map[string]string{"PhoneNumber": candidate}).
		Post("/2010-04-01/Accounts/{sid}/IncomingPhoneNumbers.json")
	if err != nil {
		return "", fmt.Errorf("failed to buy Twilio number: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("Twilio error: %s (status: %d)", apiErr.Message, resp.StatusCode())
	}
	c.logger.Info("Bought assistant number", zap.String("phone_number", bought.PhoneNumber))
	return bought.PhoneNumber, nil
}

// SendSMS sends body to the given E.164 number.
func (c *TwilioClient) SendSMS(ctx context.Context, to, body string) error {
	var apiErr twilioError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetError(&apiErr).
		SetPathParam("sid", c.accountSID).
		SetFormData(map[string]string{"To": to, "From": c.from, "Body": body}).
		Post("/2010-04-01/Accounts/{sid}/Messages.json")
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("Twilio error: %s (status: %d)", apiErr.Message, resp.StatusCode())
	}
	return nil
}
