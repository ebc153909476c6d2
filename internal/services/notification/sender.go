package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	timeZoneHeader = "Time-Zone"
	appKeyHeader   = "app-key"
)

// DefaultTimeZone is sent when a decision carries no time zone.
const DefaultTimeZone = "Asia/Colombo"

// Sender delivers rendered SMS and email messages.
type Sender interface {
	SendSMS(ctx context.Context, mobileNo, text, timeZone string) error
	SendEmail(ctx context.Context, to, subject, body, timeZone string) error
}

// UtilConfig points the client at the util service.
type UtilConfig struct {
	BaseURL  string
	SMSPath  string
	MailPath string
	AppKey   string
	Timeout  time.Duration
}

// UtilClient sends messages through the util service HTTP API.
type UtilClient struct {
	smsURL     string
	mailURL    string
	appKey     string
	httpClient *http.Client
}

func NewUtilClient(cfg UtilConfig) *UtilClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &UtilClient{
		smsURL:     cfg.BaseURL + cfg.SMSPath,
		mailURL:    cfg.BaseURL + cfg.MailPath,
		appKey:     cfg.AppKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type mobileNo struct {
	No string `json:"no"`
}

type smsRequest struct {
	Message     string   `json:"message"`
	RecipientNo mobileNo `json:"recipientNo"`
}

type emailRequest struct {
	Receiver string `json:"receiver"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

func (c *UtilClient) SendSMS(ctx context.Context, mobile, text, timeZone string) error {
	return c.post(ctx, c.smsURL, timeZone, smsRequest{Message: text, RecipientNo: mobileNo{No: mobile}})
}

func (c *UtilClient) SendEmail(ctx context.Context, to, subject, body, timeZone string) error {
	return c.post(ctx, c.mailURL, timeZone, emailRequest{Receiver: to, Subject: subject, Body: body})
}

func (c *UtilClient) post(ctx context.Context, url, timeZone string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal util request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build util request: %w", err)
	}
	if timeZone == "" {
		timeZone = DefaultTimeZone
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(timeZoneHeader, timeZone)
	req.Header.Set(appKeyHeader, c.appKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("util service request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("util service returned status %d", resp.StatusCode)
	}
	return nil
}
