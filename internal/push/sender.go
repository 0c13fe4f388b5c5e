package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"github.com/rinkdesk/backend/internal/domain"
)

const (
	defaultTTL     = 60
	requestTimeout = 10 * time.Second
)

// Payload is one notification as delivered to the service worker.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Data  struct {
		URL string `json:"url"`
	} `json:"data"`
}

func NewPayload(title, body, url string) Payload {
	p := Payload{Title: title, Body: body}
	p.Data.URL = url
	return p
}

type Sender interface {
	Send(ctx context.Context, sub domain.Subscription, payload Payload) error
}

// Config carries the VAPID identity. It is passed in at construction so the
// sender holds no process-global state.
type Config struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subscriber      string
}

// WebPushSender delivers notifications over the Web Push protocol. A 404 or
// 410 from the push service means the browser discarded the subscription;
// that is reported as domain.ErrSubscriptionGone so callers can prune it.
type WebPushSender struct {
	cfg    Config
	client *http.Client
}

func NewWebPushSender(cfg Config) *WebPushSender {
	return &WebPushSender{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
	}
}

func (s *WebPushSender) Send(ctx context.Context, sub domain.Subscription, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      s.client,
		Subscriber:      s.cfg.Subscriber,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		TTL:             defaultTTL,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return domain.ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}
	return nil
}

var _ Sender = (*WebPushSender)(nil)
