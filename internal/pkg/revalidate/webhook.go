package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// SecretHeader carries the shared secret expected by the front-end
const SecretHeader = "X-Revalidate-Secret"

type webhookPayload struct {
	Paths []string `json:"paths"`
}

// WebhookNotifier posts stale paths to the front-end's on-demand
// revalidation endpoint. Delivery failures are logged only.
type WebhookNotifier struct {
	url    string
	secret string
	client *http.Client
	logger zerolog.Logger
}

// NewWebhookNotifier creates a WebhookNotifier
func NewWebhookNotifier(url, secret string, timeout time.Duration, logger zerolog.Logger) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookNotifier{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Revalidate implements Notifier
func (n *WebhookNotifier) Revalidate(ctx context.Context, paths ...string) {
	paths = Dedupe(paths)
	if len(paths) == 0 {
		return
	}
	if err := n.post(ctx, paths); err != nil {
		n.logger.Warn().Err(err).Strs("paths", paths).Msg("Revalidation webhook failed")
		return
	}
	n.logger.Debug().Strs("paths", paths).Msg("Revalidation webhook delivered")
}

func (n *WebhookNotifier) post(ctx context.Context, paths []string) error {
	body, err := json.Marshal(webhookPayload{Paths: paths})
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	// the mutation already committed; a cancelled request context must not drop the signal
	ctx = context.WithoutCancel(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.secret != "" {
		req.Header.Set(SecretHeader, n.secret)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
