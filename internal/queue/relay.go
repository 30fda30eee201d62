package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/atlascrm/relgraph/backend/internal/util"
)

// WebhookRelay forwards mutation events to the CRM's inbound webhook.
type WebhookRelay struct {
	client   *http.Client
	endpoint string
	apiKey   string
	maxTries int
	backoff  time.Duration
}

type WebhookRelayParams struct {
	Endpoint string
	APIKey   string
	MaxTries int
	Backoff  time.Duration
}

func NewWebhookRelay(params WebhookRelayParams) *WebhookRelay {
	if params.MaxTries <= 0 {
		params.MaxTries = 3
	}
	if params.Backoff <= 0 {
		params.Backoff = time.Second
	}
	return &WebhookRelay{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: params.Endpoint,
		apiKey:   params.APIKey,
		maxTries: params.MaxTries,
		backoff:  params.Backoff,
	}
}

// HandleSyncMessage validates and delivers one queued mutation event.
// A returned error means the message should go to the retry queue.
func (r *WebhookRelay) HandleSyncMessage(ctx context.Context, body []byte) error {
	var event MutationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode mutation event: %w", err)
	}
	if event.Object == "" || event.Action == "" {
		return fmt.Errorf("mutation event missing object or action")
	}
	return r.deliver(ctx, body)
}

func (r *WebhookRelay) deliver(ctx context.Context, body []byte) error {
	return util.RetryErrWithContext(ctx, r.maxTries, r.backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if r.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+r.apiKey)
		}

		resp, err := r.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		if resp.StatusCode >= 300 {
			return fmt.Errorf("webhook returned status %d", resp.StatusCode)
		}
		return nil
	})
}
