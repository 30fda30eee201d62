package queue

import (
	"encoding/json"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/atlascrm/relgraph/backend/pkg/logger"
)

// MutationEvent describes one committed change for downstream CRM sync.
type MutationEvent struct {
	Object     string    `json:"object"` // account, contact, relationship
	Action     string    `json:"action"`
	PublicID   string    `json:"id"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PublishMutation sends the event to the sync queue. The change is already
// committed, so a publish failure is logged and swallowed rather than
// surfaced to the caller.
func PublishMutation(ch *amqp091.Channel, event MutationEvent) {
	if ch == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("[Queue] Failed to marshal mutation event", "object", event.Object, "id", event.PublicID, "err", err)
		return
	}
	if err := PublishFIFO(ch, SyncQueue, body); err != nil {
		logger.Error("[Queue] Failed to publish mutation event", "object", event.Object, "id", event.PublicID, "err", err)
	}
}
