// Package announce broadcasts processed device events over NATS so external
// monitors can follow what the helpers did without scraping the store. The
// broadcast is fire-and-forget and strictly optional: a helper with no
// announce configuration never touches the network.
package announce

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/devplug/internal/event"
)

// Notification is the wire payload for one processed event.
type Notification struct {
	Action       string    `json:"action"`
	DeviceID     string    `json:"device_id"`
	DevPath      string    `json:"devpath,omitempty"`
	Subsystem    string    `json:"subsystem,omitempty"`
	InvocationID string    `json:"invocation_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// Publisher manages the NATS connection for event announcements.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS and prepares publishing on subject.
func NewPublisher(url, subject string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Timeout(2*time.Second),
		nats.RetryOnFailedConnect(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	slog.Debug("NATS publisher initialized", "url", url, "subject", subject)
	return &Publisher{conn: conn, subject: subject}, nil
}

// Announce publishes the processed event. Errors are returned for logging
// but callers treat announcement as best-effort; a failed publish never
// fails the helper chain.
func (p *Publisher) Announce(ctx context.Context, ev event.Event, deviceID string) error {
	payload, err := json.Marshal(Notification{
		Action:       ev.Action,
		DeviceID:     deviceID,
		DevPath:      ev.DevPath,
		Subsystem:    ev.Subsystem,
		InvocationID: ev.InvocationID,
		Timestamp:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Close flushes and drops the connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		_ = p.conn.Flush()
		p.conn.Close()
	}
}
