package events

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Subjects for pricing configuration events
const (
	SubjectZoneCreated     = "pricing.zone.created"
	SubjectZoneUpdated     = "pricing.zone.updated"
	SubjectZoneDeleted     = "pricing.zone.deleted"
	SubjectRateCreated     = "pricing.rate.created"
	SubjectRateUpdated     = "pricing.rate.updated"
	SubjectRateDeleted     = "pricing.rate.deleted"
	SubjectCurrencyUpdated = "pricing.currency.updated"
	SubjectBaseChanged     = "pricing.currency.base_changed"
)

var (
	publisher     *Publisher
	publisherOnce sync.Once
	publisherMu   sync.RWMutex
)

// ConfigEvent is the payload published when pricing configuration changes.
// Downstream services (checkout, storefront cache) invalidate on these.
type ConfigEvent struct {
	EntityID  string    `json:"entity_id"`
	Name      string    `json:"name,omitempty"`
	Code      string    `json:"code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes pricing events to NATS
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// InitPublisher initializes the singleton NATS publisher. When NATS_URL is
// unset, publishing stays disabled and every Publish call is a no-op.
func InitPublisher(logger *logrus.Logger) error {
	var initErr error
	publisherOnce.Do(func() {
		natsURL := os.Getenv("NATS_URL")
		if natsURL == "" {
			logger.Warn("NATS_URL not set, event publishing disabled")
			return
		}

		conn, err := nats.Connect(natsURL,
			nats.Name("pricing-service"),
			nats.ReconnectWait(2*time.Second),
			nats.MaxReconnects(-1),
		)
		if err != nil {
			initErr = fmt.Errorf("failed to connect to NATS: %w", err)
			return
		}

		publisherMu.Lock()
		publisher = &Publisher{
			conn:   conn,
			logger: logger.WithField("component", "events.publisher"),
		}
		publisherMu.Unlock()

		logger.Info("NATS events publisher initialized for pricing-service")
	})
	return initErr
}

// GetPublisher returns the singleton publisher instance, nil when disabled
func GetPublisher() *Publisher {
	publisherMu.RLock()
	defer publisherMu.RUnlock()
	return publisher
}

// Publish sends a configuration event on the given subject
func (p *Publisher) Publish(subject string, event ConfigEvent) {
	if p == nil || p.conn == nil {
		return
	}
	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).Error("Failed to marshal event")
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to publish event")
		return
	}

	p.logger.WithFields(logrus.Fields{
		"subject":   subject,
		"entity_id": event.EntityID,
	}).Debug("Published event")
}

// IsConnected returns true if connected to NATS
func (p *Publisher) IsConnected() bool {
	return p != nil && p.conn != nil && p.conn.IsConnected()
}

// Close closes the publisher connection
func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}
