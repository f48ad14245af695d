package roster

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/metrics"
	"github.com/mauv0809/club-ranker/internal/pubsub"
	"github.com/mauv0809/club-ranker/internal/stats"
)

// New creates a roster Service. events may be nil, in which case no domain
// events are published. A windowSize <= 0 falls back to the default.
func New(store Store, metrics metrics.Metrics, events pubsub.PubSubClient, clock clockwork.Clock, windowSize int) *Service {
	if windowSize <= 0 {
		windowSize = stats.DefaultWindowSize
	}
	return &Service{
		store:      store,
		metrics:    metrics,
		events:     events,
		clock:      clock,
		windowSize: windowSize,
		newID:      uuid.NewString,
	}
}

// WindowSize is the number of recent sessions the ranked views use.
func (s *Service) WindowSize() int {
	return s.windowSize
}

// reject counts a command refused by validation and returns err.
// Infrastructure errors are logged and passed through uncounted.
func (s *Service) reject(op string, err error) error {
	code := club.ErrorCode(err)
	if code == "INTERNAL" {
		log.Error("Roster command failed", "op", op, "error", err)
		return err
	}
	s.metrics.IncCommandsRejected(code)
	log.Info("Rejected roster command", "op", op, "reason", code, "error", err)
	return err
}

// publish emits a domain event after a committed mutation. Failures are
// logged and never undo the mutation.
func (s *Service) publish(topic pubsub.EventType, data any) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.events.SendMessage(ctx, topic, data); err != nil {
		log.Error("Failed to publish event", "topic", topic, "error", err)
	}
}
