package roster

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/metrics"
	"github.com/mauv0809/club-ranker/internal/pubsub"
	"github.com/mauv0809/club-ranker/internal/stats"
)

// MaxTally caps the wins or games a single session record may hold, which
// keeps window sums far from integer overflow.
const MaxTally = 1_000_000

const (
	publishTimeout = 5 * time.Second
	maxSuggestions = 3
)

// Service validates and applies roster commands and serves the ranked views.
type Service struct {
	store      Store
	metrics    metrics.Metrics
	events     pubsub.PubSubClient
	clock      clockwork.Clock
	windowSize int
	newID      func() string
}

// Shortlist is a ranked subset of players, optionally labelled with the
// session it was drawn up for.
type Shortlist struct {
	Session *club.Session  `json:"session,omitempty"`
	Entries []stats.Ranked `json:"entries"`
}
