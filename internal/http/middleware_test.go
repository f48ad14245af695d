package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPLimiterEvictsIdleClients(t *testing.T) {
	now := time.Date(2024, time.July, 5, 9, 0, 0, 0, time.UTC)
	limiter := newIPLimiter(3, time.Minute)
	limiter.now = func() time.Time { return now }

	first := limiter.getLimiter("10.0.0.1")
	limiter.getLimiter("10.0.0.2")
	require.Len(t, limiter.limiters, 2)

	now = now.Add(limiterIdleTTL / 2)
	assert.Same(t, first, limiter.getLimiter("10.0.0.1"), "active clients keep their limiter")

	now = now.Add(limiterIdleTTL/2 + time.Second)
	limiter.getLimiter("10.0.0.3")

	assert.Len(t, limiter.limiters, 2)
	assert.Contains(t, limiter.limiters, "10.0.0.1")
	assert.Contains(t, limiter.limiters, "10.0.0.3")
	assert.NotContains(t, limiter.limiters, "10.0.0.2")
}

func TestIPLimiterBurst(t *testing.T) {
	limiter := newIPLimiter(0, time.Minute)
	l := limiter.getLimiter("10.0.0.1")

	assert.True(t, l.Allow())
	assert.False(t, l.Allow(), "a zero limit still allows a single request")
}
