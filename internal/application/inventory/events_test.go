package inventory_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/inventory-ledger/internal/application/inventory"
	"github.com/xiebiao/inventory-ledger/pkg/circuitbreaker"
	"github.com/xiebiao/inventory-ledger/pkg/metrics"
)

func TestGuardedPublisher_OpensAfterFailures(t *testing.T) {
	next := &recordingPublisher{err: errors.New("connection refused")}
	cb := circuitbreaker.NewCircuitBreaker("mq-test", circuitbreaker.Config{
		Timeout:       time.Minute,
		ReadyToTrip:   func(c circuitbreaker.Counts) bool { return c.ConsecutiveFailures >= 2 },
		OnStateChange: inventory.BreakerStateRecorder(slog.Default()),
	})
	pub := inventory.NewGuardedPublisher(next, cb)
	ctx := context.Background()

	assert.Error(t, pub.Publish(ctx, inventory.EventStockMoved, nil))
	assert.Error(t, pub.Publish(ctx, inventory.EventStockMoved, nil))
	assert.Equal(t, circuitbreaker.StateOpen, cb.State())

	// 熔断打开后不再调用下游
	err := pub.Publish(ctx, inventory.EventStockMoved, nil)
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
	assert.Len(t, next.Keys(), 2)

	assert.Equal(t, float64(circuitbreaker.StateOpen), testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("mq-test")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("mq-test", "rejected")))
}

func TestGuardedPublisher_PassesThrough(t *testing.T) {
	next := &recordingPublisher{}
	pub := inventory.NewGuardedPublisher(next, circuitbreaker.NewCircuitBreaker("mq-ok", circuitbreaker.Config{}))

	assert.NoError(t, pub.Publish(context.Background(), inventory.EventItemCreated, inventory.ItemEvent{ItemID: 1}))
	assert.Equal(t, []string{inventory.EventItemCreated}, next.Keys())
}

func TestNoopPublisher(t *testing.T) {
	var p inventory.EventPublisher = inventory.NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), "any", nil))
}
