package spending

import (
	"testing"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(amount float64, daysAgo float64, now time.Time) model.Transaction {
	return model.Transaction{
		ID:     "txn",
		Name:   "TEST MERCHANT",
		Amount: amount,
		Date:   now.Add(-time.Duration(daysAgo * 24 * float64(time.Hour))),
	}
}

func TestAggregate_Windows(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	txns := []model.Transaction{
		txn(10, 0.5, now),
		txn(20, 3, now),
		txn(30, 10, now),
		txn(40, 40, now),
	}

	snap := Aggregate(txns, now)

	assert.InDelta(t, 10, snap.Daily, 1e-9)
	assert.InDelta(t, 30, snap.Weekly, 1e-9)
	assert.InDelta(t, 60, snap.Monthly, 1e-9)
}

func TestAggregate_WindowsAreCumulative(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		txns []model.Transaction
	}{
		{
			name: "empty",
			txns: nil,
		},
		{
			name: "single recent transaction counts everywhere",
			txns: []model.Transaction{txn(12.34, 0.1, now)},
		},
		{
			name: "spread across windows",
			txns: []model.Transaction{
				txn(1, 0.2, now),
				txn(2, 2, now),
				txn(3, 6.9, now),
				txn(4, 15, now),
				txn(5, 29.9, now),
			},
		},
		{
			name: "refunds excluded",
			txns: []model.Transaction{
				txn(50, 1, now),
				txn(-20, 1, now),
				txn(0, 1, now),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Aggregate(tt.txns, now)
			assert.GreaterOrEqual(t, snap.Monthly, snap.Weekly)
			assert.GreaterOrEqual(t, snap.Weekly, snap.Daily)
			assert.GreaterOrEqual(t, snap.Daily, 0.0)
		})
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		txn(10.10, 0.5, now),
		txn(20.25, 5, now),
		txn(30.50, 20, now),
	}

	first := Aggregate(txns, now)
	second := Aggregate(txns, now)

	assert.Equal(t, first, second)
}

func TestAggregate_ExcludesNegativeAndFuture(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	txns := []model.Transaction{
		txn(100, 2, now),
		txn(-35, 2, now),   // refund: excluded, not subtracted
		txn(55, -1, now),   // future-dated: excluded
		txn(70, 30.5, now), // outside the monthly window
	}

	snap := Aggregate(txns, now)
	assert.InDelta(t, 100, snap.Monthly, 1e-9)
	assert.InDelta(t, 100, snap.Weekly, 1e-9)
	assert.InDelta(t, 0, snap.Daily, 1e-9)
}

func TestSnapshot_Rounded(t *testing.T) {
	snap := Snapshot{Daily: 10.005, Weekly: 30.0149, Monthly: 60.999}
	rounded := snap.Rounded()

	assert.InDelta(t, 10.0, rounded.Daily, 1e-9)
	assert.InDelta(t, 30.01, rounded.Weekly, 1e-9)
	assert.InDelta(t, 61.0, rounded.Monthly, 1e-9)
}

func TestDemoSnapshot(t *testing.T) {
	snap := DemoSnapshot()

	require.Equal(t, Snapshot{Daily: 45.67, Weekly: 234.89, Monthly: 1247.23}, snap)
	// Deterministic across calls.
	require.Equal(t, snap, DemoSnapshot())
}
