package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func Test_OnSpendOverBudget_ShouldClampProgressButNotPercent(t *testing.T) {
	status := CompareBudget(decimal.NewFromInt(12_000_000), decimal.NewFromInt(10_000_000))

	assert.InDelta(t, 120.0, status.PercentUsed, 0.0001)
	assert.InDelta(t, 100.0, status.Progress, 0.0001)
	assert.True(t, status.Exceeded())
	assert.False(t, status.NearLimit())
	assert.True(t, decimal.NewFromInt(-2_000_000).Equal(status.Remaining))
}

func Test_OnNinetyPercentSpend_ShouldBeNearLimit(t *testing.T) {
	status := CompareBudget(decimal.NewFromInt(9_000_000), decimal.NewFromInt(10_000_000))

	assert.InDelta(t, 90.0, status.PercentUsed, 0.0001)
	assert.True(t, status.NearLimit())
	assert.False(t, status.Exceeded())
}

func Test_OnModerateSpend_ShouldRaiseNoAlert(t *testing.T) {
	status := CompareBudget(decimal.NewFromInt(4_500_000), decimal.NewFromInt(10_000_000))

	assert.InDelta(t, 45.0, status.PercentUsed, 0.0001)
	assert.InDelta(t, 45.0, status.Progress, 0.0001)
	assert.False(t, status.NearLimit())
	assert.False(t, status.Exceeded())
}

func Test_OnZeroBudget_ShouldReportZeroUsage(t *testing.T) {
	status := CompareBudget(decimal.NewFromInt(100), decimal.Zero)

	assert.Zero(t, status.PercentUsed)
	assert.Zero(t, status.Progress)
	assert.False(t, status.Exceeded())
}
