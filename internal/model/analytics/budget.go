package analytics

import "github.com/shopspring/decimal"

// BudgetStatus compares spend against a monthly budget. PercentUsed is the
// raw percentage used for alerting; Progress is the same value clamped to
// [0, 100] for rendering a progress bar.
type BudgetStatus struct {
	Budget      decimal.Decimal
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
	PercentUsed float64
	Progress    float64
}

const (
	exceededThreshold  = 100.0
	nearLimitThreshold = 90.0
)

func CompareBudget(spent, budget decimal.Decimal) BudgetStatus {
	status := BudgetStatus{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget.Sub(spent),
	}
	if !budget.IsPositive() {
		return status
	}

	status.PercentUsed = spent.Div(budget).InexactFloat64() * 100
	status.Progress = status.PercentUsed
	if status.Progress > 100 {
		status.Progress = 100
	}
	if status.Progress < 0 {
		status.Progress = 0
	}
	return status
}

func (b BudgetStatus) Exceeded() bool {
	return b.PercentUsed >= exceededThreshold
}

func (b BudgetStatus) NearLimit() bool {
	return b.PercentUsed >= nearLimitThreshold && !b.Exceeded()
}
