// Package analytics reduces a loaded expense list into presentation-ready
// summaries. Everything here is a pure function over the snapshot it is
// handed; nothing is cached or incrementally maintained.
package analytics

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quoc48/expense-tracker/internal/entity/expense"
)

// CategoryStat is one group of the per-category breakdown. Groups are
// keyed by category id; the display name and icon are resolved once per
// group from its first record, so two categories sharing a display name
// stay separate entries.
type CategoryStat struct {
	CategoryID       uuid.UUID
	CategoryName     string
	CategoryIcon     string
	Amount           decimal.Decimal
	Percentage       float64
	TransactionCount int
}

type Summary struct {
	Total                 decimal.Decimal
	Breakdown             []CategoryStat
	AveragePerCategory    decimal.Decimal
	AveragePerTransaction decimal.Decimal
}

// Summarize reduces the expense list into a total and a per-category
// breakdown sorted by amount descending. Ties break alphabetically on the
// category name so the ordering is deterministic. A zero total yields an
// empty breakdown and zero percentages rather than dividing by zero.
func Summarize(expenses []expense.Record) Summary {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	s := Summary{
		Total:                 total,
		AveragePerTransaction: decimal.Zero,
		AveragePerCategory:    decimal.Zero,
	}
	if !total.IsPositive() {
		return s
	}

	groups := make(map[uuid.UUID]*CategoryStat)
	for _, e := range expenses {
		stat, ok := groups[e.CategoryID]
		if !ok {
			stat = &CategoryStat{
				CategoryID:   e.CategoryID,
				CategoryName: e.CategoryName,
				CategoryIcon: e.CategoryIcon,
				Amount:       decimal.Zero,
			}
			groups[e.CategoryID] = stat
		}
		stat.Amount = stat.Amount.Add(e.Amount)
		stat.TransactionCount++
	}

	breakdown := make([]CategoryStat, 0, len(groups))
	for _, stat := range groups {
		stat.Percentage = stat.Amount.Div(total).InexactFloat64() * 100
		breakdown = append(breakdown, *stat)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		cmp := breakdown[i].Amount.Cmp(breakdown[j].Amount)
		if cmp != 0 {
			return cmp > 0
		}
		return breakdown[i].CategoryName < breakdown[j].CategoryName
	})
	s.Breakdown = breakdown

	s.AveragePerCategory = total.Div(decimal.NewFromInt(int64(len(breakdown))))
	s.AveragePerTransaction = total.Div(decimal.NewFromInt(int64(len(expenses))))
	return s
}

// Top returns the largest breakdown entry.
func (s Summary) Top() (CategoryStat, bool) {
	if len(s.Breakdown) == 0 {
		return CategoryStat{}, false
	}
	return s.Breakdown[0], true
}

// MostFrequent returns the breakdown entry with the most transactions;
// ties keep the first encountered in breakdown order.
func (s Summary) MostFrequent() (CategoryStat, bool) {
	if len(s.Breakdown) == 0 {
		return CategoryStat{}, false
	}
	best := s.Breakdown[0]
	for _, stat := range s.Breakdown[1:] {
		if stat.TransactionCount > best.TransactionCount {
			best = stat
		}
	}
	return best, true
}
