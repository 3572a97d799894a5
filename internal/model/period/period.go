package period

import (
	"time"

	"github.com/jinzhu/now"
)

// Calendar carries the two environment-dependent inputs of period math:
// which day a week starts on and which timezone the boundaries are
// resolved in. Both are configuration, not constants.
type Calendar struct {
	WeekStartDay time.Weekday
	Location     *time.Location
}

func (c Calendar) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.UTC
}

type kind int

const (
	today kind = iota
	thisWeek
	thisMonth
	thisYear
	custom
)

var kindNames = map[kind]string{
	today:     "today",
	thisWeek:  "this-week",
	thisMonth: "this-month",
	thisYear:  "this-year",
	custom:    "custom",
}

// Period names a half-open time range [start, end) that is either anchored
// to the calendar interval containing "now" or supplied explicitly.
type Period struct {
	kind  kind
	start time.Time
	end   time.Time
}

func Today() Period {
	return Period{kind: today}
}

func ThisWeek() Period {
	return Period{kind: thisWeek}
}

func ThisMonth() Period {
	return Period{kind: thisMonth}
}

func ThisYear() Period {
	return Period{kind: thisYear}
}

func Custom(start, end time.Time) Period {
	return Period{kind: custom, start: start, end: end}
}

func (p Period) String() string {
	return kindNames[p.kind]
}

// Range resolves the period against the given instant: the first moment of
// the interval containing "at" up to the first moment of the next interval.
func (p Period) Range(at time.Time, cal Calendar) (start, end time.Time) {
	if p.kind == custom {
		return p.start, p.end
	}

	conf := &now.Config{
		WeekStartDay: cal.WeekStartDay,
		TimeLocation: cal.location(),
	}
	t := conf.With(at.In(cal.location()))

	switch p.kind {
	case today:
		start = t.BeginningOfDay()
		end = start.AddDate(0, 0, 1)
	case thisWeek:
		start = t.BeginningOfWeek()
		end = start.AddDate(0, 0, 7)
	case thisMonth:
		start = t.BeginningOfMonth()
		end = start.AddDate(0, 1, 0)
	case thisYear:
		start = t.BeginningOfYear()
		end = start.AddDate(1, 0, 0)
	}
	return start, end
}
