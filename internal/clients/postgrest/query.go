package postgrest

import (
	"net/url"
	"strconv"
	"strings"
)

type filter struct {
	column string
	value  string
}

type orderTerm struct {
	column    string
	ascending bool
}

// Query accumulates PostgREST filter parameters. The zero value selects
// every row of a table; builder methods return a modified copy so queries
// can be chained.
type Query struct {
	filters []filter
	orders  []orderTerm
	columns []string
	orConds []string
	limit   int
}

func NewQuery() Query {
	return Query{}
}

// cloneAppend never reuses the backing array, so two queries branched
// from the same base cannot clobber each other's later additions.
func cloneAppend[T any](s []T, items ...T) []T {
	out := make([]T, len(s), len(s)+len(items))
	copy(out, s)
	return append(out, items...)
}

func (q Query) Eq(column, value string) Query {
	q.filters = cloneAppend(q.filters, filter{column, "eq." + value})
	return q
}

func (q Query) Gte(column, value string) Query {
	q.filters = cloneAppend(q.filters, filter{column, "gte." + value})
	return q
}

func (q Query) Lte(column, value string) Query {
	q.filters = cloneAppend(q.filters, filter{column, "lte." + value})
	return q
}

func (q Query) Lt(column, value string) Query {
	q.filters = cloneAppend(q.filters, filter{column, "lt." + value})
	return q
}

// Or adds a disjunction of raw conditions, e.g.
// Or("user_id.eq.<id>", "is_default.eq.true").
func (q Query) Or(conditions ...string) Query {
	q.orConds = cloneAppend(q.orConds, "("+strings.Join(conditions, ",")+")")
	return q
}

func (q Query) Order(column string, ascending bool) Query {
	q.orders = cloneAppend(q.orders, orderTerm{column, ascending})
	return q
}

func (q Query) Limit(n int) Query {
	q.limit = n
	return q
}

func (q Query) Select(columns ...string) Query {
	q.columns = cloneAppend(q.columns, columns...)
	return q
}

func (q Query) Values() url.Values {
	values := url.Values{}
	for _, f := range q.filters {
		values.Add(f.column, f.value)
	}
	for _, or := range q.orConds {
		values.Add("or", or)
	}
	if len(q.orders) > 0 {
		terms := make([]string, 0, len(q.orders))
		for _, o := range q.orders {
			direction := ".desc"
			if o.ascending {
				direction = ".asc"
			}
			terms = append(terms, o.column+direction)
		}
		values.Set("order", strings.Join(terms, ","))
	}
	if len(q.columns) > 0 {
		values.Set("select", strings.Join(q.columns, ","))
	}
	if q.limit > 0 {
		values.Set("limit", strconv.Itoa(q.limit))
	}
	return values
}
