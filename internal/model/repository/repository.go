// Package repository implements the category and expense data access
// layer over the remote PostgREST store. Each repository instance keeps an
// in-memory copy of the last successful list result; the remote store is
// the single source of truth and the copy is fully replaced on every
// fetch. Instances are not synchronized with each other, so two
// repositories held concurrently can diverge until their next refresh.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	"github.com/quoc48/expense-tracker/internal/clients/postgrest"
)

const (
	categoriesTable  = "categories"
	expensesTable    = "expenses"
	defaultListLimit = 50
)

type session interface {
	UserID() (uuid.UUID, bool)
}

type store interface {
	Select(ctx context.Context, table string, q postgrest.Query, dest any) error
	Insert(ctx context.Context, table string, row any, dest any) error
	Update(ctx context.Context, table string, q postgrest.Query, patch any) error
	Delete(ctx context.Context, table string, q postgrest.Query) error
}

func startSpan(ctx context.Context, op string) (opentracing.Span, context.Context) {
	return opentracing.StartSpanFromContext(ctx, op)
}

func finishSpan(span opentracing.Span, err error) {
	if err != nil {
		ext.Error.Set(span, true)
	}
	span.Finish()
}
