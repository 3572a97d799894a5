package repository

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/quoc48/expense-tracker/internal/clients/postgrest"
)

type fakeSession struct {
	id     uuid.UUID
	signed bool
}

func (s fakeSession) UserID() (uuid.UUID, bool) {
	return s.id, s.signed
}

type storeCall struct {
	op    string
	table string
	query url.Values
	row   any
	patch any
}

// fakeStore records every remote call and serves canned responses, so
// tests can assert both the issued queries and that guard failures issue
// no call at all.
type fakeStore struct {
	calls []storeCall

	selectRows any
	selectErr  error
	insertRows any
	insertErr  error
	updateErr  error
	deleteErr  error
}

func (f *fakeStore) Select(_ context.Context, table string, q postgrest.Query, dest any) error {
	f.calls = append(f.calls, storeCall{op: "select", table: table, query: q.Values()})
	if f.selectErr != nil {
		return f.selectErr
	}
	return copyJSON(f.selectRows, dest)
}

func (f *fakeStore) Insert(_ context.Context, table string, row any, dest any) error {
	f.calls = append(f.calls, storeCall{op: "insert", table: table, row: row})
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.insertRows != nil {
		return copyJSON(f.insertRows, dest)
	}
	// Echo the inserted row back as the stored representation.
	return copyJSON([]any{row}, dest)
}

func (f *fakeStore) Update(_ context.Context, table string, q postgrest.Query, patch any) error {
	f.calls = append(f.calls, storeCall{op: "update", table: table, query: q.Values(), patch: patch})
	return f.updateErr
}

func (f *fakeStore) Delete(_ context.Context, table string, q postgrest.Query) error {
	f.calls = append(f.calls, storeCall{op: "delete", table: table, query: q.Values()})
	return f.deleteErr
}

func copyJSON(src, dest any) error {
	if src == nil || dest == nil {
		return nil
	}
	raw, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func strPtr(s string) *string {
	return &s
}
