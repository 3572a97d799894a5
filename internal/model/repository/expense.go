package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quoc48/expense-tracker/internal/clients/postgrest"
	"github.com/quoc48/expense-tracker/internal/entity/category"
	"github.com/quoc48/expense-tracker/internal/entity/expense"
	"github.com/quoc48/expense-tracker/internal/logger"
	"github.com/quoc48/expense-tracker/internal/model/customerr"
	"github.com/quoc48/expense-tracker/internal/model/period"
)

// ExpenseRepo reads and mutates the `expenses` table, always scoped to the
// current user.
type ExpenseRepo struct {
	store    store
	session  session
	calendar period.Calendar
	clock    func() time.Time
	cached   []expense.Record
}

func NewExpenseRepo(store store, session session, calendar period.Calendar) *ExpenseRepo {
	return &ExpenseRepo{
		store:    store,
		session:  session,
		calendar: calendar,
		clock:    time.Now,
	}
}

// List returns the user's most recent expenses, newest transaction first.
// A non-positive limit falls back to the default of 50.
func (r *ExpenseRepo) List(ctx context.Context, limit int) (exps []expense.Record, err error) {
	span, ctx := startSpan(ctx, "expense.list")
	defer func() { finishSpan(span, err) }()
	defer r.observe("list", r.clock(), &err)

	userID, ok := r.session.UserID()
	if !ok {
		return nil, customerr.ErrUnauthenticated
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	q := postgrest.NewQuery().
		Eq("user_id", userID.String()).
		Order("transaction_date", false).
		Limit(limit)
	if err = r.store.Select(ctx, expensesTable, q, &exps); err != nil {
		return nil, errors.Wrap(err, "list expenses")
	}
	r.cached = exps
	return exps, nil
}

// ListRange returns the user's expenses whose transaction date lies within
// [from, to] inclusive, newest first.
func (r *ExpenseRepo) ListRange(ctx context.Context, from, to time.Time) (exps []expense.Record, err error) {
	span, ctx := startSpan(ctx, "expense.list_range")
	defer func() { finishSpan(span, err) }()
	defer r.observe("list_range", r.clock(), &err)

	userID, ok := r.session.UserID()
	if !ok {
		return nil, customerr.ErrUnauthenticated
	}

	q := postgrest.NewQuery().
		Eq("user_id", userID.String()).
		Gte("transaction_date", from.Format(time.RFC3339)).
		Lte("transaction_date", to.Format(time.RFC3339)).
		Order("transaction_date", false)
	if err = r.store.Select(ctx, expensesTable, q, &exps); err != nil {
		return nil, errors.Wrap(err, "list expenses by date")
	}
	r.cached = exps
	return exps, nil
}

// ListByCategory returns the user's expenses for one category, newest
// first.
func (r *ExpenseRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) (exps []expense.Record, err error) {
	span, ctx := startSpan(ctx, "expense.list_by_category")
	defer func() { finishSpan(span, err) }()
	defer r.observe("list_by_category", r.clock(), &err)

	userID, ok := r.session.UserID()
	if !ok {
		return nil, customerr.ErrUnauthenticated
	}

	q := postgrest.NewQuery().
		Eq("user_id", userID.String()).
		Eq("category_id", categoryID.String()).
		Order("transaction_date", false)
	if err = r.store.Select(ctx, expensesTable, q, &exps); err != nil {
		return nil, errors.Wrap(err, "list expenses by category")
	}
	r.cached = exps
	return exps, nil
}

// NewExpense carries the fields of an expense to create. Date defaults to
// now and ExpenseType to the category's default type when unset. The
// category's name and icon are copied onto the stored row as they are at
// call time.
type NewExpense struct {
	Amount      decimal.Decimal
	Description string
	Category    category.Record
	Date        *time.Time
	ExpenseType *string
	Metadata    map[string]any
}

// Create persists a new expense and prepends the stored row to the local
// list.
func (r *ExpenseRepo) Create(ctx context.Context, in NewExpense) (created expense.Record, err error) {
	span, ctx := startSpan(ctx, "expense.create")
	defer func() { finishSpan(span, err) }()
	defer r.observe("create", r.clock(), &err)

	userID, ok := r.session.UserID()
	if !ok {
		return expense.Record{}, customerr.ErrUnauthenticated
	}

	date := r.clock()
	if in.Date != nil {
		date = *in.Date
	}
	expenseType := in.ExpenseType
	if expenseType == nil {
		expenseType = in.Category.DefaultType
	}

	rec := expense.Record{
		ID:              uuid.New(),
		UserID:          userID,
		Amount:          in.Amount,
		Description:     in.Description,
		CategoryID:      in.Category.ID,
		CategoryName:    in.Category.Name,
		CategoryIcon:    in.Category.Icon,
		ExpenseType:     expenseType,
		TransactionDate: date,
		CreatedAt:       r.clock(),
		UpdatedAt:       r.clock(),
		Metadata:        in.Metadata,
	}

	var rows []expense.Record
	if err = r.store.Insert(ctx, expensesTable, rec, &rows); err != nil {
		return expense.Record{}, errors.Wrap(err, "create expense")
	}
	if len(rows) == 0 {
		return expense.Record{}, customerr.ErrCreationFailed
	}

	r.cached = append([]expense.Record{rows[0]}, r.cached...)
	return rows[0], nil
}

// ExpenseUpdate is the set of fields an update may change; nil fields are
// left untouched. Setting Category re-snapshots its name and icon.
type ExpenseUpdate struct {
	Amount      *decimal.Decimal
	Description *string
	Category    *category.Record
	Date        *time.Time
	ExpenseType *string
	Metadata    map[string]any
}

// Update patches an owned expense with the provided fields, then reloads
// the whole list from the store. The resync costs one extra round trip but
// keeps the local list authoritative after partial updates.
func (r *ExpenseRepo) Update(ctx context.Context, exp expense.Record, upd ExpenseUpdate) (err error) {
	span, ctx := startSpan(ctx, "expense.update")
	defer func() { finishSpan(span, err) }()
	defer r.observe("update", r.clock(), &err)

	userID, ok := r.session.UserID()
	if !ok {
		return customerr.ErrUnauthenticated
	}
	if exp.UserID != userID {
		return customerr.ErrForbidden
	}

	patch := map[string]any{"updated_at": r.clock()}
	if upd.Amount != nil {
		patch["amount"] = *upd.Amount
	}
	if upd.Description != nil {
		patch["description"] = *upd.Description
	}
	if upd.Category != nil {
		patch["category_id"] = upd.Category.ID.String()
		patch["category_name"] = upd.Category.Name
		patch["category_icon"] = upd.Category.Icon
	}
	if upd.Date != nil {
		patch["transaction_date"] = *upd.Date
	}
	if upd.ExpenseType != nil {
		patch["expense_type"] = *upd.ExpenseType
	}
	if upd.Metadata != nil {
		patch["metadata"] = upd.Metadata
	}

	q := postgrest.NewQuery().Eq("id", exp.ID.String())
	if err = r.store.Update(ctx, expensesTable, q, patch); err != nil {
		return errors.Wrap(err, "update expense")
	}

	if _, reloadErr := r.List(ctx, defaultListLimit); reloadErr != nil {
		// The update itself succeeded; a stale local list is tolerable
		// until the next fetch.
		logger.Warn("expense list resync after update failed", zap.Error(reloadErr))
	}
	return nil
}

// Delete removes an owned expense remotely and from the local list.
func (r *ExpenseRepo) Delete(ctx context.Context, exp expense.Record) (err error) {
	span, ctx := startSpan(ctx, "expense.delete")
	defer func() { finishSpan(span, err) }()
	defer r.observe("delete", r.clock(), &err)

	userID, ok := r.session.UserID()
	if !ok {
		return customerr.ErrUnauthenticated
	}
	if exp.UserID != userID {
		return customerr.ErrForbidden
	}

	q := postgrest.NewQuery().Eq("id", exp.ID.String())
	if err = r.store.Delete(ctx, expensesTable, q); err != nil {
		return errors.Wrap(err, "delete expense")
	}

	kept := r.cached[:0]
	for _, e := range r.cached {
		if e.ID != exp.ID {
			kept = append(kept, e)
		}
	}
	r.cached = kept
	return nil
}

// SumAmount totals the user's spend over the period, fetching only the
// amount column. Failures are logged and reported as a zero total so a
// dashboard widget never breaks on a transient network blip.
func (r *ExpenseRepo) SumAmount(ctx context.Context, p period.Period) decimal.Decimal {
	span, ctx := startSpan(ctx, "expense.sum_amount")
	defer span.Finish()

	userID, ok := r.session.UserID()
	if !ok {
		return decimal.Zero
	}

	start, end := p.Range(r.clock(), r.calendar)

	q := postgrest.NewQuery().
		Select("amount").
		Eq("user_id", userID.String()).
		Gte("transaction_date", start.Format(time.RFC3339)).
		Lt("transaction_date", end.Format(time.RFC3339))

	var rows []struct {
		Amount decimal.Decimal `json:"amount"`
	}
	began := r.clock()
	err := r.store.Select(ctx, expensesTable, q, &rows)
	observeRemote(expensesTable, "sum_amount", r.clock().Sub(began), err != nil)
	if err != nil {
		logger.Error("sum expenses", zap.String("period", p.String()), zap.Error(err))
		return decimal.Zero
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}
	return total
}

// FindCached looks the expense up in the last loaded list without going to
// the remote store.
func (r *ExpenseRepo) FindCached(id uuid.UUID) (expense.Record, error) {
	for _, e := range r.cached {
		if e.ID == id {
			return e, nil
		}
	}
	return expense.Record{}, customerr.ErrNotFound
}

// Cached returns the last loaded list.
func (r *ExpenseRepo) Cached() []expense.Record {
	return r.cached
}

func (r *ExpenseRepo) observe(op string, start time.Time, err *error) {
	observeRemote(expensesTable, op, r.clock().Sub(start), *err != nil)
	if *err != nil {
		logger.Error("expense repository", zap.String("op", op), zap.Error(*err))
	}
}
