package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/quoc48/expense-tracker/internal/clients/postgrest"
	"github.com/quoc48/expense-tracker/internal/entity/category"
	"github.com/quoc48/expense-tracker/internal/logger"
	"github.com/quoc48/expense-tracker/internal/model/customerr"
)

// CategoryRepo reads and mutates the `categories` table. Default
// categories are immutable through this path; only owned categories may be
// updated or deleted.
type CategoryRepo struct {
	store   store
	session session
	clock   func() time.Time
	cached  []category.Record
}

func NewCategoryRepo(store store, session session) *CategoryRepo {
	return &CategoryRepo{
		store:   store,
		session: session,
		clock:   time.Now,
	}
}

// ListAll returns every visible category ordered by name. Visibility
// beyond that is the store's row-level security policy, not a client
// concern.
func (r *CategoryRepo) ListAll(ctx context.Context) (cats []category.Record, err error) {
	span, ctx := startSpan(ctx, "category.list")
	defer func() { finishSpan(span, err) }()
	defer r.observe("list", r.clock(), &err)

	q := postgrest.NewQuery().Order("name", true)
	if err = r.store.Select(ctx, categoriesTable, q, &cats); err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	r.cached = cats
	return cats, nil
}

// ListDefaults returns the system-provided categories ordered by name.
func (r *CategoryRepo) ListDefaults(ctx context.Context) (cats []category.Record, err error) {
	span, ctx := startSpan(ctx, "category.list_defaults")
	defer func() { finishSpan(span, err) }()
	defer r.observe("list_defaults", r.clock(), &err)

	q := postgrest.NewQuery().
		Eq("is_default", "true").
		Order("name", true)
	if err = r.store.Select(ctx, categoriesTable, q, &cats); err != nil {
		return nil, errors.Wrap(err, "list default categories")
	}
	r.cached = cats
	return cats, nil
}

// ListForCurrentUser returns the current user's categories together with
// the defaults, defaults first, then by name.
func (r *CategoryRepo) ListForCurrentUser(ctx context.Context) (cats []category.Record, err error) {
	span, ctx := startSpan(ctx, "category.list_for_user")
	defer func() { finishSpan(span, err) }()
	defer r.observe("list_for_user", r.clock(), &err)

	userID, ok := r.session.UserID()
	if !ok {
		return nil, customerr.ErrUnauthenticated
	}

	q := postgrest.NewQuery().
		Or("user_id.eq."+userID.String(), "is_default.eq.true").
		Order("is_default", false).
		Order("name", true)
	if err = r.store.Select(ctx, categoriesTable, q, &cats); err != nil {
		return nil, errors.Wrap(err, "list user categories")
	}
	r.cached = cats
	return cats, nil
}

// Create persists a new user-owned category and returns the stored row.
func (r *CategoryRepo) Create(ctx context.Context, name, icon, color string, defaultType *string) (created category.Record, err error) {
	span, ctx := startSpan(ctx, "category.create")
	defer func() { finishSpan(span, err) }()
	defer r.observe("create", r.clock(), &err)

	userID, ok := r.session.UserID()
	if !ok {
		return category.Record{}, customerr.ErrUnauthenticated
	}

	rec := category.Record{
		ID:          uuid.New(),
		Name:        name,
		Icon:        icon,
		Color:       color,
		DefaultType: defaultType,
		IsDefault:   false,
		UserID:      &userID,
		CreatedAt:   r.clock(),
	}

	var rows []category.Record
	if err = r.store.Insert(ctx, categoriesTable, rec, &rows); err != nil {
		return category.Record{}, errors.Wrap(err, "create category")
	}
	if len(rows) == 0 {
		return category.Record{}, customerr.ErrCreationFailed
	}

	r.cached = append(r.cached, rows[0])
	sort.Slice(r.cached, func(i, j int) bool {
		return r.cached[i].Name < r.cached[j].Name
	})
	return rows[0], nil
}

// CategoryUpdate is the set of fields an update may change; nil fields are
// left untouched.
type CategoryUpdate struct {
	Name  *string
	Icon  *string
	Color *string
}

// Update patches an owned category with the provided fields. Default
// categories and categories owned by someone else are rejected before any
// remote call.
func (r *CategoryRepo) Update(ctx context.Context, cat category.Record, upd CategoryUpdate) (err error) {
	span, ctx := startSpan(ctx, "category.update")
	defer func() { finishSpan(span, err) }()
	defer r.observe("update", r.clock(), &err)

	userID, ok := r.session.UserID()
	if !ok {
		return customerr.ErrUnauthenticated
	}
	if !cat.OwnedBy(userID) {
		return customerr.ErrForbidden
	}

	patch := map[string]any{"updated_at": r.clock()}
	if upd.Name != nil {
		patch["name"] = *upd.Name
	}
	if upd.Icon != nil {
		patch["icon"] = *upd.Icon
	}
	if upd.Color != nil {
		patch["color"] = *upd.Color
	}

	q := postgrest.NewQuery().Eq("id", cat.ID.String())
	if err = r.store.Update(ctx, categoriesTable, q, patch); err != nil {
		return errors.Wrap(err, "update category")
	}

	for i := range r.cached {
		if r.cached[i].ID != cat.ID {
			continue
		}
		if upd.Name != nil {
			r.cached[i].Name = *upd.Name
		}
		if upd.Icon != nil {
			r.cached[i].Icon = *upd.Icon
		}
		if upd.Color != nil {
			r.cached[i].Color = *upd.Color
		}
		break
	}
	return nil
}

// Delete removes an owned category remotely and from the local list.
func (r *CategoryRepo) Delete(ctx context.Context, cat category.Record) (err error) {
	span, ctx := startSpan(ctx, "category.delete")
	defer func() { finishSpan(span, err) }()
	defer r.observe("delete", r.clock(), &err)

	userID, ok := r.session.UserID()
	if !ok {
		return customerr.ErrUnauthenticated
	}
	if !cat.OwnedBy(userID) {
		return customerr.ErrForbidden
	}

	q := postgrest.NewQuery().Eq("id", cat.ID.String())
	if err = r.store.Delete(ctx, categoriesTable, q); err != nil {
		return errors.Wrap(err, "delete category")
	}

	kept := r.cached[:0]
	for _, c := range r.cached {
		if c.ID != cat.ID {
			kept = append(kept, c)
		}
	}
	r.cached = kept
	return nil
}

// FindCached looks the category up in the last loaded list without going
// to the remote store.
func (r *CategoryRepo) FindCached(id uuid.UUID) (category.Record, error) {
	for _, c := range r.cached {
		if c.ID == id {
			return c, nil
		}
	}
	return category.Record{}, customerr.ErrNotFound
}

// Cached returns the last loaded list.
func (r *CategoryRepo) Cached() []category.Record {
	return r.cached
}

func (r *CategoryRepo) observe(op string, start time.Time, err *error) {
	observeRemote(categoriesTable, op, r.clock().Sub(start), *err != nil)
	if *err != nil {
		logger.Error("category repository", zap.String("op", op), zap.Error(*err))
	}
}
