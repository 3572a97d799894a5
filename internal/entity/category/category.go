package category

import (
	"time"

	"github.com/google/uuid"
)

// Record is a spending category row as stored in the remote `categories`
// table. Default categories are system-provided, visible to everyone and
// carry no owner; user-created ones belong to exactly one user.
type Record struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Icon        string     `json:"icon"`
	Color       string     `json:"color"`
	DefaultType *string    `json:"default_type"`
	IsDefault   bool       `json:"is_default"`
	UserID      *uuid.UUID `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (r Record) OwnedBy(userID uuid.UUID) bool {
	return r.UserID != nil && *r.UserID == userID
}

// Defaults returns the system default category set. Fresh IDs are
// assigned on each call, so the result is safe to mutate in tests and
// demo output.
func Defaults() []Record {
	seed := []struct {
		name, icon, defaultType string
	}{
		{"Thực phẩm", "🍜", "food"},
		{"Tạp hoá", "🛒", "groceries"},
		{"Thời trang", "👔", "fashion"},
		{"Giáo dục", "📚", "education"},
		{"Tiền nhà", "🏠", "housing"},
	}

	records := make([]Record, 0, len(seed))
	for _, s := range seed {
		dt := s.defaultType
		records = append(records, Record{
			ID:          uuid.New(),
			Name:        s.name,
			Icon:        s.icon,
			Color:       "#007AFF",
			DefaultType: &dt,
			IsDefault:   true,
		})
	}
	return records
}
