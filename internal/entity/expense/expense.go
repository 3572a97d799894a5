package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// PostgREST numeric columns want plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Record is a single expense row. CategoryName and CategoryIcon are a
// snapshot of the category taken at creation time; they are not re-derived
// when the category is later renamed.
type Record struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	CategoryID      uuid.UUID       `json:"category_id"`
	CategoryName    string          `json:"category_name"`
	CategoryIcon    string          `json:"category_icon"`
	ExpenseType     *string         `json:"expense_type"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Metadata        map[string]any  `json:"metadata,omitempty"`
}
