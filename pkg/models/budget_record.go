package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripbudget/backend/internal/types"
	"gorm.io/gorm"
)

// BudgetRecord is a single ledger entry.
//
// Negative amounts are expenses, everything else is ignored for spend.
// Records are only ever created and deleted.
type BudgetRecord struct {
	DefaultModel
	Category    string          `json:"category" example:"food"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"-12.50"`
	Description string          `json:"description" example:"Ramen for lunch"`
	Date        types.Date      `json:"date" swaggertype:"primitive,string" example:"2024-05-02"`
	ItineraryID *uuid.UUID      `json:"itineraryId" gorm:"type:uuid;index" example:"65392deb-5e92-4268-b114-297faad6cdce"` // Itinerary the record belongs to. Empty for records that are not bound to a trip
}

func (r *BudgetRecord) BeforeSave(_ *gorm.DB) error {
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)

	if r.Date.IsZero() {
		r.Date = types.Today()
	}

	return nil
}

// IsSpend reports whether the record counts as an expense.
func (r BudgetRecord) IsSpend() bool {
	return r.Amount.IsNegative()
}
