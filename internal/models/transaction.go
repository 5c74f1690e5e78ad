package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. Direction is carried solely by Type; the stored
// Amount is always positive.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// Transaction is a single canonical ledger record.
type Transaction struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"index;not null"`
	Type      string          `gorm:"size:16;index;not null"`      // Income / Expense
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"` // always > 0
	Category  string          `gorm:"size:50;not null"`
	Note      string          `gorm:"size:255"`
	Date      string          `gorm:"size:10;index;not null"` // YYYY-MM-DD, no time component
	CreatedAt time.Time       // server-assigned, tie-breaks equal dates
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

// SignedAmount returns the display-only signed form: expenses are
// negated, incomes kept as-is. Never persisted.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
