package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an application account. Exactly one auth path is
// meaningful per user: a local bcrypt hash, or a GoogleID with an
// unusable placeholder hash.
type User struct {
	ID             uint            `gorm:"primaryKey"`
	Name           string          `gorm:"size:64;not null"`
	Email          string          `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash   string          `gorm:"size:255;not null"`
	GoogleID       string          `gorm:"size:64;index"`
	InitialBalance decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency       string          `gorm:"size:8;default:$"`
	Phone          string          `gorm:"size:32"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
