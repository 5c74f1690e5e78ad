// Package ledger holds the pure core of the tracker: normalization of
// raw client input into canonical records, and aggregation of stored
// records into account statistics. Nothing here touches the database.
package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/BhavyaPatel1007/SpendWisePro/internal/models"

	"github.com/shopspring/decimal"
)

// Validation failures surfaced by Normalize.
var (
	ErrInvalidAmount = errors.New("amount must be a positive number")
	ErrInvalidType   = errors.New("transaction type must be 'Income' or 'Expense'")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
)

const (
	maxCategoryLen  = 50
	maxNoteLen      = 255
	defaultCategory = "Other"
	dateLayout      = "2006-01-02"
)

// RawInput is a transaction as submitted by a client: amount possibly
// negative, date possibly in legacy DD-MM-YYYY order, type optional.
type RawInput struct {
	Amount   string
	Category string
	Date     string
	Note     string
	Type     string
}

// Record is the canonical form stored in the ledger.
type Record struct {
	Type     string
	Amount   decimal.Decimal // unsigned, > 0
	Category string
	Note     string
	Date     string // YYYY-MM-DD
}

// Normalize converts raw client input into a canonical record, or fails
// with one of the ErrInvalid* errors. now supplies the default date for
// blank input. Updates re-run this on the full payload; there is no
// field-wise patching.
func Normalize(raw RawInput, now time.Time) (Record, error) {
	amount, amountErr := decimal.NewFromString(strings.TrimSpace(raw.Amount))

	// Resolve type first: explicit value wins, otherwise infer from the
	// sign of the raw amount (negative means expense).
	typ := strings.TrimSpace(raw.Type)
	if typ == "" {
		if amountErr == nil && amount.IsNegative() {
			typ = models.TypeExpense
		} else {
			typ = models.TypeIncome
		}
	} else {
		typ = strings.ToUpper(typ[:1]) + strings.ToLower(typ[1:])
	}
	if typ != models.TypeIncome && typ != models.TypeExpense {
		return Record{}, ErrInvalidType
	}

	// Sign belongs to the type alone; the stored amount is absolute.
	if amountErr != nil {
		return Record{}, ErrInvalidAmount
	}
	amount = amount.Abs()
	if !amount.IsPositive() {
		return Record{}, ErrInvalidAmount
	}

	date, err := normalizeDate(raw.Date, now)
	if err != nil {
		return Record{}, err
	}

	category := truncate(strings.TrimSpace(raw.Category), maxCategoryLen)
	if category == "" {
		category = defaultCategory
	}
	note := truncate(strings.TrimSpace(raw.Note), maxNoteLen)

	return Record{
		Type:     typ,
		Amount:   amount,
		Category: category,
		Note:     note,
		Date:     date,
	}, nil
}

// normalizeDate rewrites legacy DD-MM-YYYY tokens (2-char first segment,
// 4-char last segment) into YYYY-MM-DD, then requires the result to be a
// real calendar date. The legacy rewrite cannot tell DD-MM from MM-DD
// when both segments are <= 12; it exists only for old clients, new ones
// should send YYYY-MM-DD.
func normalizeDate(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.Format(dateLayout), nil
	}

	if parts := strings.Split(s, "-"); len(parts) == 3 && len(parts[0]) == 2 && len(parts[2]) == 4 {
		s = parts[2] + "-" + parts[1] + "-" + parts[0]
	}

	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return s, nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
