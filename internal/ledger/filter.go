package ledger

import (
	"strings"
	"time"

	"github.com/BhavyaPatel1007/SpendWisePro/internal/models"
)

// Month window selectors.
const (
	MonthThis = "this"
	MonthLast = "last"
)

// Filter selects a subset of the ledger for period statistics. Zero
// value matches everything. Filters never affect the account balance.
type Filter struct {
	Category string // exact category, "" or "All" matches any
	Month    string // "", MonthThis or MonthLast
	Search   string // case-insensitive substring over note and category
	From     string // inclusive YYYY-MM-DD lower bound
	To       string // inclusive YYYY-MM-DD upper bound
}

// IsZero reports whether the filter matches the whole ledger.
func (f Filter) IsZero() bool {
	return (f.Category == "" || f.Category == "All") &&
		f.Month == "" && f.Search == "" && f.From == "" && f.To == ""
}

// Match reports whether a single transaction falls inside the filter.
// now anchors the month window.
func (f Filter) Match(t *models.Transaction, now time.Time) bool {
	if f.Category != "" && f.Category != "All" && t.Category != f.Category {
		return false
	}

	if f.Month != "" {
		d, err := time.Parse(dateLayout, t.Date)
		if err != nil {
			return false
		}
		anchor := now
		if f.Month == MonthLast {
			// AddDate normalizes short months forward (Mar 31 -> Feb 31
			// -> Mar 3), so on the 29th-31st the last-month window lands
			// on the current month. Long-standing client-visible
			// behavior; changing it is an API change, not a bug fix.
			anchor = now.AddDate(0, -1, 0)
		}
		if d.Year() != anchor.Year() || d.Month() != anchor.Month() {
			return false
		}
	}

	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Note), q) &&
			!strings.Contains(strings.ToLower(t.Category), q) {
			return false
		}
	}

	// ISO dates compare correctly as strings.
	if f.From != "" && t.Date < f.From {
		return false
	}
	if f.To != "" && t.Date > f.To {
		return false
	}
	return true
}

// Apply returns the matching subset, preserving input order.
func Apply(all []models.Transaction, f Filter, now time.Time) []models.Transaction {
	if f.IsZero() {
		return all
	}
	subset := make([]models.Transaction, 0, len(all))
	for i := range all {
		if f.Match(&all[i], now) {
			subset = append(subset, all[i])
		}
	}
	return subset
}
