package ledger

import (
	"sort"

	"github.com/BhavyaPatel1007/SpendWisePro/internal/models"

	"github.com/shopspring/decimal"
)

// Totals are computed over the full unfiltered history. Filtering a view
// must never change Balance.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// FilteredStats describe a client-selected subset of the ledger.
type FilteredStats struct {
	Income          decimal.Decimal
	Expense         decimal.Decimal
	PeriodNet       decimal.Decimal // Income - Expense within the subset
	CategorySummary []CategoryTotal
	TopCategory     *CategoryTotal
}

// GlobalTotals sums the whole transaction set on top of the account's
// initial balance: balance = initial + income - expense.
func GlobalTotals(initial decimal.Decimal, all []models.Transaction) Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for i := range all {
		if all[i].Type == models.TypeIncome {
			income = income.Add(all[i].Amount)
		} else {
			expense = expense.Add(all[i].Amount)
		}
	}
	return Totals{
		Income:  income,
		Expense: expense,
		Balance: initial.Add(income).Sub(expense),
	}
}

// Filtered computes period statistics over a subset. The category
// breakdown covers expenses only; income categories are excluded.
func Filtered(subset []models.Transaction) FilteredStats {
	income := decimal.Zero
	expense := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)

	for i := range subset {
		t := &subset[i]
		if t.Type == models.TypeIncome {
			income = income.Add(t.Amount)
			continue
		}
		expense = expense.Add(t.Amount)
		byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
	}

	summary := make([]CategoryTotal, 0, len(byCategory))
	for cat, total := range byCategory {
		summary = append(summary, CategoryTotal{Category: cat, Total: total})
	}
	// Largest total first; equal totals ordered by category name so the
	// top category is reproducible.
	sort.Slice(summary, func(i, j int) bool {
		if !summary[i].Total.Equal(summary[j].Total) {
			return summary[i].Total.GreaterThan(summary[j].Total)
		}
		return summary[i].Category < summary[j].Category
	})

	stats := FilteredStats{
		Income:          income,
		Expense:         expense,
		PeriodNet:       income.Sub(expense),
		CategorySummary: summary,
	}
	if len(summary) > 0 {
		stats.TopCategory = &summary[0]
	}
	return stats
}

// LastExpense returns the most recent expense: latest date, creation
// time as tie-break. Nil when there are no expenses.
func LastExpense(all []models.Transaction) *models.Transaction {
	var last *models.Transaction
	for i := range all {
		t := &all[i]
		if t.Type != models.TypeExpense {
			continue
		}
		if last == nil || t.Date > last.Date ||
			(t.Date == last.Date && t.CreatedAt.After(last.CreatedAt)) {
			last = t
		}
	}
	return last
}
