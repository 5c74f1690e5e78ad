package ledger

import (
	"strings"

	"github.com/BhavyaPatel1007/SpendWisePro/internal/models"
)

// Suggestion pairs a category with the transaction type it implies.
type Suggestion struct {
	Category string
	Type     string
}

type keywordRule struct {
	category string
	words    []string
}

// Explicitly-configured keyword tables. Rules are checked in order and
// the first hit wins, so the mapping is deterministic.
var expenseRules = []keywordRule{
	{"Travel", []string{"taxi", "uber", "ola", "petrol", "bus"}},
	{"Food", []string{"lunch", "dinner", "food", "burger", "pizza", "swiggy", "zomato"}},
	{"Rent", []string{"rent", "bill", "electricity", "water"}},
	{"Shopping", []string{"amazon", "flipkart", "buy", "clothes"}},
	{"Health", []string{"hospital", "medicine", "doctor"}},
	{"Entertainment", []string{"movie", "netflix", "game"}},
}

var incomeRules = []keywordRule{
	{"Salary", []string{"salary", "office", "pay"}},
	{"Freelance", []string{"freelance", "project", "client"}},
	{"Investment", []string{"stock", "crypto", "profit", "dividend"}},
	{"Gift", []string{"gift", "birthday", "bonus"}},
}

// SuggestCategory matches a free-text note against the keyword tables.
// Income rules are checked after expense rules. Returns false when no
// keyword matches.
func SuggestCategory(note string) (Suggestion, bool) {
	text := strings.ToLower(note)
	for _, rule := range expenseRules {
		for _, w := range rule.words {
			if strings.Contains(text, w) {
				return Suggestion{Category: rule.category, Type: models.TypeExpense}, true
			}
		}
	}
	for _, rule := range incomeRules {
		for _, w := range rule.words {
			if strings.Contains(text, w) {
				return Suggestion{Category: rule.category, Type: models.TypeIncome}, true
			}
		}
	}
	return Suggestion{}, false
}
