package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/BhavyaPatel1007/SpendWisePro/internal/ledger"
	"github.com/BhavyaPatel1007/SpendWisePro/internal/middleware"
	"github.com/BhavyaPatel1007/SpendWisePro/internal/models"
	"github.com/BhavyaPatel1007/SpendWisePro/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExpenseHandler serves the ledger CRUD, statistics and settings.
type ExpenseHandler struct {
	DB *gorm.DB
}

func NewExpenseHandler(db *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{DB: db}
}

// ---------- request/response shapes ----------

type transactionReq struct {
	Amount   any    `json:"amount"` // number or numeric string, sign allowed
	Category string `json:"category"`
	Date     string `json:"date"`
	Note     string `json:"note"`
	Type     string `json:"type"`
}

func (r *transactionReq) raw() ledger.RawInput {
	return ledger.RawInput{
		Amount:   amountString(r.Amount),
		Category: r.Category,
		Date:     r.Date,
		Note:     r.Note,
		Type:     r.Type,
	}
}

func amountString(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case string:
		return n
	}
	return ""
}

type transactionResp struct {
	ID        uint      `json:"id"`
	Amount    float64   `json:"amount"` // signed by type, display only
	Category  string    `json:"category"`
	Date      string    `json:"date"`
	Note      string    `json:"note"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:        t.ID,
		Amount:    t.SignedAmount().InexactFloat64(),
		Category:  t.Category,
		Date:      t.Date,
		Note:      t.Note,
		Type:      t.Type,
		CreatedAt: t.CreatedAt,
	}
}

func writeNormalizeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		util.Error(c, http.StatusBadRequest, "Amount must be a positive number.")
	case errors.Is(err, ledger.ErrInvalidType):
		util.Error(c, http.StatusBadRequest, "Invalid transaction type. Must be 'Income' or 'Expense'.")
	case errors.Is(err, ledger.ErrInvalidDate):
		util.Error(c, http.StatusBadRequest, "Invalid date. Expected YYYY-MM-DD.")
	default:
		util.Error(c, http.StatusBadRequest, "Invalid transaction")
	}
}

// ---------- list ----------

func (h *ExpenseHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var transactions []models.Transaction
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date DESC, created_at DESC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error fetching transactions")
		return
	}

	items := make([]transactionResp, 0, len(transactions))
	for i := range transactions {
		items = append(items, toTransactionResp(&transactions[i]))
	}
	c.JSON(http.StatusOK, items)
}

// ---------- add ----------

func (h *ExpenseHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := ledger.Normalize(req.raw(), time.Now())
	if err != nil {
		writeNormalizeError(c, err)
		return
	}

	transaction := models.Transaction{
		UserID:   user.ID,
		Type:     rec.Type,
		Amount:   rec.Amount,
		Category: rec.Category,
		Note:     rec.Note,
		Date:     rec.Date,
	}
	if err := h.DB.Create(&transaction).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to save transaction")
		return
	}

	c.JSON(http.StatusCreated, toTransactionResp(&transaction))
}

// ---------- update ----------

// Update replaces every mutable field. The full payload goes back
// through the normalizer, so partial edits still re-validate everything.
func (h *ExpenseHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		util.Error(c, http.StatusNotFound, "Transaction not found or unauthorized")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := ledger.Normalize(req.raw(), time.Now())
	if err != nil {
		writeNormalizeError(c, err)
		return
	}

	res := h.DB.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Updates(map[string]any{
			"type":     rec.Type,
			"amount":   rec.Amount,
			"category": rec.Category,
			"note":     rec.Note,
			"date":     rec.Date,
		})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, "Server error updating transaction")
		return
	}
	// Not-owned and non-existent rows are indistinguishable on purpose.
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "Transaction not found or unauthorized")
		return
	}

	util.Message(c, http.StatusOK, "Transaction updated successfully")
}

// ---------- delete ----------

func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		util.Error(c, http.StatusNotFound, "Transaction not found or unauthorized")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Transaction{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, "Server error deleting transaction")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "Transaction not found or unauthorized")
		return
	}

	util.Message(c, http.StatusOK, "Transaction deleted successfully")
}

// ---------- stats ----------

// Stats returns global totals plus, when filter query params are
// present, period statistics over the matching subset. The balance is
// always computed over the full history.
func (h *ExpenseHandler) Stats(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var all []models.Transaction
	if err := h.DB.Where("user_id = ?", user.ID).Find(&all).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error fetching stats")
		return
	}

	totals := ledger.GlobalTotals(user.InitialBalance, all)

	f := ledger.Filter{
		Category: c.Query("category"),
		Month:    c.Query("month"),
		Search:   c.Query("q"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	}
	subset := ledger.Apply(all, f, time.Now())
	filtered := ledger.Filtered(subset)

	summary := make([]gin.H, 0, len(filtered.CategorySummary))
	for _, ct := range filtered.CategorySummary {
		summary = append(summary, gin.H{
			"category": ct.Category,
			"total":    ct.Total.InexactFloat64(),
		})
	}

	var lastExpense gin.H
	if last := ledger.LastExpense(all); last != nil {
		lastExpense = gin.H{
			"amount":     last.Amount.InexactFloat64(),
			"date":       last.Date,
			"created_at": last.CreatedAt,
		}
	}

	resp := gin.H{
		"totals": gin.H{
			"income":  totals.Income.InexactFloat64(),
			"expense": totals.Expense.InexactFloat64(),
			"balance": totals.Balance.InexactFloat64(),
		},
		"categorySummary": summary,
		"lastExpense":     lastExpense,
	}

	if !f.IsZero() {
		filteredBlock := gin.H{
			"income":    filtered.Income.InexactFloat64(),
			"expense":   filtered.Expense.InexactFloat64(),
			"periodNet": filtered.PeriodNet.InexactFloat64(),
		}
		if filtered.TopCategory != nil {
			filteredBlock["topCategory"] = gin.H{
				"category": filtered.TopCategory.Category,
				"total":    filtered.TopCategory.Total.InexactFloat64(),
			}
		}
		resp["filtered"] = filteredBlock
	}

	c.JSON(http.StatusOK, resp)
}

// ---------- settings ----------

type updateSettingsReq struct {
	InitialBalance any    `json:"initial_balance"`
	Currency       string `json:"currency"`
}

// UpdateSettings changes the account's initial balance and display
// currency. Unlike the profile endpoint a negative balance is allowed.
func (h *ExpenseHandler) UpdateSettings(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "User not found in session")
		return
	}

	var req updateSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	balance := parseBalance(req.InitialBalance)
	currency := normalizeCurrency(req.Currency)

	if err := h.DB.Model(user).Updates(map[string]any{
		"initial_balance": balance,
		"currency":        currency,
	}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error saving settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Settings saved!",
		"initial_balance": balance.InexactFloat64(),
		"currency":        currency,
	})
}

// ---------- category suggestion ----------

// SuggestCategory matches a free-text note against the configured
// keyword table. Convenience for the transaction form; never required.
func (h *ExpenseHandler) SuggestCategory(c *gin.Context) {
	s, ok := ledger.SuggestCategory(c.Query("note"))
	if !ok {
		c.JSON(http.StatusOK, gin.H{"match": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"match":    true,
		"category": s.Category,
		"type":     s.Type,
	})
}
