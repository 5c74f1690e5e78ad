package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/BhavyaPatel1007/SpendWisePro/internal/middleware"
	"github.com/BhavyaPatel1007/SpendWisePro/internal/models"
	"github.com/BhavyaPatel1007/SpendWisePro/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the caller's ledger as CSV or XLSX. Amounts are
// signed the same way the list endpoint signs them.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Type", "Category", "Amount", "Note", "Date"}

func (h *ExportHandler) loadTransactions(c *gin.Context) ([]models.Transaction, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "User not authenticated")
		return nil, false
	}

	var transactions []models.Transaction
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date DESC, created_at DESC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error fetching transactions")
		return nil, false
	}
	return transactions, true
}

func signedAmountString(t *models.Transaction) string {
	return strconv.FormatFloat(t.SignedAmount().InexactFloat64(), 'f', 2, 64)
}

// ExportCSV writes the ledger as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	transactions, ok := h.loadTransactions(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so Excel renders currency symbols correctly
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)
	for i := range transactions {
		t := &transactions[i]
		writer.Write([]string{
			t.Type,
			t.Category,
			signedAmountString(t),
			t.Note,
			t.Date,
		})
	}
}

// ExportXLSX writes the ledger as a spreadsheet attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	transactions, ok := h.loadTransactions(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Export failed")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range transactions {
		t := &transactions[idx]
		row := idx + 2

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.SignedAmount().InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Note)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.Date)
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "Export failed")
	}
}
