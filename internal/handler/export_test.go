package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

func seedExportLedger(t *testing.T, r *gin.Engine, token string) {
	t.Helper()
	addTransaction(t, r, token, gin.H{
		"amount": 500, "type": "Income", "category": "Salary", "date": "2026-01-05",
	})
	addTransaction(t, r, token, gin.H{
		"amount": 200, "type": "Expense", "category": "Food", "note": "Dinner", "date": "2026-01-10",
	})
}

func TestExportCSV(t *testing.T) {
	r := newTestServer(t)
	token := signupUser(t, r, "export-csv@example.com")
	seedExportLedger(t, r, token)

	w := doJSON(t, r, http.MethodGet, "/api/expenses/export/csv", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Content-Type = %q, want text/csv; charset=utf-8", ct)
	}

	body := w.Body.Bytes()
	bom := []byte{0xEF, 0xBB, 0xBF}
	if !bytes.HasPrefix(body, bom) {
		t.Fatal("CSV body should start with a UTF-8 BOM")
	}

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(body, bom))).ReadAll()
	if err != nil {
		t.Fatalf("parse CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("CSV rows = %d, want header + 2", len(records))
	}
	for i, want := range exportHeaders {
		if records[0][i] != want {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], want)
		}
	}
	// date DESC: the expense comes first, with a signed amount
	if records[1][0] != "Expense" || records[1][2] != "-200.00" {
		t.Errorf("row 1 = %v, want Expense carrying -200.00", records[1])
	}
	if records[1][3] != "Dinner" || records[1][4] != "2026-01-10" {
		t.Errorf("row 1 = %v, want Dinner note on 2026-01-10", records[1])
	}
	if records[2][0] != "Income" || records[2][2] != "500.00" {
		t.Errorf("row 2 = %v, want Income of 500.00", records[2])
	}
}

func TestExportXLSX(t *testing.T) {
	r := newTestServer(t)
	token := signupUser(t, r, "export-xlsx@example.com")
	seedExportLedger(t, r, token)

	w := doJSON(t, r, http.MethodGet, "/api/expenses/export/xlsx", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d, body %s", w.Code, w.Body.String())
	}
	want := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if ct := w.Header().Get("Content-Type"); ct != want {
		t.Errorf("Content-Type = %q, want %q", ct, want)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue("Transactions", "A1"); v != "Type" {
		t.Errorf("A1 = %q, want Type header", v)
	}
	// date DESC with signed amounts, as in the CSV
	if v, _ := f.GetCellValue("Transactions", "A2"); v != "Expense" {
		t.Errorf("A2 = %q, want Expense first", v)
	}
	if v, _ := f.GetCellValue("Transactions", "C2"); v != "-200" {
		t.Errorf("C2 = %q, want -200", v)
	}
	if v, _ := f.GetCellValue("Transactions", "C3"); v != "500" {
		t.Errorf("C3 = %q, want 500", v)
	}
}

func TestExport_RequiresAuth(t *testing.T) {
	r := newTestServer(t)

	for _, path := range []string{"/api/expenses/export/csv", "/api/expenses/export/xlsx"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, w.Code)
		}
	}
}
