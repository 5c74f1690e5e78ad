package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BhavyaPatel1007/SpendWisePro/internal/database"
	"github.com/BhavyaPatel1007/SpendWisePro/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "handler-test-secret"

// newTestDB opens a fresh migrated in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	// a second pool connection would get its own empty memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestServer wires the handlers against a fresh in-memory database.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db := newTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	authHandler := NewAuthHandler(db, testJWTSecret, 1)
	r.POST("/auth/signup", authHandler.Signup)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/reset-password", authHandler.ResetPassword)
	r.PUT("/auth/profile", middleware.AuthMiddleware(testJWTSecret, db), authHandler.UpdateProfile)

	expenseHandler := NewExpenseHandler(db)
	expenses := r.Group("/api/expenses")
	expenses.Use(middleware.AuthMiddleware(testJWTSecret, db))
	expenses.GET("/stats", expenseHandler.Stats)
	expenses.PUT("/settings", expenseHandler.UpdateSettings)
	expenses.GET("/suggest-category", expenseHandler.SuggestCategory)
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	exportHandler := NewExportHandler(db)
	expenses.GET("/export/csv", exportHandler.ExportCSV)
	expenses.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}

// doJSON performs a request with an optional bearer token.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return m
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var l []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &l); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return l
}

// signupUser registers an account and returns its bearer token.
func signupUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/auth/signup", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body %s", w.Code, w.Body.String())
	}

	token, _ := decodeMap(t, w)["token"].(string)
	if token == "" {
		t.Fatal("signup returned no token")
	}
	return token
}

// addTransaction posts a raw transaction and returns the created record.
func addTransaction(t *testing.T, r *gin.Engine, token string, body gin.H) map[string]any {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/expenses", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create transaction status = %d, body %s", w.Code, w.Body.String())
	}
	return decodeMap(t, w)
}

func txPath(id any) string {
	return fmt.Sprintf("/api/expenses/%v", id)
}
