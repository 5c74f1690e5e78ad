package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/BhavyaPatel1007/SpendWisePro/internal/middleware"
	"github.com/BhavyaPatel1007/SpendWisePro/internal/models"
	"github.com/BhavyaPatel1007/SpendWisePro/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 10

// Display currencies the account can be set to. Anything else falls
// back to the default dollar sign.
var validCurrencies = []string{"₹", "$", "€", "£", "¥"}

const defaultCurrency = "$"

// AuthHandler serves signup/login/profile/reset-password.
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		DB:        db,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

// userPayload is the user object shape every auth response shares.
func userPayload(u *models.User) gin.H {
	currency := u.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	return gin.H{
		"id":              u.ID,
		"name":            u.Name,
		"email":           u.Email,
		"initial_balance": u.InitialBalance.InexactFloat64(),
		"currency":        currency,
		"phone":           u.Phone,
		"created_at":      u.CreatedAt,
	}
}

func normalizeCurrency(s string) string {
	for _, c := range validCurrencies {
		if s == c {
			return s
		}
	}
	return defaultCurrency
}

// parseBalance accepts a JSON number or numeric string; anything else
// is treated as zero, matching the original API's lenient parsing.
func parseBalance(v any) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(n)); err == nil {
			return d
		}
	}
	return decimal.Zero
}

// ---------- signup ----------

type signupReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	var count int64
	if err := h.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error during signup")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error during signup")
		return
	}

	user := models.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          req.Email,
		PasswordHash:   string(hash),
		InitialBalance: decimal.Zero,
		Currency:       defaultCurrency,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error during signup")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error during signup")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  userPayload(&user),
	})
}

// ---------- login ----------

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", strings.TrimSpace(req.Email)).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusBadRequest, "Invalid credentials")
		} else {
			util.Error(c, http.StatusInternalServerError, "Server error during login")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error during login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userPayload(&user),
	})
}

// ---------- profile ----------

type updateProfileReq struct {
	Name           string `json:"name"`
	InitialBalance any    `json:"initial_balance"`
	Currency       string `json:"currency"`
	Phone          string `json:"phone"`
}

// UpdateProfile replaces the account's profile fields. Email is
// immutable and not accepted here.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, "Name is required")
		return
	}

	balance := parseBalance(req.InitialBalance)
	if balance.IsNegative() {
		util.Error(c, http.StatusBadRequest, "Initial balance cannot be negative")
		return
	}

	updates := map[string]any{
		"name":            req.Name,
		"initial_balance": balance,
		"currency":        normalizeCurrency(req.Currency),
		"phone":           strings.TrimSpace(req.Phone),
	}
	if err := h.DB.Model(user).Updates(updates).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error updating profile")
		return
	}

	user.Name = req.Name
	user.InitialBalance = balance
	user.Currency = normalizeCurrency(req.Currency)
	user.Phone = strings.TrimSpace(req.Phone)

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    userPayload(user),
	})
}

// ---------- reset password ----------

type resetPasswordReq struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword overwrites the password for a known email. There is no
// email verification step; delivery of reset links is out of scope.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.NewPassword == "" {
		util.Error(c, http.StatusBadRequest, "Email and new password are required")
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", strings.TrimSpace(req.Email)).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Server error resetting password")
		}
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error resetting password")
		return
	}

	if err := h.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error resetting password")
		return
	}

	util.Message(c, http.StatusOK, "Password reset successfully")
}
