package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/BhavyaPatel1007/SpendWisePro/internal/config"
	"github.com/BhavyaPatel1007/SpendWisePro/internal/models"
	"github.com/BhavyaPatel1007/SpendWisePro/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const (
	oauthStateCookie = "oauth_state"
	userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// OAuthHandler delegates authentication to Google. A successful
// callback ends in the same JWT the local login issues.
type OAuthHandler struct {
	DB        *gorm.DB
	OAuth     *oauth2.Config
	JWTSecret string
	TokenTTL  time.Duration
	ClientURL string
}

func NewOAuthHandler(db *gorm.DB, cfg *config.Config) *OAuthHandler {
	ttlHours := cfg.JWT.ExpireHours
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &OAuthHandler{
		DB: db,
		OAuth: &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
		JWTSecret: cfg.JWT.Secret,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
		ClientURL: cfg.Client.URL,
	}
}

// Login redirects the browser to Google's consent screen. The state
// nonce round-trips through a short-lived cookie.
func (h *OAuthHandler) Login(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.OAuth.AuthCodeURL(state))
}

type googleUserinfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Callback exchanges the code, finds or creates the account by email,
// and hands the SPA a token via redirect.
func (h *OAuthHandler) Callback(c *gin.Context) {
	wantState, err := c.Cookie(oauthStateCookie)
	if err != nil || wantState == "" || c.Query("state") != wantState {
		h.failLogin(c)
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		h.failLogin(c)
		return
	}

	tok, err := h.OAuth.Exchange(c.Request.Context(), code)
	if err != nil {
		h.failLogin(c)
		return
	}

	info, err := h.fetchUserinfo(c, tok)
	if err != nil || info.Email == "" {
		h.failLogin(c)
		return
	}

	user, err := h.findOrCreateUser(info)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error during login")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error during login")
		return
	}

	userJSON, _ := json.Marshal(userPayload(user))
	redirect := h.ClientURL + "/login/success?token=" + url.QueryEscape(token) +
		"&user=" + url.QueryEscape(string(userJSON))
	c.Redirect(http.StatusFound, redirect)
}

func (h *OAuthHandler) fetchUserinfo(c *gin.Context, tok *oauth2.Token) (*googleUserinfo, error) {
	client := h.OAuth.Client(c.Request.Context(), tok)
	resp, err := client.Get(userinfoEndpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// findOrCreateUser links the Google identity to an existing account by
// email, or creates a fresh one. External-identity accounts get an
// unusable random placeholder hash so the local login path stays dead.
func (h *OAuthHandler) findOrCreateUser(info *googleUserinfo) (*models.User, error) {
	var user models.User
	err := h.DB.Where("email = ?", info.Email).First(&user).Error
	if err == nil {
		if user.GoogleID == "" {
			if err := h.DB.Model(&user).Update("google_id", info.ID).Error; err != nil {
				return nil, err
			}
			user.GoogleID = info.ID
		}
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	placeholder, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)
	if err != nil {
		return nil, err
	}
	user = models.User{
		Name:           info.Name,
		Email:          info.Email,
		PasswordHash:   string(placeholder),
		GoogleID:       info.ID,
		InitialBalance: decimal.Zero,
		Currency:       defaultCurrency,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (h *OAuthHandler) failLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, h.ClientURL+"/login")
}
