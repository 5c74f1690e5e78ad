package router

import (
	"net/http"

	"github.com/BhavyaPatel1007/SpendWisePro/internal/config"
	"github.com/BhavyaPatel1007/SpendWisePro/internal/handler"
	"github.com/BhavyaPatel1007/SpendWisePro/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the full API surface.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "x-auth-token")
	r.Use(cors.New(corsCfg))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "SpendWise Pro API is running...")
	})

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours)
	oauthHandler := handler.NewOAuthHandler(db, cfg)

	// Auth routes live under both /auth and /api/auth: the bare prefix
	// keeps the Google redirect URL short, the /api prefix matches the
	// rest of the surface.
	for _, g := range []*gin.RouterGroup{r.Group("/auth"), r.Group("/api/auth")} {
		g.POST("/signup", authHandler.Signup)
		g.POST("/login", authHandler.Login)
		g.POST("/reset-password", authHandler.ResetPassword)
		g.PUT("/profile", middleware.AuthMiddleware(jwtSecret, db), authHandler.UpdateProfile)

		g.GET("/google", oauthHandler.Login)
		g.GET("/google/callback", oauthHandler.Callback)
	}

	expenseHandler := handler.NewExpenseHandler(db)
	exportHandler := handler.NewExportHandler(db)

	expenses := r.Group("/api/expenses")
	expenses.Use(middleware.AuthMiddleware(jwtSecret, db))

	expenses.GET("/stats", expenseHandler.Stats)
	expenses.PUT("/settings", expenseHandler.UpdateSettings)
	expenses.GET("/suggest-category", expenseHandler.SuggestCategory)
	expenses.GET("/export/csv", exportHandler.ExportCSV)
	expenses.GET("/export/xlsx", exportHandler.ExportXLSX)
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	return r
}
