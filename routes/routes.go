package routes

import (
	"github.com/WilkerGw/LP-OTICA/handlers"
	"github.com/WilkerGw/LP-OTICA/middleware"
	"github.com/WilkerGw/LP-OTICA/services"

	"github.com/gin-gonic/gin"
)

// SetupSurveyRoutes sets up the public catalog, budget and wizard routes.
func SetupSurveyRoutes(rg *gin.RouterGroup, catalog *services.Catalog, sessions *services.WizardSessionService, quotes *services.QuoteService) {
	h := handlers.NewSurveyHandler(catalog, sessions, quotes)

	rg.GET("/catalog", h.GetCatalog)
	rg.POST("/budget", h.CalculateBudget)

	rg.POST("/survey/sessions", h.CreateSession)
	rg.GET("/survey/sessions/:id", h.GetSession)
	rg.POST("/survey/sessions/:id/actions", h.ApplyAction)
	rg.DELETE("/survey/sessions/:id", h.DeleteSession)
}

// SetupSimulatorRoutes sets up the lens thickness simulator.
func SetupSimulatorRoutes(rg *gin.RouterGroup, catalog *services.Catalog) {
	h := handlers.NewSimulatorHandler(catalog)

	rg.GET("/simulator/thickness", h.Thickness)
}

// SetupQuoteRoutes sets up the public quote routes.
func SetupQuoteRoutes(rg *gin.RouterGroup, quotes *services.QuoteService) {
	h := handlers.NewQuoteHandler(quotes)

	rg.POST("/quotes", h.Create)
	rg.GET("/quotes/:id", h.Get)
	rg.GET("/quotes/:id/pdf", h.PDF)
}

// SetupAdminRoutes sets up the admin login and the JWT-protected lead listing.
func SetupAdminRoutes(rg *gin.RouterGroup, auth *services.AdminAuthService, quotes *services.QuoteService) {
	adminHandler := handlers.NewAdminHandler(auth)
	quoteHandler := handlers.NewQuoteHandler(quotes)

	rg.POST("/admin/login", adminHandler.Login)

	admin := rg.Group("/admin")
	admin.Use(middleware.AdminAuth(auth))
	{
		admin.GET("/quotes", quoteHandler.List)
	}
}

// SetupChatRoutes mounts the chat relay at the path the widget calls.
func SetupChatRoutes(rg *gin.RouterGroup, relay *services.ChatRelayService, limiter *middleware.RateLimiter) {
	h := handlers.NewChatHandler(relay)

	if limiter != nil {
		rg.POST("/chat", limiter.Middleware(), h.Chat)
		return
	}
	rg.POST("/chat", h.Chat)
}
