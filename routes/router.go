package routes

import (
	"time"

	"github.com/WilkerGw/LP-OTICA/handlers"
	"github.com/WilkerGw/LP-OTICA/middleware"
	"github.com/WilkerGw/LP-OTICA/services"
	"github.com/WilkerGw/LP-OTICA/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server groups everything the router serves.
type Server struct {
	Catalog     *services.Catalog
	Sessions    *services.WizardSessionService
	Quotes      *services.QuoteService
	Chat        *services.ChatRelayService
	Admin       *services.AdminAuthService
	WS          *handlers.WSHandler
	Limiter     *middleware.RateLimiter
	ChatLimiter *middleware.RateLimiter

	AllowedOrigins []string
	Version        string
}

func NewRouter(s Server) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if len(s.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     s.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           86400,
		}))
	}

	router.Use(middleware.RequestLogger())

	if s.Limiter != nil {
		router.Use(s.Limiter.Middleware())
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": s.Version,
			"env":     utils.GetEnvMode(),
			"chat":    s.Chat != nil && s.Chat.Configured(),
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	if s.Chat != nil {
		SetupChatRoutes(api, s.Chat, s.ChatLimiter)
	}

	v1 := api.Group("/v1")
	{
		SetupSurveyRoutes(v1, s.Catalog, s.Sessions, s.Quotes)
		SetupSimulatorRoutes(v1, s.Catalog)
		SetupQuoteRoutes(v1, s.Quotes)
		if s.WS != nil {
			v1.GET("/ws/survey/:id", s.WS.HandleWS)
		}
		if s.Admin != nil {
			SetupAdminRoutes(v1, s.Admin, s.Quotes)
		}
	}

	return router
}
