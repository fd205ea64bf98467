package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/WilkerGw/LP-OTICA/config"
	"github.com/WilkerGw/LP-OTICA/handlers"
	"github.com/WilkerGw/LP-OTICA/middleware"
	"github.com/WilkerGw/LP-OTICA/routes"
	"github.com/WilkerGw/LP-OTICA/services"
	"github.com/WilkerGw/LP-OTICA/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const (
	sessionTTL      = 2 * time.Hour
	sessionSweep    = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	utils.LogStartup("LP-OTICA API", version, cfg.Port)

	if utils.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog := services.DefaultCatalog()

	var repo services.QuoteRepository
	if cfg.DatabaseURL != "" {
		db, err := config.InitDB(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Println("✅ Database connected successfully")

		if err := config.RunMigrations(db); err != nil {
			return err
		}
		repo = services.NewPostgresQuoteRepository(db)
	} else {
		log.Println("⚠️ DATABASE_URL not set, quotes are kept in memory")
		repo = services.NewMemoryQuoteRepository()
	}

	var notifier services.QuoteNotifier
	if email := services.NewEmailService(cfg.ResendAPIKey, cfg.FromEmail, cfg.NotifyEmail); email.Enabled() {
		notifier = email
	}

	quotes := services.NewQuoteService(repo, catalog, notifier, services.QuoteOptions{
		Discount:       cfg.PromoDiscount,
		WhatsAppNumber: cfg.WhatsAppNumber,
		EncryptionKey:  cfg.DataEncryptionKey,
	})

	sessions := services.NewWizardSessionService(catalog, cfg.PromoDiscount, sessionTTL)
	go sessions.RunCleanup(ctx, sessionSweep)

	wsHandler := handlers.NewWSHandler(sessions)
	defer wsHandler.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	chatLimiter := middleware.NewRateLimiter(cfg.ChatRateLimit, time.Minute)
	go limiter.Run(ctx)
	go chatLimiter.Run(ctx)

	admin := services.NewAdminAuthService(services.AdminAuthConfig{
		Email:        cfg.AdminEmail,
		PasswordHash: cfg.AdminPasswordHash,
		TOTPSecret:   cfg.AdminTOTPSecret,
		JWTSecret:    cfg.JWTSecret,
	})
	if !admin.Enabled() {
		log.Println("⚠️ Admin access disabled (ADMIN_EMAIL, ADMIN_PASSWORD_HASH or JWT_SECRET missing)")
	}

	chat := services.NewChatRelayService(cfg, nil)
	if !chat.Configured() {
		log.Println("⚠️ GROQ_API_KEY not set, /api/chat will answer 500")
	}

	allowedOrigins := []string{
		cfg.FrontendURL,
		"https://oticasvizz.com.br",
		"https://www.oticasvizz.com.br",
	}
	log.Printf("🌍 CORS: Allowing origins:")
	for _, origin := range allowedOrigins {
		log.Printf("   - %s", origin)
	}

	router := routes.NewRouter(routes.Server{
		Catalog:        catalog,
		Sessions:       sessions,
		Quotes:         quotes,
		Chat:           chat,
		Admin:          admin,
		WS:             wsHandler,
		Limiter:        limiter,
		ChatLimiter:    chatLimiter,
		AllowedOrigins: allowedOrigins,
		Version:        version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
