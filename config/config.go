package config

import (
	_ "embed"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/WilkerGw/LP-OTICA/models"

	"github.com/joho/godotenv"
)

//go:embed catalog.yaml
var CatalogYAML []byte

//go:embed system_prompt.md
var SystemPrompt string

const (
	DefaultChatAPIURL    = "https://api.groq.com/openai/v1/chat/completions"
	DefaultChatModel     = "llama-3.1-8b-instant"
	ChatTemperature      = 0.7
	ChatMaxTokens        = 1024
	DefaultWhatsAppPhone = "551123628799"
)

type Config struct {
	Port        string
	FrontendURL string

	GroqAPIKey  string
	ChatAPIURL  string
	ChatModel   string
	ChatTimeout time.Duration

	DatabaseURL       string
	DataEncryptionKey string

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string
	AdminTOTPSecret   string

	ResendAPIKey string
	FromEmail    string
	NotifyEmail  string

	WhatsAppNumber string
	PromoDiscount  models.Money

	RateLimit     int
	ChatRateLimit int
}

// Load reads the environment, after an optional .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		GroqAPIKey:  os.Getenv("GROQ_API_KEY"),
		ChatAPIURL:  getEnv("GROQ_API_URL", DefaultChatAPIURL),
		ChatModel:   getEnv("CHAT_MODEL", DefaultChatModel),
		ChatTimeout: getDuration("CHAT_TIMEOUT", 30*time.Second),

		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DataEncryptionKey: os.Getenv("DATA_ENCRYPTION_KEY"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminEmail:        strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminTOTPSecret:   os.Getenv("ADMIN_TOTP_SECRET"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		FromEmail:    getEnv("FROM_EMAIL", "orcamentos@oticasvizz.com.br"),
		NotifyEmail:  os.Getenv("NOTIFY_EMAIL"),

		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", DefaultWhatsAppPhone),
		PromoDiscount:  getMoney("PROMO_DISCOUNT", models.Reais(200)),

		RateLimit:     getInt("RATE_LIMIT", 100),
		ChatRateLimit: getInt("CHAT_RATE_LIMIT", 20),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("⚠️ Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("⚠️ Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getMoney(key string, fallback models.Money) models.Money {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	m, err := models.ParseMoney(v)
	if err != nil || m < 0 {
		log.Printf("⚠️ Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return m
}
