// utils/safelog.go
// ============================================================================
// SAFE LOGGING - mascara dados sensíveis em produção
// ============================================================================
// Logs pass through here so that customer phone numbers, e-mails and
// provider credentials never reach the production log drain.
// ============================================================================

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

// ============================================================================
// CONFIGURATION
// ============================================================================

var (
	// IsProduction turns masking on.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	// LogLevel filters Safe* calls (DEBUG, INFO, WARN, ERROR).
	LogLevel = ParseLogLevel(os.Getenv("LOG_LEVEL"))
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func ParseLogLevel(level string) int {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// ============================================================================
// PATTERNS
// ============================================================================

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Bearer tokens and provider keys (gsk_..., sk-...)
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._\-]+`)
	apiKeyRegex = regexp.MustCompile(`\b(gsk|sk)[_-][A-Za-z0-9_\-]{8,}\b`)

	// Brazilian phone numbers: (11) 91234-5678, +55 11 912345678, 5511912345678
	phoneRegex = regexp.MustCompile(`(\+?55\s?)?\(?\d{2}\)?\s?9?\d{4}[\s-]?\d{4}`)

	uuidRegex = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// ============================================================================
// MASKING
// ============================================================================

// MaskString hides sensitive values when running in production.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}
	return maskAll(input)
}

func maskAll(input string) string {
	result := input
	result = bearerRegex.ReplaceAllString(result, "Bearer ***")
	result = apiKeyRegex.ReplaceAllString(result, "***KEY***")
	result = emailRegex.ReplaceAllString(result, "***@***.***")
	result = uuidRegex.ReplaceAllStringFunc(result, shortID)
	result = phoneRegex.ReplaceAllString(result, "(**) *****-****")
	return result
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return "***"
}

// MaskID keeps the first 8 characters of an id in production.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return shortID(id)
}

// MaskPhone keeps the last two digits of a phone number in production.
func MaskPhone(phone string) string {
	if !IsProduction || phone == "" {
		return phone
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if len(digits) <= 2 {
		return "***"
	}
	return strings.Repeat("*", len(digits)-2) + digits[len(digits)-2:]
}

func MaskEmail(email string) string {
	if !IsProduction {
		return email
	}
	return "***@***.***"
}

// ============================================================================
// LEVELLED LOGGING
// ============================================================================

func SafeLog(format string, args ...interface{}) {
	log.Print(MaskString(fmt.Sprintf(format, args...)))
}

func SafeDebug(format string, args ...interface{}) {
	if LogLevel > LogLevelDebug {
		return
	}
	log.Printf("[DEBUG] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeInfo(format string, args ...interface{}) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[INFO] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeWarn(format string, args ...interface{}) {
	if LogLevel > LogLevelWarn {
		return
	}
	log.Printf("[WARN] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeError(format string, args ...interface{}) {
	log.Printf("[ERROR] %s", MaskString(fmt.Sprintf(format, args...)))
}

// ============================================================================
// DOMAIN HELPERS
// ============================================================================

// LogChatRelay never logs message contents, only their count.
func LogChatRelay(action string, status int, messageCount int) {
	SafeInfo("[Chat] %s - Status: %d Messages: %d", action, status, messageCount)
}

func LogQuoteAction(action string, quoteID string, final string) {
	SafeInfo("[Quote] %s - Quote: %s Final: %s", action, MaskID(quoteID), final)
}

func LogWizardAction(action string, sessionID string, step int) {
	SafeDebug("[Wizard] %s - Session: %s Step: %d", action, MaskID(sessionID), step)
}

func LogAuthAction(action string, email string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	log.Printf("[Auth] %s - Email: %s Status: %s", action, MaskEmail(email), status)
}

// LogAPIRequest logs one HTTP exchange; ids in the path are shortened in production.
func LogAPIRequest(method string, path string, clientIP string, statusCode int, duration string) {
	if IsProduction {
		path = uuidRegex.ReplaceAllStringFunc(path, shortID)
	}
	log.Printf("✅ %s %s - %d (%s) from %s", method, path, statusCode, duration, clientIP)
}

func GetEnvMode() string {
	if IsProduction {
		return "production"
	}
	return "development"
}

func LogStartup(appName string, version string, port string) {
	log.Printf("🚀 %s v%s starting...", appName, version)
	log.Printf("   Mode: %s", GetEnvMode())
	log.Printf("   Port: %s", port)
	log.Printf("   Log Level: %d", LogLevel)
	if IsProduction {
		log.Printf("   ⚠️  Production mode: Sensitive data will be masked in logs")
	}
}
