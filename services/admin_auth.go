package services

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminDisabled      = errors.New("admin access not configured")
	ErrInvalidToken       = errors.New("invalid token")
)

const (
	RoleAdmin     = "admin"
	adminTokenTTL = 12 * time.Hour
)

type AdminAuthConfig struct {
	Email        string
	PasswordHash string
	TOTPSecret   string
	JWTSecret    string
}

// AdminAuthService guards the store back-office: a single account configured
// through the environment.
type AdminAuthService struct {
	cfg AdminAuthConfig
	now func() time.Time
}

func NewAdminAuthService(cfg AdminAuthConfig) *AdminAuthService {
	cfg.Email = strings.ToLower(strings.TrimSpace(cfg.Email))
	return &AdminAuthService{cfg: cfg, now: time.Now}
}

func (s *AdminAuthService) Enabled() bool {
	return s.cfg.Email != "" && s.cfg.PasswordHash != "" && s.cfg.JWTSecret != ""
}

func (s *AdminAuthService) Login(req models.AdminLoginRequest) (*models.AuthResponse, error) {
	if !s.Enabled() {
		return nil, ErrAdminDisabled
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.cfg.Email)) == 1
	// always run bcrypt so timing does not reveal the account
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(req.Password))
	if !emailOK || passwordErr != nil {
		utils.LogAuthAction("login", email, false)
		return nil, ErrInvalidCredentials
	}

	if s.cfg.TOTPSecret != "" && !utils.VerifyTOTP(s.cfg.TOTPSecret, req.TOTPCode) {
		utils.LogAuthAction("login-2fa", email, false)
		return nil, ErrInvalidCredentials
	}

	expires := s.now().Add(adminTokenTTL)
	claims := jwt.MapClaims{
		"sub":  email,
		"role": RoleAdmin,
		"iat":  s.now().Unix(),
		"exp":  expires.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	utils.LogAuthAction("login", email, true)
	return &models.AuthResponse{Token: token, ExpiresAt: expires}, nil
}

// ValidateToken returns the subject and role carried by a token.
func (s *AdminAuthService) ValidateToken(tokenString string) (string, string, error) {
	if s.cfg.JWTSecret == "" {
		return "", "", ErrAdminDisabled
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	return sub, role, nil
}

// HashPassword is used by the hash-password command.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
