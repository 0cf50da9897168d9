package service

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/duckwolf_api/internal/config"
	"github.com/GTDGit/duckwolf_api/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminAuthService checks the single configured operator credential and
// issues dashboard tokens.
type AdminAuthService struct {
	email        string
	passwordHash []byte
	issuer       *utils.TokenIssuer
}

func NewAdminAuthService(cfg config.AdminConfig, issuer *utils.TokenIssuer) *AdminAuthService {
	return &AdminAuthService{
		email:        strings.ToLower(strings.TrimSpace(cfg.Email)),
		passwordHash: []byte(cfg.PasswordHash),
		issuer:       issuer,
	}
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *AdminAuthService) Login(email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	log.Debug().Str("email", email).Msg("Login attempt")

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	// bcrypt runs even when the email does not match.
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !emailOK || passErr != nil {
		log.Warn().Str("email", email).Msg("Login rejected")
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.issuer.Generate(s.email, s.email)
	if err != nil {
		return nil, err
	}

	log.Info().Str("email", email).Msg("Login successful")
	return &LoginResult{Token: token, ExpiresAt: exp}, nil
}

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
