// filepath: internal/services/auth/token_service.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// resultClaims is the only claim shape this domain signs: there is no user
// system, so a token identifies a finished job rather than an account.
type resultClaims struct {
	JobID string `json:"job_id"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies short-lived tokens that let a caller
// retrieve a finished job's rendered output without re-exposing the job
// ledger itself.
type TokenService interface {
	GenerateResultToken(jobID string) (string, error)
	ValidateResultToken(tokenString string) (jobID string, err error)
}

// Compile-time check.
var _ TokenService = (*tokenService)(nil)

type tokenService struct {
	secret   []byte
	duration time.Duration
}

// NewTokenService builds a TokenService signing HS256 tokens with secret,
// each valid for accessDurationMin minutes after issue.
func NewTokenService(secret string, accessDurationMin int) TokenService {
	if accessDurationMin <= 0 {
		accessDurationMin = 5
	}
	return &tokenService{secret: []byte(secret), duration: time.Duration(accessDurationMin) * time.Minute}
}

// GenerateResultToken signs a token scoped to a single finished job.
func (s *tokenService) GenerateResultToken(jobID string) (string, error) {
	claims := &resultClaims{
		JobID: jobID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.duration)),
			Issuer:    "mediaconform",
			Subject:   jobID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign result token: %w", err)
	}
	return signed, nil
}

// ValidateResultToken verifies tokenString's signature and expiry and
// returns the job ID it was scoped to.
func (s *tokenService) ValidateResultToken(tokenString string) (string, error) {
	claims := &resultClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid result token")
	}
	return claims.JobID, nil
}
