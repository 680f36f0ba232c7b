// filepath: internal/services/auth/token_service_test.go
package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"mediaconform/internal/services/auth"
)

func TestGenerateAndValidateResultToken(t *testing.T) {
	svc := auth.NewTokenService("super-secret-key-for-testing", 5)

	token, err := svc.GenerateResultToken("job-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	jobID, err := svc.ValidateResultToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "job-123", jobID)
}

func TestValidateResultToken_Tampered(t *testing.T) {
	svc := auth.NewTokenService("super-secret-key-for-testing", 5)

	token, err := svc.GenerateResultToken("job-123")
	assert.NoError(t, err)

	_, err = svc.ValidateResultToken(token + "a")
	assert.Error(t, err)
}

func TestValidateResultToken_WrongSecret(t *testing.T) {
	issuer := auth.NewTokenService("secret-a", 5)
	verifier := auth.NewTokenService("secret-b", 5)

	token, err := issuer.GenerateResultToken("job-123")
	assert.NoError(t, err)

	_, err = verifier.ValidateResultToken(token)
	assert.Error(t, err)
}

func TestValidateResultToken_Expired(t *testing.T) {
	secret := []byte("super-secret-key-for-testing")
	claims := jwt.MapClaims{
		"job_id": "job-123",
		"sub":    "job-123",
		"exp":    time.Now().Add(-1 * time.Minute).Unix(),
		"iss":    "mediaconform",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredTokenString, err := token.SignedString(secret)
	assert.NoError(t, err)

	svc := auth.NewTokenService("super-secret-key-for-testing", 5)
	_, err = svc.ValidateResultToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}
