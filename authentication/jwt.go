package authentication

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"care-connect/apperrors"
	"care-connect/models"
)

// TokenManager issues and verifies the three token flavors (access, refresh,
// reset). They share a signing key and claims shape and differ only in TTL.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL, resetTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		resetTTL:   resetTTL,
	}
}

func (tm *TokenManager) generate(email string, role models.UserRole, ttl time.Duration) (string, error) {
	claims := &models.AuthClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

func (tm *TokenManager) GenerateAccessToken(email string, role models.UserRole) (string, error) {
	return tm.generate(email, role, tm.accessTTL)
}

func (tm *TokenManager) GenerateRefreshToken(email string, role models.UserRole) (string, error) {
	return tm.generate(email, role, tm.refreshTTL)
}

// GenerateResetToken issues the short-lived single-purpose credential for
// password resets.
func (tm *TokenManager) GenerateResetToken(email string, role models.UserRole) (string, error) {
	return tm.generate(email, role, tm.resetTTL)
}

// VerifyToken parses a signed token and distinguishes an expired token from
// a malformed or tampered one, callers map the kinds to different responses.
func (tm *TokenManager) VerifyToken(tokenString string) (*models.AuthClaims, error) {
	var claims models.AuthClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Expired("token expired")
		}
		return nil, apperrors.Wrap(apperrors.KindInvalid, "invalid token", err)
	}
	if !token.Valid {
		return nil, apperrors.Invalid("invalid token")
	}
	return &claims, nil
}
