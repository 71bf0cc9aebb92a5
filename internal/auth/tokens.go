package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/studymate/backend/internal/config"
	"github.com/studymate/backend/internal/middleware"
)

// Tokens issues and verifies HS256 bearer tokens carrying a user_id claim.
// It satisfies middleware.TokenVerifier.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(cfg config.AuthConfig) *Tokens {
	return &Tokens{secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL, now: time.Now}
}

func (t *Tokens) Issue(userID int64) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(t.ttl).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// VerifyToken returns middleware.ErrInvalidToken for anything that is not a
// live token signed with our secret.
func (t *Tokens) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", middleware.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, middleware.ErrInvalidToken
	}
	// JSON numbers decode as float64.
	uid, ok := claims["user_id"].(float64)
	if !ok || uid <= 0 {
		return 0, middleware.ErrInvalidToken
	}
	return int64(uid), nil
}
