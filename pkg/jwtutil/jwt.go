package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/handlersyss/BarSystem/pkg/config"
)

var (
	signingKey      []byte
	expirationHours = 24
)

// Initialize configures the signing key and token lifetime
func Initialize(cfg *config.JWTConfig) {
	signingKey = []byte(cfg.SigningKey)
	if cfg.ExpirationHours > 0 {
		expirationHours = cfg.ExpirationHours
	}
}

// OperatorClaims represents the JWT claims for an operator session. The
// order service never reads operator identity; it only gates the API.
type OperatorClaims struct {
	Username string `json:"username"`
	UserID   int    `json:"user_id"`
	Company  string `json:"company_name,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed token for an authenticated operator
func GenerateToken(username string, userID int, company string) (string, error) {
	now := time.Now()
	claims := OperatorClaims{
		Username: username,
		UserID:   userID,
		Company:  company,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expirationHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*OperatorClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
