package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/recipebox/recipebox-server/internal/model"
)

// Claims represents JWT claims carrying the identity projection.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID  `json:"user_id"`
	Name   string     `json:"name"`
	Role   model.Role `json:"role"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) model.TokenManager {
	return &JWT{secretKey: secretKey}
}

// tokenTTL is the fixed validity window. An expired token is not renewable;
// a new login is required.
const tokenTTL = 7 * 24 * time.Hour

// Generate creates a signed token embedding the identity claims.
func (j *JWT) Generate(identity model.AuthContext) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID: identity.ID,
		Name:   identity.Name,
		Role:   identity.Role,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Parse validates the token and extracts the identity claims. Signature
// mismatch, malformed structure and expiry all fail; expiry remains
// distinguishable via errors.Is(err, jwt.ErrTokenExpired) for logging.
func (j *JWT) Parse(tokenString string) (model.AuthContext, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.AuthContext{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return model.AuthContext{}, fmt.Errorf("token is invalid")
	}
	if claims.UserID == uuid.Nil {
		return model.AuthContext{}, fmt.Errorf("token carries no user id")
	}

	return model.AuthContext{
		ID:   claims.UserID,
		Name: claims.Name,
		Role: claims.Role,
	}, nil
}
