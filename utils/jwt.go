package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vapeonx/storefront/models"
)

// TokenIssuer is written to the iss claim of every token.
const TokenIssuer = "storefront"

var ErrInvalidToken = errors.New("invalid token")

// JWTClaim represents JWT claims
type JWTClaim struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	jwt.RegisteredClaims
}

// User returns the identity carried by the claims.
func (c *JWTClaim) User() *models.User {
	return &models.User{UID: c.Subject, Email: c.Email, DisplayName: c.DisplayName}
}

// GenerateJWT signs a token for user valid for ttl. It also returns the token
// id so the caller can revoke it.
func GenerateJWT(secret []byte, user models.User, ttl time.Duration) (string, string, error) {
	now := time.Now().UTC()
	jti := uuid.NewString()

	claims := &JWTClaim{
		Email:       user.Email,
		DisplayName: user.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.UID,
			Issuer:    TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return signed, jti, nil
}

// ValidateToken validates JWT token and returns claims
func ValidateToken(secret []byte, signedToken string) (*JWTClaim, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&JWTClaim{},
		func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*JWTClaim)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
