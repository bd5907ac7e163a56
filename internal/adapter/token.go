package adapter

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims are the claims the client reads out of the bearer token. The
// token is issued and verified by the server; the client parses it without
// verification only to learn who it is acting as and when the token expires.
type tokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// parseTokenClaims extracts the user id and expiry from a JWT without
// verifying the signature.
func parseTokenClaims(token string) (userID string, expiresAt time.Time, err error) {
	claims := &tokenClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parse token claims: %w", err)
	}

	userID = claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return userID, expiresAt, nil
}
