package middleware

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer identifies the auth service that issues staff access tokens.
const TokenIssuer = "DealFlow"

// StaffClaims is the access token body minted by the auth service. Name is
// the short staff name recorded in progress audit fields.
type StaffClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// ValidateToken checks the signature, expiry and issuer of an RS256 access
// token and returns its staff claims.
func ValidateToken(tokenString string, publicKey *rsa.PublicKey, issuer string) (*StaffClaims, error) {
	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return publicKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5*time.Second),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("missing subject")
	}
	return claims, nil
}
