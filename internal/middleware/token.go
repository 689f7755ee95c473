package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueToken signs an HS256 token AuthMiddleware accepts. Production tokens
// come from the identity service; this serves operators and local setups.
func IssueToken(userID, secret, issuer string, ttl time.Duration, companyIDs ...string) (string, error) {
	now := time.Now()
	claims := LedgerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		CompanyIDs: companyIDs,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
