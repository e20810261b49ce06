// Package jwtauth issues and validates the bearer tokens that carry caller
// principals across the HTTP boundary.
package jwtauth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"studentregistry/pkg/domain"
	dErrors "studentregistry/pkg/domain-errors"
)

// Claims are the JWT claims for principal tokens. The principal rides in the
// registered Subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService handles token creation and validation.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewJWTService(signingKey, issuer, audience string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// GeneratePrincipalToken mints an HS256 token for the given principal.
func (s *JWTService) GeneratePrincipalToken(principal domain.Principal, expiresIn time.Duration) (string, error) {
	if principal.IsZero() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal is required")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// ValidatePrincipalToken verifies the token and returns the principal it
// was issued to.
func (s *JWTService) ValidatePrincipalToken(tokenString string) (domain.Principal, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.ZeroPrincipal, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return domain.ZeroPrincipal, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return domain.ZeroPrincipal, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return domain.ZeroPrincipal, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	principal, perr := domain.ParsePrincipal(claims.Subject)
	if perr != nil {
		return domain.ZeroPrincipal, dErrors.New(dErrors.CodeUnauthorized, "token subject is not a valid principal")
	}
	return principal, nil
}
