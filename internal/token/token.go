// Package token issues and validates the HS256 bearer tokens that back both
// API and UI sessions.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tiretrack/internal/domain"
)

const issuerName = "tiretrack"

// Issuer mints signed bearer tokens carrying the identity claims needed to
// rebuild a domain.Identity without a database round trip.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. ttl controls token lifetime; zero means tokens
// never expire.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue mints a token for the identity and returns it with its expiry.
// A zero expiry means the token does not expire.
func (i *Issuer) Issue(ident *domain.Identity, now time.Time) (string, time.Time, error) {
	claims := jwt.MapClaims{
		"iss":         issuerName,
		"sub":         ident.ID,
		"name":        ident.DisplayName,
		"email":       ident.Email,
		"role":        string(ident.Role),
		"access_kind": string(ident.AccessKind),
		"iat":         now.Unix(),
	}
	if ident.CompanyID != nil {
		claims["company_id"] = *ident.CompanyID
	}

	var expiresAt time.Time
	if i.ttl > 0 {
		expiresAt = now.Add(i.ttl)
		claims["exp"] = expiresAt.Unix()
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validator checks HS256 token signatures and reconstructs the embedded
// identity.
type Validator struct {
	secret []byte
}

func NewValidator(secret string) (*Validator, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	return &Validator{secret: []byte(secret)}, nil
}

// Validate verifies the token and returns the identity it carries. Expired or
// tampered tokens fail; so do tokens whose claims violate the identity
// invariant.
func (v *Validator) Validate(tokenString string) (*domain.Identity, error) {
	tok, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	raw, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("parse claims: unsupported claim type %T", tok.Claims)
	}

	ident := &domain.Identity{}
	if sub, ok := raw["sub"].(string); ok {
		ident.ID = sub
	}
	if name, ok := raw["name"].(string); ok {
		ident.DisplayName = name
	}
	if email, ok := raw["email"].(string); ok {
		ident.Email = email
	}
	if role, ok := raw["role"].(string); ok {
		ident.Role = domain.Role(role)
	}
	if kind, ok := raw["access_kind"].(string); ok {
		ident.AccessKind = domain.AccessKind(kind)
	}
	if companyID, ok := raw["company_id"].(string); ok {
		ident.CompanyID = &companyID
	}

	if err := ident.Validate(); err != nil {
		return nil, fmt.Errorf("token identity: %w", err)
	}
	return ident, nil
}
