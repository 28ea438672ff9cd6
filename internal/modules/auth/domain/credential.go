package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the persisted slot holding the bearer token.
const TokenKey = "skillsetu_token"

// Credential is the opaque bearer token issued by the API. Its presence is
// the only signal of being signed in; nothing here checks expiry.
type Credential string

func (c Credential) IsZero() bool {
	return strings.TrimSpace(string(c)) == ""
}

// Mask hides all but the tail of the token for display.
func (c Credential) Mask() string {
	if c.IsZero() {
		return "No token"
	}
	n := utf8.RuneCountInString(string(c))
	if n <= 10 {
		return strings.Repeat("•", n)
	}
	runes := []rune(string(c))
	return "…" + string(runes[n-10:])
}

// Claims is informational only; the token is never verified client-side.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

func (c Credential) Claims() (Claims, error) {
	var registered jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(string(c), &registered); err != nil {
		return Claims{}, fmt.Errorf("parse token claims: %w", err)
	}
	out := Claims{Subject: registered.Subject}
	if registered.ExpiresAt != nil {
		out.ExpiresAt = registered.ExpiresAt.Time.UTC()
	}
	if registered.IssuedAt != nil {
		out.IssuedAt = registered.IssuedAt.Time.UTC()
	}
	return out, nil
}

type User struct {
	ID    string
	Email string
	Name  string
}

// NameFromEmail derives a display name from the local part of the address.
func NameFromEmail(email string) string {
	email = strings.TrimSpace(email)
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
