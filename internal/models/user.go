package models

import (
	"strings"
	"time"
)

// PermanentLogin is the built-in operator that can never be deleted.
const PermanentLogin = "SAMUELTAVARES"

// OperatorUser is a dashboard login. Login and password are normalized to
// trimmed uppercase on write, so comparisons are effectively
// case-insensitive.
type OperatorUser struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeCredential trims and uppercases a submitted login or password.
func NormalizeCredential(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NewOperatorUser creates an operator with normalized credentials.
func NewOperatorUser(id, login, password string, createdAt time.Time) OperatorUser {
	return OperatorUser{
		ID:        id,
		Login:     NormalizeCredential(login),
		Password:  NormalizeCredential(password),
		CreatedAt: createdAt,
	}
}

// Permanent reports whether this is the non-deletable built-in operator.
func (u OperatorUser) Permanent() bool {
	return u.Login == PermanentLogin
}

// Matches checks submitted credentials against this operator.
func (u OperatorUser) Matches(login, password string) bool {
	return u.Login == NormalizeCredential(login) &&
		u.Password == NormalizeCredential(password)
}
