package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")
var ErrAccountExists = errors.New("account already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenInvalid = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")
var ErrAccountNotFound = errors.New("account not found")

// Account models a registered user. Email is the primary key and is always
// stored normalized. PasswordHash is the self-describing bcrypt string and
// never leaves the process in API responses.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicAccount is the client-safe projection of an Account.
type PublicAccount struct {
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Public strips the credential hash from the account.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		Email:       a.Email,
		DisplayName: a.DisplayName,
		CreatedAt:   a.CreatedAt,
	}
}

// NormalizeEmail lower-cases and trims an email for use as the account key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
