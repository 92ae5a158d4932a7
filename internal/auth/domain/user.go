package domain

import "time"

// User is an account that can sign in with a password.
type User struct {
	ID            string
	Email         string // unique, stored lowercased
	PasswordHash  string // argon2id
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
