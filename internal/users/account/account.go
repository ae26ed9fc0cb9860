// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages user accounts: registration, profile changes and soft
deletion.

# Invariants

  - Email addresses are unique across every account, deleted ones included.
  - Passwords are stored as bcrypt hashes and never serialized.
*/
package account

import (
	"time"

	"github.com/taibuivan/gamelibrary/internal/platform/lifecycle"
)

// # Domain Entities

// User is a registered account.
type User struct {
	ID           int64            `json:"id"`
	Username     string           `json:"username"`
	Email        string           `json:"email"`
	PasswordHash string           `json:"-"`
	Status       lifecycle.Status `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Summary is the {id, username, email} projection embedded in review responses.
type Summary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Summary projects the public identity of the user.
func (user *User) Summary() Summary {
	return Summary{ID: user.ID, Username: user.Username, Email: user.Email}
}

// Input carries the writable fields of an account. Update replaces all three.
type Input struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// # Validation Constants

const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldEmail    = "email"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MaxEmailLength    = 320
)
