// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import "context"

// Repository persists user accounts. Lookups by id return accounts in any status.
type Repository interface {
	ListActive(context context.Context) ([]*User, error)
	FindByID(context context.Context, id int64) (*User, error)

	// FindActiveByEmail and FindActiveByUsername back the login flow. When several
	// active accounts share a username the oldest one wins.
	FindActiveByEmail(context context.Context, email string) (*User, error)
	FindActiveByUsername(context context.Context, username string) (*User, error)

	// EmailTaken reports whether an account other than excludeID owns email.
	// Pass 0 to check against every account.
	EmailTaken(context context.Context, email string, excludeID int64) (bool, error)

	Create(context context.Context, user *User) error
	Update(context context.Context, user *User) error
	SoftDelete(context context.Context, id int64) error
}
