// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned for passwords bcrypt would reject or truncate.
var ErrPasswordTooLong = errors.New("sec: password exceeds 72 bytes")

// hashCost is lowered by tests through [UseMinimumCost].
var hashCost = bcrypt.DefaultCost

// HashPassword hashes a plain-text password using the bcrypt algorithm.
func HashPassword(plainTextPassword string) (string, error) {
	if len(plainTextPassword) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), hashCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version
// in constant time.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// UseMinimumCost switches hashing to bcrypt.MinCost and returns a restore func.
// Intended for tests that create many users.
func UseMinimumCost() (restore func()) {
	previous := hashCost
	hashCost = bcrypt.MinCost
	return func() { hashCost = previous }
}
