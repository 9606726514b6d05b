// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. It is created exactly once at
// signup and never updated afterwards; sessions and booking requests
// reference it by ID.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // Lowercase-normalized login identifier, unique across the system.
	PasswordHash string    // Self-describing salted hash record produced by the password hasher.
	IsAdmin      bool      // Grants invite issuance and unrestricted booking-request access.
	CreatedAt    time.Time // Timestamp of when this account was created.
}

// NormalizeEmail lowercases and trims an email so lookups and the unique
// constraint agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
