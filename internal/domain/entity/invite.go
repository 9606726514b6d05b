package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Invite is a single-use signup code. UsedBy and UsedAt are set together in
// one atomic step, and only while both are still unset; a redeemed invite is
// never redeemed again.
type Invite struct {
	ID        uuid.UUID  // The unique identifier for the invite record.
	Code      string     // Human-shareable code, uppercase-normalized, unique.
	CreatedBy uuid.UUID  // The admin who issued the invite.
	UsedBy    *uuid.UUID // The user who redeemed it, nil while unused.
	UsedAt    *time.Time // When it was redeemed, nil while unused.
	CreatedAt time.Time  // When it was issued.
}

// Used reports whether the invite has already been redeemed.
func (i *Invite) Used() bool {
	return i.UsedBy != nil
}

// NormalizeInviteCode uppercases and trims a code so issue and lookup agree
// on one canonical form. Matching is case-insensitive by construction.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
