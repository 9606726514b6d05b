// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"

	"booker/internal/domain/service"
)

const (
	// saltLength is the random salt size in bytes, fresh per hash.
	saltLength = 16
	// iterations is the PBKDF2 round count; brute-forcing pays the same
	// per-guess cost as legitimate verification.
	iterations = 100_000
	// keyLength is the derived hash size in bytes (256 bits).
	keyLength = 32
	// recordDelimiter joins the hex salt and hex hash. Hex never produces
	// a colon, so the record is unambiguous.
	recordDelimiter = ":"
)

// pbkdf2Hasher is a concrete implementation of the PasswordHasher interface
// using PBKDF2-SHA256 with a self-describing saltHex:hashHex record.
type pbkdf2Hasher struct{}

// NewPBKDF2Hasher is the constructor for pbkdf2Hasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewPBKDF2Hasher() service.PasswordHasher {
	return &pbkdf2Hasher{}
}

// Hash derives a salted hash record from a plaintext password. Each call
// generates a fresh random salt, so hashing the same password twice never
// yields the same record.
func (h *pbkdf2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate password salt")
	}

	derived := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)

	return hex.EncodeToString(salt) + recordDelimiter + hex.EncodeToString(derived), nil
}

// Check compares a plaintext password with a stored hash record. Malformed
// records (missing delimiter, non-hex segments) report false instead of
// erroring: corrupted or legacy records must never crash the caller.
func (h *pbkdf2Hasher) Check(password, record string) bool {
	saltHex, hashHex, found := strings.Cut(record, recordDelimiter)
	if !found {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) == 0 {
		return false
	}
	stored, err := hex.DecodeString(hashHex)
	if err != nil || len(stored) == 0 {
		return false
	}

	derived := pbkdf2.Key([]byte(password), salt, iterations, len(stored), sha256.New)

	return subtle.ConstantTimeCompare(derived, stored) == 1
}
