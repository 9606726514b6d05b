// Package invite mints invite codes.
package invite

import (
	"crypto/rand"
	"math/big"
	"strings"

	"booker/internal/domain/service"
	"booker/internal/errors"
)

// codeAlphabet omits 0/O and 1/I so codes read unambiguously over chat or
// handwriting.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	codePrefix    = "INVITE"
	groupLength   = 4
	groupCount    = 2
	codeSeparator = "-"
)

// CodeGenerator produces random invite codes of the form INVITE-XXXX-XXXX.
type CodeGenerator struct{}

// NewCodeGenerator creates an invite code generator.
func NewCodeGenerator() service.InviteCodeGenerator {
	return &CodeGenerator{}
}

// Generate returns a fresh invite code drawn from crypto/rand.
func (g *CodeGenerator) Generate() (string, error) {
	parts := make([]string, 0, groupCount+1)
	parts = append(parts, codePrefix)

	alphabetSize := big.NewInt(int64(len(codeAlphabet)))

	for range groupCount {
		var group strings.Builder
		for range groupLength {
			idx, err := rand.Int(rand.Reader, alphabetSize)
			if err != nil {
				return "", errors.Wrap(err, "failed to draw random invite character")
			}
			group.WriteByte(codeAlphabet[idx.Int64()])
		}
		parts = append(parts, group.String())
	}

	return strings.Join(parts, codeSeparator), nil
}
