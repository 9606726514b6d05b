package invite

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGenerator_Format(t *testing.T) {
	generator := NewCodeGenerator()
	pattern := regexp.MustCompile(`^INVITE-[A-Z2-9]{4}-[A-Z2-9]{4}$`)

	for range 50 {
		code, err := generator.Generate()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)

		// The ambiguous characters never appear.
		for _, forbidden := range []string{"0", "O", "1", "I"} {
			body := strings.TrimPrefix(code, "INVITE-")
			assert.NotContains(t, body, forbidden)
		}
	}
}

func TestCodeGenerator_Uniqueness(t *testing.T) {
	generator := NewCodeGenerator()

	seen := make(map[string]struct{})
	for range 200 {
		code, err := generator.Generate()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}

	// 32^8 possible codes; 200 draws colliding would point at a broken source
	// of randomness.
	assert.Len(t, seen, 200)
}
