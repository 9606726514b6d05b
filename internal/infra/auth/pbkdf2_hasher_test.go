package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPBKDF2Hasher_HashAndCheck(t *testing.T) {
	hasher := NewPBKDF2Hasher()

	password := "correct horse battery staple"
	record, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, record)
	assert.NotEqual(t, password, record)

	// Record is self-describing: hex salt and hex hash joined by a colon.
	saltHex, hashHex, found := strings.Cut(record, ":")
	require.True(t, found)
	assert.Len(t, saltHex, saltLength*2)
	assert.Len(t, hashHex, keyLength*2)

	assert.True(t, hasher.Check(password, record))
	assert.False(t, hasher.Check("wrong password", record))
	assert.False(t, hasher.Check("", record))
}

func TestPBKDF2Hasher_FreshSaltPerHash(t *testing.T) {
	hasher := NewPBKDF2Hasher()

	first, err := hasher.Hash("same password")
	require.NoError(t, err)
	second, err := hasher.Hash("same password")
	require.NoError(t, err)

	// Salt randomness: two hashes of the same password never collide.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("same password", first))
	assert.True(t, hasher.Check("same password", second))
}

func TestPBKDF2Hasher_MalformedRecordsFailClosed(t *testing.T) {
	hasher := NewPBKDF2Hasher()

	malformed := []string{
		"",
		"no-delimiter",
		"nothex:deadbeef",
		"deadbeef:nothex",
		":deadbeef",
		"deadbeef:",
		"::",
	}

	for _, record := range malformed {
		assert.False(t, hasher.Check("any password", record), "record %q should fail closed", record)
	}
}
