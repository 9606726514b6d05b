package crypto

import (
	"encoding/base64"
	"testing"

	"booker/config"
	"booker/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCipher(t *testing.T, secret string) service.CredentialCipher {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Credentials = secret

	cipher, err := NewAESGCMCipher(cfg)
	require.NoError(t, err)

	return cipher
}

func TestAESGCMCipher_SealAndOpen(t *testing.T) {
	cipher := newCipher(t, "test_credentials_secret_key")

	credentials := service.BookingCredentials{
		Username: "diner@example.com",
		Password: "p@ssw0rd with spaces and ünïcode",
	}

	sealed, err := cipher.Seal(credentials)
	require.NoError(t, err)
	assert.NotEmpty(t, sealed)
	assert.NotContains(t, sealed, credentials.Username)
	assert.NotContains(t, sealed, credentials.Password)

	opened, err := cipher.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, credentials, opened)
}

func TestAESGCMCipher_FreshSaltAndNoncePerSeal(t *testing.T) {
	cipher := newCipher(t, "test_credentials_secret_key")

	credentials := service.BookingCredentials{Username: "diner@example.com", Password: "secret"}

	first, err := cipher.Seal(credentials)
	require.NoError(t, err)
	second, err := cipher.Seal(credentials)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, sealed := range []string{first, second} {
		opened, err := cipher.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, credentials, opened)
	}
}

func TestAESGCMCipher_WrongSecretFails(t *testing.T) {
	sealer := newCipher(t, "the_real_secret")
	opener := newCipher(t, "a_different_secret")

	sealed, err := sealer.Seal(service.BookingCredentials{Username: "diner@example.com", Password: "secret"})
	require.NoError(t, err)

	_, err = opener.Open(sealed)
	assert.Error(t, err)
}

func TestAESGCMCipher_TamperedRecordFails(t *testing.T) {
	cipher := newCipher(t, "test_credentials_secret_key")

	sealed, err := cipher.Seal(service.BookingCredentials{Username: "diner@example.com", Password: "secret"})
	require.NoError(t, err)

	record, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)

	// Flip one bit in the ciphertext so GCM authentication must fail.
	record[len(record)-1] ^= 0x01
	tampered := base64.StdEncoding.EncodeToString(record)

	_, err = cipher.Open(tampered)
	assert.Error(t, err)
}

func TestAESGCMCipher_MalformedRecords(t *testing.T) {
	cipher := newCipher(t, "test_credentials_secret_key")

	cases := []struct {
		name   string
		sealed string
	}{
		{name: "not base64", sealed: "!!!not-base64!!!"},
		{name: "empty", sealed: ""},
		{name: "too short", sealed: base64.StdEncoding.EncodeToString([]byte("short"))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cipher.Open(tc.sealed)
			assert.Error(t, err)
		})
	}
}

func TestNewAESGCMCipher_EmptySecret(t *testing.T) {
	cipher, err := NewAESGCMCipher(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, cipher)
}
