// Package crypto provides the AES-GCM credential cipher backing
// service.CredentialCipher.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"

	"booker/config"
	"booker/internal/domain/service"
	"booker/internal/errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength  = 16
	nonceLength = 12
	iterations  = 100_000
	keyLength   = 32
)

// AESGCMCipher seals credentials with AES-256-GCM. Every record carries its
// own salt and nonce, and the encryption key is derived per record from the
// master secret via PBKDF2-SHA256.
type AESGCMCipher struct {
	masterSecret []byte
}

// NewAESGCMCipher creates a cipher from the configured credentials secret.
func NewAESGCMCipher(cfg *config.Config) (service.CredentialCipher, error) {
	if cfg.SecretKey.Credentials == "" {
		return nil, errors.New("credentials secret key is empty")
	}

	return &AESGCMCipher{masterSecret: []byte(cfg.SecretKey.Credentials)}, nil
}

// Seal encrypts the credentials and returns base64(salt || nonce || ciphertext).
// The GCM tag is appended to the ciphertext by Seal's AEAD.
func (c *AESGCMCipher) Seal(credentials service.BookingCredentials) (string, error) {
	plaintext, err := json.Marshal(credentials)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal credentials")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}

	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "failed to generate nonce")
	}

	aead, err := c.newAEAD(salt)
	if err != nil {
		return "", err
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)

	record := make([]byte, 0, saltLength+nonceLength+len(ciphertext))
	record = append(record, salt...)
	record = append(record, nonce...)
	record = append(record, ciphertext...)

	return base64.StdEncoding.EncodeToString(record), nil
}

// Open decrypts a sealed record. Any tampering or a wrong master secret fails
// GCM authentication and returns an error.
func (c *AESGCMCipher) Open(sealed string) (service.BookingCredentials, error) {
	record, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return service.BookingCredentials{}, errors.Wrap(err, "sealed record is not valid base64")
	}

	if len(record) < saltLength+nonceLength+1 {
		return service.BookingCredentials{}, errors.New("sealed record is too short")
	}

	salt := record[:saltLength]
	nonce := record[saltLength : saltLength+nonceLength]
	ciphertext := record[saltLength+nonceLength:]

	aead, err := c.newAEAD(salt)
	if err != nil {
		return service.BookingCredentials{}, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return service.BookingCredentials{}, errors.Wrap(err, "failed to decrypt sealed record")
	}

	var credentials service.BookingCredentials
	if err := json.Unmarshal(plaintext, &credentials); err != nil {
		return service.BookingCredentials{}, errors.Wrap(err, "failed to unmarshal credentials")
	}

	return credentials, nil
}

func (c *AESGCMCipher) newAEAD(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(c.masterSecret, salt, iterations, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AES cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GCM")
	}

	return aead, nil
}
