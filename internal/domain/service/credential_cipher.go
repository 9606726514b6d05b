package service

// BookingCredentials is the plaintext username/password pair for a
// third-party booking site. It exists in memory only; at rest it is always
// the sealed form.
type BookingCredentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CredentialCipher seals and opens third-party site credentials. Each sealed
// record is self-contained: the salt and nonce travel with the ciphertext, so
// any record is decryptable given only the master secret.
type CredentialCipher interface {
	// Seal encrypts the credentials into one opaque string with a fresh
	// salt and nonce per call.
	Seal(credentials BookingCredentials) (string, error)

	// Open decrypts a sealed record. Tampering, corruption, or a wrong
	// master secret surfaces as a decryption error, never as garbled
	// plaintext.
	Open(sealed string) (BookingCredentials, error)
}
