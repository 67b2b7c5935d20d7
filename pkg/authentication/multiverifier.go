package authentication

import (
	"crypto/subtle"
	"strings"
)

// MultiVerifier detects the stored password format and delegates to the
// appropriate comparison. Records imported from the original site hold
// plaintext passwords; anything registered here holds an argon2id hash.
// The plaintext branch exists only so imported accounts can log in once
// and be rehashed; new plaintext records are never written.
type MultiVerifier struct {
	argon2id *Argon2id
}

// NewMultiVerifier creates a verifier supporting argon2id and legacy
// plaintext records
func NewMultiVerifier() *MultiVerifier {
	return &MultiVerifier{
		argon2id: NewArgon2id(),
	}
}

// VerifyPassword checks password against its stored form
func (v *MultiVerifier) VerifyPassword(password, stored string) error {
	if stored == "" {
		return ErrInvalidHash
	}

	if strings.HasPrefix(stored, "$argon2id$") {
		return v.argon2id.VerifyPassword(password, stored)
	}

	// Legacy plaintext record
	if subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1 {
		return nil
	}
	return ErrInvalidCredentials
}

// NeedsRehash reports whether a stored record is in a legacy format and
// should be replaced with an argon2id hash after a successful login
func (v *MultiVerifier) NeedsRehash(stored string) bool {
	return !strings.HasPrefix(stored, "$argon2id$")
}
