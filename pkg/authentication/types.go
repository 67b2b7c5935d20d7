package authentication

import "errors"

// PasswordHasher produces salted password hashes for storage
type PasswordHasher interface {
	// Hash returns the encoded hash of password
	Hash(password string) (string, error)
}

// PasswordVerifier is an interface for password verification algorithms
type PasswordVerifier interface {
	// VerifyPassword checks if a password matches its stored form
	VerifyPassword(password, stored string) error
}

var (
	// ErrInvalidCredentials is returned when authentication fails
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidHash is returned when a stored hash cannot be parsed
	ErrInvalidHash = errors.New("invalid password hash")
)
