package authentication

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id hashes and verifies passwords in PHC format.
// Example: $argon2id$v=19$m=65536,t=2,p=1$<salt_b64>$<hash_b64>
type Argon2id struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

// NewArgon2id returns an Argon2id hasher/verifier with common settings
func NewArgon2id() *Argon2id {
	return &Argon2id{
		memory:  64 * 1024,
		time:    2,
		threads: 1,
		keyLen:  32,
		saltLen: 16,
	}
}

// Hash derives a salted hash of password and encodes it in PHC format
func (a *Argon2id) Hash(password string) (string, error) {
	salt := make([]byte, a.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	derived := argon2.IDKey([]byte(password), salt, a.time, a.memory, a.threads, a.keyLen)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		a.memory, a.time, a.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(derived)), nil
}

// VerifyPassword verifies a password against a PHC-formatted argon2id hash
func (a *Argon2id) VerifyPassword(password, stored string) error {
	params, salt, expectedHash, err := parsePHCArgon2id(stored)
	if err != nil {
		return err
	}

	derived := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(expectedHash)))
	if subtle.ConstantTimeCompare(derived, expectedHash) == 1 {
		return nil
	}
	return ErrInvalidCredentials
}

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
}

func parsePHCArgon2id(s string) (argon2Params, []byte, []byte, error) {
	// Defaults align with common settings
	params := argon2Params{memory: 64 * 1024, time: 2, threads: 1}

	parts := strings.Split(s, "$")
	// Expect: ["", "argon2id", "v=19", "m=..,t=..,p=..", "saltb64", "hashb64"]
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, fmt.Errorf("%w: unsupported format", ErrInvalidHash)
	}
	if !strings.HasPrefix(parts[2], "v=") {
		return params, nil, nil, fmt.Errorf("%w: missing version", ErrInvalidHash)
	}

	for _, kv := range strings.Split(parts[3], ",") {
		pair := strings.SplitN(kv, "=", 2)
		if len(pair) != 2 {
			continue
		}
		key, val := pair[0], pair[1]
		switch key {
		case "m":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				params.memory = uint32(n)
			}
		case "t":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				params.time = uint32(n)
			}
		case "p":
			if n, err := strconv.Atoi(val); err == nil && n > 0 && n < 256 {
				params.threads = uint8(n)
			}
		}
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, fmt.Errorf("%w: bad salt encoding", ErrInvalidHash)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, fmt.Errorf("%w: bad hash encoding", ErrInvalidHash)
	}
	if len(hash) == 0 {
		return params, nil, nil, fmt.Errorf("%w: empty hash", ErrInvalidHash)
	}
	return params, salt, hash, nil
}
