package services

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
)

const (
	HashingPlain    = "plain"
	HashingArgon2ID = "argon2id"
)

// PasswordHasher turns a password into its stored form and checks a
// password against a stored value.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, stored string) (bool, error)
}

func NewPasswordHasher(kind string) (PasswordHasher, error) {
	switch kind {
	case "", HashingPlain:
		return plainHasher{}, nil
	case HashingArgon2ID:
		return argon2IDHasher{params: argon2id.DefaultParams}, nil
	default:
		return nil, fmt.Errorf("unknown password hashing: %s", kind)
	}
}

// plainHasher stores passwords as they are.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (plainHasher) Compare(password, stored string) (bool, error) {
	return comparePassword(password, stored)
}

type argon2IDHasher struct {
	params *argon2id.Params
}

func (h argon2IDHasher) Hash(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, h.params)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

func (argon2IDHasher) Compare(password, stored string) (bool, error) {
	return comparePassword(password, stored)
}

// comparePassword accepts both stored forms so switching the hashing
// mode doesn't lock out existing users. A stored value that only looks
// like a hash is compared literally.
func comparePassword(password, stored string) (bool, error) {
	if strings.HasPrefix(stored, "$argon2id$") {
		match, err := argon2id.ComparePasswordAndHash(password, stored)
		if err == nil {
			return match, nil
		}
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1, nil
}
