package security

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password mismatch")

// Hasher turns a plain password into its stored form and checks a plain
// password against a stored value.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(stored, plain string) error
}

const (
	HasherPlaintext = "plaintext"
	HasherBcrypt    = "bcrypt"
)

func NewHasher(kind string) (Hasher, error) {
	switch kind {
	case "", HasherPlaintext:
		return Plaintext{}, nil
	case HasherBcrypt:
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", kind)
	}
}

// Plaintext stores passwords as given. It exists for compatibility with
// snapshots written by the browser store and must not be used for real
// accounts.
type Plaintext struct{}

func (Plaintext) Hash(plain string) (string, error) {
	return plain, nil
}

func (Plaintext) Compare(stored, plain string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

type Bcrypt struct {
	Cost int
}

// Hash password hashes a plain text password with bcrypt.
func (b Bcrypt) Hash(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func (Bcrypt) Compare(stored, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain))
	if err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
