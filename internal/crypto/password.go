package crypto

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// Hasher is the one-way credential primitive. Services depend on this
// interface so tests can swap in a cheaper implementation.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) error
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcryptCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h *BcryptHasher) Verify(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
