package id

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a time-ordered UUIDv7 so ids sort by creation.
func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return v.String(), nil
}

const TokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TokenGenerator creates short human-typeable credentials.
type TokenGenerator interface {
	NewToken(length int) (string, error)
}

type RandomTokenGenerator struct{}

func NewRandomTokenGenerator() *RandomTokenGenerator {
	return &RandomTokenGenerator{}
}

func (g *RandomTokenGenerator) NewToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("token length must be > 0")
	}

	max := big.NewInt(int64(len(TokenAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random index: %w", err)
		}
		buf[i] = TokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
