// Package secrets implements the policies for storing account secrets:
// verbatim, reversibly encrypted under a process-wide key, or salted and
// hashed.
package secrets

import (
	"crypto/subtle"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/cryptox"
)

const (
	PolicyPlaintext = "plaintext"
	PolicyEncrypted = "encrypted"
	PolicyHashed    = "hashed"
)

// Codec converts a secret into its stored form and checks candidates
// against a stored value.
type Codec interface {
	Encode(plain []byte) ([]byte, error)
	Verify(stored, plain []byte) (bool, error)
}

// New returns the codec for policy. key is only used by PolicyEncrypted.
func New(policy string, key []byte) (Codec, error) {
	switch policy {
	case PolicyPlaintext:
		return Plaintext{}, nil
	case PolicyEncrypted:
		return NewEncrypted(key)
	case PolicyHashed:
		return Hashed{}, nil
	default:
		return nil, fmt.Errorf("unknown secret policy %q", policy)
	}
}

// Plaintext stores secrets verbatim.
type Plaintext struct{}

func (Plaintext) Encode(plain []byte) ([]byte, error) {
	return append([]byte(nil), plain...), nil
}

func (Plaintext) Verify(stored, plain []byte) (bool, error) {
	return subtle.ConstantTimeCompare(stored, plain) == 1, nil
}

// Encrypted stores secrets sealed with AES-GCM. Verification decrypts
// the stored value, so a key change makes every existing account fail
// with common.ErrorKeyMissing.
type Encrypted struct {
	key []byte
}

func NewEncrypted(key []byte) (*Encrypted, error) {
	if len(key) != cryptox.KeySize {
		return nil, fmt.Errorf("%w: need %d byte key, got %d", common.ErrorKeyMissing, cryptox.KeySize, len(key))
	}
	return &Encrypted{key: append([]byte(nil), key...)}, nil
}

func (e *Encrypted) Encode(plain []byte) ([]byte, error) {
	return cryptox.Seal(plain, e.key)
}

func (e *Encrypted) Verify(stored, plain []byte) (bool, error) {
	decrypted, err := cryptox.Open(stored, e.key)
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrorKeyMissing, err)
	}
	defer common.WipeByteArray(decrypted)
	return subtle.ConstantTimeCompare(decrypted, plain) == 1, nil
}

// Hashed stores salt||argon2id(secret). It cannot be reversed.
type Hashed struct{}

func (Hashed) Encode(plain []byte) ([]byte, error) {
	return cryptox.HashPassword(plain), nil
}

func (Hashed) Verify(stored, plain []byte) (bool, error) {
	return cryptox.CheckPassword(stored, plain), nil
}
