// Package cryptox holds the low-level cryptographic primitives used to
// protect stored secrets: AES-256-GCM sealing with a process-wide key and
// argon2id hashing with per-record salts.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	// SaltSize is the argon2id salt length in bytes.
	SaltSize = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

var (
	ErrInvalidKeySize     = errors.New("invalid key size")
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// GenerateKey returns a fresh random AES-256 key.
func GenerateKey() []byte {
	return common.GenerateRandByteArray(KeySize)
}

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// Seal encrypts plaintext with AES-GCM under key. A new random nonce is
// generated per call and prepended to the returned ciphertext.
func Seal(plaintext, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())

	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal. It fails if the data was sealed under another key or
// has been tampered with.
func Open(sealed, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	ns := aesgcm.NonceSize()
	if len(sealed) < ns {
		return nil, ErrCiphertextTooShort
	}

	nonce, ciphertext := sealed[:ns], sealed[ns:]
	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("could not decrypt ciphertext: %w", err)
	}
	return plaintext, nil
}

// HashPassword returns salt||argon2id(password, salt) with a random salt.
func HashPassword(password []byte) []byte {
	salt := common.GenerateRandByteArray(SaltSize)
	return append(salt, DeriveKey(password, salt)...)
}

// CheckPassword reports whether password matches a value produced by
// HashPassword. The comparison is constant-time.
func CheckPassword(stored, password []byte) bool {
	if len(stored) != SaltSize+argonKeyLen {
		return false
	}
	salt, hash := stored[:SaltSize], stored[SaltSize:]
	return subtle.ConstantTimeCompare(hash, DeriveKey(password, salt)) == 1
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("could not create new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("could not create GCM: %w", err)
	}
	return aesgcm, nil
}
