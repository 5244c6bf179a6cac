// Package cryptox seals small values at rest with AES-GCM under a key derived
// from a local secret with argon2id.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/dmitrijs2005/insider/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the derived key length (AES-256).
	KeySize = 32
	// SaltSize is the recommended salt length for DeriveKey.
	SaltSize = 16
)

// ErrMalformed is returned by Open when the sealed value is too short or
// fails authentication.
var ErrMalformed = errors.New("malformed sealed value")

// DeriveKey stretches secret into a KeySize key bound to salt.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, KeySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext and returns nonce||ciphertext.
func Seal(plaintext, key []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := common.GenerateRandByteArray(aead.NonceSize())
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal.
func Open(sealed, key []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, ErrMalformed
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrMalformed
	}
	return plaintext, nil
}
