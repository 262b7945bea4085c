// Package cryptox seals provider API keys before they reach the local
// database. Keys are encrypted with AES-GCM under a key derived from a
// per-installation random seed.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// DeriveKey stretches the installation seed into a 32-byte AES key.
func DeriveKey(seed []byte, salt []byte) []byte {
	return argon2.IDKey(seed, salt, 1, 64*1024, 4, 32)
}

// GenerateRandBytes returns n cryptographically random bytes.
func GenerateRandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("rand: %w", err)
	}
	return b, nil
}

// Seal encrypts plaintext with AES-GCM.
//
// The key must be 16, 24, or 32 bytes. A fresh random 12-byte nonce is
// generated per call and returned alongside the ciphertext.
func Seal(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	nonce, err = GenerateRandBytes(12)
	if err != nil {
		return nil, nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)

	return ciphertext, nonce, nil
}

// Open decrypts ciphertext produced by Seal using the same key and nonce.
func Open(ciphertext, nonce, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}
