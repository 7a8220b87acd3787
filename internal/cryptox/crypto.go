// Package cryptox seals byte blobs with a passphrase. It backs the optional
// encryption of durable snapshots.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
)

const (
	saltSize = 16
	keySize  = 32
)

// ErrSealedTooShort is returned by Open for input that cannot hold a salt and a nonce.
var ErrSealedTooShort = errors.New("sealed data too short")

// DeriveKey derives a 256-bit AES key from a passphrase with argon2id.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, keySize)
}

// Seal encrypts plaintext with AES-256-GCM under a key derived from
// passphrase. A fresh salt and nonce are generated per call.
//
// Layout of the result:
//
//	salt (16) | nonce (12) | ciphertext+tag
func Seal(passphrase, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	aesgcm, err := newGCM(DeriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+aesgcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aesgcm.Seal(out, nonce, plaintext, nil), nil
}

// Open reverses Seal. A wrong passphrase or tampered data fails GCM
// authentication and returns an error.
func Open(passphrase, sealed []byte) ([]byte, error) {
	if len(sealed) < saltSize {
		return nil, ErrSealedTooShort
	}
	salt := sealed[:saltSize]

	aesgcm, err := newGCM(DeriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	rest := sealed[saltSize:]
	if len(rest) < aesgcm.NonceSize() {
		return nil, ErrSealedTooShort
	}
	nonce, ciphertext := rest[:aesgcm.NonceSize()], rest[aesgcm.NonceSize():]

	return aesgcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
