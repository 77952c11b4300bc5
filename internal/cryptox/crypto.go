// Package cryptox implements the vault's content codec: AES-256-GCM sealed
// text packed into a self-describing base64 envelope, plus the random and
// key-derivation helpers used around it.
//
// Envelope layout (before base64):
//
//	nonce (12 bytes) || auth tag (16 bytes) || ciphertext
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/secretsvault/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the only accepted key length (AES-256).
	KeySize = 32
	// NonceSize is the GCM nonce length.
	NonceSize = 12
	// TagSize is the GCM authentication tag length.
	TagSize = 16
	// ShareCodeSize is the number of random bytes behind a share code.
	ShareCodeSize = 32
)

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, aes.KeySizeError(len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, NonceSize)
}

// Encrypt seals plaintext with key under a fresh random nonce and returns
// base64(nonce || tag || ciphertext). Any failure, including a key that is
// not exactly 32 bytes, is reported as an *EncryptionError.
func Encrypt(plaintext string, key []byte) (string, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return "", &EncryptionError{Err: err}
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", &EncryptionError{Err: err}
	}

	// Seal appends the tag after the ciphertext; the envelope wants it first.
	sealed := aesgcm.Seal(nil, nonce, []byte(plaintext), nil)
	body, tag := sealed[:len(sealed)-TagSize], sealed[len(sealed)-TagSize:]

	payload := make([]byte, 0, NonceSize+TagSize+len(body))
	payload = append(payload, nonce...)
	payload = append(payload, tag...)
	payload = append(payload, body...)

	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decrypt reverses Encrypt. A payload shorter than nonce+tag yields
// ErrInvalidCiphertextPayload before any cryptographic work; every other
// failure (bad base64, wrong key, tampered bytes) is a *DecryptionError.
func Decrypt(ciphertext string, key []byte) (string, error) {
	payload, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", &DecryptionError{Err: err}
	}
	if len(payload) < NonceSize+TagSize {
		return "", ErrInvalidCiphertextPayload
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", &DecryptionError{Err: err}
	}

	nonce := payload[:NonceSize]
	tag := payload[NonceSize : NonceSize+TagSize]
	body := payload[NonceSize+TagSize:]

	sealed := make([]byte, 0, len(body)+TagSize)
	sealed = append(sealed, body...)
	sealed = append(sealed, tag...)

	plaintext, err := aesgcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", &DecryptionError{Err: err}
	}
	return string(plaintext), nil
}

// GenerateCode returns a fresh share-link code: 32 random bytes, hex encoded.
func GenerateCode() (string, error) {
	code, err := common.MakeRandHexString(ShareCodeSize)
	if err != nil {
		return "", fmt.Errorf("generate share code: %w", err)
	}
	return code, nil
}

// DeriveKey stretches a passphrase into a KeySize key with argon2id.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}
