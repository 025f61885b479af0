package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"strings"
)

var (
	ErrSecretEmpty      = errors.New("encryption secret cannot be empty")
	ErrCiphertextFormat = errors.New("ciphertext is not in sealed format")
)

// sealedPrefix marks values produced by Sealer so stored plaintext from
// older rows can still be read back.
const sealedPrefix = "enc:v1:"

type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, ErrSecretEmpty
	}
	sum := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: gcm}, nil
}

func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(out), nil
}

func (s *Sealer) Open(value string) (string, error) {
	if !IsSealed(value) {
		return "", ErrCiphertextFormat
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil {
		return "", err
	}
	nonceSize := s.aead.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}
	plaintext, err := s.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func IsSealed(value string) bool {
	return strings.HasPrefix(value, sealedPrefix)
}
