package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// Encryptor encrypts and decrypts strings.
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// Algorithm names a supported AEAD.
type Algorithm string

const (
	// AlgorithmAESGCM is AES-256-GCM, the default.
	AlgorithmAESGCM Algorithm = "aes-256-gcm"
	// AlgorithmChaCha20 is ChaCha20-Poly1305, faster without AES hardware.
	AlgorithmChaCha20 Algorithm = "chacha20-poly1305"
)

// ErrCiphertextTooShort is returned for input shorter than a nonce.
var ErrCiphertextTooShort = errors.New("encryption: ciphertext too short")

// ParseAlgorithm accepts an algorithm name; empty selects AES-256-GCM.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", AlgorithmAESGCM:
		return AlgorithmAESGCM, nil
	case AlgorithmChaCha20:
		return AlgorithmChaCha20, nil
	default:
		return "", fmt.Errorf("encryption: unsupported algorithm %q", s)
	}
}

// Option configures New.
type Option func(*options)

type options struct {
	algorithm Algorithm
}

// WithAlgorithm selects the cipher.
func WithAlgorithm(alg Algorithm) Option {
	return func(o *options) { o.algorithm = alg }
}

// New creates an Encryptor keyed by the SHA-256 of key.
func New(key string, opts ...Option) (Encryptor, error) {
	if key == "" {
		return nil, errors.New("encryption: key is required")
	}
	o := &options{algorithm: AlgorithmAESGCM}
	for _, opt := range opts {
		opt(o)
	}

	sum := sha256.Sum256([]byte(key))
	var (
		aead cipher.AEAD
		err  error
	)
	switch o.algorithm {
	case AlgorithmChaCha20:
		aead, err = chacha20poly1305.New(sum[:])
	case AlgorithmAESGCM:
		var block cipher.Block
		if block, err = aes.NewCipher(sum[:]); err == nil {
			aead, err = cipher.NewGCM(block)
		}
	default:
		return nil, fmt.Errorf("encryption: unsupported algorithm %q", o.algorithm)
	}
	if err != nil {
		return nil, fmt.Errorf("encryption: create %s: %w", o.algorithm, err)
	}
	return &sealer{aead: aead}, nil
}

type sealer struct {
	aead cipher.AEAD
}

func (s *sealer) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("encryption: generate nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *sealer) Decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("encryption: decode base64: %w", err)
	}
	n := s.aead.NonceSize()
	if len(data) < n {
		return "", ErrCiphertextTooShort
	}
	plaintext, err := s.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", fmt.Errorf("encryption: decrypt: %w", err)
	}
	return string(plaintext), nil
}
