package encryption

import (
	"errors"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmAESGCM, AlgorithmChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			enc, err := New("profile-secret", WithAlgorithm(alg))
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			for _, plain := range []string{"", "eyJhbGciOi.token", `[{"productId":"p-1","quantity":2}]`} {
				sealed, err := enc.Encrypt(plain)
				if err != nil {
					t.Fatalf("Encrypt failed: %v", err)
				}
				if plain != "" && sealed == plain {
					t.Error("ciphertext should differ from plaintext")
				}
				got, err := enc.Decrypt(sealed)
				if err != nil {
					t.Fatalf("Decrypt failed: %v", err)
				}
				if got != plain {
					t.Errorf("expected %q, got %q", plain, got)
				}
			}
		})
	}
}

func TestNonceIsRandom(t *testing.T) {
	enc, _ := New("k")
	a, _ := enc.Encrypt("same")
	b, _ := enc.Encrypt("same")
	if a == b {
		t.Error("two encryptions of the same value should differ")
	}
}

func TestWrongKeyFails(t *testing.T) {
	a, _ := New("key-a")
	b, _ := New("key-b")
	sealed, _ := a.Encrypt("theme=dark")
	if _, err := b.Decrypt(sealed); err == nil {
		t.Error("expected decrypt with the wrong key to fail")
	}
}

func TestAlgorithmsAreNotInterchangeable(t *testing.T) {
	aes, _ := New("k", WithAlgorithm(AlgorithmAESGCM))
	cc, _ := New("k", WithAlgorithm(AlgorithmChaCha20))
	sealed, _ := aes.Encrypt("x")
	if _, err := cc.Decrypt(sealed); err == nil {
		t.Error("expected chacha20 to reject aes-gcm ciphertext")
	}
}

func TestDecryptInvalidInput(t *testing.T) {
	enc, _ := New("k")
	if _, err := enc.Decrypt("%%%not-base64"); err == nil {
		t.Error("expected base64 error")
	}
	if _, err := enc.Decrypt("AAAA"); !errors.Is(err, ErrCiphertextTooShort) {
		t.Errorf("expected ErrCiphertextTooShort, got %v", err)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("expected error for empty key")
	}
	if _, err := New("k", WithAlgorithm("rot13")); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := map[string]Algorithm{"": AlgorithmAESGCM, "AES-256-GCM": AlgorithmAESGCM, "chacha20-poly1305": AlgorithmChaCha20}
	for in, want := range tests {
		got, err := ParseAlgorithm(in)
		if err != nil || got != want {
			t.Errorf("ParseAlgorithm(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseAlgorithm("des"); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
}
