package cryptox

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// sealSalt is the fixed scrypt salt for deriving the sealing key from the
// machine secret. The secret itself is random per machine, so a fixed salt
// is acceptable here.
var sealSalt = []byte("simple-decor/state-seal/v1")

// Sealer performs authenticated encryption of small secrets held in the local
// state database, so a bearer token at rest is not readable by casually
// inspecting the file. The key is derived from a per-machine secret via
// scrypt.
type Sealer struct {
	aead interface {
		Seal(dst, nonce, plaintext, additionalData []byte) []byte
		Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	}
}

// NewSealer derives an XChaCha20-Poly1305 sealing key from the given machine
// secret.
func NewSealer(secret []byte) (*Sealer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("cryptox: empty sealing secret")
	}

	key, err := scrypt.Key(secret, sealSalt, 1<<15, 8, 1, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to derive sealing key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to create cipher: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// Seal encrypts and authenticates plaintext. Output format:
// [24-byte nonce][ciphertext][16-byte auth tag].
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate nonce: %w", err)
	}

	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts data produced by Seal. Tampered or foreign data fails
// authentication and returns an error.
func (s *Sealer) Open(data []byte) ([]byte, error) {
	if len(data) < chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("cryptox: sealed data too short")
	}

	nonce, ciphertext := data[:chacha20poly1305.NonceSizeX], data[chacha20poly1305.NonceSizeX:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to open sealed data: %w", err)
	}

	return plaintext, nil
}

// LoadOrCreateSecret reads the machine secret from path, generating and
// persisting a new random secret (0600) when the file does not exist yet.
// Deleting the file invalidates every sealed value in the state database.
func LoadOrCreateSecret(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) == 0 {
			return nil, fmt.Errorf("cryptox: secret file %s is empty", path)
		}
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("cryptox: failed to read secret file: %w", err)
	}

	secret := []byte(MustGenerateToken(TokenSize256))
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, fmt.Errorf("cryptox: failed to write secret file: %w", err)
	}

	return secret, nil
}
