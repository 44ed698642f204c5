// Package crypto seals secret settings values with AES-GCM under a rotating key ring.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// sealedPrefix marks a value produced by SealString. Values without it are plaintext.
const sealedPrefix = "enc:"

type Envelope struct {
	KeyID      string `json:"kid"`
	Nonce      string `json:"n"`
	Ciphertext string `json:"ct"`
}

type Manager struct {
	currentKeyID string
	keys         map[string][]byte
}

func NewManager(currentKeyID string, keys map[string][]byte) (*Manager, error) {
	if currentKeyID == "" {
		return nil, fmt.Errorf("current key id is empty")
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("keys map is empty")
	}
	if _, ok := keys[currentKeyID]; !ok {
		return nil, fmt.Errorf("current key id %q not found", currentKeyID)
	}
	cp := make(map[string][]byte, len(keys))
	for id, key := range keys {
		if len(key) != 32 {
			return nil, fmt.Errorf("key %q must be 32 bytes", id)
		}
		buf := make([]byte, len(key))
		copy(buf, key)
		cp[id] = buf
	}
	return &Manager{currentKeyID: currentKeyID, keys: cp}, nil
}

// NewManagerFromBase64 builds a single-key manager from a base64 encoded 32-byte key.
func NewManagerFromBase64(keyID, b64 string) (*Manager, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, fmt.Errorf("decode master key: %w", err)
	}
	return NewManager(keyID, map[string][]byte{keyID: key})
}

func (m *Manager) aead(keyID string) (cipher.AEAD, error) {
	key, ok := m.keys[keyID]
	if !ok {
		return nil, fmt.Errorf("unknown key id %q", keyID)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return aead, nil
}

// Encrypt seals plaintext with the current key. aad binds the ciphertext to where it is
// stored; the same aad must be passed to Decrypt.
func (m *Manager) Encrypt(plaintext, aad []byte) (Envelope, error) {
	aead, err := m.aead(m.currentKeyID)
	if err != nil {
		return Envelope{}, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return Envelope{}, fmt.Errorf("nonce: %w", err)
	}
	return Envelope{
		KeyID:      m.currentKeyID,
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(aead.Seal(nil, nonce, plaintext, aad)),
	}, nil
}

func (m *Manager) Decrypt(env Envelope, aad []byte) ([]byte, error) {
	aead, err := m.aead(env.KeyID)
	if err != nil {
		return nil, err
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return nil, fmt.Errorf("decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decode ciphertext: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}

// SealString encrypts value into a single printable token. Empty values stay empty.
func (m *Manager) SealString(value, aad string) (string, error) {
	if value == "" {
		return "", nil
	}
	env, err := m.Encrypt([]byte(value), []byte(aad))
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}

// OpenString reverses SealString. Values that were never sealed are returned as is.
func (m *Manager) OpenString(raw, aad string) (string, error) {
	if !IsSealed(raw) {
		return raw, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(raw, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("decode envelope: %w", err)
	}
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return "", fmt.Errorf("unmarshal envelope: %w", err)
	}
	pt, err := m.Decrypt(env, []byte(aad))
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// Reseal re-encrypts raw under the current key.
func (m *Manager) Reseal(raw, aad string) (string, error) {
	plain, err := m.OpenString(raw, aad)
	if err != nil {
		return "", err
	}
	return m.SealString(plain, aad)
}

func IsSealed(raw string) bool {
	return strings.HasPrefix(raw, sealedPrefix)
}
