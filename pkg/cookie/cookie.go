package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"
)

const (
	minSecretLength = 32
	// maxValueLength keeps the full Set-Cookie header under the 4KB browser limit.
	maxValueLength = 3800
)

// Manager reads and writes plain, signed and encrypted cookies.
type Manager struct {
	keys     []keyring
	defaults Options
}

// New creates a Manager. The first secret writes; all of them read, which
// allows rotation. Each secret must be at least 32 characters.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	keys := make([]keyring, 0, len(secrets))
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		k, err := deriveKeyring(s)
		if err != nil {
			return nil, fmt.Errorf("failed to derive cookie keys: %w", err)
		}
		keys = append(keys, k)
	}

	defaults := applyOptions(Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, opts)

	return &Manager{keys: keys, defaults: defaults}, nil
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	if len(value) > maxValueLength {
		return ErrValueTooLarge
	}
	options := applyOptions(m.defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
	return nil
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires the cookie. Options must match the path and domain it was
// set with.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	options := applyOptions(m.defaults, opts)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
		Secure:   options.Secure,
	})
}

func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Set(w, name, m.sign(name, value), opts...)
}

func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(name, signed)
}

// SetEncrypted stores value with AES-256-GCM. The cookie name is bound as
// additional data, so a ciphertext cannot be replayed under another name.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, opts ...Option) error {
	encrypted, err := m.encrypt(name, []byte(value))
	if err != nil {
		return err
	}
	return m.Set(w, name, encrypted, opts...)
}

func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	encrypted, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	plain, err := m.decrypt(name, encrypted)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// SetJSON marshals v and stores it encrypted.
func (m *Manager) SetJSON(w http.ResponseWriter, name string, v any, opts ...Option) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cookie value: %w", err)
	}
	encrypted, err := m.encrypt(name, data)
	if err != nil {
		return err
	}
	return m.Set(w, name, encrypted, opts...)
}

// GetJSON decrypts the cookie into dest.
func (m *Manager) GetJSON(r *http.Request, name string, dest any) error {
	encrypted, err := m.Get(r, name)
	if err != nil {
		return err
	}
	plain, err := m.decrypt(name, encrypted)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plain, dest); err != nil {
		return errors.Join(ErrInvalidFormat, err)
	}
	return nil
}

func (m *Manager) sign(name, value string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + "." + mac(m.keys[0].sign, name, value)
}

func (m *Manager) verify(name, signed string) (string, error) {
	encoded, signature, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range m.keys {
		if hmac.Equal([]byte(signature), []byte(mac(k.sign, name, string(value)))) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

func mac(key []byte, name, value string) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func (m *Manager) encrypt(name string, plain []byte) (string, error) {
	gcm, err := newGCM(m.keys[0].encrypt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, plain, []byte(name))
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (m *Manager) decrypt(name, encrypted string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	for _, k := range m.keys {
		gcm, err := newGCM(k.encrypt)
		if err != nil {
			continue
		}
		if len(data) < gcm.NonceSize() {
			return nil, ErrInvalidFormat
		}
		nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
		if plain, err := gcm.Open(nil, nonce, ciphertext, []byte(name)); err == nil {
			return plain, nil
		}
	}
	return nil, ErrDecryptionFailed
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
