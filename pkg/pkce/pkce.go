package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
)

const (
	// MethodS256 is the only challenge method this package produces.
	MethodS256 = "S256"

	verifierBytes = 32

	minVerifierLength = 43
	maxVerifierLength = 128
)

// Pair is a single-use verifier/challenge pair.
type Pair struct {
	Verifier  string
	Challenge string
}

// Method returns the code_challenge_method for the pair.
func (p Pair) Method() string {
	return MethodS256
}

// GenerateVerifier returns 32 bytes of CSPRNG output encoded as unpadded base64url.
func GenerateVerifier() (string, error) {
	b := make([]byte, verifierBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrEntropyUnavailable, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateChallenge derives the S256 challenge for verifier.
func GenerateChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// GeneratePair returns a fresh, independent verifier and its challenge.
func GeneratePair() (Pair, error) {
	verifier, err := GenerateVerifier()
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		Verifier:  verifier,
		Challenge: GenerateChallenge(verifier),
	}, nil
}

// Verify reports whether challenge was derived from verifier.
func Verify(verifier, challenge string) bool {
	expected := GenerateChallenge(verifier)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(challenge)) == 1
}

// ValidateVerifier checks length and alphabet per RFC 7636 section 4.1.
func ValidateVerifier(verifier string) error {
	if len(verifier) < minVerifierLength || len(verifier) > maxVerifierLength {
		return ErrInvalidVerifier
	}
	for i := 0; i < len(verifier); i++ {
		if !isUnreserved(verifier[i]) {
			return ErrInvalidVerifier
		}
	}
	return nil
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
