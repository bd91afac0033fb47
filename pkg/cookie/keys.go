package cookie

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keySize = 32

var (
	signingInfo    = []byte("linkbio-dashboard/cookie/signing")
	encryptionInfo = []byte("linkbio-dashboard/cookie/encryption")
)

// keyring holds the keys derived from one secret.
type keyring struct {
	sign    []byte
	encrypt []byte
}

func deriveKeyring(secret string) (keyring, error) {
	sign, err := deriveKey(secret, signingInfo)
	if err != nil {
		return keyring{}, err
	}
	enc, err := deriveKey(secret, encryptionInfo)
	if err != nil {
		return keyring{}, err
	}
	return keyring{sign: sign, encrypt: enc}, nil
}

func deriveKey(secret string, info []byte) ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, info), key); err != nil {
		return nil, err
	}
	return key, nil
}
