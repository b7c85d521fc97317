// Package crypto implements the legacy symmetric payload cipher used
// by the pub/sub service: AES-256-CBC with a key derived from the
// SHA-256 hex digest of the cipher key, a fixed IV, PKCS#7 padding,
// and base64 wire encoding.
//
// The scheme is dictated by wire compatibility with existing clients;
// in particular the static IV is part of the historical format and
// cannot be changed without breaking interop.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// iv is the fixed initialization vector of the legacy scheme.
var iv = []byte("0123456789012345")

var (
	// ErrInvalidCiphertext means the message is not valid base64 or its
	// decoded length is not a whole number of AES blocks.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	// ErrInvalidPadding means decryption produced a malformed PKCS#7
	// tail, usually because the cipher key is wrong.
	ErrInvalidPadding = errors.New("invalid padding")
)

// secret derives the AES key: the first 32 hex characters of the
// SHA-256 digest of the cipher key, used as raw bytes.
func secret(cipherKey string) []byte {
	sum := sha256.Sum256([]byte(cipherKey))
	return []byte(hex.EncodeToString(sum[:])[:32])
}

// Encrypt encrypts msg under cipherKey and returns the base64-encoded
// ciphertext.
func Encrypt(cipherKey, msg string) (string, error) {
	block, err := aes.NewCipher(secret(cipherKey))
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	padded := pad([]byte(msg), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt decrypts a base64-encoded message under cipherKey. When the
// plaintext is valid JSON the decoded value is returned, otherwise the
// plaintext string itself; this mirrors how the service wraps message
// payloads.
func Decrypt(cipherKey, msg string) (any, error) {
	raw, err := base64.StdEncoding.DecodeString(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCiphertext, err)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidCiphertext, len(raw))
	}

	block, err := aes.NewCipher(secret(cipherKey))
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, raw)

	plain, err := depad(out, aes.BlockSize)
	if err != nil {
		return nil, err
	}

	var v any
	if json.Unmarshal(plain, &v) == nil {
		return v, nil
	}
	return string(plain), nil
}

// pad appends PKCS#7 padding up to the next blockSize boundary. A
// message already on the boundary gets a full block of padding.
func pad(msg []byte, blockSize int) []byte {
	n := blockSize - len(msg)%blockSize
	padded := make([]byte, len(msg)+n)
	copy(padded, msg)
	for i := len(msg); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// depad strips and verifies PKCS#7 padding.
func depad(msg []byte, blockSize int) ([]byte, error) {
	if len(msg) == 0 {
		return nil, ErrInvalidPadding
	}
	n := int(msg[len(msg)-1])
	if n == 0 || n > blockSize || n > len(msg) {
		return nil, ErrInvalidPadding
	}
	for _, b := range msg[len(msg)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}
	return msg[:len(msg)-n], nil
}
