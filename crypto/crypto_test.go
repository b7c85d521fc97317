package crypto_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/emberline/pubsub/crypto"
)

// TestEncrypt_KnownVector pins the wire format against a ciphertext
// produced by existing clients of the service. Changing key
// derivation, padding, or the IV breaks this.
func TestEncrypt_KnownVector(t *testing.T) {
	got, err := crypto.Encrypt("enigma", `"Pubnub Messaging API 1"`)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	const exp = "f42pIQcWZ9zbTbH8cyLwByD/GsviOE0vcREIEVPARR0="
	if got != exp {
		t.Errorf("ciphertext mismatch\n got: %s\nwant: %s", got, exp)
	}
}

func TestDecrypt_KnownVector(t *testing.T) {
	got, err := crypto.Decrypt("enigma", "f42pIQcWZ9zbTbH8cyLwByD/GsviOE0vcREIEVPARR0=")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// The plaintext is a JSON string, so Decrypt returns it decoded.
	if got != "Pubnub Messaging API 1" {
		t.Errorf("expected decoded JSON string, got %#v", got)
	}
}

func TestRoundTrip(t *testing.T) {
	testCases := map[string]struct {
		msg string
		exp any
	}{
		"jsonString":  {msg: `"hello"`, exp: "hello"},
		"jsonArray":   {msg: `[1,"Sent"]`, exp: []any{float64(1), "Sent"}},
		"jsonObject":  {msg: `{"a":true}`, exp: map[string]any{"a": true}},
		"plainText":   {msg: "not json at all", exp: "not json at all"},
		"empty":       {msg: "", exp: ""},
		"blockSized":  {msg: strings.Repeat("x", 16), exp: strings.Repeat("x", 16)},
		"longPayload": {msg: strings.Repeat("pubsub ", 100), exp: strings.Repeat("pubsub ", 100)},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			enc, err := crypto.Encrypt("my-cipher-key", tc.msg)
			if err != nil {
				t.Fatalf("encrypt: %v", err)
			}

			got, err := crypto.Decrypt("my-cipher-key", enc)
			if err != nil {
				t.Fatalf("decrypt: %v", err)
			}

			if diff := cmp.Diff(tc.exp, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecrypt_InvalidInput(t *testing.T) {
	testCases := map[string]struct {
		msg string
	}{
		"notBase64":    {msg: "%%% definitely not base64 %%%"},
		"emptyMessage": {msg: ""},
		"partialBlock": {msg: "YWJj"}, // 3 raw bytes, not a whole AES block
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := crypto.Decrypt("key", tc.msg)
			if !errors.Is(err, crypto.ErrInvalidCiphertext) {
				t.Errorf("expected ErrInvalidCiphertext, got: %v", err)
			}
		})
	}
}

func TestEncrypt_DistinctKeysDistinctCiphertexts(t *testing.T) {
	a, err := crypto.Encrypt("key-a", `"msg"`)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	b, err := crypto.Encrypt("key-b", `"msg"`)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	if a == b {
		t.Error("expected different keys to produce different ciphertexts")
	}
}
