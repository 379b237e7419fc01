package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"strings"
)

const (
	// Header is the HTTP header carrying the payload signature.
	Header = "abp-webhook-signature"

	// Prefix identifies the signing algorithm in the header value.
	Prefix = "sha256="
)

// Sign computes an HMAC-SHA256 over the exact body bytes, keyed with the
// UTF-8 bytes of the secret. The digest is rendered as uppercase
// hyphen-separated hex pairs prefixed with the algorithm identifier:
//
//	sha256=AB-12-CD-...
//
// The body must be the final serialized payload; signing anything else
// breaks verification on the receiving side.
func Sign(body []byte, secret string) (string, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", fmt.Errorf("body cannot be empty")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	digest := mac.Sum(nil)

	return Prefix + formatDigest(digest), nil
}

// Verify checks a signature header value against the given body and secret
// using constant-time comparison. Returns true if the signature is valid.
func Verify(body []byte, secret, headerValue string) (bool, error) {
	if !strings.HasPrefix(headerValue, Prefix) {
		return false, fmt.Errorf("signature must start with %s prefix", Prefix)
	}

	expected, err := Sign(body, secret)
	if err != nil {
		return false, fmt.Errorf("calculating signature: %w", err)
	}

	return subtle.ConstantTimeCompare([]byte(expected), []byte(headerValue)) == 1, nil
}

// formatDigest renders digest bytes as uppercase hex pairs joined by hyphens,
// e.g. []byte{0xab, 0x01} -> "AB-01".
func formatDigest(digest []byte) string {
	parts := make([]string, len(digest))
	for i, b := range digest {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, "-")
}
