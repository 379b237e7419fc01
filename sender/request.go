package sender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/marcelsud/webhook-outbox/sender/signature"
)

/* Request construction is split from delivery so the signed bytes and the
 * transmitted bytes can never diverge: the body is serialized once, signed,
 * and attached in a single step before caller headers are merged
 */

// buildRequest constructs the outbound POST request for a delivery attempt:
// signed body, content type, signature header, then caller headers.
func buildRequest(ctx context.Context, input Input, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, input.URI, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if err := attachSignedBody(req, body, input.Secret); err != nil {
		return nil, fmt.Errorf("signing request: %w", err)
	}

	if err := mergeHeaders(req, input.SubscriptionID, input.Headers); err != nil {
		return nil, err
	}

	return req, nil
}

// attachSignedBody signs the payload and sets it as the request body along
// with the content type and signature header. Signing and attachment are a
// single atomic step.
func attachSignedBody(req *http.Request, body []byte, secret string) error {
	if req == nil {
		return fmt.Errorf("request cannot be nil")
	}

	sig, err := signature.Sign(body, secret)
	if err != nil {
		return err
	}

	req.Body = io.NopCloser(bytes.NewReader(body))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	req.ContentLength = int64(len(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signature.Header, sig)

	return nil
}

// mergeHeaders applies caller-supplied headers one at a time. A header that
// cannot be put on the wire fails the whole delivery with an
// InvalidHeaderError; it is never skipped silently.
func mergeHeaders(req *http.Request, subscriptionID uuid.UUID, headers map[string]string) error {
	for key, value := range headers {
		if !validHeaderName(key) || !validHeaderValue(value) {
			return &InvalidHeaderError{
				SubscriptionID: subscriptionID,
				Key:            key,
				Value:          value,
			}
		}

		// Go ignores a Host entry in the header map; it has to go on the
		// request itself.
		if strings.EqualFold(key, "Host") {
			req.Host = value
			continue
		}

		req.Header.Set(key, value)
	}

	return nil
}

// validHeaderName reports whether name is a valid RFC 7230 token.
func validHeaderName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isTokenChar(name[i]) {
			return false
		}
	}
	return true
}

// validHeaderValue rejects values that would corrupt the wire format.
func validHeaderValue(value string) bool {
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '\r' || c == '\n' || c == 0 {
			return false
		}
	}
	return true
}

func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}
