package sender

import (
	"bytes"
	"encoding/json"
	"fmt"
)

/* Body is the payload actually placed on the wire
 * Data is kept as a raw JSON value instead of a decoded interface{} so
 * re-serialization is byte-deterministic: building the body twice from
 * identical input yields identical bytes and therefore identical signatures
 */
type Body struct {
	Event   string          `json:"Event"`
	Data    json.RawMessage `json:"Data"`
	Attempt int             `json:"Attempt"`
}

// NewBody builds the wire payload for a delivery attempt.
// The data string must be valid JSON; it is compacted so that formatting
// differences in the caller-supplied payload cannot change the signed bytes.
func NewBody(event, data string, attempt int) (Body, error) {
	if !json.Valid([]byte(data)) {
		return Body{}, fmt.Errorf("data is not valid JSON")
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(data)); err != nil {
		return Body{}, fmt.Errorf("compacting data: %w", err)
	}

	return Body{
		Event:   event,
		Data:    json.RawMessage(compact.Bytes()),
		Attempt: attempt,
	}, nil
}

// Bytes returns the JSON encoding of the body. The returned bytes are
// minified (no extra whitespace).
func (b Body) Bytes() ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshaling body: %w", err)
	}
	return data, nil
}
