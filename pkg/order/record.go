// Package order defines the serialized order record written to the output
// sink after every reorder or lock change, together with helpers to decode
// and validate a record posted back by a form.
package order

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRecord is wrapped by every Decode failure.
var ErrInvalidRecord = errors.New("order: invalid record")

// Record is one element of the serialized order. Elements without an
// identity encode without the id key.
type Record struct {
	ID     string `json:"id,omitempty"`
	Locked bool   `json:"locked"`
}

// UnmarshalJSON accepts identities encoded as strings or numbers.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     json.RawMessage `json:"id"`
		Locked bool            `json:"locked"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := identity(raw.ID)
	if err != nil {
		return err
	}
	r.ID = id
	r.Locked = raw.Locked
	return nil
}

func identity(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var out string
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return "", err
		}
		return out, nil
	}
	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return "", fmt.Errorf("id must be a string or number: %w", err)
	}
	return num.String(), nil
}

// Encode returns the JSON text stored in the sink. A nil slice encodes as
// an empty array.
func Encode(records []Record) string {
	if records == nil {
		records = []Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return "[]"
	}
	return string(payload)
}

// Decode validates raw against the record schema and decodes it.
func Decode(raw string) ([]Record, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidRecord)
	}
	if err := Validate([]byte(trimmed)); err != nil {
		return nil, err
	}
	var out []Record
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return out, nil
}

// IDs lists the identities in record order.
func IDs(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, record.ID)
	}
	return out
}

// LockedIDs lists the identities of locked records in record order.
func LockedIDs(records []Record) []string {
	var out []string
	for _, record := range records {
		if record.Locked {
			out = append(out, record.ID)
		}
	}
	return out
}
