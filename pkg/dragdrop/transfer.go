package dragdrop

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// MIMEText is the drag data format carrying the JSON payload.
	MIMEText = "text/plain"

	EffectMove = "move"

	payloadIDKey = "id"
)

// ErrMalformedTransfer is returned by Drop when the drag data cannot be
// decoded. The drop is abandoned without mutating the document.
var ErrMalformedTransfer = errors.New("dragdrop: malformed transfer payload")

// DataTransfer mirrors the browser drag data store for hosts that bridge
// real drag events. Controllers work without one, using the snapshot taken
// at pick-up.
type DataTransfer struct {
	EffectAllowed string
	DropEffect    string

	data map[string]string
}

func NewDataTransfer() *DataTransfer {
	return &DataTransfer{data: make(map[string]string)}
}

// SetData stores value under format. "text" is an alias of text/plain.
func (d *DataTransfer) SetData(format, value string) {
	if d == nil {
		return
	}
	if d.data == nil {
		d.data = make(map[string]string)
	}
	d.data[normaliseFormat(format)] = value
}

func (d *DataTransfer) GetData(format string) string {
	if d == nil {
		return ""
	}
	return d.data[normaliseFormat(format)]
}

func (d *DataTransfer) HasData(format string) bool {
	if d == nil {
		return false
	}
	_, ok := d.data[normaliseFormat(format)]
	return ok
}

// Types lists the stored formats, sorted.
func (d *DataTransfer) Types() []string {
	if d == nil || len(d.data) == 0 {
		return nil
	}
	out := make([]string, 0, len(d.data))
	for format := range d.data {
		out = append(out, format)
	}
	sort.Strings(out)
	return out
}

func normaliseFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "text" {
		return MIMEText
	}
	return format
}

// Payload is the content that travels with an element during an exchange:
// its identity plus the outer HTML of each configured sub-element. On the
// wire it is a flat JSON object {"id": ..., "<tag>": "<markup>", ...}.
type Payload struct {
	ID     string
	Fields map[string]string
}

func (p Payload) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(p.Fields)+1)
	for tag, markup := range p.Fields {
		out[tag] = markup
	}
	if p.ID != "" {
		out[payloadIDKey] = p.ID
	}
	return marshalUnescaped(out)
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("payload must be a JSON object")
	}

	out := Payload{Fields: make(map[string]string, len(raw))}
	for key, value := range raw {
		if key == payloadIDKey {
			id, err := decodeIdentity(value)
			if err != nil {
				return err
			}
			out.ID = id
			continue
		}
		var markup string
		if err := json.Unmarshal(value, &markup); err != nil {
			return fmt.Errorf("field %q must be a string", key)
		}
		out.Fields[strings.ToLower(key)] = markup
	}
	*p = out
	return nil
}

func decodeIdentity(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return "", err
		}
		return id, nil
	}
	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return "", errors.New("id must be a string or number")
	}
	return num.String(), nil
}

// DecodePayload parses the JSON text written by DragStart.
func DecodePayload(raw string) (Payload, error) {
	if strings.TrimSpace(raw) == "" {
		return Payload{}, fmt.Errorf("%w: empty data", ErrMalformedTransfer)
	}
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedTransfer, err)
	}
	return p, nil
}

// EncodePayload renders p as the JSON text stored in a DataTransfer. Markup
// is left unescaped, as JSON.stringify would produce it.
func EncodePayload(p Payload) string {
	data, err := marshalUnescaped(p)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func marshalUnescaped(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
