package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Unit is one of the four base units every quantity is reduced to
type Unit string

const (
	UnitMilliliter Unit = "milliliter"
	UnitGram       Unit = "gram"
	UnitPiece      Unit = "piece"
	UnitPack       Unit = "pack"
)

// IsCount reports whether the unit counts discrete things
func (u Unit) IsCount() bool {
	return u == UnitPiece || u == UnitPack
}

// Quantity is a canonical {value, unit} pair. It is never persisted; the
// catalogue keeps the original free-text string.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (q Quantity) String() string {
	return strconv.FormatFloat(q.Value, 'f', -1, 64) + string(q.Unit)
}

// QuantityInput accepts either a free-text string ("1.5L") or a structured
// object ({"value": 1.5, "unit": "L"}). Structured input is flattened to its
// string form so the same alias rules apply to both shapes.
type QuantityInput struct {
	Raw string
}

// NewQuantityInput wraps a free-text quantity
func NewQuantityInput(raw string) *QuantityInput {
	return &QuantityInput{Raw: raw}
}

// String returns the free-text form, or "" for a nil input
func (q *QuantityInput) String() string {
	if q == nil {
		return ""
	}
	return q.Raw
}

// UnmarshalJSON implements json.Unmarshaler
func (q *QuantityInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		q.Raw = ""
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &q.Raw)
	case '{':
		var structured struct {
			Value json.RawMessage `json:"value"`
			Unit  string          `json:"unit"`
		}
		if err := json.Unmarshal(data, &structured); err != nil {
			return err
		}
		value, err := structuredValue(structured.Value)
		if err != nil {
			return err
		}
		q.Raw = value + structured.Unit
		return nil
	default:
		return fmt.Errorf("%w: quantity must be a string or an object", ErrInvalidRequest)
	}
}

// structuredValue renders the value of a {value, unit} object as free text.
// Numbers use the shortest plain decimal form so 1e3 reads as "1000".
func structuredValue(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return "", fmt.Errorf("%w: quantity value must be a number or a string", ErrInvalidRequest)
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

// MarshalJSON implements json.Marshaler
func (q QuantityInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Raw)
}
