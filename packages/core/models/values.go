package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	errNotInteger = errors.New("not an integer")
	errNotString  = errors.New("not a string")
)

// LooseInt keeps the raw JSON of an integer-ish field so that callers can
// decide how to report a bad value instead of failing the whole body decode.
// Numbers and numeric strings are accepted; fractional numbers are truncated.
type LooseInt struct {
	raw json.RawMessage
}

func NewLooseInt(v int64) LooseInt {
	return LooseInt{raw: json.RawMessage(strconv.FormatInt(v, 10))}
}

func (v *LooseInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		v.raw = nil
		return nil
	}
	v.raw = append(v.raw[:0], data...)
	return nil
}

func (v LooseInt) MarshalJSON() ([]byte, error) {
	if v.raw == nil {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// Present reports whether the field was supplied with a non-null value.
func (v LooseInt) Present() bool {
	return v.raw != nil
}

func (v LooseInt) Int64() (int64, error) {
	if v.raw == nil {
		return 0, errNotInteger
	}

	var s string
	if v.raw[0] == '"' {
		if err := json.Unmarshal(v.raw, &s); err != nil {
			return 0, errNotInteger
		}
		return parseIntString(strings.TrimSpace(s), false)
	}
	return parseIntString(string(v.raw), true)
}

func parseIntString(s string, allowFraction bool) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	if !allowFraction {
		return 0, errNotInteger
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotInteger
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, errNotInteger
	}
	return int64(f), nil
}

// OptionalString distinguishes an absent key from an explicit null or value.
type OptionalString struct {
	Set   bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = ""
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// LooseString accepts a JSON string or number. Numbers keep their literal
// text; null counts as absent. Any other JSON type decodes without error but
// reports errNotString from Value, so one bad field does not fail the body.
type LooseString struct {
	value string
	set   bool
	valid bool
}

func NewLooseString(s string) LooseString {
	return LooseString{value: s, set: true, valid: true}
}

func (v *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*v = LooseString{}
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = NewLooseString(s)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*v = NewLooseString(string(data))
	default:
		v.set = true
	}
	return nil
}

func (v LooseString) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}

// Value returns the decoded text, "" when absent.
func (v LooseString) Value() (string, error) {
	if v.set && !v.valid {
		return "", errNotString
	}
	return v.value, nil
}
