// Package models defines the in-memory table and cell value types.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindEmpty is a blank cell.
	KindEmpty Kind = iota
	// KindString is free text.
	KindString
	// KindNumber is a float64.
	KindNumber
	// KindDate is a point in time.
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a loosely typed cell value. The zero Value is empty.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Time time.Time
}

// Empty returns the blank value.
func Empty() Value { return Value{} }

// String returns a text value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Date returns a date value.
func Date(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// ValueOf converts a Go scalar into a Value.
// Unsupported types are rendered with fmt and stored as strings.
func ValueOf(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return Empty()
	case Value:
		return x
	case string:
		return String(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case bool:
		return String(boolText(x))
	case time.Time:
		return Date(x)
	default:
		return String(fmt.Sprint(x))
	}
}

// IsEmpty reports whether v is a blank cell.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// Equal reports whether two values hold the same variant and content.
// Two empty values are equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindEmpty:
		return true
	case KindString:
		return v.Str == o.Str
	case KindNumber:
		return v.Num == o.Num
	case KindDate:
		return v.Time.Equal(o.Time)
	}
	return false
}

// Interface returns the value as a plain Go value suitable for excelize.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindDate:
		return v.Time
	default:
		return nil
	}
}

// String renders the value for display.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindDate:
		return v.Time.Format(time.RFC3339)
	default:
		return ""
	}
}

// MarshalJSON encodes empty as null and dates as RFC 3339 strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindDate:
		return json.Marshal(v.Time.Format(time.RFC3339))
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, strings, numbers and booleans.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Empty()
		return nil
	}

	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch x := raw.(type) {
	case string:
		*v = String(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", x.String(), err)
		}
		*v = Number(f)
	case bool:
		*v = String(boolText(x))
	default:
		return fmt.Errorf("unsupported cell value %s", string(data))
	}
	return nil
}

func boolText(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
