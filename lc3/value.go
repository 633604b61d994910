package lc3

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a 16-bit LC-3 machine word. Arithmetic wraps modulo 2^16;
// a Value is immutable, operations return new Values.
type Value uint16

// V builds a Value from a native integer, truncating to 16 bits.
func V(n int) Value {
	return Value(uint16(n))
}

// ParseValue builds a Value from any of the accepted textual notations:
// "xHHHH" (LC-3 hex), "0xHHHH" (standard hex), "#DDDD" (LC-3 decimal),
// or plain decimal digits. Case-insensitive, surrounding whitespace
// ignored. Unrecognized or out-of-range text yields a *ValueFormatError.
func ParseValue(s string) (Value, error) {
	text := strings.ToLower(strings.TrimSpace(s))

	var n uint64
	var err error
	switch {
	case strings.HasPrefix(text, "0x"):
		n, err = strconv.ParseUint(text[2:], 16, 16)
	case strings.HasPrefix(text, "x"):
		n, err = strconv.ParseUint(text[1:], 16, 16)
	case strings.HasPrefix(text, "#"):
		n, err = strconv.ParseUint(text[1:], 10, 16)
	default:
		n, err = strconv.ParseUint(text, 10, 16)
	}
	if err != nil {
		return 0, &ValueFormatError{Text: s, Err: err}
	}
	return Value(n), nil
}

// MustValue is ParseValue for trusted literals; it panics on bad input.
func MustValue(s string) Value {
	v, err := ParseValue(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical LC-3 notation: "x" + 4 uppercase hex digits.
func (v Value) String() string {
	return fmt.Sprintf("x%04X", uint16(v))
}

// HexRaw returns the 4 uppercase hex digits without any prefix.
func (v Value) HexRaw() string {
	return fmt.Sprintf("%04X", uint16(v))
}

// Bytes returns the 2-byte big-endian encoding. LC-3 is big-endian.
func (v Value) Bytes() []byte {
	return []byte{byte(v >> 8), byte(v)}
}

// Signed returns the two's-complement interpretation.
func (v Value) Signed() int16 {
	return int16(v)
}

// Add returns a new Value holding the wrapped sum.
func (v Value) Add(delta int) Value {
	return Value(uint16(int(v) + delta))
}
