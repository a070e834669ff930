// Package stringobj implements the String pool object: every LoadString
// instruction allocates one of these, grounded in
// `_examples/original_source/vm/src/string.rs`.
package stringobj

import (
	"strconv"

	"github.com/jazz-lang/jazz/pkg/function"
	"github.com/jazz-lang/jazz/pkg/object"
	"github.com/jazz-lang/jazz/pkg/value"
)

func init() {
	// Lets pkg/function allocate pool strings for disassembly text without
	// an import cycle (function <- stringobj <- object, never the reverse).
	function.SetTextAllocator(func(m object.Machine, text string) int {
		return m.Allocate(New(text))
	})
}

// String is a UTF-8 text pool object.
type String struct {
	object.Base
	Text string
}

// New wraps text as a pool resident.
func New(text string) *String {
	return &String{Text: text}
}

func (s *String) TypeName() string { return "String" }

func (s *String) ToString(m object.Machine) string { return s.Text }

func (s *String) AsBytes(m object.Machine) []byte { return []byte(s.Text) }

// ToInt/ToLong/ToFloat/ToDouble parse the text, matching the original's
// `.parse().unwrap()` conversions. A malformed numeric string is a
// programming error in the source script, same as the Rust panic on parse
// failure.
func (s *String) ToInt(m object.Machine) int32 {
	n, err := strconv.ParseInt(s.Text, 10, 32)
	if err != nil {
		panic(err)
	}
	return int32(n)
}

func (s *String) ToLong(m object.Machine) int64 {
	n, err := strconv.ParseInt(s.Text, 10, 64)
	if err != nil {
		panic(err)
	}
	return n
}

func (s *String) ToFloat(m object.Machine) float32 {
	n, err := strconv.ParseFloat(s.Text, 32)
	if err != nil {
		panic(err)
	}
	return float32(n)
}

func (s *String) ToDouble(m object.Machine) float64 {
	n, err := strconv.ParseFloat(s.Text, 64)
	if err != nil {
		panic(err)
	}
	return n
}

func (s *String) CloneObject(m object.Machine) value.Value {
	return value.Object(m.Allocate(New(s.Text)))
}
