// Package value implements the tagged scalar/handle union that every
// register, argument, and field in the Jazz virtual machine holds.
//
// A Value carries no machine state of its own. All arithmetic, comparison,
// and conversion behavior lives on the Kind-dispatching methods below, or
// -- for Object values -- is delegated to the resident's object.Object
// implementation through the Converter interface a caller supplies (this
// breaks the import cycle with pkg/object, which in turn needs Value).
package value

import "fmt"

// Kind identifies which variant of Value is populated.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindBool
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInt:
		return "Int"
	case KindLong:
		return "Long"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindBool:
		return "Bool"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// Value is a small tagged union. Only the field matching Kind is meaningful.
type Value struct {
	Kind   Kind
	Int    int32
	Long   int64
	Float  float32
	Double float64
	Bool   bool
	Handle int // valid only when Kind == KindObject; a pool slot index
}

func Null() Value                  { return Value{Kind: KindNull} }
func Int(i int32) Value            { return Value{Kind: KindInt, Int: i} }
func Long(i int64) Value           { return Value{Kind: KindLong, Long: i} }
func Float(f float32) Value        { return Value{Kind: KindFloat, Float: f} }
func Double(f float64) Value       { return Value{Kind: KindDouble, Double: f} }
func Bool(b bool) Value            { return Value{Kind: KindBool, Bool: b} }
func Object(handle int) Value      { return Value{Kind: KindObject, Handle: handle} }
func (v Value) IsNull() bool       { return v.Kind == KindNull }
func (v Value) IsObject() bool     { return v.Kind == KindObject }
func (v Value) IsNumeric() bool {
	switch v.Kind {
	case KindInt, KindLong, KindFloat, KindDouble:
		return true
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindLong:
		return fmt.Sprintf("%d", v.Long)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindDouble:
		return fmt.Sprintf("%g", v.Double)
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindObject:
		return fmt.Sprintf("<object #%d>", v.Handle)
	default:
		return "<invalid>"
	}
}

// Converter is implemented by the machine so that Value's conversion helpers
// can delegate to an Object's protocol without pkg/value importing pkg/object
// (which itself depends on Value).
type Converter interface {
	ObjectToInt(handle int) int32
	ObjectToLong(handle int) int64
	ObjectToFloat(handle int) float32
	ObjectToDouble(handle int) float64
	ObjectToString(handle int) string
}

// ToInt widens/truncates per §4.1: Bool maps to 0/1, Null to 0, Object
// delegates to the resident's protocol.
func (v Value) ToInt(c Converter) int32 {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindLong:
		return int32(v.Long)
	case KindFloat:
		return int32(v.Float)
	case KindDouble:
		return int32(v.Double)
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	case KindNull:
		return 0
	case KindObject:
		return c.ObjectToInt(v.Handle)
	default:
		return 0
	}
}

func (v Value) ToLong(c Converter) int64 {
	switch v.Kind {
	case KindInt:
		return int64(v.Int)
	case KindLong:
		return v.Long
	case KindFloat:
		return int64(v.Float)
	case KindDouble:
		return int64(v.Double)
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	case KindNull:
		return 0
	case KindObject:
		return c.ObjectToLong(v.Handle)
	default:
		return 0
	}
}

func (v Value) ToFloat(c Converter) float32 {
	switch v.Kind {
	case KindInt:
		return float32(v.Int)
	case KindLong:
		return float32(v.Long)
	case KindFloat:
		return v.Float
	case KindDouble:
		return float32(v.Double)
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	case KindNull:
		return 0
	case KindObject:
		return c.ObjectToFloat(v.Handle)
	default:
		return 0
	}
}

func (v Value) ToDouble(c Converter) float64 {
	switch v.Kind {
	case KindInt:
		return float64(v.Int)
	case KindLong:
		return float64(v.Long)
	case KindFloat:
		return float64(v.Float)
	case KindDouble:
		return v.Double
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	case KindNull:
		return 0
	case KindObject:
		return c.ObjectToDouble(v.Handle)
	default:
		return 0
	}
}

// ToText stringifies per §4.1's as_bytes/to_string delegation.
func (v Value) ToText(c Converter) string {
	switch v.Kind {
	case KindObject:
		return c.ObjectToString(v.Handle)
	default:
		return v.String()
	}
}

// Not implements the `not` operator from §4.1: true on Null, numeric zero,
// or Bool(false); false otherwise.
func (v Value) Not() bool {
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return !v.Bool
	case KindInt:
		return v.Int == 0
	case KindLong:
		return v.Long == 0
	case KindFloat:
		return v.Float == 0
	case KindDouble:
		return v.Double == 0
	default:
		return false
	}
}
