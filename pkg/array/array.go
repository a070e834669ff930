// Package array implements the Array object: an ordered, mutable sequence
// of Value, addressed by integer index through the object protocol,
// grounded in `_examples/original_source/src/builtins.rs`.
package array

import (
	"strings"

	"github.com/jazz-lang/jazz/pkg/function"
	"github.com/jazz-lang/jazz/pkg/object"
	"github.com/jazz-lang/jazz/pkg/value"
	"github.com/jazz-lang/jazz/pkg/vmerror"
)

// Array is an ordered sequence of Value.
type Array struct {
	object.Base
	Elements []value.Value
}

// New returns an empty Array.
func New() *Array {
	return &Array{}
}

func (a *Array) TypeName() string { return "Array" }

func (a *Array) Push(v value.Value) {
	a.Elements = append(a.Elements, v)
}

// Pop removes and returns the last element, or Null on an empty array,
// matching Array::pop.
func (a *Array) Pop() value.Value {
	if len(a.Elements) == 0 {
		return value.Null()
	}
	last := a.Elements[len(a.Elements)-1]
	a.Elements = a.Elements[:len(a.Elements)-1]
	return last
}

func (a *Array) Get(idx int) value.Value {
	return a.Elements[idx]
}

func (a *Array) Set(idx int, v value.Value) {
	a.Elements[idx] = v
}

func (a *Array) Size() int { return len(a.Elements) }

func (a *Array) ToString(m object.Machine) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, el := range a.Elements {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(el.ToText(machineConverter{m}))
	}
	b.WriteByte(']')
	return b.String()
}

// machineConverter adapts object.Machine to value.Converter so Array can
// stringify elements that are themselves Objects.
type machineConverter struct{ m object.Machine }

func (c machineConverter) ObjectToInt(h int) int32     { return c.m.Resident(h).ToInt(c.m) }
func (c machineConverter) ObjectToLong(h int) int64    { return c.m.Resident(h).ToLong(c.m) }
func (c machineConverter) ObjectToFloat(h int) float32 { return c.m.Resident(h).ToFloat(c.m) }
func (c machineConverter) ObjectToDouble(h int) float64 { return c.m.Resident(h).ToDouble(c.m) }
func (c machineConverter) ObjectToString(h int) string { return c.m.Resident(h).ToString(c.m) }

// LoadAt implements the dual contract builtins.rs gives Array::load_at: if
// the key is itself an Object, it names a method ("pop"/"push"/"set"/
// "get"/"size") and a bound native function is returned; if the key is an
// Int or Long, it is an element index.
func (a *Array) LoadAt(m object.Machine, args []value.Value, dest int) value.Value {
	key := args[1]
	if key.IsObject() {
		name := m.Resident(key.Handle).ToString(m)
		var fn *function.Native
		switch name {
		case "pop":
			fn = function.NewNative(nativePop)
		case "push":
			fn = function.NewNative(nativePush)
		case "get":
			fn = function.NewNative(nativeGet)
		case "set":
			fn = function.NewNative(nativeSet)
		case "size":
			fn = function.NewNative(nativeSize)
		default:
			vmerror.Throw(vmerror.FieldNotFound(name))
		}
		return value.Object(m.Allocate(fn))
	}

	idx := int(key.ToInt(machineConverter{m}))
	if idx < 0 || idx >= len(a.Elements) {
		vmerror.Throw(vmerror.Runtime("array index %d out of range", idx))
	}
	return a.Elements[idx]
}

// StoreAt assigns args[2] at the index named by args[1].
func (a *Array) StoreAt(m object.Machine, args []value.Value) {
	idx := int(args[1].ToInt(machineConverter{m}))
	if idx < 0 || idx >= len(a.Elements) {
		vmerror.Throw(vmerror.Runtime("array index %d out of range", idx))
	}
	a.Elements[idx] = args[2]
}

func (a *Array) CloneObject(m object.Machine) value.Value {
	cp := &Array{Elements: append([]value.Value(nil), a.Elements...)}
	return value.Object(m.Allocate(cp))
}

func resolveArray(m object.Machine, v value.Value, who string) *Array {
	if !v.IsObject() {
		vmerror.Throw(vmerror.Expected("Array", v.Kind.String()))
	}
	arr, ok := m.Resident(v.Handle).(*Array)
	if !ok {
		vmerror.Throw(vmerror.Expected("Array", m.Resident(v.Handle).TypeName()))
	}
	return arr
}

// The native* functions are the bound methods LoadAt hands back; each
// follows the §4.3 Call convention where args[0] is the receiver ("this").
func nativePop(m object.Machine, args []value.Value) value.Value {
	return resolveArray(m, args[0], "pop").Pop()
}

func nativePush(m object.Machine, args []value.Value) value.Value {
	resolveArray(m, args[0], "push").Push(args[1])
	return value.Null()
}

func nativeGet(m object.Machine, args []value.Value) value.Value {
	arr := resolveArray(m, args[0], "get")
	idx := int(args[1].ToInt(machineConverter{m}))
	return arr.Get(idx)
}

func nativeSet(m object.Machine, args []value.Value) value.Value {
	arr := resolveArray(m, args[0], "set")
	idx := int(args[1].ToInt(machineConverter{m}))
	arr.Set(idx, args[2])
	return value.Null()
}

func nativeSize(m object.Machine, args []value.Value) value.Value {
	arr := resolveArray(m, args[0], "size")
	return value.Int(int32(arr.Size()))
}
