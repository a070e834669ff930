// Package object defines the Object protocol every pool resident implements:
// the capability surface a Value of kind Object reaches through, grounded in
// the original Rust `Object` + `ObjectAddon` traits (vm/src/object.rs).
//
// Go has no trait default-methods, so the fallback behavior those two traits
// gave for free (panic on store_at/load_at, zero/empty conversions, and so
// on) lives on an embeddable Base. Concrete residents embed Base and override
// only what they actually support, the same division of labor the Rust
// traits had between required and provided methods.
package object

import (
	"github.com/jazz-lang/jazz/pkg/opcode"
	"github.com/jazz-lang/jazz/pkg/value"
	"github.com/jazz-lang/jazz/pkg/vmerror"
)

// Machine is the slice of machine.Machine that object implementations are
// allowed to call back into. Declaring it here (rather than importing
// pkg/machine) keeps object residents from needing the whole Machine API and
// avoids an import cycle, since pkg/machine must import pkg/object to hold
// the pool.
type Machine interface {
	// Invoke calls a callable Value (virtual or native function, or a Class
	// instance) with args, re-entering the dispatch loop for virtual callees.
	Invoke(callee value.Value, args []value.Value) value.Value

	// RunCode installs code into the current (innermost) frame, which Invoke
	// has just pushed, seeds it with args (register 0
	// is the receiver, args[0]) and runs the dispatch loop to completion,
	// matching Machine::run_code (§4.6). Used by VirtualFunction.Call.
	RunCode(code []opcode.Instruction, args []value.Value) value.Value

	// Allocate reserves a fresh pool slot for obj and returns its handle,
	// running obj.Initialize(m) first.
	Allocate(obj Object) int

	// Resident returns the object currently occupying handle, panicking if
	// the slot is empty (a programming error, matching ObjectPool.get()).
	Resident(handle int) Object

	// Get/Set/SetThis expose the current (innermost) frame's registers to
	// native callbacks, matching the §6 host API.
	Get(reg int) value.Value
	Set(reg int, v value.Value)
	SetThis(v value.Value)
}

// Object is the capability interface every pool resident implements. Method
// names follow the Rust trait method names translated to Go (snake_case ->
// CamelCase) so the grounding stays legible.
type Object interface {
	// Initialize runs once, immediately before the pool assigns this object a
	// handle, mirroring `Object::initialize`.
	Initialize(m Machine)

	// Call implements the call protocol (§4.4/§4.5): a Function runs its
	// code, a Class runs its constructor or `__call__`. Base panics
	// NotCallable, matching the trait's lack of a default `call`.
	Call(m Machine, args []value.Value) value.Value

	// LoadAt reads the field/index keyed by args[1] (args[0] is the
	// receiver) and returns it; the dispatcher writes the result to register
	// dest. Base panics "cannot load_at".
	LoadAt(m Machine, args []value.Value, dest int) value.Value

	// StoreAt writes args[2] into the field/index keyed by args[1] (args[0]
	// is the receiver). Base panics "cannot store_at".
	StoreAt(m Machine, args []value.Value)

	// ToString/ToInt/ToLong/ToFloat/ToDouble/AsBytes implement ObjectAddon's
	// conversion defaults: empty string, zero, zero, zero, zero, nil bytes.
	ToString(m Machine) string
	ToInt(m Machine) int32
	ToLong(m Machine) int64
	ToFloat(m Machine) float32
	ToDouble(m Machine) float64
	AsBytes(m Machine) []byte

	// TypeName names the resident's dynamic type, "Object" by default.
	TypeName() string

	// GetChildren returns handles this object keeps alive, for a future
	// collector to trace; empty by default.
	GetChildren() []int

	// CloneObject deep-copies this resident into a freshly allocated pool
	// slot and returns a Value pointing at it. Base panics, matching
	// ObjectAddon::o_clone's default.
	CloneObject(m Machine) value.Value
}

// Base gives every concrete resident the ObjectAddon/Object default
// behavior for free; embed it and override selectively.
type Base struct{}

func (Base) Initialize(Machine) {}

func (Base) Call(m Machine, args []value.Value) value.Value {
	vmerror.Throw(vmerror.NotCallable("Object"))
	panic("unreachable")
}

func (Base) LoadAt(m Machine, args []value.Value, dest int) value.Value {
	vmerror.Throw(vmerror.Runtime("cannot load_at on this object"))
	panic("unreachable")
}

func (Base) StoreAt(m Machine, args []value.Value) {
	vmerror.Throw(vmerror.Runtime("cannot store_at on this object"))
}

func (Base) ToString(m Machine) string    { return "" }
func (Base) ToInt(m Machine) int32        { return 0 }
func (Base) ToLong(m Machine) int64       { return 0 }
func (Base) ToFloat(m Machine) float32    { return 0 }
func (Base) ToDouble(m Machine) float64   { return 0 }
func (Base) AsBytes(m Machine) []byte     { return nil }
func (Base) TypeName() string             { return "Object" }
func (Base) GetChildren() []int           { return nil }

func (Base) CloneObject(m Machine) value.Value {
	vmerror.Throw(vmerror.Runtime("object does not support cloning"))
	panic("unreachable")
}

// Isa reports whether obj's dynamic type name equals name, mirroring
// `ObjectAddon::isa`.
func Isa(obj Object, name string) bool {
	return obj.TypeName() == name
}
