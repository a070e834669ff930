// Package machine implements the dispatcher of §4.6: the Machine type
// (pool, frame stack, globals; label tables live on each frame) and the
// instruction-by-instruction
// execution loop, grounded in
// `_examples/original_source/vm/src/machine.rs`.
package machine

import (
	"github.com/jazz-lang/jazz/pkg/frame"
	"github.com/jazz-lang/jazz/pkg/object"
	"github.com/jazz-lang/jazz/pkg/objpool"
	"github.com/jazz-lang/jazz/pkg/opcode"
	"github.com/jazz-lang/jazz/pkg/value"
	"github.com/jazz-lang/jazz/pkg/vmerror"
)

// Options configures a Machine at construction. The zero value is the
// spec's default: 256 registers per frame (fixed, see pkg/frame) and a
// 4096-frame call stack.
type Options struct {
	// CallStackLimit bounds the number of live frames (§3's "suggested
	// 4096"). Zero means use the default.
	CallStackLimit int
}

const defaultCallStackLimit = 4096

// Machine is pool + frame stack + globals table (§3).
type Machine struct {
	pool    *objpool.Pool
	frames  *frame.Stack
	globals map[int]value.Value
}

// New returns a Machine with default options, matching Machine::new().
func New() *Machine {
	return NewWithOptions(Options{})
}

// NewWithOptions returns a Machine configured by opts.
func NewWithOptions(opts Options) *Machine {
	limit := opts.CallStackLimit
	if limit <= 0 {
		limit = defaultCallStackLimit
	}
	return &Machine{
		pool:    objpool.New(),
		frames:  frame.NewStack(limit),
		globals: make(map[int]value.Value),
	}
}

// SetGlobal implements the §6 host API's globals setter.
func (m *Machine) SetGlobal(id int, v value.Value) {
	m.globals[id] = v
}

// GetGlobal implements the §6 host API's globals getter.
func (m *Machine) GetGlobal(id int) (value.Value, bool) {
	v, ok := m.globals[id]
	return v, ok
}

// Pool exposes the object pool for hosts that need to allocate residents
// before the machine starts running (e.g. registering globals).
func (m *Machine) Pool() *objpool.Pool { return m.pool }

// Allocate implements object.Machine.
func (m *Machine) Allocate(obj object.Object) int {
	return m.pool.Allocate(m, obj)
}

// Resident implements object.Machine.
func (m *Machine) Resident(handle int) object.Object {
	return m.pool.Get(handle)
}

// Get implements object.Machine: reads a register of the innermost frame.
func (m *Machine) Get(reg int) value.Value {
	return m.frames.Top().Get(reg)
}

// Set implements object.Machine: writes a register of the innermost frame.
func (m *Machine) Set(reg int, v value.Value) {
	m.frames.Top().Set(reg, v)
}

// SetThis implements object.Machine: seeds register 0 of the innermost
// frame, the one register ordinary Set refuses to touch.
func (m *Machine) SetThis(v value.Value) {
	m.frames.Top().SetThis(v)
}

// Invoke implements §4.6's invoke: requires an Object callable, pushes a
// frame, seeds its registers from args, calls the resident's Call, pops the
// frame, and returns the result. Failures panic with a *vmerror.Error; the
// top-level Run recovers them into a normal error return, while nested
// (re-entrant) invocations simply let the panic propagate to that same
// boundary, matching §5's "a panic during callee execution terminates the
// process" unwind model.
func (m *Machine) Invoke(callee value.Value, args []value.Value) value.Value {
	if !callee.IsObject() {
		vmerror.Throw(vmerror.NotCallable(callee.Kind.String()))
	}
	f := m.frames.Push()
	f.InitWithArgs(nil, args)
	resident := m.pool.Get(callee.Handle)
	result := resident.Call(m, args)
	m.frames.Pop()
	return result
}

// RunCode implements object.Machine.RunCode / Machine::run_code (§4.6):
// installs code into the current frame, pre-scanning its labels, and
// dispatches until a return or the code is exhausted.
func (m *Machine) RunCode(code []opcode.Instruction, args []value.Value) value.Value {
	f := m.frames.Top()
	f.InitWithArgs(code, args)
	return m.dispatch(f)
}

// ObjectToInt/Long/Float/Double/String implement value.Converter by
// delegating to the resident's own conversion methods, matching §4.1's
// "delegate to the object's protocol for Object(h)".
func (m *Machine) ObjectToInt(h int) int32      { return m.pool.Get(h).ToInt(m) }
func (m *Machine) ObjectToLong(h int) int64     { return m.pool.Get(h).ToLong(m) }
func (m *Machine) ObjectToFloat(h int) float32  { return m.pool.Get(h).ToFloat(m) }
func (m *Machine) ObjectToDouble(h int) float64 { return m.pool.Get(h).ToDouble(m) }
func (m *Machine) ObjectToString(h int) string  { return m.pool.Get(h).ToString(m) }

// Run is the public, panic-safe entry point (§7: "the public invoke returns
// either a Value or the first error"). It wraps Invoke with the one recover
// point in the whole dispatch path.
func Run(m *Machine, callee value.Value, args []value.Value) (result value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = vmerror.Recover(r)
		}
	}()
	result = m.Invoke(callee, args)
	return result, nil
}

// typeName names v's dynamic type: the Kind name for scalars, or the
// resident's TypeName() for an Object, matching typename() in §3/§4.3 (Isa).
func (m *Machine) typeName(v value.Value) string {
	if v.IsObject() {
		return m.pool.Get(v.Handle).TypeName()
	}
	return v.Kind.String()
}
