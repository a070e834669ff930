// Package function implements the two Function object variants of §4.4:
// VirtualFunction (a bytecode body the dispatcher interprets) and
// NativeFunction (a host callback), grounded in
// `_examples/original_source/vm/src/function.rs`.
package function

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/jazz-lang/jazz/pkg/object"
	"github.com/jazz-lang/jazz/pkg/opcode"
	"github.com/jazz-lang/jazz/pkg/value"
	"github.com/jazz-lang/jazz/pkg/vmerror"
)

// disassemblyCache memoizes the rendered disassembly text of a Function,
// keyed by the owning *Virtual/*Native pointer, so repeated introspection
// (`f.disassemble`) doesn't re-render on every call. This is new relative to
// the original Rust, which re-rendered on every load_at; the cache is sized
// generously since disassembly text is small and functions are long-lived.
var disassemblyCache *lru.Cache

func init() {
	c, err := lru.New(256)
	if err != nil {
		panic(err)
	}
	disassemblyCache = c
}

// Virtual is a user-defined function: a bytecode body plus its declared
// argument count, matching VirtualFunction.
type Virtual struct {
	object.Base
	Code []opcode.Instruction
	Argc int
}

// NewVirtual returns a Function object wrapping code, declaring argc
// arguments (§4.4).
func NewVirtual(code []opcode.Instruction, argc int) *Virtual {
	return &Virtual{Code: code, Argc: argc}
}

func (f *Virtual) TypeName() string { return "Function" }

// Call runs f.Code to completion in a freshly pushed frame seeded with args,
// matching Function::call's Virtual arm.
func (f *Virtual) Call(m object.Machine, args []value.Value) value.Value {
	return m.RunCode(f.Code, args)
}

// LoadAt exposes the "disassemble" pseudo-field (§4.4): calling it returns a
// zero-arg function that, when invoked, yields a pool string of the
// rendered bytecode.
func (f *Virtual) LoadAt(m object.Machine, args []value.Value, dest int) value.Value {
	return loadDisassembleField(m, args, f, f.Code)
}

func (f *Virtual) GetChildren() []int { return nil }

// Native wraps a host callback usable anywhere a virtual function is,
// matching NativeFunction. Re-entrancy (the callback calling m.Invoke) is
// supported because Callback receives the live Machine.
type Native struct {
	object.Base
	Callback func(m object.Machine, args []value.Value) value.Value
}

// NewNative wraps callback as a Function object (§4.4).
func NewNative(callback func(m object.Machine, args []value.Value) value.Value) *Native {
	return &Native{Callback: callback}
}

func (n *Native) TypeName() string { return "Function" }

func (n *Native) Call(m object.Machine, args []value.Value) value.Value {
	return n.Callback(m, args)
}

func (n *Native) LoadAt(m object.Machine, args []value.Value, dest int) value.Value {
	return loadDisassembleField(m, args, n, nil)
}

// loadDisassembleField implements the shared load_at contract for both
// Function variants: the only legal field is "disassemble" (resolved
// through args[1], the key, which must itself be an Object whose to_string
// gives the field name); anything else fails FieldNotFound. key identifies
// the owning Function by pointer identity for the LRU cache.
func loadDisassembleField(m object.Machine, args []value.Value, key interface{}, code []opcode.Instruction) value.Value {
	if len(args) < 2 || !args[1].IsObject() {
		vmerror.Throw(vmerror.Expected("Object", "non-object key"))
	}
	keyObj := m.Resident(args[1].Handle)
	fname := keyObj.ToString(m)

	if fname != "disassemble" {
		vmerror.Throw(vmerror.FieldNotFound(fname))
	}

	text, ok := disassemblyCache.Get(key)
	if !ok {
		if code != nil {
			text = opcode.Disassemble(code)
		} else {
			text = "<native function>"
		}
		disassemblyCache.Add(key, text)
	}

	strHandle := allocText(m, text.(string))
	thunk := NewVirtual([]opcode.Instruction{
		opcode.LoadConst{A: 1, K: strHandle},
		opcode.Ret{A: 1},
	}, 0)
	return value.Object(m.Allocate(thunk))
}

// allocText is supplied by pkg/stringobj at init time to avoid an import
// cycle (stringobj depends on object, and function would otherwise need to
// depend on stringobj just for this one allocation).
var allocText = func(m object.Machine, text string) int {
	panic("function: allocText hook not installed (import pkg/stringobj for its side effect)")
}

// SetTextAllocator installs the hook pkg/stringobj uses to let Function
// allocate pool strings for disassembly results without an import cycle.
func SetTextAllocator(f func(m object.Machine, text string) int) {
	allocText = f
}
