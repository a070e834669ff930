// Package builder offers a programmatic, register-allocating instruction
// emitter standing in for the lexer/parser/IR layer the spec places out of
// scope (§1). Grounded in
// `_examples/original_source/vm/simple_jazz/src/builder.rs`'s
// FunctionBuilder, which the original used for its own internal tests and
// benchmarks in lieu of hand-written instruction literals everywhere.
package builder

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/jazz-lang/jazz/pkg/function"
	"github.com/jazz-lang/jazz/pkg/opcode"
)

const registerCount = 256

// FunctionBuilder accumulates instructions and tracks which registers are
// in use, matching FunctionBuilder's register-stack discipline: pushing a
// temp allocates the first free register; popping frees it again unless
// protected (promoted to a local).
type FunctionBuilder struct {
	Argc int

	regsUsed  [registerCount]bool
	registers []int
	nlocals   int
	ntemps    int
	locals    map[int]bool

	list []opcode.Instruction
}

// New returns a builder for a function declaring argc arguments. Register 0
// always holds the receiver (the callee itself, per the Call convention);
// registers 1..argc hold the declared arguments. All of 0..argc are
// pre-reserved so a temp allocation never clobbers a live argument, the way
// the original seeds nlocals = argc+1.
func New(argc int) *FunctionBuilder {
	nlocals := argc + 1
	b := &FunctionBuilder{Argc: argc, nlocals: nlocals, locals: make(map[int]bool)}
	for i := 0; i < nlocals && i < registerCount; i++ {
		b.regsUsed[i] = true
	}
	return b
}

// Emit appends a raw instruction, for opcodes the helper methods below
// don't wrap (Call, LoadAt, jumps, and so on).
func (b *FunctionBuilder) Emit(ins opcode.Instruction) {
	b.list = append(b.list, ins)
}

// NewRegister returns the lowest-numbered free register and marks it used,
// matching new_register. It panics if the register file is exhausted, the
// same hard limit §3 fixes at 256.
func (b *FunctionBuilder) NewRegister() int {
	for i := 0; i < registerCount; i++ {
		if !b.regsUsed[i] {
			b.regsUsed[i] = true
			return i
		}
	}
	panic("builder: no registers available")
}

// PushTempRegister allocates a fresh register for a temporary value and
// tracks it on the register stack, matching register_push_temp.
func (b *FunctionBuilder) PushTempRegister() int {
	r := b.NewRegister()
	b.registers = append(b.registers, r)
	b.ntemps++
	return r
}

// PushRegister tracks an already-allocated register on the register stack
// (for a value the caller allocated itself), matching register_push.
func (b *FunctionBuilder) PushRegister(r int) int {
	b.registers = append(b.registers, r)
	if b.RegisterIsTemp(r) {
		b.ntemps++
	}
	return r
}

// PopRegister pops the top of the register stack. protect=true keeps the
// register reserved (promotes it to a local) instead of freeing it for
// reuse, matching register_pop_protect.
func (b *FunctionBuilder) PopRegister(protect bool) int {
	n := len(b.registers) - 1
	r := b.registers[n]
	b.registers = b.registers[:n]
	if protect {
		b.regsUsed[r] = true
		if r >= b.nlocals {
			b.locals[r] = true
		}
	} else if r >= b.nlocals {
		b.regsUsed[r] = false
	}
	return r
}

// RegisterIsTemp reports whether nreg was allocated past the declared
// locals, matching register_is_temp.
func (b *FunctionBuilder) RegisterIsTemp(nreg int) bool {
	return nreg >= b.nlocals
}

// LastRegister returns the top of the register stack without popping it.
func (b *FunctionBuilder) LastRegister() int {
	return b.registers[len(b.registers)-1]
}

// IConst/LConst/FConst/DConst allocate a temp register, emit the matching
// Load instruction, and return the register, matching iconst/lconst/
// fconst/dconst.
func (b *FunctionBuilder) IConst(v int32) int {
	r := b.PushTempRegister()
	b.Emit(opcode.LoadInt{A: r, Imm: v})
	return r
}

func (b *FunctionBuilder) LConst(v int64) int {
	r := b.PushTempRegister()
	b.Emit(opcode.LoadLong{A: r, Imm: v})
	return r
}

func (b *FunctionBuilder) FConst(v float32) int {
	r := b.PushTempRegister()
	b.Emit(opcode.LoadFloat{A: r, Imm: v})
	return r
}

func (b *FunctionBuilder) DConst(v float64) int {
	r := b.PushTempRegister()
	b.Emit(opcode.LoadDouble{A: r, Imm: v})
	return r
}

// Build appends the implicit Ret0 and wraps the accumulated instructions
// into a Function object, matching create_function.
func (b *FunctionBuilder) Build() *function.Virtual {
	b.list = append(b.list, opcode.Ret0{})
	return function.NewVirtual(b.list, b.Argc)
}

// GlobalAllocator hands out global ids for a frontend that doesn't want to
// track its own integer namespace, deriving them from google/uuid draws so
// independently-built program fragments don't collide on a shared guess
// like "start at 0 and increment".
type GlobalAllocator struct {
	seen map[int]bool
}

// NewGlobalAllocator returns an empty allocator.
func NewGlobalAllocator() *GlobalAllocator {
	return &GlobalAllocator{seen: make(map[int]bool)}
}

// Allocate draws a fresh, never-before-returned global id.
func (g *GlobalAllocator) Allocate() int {
	for {
		u := uuid.New()
		id := int(binary.BigEndian.Uint32(u[0:4]) & 0x7fffffff)
		if !g.seen[id] {
			g.seen[id] = true
			return id
		}
	}
}
