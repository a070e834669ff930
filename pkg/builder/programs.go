package builder

import (
	"github.com/jazz-lang/jazz/pkg/function"
	"github.com/jazz-lang/jazz/pkg/opcode"
)

// BuildFactorial constructs the S2 scenario (spec §8): a recursive
// `fact(n)` registered under a fresh global id, and a `main` that computes
// fact(n) for the given input and returns it. The recursive self-reference
// goes through LoadGlobal/LoadArg the same way §9's "this register
// convention" note describes: the compiler pushes the callable again via
// LoadArg immediately before Call so the callee's register 0 holds it.
func BuildFactorial(alloc *GlobalAllocator, n int64) (mainFn, factFn *function.Virtual, factGlobal int) {
	factGlobal = alloc.Allocate()

	fb := New(1) // argc=1: register 0 = fact itself (receiver), register 1 = n
	isZero := fb.IConst(0)
	fb.Emit(opcode.Eq{A: isZero, B: 1, C: isZero})
	fb.Emit(opcode.GotoF{A: isZero, L: 1}) // n != 0 -> recurse

	one := fb.IConst(1)
	fb.Emit(opcode.Ret{A: one})

	fb.Emit(opcode.Label{ID: 1})
	factRef := fb.NewRegister()
	fb.Emit(opcode.LoadGlobal{A: factRef, G: factGlobal})
	subOne := fb.IConst(1)
	nMinusOne := fb.NewRegister()
	fb.Emit(opcode.Sub{A: nMinusOne, B: 1, C: subOne})
	fb.Emit(opcode.LoadArg{A: nMinusOne})
	fb.Emit(opcode.LoadArg{A: factRef})
	recurseResult := fb.NewRegister()
	fb.Emit(opcode.Call{A: recurseResult, B: factRef, N: 1})
	product := fb.NewRegister()
	fb.Emit(opcode.Mul{A: product, B: recurseResult, C: 1})
	fb.Emit(opcode.Ret{A: product})
	factFn = fb.Build()

	mb := New(0)
	nReg := mb.LConst(n)
	mb.Emit(opcode.LoadArg{A: nReg})
	factRef2 := mb.NewRegister()
	mb.Emit(opcode.LoadGlobal{A: factRef2, G: factGlobal})
	mb.Emit(opcode.LoadArg{A: factRef2})
	result := mb.NewRegister()
	mb.Emit(opcode.Call{A: result, B: factRef2, N: 1})
	mb.Emit(opcode.Ret{A: result})
	mainFn = mb.Build()

	return mainFn, factFn, factGlobal
}

// BuildCountingLoop constructs the S6 scenario (spec §8): a label-resolved
// loop counting an Int accumulator from 0 up to target.
func BuildCountingLoop(target int32) *function.Virtual {
	fb := New(0)
	counter := fb.IConst(0)
	limit := fb.IConst(target)

	fb.Emit(opcode.Label{ID: 1})
	cond := fb.NewRegister()
	fb.Emit(opcode.Lt{A: cond, B: counter, C: limit})
	fb.Emit(opcode.GotoF{A: cond, L: 2})

	one := fb.IConst(1)
	fb.Emit(opcode.Add{A: counter, B: counter, C: one})
	fb.Emit(opcode.Goto{L: 1})

	fb.Emit(opcode.Label{ID: 2})
	fb.Emit(opcode.Ret{A: counter})
	return fb.Build()
}
