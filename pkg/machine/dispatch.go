package machine

import (
	"fmt"

	"github.com/jazz-lang/jazz/pkg/frame"
	"github.com/jazz-lang/jazz/pkg/opcode"
	"github.com/jazz-lang/jazz/pkg/stringobj"
	"github.com/jazz-lang/jazz/pkg/value"
	"github.com/jazz-lang/jazz/pkg/vmerror"
)

// dispatch runs f's code from its current ip to a Ret/Ret0 or the end of
// code, matching §4.6's dispatch-loop state machine. Every instruction
// handler either falls through to the next ip or explicitly overwrites it
// (jumps/gotos) or returns (Ret/Ret0); unsupported operand combinations
// throw a *vmerror.Error that unwinds to the nearest Run boundary.
func (m *Machine) dispatch(f *frame.Frame) value.Value {
	for {
		if f.IP >= len(f.Code) {
			return value.Null()
		}
		ins := f.Code[f.IP]
		f.IP++

		switch in := ins.(type) {
		case opcode.LoadInt:
			f.Set(in.A, value.Int(in.Imm))
		case opcode.LoadLong:
			f.Set(in.A, value.Long(in.Imm))
		case opcode.LoadFloat:
			f.Set(in.A, value.Float(in.Imm))
		case opcode.LoadDouble:
			f.Set(in.A, value.Double(in.Imm))
		case opcode.LoadBool:
			f.Set(in.A, value.Bool(in.Imm))
		case opcode.LoadString:
			h := m.Allocate(stringobj.New(in.Imm))
			f.Set(in.A, value.Object(h))
		case opcode.LoadConst:
			f.Set(in.A, value.Object(in.K))
		case opcode.LoadGlobal:
			v, ok := m.globals[in.G]
			if !ok {
				vmerror.Throw(vmerror.GlobalNotFound(in.G))
			}
			f.Set(in.A, v)
		case opcode.StoreGlobal:
			m.globals[in.G] = f.Get(in.A)
		case opcode.LoadAt:
			m.execLoadAt(f, in)
		case opcode.StoreAt:
			m.execStoreAt(f, in)
		case opcode.Move:
			f.Set(in.A, f.Get(in.B))
		case opcode.LoadArg:
			f.PushArg(f.Get(in.A))
		case opcode.Call:
			args := f.PopArgs(in.N)
			result := m.Invoke(f.Get(in.B), args)
			f.Set(in.A, result)
		case opcode.Add:
			f.Set(in.A, m.arith(opAdd, f.Get(in.B), f.Get(in.C)))
		case opcode.Sub:
			f.Set(in.A, m.arith(opSub, f.Get(in.B), f.Get(in.C)))
		case opcode.Mul:
			f.Set(in.A, m.arith(opMul, f.Get(in.B), f.Get(in.C)))
		case opcode.Div:
			f.Set(in.A, m.arith(opDiv, f.Get(in.B), f.Get(in.C)))
		case opcode.Rem:
			f.Set(in.A, m.arith(opRem, f.Get(in.B), f.Get(in.C)))
		case opcode.Gt:
			f.Set(in.A, value.Bool(m.compare(cmpGt, f.Get(in.B), f.Get(in.C))))
		case opcode.Ge:
			f.Set(in.A, value.Bool(m.compare(cmpGe, f.Get(in.B), f.Get(in.C))))
		case opcode.Lt:
			f.Set(in.A, value.Bool(m.compare(cmpLt, f.Get(in.B), f.Get(in.C))))
		case opcode.Le:
			f.Set(in.A, value.Bool(m.compare(cmpLe, f.Get(in.B), f.Get(in.C))))
		case opcode.Eq:
			f.Set(in.A, value.Bool(m.compare(cmpEq, f.Get(in.B), f.Get(in.C))))
		case opcode.Neq:
			f.Set(in.A, value.Bool(m.compare(cmpNeq, f.Get(in.B), f.Get(in.C))))
		case opcode.And:
			f.Set(in.A, value.Bool(m.boolOp(f.Get(in.B), f.Get(in.C), false)))
		case opcode.Or:
			f.Set(in.A, value.Bool(m.boolOp(f.Get(in.B), f.Get(in.C), true)))
		case opcode.BitAnd:
			f.Set(in.A, m.bitwise(bitAnd, f.Get(in.B), f.Get(in.C)))
		case opcode.BitOr:
			f.Set(in.A, m.bitwise(bitOr, f.Get(in.B), f.Get(in.C)))
		case opcode.BitXor:
			f.Set(in.A, m.bitwise(bitXor, f.Get(in.B), f.Get(in.C)))
		case opcode.Shl:
			f.Set(in.A, m.bitwise(bitShl, f.Get(in.B), f.Get(in.C)))
		case opcode.Shr:
			f.Set(in.A, m.bitwise(bitShr, f.Get(in.B), f.Get(in.C)))
		case opcode.Isa:
			f.Set(in.A, value.Bool(m.typeName(f.Get(in.B)) == m.typeName(f.Get(in.C))))
		case opcode.Not:
			f.Set(in.A, value.Bool(f.Get(in.B).Not()))
		case opcode.Jump:
			f.IP = in.Idx
		case opcode.JumpT:
			if requireBool(f.Get(in.A)) {
				f.IP = in.Idx
			}
		case opcode.JumpF:
			if !requireBool(f.Get(in.A)) {
				f.IP = in.Idx
			}
		case opcode.Goto:
			f.IP = resolveLabel(f, in.L) + 1
		case opcode.GotoT:
			if requireBool(f.Get(in.A)) {
				f.IP = resolveLabel(f, in.L) + 1
			}
		case opcode.GotoF:
			if gotoFShouldJump(f.Get(in.A)) {
				f.IP = resolveLabel(f, in.L) + 1
			}
		case opcode.Label:
			// marker only; already resolved by the pre-scan.
		case opcode.Ret:
			return f.Get(in.A)
		case opcode.Ret0:
			return value.Null()
		default:
			panic(fmt.Sprintf("machine: unhandled instruction %T", ins))
		}
	}
}

func resolveLabel(f *frame.Frame, label int) int {
	idx, ok := f.Labels[label]
	if !ok {
		vmerror.Throw(vmerror.LabelNotFound(label))
	}
	return idx
}

// requireBool enforces the strict-Bool rule JumpT/JumpF/GotoT share (§4.3);
// Null is not a documented fallthrough for these three, only for GotoF.
func requireBool(v value.Value) bool {
	if v.Kind != value.KindBool {
		vmerror.Throw(vmerror.Expected("Bool", v.Kind.String()))
	}
	return v.Bool
}

// gotoFShouldJump implements GotoF's documented Null fallthrough (§4.3, §9):
// jump when the operand is false, or when it is Null.
func gotoFShouldJump(v value.Value) bool {
	switch v.Kind {
	case value.KindBool:
		return !v.Bool
	case value.KindNull:
		return true
	default:
		vmerror.Throw(vmerror.Expected("Bool", v.Kind.String()))
		panic("unreachable")
	}
}

func (m *Machine) execLoadAt(f *frame.Frame, in opcode.LoadAt) {
	recv := f.Get(in.B)
	if !recv.IsObject() {
		vmerror.Throw(vmerror.Expected("Object", recv.Kind.String()))
	}
	key := f.Get(in.C)
	resident := m.pool.Get(recv.Handle)
	result := resident.LoadAt(m, []value.Value{recv, key}, in.A)
	f.Set(in.A, result)
}

func (m *Machine) execStoreAt(f *frame.Frame, in opcode.StoreAt) {
	recv := f.Get(in.B)
	if !recv.IsObject() {
		vmerror.Throw(vmerror.Expected("Object", recv.Kind.String()))
	}
	key := f.Get(in.C)
	val := f.Get(in.A)
	resident := m.pool.Get(recv.Handle)
	resident.StoreAt(m, []value.Value{recv, key, val})
}
