package machine

import (
	"math"

	"github.com/jazz-lang/jazz/pkg/value"
	"github.com/jazz-lang/jazz/pkg/vmerror"
)

type arithOp int

const (
	opAdd arithOp = iota
	opSub
	opMul
	opDiv
	opRem
)

type cmpOp int

const (
	cmpGt cmpOp = iota
	cmpGe
	cmpLt
	cmpLe
	cmpEq
	cmpNeq
)

type bitOp int

const (
	bitAnd bitOp = iota
	bitOr
	bitXor
	bitShl
	bitShr
)

// arith implements the §4.1 promotion table for Add/Sub/Mul/Div/Rem:
// same-width pairs compute natively, Int/Long and Float/Double mixes
// promote to the wider type, any other numeric/non-numeric mix is driven by
// the left operand's width, Null is absorbed by the other operand, and
// anything left over is an Arithmetic error.
func (m *Machine) arith(op arithOp, a, b value.Value) value.Value {
	if a.IsNull() {
		return b
	}
	if b.IsNull() {
		return a
	}

	switch {
	case a.Kind == value.KindInt && b.Kind == value.KindInt:
		return value.Int(intOp(op, a.Int, b.Int))
	case a.Kind == value.KindLong && b.Kind == value.KindLong:
		return value.Long(longOp(op, a.Long, b.Long))
	case a.Kind == value.KindFloat && b.Kind == value.KindFloat:
		return value.Float(floatOp(op, a.Float, b.Float))
	case a.Kind == value.KindDouble && b.Kind == value.KindDouble:
		return value.Double(doubleOp(op, a.Double, b.Double))
	case a.Kind == value.KindInt && b.Kind == value.KindLong:
		return value.Long(longOp(op, int64(a.Int), b.Long))
	case a.Kind == value.KindLong && b.Kind == value.KindInt:
		return value.Long(longOp(op, a.Long, int64(b.Int)))
	case a.Kind == value.KindFloat && b.Kind == value.KindDouble:
		return value.Double(doubleOp(op, float64(a.Float), b.Double))
	case a.Kind == value.KindDouble && b.Kind == value.KindFloat:
		return value.Double(doubleOp(op, a.Double, float64(b.Float)))
	}

	if a.IsNumeric() {
		switch a.Kind {
		case value.KindInt:
			return value.Int(intOp(op, a.Int, b.ToInt(m)))
		case value.KindLong:
			return value.Long(longOp(op, a.Long, b.ToLong(m)))
		case value.KindFloat:
			return value.Float(floatOp(op, a.Float, b.ToFloat(m)))
		case value.KindDouble:
			return value.Double(doubleOp(op, a.Double, b.ToDouble(m)))
		}
	}

	vmerror.Throw(vmerror.Arithmetic("unsupported operands " + a.Kind.String() + " and " + b.Kind.String()))
	panic("unreachable")
}

func intOp(op arithOp, a, b int32) int32 {
	switch op {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	case opDiv:
		if b == 0 {
			vmerror.Throw(vmerror.Arithmetic("integer division by zero"))
		}
		return a / b
	case opRem:
		if b == 0 {
			vmerror.Throw(vmerror.Arithmetic("integer division by zero"))
		}
		return a % b
	}
	panic("unreachable")
}

func longOp(op arithOp, a, b int64) int64 {
	switch op {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	case opDiv:
		if b == 0 {
			vmerror.Throw(vmerror.Arithmetic("integer division by zero"))
		}
		return a / b
	case opRem:
		if b == 0 {
			vmerror.Throw(vmerror.Arithmetic("integer division by zero"))
		}
		return a % b
	}
	panic("unreachable")
}

// floatOp/doubleOp never special-case division by zero: IEEE 754 already
// produces +-Inf or NaN, per §8's documented boundary behavior.
func floatOp(op arithOp, a, b float32) float32 {
	switch op {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	case opDiv:
		return a / b
	case opRem:
		return float32(math.Mod(float64(a), float64(b)))
	}
	panic("unreachable")
}

func doubleOp(op arithOp, a, b float64) float64 {
	switch op {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	case opDiv:
		return a / b
	case opRem:
		return math.Mod(a, b)
	}
	panic("unreachable")
}

// compare implements Gt/Ge/Lt/Le/Eq/Neq (§4.3): any Null operand makes the
// comparison false outright (§4.1 rule 5, §3's "Null compares unequal to
// every non-Null"); Bool compares only against Bool for Eq/Neq; Object
// compares by handle identity for Eq/Neq; numeric pairs follow the same
// promotion widths as arith.
func (m *Machine) compare(op cmpOp, a, b value.Value) bool {
	if a.IsNull() || b.IsNull() {
		return false
	}

	if a.Kind == value.KindBool || b.Kind == value.KindBool {
		if op != cmpEq && op != cmpNeq {
			vmerror.Throw(vmerror.Runtime("ordering comparison requires numeric operands"))
		}
		eq := a.Kind == value.KindBool && b.Kind == value.KindBool && a.Bool == b.Bool
		if op == cmpNeq {
			return !eq
		}
		return eq
	}

	if a.Kind == value.KindObject || b.Kind == value.KindObject {
		if op != cmpEq && op != cmpNeq {
			vmerror.Throw(vmerror.Runtime("ordering comparison requires numeric operands"))
		}
		eq := a.Kind == value.KindObject && b.Kind == value.KindObject && a.Handle == b.Handle
		if op == cmpNeq {
			return !eq
		}
		return eq
	}

	if !a.IsNumeric() || !b.IsNumeric() {
		vmerror.Throw(vmerror.Runtime("unsupported comparison between " + a.Kind.String() + " and " + b.Kind.String()))
	}

	// Promote both sides to float64 for ordering purposes: every numeric
	// Kind here widens losslessly enough for comparison, matching the
	// "left operand's width drives, right is coerced" rule's intent when
	// applied to a boolean-valued result instead of a same-typed one.
	left, right := a.ToDouble(m), b.ToDouble(m)
	switch op {
	case cmpGt:
		return left > right
	case cmpGe:
		return left >= right
	case cmpLt:
		return left < right
	case cmpLe:
		return left <= right
	case cmpEq:
		return left == right
	case cmpNeq:
		return left != right
	}
	panic("unreachable")
}

// boolOp implements And/Or (§4.3): both operands must already be Bool.
// isOr selects OR behavior instead of AND.
func (m *Machine) boolOp(a, b value.Value, isOr bool) bool {
	if a.Kind != value.KindBool || b.Kind != value.KindBool {
		vmerror.Throw(vmerror.Expected("Bool", "non-Bool operand"))
	}
	if isOr {
		return a.Bool || b.Bool
	}
	return a.Bool && b.Bool
}

// bitwise implements BitAnd/BitOr/BitXor/Shl/Shr (§4.3): operands must be
// Int or Long; a mixed Int/Long pair is promoted to Long the same way
// arith's numeric promotion works.
func (m *Machine) bitwise(op bitOp, a, b value.Value) value.Value {
	if !isIntegral(a) || !isIntegral(b) {
		vmerror.Throw(vmerror.Expected("Int or Long", "non-integral operand"))
	}
	if a.Kind == value.KindInt && b.Kind == value.KindInt {
		return value.Int(int32(bitApply(op, int64(a.Int), int64(b.Int))))
	}
	return value.Long(bitApply(op, a.ToLong(m), b.ToLong(m)))
}

func isIntegral(v value.Value) bool {
	return v.Kind == value.KindInt || v.Kind == value.KindLong
}

func bitApply(op bitOp, a, b int64) int64 {
	switch op {
	case bitAnd:
		return a & b
	case bitOr:
		return a | b
	case bitXor:
		return a ^ b
	case bitShl:
		return a << uint(b)
	case bitShr:
		return a >> uint(b)
	}
	panic("unreachable")
}
