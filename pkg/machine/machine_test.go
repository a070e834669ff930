package machine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jazz-lang/jazz/pkg/array"
	"github.com/jazz-lang/jazz/pkg/builder"
	"github.com/jazz-lang/jazz/pkg/class"
	"github.com/jazz-lang/jazz/pkg/function"
	"github.com/jazz-lang/jazz/pkg/machine"
	"github.com/jazz-lang/jazz/pkg/object"
	"github.com/jazz-lang/jazz/pkg/opcode"
	"github.com/jazz-lang/jazz/pkg/stringobj"
	"github.com/jazz-lang/jazz/pkg/value"
)

// invokeFunc builds a zero-global-dependency Machine, allocates fn, and
// invokes it with a single Null receiver (the §6 convention for entry
// points with no real "this").
func invokeFunc(t *testing.T, fn *function.Virtual) value.Value {
	t.Helper()
	m := machine.New()
	handle := m.Allocate(fn)
	result, err := machine.Run(m, value.Object(handle), []value.Value{value.Null()})
	require.NoError(t, err)
	return result
}

// TestIntegerReturn is scenario S1: LoadInt 1, 42; Ret 1 -> Int(42).
func TestIntegerReturn(t *testing.T) {
	fn := function.NewVirtual([]opcode.Instruction{
		opcode.LoadInt{A: 1, Imm: 42},
		opcode.Ret{A: 1},
	}, 0)

	result := invokeFunc(t, fn)
	require.Equal(t, value.KindInt, result.Kind)
	require.Equal(t, int32(42), result.Int)
}

// TestFactorial is scenario S2: fact(12) == 479001600.
func TestFactorial(t *testing.T) {
	m := machine.New()
	alloc := builder.NewGlobalAllocator()
	mainFn, factFn, factGlobal := builder.BuildFactorial(alloc, 12)

	m.SetGlobal(factGlobal, value.Object(m.Allocate(factFn)))
	mainHandle := m.Allocate(mainFn)

	result, err := machine.Run(m, value.Object(mainHandle), []value.Value{value.Null()})
	require.NoError(t, err)
	require.Equal(t, value.KindLong, result.Kind)
	require.Equal(t, int64(479001600), result.Long)
}

// TestMixedWidthAddition is scenario S3: Int(3) + Long(4) -> Long(7).
func TestMixedWidthAddition(t *testing.T) {
	fn := function.NewVirtual([]opcode.Instruction{
		opcode.LoadInt{A: 1, Imm: 3},
		opcode.LoadLong{A: 2, Imm: 4},
		opcode.Add{A: 3, B: 1, C: 2},
		opcode.Ret{A: 3},
	}, 0)

	result := invokeFunc(t, fn)
	require.Equal(t, value.KindLong, result.Kind)
	require.Equal(t, int64(7), result.Long)
}

// TestLoadAtStoreAtOnHostObject is scenario S4: a host object's load_at
// returns whatever store_at most recently wrote for an integer key.
func TestLoadAtStoreAtOnHostObject(t *testing.T) {
	m := machine.New()
	hostHandle := m.Allocate(array.New())
	// Seed two slots so StoreAt at index 1 is in range, matching Array's
	// contract (a fixed-size slot must already exist to be overwritten).
	host := m.Resident(hostHandle).(*array.Array)
	host.Push(value.Null())
	host.Push(value.Null())

	fn := function.NewVirtual([]opcode.Instruction{
		opcode.LoadInt{A: 1, Imm: 1},
		opcode.LoadFloat{A: 2, Imm: 2.6},
		opcode.StoreAt{A: 2, B: 0, C: 1},
		opcode.LoadAt{A: 3, B: 0, C: 1},
		opcode.Ret{A: 3},
	}, 1)

	result, err := machine.Run(m, value.Object(m.Allocate(fn)), []value.Value{value.Object(hostHandle)})
	require.NoError(t, err)
	require.Equal(t, value.KindFloat, result.Kind)
	require.InDelta(t, float32(2.6), result.Float, 0.0001)
}

// TestClassConstruction is scenario S5: a class with an init that sets
// self.x = 7 and a __call__ that returns self.x. The first invocation
// runs init and returns its result; the second runs __call__ and returns 7.
func TestClassConstruction(t *testing.T) {
	m := machine.New()

	// init(self): self.x = 7; returns self.
	initFn := function.NewNative(func(m object.Machine, args []value.Value) value.Value {
		self := args[0]
		key := value.Object(m.Allocate(stringobj.New("x")))
		m.Resident(self.Handle).StoreAt(m, []value.Value{self, key, value.Int(7)})
		return self
	})
	// __call__(self): returns self.x.
	callFn := function.NewNative(func(m object.Machine, args []value.Value) value.Value {
		self := args[0]
		key := value.Object(m.Allocate(stringobj.New("x")))
		return m.Resident(self.Handle).LoadAt(m, []value.Value{self, key}, 0)
	})

	cls := class.New("Counter")
	cls.Fields["init"] = value.Object(m.Allocate(initFn))
	cls.Fields["__call__"] = value.Object(m.Allocate(callFn))
	clsHandle := m.Allocate(cls)

	first, err := machine.Run(m, value.Object(clsHandle), []value.Value{value.Object(clsHandle)})
	require.NoError(t, err)
	require.True(t, first.IsObject())

	second, err := machine.Run(m, value.Object(clsHandle), []value.Value{value.Object(clsHandle)})
	require.NoError(t, err)
	require.Equal(t, value.KindInt, second.Kind)
	require.Equal(t, int32(7), second.Int)
}

// TestCountingLoop is scenario S6, shrunk to keep the test fast: a
// label-resolved loop from 0 to the target returns the target unchanged.
func TestCountingLoop(t *testing.T) {
	fn := builder.BuildCountingLoop(1000)
	result := invokeFunc(t, fn)
	require.Equal(t, value.KindInt, result.Kind)
	require.Equal(t, int32(1000), result.Int)
}

// TestGotoUndefinedLabel checks the boundary behavior in §8: a Goto to an
// undefined label fails LabelNotFound without corrupting frame state (the
// Machine simply surfaces the error; it does not panic the test process).
func TestGotoUndefinedLabel(t *testing.T) {
	fn := function.NewVirtual([]opcode.Instruction{
		opcode.Goto{L: 99},
	}, 0)

	m := machine.New()
	_, err := machine.Run(m, value.Object(m.Allocate(fn)), []value.Value{value.Null()})
	require.Error(t, err)
}

// TestCallArgcUnderflowDefaultsToNull checks §8's boundary behavior: a Call
// with fewer LoadArgs than its declared n gets Null for the missing
// positions instead of failing.
func TestCallArgcUnderflowDefaultsToNull(t *testing.T) {
	callee := function.NewVirtual([]opcode.Instruction{
		opcode.Ret{A: 1}, // returns whatever landed in the first declared arg
	}, 1)

	caller := function.NewVirtual([]opcode.Instruction{
		opcode.LoadConst{A: 1, K: 0}, // placeholder, overwritten below
		opcode.Call{A: 2, B: 1, N: 1},
		opcode.Ret{A: 2},
	}, 0)

	m := machine.New()
	calleeHandle := m.Allocate(callee)
	caller.Code[0] = opcode.LoadConst{A: 1, K: calleeHandle}

	result, err := machine.Run(m, value.Object(m.Allocate(caller)), []value.Value{value.Null()})
	require.NoError(t, err)
	require.True(t, result.IsNull())
}

// TestIntegerDivisionByZero checks §8's boundary behavior: integer division
// by zero fails Arithmetic.
func TestIntegerDivisionByZero(t *testing.T) {
	fn := function.NewVirtual([]opcode.Instruction{
		opcode.LoadInt{A: 1, Imm: 10},
		opcode.LoadInt{A: 2, Imm: 0},
		opcode.Div{A: 3, B: 1, C: 2},
		opcode.Ret{A: 3},
	}, 0)

	m := machine.New()
	_, err := machine.Run(m, value.Object(m.Allocate(fn)), []value.Value{value.Null()})
	require.Error(t, err)
}

// TestFloatDivisionByZeroFollowsIEEE754 checks §8: float division by zero
// yields +Inf rather than erroring.
func TestFloatDivisionByZeroFollowsIEEE754(t *testing.T) {
	fn := function.NewVirtual([]opcode.Instruction{
		opcode.LoadDouble{A: 1, Imm: 10},
		opcode.LoadDouble{A: 2, Imm: 0},
		opcode.Div{A: 3, B: 1, C: 2},
		opcode.Ret{A: 3},
	}, 0)

	result := invokeFunc(t, fn)
	require.Equal(t, value.KindDouble, result.Kind)
	require.True(t, result.Double > 0 && result.Double*0 != 0 /* +Inf */)
}
