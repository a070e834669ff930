package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazz-lang/jazz/pkg/builder"
	"github.com/jazz-lang/jazz/pkg/machine"
	"github.com/jazz-lang/jazz/pkg/value"
)

func TestNewReservesReceiverAndDeclaredArguments(t *testing.T) {
	b := builder.New(2) // receiver + 2 args reserved: registers 0,1,2
	r := b.NewRegister()
	assert.Equal(t, 3, r, "first free register should be past the receiver and both declared args")
}

func TestIConstEmitsLoadIntAndReturnsAFreshRegister(t *testing.T) {
	b := builder.New(0)
	r1 := b.IConst(1)
	r2 := b.IConst(2)
	assert.NotEqual(t, r1, r2)
}

func TestPushPopRegisterProtect(t *testing.T) {
	b := builder.New(0)
	r := b.PushTempRegister()
	assert.True(t, b.RegisterIsTemp(r))

	popped := b.PopRegister(true) // protect=true promotes it to a local
	assert.Equal(t, r, popped)

	// A protected register stays reserved: the next allocation skips it.
	next := b.NewRegister()
	assert.NotEqual(t, r, next)
}

func TestBuildAppendsImplicitRet0(t *testing.T) {
	b := builder.New(0)
	b.IConst(1)
	fn := b.Build()

	m := machine.New()
	handle := m.Allocate(fn)
	result, err := machine.Run(m, value.Object(handle), []value.Value{value.Null()})
	require.NoError(t, err)
	assert.True(t, result.IsNull(), "a function with no explicit Ret should fall through to Ret0")
}

func TestGlobalAllocatorNeverRepeats(t *testing.T) {
	alloc := builder.NewGlobalAllocator()
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		id := alloc.Allocate()
		assert.False(t, seen[id], "global id %d allocated twice", id)
		seen[id] = true
	}
}

func TestBuildFactorialMatchesSpecScenario(t *testing.T) {
	m := machine.New()
	alloc := builder.NewGlobalAllocator()
	mainFn, factFn, factGlobal := builder.BuildFactorial(alloc, 5)
	require.NotNil(t, factFn)

	m.SetGlobal(factGlobal, value.Object(m.Allocate(factFn)))
	handle := m.Allocate(mainFn)

	result, err := machine.Run(m, value.Object(handle), []value.Value{value.Null()})
	require.NoError(t, err)
	assert.Equal(t, int64(120), result.Long)
}

func TestBuildCountingLoopReachesTarget(t *testing.T) {
	fn := builder.BuildCountingLoop(50)
	m := machine.New()
	handle := m.Allocate(fn)

	result, err := machine.Run(m, value.Object(handle), []value.Value{value.Null()})
	require.NoError(t, err)
	assert.Equal(t, int32(50), result.Int)
}
