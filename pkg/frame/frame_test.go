package frame_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jazz-lang/jazz/pkg/frame"
	"github.com/jazz-lang/jazz/pkg/opcode"
	"github.com/jazz-lang/jazz/pkg/value"
)

func TestNewFrameRegistersAreNull(t *testing.T) {
	f := frame.New()
	for r := 0; r < frame.RegisterCount; r++ {
		assert.True(t, f.Get(r).IsNull())
	}
}

func TestSetRegisterZeroPanics(t *testing.T) {
	f := frame.New()
	assert.Panics(t, func() { f.Set(0, value.Int(1)) })
}

func TestSetThisSeedsRegisterZero(t *testing.T) {
	f := frame.New()
	f.SetThis(value.Int(5))
	assert.Equal(t, int32(5), f.Get(0).Int)
}

// TestPopArgsIsLastInFirstOut checks the Call protocol's receiver-first
// pop order: the last value pushed (the callable) comes out first.
func TestPopArgsIsLastInFirstOut(t *testing.T) {
	f := frame.New()
	f.PushArg(value.Int(1)) // the real argument, pushed first
	f.PushArg(value.Int(2)) // the receiver, pushed last

	args := f.PopArgs(1)
	assert.Equal(t, int32(2), args[0].Int) // receiver
	assert.Equal(t, int32(1), args[1].Int) // argument
}

// TestPopArgsUnderflowDefaultsToNull checks §4.6's Call-protocol underflow
// rule: missing positions default to Null instead of panicking.
func TestPopArgsUnderflowDefaultsToNull(t *testing.T) {
	f := frame.New()
	f.PushArg(value.Int(1))

	args := f.PopArgs(3) // wants 4 total, stack only has 1
	assert.Equal(t, int32(1), args[0].Int)
	assert.True(t, args[1].IsNull())
	assert.True(t, args[2].IsNull())
	assert.True(t, args[3].IsNull())
}

// TestInitWithArgsSeedsRegistersFromZero checks that register 0 gets
// args[0] directly, matching the receiver-in-register-0 convention.
func TestInitWithArgsSeedsRegistersFromZero(t *testing.T) {
	f := frame.New()
	f.InitWithArgs(nil, []value.Value{value.Int(10), value.Int(20)})
	assert.Equal(t, int32(10), f.Get(0).Int)
	assert.Equal(t, int32(20), f.Get(1).Int)
	assert.True(t, f.Get(2).IsNull())
}

func TestInitWithArgsScansLabels(t *testing.T) {
	f := frame.New()
	code := []opcode.Instruction{
		opcode.LoadInt{A: 1, Imm: 0},
		opcode.Label{ID: 5},
		opcode.Ret{A: 1},
	}
	f.InitWithArgs(code, nil)
	assert.Equal(t, 1, f.Labels[5])
}

func TestStackPushPopAndDepth(t *testing.T) {
	s := frame.NewStack(4)
	assert.Equal(t, 0, s.Depth())

	f1 := s.Push()
	assert.Equal(t, 1, s.Depth())
	assert.Same(t, f1, s.Top())

	s.Push()
	assert.Equal(t, 2, s.Depth())

	s.Pop()
	assert.Equal(t, 1, s.Depth())
}

func TestStackOverflowThrowsAtLimit(t *testing.T) {
	s := frame.NewStack(2)
	s.Push()
	s.Push()
	assert.Panics(t, func() { s.Push() })
}

func TestStackPopUnderflowPanics(t *testing.T) {
	s := frame.NewStack(2)
	assert.Panics(t, func() { s.Pop() })
}
