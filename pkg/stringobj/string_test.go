package stringobj_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazz-lang/jazz/pkg/machine"
	"github.com/jazz-lang/jazz/pkg/stringobj"
)

func TestToStringAndAsBytes(t *testing.T) {
	s := stringobj.New("hello")
	assert.Equal(t, "hello", s.ToString(nil))
	assert.Equal(t, []byte("hello"), s.AsBytes(nil))
	assert.Equal(t, "String", s.TypeName())
}

func TestNumericConversions(t *testing.T) {
	assert.Equal(t, int32(42), stringobj.New("42").ToInt(nil))
	assert.Equal(t, int64(42), stringobj.New("42").ToLong(nil))
	assert.InDelta(t, float32(4.2), stringobj.New("4.2").ToFloat(nil), 0.0001)
	assert.InDelta(t, 4.2, stringobj.New("4.2").ToDouble(nil), 0.0001)
}

func TestMalformedNumericTextPanics(t *testing.T) {
	assert.Panics(t, func() { stringobj.New("not-a-number").ToInt(nil) })
}

func TestCloneObjectAllocatesAnIndependentCopy(t *testing.T) {
	m := machine.New()
	original := stringobj.New("clone me")
	handle := m.Allocate(original)

	cloned := m.Resident(handle).CloneObject(m)
	require.True(t, cloned.IsObject())
	assert.NotEqual(t, handle, cloned.Handle)
	assert.Equal(t, "clone me", m.Resident(cloned.Handle).ToString(m))
}
