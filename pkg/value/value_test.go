package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jazz-lang/jazz/pkg/value"
)

// stubConverter records which Object* method was called, for tests that
// need to confirm a conversion actually delegated to an object's protocol.
type stubConverter struct {
	calledWith int
}

func (c *stubConverter) ObjectToInt(h int) int32      { c.calledWith = h; return 99 }
func (c *stubConverter) ObjectToLong(h int) int64     { c.calledWith = h; return 99 }
func (c *stubConverter) ObjectToFloat(h int) float32  { c.calledWith = h; return 99 }
func (c *stubConverter) ObjectToDouble(h int) float64 { c.calledWith = h; return 99 }
func (c *stubConverter) ObjectToString(h int) string  { c.calledWith = h; return "ninety-nine" }

func TestKindPredicates(t *testing.T) {
	assert.True(t, value.Null().IsNull())
	assert.False(t, value.Int(0).IsNull())
	assert.True(t, value.Object(3).IsObject())
	assert.False(t, value.Int(3).IsObject())

	assert.True(t, value.Int(1).IsNumeric())
	assert.True(t, value.Long(1).IsNumeric())
	assert.True(t, value.Float(1).IsNumeric())
	assert.True(t, value.Double(1).IsNumeric())
	assert.False(t, value.Bool(true).IsNumeric())
	assert.False(t, value.Null().IsNumeric())
}

func TestToIntConversions(t *testing.T) {
	c := &stubConverter{}
	tests := []struct {
		name string
		in   value.Value
		want int32
	}{
		{"int passthrough", value.Int(5), 5},
		{"long truncates", value.Long(1 << 40), 0},
		{"float truncates", value.Float(3.9), 3},
		{"double truncates", value.Double(3.9), 3},
		{"true is one", value.Bool(true), 1},
		{"false is zero", value.Bool(false), 0},
		{"null is zero", value.Null(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.ToInt(c))
		})
	}
}

func TestToIntOnObjectDelegatesToConverter(t *testing.T) {
	c := &stubConverter{}
	got := value.Object(42).ToInt(c)
	assert.Equal(t, int32(99), got)
	assert.Equal(t, 42, c.calledWith)
}

func TestToTextOnObjectDelegatesToConverter(t *testing.T) {
	c := &stubConverter{}
	got := value.Object(7).ToText(c)
	assert.Equal(t, "ninety-nine", got)
	assert.Equal(t, 7, c.calledWith)
}

func TestToTextOnScalarUsesString(t *testing.T) {
	c := &stubConverter{}
	assert.Equal(t, "42", value.Int(42).ToText(c))
	assert.Equal(t, "null", value.Null().ToText(c))
	assert.Equal(t, "true", value.Bool(true).ToText(c))
}

func TestNot(t *testing.T) {
	tests := []struct {
		name string
		in   value.Value
		want bool
	}{
		{"null is truthy-negated", value.Null(), true},
		{"false negates to true", value.Bool(false), true},
		{"true negates to false", value.Bool(true), false},
		{"zero int negates to true", value.Int(0), true},
		{"nonzero int negates to false", value.Int(1), false},
		{"zero double negates to true", value.Double(0), true},
		{"object never negates", value.Object(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Not())
		})
	}
}
