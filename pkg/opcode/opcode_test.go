package opcode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jazz-lang/jazz/pkg/opcode"
)

func TestInstructionStringRendering(t *testing.T) {
	tests := []struct {
		name string
		in   opcode.Instruction
		want string
	}{
		{"Add", opcode.Add{A: 1, B: 2, C: 3}, "Add 1 2 3"},
		{"LoadInt", opcode.LoadInt{A: 1, Imm: 42}, "LoadInt 1 42"},
		{"LoadString", opcode.LoadString{A: 2, Imm: "hi"}, `LoadString 2 "hi"`},
		{"Goto", opcode.Goto{L: 7}, "Goto L7"},
		{"GotoF", opcode.GotoF{A: 1, L: 2}, "GotoF 1 L2"},
		{"Label", opcode.Label{ID: 3}, "Label L3"},
		{"Call", opcode.Call{A: 1, B: 2, N: 0}, "Call 1 2 0"},
		{"Ret", opcode.Ret{A: 5}, "Ret 5"},
		{"Ret0", opcode.Ret0{}, "Ret0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
}

// TestDisassembleIndexesEveryLine checks that Disassemble prefixes each
// instruction with its position and preserves instruction order.
func TestDisassembleIndexesEveryLine(t *testing.T) {
	code := []opcode.Instruction{
		opcode.LoadInt{A: 1, Imm: 1},
		opcode.LoadInt{A: 2, Imm: 2},
		opcode.Add{A: 3, B: 1, C: 2},
		opcode.Ret{A: 3},
	}

	out := opcode.Disassemble(code)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	for _, mnemonic := range []string{"LoadInt", "Add", "Ret"} {
		assert.Contains(t, out, mnemonic)
	}
}
