package opcode

import (
	"strings"

	"github.com/fatih/color"
)

// mnemonic colors follow the original Rust DebugCode::toString's use of the
// `colored` crate (`vm/src/opcodes.rs`): each instruction's text is printed
// in white (Disassemble's index prefix is gray) so it reads cleanly against a
// colored terminal prompt, and control-flow opcodes (jumps/gotos/labels/
// returns/calls) are additionally bolded
// so a disassembly dump's flow structure stands out at a glance.
var (
	plain = color.New(color.FgWhite)
	flow  = color.New(color.FgWhite, color.Bold)
)

func isControlFlow(ins Instruction) bool {
	switch ins.(type) {
	case Jump, JumpT, JumpF, Goto, GotoT, GotoF, Label, Ret, Ret0, Call:
		return true
	default:
		return false
	}
}

// Render returns ins's disassembled text, colorized the way the original
// source's DebugCode trait did.
func Render(ins Instruction) string {
	text := ins.String()
	if isControlFlow(ins) {
		return flow.Sprint(text)
	}
	return plain.Sprint(text)
}

// Disassemble renders a full instruction sequence, one instruction per line,
// with its index prefixed -- the shape `Function.load_at("disassemble")`
// returns as a pool string.
func Disassemble(code []Instruction) string {
	var b strings.Builder
	for idx, ins := range code {
		b.WriteString(color.New(color.FgHiBlack).Sprintf("%4d  ", idx))
		b.WriteString(Render(ins))
		b.WriteByte('\n')
	}
	return b.String()
}
