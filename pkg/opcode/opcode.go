// Package opcode defines the Jazz instruction set (§4.3): one Go type per
// mnemonic rather than a single tagged struct, so the machine's dispatch
// switch and the disassembler switch on concrete types with typed operands.
// The compiler does not check those switches for exhaustiveness; an
// unhandled type reaches the dispatch loop's default panic. Grounded in the
// variant shapes of
// `_examples/original_source/vm/src/opcodes.rs`, adapted from a Rust enum to
// Go's nearest idiom: a sealed interface with one concrete type per case.
package opcode

import "fmt"

// Instruction is implemented by every opcode type below. The unexported
// method seals the set to this package, mirroring a Rust enum's closed
// variant list.
type Instruction interface {
	fmt.Stringer
	isInstruction()
}

// RegTriple is the common R(a), R(b), R(c) operand shape shared by the
// binary arithmetic, comparison, logical, and bitwise opcodes.
type RegTriple struct{ A, B, C int }

// Binary arithmetic (§4.3): R(a) <- R(b) op R(c), per the promotion rules
// of §4.1.
type (
	Add RegTriple
	Sub RegTriple
	Mul RegTriple
	Div RegTriple
	Rem RegTriple
)

// Comparisons: R(a) <- Bool(R(b) op R(c)).
type (
	Gt  RegTriple
	Ge  RegTriple
	Lt  RegTriple
	Le  RegTriple
	Eq  RegTriple
	Neq RegTriple
)

// Boolean logic: operands must already be Bool.
type (
	And RegTriple
	Or  RegTriple
)

// Integer bitwise: operands must be Int or Long.
type (
	BitAnd RegTriple
	BitOr  RegTriple
	BitXor RegTriple
	Shl    RegTriple
	Shr    RegTriple
)

// Isa: R(a) <- typename(R(b)) == typename(R(c)).
type Isa RegTriple

// Not: R(a) <- Bool(not(R(b))).
type Not struct{ A, B int }

// Move: R(a) <- R(b).
type Move struct{ A, B int }

// LoadInt/Long/Float/Double/Bool load a typed immediate into R(a).
type (
	LoadInt    struct {
		A   int
		Imm int32
	}
	LoadLong struct {
		A   int
		Imm int64
	}
	LoadFloat struct {
		A   int
		Imm float32
	}
	LoadDouble struct {
		A   int
		Imm float64
	}
	LoadBool struct {
		A   int
		Imm bool
	}
)

// LoadString allocates a fresh pool slot holding a text object and loads its
// handle into R(a).
type LoadString struct {
	A   int
	Imm string
}

// LoadConst: R(a) <- Object(K), an already-pool-resident constant.
type LoadConst struct{ A, K int }

// LoadGlobal: R(a) <- globals[G]; fails GlobalNotFound if unset.
type LoadGlobal struct{ A, G int }

// StoreGlobal: globals[G] <- R(a).
type StoreGlobal struct{ A, G int }

// LoadAt: R(a) <- (R(b))[R(c)] via the object protocol's load_at.
type LoadAt struct{ A, B, C int }

// StoreAt: (R(b))[R(c)] <- R(a) via the object protocol's store_at.
type StoreAt struct{ A, B, C int }

// LoadArg pushes R(a) onto the current frame's pending argument stack.
type LoadArg struct{ A int }

// Call pops n+1 args (first popped is "this"), invokes the callable in
// R(b), and assigns the result to R(a).
type Call struct{ A, B, N int }

// Jump sets ip unconditionally.
type Jump struct{ Idx int }

// JumpT/JumpF set ip conditionally on Bool(R(a)).
type JumpT struct{ A, Idx int }
type JumpF struct{ A, Idx int }

// Goto sets ip to labels[L]+1 (§9 open-question resolution).
type Goto struct{ L int }

// GotoT/GotoF conditionally goto on Bool(R(a)); GotoF also jumps when R(a)
// is Null, preserving the "missing receiver" fallthrough (§4.3, §9).
type GotoT struct{ A, L int }
type GotoF struct{ A, L int }

// Label is a marker with no runtime effect once the pre-scan has recorded
// its position.
type Label struct{ ID int }

// Ret returns R(a) from the current function; Ret0 returns Null.
type Ret struct{ A int }
type Ret0 struct{}

func (Add) isInstruction()    {}
func (Sub) isInstruction()    {}
func (Mul) isInstruction()    {}
func (Div) isInstruction()    {}
func (Rem) isInstruction()    {}
func (Gt) isInstruction()     {}
func (Ge) isInstruction()     {}
func (Lt) isInstruction()     {}
func (Le) isInstruction()     {}
func (Eq) isInstruction()     {}
func (Neq) isInstruction()    {}
func (And) isInstruction()    {}
func (Or) isInstruction()     {}
func (BitAnd) isInstruction() {}
func (BitOr) isInstruction()  {}
func (BitXor) isInstruction() {}
func (Shl) isInstruction()    {}
func (Shr) isInstruction()    {}
func (Isa) isInstruction()    {}
func (Not) isInstruction()    {}
func (Move) isInstruction()   {}
func (LoadInt) isInstruction()    {}
func (LoadLong) isInstruction()   {}
func (LoadFloat) isInstruction()  {}
func (LoadDouble) isInstruction() {}
func (LoadBool) isInstruction()   {}
func (LoadString) isInstruction() {}
func (LoadConst) isInstruction()  {}
func (LoadGlobal) isInstruction() {}
func (StoreGlobal) isInstruction() {}
func (LoadAt) isInstruction()  {}
func (StoreAt) isInstruction() {}
func (LoadArg) isInstruction() {}
func (Call) isInstruction()    {}
func (Jump) isInstruction()    {}
func (JumpT) isInstruction()   {}
func (JumpF) isInstruction()   {}
func (Goto) isInstruction()    {}
func (GotoT) isInstruction()   {}
func (GotoF) isInstruction()   {}
func (Label) isInstruction()   {}
func (Ret) isInstruction()     {}
func (Ret0) isInstruction()    {}

func (i Add) String() string { return fmt.Sprintf("Add %d %d %d", i.A, i.B, i.C) }
func (i Sub) String() string { return fmt.Sprintf("Sub %d %d %d", i.A, i.B, i.C) }
func (i Mul) String() string { return fmt.Sprintf("Mul %d %d %d", i.A, i.B, i.C) }
func (i Div) String() string { return fmt.Sprintf("Div %d %d %d", i.A, i.B, i.C) }
func (i Rem) String() string { return fmt.Sprintf("Rem %d %d %d", i.A, i.B, i.C) }
func (i Gt) String() string  { return fmt.Sprintf("Gt %d %d %d", i.A, i.B, i.C) }
func (i Ge) String() string  { return fmt.Sprintf("Ge %d %d %d", i.A, i.B, i.C) }
func (i Lt) String() string  { return fmt.Sprintf("Lt %d %d %d", i.A, i.B, i.C) }
func (i Le) String() string  { return fmt.Sprintf("Le %d %d %d", i.A, i.B, i.C) }
func (i Eq) String() string  { return fmt.Sprintf("Eq %d %d %d", i.A, i.B, i.C) }
func (i Neq) String() string { return fmt.Sprintf("Neq %d %d %d", i.A, i.B, i.C) }
func (i And) String() string { return fmt.Sprintf("And %d %d %d", i.A, i.B, i.C) }
func (i Or) String() string  { return fmt.Sprintf("Or %d %d %d", i.A, i.B, i.C) }
func (i BitAnd) String() string { return fmt.Sprintf("BitAnd %d %d %d", i.A, i.B, i.C) }
func (i BitOr) String() string  { return fmt.Sprintf("BitOr %d %d %d", i.A, i.B, i.C) }
func (i BitXor) String() string { return fmt.Sprintf("BitXor %d %d %d", i.A, i.B, i.C) }
func (i Shl) String() string    { return fmt.Sprintf("Shl %d %d %d", i.A, i.B, i.C) }
func (i Shr) String() string    { return fmt.Sprintf("Shr %d %d %d", i.A, i.B, i.C) }
func (i Isa) String() string    { return fmt.Sprintf("Isa %d %d %d", i.A, i.B, i.C) }
func (i Not) String() string    { return fmt.Sprintf("Not %d %d", i.A, i.B) }
func (i Move) String() string   { return fmt.Sprintf("Move %d %d", i.A, i.B) }
func (i LoadInt) String() string    { return fmt.Sprintf("LoadInt %d %d", i.A, i.Imm) }
func (i LoadLong) String() string   { return fmt.Sprintf("LoadLong %d %d", i.A, i.Imm) }
func (i LoadFloat) String() string  { return fmt.Sprintf("LoadFloat %d %g", i.A, i.Imm) }
func (i LoadDouble) String() string { return fmt.Sprintf("LoadDouble %d %g", i.A, i.Imm) }
func (i LoadBool) String() string   { return fmt.Sprintf("LoadBool %d %t", i.A, i.Imm) }
func (i LoadString) String() string { return fmt.Sprintf("LoadString %d %q", i.A, i.Imm) }
func (i LoadConst) String() string  { return fmt.Sprintf("LoadConst %d %d", i.A, i.K) }
func (i LoadGlobal) String() string { return fmt.Sprintf("LoadGlobal %d %d", i.A, i.G) }
func (i StoreGlobal) String() string { return fmt.Sprintf("StoreGlobal %d %d", i.A, i.G) }
func (i LoadAt) String() string  { return fmt.Sprintf("LoadAt %d %d %d", i.A, i.B, i.C) }
func (i StoreAt) String() string { return fmt.Sprintf("StoreAt %d %d %d", i.A, i.B, i.C) }
func (i LoadArg) String() string { return fmt.Sprintf("LoadArg %d", i.A) }
func (i Call) String() string    { return fmt.Sprintf("Call %d %d %d", i.A, i.B, i.N) }
func (i Jump) String() string    { return fmt.Sprintf("Jump %d", i.Idx) }
func (i JumpT) String() string   { return fmt.Sprintf("JumpT %d %d", i.A, i.Idx) }
func (i JumpF) String() string   { return fmt.Sprintf("JumpF %d %d", i.A, i.Idx) }
func (i Goto) String() string    { return fmt.Sprintf("Goto L%d", i.L) }
func (i GotoT) String() string   { return fmt.Sprintf("GotoT %d L%d", i.A, i.L) }
func (i GotoF) String() string   { return fmt.Sprintf("GotoF %d L%d", i.A, i.L) }
func (i Label) String() string   { return fmt.Sprintf("Label L%d", i.ID) }
func (i Ret) String() string     { return fmt.Sprintf("Ret %d", i.A) }
func (Ret0) String() string      { return "Ret0" }
