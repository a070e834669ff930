// Package stdlib registers a small representative slice of the native
// standard library the original Rust tree shipped
// (`_examples/original_source/src/builtins.rs`,
// `_examples/original_source/src/std_library/mod.rs`): print, readln, and
// an Array constructor. Spec.md's Non-goals exclude the large built-in
// library surface wholesale, not the registration mechanism itself, so this
// gives NativeFunction's re-entrancy path (native -> Invoke -> nested
// dispatch) a concrete, tested exerciser.
package stdlib

import (
	"bufio"
	"fmt"
	"os"

	"github.com/jazz-lang/jazz/pkg/array"
	"github.com/jazz-lang/jazz/pkg/function"
	"github.com/jazz-lang/jazz/pkg/object"
	"github.com/jazz-lang/jazz/pkg/stringobj"
	"github.com/jazz-lang/jazz/pkg/value"
)

// Host is the subset of Machine natives need: allocation and conversion,
// matching the §6 host API surface a native function is handed.
type Host interface {
	object.Machine
	SetGlobal(id int, v value.Value)
}

// Names lists the globals Register installs, in registration order.
var Names = []string{"print", "readln", "Array"}

// Register installs print/readln/Array as globals, using ids from alloc,
// and returns the name -> global id mapping so a host can look them up
// (e.g. to hand a frontend's "main" function a way to reference them).
func Register(m Host, alloc func() int) map[string]int {
	ids := make(map[string]int, len(Names))

	printID := alloc()
	m.SetGlobal(printID, value.Object(m.Allocate(function.NewNative(nativePrint))))
	ids["print"] = printID

	readlnID := alloc()
	m.SetGlobal(readlnID, value.Object(m.Allocate(function.NewNative(nativeReadln))))
	ids["readln"] = readlnID

	arrayID := alloc()
	m.SetGlobal(arrayID, value.Object(m.Allocate(function.NewNative(nativeNewArray))))
	ids["Array"] = arrayID

	return ids
}

// nativePrint writes every argument after the receiver, stringified, to
// stdout, followed by a newline, matching builtins.rs's print.
func nativePrint(m object.Machine, args []value.Value) value.Value {
	conv := converter{m}
	for i := 1; i < len(args); i++ {
		fmt.Print(args[i].ToText(conv))
	}
	fmt.Println()
	return value.Null()
}

var stdinReader = bufio.NewReader(os.Stdin)

// nativeReadln reads one line from stdin and returns it as a pool String,
// matching builtins.rs's readln.
func nativeReadln(m object.Machine, args []value.Value) value.Value {
	line, _ := stdinReader.ReadString('\n')
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return value.Object(m.Allocate(stringobj.New(line)))
}

// nativeNewArray builds an Array seeded from the call's trailing arguments,
// matching builtins.rs's new_array.
func nativeNewArray(m object.Machine, args []value.Value) value.Value {
	arr := array.New()
	for i := 1; i < len(args); i++ {
		arr.Push(args[i])
	}
	return value.Object(m.Allocate(arr))
}

type converter struct{ m object.Machine }

func (c converter) ObjectToInt(h int) int32      { return c.m.Resident(h).ToInt(c.m) }
func (c converter) ObjectToLong(h int) int64     { return c.m.Resident(h).ToLong(c.m) }
func (c converter) ObjectToFloat(h int) float32  { return c.m.Resident(h).ToFloat(c.m) }
func (c converter) ObjectToDouble(h int) float64 { return c.m.Resident(h).ToDouble(c.m) }
func (c converter) ObjectToString(h int) string  { return c.m.Resident(h).ToString(c.m) }
