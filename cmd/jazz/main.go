// Command jazz is the host wrapper of §6: it instantiates a Machine,
// registers a demo program (standing in for the out-of-scope lexer/parser,
// §1), and invokes it. Grounded in the teacher's `cmd/smog/main.go`
// subcommand shape, rewired onto `gopkg.in/urfave/cli.v1` per the domain
// stack expansion.
package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/urfave/cli.v1"

	"github.com/jazz-lang/jazz/pkg/builder"
	"github.com/jazz-lang/jazz/pkg/function"
	"github.com/jazz-lang/jazz/pkg/machine"
	"github.com/jazz-lang/jazz/pkg/opcode"
	"github.com/jazz-lang/jazz/pkg/stdlib"
	"github.com/jazz-lang/jazz/pkg/value"
)

func main() {
	app := cli.NewApp()
	app.Name = "jazz"
	app.Usage = "host wrapper for the Jazz register virtual machine"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "invoke a built-in demo program and print its result",
			ArgsUsage: "<factorial|loop>",
			Flags: []cli.Flag{
				cli.Int64Flag{Name: "n", Value: 12, Usage: "input to the demo program"},
			},
			Action: runDemo,
		},
		{
			Name:      "disasm",
			Usage:     "print the disassembly of a built-in demo program",
			ArgsUsage: "<factorial|loop>",
			Flags: []cli.Flag{
				cli.Int64Flag{Name: "n", Value: 12, Usage: "input to the demo program"},
			},
			Action: disasmDemo,
		},
		{
			Name:      "bench",
			Usage:     "time repeated invocations of a built-in demo program",
			ArgsUsage: "<factorial|loop>",
			Flags: []cli.Flag{
				cli.Int64Flag{Name: "n", Value: 12, Usage: "input to the demo program"},
				cli.IntFlag{Name: "iters", Value: 1000, Usage: "number of invocations to time"},
			},
			Action: benchDemo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "jazz:", err)
		os.Exit(1)
	}
}

// buildDemo constructs the named program against a fresh Machine with the
// stdlib registered, returning the callable to invoke and its arguments.
func buildDemo(name string, n int64) (m *machine.Machine, callable value.Value, args []value.Value, err error) {
	m = machine.New()
	alloc := builder.NewGlobalAllocator()
	stdlib.Register(m, alloc.Allocate)

	switch name {
	case "factorial":
		mainFn, factFn, factGlobal := builder.BuildFactorial(alloc, n)
		factHandle := m.Allocate(factFn)
		m.SetGlobal(factGlobal, value.Object(factHandle))
		mainHandle := m.Allocate(mainFn)
		return m, value.Object(mainHandle), []value.Value{value.Null()}, nil
	case "loop":
		loopFn := builder.BuildCountingLoop(int32(n))
		loopHandle := m.Allocate(loopFn)
		return m, value.Object(loopHandle), []value.Value{value.Null()}, nil
	default:
		return nil, value.Value{}, nil, fmt.Errorf("unknown demo %q (want factorial or loop)", name)
	}
}

func demoName(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one demo name argument")
	}
	return c.Args().Get(0), nil
}

func runDemo(c *cli.Context) error {
	name, err := demoName(c)
	if err != nil {
		return err
	}
	m, callable, args, err := buildDemo(name, c.Int64("n"))
	if err != nil {
		return err
	}
	result, err := machine.Run(m, callable, args)
	if err != nil {
		return err
	}
	fmt.Println(result.String())
	return nil
}

func disasmDemo(c *cli.Context) error {
	name, err := demoName(c)
	if err != nil {
		return err
	}
	m, callable, _, err := buildDemo(name, c.Int64("n"))
	if err != nil {
		return err
	}
	resident := m.Resident(callable.Handle)
	if vf, ok := resident.(*function.Virtual); ok {
		fmt.Print(opcode.Disassemble(vf.Code))
		return nil
	}
	fmt.Println("<no disassembly available>")
	return nil
}

func benchDemo(c *cli.Context) error {
	name, err := demoName(c)
	if err != nil {
		return err
	}
	iters := c.Int("iters")
	start := time.Now()
	for i := 0; i < iters; i++ {
		m, callable, args, err := buildDemo(name, c.Int64("n"))
		if err != nil {
			return err
		}
		if _, err := machine.Run(m, callable, args); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("%d iterations in %s (%s/iter)\n", iters, elapsed, elapsed/time.Duration(iters))
	return nil
}
