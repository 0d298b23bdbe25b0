package main

import (
	"context"
	"fmt"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/espresso/compiler"
	"github.com/slowlang/espresso/compiler/format"
	"github.com/slowlang/espresso/compiler/parse"
)

func main() {
	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "parse files and print them back with operators grouped",
		Action:      parseAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			verbosityFlag(),
		},
	}

	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "compile files into images",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("output,o", "", "write the image to the file instead of stdout"),
			cli.NewFlag("check", false, "only report errors"),
			verbosityFlag(),
		},
	}

	app := &cli.Command{
		Name:        "espresso",
		Description: "espresso compiles source units into virtual machine images",
		Commands: []*cli.Command{
			parseCmd,
			compileCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func verbosityFlag() *cli.Flag {
	return cli.NewFlag("verbosity,v", "", "tlog verbosity topics (dump_ast, dump_image, scan, parse_stmt)")
}

func setup(c *cli.Command) context.Context {
	tlog.SetVerbosity(c.String("verbosity"))

	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	return ctx
}

func parseAct(c *cli.Command) (err error) {
	ctx := setup(c)

	var b []byte

	for _, a := range c.Args {
		x, err := parse.ParseFile(ctx, a)
		if err != nil {
			return report(err, a)
		}

		b, err = format.Format(ctx, b[:0], x)
		if err != nil {
			return errors.Wrap(err, "format %v", a)
		}

		fmt.Printf("%s", b)
	}

	return nil
}

func compileAct(c *cli.Command) (err error) {
	ctx := setup(c)

	out := c.String("output")
	if out != "" && len(c.Args) != 1 {
		return errors.New("--output needs exactly one input file, got %d", len(c.Args))
	}

	for _, a := range c.Args {
		obj, err := compiler.CompileFile(ctx, a)
		if err != nil {
			return report(err, a)
		}

		switch {
		case c.Bool("check"):
		case out != "":
			err = os.WriteFile(out, obj, 0o644)
			if err != nil {
				return errors.Wrap(err, "write image")
			}
		default:
			fmt.Printf("%s", obj)
		}
	}

	return nil
}

// report prints the source line a syntax error points to.
func report(err error, name string) error {
	var se *parse.SyntaxError
	if !errors.As(err, &se) {
		return err
	}

	text, rerr := os.ReadFile(name)
	if rerr == nil {
		fmt.Fprintf(os.Stderr, "%s\n", se.Snippet(text))
	}

	return err
}
