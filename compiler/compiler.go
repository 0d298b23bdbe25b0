package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/espresso/compiler/front"
	"github.com/slowlang/espresso/compiler/ir"
	"github.com/slowlang/espresso/compiler/parse"
)

func CompileFile(ctx context.Context, name string) (obj []byte, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text)
}

// Compile turns one source unit into a loadable image.
// Each call has its own session, so calls may run concurrently.
func Compile(ctx context.Context, name string, text []byte) (obj []byte, err error) {
	unit, err := parse.Parse(ctx, name, text)
	if err != nil {
		return nil, errors.Wrap(err, "parse text")
	}

	s := ir.NewSession()

	obj, err = front.Generate(ctx, s, unit)
	if err != nil {
		return nil, errors.Wrap(err, "generate")
	}

	return obj, nil
}
