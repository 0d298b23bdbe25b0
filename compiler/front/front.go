// Package front lowers a parsed unit into an image of basic blocks and
// function records.
package front

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/espresso/compiler/ast"
	"github.com/slowlang/espresso/compiler/ir"
)

type (
	// GenError is returned by Generate. Row and Col point to the innermost
	// statement being generated, if any.
	GenError struct {
		Row int
		Col int
		Err error
	}

	unitContext struct {
		*ir.Session

		img *ir.Image
	}

	scope struct {
		*unitContext

		fn    *ir.Func
		block *ir.Block

		// global is set for the unit body, where declarations become
		// fields of the global object.
		global bool
	}
)

var (
	ErrAssignToParam = errors.New("assignment to a parameter")
	ErrAssign        = errors.New("invalid assignment target")
	ErrUndefined     = errors.New("undefined variable")
	ErrExport        = errors.New("invalid export")
	ErrInvalidOp     = errors.New("invalid operation")
)

// Generate writes the image for unit. s must be fresh for every unit.
func Generate(ctx context.Context, s *ir.Session, unit *ast.Func) (obj []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "front: generate", "unit", unit.Name)
	defer tr.Finish("err", &err)

	u := &unitContext{
		Session: s,
		img:     ir.NewImage(),
	}

	entry := s.NewBlock()
	fn := s.NewFunc(unit.Params, entry)

	sc := &scope{
		unitContext: u,
		fn:          fn,
		block:       entry,
		global:      true,
	}

	u.img.Object(ir.ExportsObj, ir.A("init", fn.Handle))
	u.img.Object(ir.GlobalObj, ir.A("exports", ir.ExportsObj))

	err = sc.genBlock(ctx, unit.Body)
	if err != nil {
		return nil, err
	}

	err = sc.fallThrough(ir.True)
	if err == nil {
		err = fn.Finalize(u.img)
	}
	if err != nil {
		return nil, &GenError{Err: err}
	}

	u.img.Result(ir.ExportsObj)

	err = u.img.Check()
	if err != nil {
		return nil, &GenError{Err: err}
	}

	if tr.If("dump_image") {
		tr.Printw("image", "blocks", u.img.Blocks, "funcs", u.img.Funcs, "globals", s.Globals(), "size", len(u.img.Bytes()))
	}

	return u.img.Bytes(), nil
}

func (e *GenError) Error() string {
	if e.Row == 0 {
		return e.Err.Error()
	}

	return string(hfmt.Appendf(nil, "%d:%d: %v", e.Row, e.Col, e.Err))
}

func (e *GenError) Unwrap() error { return e.Err }

func (s *scope) sub(b *ir.Block) *scope {
	c := *s
	c.block = b

	return &c
}

func (s *scope) merge(b *ir.Block) {
	s.block = b
}

func (s *scope) add(code ...ir.Instr) error {
	for _, in := range code {
		err := s.block.Add(in)
		if err != nil {
			return err
		}
	}

	return nil
}

// branch ends the current block with a control transfer.
func (s *scope) branch(op string, args ...ir.Arg) error {
	err := s.block.Add(ir.Op(op, args...))
	if err != nil {
		return err
	}

	return s.block.Finalize(s.img)
}

// fallThrough returns v if control can reach the end of the current block.
func (s *scope) fallThrough(v ir.Value) error {
	if s.block.Finalized() {
		return nil
	}

	err := s.add(ir.Push(v))
	if err != nil {
		return err
	}

	return s.branch("ret")
}

// call invokes the callee on top of the stack and resumes in a fresh block.
func (s *scope) call(op string, nargs int) error {
	cont := s.NewBlock()

	args := []ir.Arg{ir.A("ret_to", cont.Handle)}
	if nargs >= 0 {
		args = append(args, ir.A("num_args", ir.Int(nargs)))
	}

	err := s.branch(op, args...)
	if err != nil {
		return err
	}

	s.merge(cont)

	return nil
}

// runtimeCall calls a runtime library function with nargs arguments
// already on the stack.
func (s *scope) runtimeCall(name string, nargs int) error {
	err := s.loadGlobal("rt_" + name)
	if err != nil {
		return err
	}

	return s.call("call", nargs)
}

func (s *scope) loadGlobal(field string) error {
	return s.add(
		ir.Push(ir.GlobalObj),
		ir.Push(ir.Str(field)),
		ir.GetField(),
	)
}

func (s *scope) located(pos ast.Base, err error) error {
	var ge *GenError
	if errors.As(err, &ge) {
		return err
	}

	return &GenError{Row: pos.Row, Col: pos.Col, Err: err}
}
