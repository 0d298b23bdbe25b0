package front

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/espresso/compiler/ast"
	"github.com/slowlang/espresso/compiler/ir"
)

// binOps maps operators to runtime library functions.
var binOps = map[*ast.Op]string{
	ast.OpAdd: "add",
	ast.OpSub: "sub",
	ast.OpMul: "mul",
	ast.OpDiv: "div",
	ast.OpMod: "mod",
	ast.OpEq:  "eq",
	ast.OpNe:  "ne",
	ast.OpLt:  "lt",
	ast.OpLe:  "le",
	ast.OpGt:  "gt",
	ast.OpGe:  "ge",
}

func (s *scope) genExpr(ctx context.Context, x ast.Expr) (err error) {
	switch x := x.(type) {
	case *ast.Int:
		return s.add(ir.Push(ir.Num(x.Value)))
	case *ast.Float:
		return s.add(ir.Push(ir.Num(x.Value)))
	case *ast.String:
		return s.add(ir.Push(ir.Str(x.Value)))
	case *ast.Ident:
		return s.genIdent(x.Name)
	case *ast.Unary:
		return s.genUnary(ctx, x)
	case *ast.Binary:
		return s.genBinary(ctx, x)
	case *ast.Array:
		return s.genArray(ctx, x)
	case *ast.Object:
		return s.genObject(ctx, x)
	case *ast.Func:
		return s.genFunc(ctx, x)
	case *ast.Call:
		return s.genCall(ctx, x)
	case *ast.Inline:
		return s.genInline(ctx, x.Op, x.Args)
	default:
		return errors.New("unsupported expression: %T", x)
	}
}

func (s *scope) genExprs(ctx context.Context, l []ast.Expr) error {
	for _, x := range l {
		err := s.genExpr(ctx, x)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *scope) genUnary(ctx context.Context, x *ast.Unary) (err error) {
	switch x.Op {
	case ast.OpNeg:
		err = s.add(ir.Push(ir.Num("0")))
		if err != nil {
			return err
		}

		err = s.genExpr(ctx, x.Expr)
		if err != nil {
			return errors.Wrap(err, "neg")
		}

		return s.runtimeCall("sub", 2)
	case ast.OpNot:
		err = s.genExpr(ctx, x.Expr)
		if err != nil {
			return errors.Wrap(err, "not")
		}

		return s.runtimeCall("not", 1)
	case ast.OpTypeof:
		return errors.Wrap(ErrInvalidOp, "typeof can only be compared to a string literal")
	default:
		return errors.Wrap(ErrInvalidOp, "unary %v", x.Op)
	}
}

func (s *scope) genBinary(ctx context.Context, x *ast.Binary) (err error) {
	switch x.Op {
	case ast.OpAssign:
		return s.genAssign(ctx, x.Left, x.Right)
	case ast.OpAnd, ast.OpOr:
		return s.genLogical(ctx, x)
	case ast.OpEq:
		if t, ok := x.Left.(*ast.Unary); ok && t.Op == ast.OpTypeof {
			return s.genTypeof(ctx, t.Expr, x.Right)
		}
	}

	name, ok := binOps[x.Op]
	if !ok {
		return errors.Wrap(ErrInvalidOp, "binary %v", x.Op)
	}

	err = s.genExpr(ctx, x.Left)
	if err != nil {
		return errors.Wrap(err, "binop left")
	}

	err = s.genExpr(ctx, x.Right)
	if err != nil {
		return errors.Wrap(err, "binop right")
	}

	return s.runtimeCall(name, 2)
}

func (s *scope) genTypeof(ctx context.Context, x, tag ast.Expr) error {
	str, ok := tag.(*ast.String)
	if !ok {
		return errors.Wrap(ErrInvalidOp, "typeof compared to %T, want a string literal", tag)
	}

	err := s.genExpr(ctx, x)
	if err != nil {
		return errors.Wrap(err, "typeof")
	}

	return s.add(ir.HasTag(str.Value))
}

// genLogical short-circuits: the left value is left on the stack
// when it decides the result, otherwise it's replaced by the right one.
func (s *scope) genLogical(ctx context.Context, x *ast.Binary) (err error) {
	rhs := s.NewBlock()
	done := s.NewBlock()

	then, els := rhs, done
	if x.Op == ast.OpOr {
		then, els = done, rhs
	}

	err = s.genExpr(ctx, x.Left)
	if err != nil {
		return errors.Wrap(err, "%v left", x.Op)
	}

	err = s.add(ir.Dup(0))
	if err != nil {
		return err
	}

	err = s.branch("if_true", ir.A("then", then.Handle), ir.A("else", els.Handle))
	if err != nil {
		return err
	}

	r := s.sub(rhs)

	err = r.add(ir.Pop())
	if err != nil {
		return err
	}

	err = r.genExpr(ctx, x.Right)
	if err != nil {
		return errors.Wrap(err, "%v right", x.Op)
	}

	err = r.branch("jump", ir.A("to", done.Handle))
	if err != nil {
		return err
	}

	s.merge(done)

	return nil
}

func (s *scope) genArray(ctx context.Context, x *ast.Array) (err error) {
	err = s.add(ir.Push(ir.Int(len(x.Elems))), ir.NewArray())
	if err != nil {
		return err
	}

	for _, e := range x.Elems {
		err = s.add(ir.Dup(0))
		if err != nil {
			return err
		}

		err = s.genExpr(ctx, e)
		if err != nil {
			return errors.Wrap(err, "array elem")
		}

		err = s.add(ir.ArrayPush())
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *scope) genObject(ctx context.Context, x *ast.Object) (err error) {
	err = s.add(ir.Push(ir.Int(len(x.Names))), ir.NewObject())
	if err != nil {
		return err
	}

	for i, name := range x.Names {
		err = s.add(ir.Dup(0), ir.Push(ir.Str(name)))
		if err != nil {
			return err
		}

		err = s.genExpr(ctx, x.Values[i])
		if err != nil {
			return errors.Wrap(err, "field %v", name)
		}

		err = s.add(ir.SetField())
		if err != nil {
			return err
		}
	}

	return nil
}

// genFunc compiles a function literal into its own blocks and pushes a
// reference to it. Functions see their parameters, their own locals and
// unit globals, nothing from enclosing functions.
func (s *scope) genFunc(ctx context.Context, x *ast.Func) (err error) {
	for i, p := range x.Params {
		for _, q := range x.Params[:i] {
			if p == q {
				return errors.Wrap(ir.ErrDuplicate, "parameter %q", p)
			}
		}
	}

	entry := s.NewBlock()
	fn := s.NewFunc(x.Params, entry)

	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "front: function", "func", fn.Handle, "params", x.Params)
	defer tr.Finish("err", &err)

	fs := &scope{
		unitContext: s.unitContext,
		fn:          fn,
		block:       entry,
	}

	err = fs.genBlock(ctx, x.Body)
	if err != nil {
		return errors.Wrap(err, "function body")
	}

	err = fs.fallThrough(ir.Undef)
	if err != nil {
		return err
	}

	err = fn.Finalize(s.img)
	if err != nil {
		return err
	}

	if tr.If("dump_image") {
		tr.Printw("function", "func", fn.Handle, "num_locals", fn.NumLocals(), "locals", fn.Locals())
	}

	return s.add(ir.Push(fn.Handle))
}

func (s *scope) genCall(ctx context.Context, x *ast.Call) (err error) {
	err = s.genExprs(ctx, x.Args)
	if err != nil {
		return errors.Wrap(err, "call args")
	}

	err = s.genExpr(ctx, x.Func)
	if err != nil {
		return errors.Wrap(err, "callee")
	}

	return s.call("call", len(x.Args))
}

func (s *scope) genInline(ctx context.Context, op string, args []ast.Expr) (err error) {
	err = s.genExprs(ctx, args)
	if err != nil {
		return errors.Wrap(err, "$%v args", op)
	}

	return s.add(ir.Op(op))
}
