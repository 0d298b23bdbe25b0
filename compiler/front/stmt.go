package front

import (
	"context"

	"tlog.app/go/errors"

	"github.com/slowlang/espresso/compiler/ast"
	"github.com/slowlang/espresso/compiler/ir"
)

// genBlock stops after the first statement which ends the current block,
// anything following it is unreachable.
func (s *scope) genBlock(ctx context.Context, b *ast.Block) (err error) {
	for _, x := range b.Stmts {
		err = s.genStmt(ctx, x)
		if err != nil {
			return s.located(x.Position(), err)
		}

		if s.block.Finalized() {
			break
		}
	}

	return nil
}

func (s *scope) genStmt(ctx context.Context, x ast.Stmt) (err error) {
	switch x := x.(type) {
	case *ast.Block:
		return s.genBlock(ctx, x)
	case *ast.ExprStmt:
		err = s.genExpr(ctx, x.Expr)
		if err != nil {
			return errors.Wrap(err, "expr stmt")
		}

		return s.add(ir.Pop())
	case *ast.InlineStmt:
		return s.genInline(ctx, x.Op, x.Args)
	case *ast.Decl:
		return s.genDecl(ctx, x)
	case *ast.If:
		return s.genIf(ctx, x)
	case *ast.Return:
		err = s.genExpr(ctx, x.Value)
		if err != nil {
			return errors.Wrap(err, "return value")
		}

		return s.branch("ret")
	case *ast.Import:
		return s.genImport(ctx, x)
	case *ast.Export:
		return s.genExport(ctx, x)
	default:
		return errors.New("unsupported statement: %T", x)
	}
}

func (s *scope) genIf(ctx context.Context, x *ast.If) (err error) {
	err = s.genExpr(ctx, x.Cond)
	if err != nil {
		return errors.Wrap(err, "if: cond")
	}

	thenb := s.NewBlock()
	ts := s.sub(thenb)

	err = ts.genStmt(ctx, x.Then)
	if err != nil {
		return errors.Wrap(err, "if: then")
	}

	elseb := s.NewBlock()
	es := s.sub(elseb)

	if x.Else != nil {
		err = es.genStmt(ctx, x.Else)
		if err != nil {
			return errors.Wrap(err, "if: else")
		}
	}

	err = s.branch("if_true", ir.A("then", thenb.Handle), ir.A("else", elseb.Handle))
	if err != nil {
		return err
	}

	join := s.NewBlock()
	s.merge(join)

	for _, b := range []*scope{ts, es} {
		if b.block.Finalized() {
			continue
		}

		err = b.branch("jump", ir.A("to", join.Handle))
		if err != nil {
			return err
		}
	}

	return nil
}
