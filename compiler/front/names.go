package front

import (
	"context"

	"tlog.app/go/errors"

	"github.com/slowlang/espresso/compiler/ast"
	"github.com/slowlang/espresso/compiler/ir"
)

var (
	literals = map[string]ir.Const{
		"true":  ir.True,
		"false": ir.False,
		"null":  ir.Undef,
	}

	// builtins are runtime library functions visible by their plain name.
	builtins = map[string]struct{}{
		"map":    {},
		"get":    {},
		"push":   {},
		"set":    {},
		"has":    {},
		"repeat": {},
		"len":    {},
		"print":  {},
		"reduce": {},
		"filter": {},
	}
)

// genIdent loads the value of a name. Lookup order is literals, builtins,
// names declared in the current function, parameters, unit globals.
func (s *scope) genIdent(name string) error {
	if c, ok := literals[name]; ok {
		return s.add(ir.Push(c))
	}

	if _, ok := builtins[name]; ok {
		return s.loadGlobal("rt_" + name)
	}

	if slot, ok := s.fn.Local(name); ok {
		if s.global {
			return s.loadGlobal(name)
		}

		return s.add(ir.GetLocal(slot))
	}

	if idx, ok := s.fn.Param(name); ok {
		return s.add(ir.GetLocal(idx))
	}

	if s.IsGlobal(name) {
		return s.loadGlobal(name)
	}

	return errors.Wrap(ErrUndefined, "%q", name)
}

// genAssign stores the value and leaves it on the stack.
func (s *scope) genAssign(ctx context.Context, l, r ast.Expr) (err error) {
	id, ok := l.(*ast.Ident)
	if !ok {
		return errors.Wrap(ErrAssign, "%T", l)
	}

	name := id.Name

	if _, ok := literals[name]; ok {
		return errors.Wrap(ErrAssign, "%q is reserved", name)
	}

	if slot, ok := s.fn.Local(name); ok {
		if s.global {
			return s.storeGlobal(ctx, name, r)
		}

		err = s.genExpr(ctx, r)
		if err != nil {
			return errors.Wrap(err, "assign %v", name)
		}

		return s.add(ir.Dup(0), ir.SetLocal(slot))
	}

	if _, ok := s.fn.Param(name); ok {
		return errors.Wrap(ErrAssignToParam, "%q", name)
	}

	if s.IsGlobal(name) {
		return s.storeGlobal(ctx, name, r)
	}

	if _, ok := builtins[name]; ok {
		return errors.Wrap(ErrAssign, "%q is a builtin", name)
	}

	return errors.Wrap(ErrUndefined, "%q", name)
}

func (s *scope) storeGlobal(ctx context.Context, name string, r ast.Expr) error {
	err := s.genExpr(ctx, r)
	if err != nil {
		return errors.Wrap(err, "assign %v", name)
	}

	return s.add(
		ir.Push(ir.GlobalObj),
		ir.Push(ir.Str(name)),
		ir.Dup(2),
		ir.SetField(),
	)
}

func (s *scope) genDecl(ctx context.Context, x *ast.Decl) (err error) {
	if _, ok := literals[x.Name]; ok {
		return errors.Wrap(ErrAssign, "%q is reserved", x.Name)
	}

	if s.global {
		err = s.fn.DeclareGlobal(x.Name)
		if err != nil {
			return err
		}

		err = s.add(ir.Push(ir.GlobalObj), ir.Push(ir.Str(x.Name)))
		if err != nil {
			return err
		}

		err = s.genExpr(ctx, x.Init)
		if err != nil {
			return errors.Wrap(err, "let %v", x.Name)
		}

		return s.add(ir.SetField())
	}

	err = s.genExpr(ctx, x.Init)
	if err != nil {
		return errors.Wrap(err, "let %v", x.Name)
	}

	slot, err := s.fn.DeclareLocal(x.Name)
	if err != nil {
		return err
	}

	return s.add(ir.SetLocal(slot))
}

func (s *scope) genImport(ctx context.Context, x *ast.Import) (err error) {
	for _, p := range x.Paths {
		if s.global {
			err = s.fn.DeclareGlobal(p.Alias)
			if err != nil {
				return err
			}

			err = s.add(ir.Push(ir.GlobalObj), ir.Push(ir.Str(p.Alias)))
			if err != nil {
				return err
			}
		}

		err = s.add(ir.Push(ir.Str(p.Path)))
		if err != nil {
			return err
		}

		err = s.call("import", -1)
		if err != nil {
			return errors.Wrap(err, "import %q", p.Path)
		}

		if s.global {
			err = s.add(ir.SetField())
		} else {
			var slot int

			slot, err = s.fn.DeclareLocal(p.Alias)
			if err == nil {
				err = s.add(ir.SetLocal(slot))
			}
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *scope) genExport(ctx context.Context, x *ast.Export) (err error) {
	if !s.global {
		return errors.Wrap(ErrExport, "not in the unit scope")
	}

	for _, e := range x.Names {
		id, ok := e.(*ast.Ident)
		if !ok {
			return errors.Wrap(ErrExport, "%T is not a name", e)
		}

		if !s.IsGlobal(id.Name) {
			return errors.Wrap(ErrExport, "%q is not a global", id.Name)
		}

		err = s.add(
			ir.Push(ir.GlobalObj),
			ir.Push(ir.Str("exports")),
			ir.GetField(),
			ir.Push(ir.Str(id.Name)),
		)
		if err != nil {
			return err
		}

		err = s.genIdent(id.Name)
		if err != nil {
			return err
		}

		err = s.add(ir.SetField())
		if err != nil {
			return err
		}
	}

	return nil
}
