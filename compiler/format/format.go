package format

import (
	"context"
	"strings"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/slowlang/espresso/compiler/ast"
)

// Format appends the source form of x to b.
// Binary and unary expressions are fully parenthesized,
// so the output shows how the parser grouped operators.
func Format(ctx context.Context, b []byte, x ast.Node) ([]byte, error) {
	return format(ctx, b, x, 0)
}

func format(ctx context.Context, b []byte, x ast.Node, d int) ([]byte, error) {
	switch x := x.(type) {
	case *ast.Func:
		if x.Name == ast.UnitName && len(x.Params) == 0 {
			return formatStmts(ctx, b, x.Body.Stmts, d)
		}

		return formatExpr(ctx, b, x, d)
	case ast.Stmt:
		return formatStmt(ctx, b, x, d)
	case ast.Expr:
		return formatExpr(ctx, b, x, d)
	default:
		return nil, errors.New("unsupported type: %T", x)
	}
}

func formatStmts(ctx context.Context, b []byte, l []ast.Stmt, d int) (_ []byte, err error) {
	for _, s := range l {
		b, err = formatStmt(ctx, b, s, d)
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

func formatStmt(ctx context.Context, b []byte, x ast.Stmt, d int) (_ []byte, err error) {
	switch s := x.(type) {
	case *ast.Block:
		b = app(b, d, "{\n")

		b, err = formatStmts(ctx, b, s.Stmts, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "block")
		}

		b = app(b, d, "}\n")
	case *ast.Decl:
		b = app(b, d, "let %s := ", s.Name)

		b, err = formatExpr(ctx, b, s.Init, d)
		if err != nil {
			return nil, errors.Wrap(err, "decl %v", s.Name)
		}

		b = append(b, ";\n"...)
	case *ast.If:
		b = app(b, d, "if (")

		b, err = formatExpr(ctx, b, s.Cond, d)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, ")\n"...)

		b, err = formatStmt(ctx, b, s.Then, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "then")
		}

		if e, ok := s.Else.(*ast.Block); ok && len(e.Stmts) == 0 {
			break
		}

		b = app(b, d, "else\n")

		b, err = formatStmt(ctx, b, s.Else, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "else")
		}
	case *ast.Return:
		b = app(b, d, "return ")

		b, err = formatExpr(ctx, b, s.Value, d)
		if err != nil {
			return nil, errors.Wrap(err, "return")
		}

		b = append(b, ";\n"...)
	case *ast.ExprStmt:
		b = app(b, d, "")

		b, err = formatExpr(ctx, b, s.Expr, d)
		if err != nil {
			return nil, err
		}

		b = append(b, ";\n"...)
	case *ast.Import:
		b = app(b, d, "import(")

		for i, p := range s.Paths {
			if i != 0 {
				b = append(b, ", "...)
			}

			b = quote(b, p.Path)
			b = hfmt.Appendf(b, " as %s", p.Alias)
		}

		b = append(b, ")\n"...)
	case *ast.Export:
		b = app(b, d, "export(")

		b, err = formatList(ctx, b, s.Names, d)
		if err != nil {
			return nil, errors.Wrap(err, "export")
		}

		b = append(b, ")\n"...)
	case *ast.InlineStmt:
		b = app(b, d, "$%s(", s.Op)

		b, err = formatList(ctx, b, s.Args, d)
		if err != nil {
			return nil, errors.Wrap(err, "$%v", s.Op)
		}

		b = append(b, ");\n"...)
	default:
		return nil, errors.New("unsupported stmt: %T", x)
	}

	return b, nil
}

func formatExpr(ctx context.Context, b []byte, x ast.Expr, d int) (_ []byte, err error) {
	switch x := x.(type) {
	case *ast.Int:
		b = append(b, x.Value...)
	case *ast.Float:
		b = append(b, x.Value...)
		b = append(b, 'f')
	case *ast.String:
		b = quote(b, x.Value)
	case *ast.Ident:
		b = append(b, x.Name...)
	case *ast.Unary:
		b = append(b, '(')
		b = append(b, x.Op.Symbol...)

		if x.Op.Keyword() {
			b = append(b, ' ')
		}

		b, err = formatExpr(ctx, b, x.Expr, d)
		if err != nil {
			return nil, errors.Wrap(err, "unary %v", x.Op)
		}

		b = append(b, ')')
	case *ast.Binary:
		b = append(b, '(')

		b, err = formatExpr(ctx, b, x.Left, d)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = hfmt.Appendf(b, " %s ", x.Op.Symbol)

		b, err = formatExpr(ctx, b, x.Right, d)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}

		b = append(b, ')')
	case *ast.Array:
		b = append(b, '[')

		b, err = formatList(ctx, b, x.Elems, d)
		if err != nil {
			return nil, errors.Wrap(err, "array")
		}

		b = append(b, ']')
	case *ast.Object:
		b = append(b, '{')

		for i, name := range x.Names {
			if i != 0 {
				b = append(b, ", "...)
			}

			b = hfmt.Appendf(b, "%s: ", name)

			b, err = formatExpr(ctx, b, x.Values[i], d)
			if err != nil {
				return nil, errors.Wrap(err, "field %v", name)
			}
		}

		b = append(b, '}')
	case *ast.Func:
		b = append(b, "fun ("...)

		for i, p := range x.Params {
			if i != 0 {
				b = append(b, ", "...)
			}

			b = append(b, p...)
		}

		b = append(b, ") {\n"...)

		b, err = formatStmts(ctx, b, x.Body.Stmts, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "fun body")
		}

		b = app(b, d, "}")
	case *ast.Call:
		b, err = formatExpr(ctx, b, x.Func, d)
		if err != nil {
			return nil, errors.Wrap(err, "callee")
		}

		b = append(b, '(')

		b, err = formatList(ctx, b, x.Args, d)
		if err != nil {
			return nil, errors.Wrap(err, "args")
		}

		b = append(b, ')')
	case *ast.Inline:
		b = hfmt.Appendf(b, "$%s(", x.Op)

		b, err = formatList(ctx, b, x.Args, d)
		if err != nil {
			return nil, errors.Wrap(err, "$%v", x.Op)
		}

		b = append(b, ')')
	default:
		return nil, errors.New("unsupported expr: %T", x)
	}

	return b, nil
}

func formatList(ctx context.Context, b []byte, l []ast.Expr, d int) (_ []byte, err error) {
	for i, x := range l {
		if i != 0 {
			b = append(b, ", "...)
		}

		b, err = formatExpr(ctx, b, x, d)
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

// quote picks the quote character not present in s, there are no escapes in the language.
func quote(b []byte, s string) []byte {
	q := byte('\'')
	if strings.IndexByte(s, q) >= 0 {
		q = '"'
	}

	b = append(b, q)
	b = append(b, s...)
	b = append(b, q)

	return b
}

func app(b []byte, d int, f string, args ...any) []byte {
	for i := 0; i < d; i++ {
		b = append(b, '\t')
	}

	b = hfmt.Appendf(b, f, args...)
	return b
}
