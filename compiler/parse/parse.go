package parse

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/espresso/compiler/ast"
)

type (
	Parser struct {
		*Cursor
	}
)

func ParseFile(ctx context.Context, name string) (*ast.Func, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return Parse(ctx, name, data)
}

// Parse parses one source unit into a zero-parameter function literal.
// The returned error is always a *SyntaxError.
func Parse(ctx context.Context, name string, text []byte) (f *ast.Func, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "parse: unit", "name", name, "size", len(text))
	defer tr.Finish("err", &err)

	p := New(name, text)
	p.tr = tr

	f, err = p.parseUnit(ctx)
	if err != nil {
		return nil, err
	}

	if tr.If("dump_ast") {
		tr.Printw("ast", "stmts", len(f.Body.Stmts), "unit", f)
	}

	return f, nil
}

func New(name string, text []byte) *Parser {
	return &Parser{
		Cursor: NewCursor(name, text),
	}
}

func (p *Parser) parseUnit(ctx context.Context) (f *ast.Func, err error) {
	pos := p.pos()

	if p.Match("#language") {
		err = p.ExpectSpaced(`"`)
		if err != nil {
			return nil, err
		}

		for {
			if p.EOF() {
				return nil, p.errorf(UnterminatedString, "end of input inside language declaration")
			}

			ch, err := p.Read()
			if err != nil {
				return nil, err
			}

			if ch == '"' {
				break
			}
		}
	}

	body, err := p.parseBlock(ctx, "")
	if err != nil {
		return nil, err
	}

	return &ast.Func{
		Base: pos,
		Name: ast.UnitName,
		Body: body,
	}, nil
}

// parseBlock reads statements until end is matched or, when end is empty, until EOF.
func (p *Parser) parseBlock(ctx context.Context, end string) (b *ast.Block, err error) {
	b = &ast.Block{Base: p.pos()}

	for {
		err = p.SkipSpaces()
		if err != nil {
			return nil, err
		}

		if end == "" && p.EOF() || end != "" && p.Match(end) {
			break
		}

		var s ast.Stmt
		s, err = p.parseStmt(ctx)
		if err != nil {
			return nil, err
		}

		b.Stmts = append(b.Stmts, s)
	}

	return b, nil
}

func (p *Parser) pos() ast.Base {
	return ast.Base{Row: p.Row, Col: p.Col}
}
