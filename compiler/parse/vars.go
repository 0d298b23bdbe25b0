package parse

import (
	"context"

	"github.com/slowlang/espresso/compiler/ast"
)

func (p *Parser) parseDecl(ctx context.Context, pos ast.Base) (x ast.Stmt, err error) {
	name, err := p.parseIdentSpaced()
	if err != nil {
		return nil, err
	}

	err = p.ExpectSpaced(":=")
	if err != nil {
		return nil, err
	}

	init, err := p.parseExpr(ctx)
	if err != nil {
		return nil, err
	}

	err = p.ExpectSpaced(";")
	if err != nil {
		return nil, err
	}

	return &ast.Decl{
		Base: pos,
		Name: name,
		Init: init,
	}, nil
}

// parseImport parses import('path' as alias, ...). The closing semicolon is optional
// for import and export.
func (p *Parser) parseImport(ctx context.Context, pos ast.Base) (x ast.Stmt, err error) {
	err = p.ExpectSpaced("(")
	if err != nil {
		return nil, err
	}

	s := &ast.Import{Base: pos}

	err = p.parseList(")", func() error {
		var q byte = '"'

		if p.Match("'") {
			q = '\''
		} else if err := p.Expect(`"`); err != nil {
			return err
		}

		path, err := p.parseString(p.pos(), q)
		if err != nil {
			return err
		}

		err = p.ExpectSpaced("as")
		if err != nil {
			return err
		}

		alias, err := p.parseIdentSpaced()
		if err != nil {
			return err
		}

		s.Paths = append(s.Paths, ast.ImportPath{
			Path:  path.Value,
			Alias: alias,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	_, err = p.MatchSpaced(";")
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (p *Parser) parseExport(ctx context.Context, pos ast.Base) (x ast.Stmt, err error) {
	err = p.ExpectSpaced("(")
	if err != nil {
		return nil, err
	}

	names, err := p.parseExprList(ctx, ")")
	if err != nil {
		return nil, err
	}

	_, err = p.MatchSpaced(";")
	if err != nil {
		return nil, err
	}

	return &ast.Export{
		Base:  pos,
		Names: names,
	}, nil
}
