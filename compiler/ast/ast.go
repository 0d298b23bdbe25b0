package ast

type (
	Node interface {
		Position() Base
	}

	// Expr is one of the expression nodes declared below.
	Expr interface {
		Node
		expr()
	}

	// Stmt is one of the statement nodes declared below.
	Stmt interface {
		Node
		stmt()
	}

	Base struct {
		Row int
		Col int
	}

	Int struct {
		Base `tlog:",embed"`

		Value string
	}

	// Float keeps the literal text without the type marker.
	Float struct {
		Base `tlog:",embed"`

		Value string
	}

	String struct {
		Base `tlog:",embed"`

		Value string
	}

	Ident struct {
		Base `tlog:",embed"`

		Name string
	}

	Unary struct {
		Base `tlog:",embed"`

		Op   *Op
		Expr Expr
	}

	Binary struct {
		Base `tlog:",embed"`

		Op    *Op
		Left  Expr
		Right Expr
	}

	Array struct {
		Base `tlog:",embed"`

		Elems []Expr
	}

	// Object fields are kept in source order, Names[i] maps to Values[i].
	Object struct {
		Base `tlog:",embed"`

		Names  []string
		Values []Expr
	}

	Func struct {
		Base `tlog:",embed"`

		Name   string
		Params []string
		Body   *Block
	}

	Call struct {
		Base `tlog:",embed"`

		Func Expr
		Args []Expr
	}

	// Inline names a target instruction directly.
	Inline struct {
		Base `tlog:",embed"`

		Op   string
		Args []Expr
	}

	Block struct {
		Base `tlog:",embed"`

		Stmts []Stmt
	}

	Decl struct {
		Base `tlog:",embed"`

		Name string
		Init Expr
	}

	If struct {
		Base `tlog:",embed"`

		Cond Expr
		Then Stmt
		Else Stmt
	}

	Return struct {
		Base `tlog:",embed"`

		Value Expr
	}

	ExprStmt struct {
		Base `tlog:",embed"`

		Expr Expr
	}

	Import struct {
		Base `tlog:",embed"`

		Paths []ImportPath
	}

	ImportPath struct {
		Path  string
		Alias string
	}

	// Export items are expressions so that non-identifiers are reported
	// by the code generator rather than the parser.
	Export struct {
		Base `tlog:",embed"`

		Names []Expr
	}

	InlineStmt struct {
		Base `tlog:",embed"`

		Op   string
		Args []Expr
	}
)

// UnitName is the name of the implicit function wrapping a source unit.
const UnitName = "unit"

func (b Base) Position() Base { return b }

func (*Int) expr()    {}
func (*Float) expr()  {}
func (*String) expr() {}
func (*Ident) expr()  {}
func (*Unary) expr()  {}
func (*Binary) expr() {}
func (*Array) expr()  {}
func (*Object) expr() {}
func (*Func) expr()   {}
func (*Call) expr()   {}
func (*Inline) expr() {}

func (*Block) stmt()      {}
func (*Decl) stmt()       {}
func (*If) stmt()         {}
func (*Return) stmt()     {}
func (*ExprStmt) stmt()   {}
func (*Import) stmt()     {}
func (*Export) stmt()     {}
func (*InlineStmt) stmt() {}
