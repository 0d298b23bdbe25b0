package ast

type (
	Assoc byte

	// Op describes an operator. Ops are compared by pointer.
	Op struct {
		Symbol string
		Close  string // closing delimiter, set for bracketed operators

		Arity int // -1 for variadic
		Prec  int
		Assoc Assoc

		// NonAssoc is informational, precedence climbing doesn't use it.
		NonAssoc bool
	}
)

const (
	Left  Assoc = 'l'
	Right Assoc = 'r'
)

var (
	OpCall = &Op{Symbol: "(", Close: ")", Arity: -1, Prec: 15, Assoc: Left}

	OpNeg    = &Op{Symbol: "-", Arity: 1, Prec: 13, Assoc: Right}
	OpNot    = &Op{Symbol: "not", Arity: 1, Prec: 13, Assoc: Right}
	OpTypeof = &Op{Symbol: "typeof", Arity: 1, Prec: 13, Assoc: Right}

	OpMul = &Op{Symbol: "*", Arity: 2, Prec: 12, Assoc: Left}
	OpDiv = &Op{Symbol: "/", Arity: 2, Prec: 12, Assoc: Left, NonAssoc: true}
	OpMod = &Op{Symbol: "%", Arity: 2, Prec: 12, Assoc: Left, NonAssoc: true}
	OpAdd = &Op{Symbol: "+", Arity: 2, Prec: 11, Assoc: Left}
	OpSub = &Op{Symbol: "-", Arity: 2, Prec: 11, Assoc: Left, NonAssoc: true}

	OpLt = &Op{Symbol: "<", Arity: 2, Prec: 9, Assoc: Left}
	OpLe = &Op{Symbol: "<=", Arity: 2, Prec: 9, Assoc: Left}
	OpGt = &Op{Symbol: ">", Arity: 2, Prec: 9, Assoc: Left}
	OpGe = &Op{Symbol: ">=", Arity: 2, Prec: 9, Assoc: Left}

	OpEq = &Op{Symbol: "=", Arity: 2, Prec: 8, Assoc: Left}
	OpNe = &Op{Symbol: "!=", Arity: 2, Prec: 8, Assoc: Left}

	OpAnd = &Op{Symbol: "and", Arity: 2, Prec: 4, Assoc: Left, NonAssoc: true}
	OpOr  = &Op{Symbol: "or", Arity: 2, Prec: 3, Assoc: Left, NonAssoc: true}

	OpAssign = &Op{Symbol: ":=", Arity: 2, Prec: 1, Assoc: Right}
)

// Ops lists every operator, longer symbols before their prefixes.
var Ops = []*Op{
	OpCall,
	OpNeg, OpNot, OpTypeof,
	OpMul, OpDiv, OpMod, OpAdd, OpSub,
	OpLe, OpLt, OpGe, OpGt,
	OpEq, OpNe,
	OpAnd, OpOr,
	OpAssign,
}

func (op *Op) String() string { return op.Symbol }

// Keyword reports whether the symbol is alphabetic and so must end on a word boundary.
func (op *Op) Keyword() bool {
	c := op.Symbol[0]

	return c >= 'a' && c <= 'z'
}
