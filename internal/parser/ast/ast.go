// Package ast defines the Abstract Syntax Tree produced by the parser.
//
// The tree is a closed set of node types. Every node category (statement,
// expression, type annotation) is an interface with an unexported marker
// method, so only this package can add variants and consumers can switch over
// the concrete types exhaustively:
//
//	switch n := stmt.(type) {
//	case *ast.VariableDecl:
//	case *ast.FunctionDecl:
//	...
//	}
//
// Nodes own their children. Nothing in a tree is shared between parents and
// there are no back-references, so a tree can be walked, copied or discarded
// without bookkeeping. Child slices keep source order.
//
// Nodes carry no source positions. Spans live on tokens and on parser
// errors, so a diagnostic can point at the token where parsing stopped but
// not at the extent of an already-built node.
package ast

import "strconv"

// Node is implemented by every tree node: statements, expressions, type
// annotations and parameters.
type Node interface {
	node()
}

// Stmt is a declaration or statement.
//
// The language does not distinguish the two at the tree level: a function
// body, a module body and a block expression all hold a []Stmt.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a node that produces a value.
// Examples: 2 + 3, f(x), p.name, (a, b) -> a
type Expr interface {
	Node
	exprNode()
}

// Type is a type annotation as written in the source.
type Type interface {
	Node
	typeNode()

	// String renders the annotation in source syntax.
	String() string
}

// Literal is the value carried by a LiteralExpr.
type Literal interface {
	literal()

	// String renders the literal in source syntax.
	String() string
}

// NumberLiteral is a numeric literal. All numbers are 64-bit floats.
type NumberLiteral float64

// StringLiteral is a string literal with its escapes already decoded.
type StringLiteral string

// BooleanLiteral is true or false.
type BooleanLiteral bool

func (NumberLiteral) literal()  {}
func (StringLiteral) literal()  {}
func (BooleanLiteral) literal() {}

func (n NumberLiteral) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

func (s StringLiteral) String() string {
	return strconv.Quote(string(s))
}

func (b BooleanLiteral) String() string {
	return strconv.FormatBool(bool(b))
}

// Parameter is a function or lambda parameter. Type is nil when the parameter
// has no annotation.
type Parameter struct {
	Name string
	Type Type
}

func (*Parameter) node() {}

// BinaryOp is a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEqualEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpAnd
	OpOr
)

var binaryOpNames = [...]string{
	OpAdd:          "+",
	OpSub:          "-",
	OpMul:          "*",
	OpDiv:          "/",
	OpMod:          "%",
	OpEqualEqual:   "==",
	OpNotEqual:     "!=",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpAnd:          "&&",
	OpOr:           "||",
}

// String returns the operator as written in source.
func (op BinaryOp) String() string {
	if op >= 0 && int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
}

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	OpNegate UnaryOp = iota // -
	OpNot                   // !
)

// String returns the operator as written in source.
func (op UnaryOp) String() string {
	switch op {
	case OpNegate:
		return "-"
	case OpNot:
		return "!"
	default:
		return "UnaryOp(" + strconv.Itoa(int(op)) + ")"
	}
}
