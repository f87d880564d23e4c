package ast

// Expression nodes represent values and computations.

// BinaryExpr is left op right.
// Examples: 2 + 3, x * y, a == b, ok && done
type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
}

// UnaryExpr is a prefix operation: -x, !flag
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

// LiteralExpr is a number, string or boolean literal.
type LiteralExpr struct {
	Value Literal
}

// IdentifierExpr is a reference to a name.
type IdentifierExpr struct {
	Name string
}

// GroupingExpr is a parenthesized expression. It is kept in the tree so the
// source structure survives: (a + b) * c
type GroupingExpr struct {
	Inner Expr
}

// BlockExpr is a braced list of statements used as an expression.
type BlockExpr struct {
	Body []Stmt
}

// PropertyAccessExpr reads a named member: obj.name
type PropertyAccessExpr struct {
	Object Expr
	Name   string
}

// CallExpr calls Callee with Args in source order.
//
// Callee is any expression, so a.b(c).d(e) nests as
// Call(PropertyAccess(Call(PropertyAccess(a, b), [c]), d), [e]).
type CallExpr struct {
	Callee Expr
	Args   []Expr
}

// LambdaExpr is an anonymous function with a single expression body:
// (x: number) -> x * 2
type LambdaExpr struct {
	Params []Parameter
	Body   Expr
}

// StructLiteralExpr constructs a named struct: Point { x, y: 2 }
type StructLiteralExpr struct {
	Name   string
	Fields []FieldInit
}

// FieldInit is one field of a struct literal. For the shorthand form
// Point { x } the value is IdentifierExpr{Name: "x"}.
type FieldInit struct {
	Name  string
	Value Expr
}

func (*BinaryExpr) node()         {}
func (*UnaryExpr) node()          {}
func (*LiteralExpr) node()        {}
func (*IdentifierExpr) node()     {}
func (*GroupingExpr) node()       {}
func (*BlockExpr) node()          {}
func (*PropertyAccessExpr) node() {}
func (*CallExpr) node()           {}
func (*LambdaExpr) node()         {}
func (*StructLiteralExpr) node()  {}

func (*BinaryExpr) exprNode()         {}
func (*UnaryExpr) exprNode()          {}
func (*LiteralExpr) exprNode()        {}
func (*IdentifierExpr) exprNode()     {}
func (*GroupingExpr) exprNode()       {}
func (*BlockExpr) exprNode()          {}
func (*PropertyAccessExpr) exprNode() {}
func (*CallExpr) exprNode()           {}
func (*LambdaExpr) exprNode()         {}
func (*StructLiteralExpr) exprNode()  {}
