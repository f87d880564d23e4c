package ast

// Statement and declaration nodes.

// VariableDecl declares a binding: let x: number = 1; or var count = 0;
//
// Mutable is true for var and false for let. Type and Initializer are nil
// when omitted.
type VariableDecl struct {
	Mutable     bool
	Name        string
	Type        Type
	Initializer Expr
}

// FunctionDecl declares a named function:
//
//	fn add(a: number, b: number) -> number { return a + b; }
//
// ReturnType is nil when the arrow clause is omitted.
type FunctionDecl struct {
	Name       string
	Params     []Parameter
	ReturnType Type
	Body       []Stmt
}

// ClassDecl declares a class with fields and methods, each kept in source
// order.
type ClassDecl struct {
	Name    string
	Fields  []*VariableDecl
	Methods []*FunctionDecl
}

// ModuleDecl groups nested declarations under a name: module m { ... }
type ModuleDecl struct {
	Name         string
	Declarations []Stmt
}

// ImportStmt imports a module by name: import io;
type ImportStmt struct {
	Module string
}

// ReturnStmt returns from the enclosing function. Value is nil for a bare
// return;
type ReturnStmt struct {
	Value Expr
}

// ExpressionStmt is an expression evaluated for its effect: f(x);
type ExpressionStmt struct {
	Expr Expr
}

func (*VariableDecl) node()   {}
func (*FunctionDecl) node()   {}
func (*ClassDecl) node()      {}
func (*ModuleDecl) node()     {}
func (*ImportStmt) node()     {}
func (*ReturnStmt) node()     {}
func (*ExpressionStmt) node() {}

func (*VariableDecl) stmtNode()   {}
func (*FunctionDecl) stmtNode()   {}
func (*ClassDecl) stmtNode()      {}
func (*ModuleDecl) stmtNode()     {}
func (*ImportStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()     {}
func (*ExpressionStmt) stmtNode() {}
