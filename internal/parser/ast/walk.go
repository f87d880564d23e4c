package ast

import "fmt"

// Inspect traverses the tree rooted at node in depth-first, source order. It
// calls f(node) first; if f returns true, Inspect visits each child of node
// and then calls f(nil).
//
// Parameters are visited as *Parameter nodes. Literal values are not nodes
// and are reached only through their LiteralExpr.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	// Statements
	case *VariableDecl:
		inspectType(n.Type, f)
		inspectExpr(n.Initializer, f)
	case *FunctionDecl:
		inspectParams(n.Params, f)
		inspectType(n.ReturnType, f)
		inspectStmts(n.Body, f)
	case *ClassDecl:
		for _, field := range n.Fields {
			Inspect(field, f)
		}
		for _, method := range n.Methods {
			Inspect(method, f)
		}
	case *ModuleDecl:
		inspectStmts(n.Declarations, f)
	case *ImportStmt:
		// leaf
	case *ReturnStmt:
		inspectExpr(n.Value, f)
	case *ExpressionStmt:
		inspectExpr(n.Expr, f)

	// Expressions
	case *BinaryExpr:
		inspectExpr(n.Left, f)
		inspectExpr(n.Right, f)
	case *UnaryExpr:
		inspectExpr(n.Operand, f)
	case *LiteralExpr, *IdentifierExpr:
		// leaves
	case *GroupingExpr:
		inspectExpr(n.Inner, f)
	case *BlockExpr:
		inspectStmts(n.Body, f)
	case *PropertyAccessExpr:
		inspectExpr(n.Object, f)
	case *CallExpr:
		inspectExpr(n.Callee, f)
		for _, arg := range n.Args {
			inspectExpr(arg, f)
		}
	case *LambdaExpr:
		inspectParams(n.Params, f)
		inspectExpr(n.Body, f)
	case *StructLiteralExpr:
		for _, field := range n.Fields {
			inspectExpr(field.Value, f)
		}

	// Types
	case *SimpleType:
		// leaf
	case *FunctionType:
		for _, param := range n.Params {
			inspectType(param, f)
		}
		inspectType(n.Return, f)
	case *GenericType:
		for _, arg := range n.Args {
			inspectType(arg, f)
		}

	case *Parameter:
		inspectType(n.Type, f)

	default:
		panic(fmt.Sprintf("ast.Inspect: unexpected node type %T", n))
	}

	f(nil)
}

// Optional children (a missing initializer or return type) are nil and are
// skipped without a call to f.

func inspectExpr(e Expr, f func(Node) bool) {
	if e != nil {
		Inspect(e, f)
	}
}

func inspectType(t Type, f func(Node) bool) {
	if t != nil {
		Inspect(t, f)
	}
}

func inspectStmts(stmts []Stmt, f func(Node) bool) {
	for _, s := range stmts {
		Inspect(s, f)
	}
}

func inspectParams(params []Parameter, f func(Node) bool) {
	for i := range params {
		Inspect(&params[i], f)
	}
}

// Count returns the number of nodes in the trees rooted at stmts.
func Count(stmts []Stmt) int {
	n := 0
	for _, s := range stmts {
		Inspect(s, func(node Node) bool {
			if node != nil {
				n++
			}
			return true
		})
	}
	return n
}
