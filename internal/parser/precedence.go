package parser

import "github.com/hassan/exx/internal/parser/ast"

// Precedence represents operator binding strength. A higher number binds
// tighter.
//
// PRECEDENCE RULES (from lowest to highest):
// 1. Logical OR (||)
// 2. Logical AND (&&)
// 3. Equality (==, !=)
// 4. Comparison (<, <=, >, >=)
// 5. Addition/Subtraction (+, -)
// 6. Multiplication/Division (*, /, %)
//
// Prefix operators (!, -) and postfix calls and property access bind
// tighter than every binary level. They have no entry here: unary and
// postfix parse them directly.
//
// Every binary level is left-associative: a - b - c is (a - b) - c.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecOr                    // ||
	PrecAnd                   // &&
	PrecEquality              // ==, !=
	PrecComparison            // <, <=, >, >=
	PrecTerm                  // +, -
	PrecFactor                // *, /, %
)

// getPrecedence returns the binary precedence of a token kind, or PrecNone
// when the kind is not a binary operator.
func getPrecedence(kind TokenKind) Precedence {
	switch kind {
	case KindOr:
		return PrecOr

	case KindAnd:
		return PrecAnd

	case KindEqualEqual, KindNotEqual:
		return PrecEquality

	case KindLess, KindLessEqual, KindGreater, KindGreaterEqual:
		return PrecComparison

	case KindPlus, KindMinus:
		return PrecTerm

	case KindStar, KindSlash, KindPercent:
		return PrecFactor

	default:
		return PrecNone
	}
}

// binaryOps maps each binary operator kind to its AST operator. Its key set
// is exactly the kinds for which getPrecedence is not PrecNone.
var binaryOps = map[TokenKind]ast.BinaryOp{
	KindOr:           ast.OpOr,
	KindAnd:          ast.OpAnd,
	KindEqualEqual:   ast.OpEqualEqual,
	KindNotEqual:     ast.OpNotEqual,
	KindLess:         ast.OpLess,
	KindLessEqual:    ast.OpLessEqual,
	KindGreater:      ast.OpGreater,
	KindGreaterEqual: ast.OpGreaterEqual,
	KindPlus:         ast.OpAdd,
	KindMinus:        ast.OpSub,
	KindStar:         ast.OpMul,
	KindSlash:        ast.OpDiv,
	KindPercent:      ast.OpMod,
}

// unaryOps maps prefix operator kinds to AST operators.
var unaryOps = map[TokenKind]ast.UnaryOp{
	KindNot:   ast.OpNot,
	KindMinus: ast.OpNegate,
}
