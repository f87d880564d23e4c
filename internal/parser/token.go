package parser

import (
	"strconv"

	"github.com/hassan/exx/internal/lexer"
)

// TokenKind is the parser-facing token vocabulary.
//
// It is narrower than lexer.TokenType: keywords get their own kinds, true and
// false collapse into KindBoolean, and there is an explicit end marker.
type TokenKind int

const (
	KindEOF TokenKind = iota

	// Keywords
	KindLet
	KindVar
	KindFn
	KindRec
	KindClass
	KindType
	KindModule
	KindImport
	KindReturn
	KindIf
	KindElse

	// Punctuation
	KindLeftParen
	KindRightParen
	KindLeftBrace
	KindRightBrace
	KindComma
	KindColon
	KindSemicolon
	KindArrow
	KindDot

	// Operators
	KindPlus
	KindMinus
	KindStar
	KindSlash
	KindPercent
	KindEqualEqual
	KindNotEqual
	KindLess
	KindLessEqual
	KindGreater
	KindGreaterEqual
	KindAnd
	KindOr
	KindNot
	KindEqual

	// Values. Token.Text carries the payload.
	KindIdentifier
	KindNumber
	KindString
	KindBoolean
)

var kindNames = [...]string{
	KindEOF:          "EOF",
	KindLet:          "Let",
	KindVar:          "Var",
	KindFn:           "Fn",
	KindRec:          "Rec",
	KindClass:        "Class",
	KindType:         "Type",
	KindModule:       "Module",
	KindImport:       "Import",
	KindReturn:       "Return",
	KindIf:           "If",
	KindElse:         "Else",
	KindLeftParen:    "LeftParen",
	KindRightParen:   "RightParen",
	KindLeftBrace:    "LeftBrace",
	KindRightBrace:   "RightBrace",
	KindComma:        "Comma",
	KindColon:        "Colon",
	KindSemicolon:    "Semicolon",
	KindArrow:        "Arrow",
	KindDot:          "Dot",
	KindPlus:         "Plus",
	KindMinus:        "Minus",
	KindStar:         "Star",
	KindSlash:        "Slash",
	KindPercent:      "Percent",
	KindEqualEqual:   "EqualEqual",
	KindNotEqual:     "NotEqual",
	KindLess:         "Less",
	KindLessEqual:    "LessEqual",
	KindGreater:      "Greater",
	KindGreaterEqual: "GreaterEqual",
	KindAnd:          "And",
	KindOr:           "Or",
	KindNot:          "Not",
	KindEqual:        "Equal",
	KindIdentifier:   "Identifier",
	KindNumber:       "Number",
	KindString:       "String",
	KindBoolean:      "Boolean",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token is one parser input token.
//
// Text holds the name of an Identifier, the raw digits of a Number, the
// decoded value of a String and "true" or "false" for a Boolean. It is empty
// for every other kind. Span is the source range of the lexer token the
// parser token was made from, so parse errors can point at the source.
type Token struct {
	Kind TokenKind
	Text string
	Span lexer.Span
}

// String renders the token the way parse errors quote it: identifier(x),
// number(1), string(s), or the kind name.
func (t Token) String() string {
	switch t.Kind {
	case KindIdentifier:
		return "identifier(" + t.Text + ")"
	case KindNumber:
		return "number(" + t.Text + ")"
	case KindString:
		return "string(" + t.Text + ")"
	case KindBoolean:
		return "boolean(" + t.Text + ")"
	default:
		return t.Kind.String()
	}
}
