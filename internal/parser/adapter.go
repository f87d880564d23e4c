package parser

import (
	"fmt"

	"github.com/hassan/exx/internal/lexer"
)

// UnknownIdentifier is the identifier a lenient Adapt substitutes for tokens
// the parser has no kind for.
const UnknownIdentifier = "unknown"

// AdaptOptions controls how Adapt treats lexer tokens without a parser kind.
type AdaptOptions struct {
	// Lenient replaces unmappable tokens with Identifier("unknown") instead
	// of failing. Parsing can then continue past lexical errors, at the cost
	// of parse errors that may name a token the user never wrote.
	Lenient bool
}

// AdaptError reports a lexer token the parser cannot accept in strict mode:
// a token carrying lexical diagnostics (error tokens, strings with bad
// escapes), or an operator the grammar does not use (+=, -=, &, |, ^).
type AdaptError struct {
	Token lexer.Token
}

func (e *AdaptError) Error() string {
	if msg := e.Token.Message(); msg != "" {
		return fmt.Sprintf("%s: cannot parse invalid token: %s", e.Token.Span.Start, msg)
	}
	return fmt.Sprintf("%s: operator %q is not supported by the parser", e.Token.Span.Start, e.Token.Lexeme)
}

// Adapt maps lexer tokens to parser tokens and appends the KindEOF marker.
// Spans are carried over unchanged. The EOF token sits at the end of the last
// input token.
//
// By default the first unmappable token, or the first token carrying a
// diagnostic, stops the conversion with an *AdaptError. In lenient mode
// unmappable tokens become Identifier("unknown") and mappable tokens keep
// their kind despite their diagnostics.
func Adapt(tokens []lexer.Token, opts AdaptOptions) ([]Token, error) {
	out := make([]Token, 0, len(tokens)+1)
	end := lexer.StartPosition

	for _, tok := range tokens {
		pt, ok := adaptToken(tok)
		if !ok || tok.HasErrors() {
			if !opts.Lenient {
				return nil, &AdaptError{Token: tok}
			}
			if !ok {
				pt = Token{Kind: KindIdentifier, Text: UnknownIdentifier, Span: tok.Span}
			}
		}
		out = append(out, pt)
		end = tok.Span.End
	}

	out = append(out, Token{Kind: KindEOF, Span: lexer.NewSpan(end, end)})
	return out, nil
}

func adaptToken(tok lexer.Token) (Token, bool) {
	pt := Token{Span: tok.Span}

	switch tok.Type {
	case lexer.TokenIdentifier:
		pt.Kind, pt.Text = KindIdentifier, tok.Lexeme
	case lexer.TokenNumber:
		pt.Kind, pt.Text = KindNumber, tok.Lexeme
	case lexer.TokenString:
		pt.Kind, pt.Text = KindString, tok.Lexeme
	case lexer.TokenKeyword:
		kind, ok := keywordKinds[tok.Lexeme]
		if !ok {
			return Token{}, false
		}
		pt.Kind = kind
		if kind == KindBoolean {
			pt.Text = tok.Lexeme
		}
	default:
		kind, ok := symbolKinds[tok.Type]
		if !ok {
			return Token{}, false
		}
		pt.Kind = kind
	}

	return pt, true
}

var keywordKinds = map[string]TokenKind{
	"let":    KindLet,
	"var":    KindVar,
	"fn":     KindFn,
	"rec":    KindRec,
	"class":  KindClass,
	"type":   KindType,
	"module": KindModule,
	"import": KindImport,
	"return": KindReturn,
	"if":     KindIf,
	"else":   KindElse,
	"true":   KindBoolean,
	"false":  KindBoolean,
}

// symbolKinds covers punctuation and the operators the grammar uses.
// TokenError, +=, -= and the bitwise operators have no parser kind.
var symbolKinds = map[lexer.TokenType]TokenKind{
	lexer.TokenLeftParen:    KindLeftParen,
	lexer.TokenRightParen:   KindRightParen,
	lexer.TokenLeftBrace:    KindLeftBrace,
	lexer.TokenRightBrace:   KindRightBrace,
	lexer.TokenComma:        KindComma,
	lexer.TokenColon:        KindColon,
	lexer.TokenSemicolon:    KindSemicolon,
	lexer.TokenArrow:        KindArrow,
	lexer.TokenDot:          KindDot,
	lexer.TokenPlus:         KindPlus,
	lexer.TokenMinus:        KindMinus,
	lexer.TokenStar:         KindStar,
	lexer.TokenSlash:        KindSlash,
	lexer.TokenModulo:       KindPercent,
	lexer.TokenEqualEqual:   KindEqualEqual,
	lexer.TokenNotEqual:     KindNotEqual,
	lexer.TokenLess:         KindLess,
	lexer.TokenLessEqual:    KindLessEqual,
	lexer.TokenGreater:      KindGreater,
	lexer.TokenGreaterEqual: KindGreaterEqual,
	lexer.TokenAnd:          KindAnd,
	lexer.TokenOr:           KindOr,
	lexer.TokenBang:         KindNot,
	lexer.TokenEqual:        KindEqual,
}
