// Package report renders diagnostics as annotated source listings:
//
//	error[E004]: Unterminated string literal
//	 --> main.exx:2:1
//	  |
//	2 | "aaaaa
//	  | ^^^^^^ Unterminated string
//
// It accepts lexer diagnostics and parser errors through one Diagnostic
// shape.
package report

import (
	"errors"

	"github.com/hassan/exx/internal/frontend"
	"github.com/hassan/exx/internal/lexer"
	"github.com/hassan/exx/internal/parser"
)

// Codes for errors that do not come from the lexer's ErrorKind table.
const (
	CodeParse       = "P000"
	CodeUnsupported = "P001"
)

// Diagnostic is one renderable problem.
type Diagnostic struct {
	Code    string
	Message string
	Label   string
	Span    lexer.Span
}

// FromLexer converts a lexer diagnostic using its kind's code, message and
// label.
func FromLexer(d lexer.DiagnosticError) Diagnostic {
	return Diagnostic{
		Code:    d.Kind.Code(),
		Message: d.Kind.Message(),
		Label:   d.Kind.Label(),
		Span:    d.Span,
	}
}

// FromParseError converts the parser's error.
func FromParseError(e *parser.ParseError) Diagnostic {
	return Diagnostic{
		Code:    CodeParse,
		Message: e.Message,
		Label:   "parsing stopped here",
		Span:    e.Span,
	}
}

// FromAdaptError converts a token the parser could not accept.
func FromAdaptError(e *parser.AdaptError) Diagnostic {
	if e.Token.HasErrors() {
		return FromLexer(e.Token.Errors[0])
	}
	return Diagnostic{
		Code:    CodeUnsupported,
		Message: "Unsupported operator: " + e.Token.Lexeme,
		Label:   "not valid in an expression",
		Span:    e.Token.Span,
	}
}

// Collect returns every diagnostic in a front-end result: the lexical
// diagnostics in source order, then the parse error if there is one.
func Collect(res *frontend.Result) []Diagnostic {
	out := make([]Diagnostic, 0, len(res.Diagnostics)+1)
	for _, d := range res.Diagnostics {
		out = append(out, FromLexer(d))
	}

	var parseErr *parser.ParseError
	var adaptErr *parser.AdaptError
	switch {
	case res.ParseErr == nil:
	case errors.As(res.ParseErr, &parseErr):
		out = append(out, FromParseError(parseErr))
	case errors.As(res.ParseErr, &adaptErr):
		out = append(out, FromAdaptError(adaptErr))
	default:
		out = append(out, Diagnostic{Code: CodeParse, Message: res.ParseErr.Error()})
	}
	return out
}
