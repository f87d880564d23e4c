package lexer

import "fmt"

// ErrorKind is the closed set of lexical problems the lexer can recover from.
//
// Every kind maps to a stable code, a one-line message and a short label.
// Renderers rely on that mapping, so the strings below are part of the
// lexer's contract and must not change.
type ErrorKind interface {
	// Code is the stable machine-checkable code, e.g. "E004".
	Code() string
	// Message is the one-line human description.
	Message() string
	// Label is the short text placed under the offending source.
	Label() string

	errorKind()
}

// UnexpectedCharacter is a character that cannot start any token.
type UnexpectedCharacter struct {
	Char rune
}

// InvalidDecimal is a number with a decimal point but no fractional digits.
type InvalidDecimal struct{}

// InvalidOperator is a run of operator characters that is not a known operator.
type InvalidOperator struct {
	Text string
}

// InvalidEscape is a backslash followed by an unsupported character in a string.
type InvalidEscape struct {
	Char rune
}

// UnterminatedString is a string literal with no closing quote.
type UnterminatedString struct{}

// UnterminatedBlockComment is a /* comment with no matching */.
type UnterminatedBlockComment struct{}

// UnterminatedEscapeSequence is a backslash at the very end of the input.
type UnterminatedEscapeSequence struct{}

func (UnexpectedCharacter) Code() string        { return "E000" }
func (InvalidDecimal) Code() string             { return "E001" }
func (InvalidOperator) Code() string            { return "E002" }
func (InvalidEscape) Code() string              { return "E003" }
func (UnterminatedString) Code() string         { return "E004" }
func (UnterminatedBlockComment) Code() string   { return "E005" }
func (UnterminatedEscapeSequence) Code() string { return "E006" }

func (k UnexpectedCharacter) Message() string {
	return fmt.Sprintf("Unexpected character: '%c'", k.Char)
}
func (InvalidDecimal) Message() string { return "Invalid decimal number" }
func (k InvalidOperator) Message() string {
	return "Invalid operator: " + k.Text
}
func (k InvalidEscape) Message() string {
	return fmt.Sprintf("Invalid escape sequence: \\%c", k.Char)
}
func (UnterminatedString) Message() string         { return "Unterminated string literal" }
func (UnterminatedBlockComment) Message() string   { return "Unterminated block comment" }
func (UnterminatedEscapeSequence) Message() string { return "Unterminated escape sequence" }

func (UnexpectedCharacter) Label() string        { return "Unexpected character" }
func (InvalidDecimal) Label() string             { return "Expected digits after decimal point" }
func (InvalidOperator) Label() string            { return "Invalid operator" }
func (InvalidEscape) Label() string              { return "Invalid escape sequence" }
func (UnterminatedString) Label() string         { return "Unterminated string" }
func (UnterminatedBlockComment) Label() string   { return "Unterminated block comment" }
func (UnterminatedEscapeSequence) Label() string { return "Unterminated escape sequence" }

func (UnexpectedCharacter) errorKind()        {}
func (InvalidDecimal) errorKind()             {}
func (InvalidOperator) errorKind()            {}
func (InvalidEscape) errorKind()              {}
func (UnterminatedString) errorKind()         {}
func (UnterminatedBlockComment) errorKind()   {}
func (UnterminatedEscapeSequence) errorKind() {}

// DiagnosticError is one recovered lexical problem and the source it covers.
type DiagnosticError struct {
	Kind ErrorKind
	Span Span
}

// NewDiagnostic pairs a kind with its span.
func NewDiagnostic(kind ErrorKind, span Span) DiagnosticError {
	return DiagnosticError{Kind: kind, Span: span}
}

// Error implements the error interface as "line:col: [code] message".
func (d DiagnosticError) Error() string {
	return d.Span.Start.String() + ": [" + d.Kind.Code() + "] " + d.Kind.Message()
}

// Diagnostics returns every diagnostic attached to tokens, in stream order.
func Diagnostics(tokens []Token) []DiagnosticError {
	var out []DiagnosticError
	for _, tok := range tokens {
		out = append(out, tok.Errors...)
	}
	return out
}
