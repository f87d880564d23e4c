package lexer

import (
	"iter"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer scans source text into tokens.
//
// A Lexer is consumed by iteration: it holds a single forward cursor and
// cannot be rewound. Lexical errors never stop the scan. They are attached
// to the token being scanned and the lexer moves on, so one pass reports
// every problem in the input.
//
// A Lexer is not safe for concurrent use, but independent lexers share no
// state and may run in parallel.
type Lexer struct {
	// source is the complete input. Keeping it in memory makes multi-rune
	// lookahead and span slicing trivial.
	source string

	// pos is the cursor: the position of the next unread rune.
	pos Position
}

// New creates a Lexer positioned at the start of source.
func New(source string) *Lexer {
	return &Lexer{
		source: source,
		pos:    StartPosition,
	}
}

// Tokenize lexes the whole of source and returns every token.
func Tokenize(source string) []Token {
	return slices.Collect(New(source).All())
}

// All returns the remaining tokens as a lazy sequence. Each step performs a
// bounded amount of scanning. Iterating a second time yields nothing new once
// the input is exhausted.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Next scans and returns the next token. It reports false once the input is
// exhausted; whitespace and comments are never returned as tokens.
func (l *Lexer) Next() (Token, bool) {
	if tok, ok := l.skipTrivia(); ok {
		return tok, true
	}
	if l.isAtEnd() {
		return Token{}, false
	}

	start := l.pos
	ch := l.advance()

	switch {
	case isDigit(ch):
		return l.scanNumber(start), true
	case isIdentStart(ch):
		return l.scanIdentifier(start), true
	case isOperatorChar(ch):
		return l.scanOperator(start), true
	case ch == '"':
		return l.scanString(start), true
	}

	if tt, ok := punctuation[ch]; ok {
		return l.makeToken(tt, start), true
	}

	return l.errorToken(start, UnexpectedCharacter{Char: ch}), true
}

// Pos returns the cursor position.
func (l *Lexer) Pos() Position {
	return l.pos
}

// advance consumes one rune and moves the cursor past it.
func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.pos.Offset:])
	l.pos = l.pos.Advance(ch, size)
	return ch
}

// peek returns the next rune without consuming it, or 0 at end of input.
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.pos.Offset:])
	return ch
}

// peekNext returns the rune after the next one, or 0 if there is none.
func (l *Lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos.Offset:])
	if l.pos.Offset+size >= len(l.source) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.pos.Offset+size:])
	return ch
}

func (l *Lexer) isAtEnd() bool {
	return l.pos.Offset >= len(l.source)
}

// skipTrivia skips whitespace and comments. An unterminated block comment
// cannot be skipped silently, so it comes back as an error token.
func (l *Lexer) skipTrivia() (Token, bool) {
	for !l.isAtEnd() {
		ch := l.peek()
		switch {
		case unicode.IsSpace(ch):
			l.advance()
		case ch == '/' && l.peekNext() == '/':
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		case ch == '/' && l.peekNext() == '*':
			if tok, closed := l.skipBlockComment(); !closed {
				return tok, true
			}
		default:
			return Token{}, false
		}
	}
	return Token{}, false
}

// skipBlockComment consumes a /* ... */ comment. Comments nest, so code that
// already contains comments can be commented out.
func (l *Lexer) skipBlockComment() (Token, bool) {
	start := l.pos
	l.advance()
	l.advance()

	depth := 1
	for !l.isAtEnd() && depth > 0 {
		switch {
		case l.peek() == '/' && l.peekNext() == '*':
			l.advance()
			l.advance()
			depth++
		case l.peek() == '*' && l.peekNext() == '/':
			l.advance()
			l.advance()
			depth--
		default:
			l.advance()
		}
	}

	if depth > 0 {
		return l.errorToken(start, UnterminatedBlockComment{}), false
	}
	return Token{}, true
}

// scanNumber scans digits with an optional fractional part. The text is kept
// as written; converting it to a value is the parser's job.
func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' {
		l.advance()
		if !isDigit(l.peek()) {
			return l.errorToken(start, InvalidDecimal{})
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	return l.makeToken(TokenNumber, start)
}

// scanIdentifier scans an ASCII identifier and classifies it as a keyword or
// a plain name.
func (l *Lexer) scanIdentifier(start Position) Token {
	for isIdentPart(l.peek()) {
		l.advance()
	}
	text := l.source[start.Offset:l.pos.Offset]
	return l.makeToken(LookupWord(text), start)
}

// scanOperator consumes the longest run of operator characters and validates
// the run as a whole. An unknown run is reported once; it is not split and
// retried.
func (l *Lexer) scanOperator(start Position) Token {
	for isOperatorChar(l.peek()) && !isCommentStart(l.peek(), l.peekNext()) {
		l.advance()
	}

	text := l.source[start.Offset:l.pos.Offset]
	tt, ok := LookupOperator(text)
	if !ok {
		return l.errorToken(start, InvalidOperator{Text: text})
	}
	return l.makeToken(tt, start)
}

// scanString scans a double-quoted string and decodes its escapes.
//
// Bad escapes are reported and the escaped character is kept as-is, so the
// token still carries the best decoded value available.
func (l *Lexer) scanString(start Position) Token {
	var value strings.Builder
	var errs []DiagnosticError

scan:
	for !l.isAtEnd() {
		escapeStart := l.pos
		ch := l.advance()

		switch ch {
		case '"':
			return Token{
				Type:   TokenString,
				Lexeme: value.String(),
				Span:   NewSpan(start, l.pos),
				Errors: errs,
			}

		case '\\':
			if l.isAtEnd() {
				errs = append(errs, NewDiagnostic(UnterminatedEscapeSequence{}, NewSpan(escapeStart, l.pos)))
				break scan
			}
			escaped := l.advance()
			switch escaped {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case 'r':
				value.WriteByte('\r')
			case '\\':
				value.WriteByte('\\')
			case '"':
				value.WriteByte('"')
			default:
				errs = append(errs, NewDiagnostic(InvalidEscape{Char: escaped}, NewSpan(escapeStart, l.pos)))
				value.WriteRune(escaped)
			}

		default:
			value.WriteRune(ch)
		}
	}

	span := NewSpan(start, l.pos)
	errs = append(errs, NewDiagnostic(UnterminatedString{}, span))
	return Token{
		Type:   TokenError,
		Lexeme: value.String(),
		Span:   span,
		Errors: errs,
	}
}

// makeToken builds a clean token whose lexeme is the source text from start
// to the cursor.
func (l *Lexer) makeToken(tt TokenType, start Position) Token {
	return Token{
		Type:   tt,
		Lexeme: l.source[start.Offset:l.pos.Offset],
		Span:   NewSpan(start, l.pos),
	}
}

// errorToken builds an error token covering start to the cursor, carrying a
// single diagnostic with the same span.
func (l *Lexer) errorToken(start Position, kind ErrorKind) Token {
	span := NewSpan(start, l.pos)
	return Token{
		Type:   TokenError,
		Lexeme: l.source[start.Offset:l.pos.Offset],
		Span:   span,
		Errors: []DiagnosticError{NewDiagnostic(kind, span)},
	}
}

// Character classes. Numbers and names are ASCII only.

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isOperatorChar(ch rune) bool {
	return ch != 0 && strings.ContainsRune("+-*/=<>!&|^%", ch)
}

func isCommentStart(ch, next rune) bool {
	return ch == '/' && (next == '/' || next == '*')
}
