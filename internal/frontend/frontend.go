// Package frontend runs the lexer and parser over one source text and keeps
// their results apart.
//
// Lexical diagnostics and the parse error travel in separate fields of
// Result. Lexing always runs to the end of the input; parsing only runs when
// the lexer reported nothing, unless Options.ParseWithDiagnostics asks for a
// best-effort parse anyway.
package frontend

import (
	"io"
	"log/slog"

	"github.com/hassan/exx/internal/lexer"
	"github.com/hassan/exx/internal/parser"
	"github.com/hassan/exx/internal/parser/ast"
)

// Options configures Run.
type Options struct {
	// ParseWithDiagnostics parses even when the lexer reported diagnostics.
	// Unparsable tokens are then adapted leniently, which may produce parse
	// errors that mention the "unknown" placeholder identifier.
	ParseWithDiagnostics bool

	// Logger receives debug records at stage boundaries. Nil discards them.
	Logger *slog.Logger
}

// Result is everything one run produced.
type Result struct {
	Tokens      []lexer.Token
	Diagnostics []lexer.DiagnosticError

	// Program is the parsed tree. It is nil when parsing was skipped or
	// failed.
	Program []ast.Stmt

	// ParseErr is the parser's single error: a *parser.ParseError, or a
	// *parser.AdaptError for a token the grammar has no use for.
	ParseErr error

	// Parsed reports whether the parser ran at all.
	Parsed bool
}

// OK reports whether the source lexed cleanly and parsed.
func (r *Result) OK() bool {
	return len(r.Diagnostics) == 0 && r.Parsed && r.ParseErr == nil
}

// Run lexes and parses source.
func Run(source string, opts Options) *Result {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	res := &Result{Tokens: lexer.Tokenize(source)}
	res.Diagnostics = lexer.Diagnostics(res.Tokens)

	log.Debug("lexed source",
		"bytes", len(source),
		"tokens", len(res.Tokens),
		"diagnostics", len(res.Diagnostics),
	)

	if len(res.Diagnostics) > 0 && !opts.ParseWithDiagnostics {
		log.Debug("skipping parse after lexical errors")
		return res
	}

	res.Parsed = true
	tokens, err := parser.Adapt(res.Tokens, parser.AdaptOptions{Lenient: opts.ParseWithDiagnostics})
	if err != nil {
		res.ParseErr = err
		log.Debug("token adaptation failed", "error", err)
		return res
	}

	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		res.ParseErr = err
		log.Debug("parse failed", "error", err)
		return res
	}

	res.Program = program
	log.Debug("parsed program",
		"statements", len(program),
		"nodes", ast.Count(program),
	)
	return res
}
