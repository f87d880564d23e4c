package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hassan/exx/internal/lexer"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestAdapt_Kinds(t *testing.T) {
	tests := []struct {
		source string
		want   []TokenKind
	}{
		{"", []TokenKind{KindEOF}},
		{"let var fn rec class type module import return if else", []TokenKind{
			KindLet, KindVar, KindFn, KindRec, KindClass, KindType, KindModule,
			KindImport, KindReturn, KindIf, KindElse, KindEOF,
		}},
		{"( ) { } , : ; -> .", []TokenKind{
			KindLeftParen, KindRightParen, KindLeftBrace, KindRightBrace,
			KindComma, KindColon, KindSemicolon, KindArrow, KindDot, KindEOF,
		}},
		{"+ - * / % == != < <= > >= && || ! =", []TokenKind{
			KindPlus, KindMinus, KindStar, KindSlash, KindPercent,
			KindEqualEqual, KindNotEqual, KindLess, KindLessEqual,
			KindGreater, KindGreaterEqual, KindAnd, KindOr, KindNot, KindEqual, KindEOF,
		}},
		{`x 1.5 "s" true false`, []TokenKind{
			KindIdentifier, KindNumber, KindString, KindBoolean, KindBoolean, KindEOF,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens, err := Adapt(lexer.Tokenize(tt.source), AdaptOptions{})
			if err != nil {
				t.Fatalf("Adapt() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, kinds(tokens)); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdapt_PayloadAndSpans(t *testing.T) {
	source := `name 42 "a\tb" false`
	lexed := lexer.Tokenize(source)

	tokens, err := Adapt(lexed, AdaptOptions{})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	wantText := []string{"name", "42", "a\tb", "false", ""}
	for i, tok := range tokens {
		if tok.Text != wantText[i] {
			t.Errorf("token %d: Text = %q, want %q", i, tok.Text, wantText[i])
		}
	}
	for i, tok := range lexed {
		if tokens[i].Span != tok.Span {
			t.Errorf("token %d: span %v not carried over, got %v", i, tok.Span, tokens[i].Span)
		}
	}

	eof := tokens[len(tokens)-1]
	if eof.Span.Start.Offset != len(source) || eof.Span.Len() != 0 {
		t.Errorf("EOF span = [%d,%d), want empty span at %d",
			eof.Span.Start.Offset, eof.Span.End.Offset, len(source))
	}
}

func TestAdapt_StrictRejectsErrorTokens(t *testing.T) {
	_, err := Adapt(lexer.Tokenize(`let s = "abc`), AdaptOptions{})

	var adaptErr *AdaptError
	if !errors.As(err, &adaptErr) {
		t.Fatalf("expected *AdaptError, got %v", err)
	}
	if adaptErr.Token.Type != lexer.TokenError {
		t.Errorf("expected the error token, got %v", adaptErr.Token)
	}
	if want := "1:9: cannot parse invalid token: Unterminated string literal"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAdapt_DiagnosticsOnMappableTokens(t *testing.T) {
	source := `x = "a\qb";`

	t.Run("strict", func(t *testing.T) {
		_, err := Adapt(lexer.Tokenize(source), AdaptOptions{})

		var adaptErr *AdaptError
		if !errors.As(err, &adaptErr) {
			t.Fatalf("expected *AdaptError, got %v", err)
		}
		if adaptErr.Token.Type != lexer.TokenString {
			t.Errorf("expected the string token, got %v", adaptErr.Token)
		}
		if !strings.HasPrefix(err.Error(), "1:5: cannot parse invalid token: ") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("lenient", func(t *testing.T) {
		tokens, err := Adapt(lexer.Tokenize(source), AdaptOptions{Lenient: true})
		if err != nil {
			t.Fatalf("Adapt() error = %v", err)
		}
		if tokens[2].Kind != KindString || tokens[2].Text != "aqb" {
			t.Errorf("expected the recovered string, got %v", tokens[2])
		}
	})
}

func TestAdapt_StrictRejectsUnusedOperators(t *testing.T) {
	for _, op := range []string{"+=", "-=", "&", "|", "^"} {
		t.Run(op, func(t *testing.T) {
			_, err := Adapt(lexer.Tokenize("x "+op+" y"), AdaptOptions{})

			var adaptErr *AdaptError
			if !errors.As(err, &adaptErr) {
				t.Fatalf("expected *AdaptError, got %v", err)
			}
			if !strings.Contains(err.Error(), "not supported by the parser") {
				t.Errorf("unexpected message %q", err.Error())
			}
		})
	}
}

func TestAdapt_LenientSubstitutesUnknown(t *testing.T) {
	source := "let x = @;"
	tokens, err := Adapt(lexer.Tokenize(source), AdaptOptions{Lenient: true})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	want := []TokenKind{KindLet, KindIdentifier, KindEqual, KindIdentifier, KindSemicolon, KindEOF}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if tokens[3].Text != UnknownIdentifier {
		t.Errorf("expected sentinel %q, got %q", UnknownIdentifier, tokens[3].Text)
	}
	if got := tokens[3].Span.Slice(source); got != "@" {
		t.Errorf("sentinel should keep the token span, covers %q", got)
	}
}

func TestToken_String(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: KindIdentifier, Text: "x"}, "identifier(x)"},
		{Token{Kind: KindNumber, Text: "1.5"}, "number(1.5)"},
		{Token{Kind: KindString, Text: "hi"}, "string(hi)"},
		{Token{Kind: KindBoolean, Text: "true"}, "boolean(true)"},
		{Token{Kind: KindRightParen}, "RightParen"},
		{Token{Kind: KindEOF}, "EOF"},
		{Token{Kind: TokenKind(500)}, "TokenKind(500)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
