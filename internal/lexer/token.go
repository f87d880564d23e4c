package lexer

// TokenType classifies a token.
//
// The payload of a variant (number text, identifier name, decoded string)
// lives in Token.Lexeme. The message of an error variant is Token.Message.
type TokenType int

// Token type enumeration. Tokens are grouped as literals and names,
// punctuation, operators, and the error placeholder.
const (
	// TokenError is emitted for input that could not be lexed. The token's
	// Errors field explains why. Lexeme holds the best-effort text: the raw
	// source run, or the partially decoded value of an unterminated string.
	TokenError TokenType = iota

	// Literals and names

	// TokenNumber holds the raw digits, e.g. "3.14". The numeric value is
	// computed by the parser.
	TokenNumber
	// TokenIdentifier is a name that is not reserved.
	TokenIdentifier
	// TokenKeyword is a reserved word; Lexeme says which one.
	TokenKeyword
	// TokenString holds the decoded string value with escapes resolved.
	TokenString

	// Punctuation

	TokenSemicolon  // ;
	TokenColon      // :
	TokenLeftParen  // (
	TokenRightParen // )
	TokenLeftBrace  // {
	TokenRightBrace // }
	TokenComma      // ,
	TokenDot        // .

	// Operators

	TokenEqual        // =
	TokenEqualEqual   // ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenPlus         // +
	TokenPlusEqual    // +=
	TokenMinus        // -
	TokenMinusEqual   // -=
	TokenArrow        // ->
	TokenStar         // *
	TokenSlash        // /
	TokenModulo       // %
	TokenBang         // !
	TokenAnd          // &&
	TokenOr           // ||
	TokenBitwiseAnd   // &
	TokenBitwiseOr    // |
	TokenBitwiseXor   // ^
)

// Token is a single lexical unit.
//
// Tokens are produced once by the lexer and never modified. A token with a
// non-empty Errors list still has a best-effort Type so later stages can keep
// going.
type Token struct {
	Type   TokenType
	Lexeme string
	Span   Span
	Errors []DiagnosticError
}

// String returns "TYPE(lexeme) at line:col", for debugging and test output.
func (t Token) String() string {
	return t.Type.String() + "(" + t.Lexeme + ") at " + t.Span.Start.String()
}

// Message returns the message of the first recovered diagnostic, or "" for a
// clean token.
func (t Token) Message() string {
	if len(t.Errors) == 0 {
		return ""
	}
	return t.Errors[0].Kind.Message()
}

// HasErrors reports whether any diagnostics were recovered for this token.
func (t Token) HasErrors() bool {
	return len(t.Errors) > 0
}

var tokenNames = [...]string{
	TokenError:        "ERROR",
	TokenNumber:       "NUMBER",
	TokenIdentifier:   "IDENTIFIER",
	TokenKeyword:      "KEYWORD",
	TokenString:       "STRING",
	TokenSemicolon:    "SEMICOLON",
	TokenColon:        "COLON",
	TokenLeftParen:    "LPAREN",
	TokenRightParen:   "RPAREN",
	TokenLeftBrace:    "LBRACE",
	TokenRightBrace:   "RBRACE",
	TokenComma:        "COMMA",
	TokenDot:          "DOT",
	TokenEqual:        "EQUAL",
	TokenEqualEqual:   "EQUALEQUAL",
	TokenNotEqual:     "NOTEQUAL",
	TokenLess:         "LESS",
	TokenLessEqual:    "LESSEQUAL",
	TokenGreater:      "GREATER",
	TokenGreaterEqual: "GREATEREQUAL",
	TokenPlus:         "PLUS",
	TokenPlusEqual:    "PLUSEQUAL",
	TokenMinus:        "MINUS",
	TokenMinusEqual:   "MINUSEQUAL",
	TokenArrow:        "ARROW",
	TokenStar:         "STAR",
	TokenSlash:        "SLASH",
	TokenModulo:       "MODULO",
	TokenBang:         "BANG",
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenBitwiseAnd:   "BITAND",
	TokenBitwiseOr:    "BITOR",
	TokenBitwiseXor:   "BITXOR",
}

// String returns the upper-case name of the token type.
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) && tokenNames[tt] != "" {
		return tokenNames[tt]
	}
	return "UNKNOWN"
}

// IsOperator reports whether tt is one of the operator tokens.
func (tt TokenType) IsOperator() bool {
	return tt >= TokenEqual && tt <= TokenBitwiseXor
}

// IsPunctuation reports whether tt is a single-character punctuation token.
func (tt TokenType) IsPunctuation() bool {
	return tt >= TokenSemicolon && tt <= TokenDot
}

// keywords is the fixed reserved-word set. It is read-only after init.
var keywords = map[string]struct{}{
	"let":    {},
	"var":    {},
	"type":   {},
	"if":     {},
	"else":   {},
	"return": {},
	"fn":     {},
	"class":  {},
	"rec":    {},
	"module": {},
	"import": {},
	"true":   {},
	"false":  {},
}

// IsKeyword reports whether text is a reserved word. Matching is on the exact
// full text, so "letVar" is not a keyword.
func IsKeyword(text string) bool {
	_, ok := keywords[text]
	return ok
}

// LookupWord classifies an identifier-shaped word.
func LookupWord(text string) TokenType {
	if IsKeyword(text) {
		return TokenKeyword
	}
	return TokenIdentifier
}

// operators maps every valid operator lexeme to its token type. The lexer
// consumes a maximal run of operator characters and looks the whole run up
// here.
var operators = map[string]TokenType{
	"=":  TokenEqual,
	"==": TokenEqualEqual,
	"!=": TokenNotEqual,
	"!":  TokenBang,
	"<":  TokenLess,
	"<=": TokenLessEqual,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
	"+":  TokenPlus,
	"+=": TokenPlusEqual,
	"-":  TokenMinus,
	"-=": TokenMinusEqual,
	"->": TokenArrow,
	"*":  TokenStar,
	"/":  TokenSlash,
	"%":  TokenModulo,
	"&&": TokenAnd,
	"||": TokenOr,
	"&":  TokenBitwiseAnd,
	"|":  TokenBitwiseOr,
	"^":  TokenBitwiseXor,
}

// LookupOperator returns the token type for an operator lexeme.
func LookupOperator(text string) (TokenType, bool) {
	tt, ok := operators[text]
	return tt, ok
}

// punctuation maps the fixed single-character tokens.
var punctuation = map[rune]TokenType{
	';': TokenSemicolon,
	':': TokenColon,
	'(': TokenLeftParen,
	')': TokenRightParen,
	'{': TokenLeftBrace,
	'}': TokenRightBrace,
	',': TokenComma,
	'.': TokenDot,
}
