package syntax

import "pl0c/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.
	Value string

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_CONST = iota
	TOK_TYPE
	TOK_VAR
	TOK_PROCEDURE

	TOK_CALL
	TOK_BEGIN
	TOK_END
	TOK_IF
	TOK_THEN
	TOK_ELSE
	TOK_WHILE
	TOK_DO
	TOK_FOR
	TOK_TO
	TOK_READ
	TOK_WRITE

	TOK_ARRAY
	TOK_OF
	TOK_PRED
	TOK_SUCC

	TOK_IDENT
	TOK_NUMBER

	TOK_ASSIGN
	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_LTEQ
	TOK_GT
	TOK_GTEQ
	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_SLASH

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_SEMICOLON
	TOK_COLON
	TOK_COMMA
	TOK_PERIOD
	TOK_RANGE

	TOK_EOF
)

// keywords maps the reserved words of the language to their token kinds.
var keywords = map[string]int{
	"const":     TOK_CONST,
	"type":      TOK_TYPE,
	"var":       TOK_VAR,
	"procedure": TOK_PROCEDURE,
	"call":      TOK_CALL,
	"begin":     TOK_BEGIN,
	"end":       TOK_END,
	"if":        TOK_IF,
	"then":      TOK_THEN,
	"else":      TOK_ELSE,
	"while":     TOK_WHILE,
	"do":        TOK_DO,
	"for":       TOK_FOR,
	"to":        TOK_TO,
	"read":      TOK_READ,
	"write":     TOK_WRITE,
	"array":     TOK_ARRAY,
	"of":        TOK_OF,
	"pred":      TOK_PRED,
	"succ":      TOK_SUCC,
}

// tokenKindNames maps token kinds to the names used in syntax errors.
var tokenKindNames = map[int]string{
	TOK_IDENT:     "identifier",
	TOK_NUMBER:    "number",
	TOK_ASSIGN:    "`:=`",
	TOK_EQ:        "`=`",
	TOK_NEQ:       "`<>`",
	TOK_LT:        "`<`",
	TOK_LTEQ:      "`<=`",
	TOK_GT:        "`>`",
	TOK_GTEQ:      "`>=`",
	TOK_PLUS:      "`+`",
	TOK_MINUS:     "`-`",
	TOK_STAR:      "`*`",
	TOK_SLASH:     "`/`",
	TOK_LPAREN:    "`(`",
	TOK_RPAREN:    "`)`",
	TOK_LBRACKET:  "`[`",
	TOK_RBRACKET:  "`]`",
	TOK_SEMICOLON: "`;`",
	TOK_COLON:     "`:`",
	TOK_COMMA:     "`,`",
	TOK_PERIOD:    "`.`",
	TOK_RANGE:     "`..`",
	TOK_EOF:       "end of file",
}

// tokenKindName returns a readable name for a token kind.
func tokenKindName(kind int) string {
	if name, ok := tokenKindNames[kind]; ok {
		return name
	}

	for word, kw := range keywords {
		if kw == kind {
			return "`" + word + "`"
		}
	}

	return "token"
}
