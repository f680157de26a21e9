package syntax

import (
	"io"

	"pl0c/ast"
	"pl0c/report"
	"pl0c/syms"
)

// Parser is the recursive-descent parser for a source file.  It performs
// syntax analysis and AST generation, and builds the scope tree as it parses:
// declarations are processed in order, constants fold to their values, and
// variables receive their frame offsets.  The parser does not type-check
// statements or expressions; identifiers inside them are left unresolved for
// the static checker.
//
// All parsing functions assume that they begin with the parser centered on
// the first token of their production and must consume all tokens of their
// production, leaving the parser on the next token.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the source.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// scope is the scope declarations are currently entered into.
	scope *syms.Scope
}

// NewParser creates a new parser over the given reader.
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// Parse parses a whole program.  The main program is a special case of a
// procedure: its entry is pre-built here with the predefined scope as parent
// and static level 1.
//
//	program = block "." .
func (p *Parser) Parse() *ast.ProcedureDecl {
	p.next()

	mainEntry := syms.NewProcedureEntry("main", 1)
	mainScope := syms.NewScope(syms.NewPredefinedScope())
	mainScope.SetOwner(mainEntry)
	mainEntry.LocalScope = mainScope

	p.scope = mainScope

	start := p.tok.Span
	block := p.parseBlock()
	p.want(TOK_PERIOD)

	return &ast.ProcedureDecl{
		ASTBase: ast.NewASTBaseOver(start, block.Span()),
		Entry:   mainEntry,
		Block:   block,
	}
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	p.tok = p.lexer.NextToken()
}

// got returns whether the parser is on a token of the given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// gotOneOf returns whether the parser's current token kind is one of the
// given kinds.
func (p *Parser) gotOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// want consumes a token of the given kind, reporting a syntax error if the
// current token does not match.  It returns whether the token matched.
func (p *Parser) want(kind int) bool {
	if !p.got(kind) {
		report.ReportError(p.tok.Span, "expected %s but got %s",
			tokenKindName(kind), tokenKindName(p.tok.Kind))
		return false
	}

	p.next()
	return true
}

// wantIdent consumes an identifier token and returns its name and span.
func (p *Parser) wantIdent() (string, *report.TextSpan, bool) {
	if !p.got(TOK_IDENT) {
		report.ReportError(p.tok.Span, "expected identifier but got %s",
			tokenKindName(p.tok.Kind))
		return "", p.tok.Span, false
	}

	name, span := p.tok.Value, p.tok.Span
	p.next()
	return name, span, true
}

// skipTo advances the parser until it reaches one of the given token kinds or
// the end of the input.  Used to resynchronize after a syntax error.
func (p *Parser) skipTo(kinds ...int) {
	for !p.got(TOK_EOF) && !p.gotOneOf(kinds...) {
		p.next()
	}
}
