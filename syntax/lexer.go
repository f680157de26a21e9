package syntax

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"pl0c/report"
)

// Lexer is responsible for tokenizing a source file.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer over the given reader.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		file:    bufio.NewReader(r),
		tokBuff: &strings.Builder{},
	}
}

// NextToken retrieves the next token from the input.  If the input has ended,
// this will be an EOF token.  Unknown characters are reported and skipped.
func (l *Lexer) NextToken() *Token {
	for {
		c := l.peek()
		if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '{':
			l.skipComment()
		default:
			if isDecimalDigit(c) {
				return l.lexNumber()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF)
}

// -----------------------------------------------------------------------------

// lexNumber lexes an integer literal.
func (l *Lexer) lexNumber() *Token {
	l.mark()

	for isDecimalDigit(l.peek()) {
		l.eat()
	}

	return l.makeToken(TOK_NUMBER)
}

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() *Token {
	l.mark()

	for c := l.peek(); isFirstIdentChar(c) || isDecimalDigit(c); c = l.peek() {
		l.eat()
	}

	tok := l.makeToken(TOK_IDENT)
	if kind, ok := keywords[tok.Value]; ok {
		tok.Kind = kind
	}

	return tok
}

// lexPunctOrOper lexes a punctuation or operator token.
func (l *Lexer) lexPunctOrOper() *Token {
	l.mark()

	c := l.eat()
	switch c {
	case ':':
		if l.peek() == '=' {
			l.eat()
			return l.makeToken(TOK_ASSIGN)
		}

		return l.makeToken(TOK_COLON)
	case '<':
		switch l.peek() {
		case '=':
			l.eat()
			return l.makeToken(TOK_LTEQ)
		case '>':
			l.eat()
			return l.makeToken(TOK_NEQ)
		}

		return l.makeToken(TOK_LT)
	case '>':
		if l.peek() == '=' {
			l.eat()
			return l.makeToken(TOK_GTEQ)
		}

		return l.makeToken(TOK_GT)
	case '.':
		if l.peek() == '.' {
			l.eat()
			return l.makeToken(TOK_RANGE)
		}

		return l.makeToken(TOK_PERIOD)
	case '=':
		return l.makeToken(TOK_EQ)
	case '+':
		return l.makeToken(TOK_PLUS)
	case '-':
		return l.makeToken(TOK_MINUS)
	case '*':
		return l.makeToken(TOK_STAR)
	case '/':
		return l.makeToken(TOK_SLASH)
	case '(':
		return l.makeToken(TOK_LPAREN)
	case ')':
		return l.makeToken(TOK_RPAREN)
	case '[':
		return l.makeToken(TOK_LBRACKET)
	case ']':
		return l.makeToken(TOK_RBRACKET)
	case ';':
		return l.makeToken(TOK_SEMICOLON)
	case ',':
		return l.makeToken(TOK_COMMA)
	default:
		report.ReportError(l.span(), "unknown character `%c`", c)
		l.tokBuff.Reset()
		return l.NextToken()
	}
}

// skipComment skips a brace-delimited comment.
func (l *Lexer) skipComment() {
	l.mark()

	for {
		c := l.peek()
		if c == -1 {
			report.ReportError(l.span(), "unclosed comment")
			return
		}

		l.skip()
		if c == '}' {
			break
		}
	}

	l.tokBuff.Reset()
}

// -----------------------------------------------------------------------------

// mark records the start position of the token being lexed.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// peek returns the next character of the input without consuming it, or -1 at
// the end of the input.
func (l *Lexer) peek() rune {
	c, _, err := l.file.ReadRune()
	if err != nil {
		return -1
	}

	l.file.UnreadRune()
	return c
}

// eat consumes the next character and appends it to the token buffer.
func (l *Lexer) eat() rune {
	c := l.skip()
	if c != -1 {
		l.tokBuff.WriteRune(c)
	}

	return c
}

// skip consumes the next character without buffering it.
func (l *Lexer) skip() rune {
	c, _, err := l.file.ReadRune()
	if err != nil {
		return -1
	}

	if c == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}

	return c
}

// span returns the span from the marked start position to the current
// position.
func (l *Lexer) span() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// makeToken builds a token of the given kind from the token buffer.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{Kind: kind, Value: value, Span: l.span()}
}

// -----------------------------------------------------------------------------

func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isFirstIdentChar(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}
