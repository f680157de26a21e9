package syntax

import (
	"strconv"

	"pl0c/ast"
	"pl0c/report"
	"pl0c/types"
)

// relopNames maps relational operator token kinds to their operator names.
var relopNames = map[int]string{
	TOK_EQ:   "=",
	TOK_NEQ:  "<>",
	TOK_LT:   "<",
	TOK_LTEQ: "<=",
	TOK_GT:   ">",
	TOK_GTEQ: ">=",
}

// parseCondition parses a condition: an expression optionally compared with a
// relational operator.
//
//	condition = exp [ relop exp ] .
func (p *Parser) parseCondition() ast.Expr {
	left := p.parseExp()

	name, ok := relopNames[p.tok.Kind]
	if !ok {
		return left
	}

	p.next()
	right := p.parseExp()

	return ast.NewBinaryExpr(report.NewSpanOver(left.Span(), right.Span()), name, left, right)
}

// parseExp parses an additive expression with an optional sign.
//
//	exp = [ "+" | "-" ] term { ("+"|"-") term } .
func (p *Parser) parseExp() ast.Expr {
	start := p.tok.Span

	negated := false
	switch p.tok.Kind {
	case TOK_PLUS:
		p.next()
	case TOK_MINUS:
		negated = true
		p.next()
	}

	exp := p.parseTerm()
	if negated {
		exp = ast.NewUnaryExpr(report.NewSpanOver(start, exp.Span()), "neg", exp)
	}

	for p.gotOneOf(TOK_PLUS, TOK_MINUS) {
		name := "+"
		if p.got(TOK_MINUS) {
			name = "-"
		}

		p.next()
		right := p.parseTerm()
		exp = ast.NewBinaryExpr(report.NewSpanOver(exp.Span(), right.Span()), name, exp, right)
	}

	return exp
}

// parseTerm parses a multiplicative expression.
//
//	term = factor { ("*"|"/") factor } .
func (p *Parser) parseTerm() ast.Expr {
	exp := p.parseFactor()

	for p.gotOneOf(TOK_STAR, TOK_SLASH) {
		name := "*"
		if p.got(TOK_SLASH) {
			name = "/"
		}

		p.next()
		right := p.parseFactor()
		exp = ast.NewBinaryExpr(report.NewSpanOver(exp.Span(), right.Span()), name, exp, right)
	}

	return exp
}

// parseFactor parses a factor.
//
//	factor = number | lvalue | "(" condition ")"
//	       | ("pred"|"succ") "(" condition ")" .
func (p *Parser) parseFactor() ast.Expr {
	switch p.tok.Kind {
	case TOK_NUMBER:
		span := p.tok.Span
		value := p.numberValue()
		p.next()

		// Number literals are typed as single-point subranges of int: they
		// widen to int for free and keep their value visible to the checker.
		return ast.NewConstExpr(span, types.NewSubrangeType(types.IntegerType, value, value), value)
	case TOK_IDENT:
		return p.parseLValue()
	case TOK_LPAREN:
		p.next()
		exp := p.parseCondition()
		p.want(TOK_RPAREN)
		return exp
	case TOK_PRED, TOK_SUCC:
		return p.parsePredSucc()
	default:
		report.ReportError(p.tok.Span, "expected expression but got %s",
			tokenKindName(p.tok.Kind))

		span := p.tok.Span
		if !p.gotOneOf(TOK_SEMICOLON, TOK_END, TOK_PERIOD, TOK_EOF) {
			p.next()
		}

		return ast.NewErrorExpr(span)
	}
}

// parsePredSucc parses a pred or succ application.
func (p *Parser) parsePredSucc() ast.Expr {
	start := p.tok.Span
	name := p.tok.Value
	p.next()

	p.want(TOK_LPAREN)
	arg := p.parseCondition()
	end := p.tok.Span
	p.want(TOK_RPAREN)

	return ast.NewUnaryExpr(report.NewSpanOver(start, end), name, arg)
}

// parseLValue parses an l-value: an identifier optionally indexed.  The
// identifier is left unresolved for the static checker.
//
//	lvalue = id [ "[" condition "]" ] .
func (p *Parser) parseLValue() ast.Expr {
	name, span, ok := p.wantIdent()
	if !ok {
		return ast.NewErrorExpr(span)
	}

	ident := ast.NewIdentifierExpr(span, name)

	if !p.got(TOK_LBRACKET) {
		return ident
	}

	p.next()
	index := p.parseCondition()
	end := p.tok.Span
	p.want(TOK_RBRACKET)

	return ast.NewArrayIndexExpr(report.NewSpanOver(span, end), ident, index)
}

// numberValue converts the current number token's text to its value.
func (p *Parser) numberValue() int {
	value, err := strconv.Atoi(p.tok.Value)
	if err != nil {
		report.ReportError(p.tok.Span, "number %s out of range", p.tok.Value)
		return 0
	}

	return value
}
