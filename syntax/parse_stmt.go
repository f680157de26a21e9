package syntax

import (
	"pl0c/ast"
	"pl0c/report"
	"pl0c/syms"
)

// parseCompound parses a compound statement.
//
//	compound = "begin" statement { ";" statement } "end" .
func (p *Parser) parseCompound() ast.Stmt {
	start := p.tok.Span

	if !p.want(TOK_BEGIN) {
		p.skipTo(TOK_SEMICOLON, TOK_END, TOK_PERIOD)
		return ast.NewErrorStmt(start)
	}

	stmts := []ast.Stmt{p.parseStatement()}
	for p.got(TOK_SEMICOLON) {
		p.next()
		stmts = append(stmts, p.parseStatement())
	}

	end := p.tok.Span
	p.want(TOK_END)

	return &ast.StmtList{
		ASTBase: ast.NewASTBaseOver(start, end),
		Stmts:   stmts,
	}
}

// parseStatement parses a single statement.  The empty statement parses to an
// empty statement list.
//
//	statement = lvalue ":=" condition | "call" id | "read" lvalue
//	          | "write" condition | compound
//	          | "if" condition "then" statement [ "else" statement ]
//	          | "while" condition "do" statement
//	          | "for" id ":=" condition "to" condition "do" statement
//	          | .
func (p *Parser) parseStatement() ast.Stmt {
	switch p.tok.Kind {
	case TOK_IDENT:
		return p.parseAssignment()
	case TOK_CALL:
		return p.parseCall()
	case TOK_READ:
		return p.parseRead()
	case TOK_WRITE:
		return p.parseWrite()
	case TOK_BEGIN:
		return p.parseCompound()
	case TOK_IF:
		return p.parseIf()
	case TOK_WHILE:
		return p.parseWhile()
	case TOK_FOR:
		return p.parseFor()
	case TOK_SEMICOLON, TOK_END, TOK_ELSE, TOK_PERIOD:
		// Empty statement.
		return &ast.StmtList{ASTBase: ast.NewASTBaseOn(p.tok.Span)}
	default:
		report.ReportError(p.tok.Span, "expected statement but got %s",
			tokenKindName(p.tok.Kind))

		span := p.tok.Span
		p.skipTo(TOK_SEMICOLON, TOK_END, TOK_PERIOD)
		return ast.NewErrorStmt(span)
	}
}

// parseAssignment parses an assignment statement.
func (p *Parser) parseAssignment() ast.Stmt {
	target := p.parseLValue()

	if !p.want(TOK_ASSIGN) {
		p.skipTo(TOK_SEMICOLON, TOK_END, TOK_PERIOD)
		return ast.NewErrorStmt(target.Span())
	}

	value := p.parseCondition()

	return &ast.AssignStmt{
		ASTBase: ast.NewASTBaseOver(target.Span(), value.Span()),
		Target:  target,
		Value:   value,
	}
}

// parseCall parses a call statement.
func (p *Parser) parseCall() ast.Stmt {
	start := p.tok.Span
	p.next()

	name, span, ok := p.wantIdent()
	if !ok {
		p.skipTo(TOK_SEMICOLON, TOK_END, TOK_PERIOD)
		return ast.NewErrorStmt(start)
	}

	return &ast.CallStmt{
		ASTBase: ast.NewASTBaseOver(start, span),
		Name:    name,
	}
}

// parseRead parses a read statement.
func (p *Parser) parseRead() ast.Stmt {
	start := p.tok.Span
	p.next()

	target := p.parseLValue()

	return &ast.ReadStmt{
		ASTBase: ast.NewASTBaseOver(start, target.Span()),
		Target:  target,
	}
}

// parseWrite parses a write statement.
func (p *Parser) parseWrite() ast.Stmt {
	start := p.tok.Span
	p.next()

	value := p.parseCondition()

	return &ast.WriteStmt{
		ASTBase: ast.NewASTBaseOver(start, value.Span()),
		Value:   value,
	}
}

// parseIf parses an if statement.  A missing else part becomes an empty
// statement list.
func (p *Parser) parseIf() ast.Stmt {
	start := p.tok.Span
	p.next()

	cond := p.parseCondition()
	p.want(TOK_THEN)
	thenStmt := p.parseStatement()

	var elseStmt ast.Stmt
	if p.got(TOK_ELSE) {
		p.next()
		elseStmt = p.parseStatement()
	} else {
		elseStmt = &ast.StmtList{ASTBase: ast.NewASTBaseOn(p.tok.Span)}
	}

	return &ast.IfStmt{
		ASTBase: ast.NewASTBaseOver(start, elseStmt.Span()),
		Cond:    cond,
		Then:    thenStmt,
		Else:    elseStmt,
	}
}

// parseWhile parses a while statement.
func (p *Parser) parseWhile() ast.Stmt {
	start := p.tok.Span
	p.next()

	cond := p.parseCondition()
	p.want(TOK_DO)
	body := p.parseStatement()

	return &ast.WhileStmt{
		ASTBase: ast.NewASTBaseOver(start, body.Span()),
		Cond:    cond,
		Body:    body,
	}
}

// parseFor parses a for statement.  The loop's inner scope is pre-built here;
// the static checker allocates the hidden bound slots from it.
func (p *Parser) parseFor() ast.Stmt {
	start := p.tok.Span
	p.next()

	name, span, ok := p.wantIdent()
	if !ok {
		p.skipTo(TOK_SEMICOLON, TOK_END, TOK_PERIOD)
		return ast.NewErrorStmt(start)
	}

	control := ast.NewIdentifierExpr(span, name)

	p.want(TOK_ASSIGN)
	lower := p.parseCondition()
	p.want(TOK_TO)
	upper := p.parseCondition()
	p.want(TOK_DO)
	body := p.parseStatement()

	return &ast.ForStmt{
		ASTBase: ast.NewASTBaseOver(start, body.Span()),
		Control: control,
		Lower:   lower,
		Upper:   upper,
		Body:    body,
		Scope:   syms.NewExtensionScope(p.scope),
	}
}
