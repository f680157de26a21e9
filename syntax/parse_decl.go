package syntax

import (
	"pl0c/ast"
	"pl0c/report"
	"pl0c/syms"
	"pl0c/types"
)

// parseBlock parses the declarations and body of a block.  Declarations are
// entered into the current scope as they parse.
//
//	block = { declaration } compound .
func (p *Parser) parseBlock() *ast.Block {
	start := p.tok.Span

	var procs []*ast.ProcedureDecl
	for {
		switch p.tok.Kind {
		case TOK_CONST:
			p.parseConstDecls()
		case TOK_TYPE:
			p.parseTypeDecls()
		case TOK_VAR:
			p.parseVarDecls()
		case TOK_PROCEDURE:
			if proc := p.parseProcedureDecl(); proc != nil {
				procs = append(procs, proc)
			}
		default:
			body := p.parseCompound()

			return &ast.Block{
				ASTBase: ast.NewASTBaseOver(start, body.Span()),
				Procs:   procs,
				Body:    body,
				Locals:  p.scope,
			}
		}
	}
}

// define enters an entry into the current scope, reporting a redeclaration
// error if the identifier is already declared there.
func (p *Parser) define(entry syms.Entry, span *report.TextSpan) {
	if !p.scope.Define(entry) {
		report.ReportError(span, "%s is already declared in this scope", entry.Ident())
	}
}

// -----------------------------------------------------------------------------

// parseConstDecls parses a constant declaration section.
//
//	"const" { id "=" constant ";" }
func (p *Parser) parseConstDecls() {
	p.next()

	for p.got(TOK_IDENT) {
		name, span, _ := p.wantIdent()
		p.want(TOK_EQ)

		typ, value, ok := p.parseConstant()
		if ok {
			p.define(syms.NewConstantEntry(name, typ, value), span)
		}

		p.want(TOK_SEMICOLON)
	}
}

// parseConstant parses a constant: a number literal, a negated number
// literal, or a reference to a declared constant.  It returns the constant's
// type and folded value.
func (p *Parser) parseConstant() (types.Type, int, bool) {
	switch p.tok.Kind {
	case TOK_NUMBER:
		value := p.numberValue()
		p.next()
		return types.NewSubrangeType(types.IntegerType, value, value), value, true
	case TOK_MINUS:
		p.next()

		if !p.got(TOK_NUMBER) {
			report.ReportError(p.tok.Span, "expected number but got %s", tokenKindName(p.tok.Kind))
			return types.ErrorType, 0, false
		}

		value := -p.numberValue()
		p.next()
		return types.NewSubrangeType(types.IntegerType, value, value), value, true
	case TOK_IDENT:
		name, span, _ := p.wantIdent()

		if constEntry, ok := p.scope.Lookup(name).(*syms.ConstantEntry); ok {
			return constEntry.Type, constEntry.Value, true
		}

		report.ReportError(span, "constant identifier expected")
		return types.ErrorType, 0, false
	default:
		report.ReportError(p.tok.Span, "expected constant but got %s", tokenKindName(p.tok.Kind))
		return types.ErrorType, 0, false
	}
}

// -----------------------------------------------------------------------------

// parseTypeDecls parses a type declaration section.
//
//	"type" { id "=" typeexpr ";" }
func (p *Parser) parseTypeDecls() {
	p.next()

	for p.got(TOK_IDENT) {
		name, span, _ := p.wantIdent()
		p.want(TOK_EQ)

		typ := p.parseTypeExpr(name)
		p.define(syms.NewTypeEntry(name, typ), span)

		p.want(TOK_SEMICOLON)
	}
}

// parseTypeExpr parses a type expression.  The name is the identifier being
// declared, used to name a scalar enumeration; anonymous positions pass "".
//
//	typeexpr = id | "(" id { "," id } ")" | constant ".." constant
//	         | "array" "[" typeexpr "]" "of" typeexpr .
func (p *Parser) parseTypeExpr(name string) types.Type {
	switch p.tok.Kind {
	case TOK_LPAREN:
		return p.parseScalarType(name)
	case TOK_ARRAY:
		return p.parseArrayType()
	case TOK_IDENT:
		identName, span, _ := p.wantIdent()

		// An identifier starting a subrange is a constant; any other
		// identifier names a declared type.
		if p.got(TOK_RANGE) {
			return p.parseSubrangeTail(p.foldConstIdent(identName, span))
		}

		if typeEntry, ok := p.scope.Lookup(identName).(*syms.TypeEntry); ok {
			return typeEntry.Type
		}

		report.ReportError(span, "type identifier expected")
		return types.ErrorType
	case TOK_NUMBER, TOK_MINUS:
		typ, value, ok := p.parseConstant()
		if !ok {
			return types.ErrorType
		}

		return p.parseSubrangeTail(constBound{typ: typ, value: value, ok: true})
	default:
		report.ReportError(p.tok.Span, "expected type but got %s", tokenKindName(p.tok.Kind))
		return types.ErrorType
	}
}

// constBound is a folded subrange bound.
type constBound struct {
	typ   types.Type
	value int
	ok    bool
}

// foldConstIdent folds a constant identifier used as a subrange bound.
func (p *Parser) foldConstIdent(name string, span *report.TextSpan) constBound {
	if constEntry, ok := p.scope.Lookup(name).(*syms.ConstantEntry); ok {
		return constBound{typ: constEntry.Type, value: constEntry.Value, ok: true}
	}

	report.ReportError(span, "constant identifier expected")
	return constBound{}
}

// parseSubrangeTail parses the ".." and upper bound of a subrange type whose
// lower bound has already been folded.
func (p *Parser) parseSubrangeTail(lower constBound) types.Type {
	rangeSpan := p.tok.Span
	p.want(TOK_RANGE)

	var upper constBound
	if p.got(TOK_IDENT) {
		name, span, _ := p.wantIdent()
		upper = p.foldConstIdent(name, span)
	} else {
		typ, value, ok := p.parseConstant()
		upper = constBound{typ: typ, value: value, ok: ok}
	}

	if !lower.ok || !upper.ok {
		return types.ErrorType
	}

	if upper.value < lower.value {
		report.ReportError(rangeSpan, "subrange upper bound %d below lower bound %d",
			upper.value, lower.value)
		return types.ErrorType
	}

	return types.NewSubrangeType(subrangeBase(lower.typ), lower.value, upper.value)
}

// subrangeBase returns the scalar base type for a subrange whose bound has
// the given type.
func subrangeBase(typ types.Type) types.Type {
	switch t := typ.(type) {
	case *types.ScalarType:
		return t
	case *types.SubrangeType:
		return t.Base
	default:
		return types.IntegerType
	}
}

// parseScalarType parses a scalar enumeration type.  Each member is declared
// as a constant of the new type with its ordinal as value, and the pred/succ
// operator intersections gain candidates for the type.
func (p *Parser) parseScalarType(name string) types.Type {
	p.next()

	var members []string
	var spans []*report.TextSpan
	for {
		memberName, memberSpan, ok := p.wantIdent()
		if !ok {
			p.skipTo(TOK_RPAREN, TOK_SEMICOLON)
			break
		}

		members = append(members, memberName)
		spans = append(spans, memberSpan)

		if !p.got(TOK_COMMA) {
			break
		}

		p.next()
	}

	p.want(TOK_RPAREN)

	if len(members) == 0 {
		return types.ErrorType
	}

	scalar := types.NewScalarType(name, 1, 0, len(members)-1)
	for i, memberName := range members {
		p.define(syms.NewConstantEntry(memberName, scalar, i), spans[i])
	}

	syms.ExtendScalarOperators(p.scope, scalar)
	return scalar
}

// parseArrayType parses a one-dimensional array type.  The index type must
// carry bounds.
func (p *Parser) parseArrayType() types.Type {
	p.next()
	p.want(TOK_LBRACKET)

	indexSpan := p.tok.Span
	indexType := p.parseTypeExpr("")

	p.want(TOK_RBRACKET)
	p.want(TOK_OF)

	elemType := p.parseTypeExpr("")

	if _, ok := indexType.(types.Bounded); !ok {
		if !types.IsError(indexType) {
			report.ReportError(indexSpan, "array index type must be a scalar or subrange")
		}

		return types.ErrorType
	}

	return types.NewArrayType(indexType, elemType)
}

// -----------------------------------------------------------------------------

// parseVarDecls parses a variable declaration section.  Each variable is
// allocated its frame offset here.
//
//	"var" { id ":" typeexpr ";" }
func (p *Parser) parseVarDecls() {
	p.next()

	for p.got(TOK_IDENT) {
		name, span, _ := p.wantIdent()
		p.want(TOK_COLON)

		typ := p.parseTypeExpr(name)
		offset := p.scope.AllocVariableSpace(typ.Size())
		p.define(syms.NewVarEntry(name, typ, p.scope.Level(), offset), span)

		p.want(TOK_SEMICOLON)
	}
}

// -----------------------------------------------------------------------------

// parseProcedureDecl parses a procedure declaration.  The procedure's entry
// is pre-built with its local scope and static level; the static checker
// attaches the checked block later.
//
//	"procedure" id ";" block ";"
func (p *Parser) parseProcedureDecl() *ast.ProcedureDecl {
	start := p.tok.Span
	p.next()

	name, span, ok := p.wantIdent()
	if !ok {
		p.skipTo(TOK_SEMICOLON)
		p.next()
		return nil
	}

	p.want(TOK_SEMICOLON)

	procEntry := syms.NewProcedureEntry(name, p.scope.Level()+1)
	localScope := syms.NewScope(p.scope)
	localScope.SetOwner(procEntry)
	procEntry.LocalScope = localScope

	p.define(procEntry, span)

	savedScope := p.scope
	p.scope = localScope
	block := p.parseBlock()
	p.scope = savedScope

	p.want(TOK_SEMICOLON)

	return &ast.ProcedureDecl{
		ASTBase: ast.NewASTBaseOver(start, block.Span()),
		Entry:   procEntry,
		Block:   block,
	}
}
