package parser

import "github.com/hassan/exx/internal/parser/ast"

// parseType parses a type annotation.
//
// GRAMMAR:
//
//	type = "(" (type ("," type)*)? ")" "->" type   function type
//	     | name "<" type ("," type)* ">"           generic type
//	     | name                                    simple type
//
// Nested generics must be closed with separate '>' tokens: the lexer reads
// ">>" as one (invalid) operator.
func (p *Parser) parseType() (ast.Type, error) {
	if p.match(KindLeftParen) {
		return p.functionType()
	}

	name, err := p.consumeIdentifier("Expected type name")
	if err != nil {
		return nil, err
	}

	if !p.match(KindLess) {
		return &ast.SimpleType{Name: name}, nil
	}

	args, err := p.typeList()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(KindGreater, "Expected '>' in generic type"); err != nil {
		return nil, err
	}
	return &ast.GenericType{Name: name, Args: args}, nil
}

// functionType parses the rest of (params) -> return after the '('.
// An empty parameter list is allowed: () -> number.
func (p *Parser) functionType() (ast.Type, error) {
	params := make([]ast.Type, 0)
	if !p.check(KindRightParen) {
		var err error
		if params, err = p.typeList(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(KindRightParen, "Expected ')' in function type"); err != nil {
		return nil, err
	}
	if _, err := p.consume(KindArrow, "Expected '->' in function type"); err != nil {
		return nil, err
	}

	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionType{Params: params, Return: ret}, nil
}

// typeList parses one or more comma-separated types.
func (p *Parser) typeList() ([]ast.Type, error) {
	var types []ast.Type
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)

		if !p.match(KindComma) {
			return types, nil
		}
	}
}
