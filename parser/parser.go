package parser

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/log"

	"github.com/titivuk/lino/ast"
	"github.com/titivuk/lino/lexer"
	"github.com/titivuk/lino/token"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression // param is left side of infix operator
)

const (
	_ int = iota // use iota to give the following constants incrementing numbers as values
	LOWEST
	ASSIGN     // :=
	RELATIONAL // == != < <= > >=
	SUM        // + -
	PRODUCT    // * /
	PREFIX     // -X or !X
	CALL       // myFunction(X) or list[X]
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:   ASSIGN,
	token.EQ:       RELATIONAL,
	token.NOT_EQ:   RELATIONAL,
	token.LT:       RELATIONAL,
	token.LT_EQ:    RELATIONAL,
	token.GT:       RELATIONAL,
	token.GT_EQ:    RELATIONAL,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.LPAREN:   CALL,
	token.LBRACKET: CALL,
}

// Parser stops at the first syntax error: the tree it returns after an
// error is incomplete and must not be evaluated.
type Parser struct {
	l *lexer.Lexer

	currToken token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	errors []string
}

// Error carries the syntax errors of one line.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return "syntax error: " + strings.Join(e.Messages, "; ")
}

// Parse lexes and parses one line of input.
func Parse(input string) (*ast.Program, error) {
	p := New(lexer.New(input))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, &Error{Messages: errs}
	}
	return program, nil
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, errors: []string{}}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefixFn(token.IDENT, p.parseIdentifier)
	p.registerPrefixFn(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefixFn(token.STRING, p.parseStringLiteral)
	p.registerPrefixFn(token.BANG, p.parsePrefixExpression)
	p.registerPrefixFn(token.MINUS, p.parsePrefixExpression)
	p.registerPrefixFn(token.TRUE, p.parseBoolean)
	p.registerPrefixFn(token.FALSE, p.parseBoolean)
	p.registerPrefixFn(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefixFn(token.LBRACKET, p.parseListLiteral)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	p.registerInfixFn(token.ASSIGN, p.parseAssignExpression)
	p.registerInfixFn(token.EQ, p.parseRelationalExpression)
	p.registerInfixFn(token.NOT_EQ, p.parseRelationalExpression)
	p.registerInfixFn(token.LT, p.parseRelationalExpression)
	p.registerInfixFn(token.LT_EQ, p.parseRelationalExpression)
	p.registerInfixFn(token.GT, p.parseRelationalExpression)
	p.registerInfixFn(token.GT_EQ, p.parseRelationalExpression)
	p.registerInfixFn(token.PLUS, p.parseInfixExpression)
	p.registerInfixFn(token.MINUS, p.parseInfixExpression)
	p.registerInfixFn(token.ASTERISK, p.parseInfixExpression)
	p.registerInfixFn(token.SLASH, p.parseInfixExpression)
	p.registerInfixFn(token.LPAREN, p.parseCallExpression)
	p.registerInfixFn(token.LBRACKET, p.parseIndexExpression)

	// Read two tokens, so currToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	program.Statements = []ast.Statement{}

	// parse until we reach the end or the first error
	for !p.currTokenIs(token.EOF) && !p.failed() {
		if p.currTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}

		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	if !p.failed() && log.Log(log.Debug) {
		log.Debugf("parsed program: %s", program.String())
	}

	return program
}

func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

// only the first error is kept, everything after it is noise
func (p *Parser) addError(format string, a ...interface{}) {
	if p.failed() {
		return
	}
	msg := fmt.Sprintf(format, a...)
	log.LogVf("syntax error: %s", msg)
	p.errors = append(p.errors, msg)
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError("expected next token to be %s, got %s instead (near %q)",
		t, p.peekToken.Type, p.peekToken.Literal)
}

func (p *Parser) registerPrefixFn(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfixFn(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.currToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.currToken.Type {
	case token.VAR:
		return p.parseVarStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.PRINT:
		return p.parsePrintStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FUNCTION:
		return p.parseFunctionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVarStatement() ast.Statement {
	stmt := &ast.VarStatement{Token: p.currToken}

	// next token must be IDENT
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.currToken, Value: p.currToken.Literal}

	// the initializer is optional, `var x;` binds nil
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()

		stmt.Value = p.parseExpression(ASSIGN)
		if stmt.Value == nil {
			return nil
		}
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.currToken}

	p.nextToken()

	stmt.ReturnValue = p.parseExpression(LOWEST)
	if stmt.ReturnValue == nil {
		return nil
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.currToken}

	p.nextToken()

	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.currToken}

	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.currToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	stmt.Consequence = p.parseBlockStatement()
	if stmt.Consequence == nil {
		return nil
	}

	// parse else block if there is token.ELSE token
	if p.peekTokenIs(token.ELSE) {
		// advance the token, now it points to token.ELSE
		p.nextToken()

		if !p.expectPeek(token.LBRACE) {
			return nil
		}

		stmt.Alternative = p.parseBlockStatement()
		if stmt.Alternative == nil {
			return nil
		}
	}

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.currToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	stmt.Body = p.parseBlockStatement()
	if stmt.Body == nil {
		return nil
	}

	return stmt
}

func (p *Parser) parseFunctionStatement() ast.Statement {
	stmt := &ast.FunctionStatement{Token: p.currToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.currToken, Value: p.currToken.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	stmt.Parameters = p.parseFunctionParameters()
	if stmt.Parameters == nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	stmt.Body = p.parseBlockStatement()
	if stmt.Body == nil {
		return nil
	}

	return stmt
}

// parameters are variable declarations without initializers; `var` in
// front of a name is accepted and ignored
func (p *Parser) parseFunctionParameters() []*ast.VarStatement {
	parameters := []*ast.VarStatement{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return parameters
	}

	param := p.parseParameter()
	if param == nil {
		return nil
	}
	parameters = append(parameters, param)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		param := p.parseParameter()
		if param == nil {
			return nil
		}
		parameters = append(parameters, param)
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return parameters
}

func (p *Parser) parseParameter() *ast.VarStatement {
	if p.peekTokenIs(token.VAR) {
		p.nextToken()
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}

	return &ast.VarStatement{
		Token: p.currToken,
		Name:  &ast.Identifier{Token: p.currToken, Value: p.currToken.Literal},
	}
}

// currToken is the opening brace; on success currToken is the closing brace
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.currToken}
	block.Statements = []ast.Statement{}

	p.nextToken()

	for !p.currTokenIs(token.RBRACE) {
		if p.currTokenIs(token.EOF) {
			p.addError("expected next token to be %s, got %s instead (near %q)",
				token.RBRACE, token.EOF, block.Token.Literal)
			return nil
		}

		if p.currTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}

		statement := p.parseStatement()
		if p.failed() {
			return nil
		}
		if statement != nil {
			block.Statements = append(block.Statements, statement)
		}

		p.nextToken()
	}

	return block
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.currToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.currToken)
		return nil
	}

	expression := prefix()
	if p.failed() {
		return nil
	}

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		// if there is no infix parser => it's prefix expression => return immediately
		if infix == nil {
			return expression
		}

		p.nextToken()

		// since we've checked that infix exist
		// so currToken is infix operator and expression is left expression
		// and we call infix parse function
		expression = infix(expression)
		if p.failed() {
			return nil
		}
	}

	return expression
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	if t.Type == token.ILLEGAL {
		p.addError("illegal token %q", t.Literal)
		return
	}
	p.addError("unexpected token %s (near %q)", t.Type, t.Literal)
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.currToken, Value: p.currToken.Literal}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.currToken.Literal, 64)
	if err != nil {
		p.addError("could not parse %q as number", p.currToken.Literal)
		return nil
	}

	return &ast.NumberLiteral{Token: p.currToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.currToken, Value: p.currToken.Literal}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.Boolean{Token: p.currToken, Value: p.currTokenIs(token.TRUE)}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{Token: p.currToken, Operator: p.currToken.Literal}

	p.nextToken()

	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.currToken,
		Operator: p.currToken.Literal,
		Left:     left,
	}

	precedence := p.currPrecedence() // curr is infix operator
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseRelationalExpression(left ast.Expression) ast.Expression {
	expression := &ast.RelationalExpression{
		Token:    p.currToken,
		Operator: p.currToken.Literal,
		Left:     left,
	}

	p.nextToken()
	expression.Right = p.parseExpression(RELATIONAL)
	if expression.Right == nil {
		return nil
	}

	return expression
}

// the right side binds as a single relational expression, so
// `a := b := c` is rejected: the second target is an assignment
func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	switch left.(type) {
	case *ast.Identifier, *ast.IndexExpression:
	default:
		p.addError("invalid assignment target %s", left.String())
		return nil
	}

	expression := &ast.AssignExpression{Token: p.currToken, Target: left}

	p.nextToken()
	expression.Value = p.parseExpression(ASSIGN)
	if expression.Value == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}

	// p.parseExpression call above is going to stop when peekToken = RPAREN
	// because p.peekPrecedence returns 0 for RPAREN, so for loop stops inside the parseExpression fn
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return exp
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	expression := &ast.CallExpression{Token: p.currToken, Function: function}
	expression.Arguments = p.parseExpressionList(token.RPAREN)
	if expression.Arguments == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseListLiteral() ast.Expression {
	listExpression := &ast.ListLiteral{Token: p.currToken}
	listExpression.Elements = p.parseExpressionList(token.RBRACKET)
	if listExpression.Elements == nil {
		return nil
	}

	return listExpression
}

// returns nil only on error, an empty list is a non-nil empty slice
func (p *Parser) parseExpressionList(endToken token.TokenType) []ast.Expression {
	expressions := []ast.Expression{}

	if p.peekTokenIs(endToken) {
		p.nextToken()
		return expressions
	}

	// cur token points to the start of the first element after this call
	p.nextToken()

	// parse first element of the list
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	expressions = append(expressions, first)

	// loop ends when curToken points to end pos of the last element in the list
	for p.peekTokenIs(token.COMMA) {
		// advance pos twice because p.parseExpression called above leaves p.currToken on last pos related to the expression
		p.nextToken() // sets curToken to ','
		p.nextToken() // sets curToken to first char of the next element

		next := p.parseExpression(LOWEST)
		if next == nil {
			return nil
		}
		expressions = append(expressions, next)
	}

	// since currToken points to the last pos of the last element in the list
	// next token must be endToken
	if !p.expectPeek(endToken) {
		return nil
	}

	return expressions
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	indexExpression := &ast.IndexExpression{
		Token: p.currToken,
		Left:  left,
	}

	p.nextToken()
	indexExpression.Index = p.parseExpression(LOWEST)
	if indexExpression.Index == nil {
		return nil
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}

	return indexExpression
}

func (p *Parser) currTokenIs(t token.TokenType) bool {
	return p.currToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// checks the type of the peekToken and only if the type is correct does it advance the tokens by calling nextToken
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}

	p.peekError(t)
	return false
}

// returns the precedence associated with the token type of p.peekToken
func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}

	return LOWEST
}

// returns the precedence associated with the token type of p.currToken
func (p *Parser) currPrecedence() int {
	if p, ok := precedences[p.currToken.Type]; ok {
		return p
	}

	return LOWEST
}
