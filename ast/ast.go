package ast

import (
	"bytes"
	"strings"

	"github.com/titivuk/lino/token"
)

type Node interface {
	TokenLiteral() string
	String() string
}

// Statement and Expression are closed: only types in this package
// implement the marker methods.
type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// root node of AST, one per input line
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}

	return ""
}

func (p *Program) String() string {
	return joinStatements(p.Statements)
}

// Statements

type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode() {}

func (es *ExpressionStatement) TokenLiteral() string {
	return es.Token.Literal
}

func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String()
	}
	return ""
}

type PrintStatement struct {
	Token token.Token // the token.PRINT token
	Value Expression
}

func (ps *PrintStatement) statementNode() {}

func (ps *PrintStatement) TokenLiteral() string {
	return ps.Token.Literal
}

func (ps *PrintStatement) String() string {
	return ps.TokenLiteral() + " " + ps.Value.String()
}

// VarStatement is `var name` or `var name := value`.
// Function parameters reuse it with Value always nil.
type VarStatement struct {
	Token token.Token // the token.VAR token, or the IDENT token for a parameter
	Name  *Identifier // hold the identifier of the binding
	Value Expression  // nil when there is no initializer
}

func (vs *VarStatement) statementNode() {}

func (vs *VarStatement) TokenLiteral() string {
	return vs.Token.Literal
}

func (vs *VarStatement) String() string {
	var out bytes.Buffer

	if vs.Token.Type == token.VAR {
		out.WriteString("var ")
	}
	out.WriteString(vs.Name.String())
	if vs.Value != nil {
		out.WriteString(" := ")
		out.WriteString(vs.Value.String())
	}

	return out.String()
}

type ReturnStatement struct {
	Token       token.Token // the token.RETURN token
	ReturnValue Expression  // expression that produces the value
}

func (rs *ReturnStatement) statementNode() {}

func (rs *ReturnStatement) TokenLiteral() string {
	return rs.Token.Literal
}

func (rs *ReturnStatement) String() string {
	return rs.TokenLiteral() + " " + rs.ReturnValue.String()
}

type WhileStatement struct {
	Token     token.Token // the token.WHILE token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode() {}

func (ws *WhileStatement) TokenLiteral() string {
	return ws.Token.Literal
}

func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

type IfStatement struct {
	Token       token.Token // the token.IF token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement // nil when there is no else branch
}

func (is *IfStatement) statementNode() {}

func (is *IfStatement) TokenLiteral() string {
	return is.Token.Literal
}

func (is *IfStatement) String() string {
	var out bytes.Buffer

	out.WriteString("if (")
	out.WriteString(is.Condition.String())
	out.WriteString(") ")
	out.WriteString(is.Consequence.String())
	if is.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternative.String())
	}

	return out.String()
}

type FunctionStatement struct {
	Token      token.Token // the token.FUNCTION token
	Name       *Identifier
	Parameters []*VarStatement
	Body       *BlockStatement
}

func (fs *FunctionStatement) statementNode() {}

func (fs *FunctionStatement) TokenLiteral() string {
	return fs.Token.Literal
}

func (fs *FunctionStatement) String() string {
	params := make([]string, 0, len(fs.Parameters))
	for _, p := range fs.Parameters {
		params = append(params, p.String())
	}

	return "def " + fs.Name.String() + "(" + strings.Join(params, ", ") + ") " + fs.Body.String()
}

// BlockStatement is a statement list between braces; it is also a function body.
type BlockStatement struct {
	Token      token.Token // the token.LBRACE token
	Statements []Statement
}

func (bs *BlockStatement) statementNode() {}

func (bs *BlockStatement) TokenLiteral() string {
	return bs.Token.Literal
}

func (bs *BlockStatement) String() string {
	if len(bs.Statements) == 0 {
		return "{ }"
	}
	return "{ " + joinStatements(bs.Statements) + " }"
}

func joinStatements(statements []Statement) string {
	parts := make([]string, 0, len(statements))
	for _, s := range statements {
		parts = append(parts, s.String()+";")
	}
	return strings.Join(parts, " ")
}

// Expressions

type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) expressionNode() {}

func (i *Identifier) TokenLiteral() string {
	return i.Token.Literal
}

func (i *Identifier) String() string {
	return i.Value
}

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode() {}

func (nl *NumberLiteral) TokenLiteral() string {
	return nl.Token.Literal
}

func (nl *NumberLiteral) String() string {
	return nl.Token.Literal
}

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode() {}

func (sl *StringLiteral) TokenLiteral() string {
	return sl.Token.Literal
}

func (sl *StringLiteral) String() string {
	return `"` + sl.Value + `"`
}

type Boolean struct {
	Token token.Token
	Value bool
}

func (b *Boolean) expressionNode() {}

func (b *Boolean) TokenLiteral() string {
	return b.Token.Literal
}

func (b *Boolean) String() string {
	return b.Token.Literal
}

// PrefixExpression is unary minus or logical not
type PrefixExpression struct {
	Token    token.Token // the prefix token, e.g. - or !
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode() {}

func (pe *PrefixExpression) TokenLiteral() string {
	return pe.Token.Literal
}

func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + pe.Right.String() + ")"
}

// InfixExpression is one of + - * /
type InfixExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode() {}

func (ie *InfixExpression) TokenLiteral() string {
	return ie.Token.Literal
}

func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// RelationalExpression is one of == != < <= > >=
type RelationalExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (re *RelationalExpression) expressionNode() {}

func (re *RelationalExpression) TokenLiteral() string {
	return re.Token.Literal
}

func (re *RelationalExpression) String() string {
	return "(" + re.Left.String() + " " + re.Operator + " " + re.Right.String() + ")"
}

// AssignExpression stores Value into Target, which the parser guarantees
// to be an *Identifier or an *IndexExpression.
type AssignExpression struct {
	Token  token.Token // the token.ASSIGN token
	Target Expression
	Value  Expression
}

func (ae *AssignExpression) expressionNode() {}

func (ae *AssignExpression) TokenLiteral() string {
	return ae.Token.Literal
}

func (ae *AssignExpression) String() string {
	return ae.Target.String() + " := " + ae.Value.String()
}

type ListLiteral struct {
	Token    token.Token // the token.LBRACKET token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode() {}

func (ll *ListLiteral) TokenLiteral() string {
	return ll.Token.Literal
}

func (ll *ListLiteral) String() string {
	return "[" + joinExpressions(ll.Elements) + "]"
}

type IndexExpression struct {
	Token token.Token // the token.LBRACKET token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode() {}

func (ie *IndexExpression) TokenLiteral() string {
	return ie.Token.Literal
}

func (ie *IndexExpression) String() string {
	return ie.Left.String() + "[" + ie.Index.String() + "]"
}

type CallExpression struct {
	Token     token.Token // the token.LPAREN token
	Function  Expression  // usually an *Identifier
	Arguments []Expression
}

func (ce *CallExpression) expressionNode() {}

func (ce *CallExpression) TokenLiteral() string {
	return ce.Token.Literal
}

func (ce *CallExpression) String() string {
	return ce.Function.String() + "(" + joinExpressions(ce.Arguments) + ")"
}

func joinExpressions(expressions []Expression) string {
	parts := make([]string, 0, len(expressions))
	for _, e := range expressions {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}
