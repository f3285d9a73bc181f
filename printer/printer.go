// Package printer renders tokens and syntax trees for debugging.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/titivuk/lino/ast"
	"github.com/titivuk/lino/token"
)

// FprintTokens writes one `[ KIND, lexeme ]` line per token.
func FprintTokens(w io.Writer, tokens []token.Token) {
	for _, tok := range tokens {
		fmt.Fprintln(w, tok.String())
	}
}

// Fprint writes node as an indented tree, two spaces per level.
func Fprint(w io.Writer, node ast.Node) {
	// the root caption sits at column zero
	p := &treePrinter{w: w, depth: -1}
	p.node(node)
}

// Sprint is Fprint into a string.
func Sprint(node ast.Node) string {
	var b strings.Builder
	Fprint(&b, node)
	return b.String()
}

type treePrinter struct {
	w     io.Writer
	depth int
}

func (p *treePrinter) say(s string) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.depth), s)
}

func (p *treePrinter) enter(s string) {
	p.depth++
	p.say(s)
}

func (p *treePrinter) leave() {
	p.depth--
}

func (p *treePrinter) statements(list []ast.Statement) {
	for _, st := range list {
		p.node(st)
	}
}

func (p *treePrinter) node(node ast.Node) {
	switch node := node.(type) {
	case *ast.Program:
		p.enter("Program")
		p.statements(node.Statements)
		p.leave()
	case *ast.BlockStatement:
		p.statements(node.Statements)
	case *ast.PrintStatement:
		p.enter("Print statement")
		p.node(node.Value)
		p.leave()
	case *ast.WhileStatement:
		p.enter("While statement")
		p.node(node.Condition)
		p.node(node.Body)
		p.leave()
	case *ast.IfStatement:
		p.enter("if statement")
		p.node(node.Condition)
		p.node(node.Consequence)
		if node.Alternative != nil {
			p.enter("else")
			p.node(node.Alternative)
			p.leave()
		}
		p.leave()
	case *ast.ExpressionStatement:
		p.enter("Expr Statement")
		p.node(node.Expression)
		p.leave()
	case *ast.VarStatement:
		p.enter("Variable Definition")
		p.say(node.Name.Value)
		if node.Value != nil {
			p.node(node.Value)
		}
		p.leave()
	case *ast.FunctionStatement:
		p.enter("Function Definition")
		p.say(node.Name.Value)
		p.enter("Parameter List")
		for _, param := range node.Parameters {
			p.node(param)
		}
		p.leave()
		p.node(node.Body)
		p.leave()
	case *ast.ReturnStatement:
		p.enter("return statement")
		p.node(node.ReturnValue)
		p.leave()
	case *ast.Identifier:
		p.enter("Id Expression")
		p.say(node.Value)
		p.leave()
	case *ast.NumberLiteral, *ast.StringLiteral, *ast.Boolean:
		p.enter("Literal Expression")
		p.say(node.TokenLiteral())
		p.leave()
	case *ast.PrefixExpression:
		p.enter("unary expr")
		p.say(node.Operator)
		p.node(node.Right)
		p.leave()
	case *ast.InfixExpression:
		p.enter("Binary Expression")
		p.say(node.Operator)
		p.node(node.Left)
		p.node(node.Right)
		p.leave()
	case *ast.RelationalExpression:
		p.enter("Relop Expression")
		p.say(node.Operator)
		p.node(node.Left)
		p.node(node.Right)
		p.leave()
	case *ast.AssignExpression:
		p.enter("Assignment Expression")
		p.node(node.Target)
		p.node(node.Value)
		p.leave()
	case *ast.ListLiteral:
		p.enter("list expression")
		for _, el := range node.Elements {
			p.node(el)
		}
		p.leave()
	case *ast.IndexExpression:
		p.enter("subscript expression")
		p.node(node.Left)
		p.node(node.Index)
		p.leave()
	case *ast.CallExpression:
		p.enter("Function call")
		p.node(node.Function)
		for _, arg := range node.Arguments {
			p.node(arg)
		}
		p.leave()
	default:
		p.enter(fmt.Sprintf("%T", node))
		p.leave()
	}
}
