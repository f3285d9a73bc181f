package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titivuk/lino/ast"
	"github.com/titivuk/lino/lexer"
)

func parseOK(t *testing.T, input string) *ast.Program {
	t.Helper()

	p := New(lexer.New(input))
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "input: %s", input)
	return program
}

func TestVarStatements(t *testing.T) {
	tests := []struct {
		input    string
		name     string
		hasValue bool
		value    string
	}{
		{"var x := 5;", "x", true, "5"},
		{"var y := true;", "y", true, "true"},
		{"var foobar := y;", "foobar", true, "y"},
		{"var z;", "z", false, ""},
		{"var l := [1, 2 + 3];", "l", true, "[1, (2 + 3)]"},
	}

	for _, tt := range tests {
		program := parseOK(t, tt.input)
		require.Len(t, program.Statements, 1)

		stmt, ok := program.Statements[0].(*ast.VarStatement)
		require.True(t, ok, "got %T", program.Statements[0])
		assert.Equal(t, tt.name, stmt.Name.Value)
		if !tt.hasValue {
			assert.Nil(t, stmt.Value)
			continue
		}
		require.NotNil(t, stmt.Value)
		assert.Equal(t, tt.value, stmt.Value.String())
	}
}

func TestOperatorPrecedenceParsing(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-a * b", "((-a) * b);"},
		{"!-a", "(!(-a));"},
		{"--a", "(-(-a));"},
		{"a + b + c", "((a + b) + c);"},
		{"a + b - c", "((a + b) - c);"},
		{"a * b * c", "((a * b) * c);"},
		{"a * b / c", "((a * b) / c);"},
		{"a + b / c", "(a + (b / c));"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f);"},
		{"5 > 4 == 3 < 4", "(((5 > 4) == 3) < 4);"},
		{"a <= b != c >= d", "(((a <= b) != c) >= d);"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)));"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4);"},
		{"(5 + 5) * 2", "((5 + 5) * 2);"},
		{"-(5 + 5)", "(-(5 + 5));"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d);"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)));"},
		{"a * [1, 2, 3, 4][b * c] * d", "((a * [1, 2, 3, 4][(b * c)]) * d);"},
		{"-a[0]", "(-a[0]);"},
		{"m[0][1]", "m[0][1];"},
		{"f(1)(2)", "f(1)(2);"},
		{"f(x)[0]", "f(x)[0];"},
		{"x := y + 1 < 3", "x := ((y + 1) < 3);"},
		{"x := (y := 2)", "x := y := 2;"},
		{"l[i + 1] := -2", "l[(i + 1)] := (-2);"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program := parseOK(t, tt.input)
			if diff := cmp.Diff(tt.want, program.String()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLiteralExpressions(t *testing.T) {
	program := parseOK(t, `5; 2.75; "hello world"; true; false; foo; [];`)
	require.Len(t, program.Statements, 7)

	expr := func(i int) ast.Expression {
		return program.Statements[i].(*ast.ExpressionStatement).Expression
	}

	num, ok := expr(0).(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, 5.0, num.Value)

	num, ok = expr(1).(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, 2.75, num.Value)

	str, ok := expr(2).(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "hello world", str.Value)

	b, ok := expr(3).(*ast.Boolean)
	require.True(t, ok)
	assert.True(t, b.Value)

	b, ok = expr(4).(*ast.Boolean)
	require.True(t, ok)
	assert.False(t, b.Value)

	id, ok := expr(5).(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "foo", id.Value)

	list, ok := expr(6).(*ast.ListLiteral)
	require.True(t, ok)
	assert.Empty(t, list.Elements)
}

func TestIfStatement(t *testing.T) {
	program := parseOK(t, "if (x < y) { println x; }")
	require.Len(t, program.Statements, 1)

	stmt, ok := program.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	assert.Equal(t, "(x < y)", stmt.Condition.String())
	require.Len(t, stmt.Consequence.Statements, 1)
	assert.Nil(t, stmt.Alternative, "if without else leaves the fail branch absent")

	program = parseOK(t, "if (x < y) { println x; } else { }")
	stmt = program.Statements[0].(*ast.IfStatement)
	require.NotNil(t, stmt.Alternative)
	assert.Empty(t, stmt.Alternative.Statements)
}

func TestWhileStatement(t *testing.T) {
	program := parseOK(t, "var i := 0; while (i < 3) { println i; i := i + 1; }")
	require.Len(t, program.Statements, 2)

	stmt, ok := program.Statements[1].(*ast.WhileStatement)
	require.True(t, ok)
	assert.Equal(t, "(i < 3)", stmt.Condition.String())
	require.Len(t, stmt.Body.Statements, 2)
	_, ok = stmt.Body.Statements[0].(*ast.PrintStatement)
	assert.True(t, ok)
	es, ok := stmt.Body.Statements[1].(*ast.ExpressionStatement)
	require.True(t, ok)
	_, ok = es.Expression.(*ast.AssignExpression)
	assert.True(t, ok)
}

func TestFunctionStatement(t *testing.T) {
	tests := []struct {
		input  string
		params []string
	}{
		{"def f() { }", []string{}},
		{"def f(x) { return x + 1; }", []string{"x"}},
		{"def add(x, y, z) { return x + y + z; }", []string{"x", "y", "z"}},
		{"def g(var a, b) { return a; }", []string{"a", "b"}},
	}

	for _, tt := range tests {
		program := parseOK(t, tt.input)
		require.Len(t, program.Statements, 1)

		fn, ok := program.Statements[0].(*ast.FunctionStatement)
		require.True(t, ok, "got %T", program.Statements[0])

		got := []string{}
		for _, p := range fn.Parameters {
			assert.Nil(t, p.Value)
			got = append(got, p.Name.Value)
		}
		if diff := cmp.Diff(tt.params, got); diff != "" {
			t.Errorf("%s: parameters mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestStatementSeparators(t *testing.T) {
	program := parseOK(t, "def f(x){ return x + 1; } println f(4);")
	require.Len(t, program.Statements, 2)

	program = parseOK(t, ";; println 1;; println 2 ;")
	assert.Len(t, program.Statements, 2)

	program = parseOK(t, "")
	assert.Empty(t, program.Statements)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a = 1", `illegal token "="`},
		{"var := 1", `expected next token to be IDENT, got := instead (near ":=")`},
		{"1 + 2 := 3", "invalid assignment target (1 + 2)"},
		{"a := b := c", "invalid assignment target a := b"},
		{"f(1) := 2", "invalid assignment target f(1)"},
		{"if x { }", `expected next token to be (, got IDENT instead (near "x")`},
		{"while (x) { println x;", `expected next token to be }, got EOF instead (near "{")`},
		{"println (1 + 2", `expected next token to be ), got EOF instead (near "")`},
		{"def (x) { }", `expected next token to be IDENT, got ( instead (near "(")`},
		{"def f(1) { }", `expected next token to be IDENT, got NUMBER instead (near "1")`},
		{"[1, 2", `expected next token to be ], got EOF instead (near "")`},
		{"println }", `unexpected token } (near "}")`},
		{"x # y", `illegal token "#"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := New(lexer.New(tt.input))
			p.ParseProgram()

			errs := p.Errors()
			require.Len(t, errs, 1, "parsing stops at the first error")
			assert.Equal(t, tt.want, errs[0])
		})
	}
}

func TestParse(t *testing.T) {
	program, err := Parse("println 1;")
	require.NoError(t, err)
	assert.Len(t, program.Statements, 1)

	program, err = Parse("println =;")
	require.Error(t, err)
	assert.Nil(t, program)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, []string{`illegal token "="`}, perr.Messages)
	assert.Equal(t, `syntax error: illegal token "="`, err.Error())
}
