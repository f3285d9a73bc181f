package printer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/titivuk/lino/lexer"
	"github.com/titivuk/lino/parser"
)

func TestFprintTokens(t *testing.T) {
	var b strings.Builder
	FprintTokens(&b, lexer.Tokenize(`x := 1`))

	expected := "[ IDENT, x ]\n[ :=, := ]\n[ NUMBER, 1 ]\n[ EOF,  ]\n"
	if diff := cmp.Diff(expected, b.String()); diff != "" {
		t.Errorf("token dump mismatch (-want +got):\n%s", diff)
	}
}

func TestSprint(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"println 1 + x",
			`Program
  Print statement
    Binary Expression
    +
      Literal Expression
      1
      Id Expression
      x
`,
		},
		{
			"var l := [1, 2]; l[0] := -1",
			`Program
  Variable Definition
  l
    list expression
      Literal Expression
      1
      Literal Expression
      2
  Expr Statement
    Assignment Expression
      subscript expression
        Id Expression
        l
        Literal Expression
        0
      unary expr
      -
        Literal Expression
        1
`,
		},
		{
			"def f(a) { return a == 1 }",
			`Program
  Function Definition
  f
    Parameter List
      Variable Definition
      a
    return statement
      Relop Expression
      ==
        Id Expression
        a
        Literal Expression
        1
`,
		},
		{
			`while (x) { if (x) { println "a" } else { f(x) } }`,
			`Program
  While statement
    Id Expression
    x
    if statement
      Id Expression
      x
      Print statement
        Literal Expression
        a
      else
        Expr Statement
          Function call
            Id Expression
            f
            Id Expression
            x
`,
		},
	}

	for _, tt := range tests {
		program, err := parser.Parse(tt.input)
		require.NoError(t, err, tt.input)

		if diff := cmp.Diff(tt.expected, Sprint(program)); diff != "" {
			t.Errorf("tree for %q mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}
