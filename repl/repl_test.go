package repl

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type input struct {
	line string
	err  error
}

// scripted replays inputs, then reports EOF. It records prompts and history.
type scripted struct {
	inputs  []input
	prompts []string
	history []string
}

func (s *scripted) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.inputs) == 0 {
		return "", io.EOF
	}
	in := s.inputs[0]
	s.inputs = s.inputs[1:]
	return in.line, in.err
}

func (s *scripted) AppendHistory(item string) {
	s.history = append(s.history, item)
}

func lines(ls ...string) *scripted {
	s := &scripted{}
	for _, l := range ls {
		s.inputs = append(s.inputs, input{line: l})
	}
	return s
}

func TestRunKeepsStateAcrossLines(t *testing.T) {
	var out, errOut bytes.Buffer
	in := lines("var x := 2", "", "x := x * 21", "println x")

	require.NoError(t, New(in, &out, &errOut).Run())

	assert.Equal(t, "42\n", out.String())
	assert.Empty(t, errOut.String())
	assert.Equal(t, []string{"var x := 2", "x := x * 21", "println x"}, in.history)
	assert.Equal(t, []string{" > ", " > ", " > ", " > ", " > "}, in.prompts)
}

func TestRunStopsOnQuit(t *testing.T) {
	for _, cmd := range []string{"quit", ":quit", "  quit  "} {
		var out, errOut bytes.Buffer
		in := lines("println 1", cmd, "println 2")

		require.NoError(t, New(in, &out, &errOut).Run())
		assert.Equal(t, "1\n", out.String(), cmd)
		require.Len(t, in.inputs, 1, cmd)
	}
}

func TestRunSurvivesErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	in := lines(
		"println (1",
		"var l := [1]; println l[3]; println 9",
		"println y",
		"println 5",
	)

	require.NoError(t, New(in, &out, &errOut).Run())

	assert.Equal(t, "nil\n5\n", out.String())
	expected := `syntax error: expected next token to be ), got EOF instead (near "")
runtime error: index out of range: index 3, length 1
unresolved identifier: y
`
	if diff := cmp.Diff(expected, errOut.String()); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestRunIgnoresAbortedPrompt(t *testing.T) {
	var out, errOut bytes.Buffer
	in := &scripted{inputs: []input{
		{line: "println ", err: liner.ErrPromptAborted},
		{line: "println 7"},
	}}

	require.NoError(t, New(in, &out, &errOut).Run())
	assert.Equal(t, "7\n", out.String())
}

func TestRunReturnsReaderFailure(t *testing.T) {
	broken := errors.New("terminal gone")
	in := &scripted{inputs: []input{{err: broken}}}

	err := New(in, io.Discard, io.Discard).Run()
	require.ErrorIs(t, err, broken)
}

func TestCommands(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(lines(), &out, &errOut, WithPrompt("lino> "))

	assert.False(t, r.Line(":tokens println 1"))
	assert.Equal(t, "[ PRINT, println ]\n[ NUMBER, 1 ]\n[ EOF,  ]\n", out.String())

	out.Reset()
	assert.False(t, r.Line(":ast x"))
	assert.Equal(t, "Program\n  Expr Statement\n    Id Expression\n    x\n", out.String())

	assert.False(t, r.Line(":ast ("))
	assert.False(t, r.Line(":help"))
	assert.Equal(t,
		"syntax error: unexpected token EOF (near \"\")\nunknown command :help. Type :quit to exit.\n",
		errOut.String())

	// commands never reach the evaluator
	_, ok := r.Evaluator().Environment().Get("x")
	assert.False(t, ok)
}

func TestTraceOptions(t *testing.T) {
	var out bytes.Buffer
	r := New(lines(), &out, io.Discard, WithTokenTrace(true), WithASTTrace(true))

	r.Line("println 3")

	expected := `[ PRINT, println ]
[ NUMBER, 3 ]
[ EOF,  ]
Program
  Print statement
    Literal Expression
    3
3
`
	if diff := cmp.Diff(expected, out.String()); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestReader(t *testing.T) {
	var echo bytes.Buffer
	var out bytes.Buffer
	rd := NewReader(strings.NewReader("println 1\nprintln 2\n"), &echo)

	require.NoError(t, New(rd, &out, io.Discard, WithPrompt("$ ")).Run())

	assert.Equal(t, "1\n2\n", out.String())
	assert.Equal(t, "$ $ $ ", echo.String())
}

func TestRunScript(t *testing.T) {
	var out, errOut bytes.Buffer
	src := strings.NewReader(`def fact(n) { if (n <= 1) { return 1 }; return n * fact(n - 1) }

println fact(10)
println [1][2]
println "done"
`)

	failed, err := New(nil, &out, &errOut).RunScript("fact.lino", src)
	require.NoError(t, err)

	assert.Equal(t, 1, failed)
	assert.Equal(t, "3628800\ndone\n", out.String())
}
