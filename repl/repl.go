// Package repl reads lines, runs them through one persistent evaluator and
// prints the diagnostics. A failing line never ends the session.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"fortio.org/log"
	"github.com/peterh/liner"

	"github.com/titivuk/lino/evaluator"
	"github.com/titivuk/lino/lexer"
	"github.com/titivuk/lino/parser"
	"github.com/titivuk/lino/printer"
)

const DefaultPrompt = " > "

// LineReader is the terminal side of the loop. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// historyAppender is implemented by readers that keep a history, like
// *liner.State.
type historyAppender interface {
	AppendHistory(item string)
}

// Reader is a LineReader over any io.Reader. It echoes the prompt to w
// when w is not nil.
type Reader struct {
	scanner *bufio.Scanner
	w       io.Writer
}

func NewReader(r io.Reader, w io.Writer) *Reader {
	return &Reader{scanner: bufio.NewScanner(r), w: w}
}

func (r *Reader) Prompt(prompt string) (string, error) {
	if r.w != nil {
		fmt.Fprint(r.w, prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

type REPL struct {
	in     LineReader
	out    io.Writer
	errOut io.Writer
	eval   *evaluator.Evaluator

	prompt      string
	traceTokens bool
	traceAST    bool
}

type Option func(*REPL)

func WithPrompt(prompt string) Option {
	return func(r *REPL) {
		r.prompt = prompt
	}
}

// WithTokenTrace dumps the tokens of every line before it runs.
func WithTokenTrace(on bool) Option {
	return func(r *REPL) {
		r.traceTokens = on
	}
}

// WithASTTrace dumps the syntax tree of every line before it runs.
func WithASTTrace(on bool) Option {
	return func(r *REPL) {
		r.traceAST = on
	}
}

// WithEvaluator replaces the evaluator built from out and errOut.
func WithEvaluator(ev *evaluator.Evaluator) Option {
	return func(r *REPL) {
		r.eval = ev
	}
}

func New(in LineReader, out, errOut io.Writer, opts ...Option) *REPL {
	r := &REPL{
		in:     in,
		out:    out,
		errOut: errOut,
		prompt: DefaultPrompt,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.eval == nil {
		r.eval = evaluator.New(evaluator.WithStdout(out), evaluator.WithStderr(errOut))
	}
	return r
}

func (r *REPL) Evaluator() *evaluator.Evaluator {
	return r.eval
}

// Run loops until quit or end of input. Only a failing reader makes it
// return an error.
func (r *REPL) Run() error {
	for {
		line, err := r.in.Prompt(r.prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// ctrl-c drops the line being typed
			continue
		}
		if err != nil {
			return fmt.Errorf("repl: read: %w", err)
		}

		if strings.TrimSpace(line) != "" {
			if h, ok := r.in.(historyAppender); ok {
				h.AppendHistory(line)
			}
		}

		if r.Line(line) {
			return nil
		}
	}
}

// Line handles one input line and reports whether the session should end.
func (r *REPL) Line(line string) (quit bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	if trimmed == "quit" || strings.HasPrefix(trimmed, ":") {
		return r.command(trimmed)
	}

	if err := r.execute(line); err != nil {
		fmt.Fprintln(r.errOut, err.Error())
	}
	return false
}

func (r *REPL) command(cmd string) (quit bool) {
	name, arg, _ := strings.Cut(cmd, " ")
	switch name {
	case "quit", ":quit":
		return true
	case ":tokens":
		printer.FprintTokens(r.out, lexer.Tokenize(arg))
	case ":ast":
		program, err := parser.Parse(arg)
		if err != nil {
			fmt.Fprintln(r.errOut, err.Error())
			return false
		}
		printer.Fprint(r.out, program)
	default:
		fmt.Fprintf(r.errOut, "unknown command %s. Type :quit to exit.\n", name)
	}
	return false
}

func (r *REPL) execute(line string) error {
	if r.traceTokens {
		printer.FprintTokens(r.out, lexer.Tokenize(line))
	}

	program, err := parser.Parse(line)
	if err != nil {
		return err
	}

	if r.traceAST {
		printer.Fprint(r.out, program)
	}

	if err := r.eval.Execute(program); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}

// RunScript feeds src through the evaluator one line at a time without
// prompting and returns how many lines failed.
func (r *REPL) RunScript(name string, src io.Reader) (int, error) {
	failed := 0
	scanner := bufio.NewScanner(src)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := r.execute(line); err != nil {
			log.Errf("%s:%d: %v", name, n, err)
			failed++
		}
	}
	if err := scanner.Err(); err != nil {
		return failed, fmt.Errorf("repl: read %s: %w", name, err)
	}
	return failed, nil
}
