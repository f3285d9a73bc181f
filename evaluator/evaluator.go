package evaluator

import (
	"fmt"
	"io"
	"math"
	"os"

	"fortio.org/log"

	"github.com/titivuk/lino/ast"
	"github.com/titivuk/lino/object"
	"github.com/titivuk/lino/parser"
)

// DefaultMaxCallDepth bounds nested user calls when no limit is given.
const DefaultMaxCallDepth = 10000

// reuse some objects (similar to oddbals in v8 engine)
var (
	NIL   = &object.Nil{}
	TRUE  = &object.Boolean{Value: true}
	FALSE = &object.Boolean{Value: false}
)

// signal tells the enclosing statement list whether to keep going.
type signal int

const (
	normal signal = iota
	// a return statement ran; its value is on top of the operand stack
	returning
)

// Evaluator owns the state of one session: the environment and the
// operand stack persist across every line it executes.
type Evaluator struct {
	env   *object.Environment
	stack *Stack

	// number of user function calls in progress
	callDepth    int
	maxCallDepth int

	stdout io.Writer
	stderr io.Writer
}

type Option func(*Evaluator)

// WithStdout sets where println writes.
func WithStdout(w io.Writer) Option {
	return func(e *Evaluator) {
		e.stdout = w
	}
}

// WithStderr sets where recoverable diagnostics are reported.
func WithStderr(w io.Writer) Option {
	return func(e *Evaluator) {
		e.stderr = w
	}
}

func WithStackCapacity(n int) Option {
	return func(e *Evaluator) {
		e.stack = NewStack(n)
	}
}

// WithMaxCallDepth bounds how deeply user functions may nest.
func WithMaxCallDepth(n int) Option {
	return func(e *Evaluator) {
		if n <= 0 {
			n = DefaultMaxCallDepth
		}
		e.maxCallDepth = n
	}
}

func WithEnvironment(env *object.Environment) Option {
	return func(e *Evaluator) {
		e.env = env
	}
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		env:    object.NewEnvironment(),
		stack:  NewStack(DefaultStackCapacity),
		stdout: os.Stdout,

		maxCallDepth: DefaultMaxCallDepth,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) Environment() *object.Environment {
	return e.env
}

// StackDepth is the number of values on the operand stack, zero between lines.
func (e *Evaluator) StackDepth() int {
	return e.stack.Len()
}

// Run parses and executes one line.
func (e *Evaluator) Run(line string) error {
	program, err := parser.Parse(line)
	if err != nil {
		return err
	}
	return e.Execute(program)
}

// Execute runs a parsed line. An error stops the rest of the line, the
// effects of statements that already ran are kept.
func (e *Evaluator) Execute(program *ast.Program) error {
	base := e.stack.Len()
	depth := e.env.Depth()

	sig, err := e.execStatements(program.Statements)
	if err != nil {
		e.stack.truncate(base)
		for e.env.Depth() > depth {
			e.env.Pop()
		}
		log.LogVf("line failed: %v", err)
		return err
	}

	// return at the top level ends the line, its value is dropped
	if sig == returning {
		e.pop()
	}

	return nil
}

func (e *Evaluator) execStatements(statements []ast.Statement) (signal, error) {
	for _, st := range statements {
		sig, err := e.execStatement(st)
		if err != nil {
			return normal, err
		}

		// all statements after a return are unreachable
		if sig == returning {
			return returning, nil
		}
	}

	return normal, nil
}

func (e *Evaluator) execStatement(node ast.Statement) (signal, error) {
	log.LogVf("exec %T", node)

	switch node := node.(type) {
	case *ast.ExpressionStatement:
		if err := e.evalExpression(node.Expression); err != nil {
			return normal, err
		}
		e.pop()
		return normal, nil
	case *ast.PrintStatement:
		if err := e.evalExpression(node.Value); err != nil {
			return normal, err
		}
		fmt.Fprintln(e.stdout, e.pop().Inspect())
		return normal, nil
	case *ast.VarStatement:
		return normal, e.execVarStatement(node)
	case *ast.WhileStatement:
		return e.execWhileStatement(node)
	case *ast.IfStatement:
		return e.execIfStatement(node)
	case *ast.FunctionStatement:
		e.env.DefineGlobal(node.Name.Value, &object.Function{
			Name:       node.Name.Value,
			Parameters: node.Parameters,
			Body:       node.Body,
		})
		return normal, nil
	case *ast.ReturnStatement:
		if err := e.evalExpression(node.ReturnValue); err != nil {
			return normal, err
		}
		return returning, nil
	case *ast.BlockStatement:
		return e.execStatements(node.Statements)
	default:
		return normal, fmt.Errorf("cannot execute %T", node)
	}
}

func (e *Evaluator) execVarStatement(vs *ast.VarStatement) error {
	if vs.Value == nil {
		e.env.Define(vs.Name.Value, NIL)
		return nil
	}

	if err := e.evalExpression(vs.Value); err != nil {
		return err
	}
	e.env.Define(vs.Name.Value, e.pop())

	return nil
}

// a return inside the body leaves the loop without checking the
// condition again
func (e *Evaluator) execWhileStatement(ws *ast.WhileStatement) (signal, error) {
	for {
		if err := e.evalExpression(ws.Condition); err != nil {
			return normal, err
		}
		if !isTruthy(e.pop()) {
			return normal, nil
		}

		sig, err := e.execStatements(ws.Body.Statements)
		if err != nil || sig == returning {
			return sig, err
		}
	}
}

func (e *Evaluator) execIfStatement(is *ast.IfStatement) (signal, error) {
	if err := e.evalExpression(is.Condition); err != nil {
		return normal, err
	}

	if isTruthy(e.pop()) {
		return e.execStatements(is.Consequence.Statements)
	}

	if is.Alternative != nil {
		return e.execStatements(is.Alternative.Statements)
	}

	return normal, nil
}

// evalExpression pushes exactly one value when it returns nil.
func (e *Evaluator) evalExpression(node ast.Expression) error {
	switch node := node.(type) {
	case *ast.NumberLiteral:
		return e.push(&object.Number{Value: node.Value})
	case *ast.StringLiteral:
		return e.push(&object.String{Value: node.Value})
	case *ast.Boolean:
		return e.push(nativeBoolToBooleanObject(node.Value))
	case *ast.Identifier:
		return e.push(e.evalIdentifier(node))
	case *ast.PrefixExpression:
		if err := e.evalExpression(node.Right); err != nil {
			return err
		}

		result, err := evalPrefixExpression(node.Operator, e.pop())
		if err != nil {
			return err
		}
		return e.push(result)
	case *ast.InfixExpression:
		right, left, err := e.evalOperands(node.Left, node.Right)
		if err != nil {
			return err
		}

		result, err := evalInfixExpression(left, node.Operator, right)
		if err != nil {
			return err
		}
		return e.push(result)
	case *ast.RelationalExpression:
		right, left, err := e.evalOperands(node.Left, node.Right)
		if err != nil {
			return err
		}

		result, err := evalRelationalExpression(left, node.Operator, right)
		if err != nil {
			return err
		}
		return e.push(result)
	case *ast.AssignExpression:
		return e.evalAssignExpression(node)
	case *ast.ListLiteral:
		return e.evalListLiteral(node)
	case *ast.IndexExpression:
		return e.evalIndexExpression(node)
	case *ast.CallExpression:
		return e.evalCallExpression(node)
	default:
		return fmt.Errorf("cannot evaluate %T", node)
	}
}

// evalOperands evaluates left then right and pops them back in reverse.
func (e *Evaluator) evalOperands(left, right ast.Expression) (object.Object, object.Object, error) {
	if err := e.evalExpression(left); err != nil {
		return nil, nil, err
	}
	if err := e.evalExpression(right); err != nil {
		return nil, nil, err
	}

	r := e.pop()
	l := e.pop()
	return r, l, nil
}

func (e *Evaluator) evalIdentifier(node *ast.Identifier) object.Object {
	if val, ok := e.env.Get(node.Value); ok {
		return val
	}

	e.report(fmt.Errorf("%w: %s", ErrUnresolved, node.Value))
	return NIL
}

func (e *Evaluator) evalAssignExpression(node *ast.AssignExpression) error {
	switch target := node.Target.(type) {
	case *ast.Identifier:
		if err := e.evalExpression(node.Value); err != nil {
			return err
		}

		// assignment binds in the innermost scope, a call only reads
		// the bindings of enclosing scopes
		val := e.pop()
		e.env.Define(target.Value, val)
		return e.push(val)
	case *ast.IndexExpression:
		list, err := e.evalList(target.Left)
		if err != nil {
			return err
		}
		index, err := e.evalIndex(target.Index, list)
		if err != nil {
			return err
		}
		if err := e.evalExpression(node.Value); err != nil {
			return err
		}

		val := e.pop()
		list.Elements[index] = val
		return e.push(val)
	default:
		return fmt.Errorf("invalid assignment target %s", node.Target.String())
	}
}

func (e *Evaluator) evalListLiteral(node *ast.ListLiteral) error {
	elements := make([]object.Object, 0, len(node.Elements))
	for _, el := range node.Elements {
		if err := e.evalExpression(el); err != nil {
			return err
		}
		elements = append(elements, e.pop())
	}

	return e.push(&object.List{Elements: elements})
}

func (e *Evaluator) evalIndexExpression(node *ast.IndexExpression) error {
	list, err := e.evalList(node.Left)
	if err != nil {
		return err
	}
	index, err := e.evalIndex(node.Index, list)
	if err != nil {
		return err
	}

	return e.push(list.Elements[index])
}

func (e *Evaluator) evalList(node ast.Expression) (*object.List, error) {
	if err := e.evalExpression(node); err != nil {
		return nil, err
	}

	val := e.pop()
	list, ok := val.(*object.List)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotIndexable, node.String(), val.Type())
	}
	return list, nil
}

// evalIndex truncates the index toward zero and checks it against list.
func (e *Evaluator) evalIndex(node ast.Expression, list *object.List) (int, error) {
	if err := e.evalExpression(node); err != nil {
		return 0, err
	}

	val := e.pop()
	num, ok := val.(*object.Number)
	if !ok {
		return 0, fmt.Errorf("%w: index %s is %s", ErrTypeMismatch, node.String(), val.Type())
	}

	index := math.Trunc(num.Value)
	if math.IsNaN(index) || index < 0 || index >= float64(len(list.Elements)) {
		return 0, fmt.Errorf("%w: index %s, length %d", ErrIndexOutOfRange, num.Inspect(), len(list.Elements))
	}
	return int(index), nil
}

func (e *Evaluator) evalCallExpression(node *ast.CallExpression) error {
	if err := e.evalExpression(node.Function); err != nil {
		return err
	}

	val := e.pop()
	fn, ok := val.(*object.Function)
	if !ok {
		return fmt.Errorf("%w: %s is %s", ErrNotCallable, node.Function.String(), val.Type())
	}

	// arguments are evaluated left to right in the caller's scope
	args := make([]object.Object, 0, len(node.Arguments))
	for _, arg := range node.Arguments {
		if err := e.evalExpression(arg); err != nil {
			return err
		}
		args = append(args, e.pop())
	}

	return e.applyFunction(fn, args)
}

// applyFunction binds args to parameters by position; surplus arguments or
// parameters are ignored. The call scope is closed whether or not the body
// returned or failed.
func (e *Evaluator) applyFunction(fn *object.Function, args []object.Object) error {
	log.LogVf("call %s with %d args", fn.Name, len(args))

	if e.callDepth >= e.maxCallDepth {
		return fmt.Errorf("%w: %s at depth %d", ErrCallDepth, fn.Name, e.maxCallDepth)
	}
	e.callDepth++
	defer func() { e.callDepth-- }()

	e.env.Push()
	defer e.env.Pop()

	for i, param := range fn.Parameters {
		if i >= len(args) {
			break
		}
		e.env.Define(param.Name.Value, args[i])
	}

	sig, err := e.execStatements(fn.Body.Statements)
	if err != nil {
		return err
	}

	// the value of the return statement is already on the stack
	if sig == returning {
		return nil
	}
	return e.push(NIL)
}

func (e *Evaluator) push(obj object.Object) error {
	return e.stack.Push(obj)
}

func (e *Evaluator) pop() object.Object {
	obj, ok := e.stack.Pop()
	if !ok {
		e.report(ErrStackUnderflow)
		return NIL
	}
	return obj
}

// report surfaces a recoverable diagnostic; evaluation goes on.
func (e *Evaluator) report(err error) {
	log.LogVf("diagnostic: %v", err)
	fmt.Fprintln(e.stderr, err.Error())
}
