package object

import (
	"math"
	"strconv"
	"strings"

	"github.com/titivuk/lino/ast"
)

type ObjectType string

const (
	NUMBER_OBJ   = "NUMBER"
	STRING_OBJ   = "STRING"
	BOOLEAN_OBJ  = "BOOLEAN"
	FUNCTION_OBJ = "FUNCTION"
	LIST_OBJ     = "LIST"
	NIL_OBJ      = "NIL"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }

// integral values below 1e21 print without exponent, everything else in
// the shortest form that round-trips
func (n *Number) Inspect() string {
	if n.Value == math.Trunc(n.Value) && math.Abs(n.Value) < 1e21 {
		return strconv.FormatFloat(n.Value, 'f', -1, 64)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }

func (b *Boolean) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

// Function shares the parameter list and body with the definition that
// created it; the AST outlives the line it was parsed from.
type Function struct {
	Name       string
	Parameters []*ast.VarStatement
	Body       *ast.BlockStatement
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string  { return "(func)" }

// List is always handled through its pointer, so every holder of the same
// *List sees mutations made through any other.
type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }

func (l *List) Inspect() string {
	var out strings.Builder
	l.inspect(&out, map[*List]bool{})
	return out.String()
}

// a list that contains itself renders the inner occurrence as {...}
func (l *List) inspect(out *strings.Builder, seen map[*List]bool) {
	if seen[l] {
		out.WriteString("{...}")
		return
	}
	seen[l] = true
	defer delete(seen, l)

	out.WriteString("vector, size=")
	out.WriteString(strconv.Itoa(len(l.Elements)))
	out.WriteString(", { ")
	for _, e := range l.Elements {
		if inner, ok := e.(*List); ok {
			inner.inspect(out, seen)
		} else {
			out.WriteString(e.Inspect())
		}
		out.WriteString(" ")
	}
	out.WriteString("}")
}
