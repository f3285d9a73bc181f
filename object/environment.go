package object

// Environment is a stack of scopes. scopes[0] is the global scope and is
// never popped; a function call pushes a fresh scope and pops it on return.
type Environment struct {
	scopes []map[string]Object
}

func NewEnvironment() *Environment {
	return &Environment{scopes: []map[string]Object{{}}}
}

// Get looks the name up from the innermost scope outwards.
func (e *Environment) Get(name string) (Object, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if obj, ok := e.scopes[i][name]; ok {
			return obj, true
		}
	}
	return nil, false
}

// Define binds name in the innermost scope, shadowing outer bindings.
func (e *Environment) Define(name string, val Object) Object {
	e.scopes[len(e.scopes)-1][name] = val
	return val
}

// DefineGlobal binds name in the outermost scope.
func (e *Environment) DefineGlobal(name string, val Object) Object {
	e.scopes[0][name] = val
	return val
}

func (e *Environment) Push() {
	e.scopes = append(e.scopes, map[string]Object{})
}

// Pop drops the innermost scope. The global scope stays.
func (e *Environment) Pop() {
	if len(e.scopes) == 1 {
		return
	}
	e.scopes[len(e.scopes)-1] = nil
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Depth is the number of scopes, 1 when only the global scope is open.
func (e *Environment) Depth() int {
	return len(e.scopes)
}
