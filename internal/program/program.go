package program

// Variable is a named parameter or activation resolved through its owning
// program's block variable table.
type Variable struct {
	Name string
}

// Op is a single operator in a program: a type tag, named input and output
// variable-name lists keyed by slot, and a free-form attribute map.
type Op struct {
	Type    string
	Inputs  map[string][]string
	Outputs map[string][]string
	Attrs   map[string]any
}

// Input returns the variable names bound to the given input slot.
func (o *Op) Input(slot string) []string {
	return o.Inputs[slot]
}

// Output returns the variable names bound to the given output slot.
func (o *Op) Output(slot string) []string {
	return o.Outputs[slot]
}

// BoolAttr returns the named attribute as a bool. A missing attribute or a
// non-bool value reads as false.
func (o *Op) BoolAttr(name string) bool {
	v, ok := o.Attrs[name].(bool)
	return ok && v
}

// Program is an immutable computation description: an ordered operator
// sequence plus the current block's variable table.
type Program struct {
	ops  []*Op
	vars map[string]*Variable
}

// New returns an empty program.
func New() *Program {
	return &Program{
		vars: make(map[string]*Variable),
	}
}

// AddOp appends an operator to the program. Any variable name the operator
// references must be defined via DefineVar before resolution runs.
func (p *Program) AddOp(op *Op) {
	p.ops = append(p.ops, op)
}

// DefineVar registers a variable in the program's block variable table and
// returns its handle. Defining the same name twice returns the existing handle.
func (p *Program) DefineVar(name string) *Variable {
	if v, ok := p.vars[name]; ok {
		return v
	}
	v := &Variable{Name: name}
	p.vars[name] = v
	return v
}

// Ops returns the program's operators in definition order.
func (p *Program) Ops() []*Op {
	return p.ops
}

// Var resolves a variable name through the block variable table.
func (p *Program) Var(name string) (*Variable, bool) {
	v, ok := p.vars[name]
	return v, ok
}
