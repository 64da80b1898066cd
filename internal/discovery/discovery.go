package discovery

import (
	"fmt"

	"github.com/vk/psfleet/internal/program"
)

// Operator types and slot names of the distributed lookup-table pair. The
// forward/backward pair is handled specially by the parameter-server path and
// is excluded from generic dense/sparse distribution.
const (
	OpLookupTable     = "lookup_table"
	OpLookupTableGrad = "lookup_table_grad"

	slotWeight  = "W"
	slotIds     = "Ids"
	slotOut     = "Out"
	slotOutGrad = "Out@GRAD"

	attrIsDistributed = "is_distributed"
)

// FindDistributedTables walks the program's operators once and returns the
// names of all distributed lookup-table weights, in first-seen order. The
// order is load-bearing: global table ids are assigned from it.
func FindDistributedTables(p *program.Program) []string {
	seen := make(map[string]bool)
	var tables []string
	for _, op := range p.Ops() {
		if op.Type != OpLookupTable || !op.BoolAttr(attrIsDistributed) {
			continue
		}
		w := op.Input(slotWeight)
		if len(w) == 0 {
			continue
		}
		if !seen[w[0]] {
			seen[w[0]] = true
			tables = append(tables, w[0])
		}
	}
	return tables
}

// TableIO carries one table's worker-side participation variables: the id
// inputs fed to the lookup, the lookup outputs, and the output gradients fed
// to the backward lookup.
type TableIO struct {
	Inputs  []*program.Variable
	Outputs []*program.Variable
	Grads   []*program.Variable
}

// CollectTableIO walks the program's operators and accumulates, for every
// requested table, the lookup inputs/outputs and the lookup-grad gradients.
// Every referenced name must resolve through the program's variable table; a
// miss is a graph-construction bug and fails the whole collection.
func CollectTableIO(p *program.Program, tables []string) (map[string]*TableIO, error) {
	requested := make(map[string]bool, len(tables))
	io := make(map[string]*TableIO, len(tables))
	for _, tn := range tables {
		requested[tn] = true
		io[tn] = &TableIO{}
	}

	for _, op := range p.Ops() {
		switch op.Type {
		case OpLookupTable:
			w := op.Input(slotWeight)
			if len(w) == 0 || !requested[w[0]] {
				continue
			}
			entry := io[w[0]]
			vars, err := resolveAll(p, op.Input(slotIds))
			if err != nil {
				return nil, fmt.Errorf("collecting inputs of table %q: %w", w[0], err)
			}
			entry.Inputs = append(entry.Inputs, vars...)

			vars, err = resolveAll(p, op.Output(slotOut))
			if err != nil {
				return nil, fmt.Errorf("collecting outputs of table %q: %w", w[0], err)
			}
			entry.Outputs = append(entry.Outputs, vars...)

		case OpLookupTableGrad:
			w := op.Input(slotWeight)
			if len(w) == 0 || !requested[w[0]] {
				continue
			}
			entry := io[w[0]]
			vars, err := resolveAll(p, op.Input(slotOutGrad))
			if err != nil {
				return nil, fmt.Errorf("collecting gradients of table %q: %w", w[0], err)
			}
			entry.Grads = append(entry.Grads, vars...)
		}
	}
	return io, nil
}

// resolveAll maps variable names to handles via the block variable table.
func resolveAll(p *program.Program, names []string) ([]*program.Variable, error) {
	vars := make([]*program.Variable, 0, len(names))
	for _, name := range names {
		v, ok := p.Var(name)
		if !ok {
			return nil, fmt.Errorf("variable %q not found in block variable table", name)
		}
		vars = append(vars, v)
	}
	return vars, nil
}
