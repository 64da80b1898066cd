package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/psfleet/internal/program"
)

// lookupOp builds a distributed lookup_table op over one table.
func lookupOp(table string, distributed bool, ids, outs []string) *program.Op {
	return &program.Op{
		Type:    OpLookupTable,
		Inputs:  map[string][]string{"W": {table}, "Ids": ids},
		Outputs: map[string][]string{"Out": outs},
		Attrs:   map[string]any{"is_distributed": distributed},
	}
}

func lookupGradOp(table string, outGrads []string) *program.Op {
	return &program.Op{
		Type:   OpLookupTableGrad,
		Inputs: map[string][]string{"W": {table}, "Out@GRAD": outGrads},
	}
}

func TestFindDistributedTables(t *testing.T) {
	t.Run("first-seen order, deduplicated", func(t *testing.T) {
		p := program.New()
		p.AddOp(lookupOp("emb_b", true, nil, nil))
		p.AddOp(lookupOp("emb_a", true, nil, nil))
		p.AddOp(lookupOp("emb_b", true, nil, nil)) // repeat

		assert.Equal(t, []string{"emb_b", "emb_a"}, FindDistributedTables(p))
	})

	t.Run("ignores non-distributed lookups and other ops", func(t *testing.T) {
		p := program.New()
		p.AddOp(lookupOp("emb_local", false, nil, nil))
		p.AddOp(&program.Op{Type: "mul"})
		p.AddOp(lookupOp("emb_dist", true, nil, nil))

		assert.Equal(t, []string{"emb_dist"}, FindDistributedTables(p))
	})

	t.Run("empty program", func(t *testing.T) {
		assert.Empty(t, FindDistributedTables(program.New()))
	})
}

func TestCollectTableIO(t *testing.T) {
	newProg := func() *program.Program {
		p := program.New()
		for _, name := range []string{"id_a", "id_b", "out_a", "out_b", "out_a@GRAD"} {
			p.DefineVar(name)
		}
		p.AddOp(lookupOp("emb", true, []string{"id_a"}, []string{"out_a"}))
		p.AddOp(lookupOp("emb", true, []string{"id_b"}, []string{"out_b"}))
		p.AddOp(lookupGradOp("emb", []string{"out_a@GRAD"}))
		return p
	}

	t.Run("accumulates per table across ops", func(t *testing.T) {
		p := newProg()
		io, err := CollectTableIO(p, []string{"emb"})
		require.NoError(t, err)
		require.Contains(t, io, "emb")

		names := func(vars []*program.Variable) []string {
			out := make([]string, len(vars))
			for i, v := range vars {
				out[i] = v.Name
			}
			return out
		}
		assert.Equal(t, []string{"id_a", "id_b"}, names(io["emb"].Inputs))
		assert.Equal(t, []string{"out_a", "out_b"}, names(io["emb"].Outputs))
		assert.Equal(t, []string{"out_a@GRAD"}, names(io["emb"].Grads))
	})

	t.Run("unrequested tables are skipped", func(t *testing.T) {
		p := newProg()
		io, err := CollectTableIO(p, []string{"other"})
		require.NoError(t, err)
		assert.Empty(t, io["other"].Inputs)
	})

	t.Run("unresolvable variable is fatal", func(t *testing.T) {
		p := program.New()
		p.AddOp(lookupOp("emb", true, []string{"undefined_id"}, nil))
		_, err := CollectTableIO(p, []string{"emb"})
		require.Error(t, err)
		assert.ErrorContains(t, err, "undefined_id")
	})
}
