package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineVarIdempotent(t *testing.T) {
	p := New()
	a := p.DefineVar("emb")
	b := p.DefineVar("emb")
	assert.Same(t, a, b)

	v, ok := p.Var("emb")
	require.True(t, ok)
	assert.Equal(t, "emb", v.Name)

	_, ok = p.Var("missing")
	assert.False(t, ok)
}

func TestOpAccessors(t *testing.T) {
	op := &Op{
		Type:    "lookup_table",
		Inputs:  map[string][]string{"W": {"emb"}, "Ids": {"click_id"}},
		Outputs: map[string][]string{"Out": {"emb_out"}},
		Attrs:   map[string]any{"is_distributed": true, "padding_idx": 0},
	}

	assert.Equal(t, []string{"emb"}, op.Input("W"))
	assert.Equal(t, []string{"emb_out"}, op.Output("Out"))
	assert.Nil(t, op.Input("nope"))
	assert.True(t, op.BoolAttr("is_distributed"))
	assert.False(t, op.BoolAttr("padding_idx")) // non-bool reads as false
	assert.False(t, op.BoolAttr("absent"))
}

func TestRegistryHandles(t *testing.T) {
	r := NewRegistry()
	p1 := New()
	p2 := New()

	h1 := r.Register(p1)
	h2 := r.Register(p2)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, h1, r.Register(p1)) // same program, same handle
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []Handle{h1, h2}, r.Handles())

	got, ok := r.Program(h2)
	require.True(t, ok)
	assert.Same(t, p2, got)

	_, ok = r.Program(Handle(99))
	assert.False(t, ok)
}
