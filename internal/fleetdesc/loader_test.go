package fleetdesc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/psfleet/internal/descriptor"
)

const sampleDesc = `
server {
  table {
    table_id = 0
    kind     = "sparse"
    accessor {
      class            = "DownpourCtrAccessor"
      fea_dim          = 11
      embedx_dim       = 8
      embedx_threshold = 10

      nonclk_coeff = 0.1
      click_coeff  = 1
    }
  }

  table {
    table_id = 1
    kind     = "dense"
    params   = ["fc1.w", "fc1.b"]
    grads    = ["fc1.w@GRAD", "fc1.b@GRAD"]

    sparse_table_names = ["emb"]
  }
}

trainer {
  window_size = 1
  skip_ops    = ["lookup_table", "lookup_table_grad"]

  sparse_table {
    table_id      = 0
    slot_key      = ["click_id"]
    slot_value    = ["emb_out"]
    slot_gradient = ["emb_out@GRAD"]
  }

  dense_table {
    table_id        = 1
    learning_rate   = 0.05
    dense_variables = ["fc1.w", "fc1.b"]
    dense_gradients = ["fc1.w@GRAD", "fc1.b@GRAD"]
    start_table_id  = 1
  }
}
`

func TestLoadSampleDescriptor(t *testing.T) {
	ps, err := NewLoader().Load(context.Background(), "fleet_desc.hcl", []byte(sampleDesc))
	require.NoError(t, err)

	require.Len(t, ps.Server.Tables, 2)
	sparse := ps.Server.Tables[0]
	assert.Equal(t, 0, sparse.TableID)
	assert.Equal(t, descriptor.KindSparse, sparse.Kind)
	require.NotNil(t, sparse.Accessor)
	assert.Equal(t, descriptor.CtrAccessorClass, sparse.Accessor.Class)
	assert.Equal(t, 11, sparse.Accessor.FeaDim)
	assert.Equal(t, 0.1, sparse.Accessor.Extra["nonclk_coeff"])
	assert.Equal(t, float64(1), sparse.Accessor.Extra["click_coeff"])

	dense := ps.Server.Tables[1]
	assert.Equal(t, descriptor.KindDense, dense.Kind)
	assert.Equal(t, []string{"fc1.w", "fc1.b"}, dense.Params)
	assert.Equal(t, []string{"emb"}, dense.SparseTableNames)
	assert.Nil(t, dense.Accessor)

	require.Len(t, ps.Trainers, 1)
	trainer := ps.Trainers[0]
	assert.Equal(t, 1, trainer.WindowSize)
	assert.Equal(t, []string{"lookup_table", "lookup_table_grad"}, trainer.SkipOps)
	require.Len(t, trainer.SparseTables, 1)
	assert.Equal(t, []string{"click_id"}, trainer.SparseTables[0].SlotKey)
	require.Len(t, trainer.DenseTables, 1)
	assert.Equal(t, 0.05, trainer.DenseTables[0].LearningRate)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fleet_desc.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleDesc), 0o644))

	ps, err := NewLoader().LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, ps.Server.Tables, 2)

	_, err = NewLoader().LoadFile(context.Background(), filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	t.Run("unknown kind", func(t *testing.T) {
		src := `
server {
  table {
    table_id = 0
    kind     = "mystery"
  }
}
`
		_, err := NewLoader().Load(context.Background(), "bad.hcl", []byte(src))
		require.Error(t, err)
		assert.ErrorContains(t, err, "unknown kind")
	})

	t.Run("duplicate table id", func(t *testing.T) {
		src := `
server {
  table {
    table_id = 0
    kind     = "sparse"
  }
  table {
    table_id = 0
    kind     = "dense"
  }
}
`
		_, err := NewLoader().Load(context.Background(), "bad.hcl", []byte(src))
		require.Error(t, err)
		assert.ErrorContains(t, err, "duplicate table_id")
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), "bad.hcl", []byte(`server {`))
		assert.Error(t, err)
	})

	t.Run("empty file yields empty descriptor", func(t *testing.T) {
		ps, err := NewLoader().Load(context.Background(), "empty.hcl", []byte(""))
		require.NoError(t, err)
		assert.Empty(t, ps.Server.Tables)
		assert.Empty(t, ps.Trainers)
	})
}
