package fleetdesc

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a fleet descriptor file.
type fileRoot struct {
	Server   *serverBlock    `hcl:"server,block"`
	Trainers []*trainerBlock `hcl:"trainer,block"`
}

// serverBlock is the `server {}` section: the shared table catalog.
type serverBlock struct {
	Tables []*tableBlock `hcl:"table,block"`
}

// tableBlock is one `table {}` catalog entry.
type tableBlock struct {
	TableID          int            `hcl:"table_id"`
	Kind             string         `hcl:"kind"`
	Accessor         *accessorBlock `hcl:"accessor,block"`
	Params           []string       `hcl:"params,optional"`
	Grads            []string       `hcl:"grads,optional"`
	SparseTableNames []string       `hcl:"sparse_table_names,optional"`
	LearningRate     float64        `hcl:"learning_rate,optional"`
}

// accessorBlock is the `accessor {}` configuration of one table. Anything
// beyond the known attributes is engine-specific and passed through opaquely.
type accessorBlock struct {
	Class           string   `hcl:"class"`
	FeaDim          int      `hcl:"fea_dim,optional"`
	EmbedxDim       int      `hcl:"embedx_dim,optional"`
	EmbedxThreshold int      `hcl:"embedx_threshold,optional"`
	Remain          hcl.Body `hcl:",remain"`
}

// trainerBlock is one `trainer {}` section: a worker participation descriptor.
type trainerBlock struct {
	WindowSize   int                `hcl:"window_size,optional"`
	SkipOps      []string           `hcl:"skip_ops,optional"`
	SparseTables []*sparsePartBlock `hcl:"sparse_table,block"`
	DenseTables  []*densePartBlock  `hcl:"dense_table,block"`
}

// sparsePartBlock is one `sparse_table {}` participation entry.
type sparsePartBlock struct {
	TableID      int      `hcl:"table_id"`
	SlotKey      []string `hcl:"slot_key,optional"`
	SlotValue    []string `hcl:"slot_value,optional"`
	SlotGradient []string `hcl:"slot_gradient,optional"`
}

// densePartBlock is one `dense_table {}` participation entry.
type densePartBlock struct {
	TableID          int      `hcl:"table_id"`
	LearningRate     float64  `hcl:"learning_rate,optional"`
	DenseVariables   []string `hcl:"dense_variables,optional"`
	DenseGradients   []string `hcl:"dense_gradients,optional"`
	StartTableID     int      `hcl:"start_table_id,optional"`
	SparseTableNames []string `hcl:"sparse_table_names,optional"`
}
