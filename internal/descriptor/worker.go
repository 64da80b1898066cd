package descriptor

// WorkerBuilder accumulates one program's trainer participation descriptor.
type WorkerBuilder struct {
	param    *TrainerParam
	sparseID map[int]bool
	denseID  map[int]*DenseParticipation
}

// NewWorkerBuilder returns a builder with the given pull/push window size.
func NewWorkerBuilder(window int) *WorkerBuilder {
	return &WorkerBuilder{
		param:    &TrainerParam{WindowSize: window},
		sparseID: make(map[int]bool),
		denseID:  make(map[int]*DenseParticipation),
	}
}

// CopyFrom seeds the builder with a clone of a trainer section from a
// user-supplied descriptor file. Tables added afterwards extend the clone.
func (b *WorkerBuilder) CopyFrom(tp *TrainerParam) {
	b.param = tp.Clone()
	b.sparseID = make(map[int]bool, len(b.param.SparseTables))
	for _, s := range b.param.SparseTables {
		b.sparseID[s.TableID] = true
	}
	b.denseID = make(map[int]*DenseParticipation, len(b.param.DenseTables))
	for _, d := range b.param.DenseTables {
		b.denseID[d.TableID] = d
	}
}

// AddSparseTable records this worker's participation in one sparse table.
// A table id already present is left untouched.
func (b *WorkerBuilder) AddSparseTable(id int, slotKey, slotValue, slotGradient []string) {
	if b.sparseID[id] {
		return
	}
	b.sparseID[id] = true
	b.param.SparseTables = append(b.param.SparseTables, &SparseParticipation{
		TableID:      id,
		SlotKey:      append([]string(nil), slotKey...),
		SlotValue:    append([]string(nil), slotValue...),
		SlotGradient: append([]string(nil), slotGradient...),
	})
}

// AddDenseTable records this worker's participation in one dense or
// data-norm table. Re-adding an existing id refreshes the variable lists.
func (b *WorkerBuilder) AddDenseTable(id int, lr float64, params, grads []string, startID int, sparseNames []string) {
	if existing, ok := b.denseID[id]; ok {
		existing.DenseVariables = append([]string(nil), params...)
		existing.DenseGradients = append([]string(nil), grads...)
		return
	}
	d := &DenseParticipation{
		TableID:          id,
		LearningRate:     lr,
		DenseVariables:   append([]string(nil), params...),
		DenseGradients:   append([]string(nil), grads...),
		StartTableID:     startID,
		SparseTableNames: append([]string(nil), sparseNames...),
	}
	b.denseID[id] = d
	b.param.DenseTables = append(b.param.DenseTables, d)
}

// SetSkipOps locks in the operator types excluded from generic distributed
// handling. It only takes effect while the list is still empty, so a list
// carried over from a descriptor file wins over the built-in one.
func (b *WorkerBuilder) SetSkipOps(ops []string) {
	if len(b.param.SkipOps) > 0 {
		return
	}
	b.param.SkipOps = append([]string(nil), ops...)
}

// Desc returns the descriptor built so far. The builder keeps ownership.
func (b *WorkerBuilder) Desc() *TrainerParam {
	return b.param
}
