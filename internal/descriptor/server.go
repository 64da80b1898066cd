package descriptor

// ServerBuilder accumulates the server-side table catalog. Adding a table id
// that already exists is a no-op for sparse tables and a refresh of the
// variable lists for dense tables, so one catalog entry exists per id.
type ServerBuilder struct {
	param *ServerParam
	byID  map[int]*TableParam
}

// NewServerBuilder returns an empty server catalog builder.
func NewServerBuilder() *ServerBuilder {
	return &ServerBuilder{
		param: &ServerParam{},
		byID:  make(map[int]*TableParam),
	}
}

// CopyFrom replaces the catalog wholesale with a clone of the given server
// section, as happens when a user-supplied descriptor file is loaded.
func (b *ServerBuilder) CopyFrom(sp *ServerParam) {
	b.param = sp.Clone()
	b.byID = make(map[int]*TableParam, len(b.param.Tables))
	for _, tp := range b.param.Tables {
		b.byID[tp.TableID] = tp
	}
}

// AddSparseTable adds one sparse catalog entry. A nil accessor means the
// engine default.
func (b *ServerBuilder) AddSparseTable(id int, accessor *Accessor) {
	if _, ok := b.byID[id]; ok {
		return
	}
	if accessor == nil {
		accessor = DefaultSparseAccessor()
	}
	b.add(&TableParam{
		TableID:  id,
		Kind:     KindSparse,
		Accessor: accessor.Clone(),
	})
}

// AddDenseTable adds one dense catalog entry carrying the contributing
// program's parameter and gradient names, plus that program's sparse table
// names for cross-referencing. Re-adding an existing id refreshes the lists.
func (b *ServerBuilder) AddDenseTable(id int, params, grads []string, accessor *Accessor, sparseNames []string) {
	b.addDense(id, KindDense, 0, params, grads, accessor, sparseNames)
}

// AddDataNormTable adds one data-norm catalog entry. Data-norm tables carry
// the learning rate used to scale statistic updates.
func (b *ServerBuilder) AddDataNormTable(id int, lr float64, params, grads []string, accessor *Accessor, sparseNames []string) {
	b.addDense(id, KindDataNorm, lr, params, grads, accessor, sparseNames)
}

func (b *ServerBuilder) addDense(id int, kind TableKind, lr float64, params, grads []string, accessor *Accessor, sparseNames []string) {
	if existing, ok := b.byID[id]; ok {
		existing.Params = append([]string(nil), params...)
		existing.Grads = append([]string(nil), grads...)
		return
	}
	if accessor == nil {
		accessor = DefaultDenseAccessor()
	}
	b.add(&TableParam{
		TableID:          id,
		Kind:             kind,
		Accessor:         accessor.Clone(),
		Params:           append([]string(nil), params...),
		Grads:            append([]string(nil), grads...),
		SparseTableNames: append([]string(nil), sparseNames...),
		LearningRate:     lr,
	})
}

func (b *ServerBuilder) add(tp *TableParam) {
	b.param.Tables = append(b.param.Tables, tp)
	b.byID[tp.TableID] = tp
}

// Desc returns the catalog built so far. Callers that persist it should
// Clone it first; the builder keeps ownership.
func (b *ServerBuilder) Desc() *ServerParam {
	return b.param
}
