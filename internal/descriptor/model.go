package descriptor

// TableKind distinguishes the three server-side table flavors.
type TableKind string

const (
	KindSparse   TableKind = "sparse"
	KindDense    TableKind = "dense"
	KindDataNorm TableKind = "datanorm"
)

// CtrAccessorClass is the sparse accessor whose presence on the first sparse
// table enables slot dumping downstream.
const CtrAccessorClass = "DownpourCtrAccessor"

// Accessor is the opaque pass-through accessor configuration of one table.
// Extra carries engine-specific attributes this layer does not interpret.
type Accessor struct {
	Class           string
	FeaDim          int
	EmbedxDim       int
	EmbedxThreshold int
	Extra           map[string]any
}

// Clone returns a deep copy.
func (a *Accessor) Clone() *Accessor {
	if a == nil {
		return nil
	}
	out := *a
	if a.Extra != nil {
		out.Extra = make(map[string]any, len(a.Extra))
		for k, v := range a.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}

// DefaultSparseAccessor returns the engine default for sparse tables.
func DefaultSparseAccessor() *Accessor {
	return &Accessor{
		Class:           CtrAccessorClass,
		FeaDim:          11,
		EmbedxDim:       8,
		EmbedxThreshold: 10,
	}
}

// DefaultDenseAccessor returns the engine default for dense and data-norm
// tables.
func DefaultDenseAccessor() *Accessor {
	return &Accessor{Class: "DownpourDenseValueAccessor"}
}

// TableParam is one server catalog entry. Params/Grads are populated for
// dense and data-norm kinds; SparseTableNames cross-references the sparse
// tables of the program that contributed a dense entry. LearningRate is only
// meaningful for data-norm entries.
type TableParam struct {
	TableID          int
	Kind             TableKind
	Accessor         *Accessor
	Params           []string
	Grads            []string
	SparseTableNames []string
	LearningRate     float64
}

// Clone returns a deep copy.
func (tp *TableParam) Clone() *TableParam {
	out := *tp
	out.Accessor = tp.Accessor.Clone()
	out.Params = append([]string(nil), tp.Params...)
	out.Grads = append([]string(nil), tp.Grads...)
	out.SparseTableNames = append([]string(nil), tp.SparseTableNames...)
	return &out
}

// ServerParam is the ordered server-side table catalog shared by all workers.
type ServerParam struct {
	Tables []*TableParam
}

// Clone returns a deep copy.
func (sp *ServerParam) Clone() *ServerParam {
	if sp == nil {
		return nil
	}
	out := &ServerParam{Tables: make([]*TableParam, len(sp.Tables))}
	for i, tp := range sp.Tables {
		out.Tables[i] = tp.Clone()
	}
	return out
}

// FirstSparseTable returns the first sparse catalog entry, if any.
func (sp *ServerParam) FirstSparseTable() (*TableParam, bool) {
	for _, tp := range sp.Tables {
		if tp.Kind == KindSparse {
			return tp, true
		}
	}
	return nil, false
}

// SparseParticipation is one program's share of one sparse table: the slot
// keys it feeds in, the embeddings it reads out, and the gradients it pushes.
type SparseParticipation struct {
	TableID      int
	SlotKey      []string
	SlotValue    []string
	SlotGradient []string
}

// Clone returns a deep copy.
func (s *SparseParticipation) Clone() *SparseParticipation {
	out := *s
	out.SlotKey = append([]string(nil), s.SlotKey...)
	out.SlotValue = append([]string(nil), s.SlotValue...)
	out.SlotGradient = append([]string(nil), s.SlotGradient...)
	return &out
}

// DenseParticipation is one program's share of one dense or data-norm table.
// StartTableID records where the dense id range begins for the invocation
// that produced it.
type DenseParticipation struct {
	TableID          int
	LearningRate     float64
	DenseVariables   []string
	DenseGradients   []string
	StartTableID     int
	SparseTableNames []string
}

// Clone returns a deep copy.
func (d *DenseParticipation) Clone() *DenseParticipation {
	out := *d
	out.DenseVariables = append([]string(nil), d.DenseVariables...)
	out.DenseGradients = append([]string(nil), d.DenseGradients...)
	out.SparseTableNames = append([]string(nil), d.SparseTableNames...)
	return &out
}

// TrainerParam is one program's worker-side participation descriptor.
type TrainerParam struct {
	WindowSize   int
	SparseTables []*SparseParticipation
	DenseTables  []*DenseParticipation
	SkipOps      []string
}

// Clone returns a deep copy.
func (tp *TrainerParam) Clone() *TrainerParam {
	out := &TrainerParam{
		WindowSize: tp.WindowSize,
		SkipOps:    append([]string(nil), tp.SkipOps...),
	}
	for _, s := range tp.SparseTables {
		out.SparseTables = append(out.SparseTables, s.Clone())
	}
	for _, d := range tp.DenseTables {
		out.DenseTables = append(out.DenseTables, d.Clone())
	}
	return out
}

// PSParameter is the complete fleet descriptor: one server catalog and one
// trainer descriptor per program (or a single broadcast trainer descriptor
// when a user-supplied file says so).
type PSParameter struct {
	Server   *ServerParam
	Trainers []*TrainerParam
}
