package tableindex

import "fmt"

// Index maps sparse table names to their globally unique ids.
type Index struct {
	ids   map[string]int
	order []string
}

// New returns an empty index.
func New() *Index {
	return &Index{
		ids: make(map[string]int),
	}
}

// AssignSparse assigns the next free id to every name not seen before, in
// the order given. Repeated names keep their original id, so calling this
// once per program, in program-list order, yields the global first-seen
// assignment.
func (x *Index) AssignSparse(tables []string) {
	for _, tn := range tables {
		if _, ok := x.ids[tn]; ok {
			continue
		}
		x.ids[tn] = len(x.order)
		x.order = append(x.order, tn)
	}
}

// SparseID returns the id assigned to a table name.
func (x *Index) SparseID(name string) (int, bool) {
	id, ok := x.ids[name]
	return id, ok
}

// SparseIDs maps a list of table names to their ids. Every name must have
// been assigned already.
func (x *Index) SparseIDs(names []string) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		id, ok := x.ids[name]
		if !ok {
			return nil, fmt.Errorf("sparse table %q has no assigned id", name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Names returns all assigned table names in id order.
func (x *Index) Names() []string {
	out := make([]string, len(x.order))
	copy(out, x.order)
	return out
}

// Len returns the number of assigned sparse ids.
func (x *Index) Len() int {
	return len(x.order)
}

// DenseAllocator hands out dense and data-norm table ids following the
// sparse range. Ids are never reused or compacted.
type DenseAllocator struct {
	next int
}

// NewDenseAllocator returns an allocator seeded just past the sparse range.
func (x *Index) NewDenseAllocator() *DenseAllocator {
	return &DenseAllocator{next: len(x.order)}
}

// Next returns the next unused dense id.
func (a *DenseAllocator) Next() int {
	id := a.next
	a.next++
	return id
}
