package program

// Handle is an opaque, registry-issued identifier for a program. It is
// stable for the lifetime of the registry that issued it and is used to key
// per-program state during resolution, instead of the program's address.
type Handle int

// Registry is an arena that issues Handles. Registering the same program
// twice returns the same handle, so two losses defined over one program
// share per-program state.
type Registry struct {
	programs []*Program
	index    map[*Program]Handle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[*Program]Handle),
	}
}

// Register issues a handle for the program, reusing the existing one if the
// program was registered before.
func (r *Registry) Register(p *Program) Handle {
	if h, ok := r.index[p]; ok {
		return h
	}
	h := Handle(len(r.programs))
	r.programs = append(r.programs, p)
	r.index[p] = h
	return h
}

// Program returns the program a handle was issued for.
func (r *Registry) Program(h Handle) (*Program, bool) {
	if h < 0 || int(h) >= len(r.programs) {
		return nil, false
	}
	return r.programs[h], true
}

// Handles returns all issued handles in registration order.
func (r *Registry) Handles() []Handle {
	handles := make([]Handle, len(r.programs))
	for i := range r.programs {
		handles[i] = Handle(i)
	}
	return handles
}

// Len returns the number of distinct registered programs.
func (r *Registry) Len() int {
	return len(r.programs)
}
