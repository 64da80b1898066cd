// Package options defines the typed strategy options consumed by fleet
// configuration resolution. Every field is optional; New returns the
// documented defaults. Per-table accessor overrides live in their own map so
// table names can never collide with option names.
package options

import "github.com/vk/psfleet/internal/descriptor"

// Options is the resolution strategy. The zero value is not ready to use;
// construct with New and override fields as needed.
type Options struct {
	// FleetDescFile, when non-empty, points at a fleet descriptor file that
	// overrides the generated server catalog and trainer base configuration.
	FleetDescFile string

	// SparseTableConfigs maps a sparse table name to its accessor override.
	// Absent entries use the engine default.
	SparseTableConfigs map[string]*descriptor.Accessor

	// DenseTableConfig and DataNormTableConfig override the accessors of the
	// generated dense and data-norm tables.
	DenseTableConfig    *descriptor.Accessor
	DataNormTableConfig *descriptor.Accessor

	UseCVM           bool
	StatVarNames     []string
	ScaleDataNorm    int
	CheckNanVarNames []string

	DumpFields     []string
	DumpFileNum    int
	DumpFieldsPath string
	DumpParam      []string

	AdjustInsWeight map[string]string
}

// New returns an Options with every default applied: CVM off, data-norm
// scaling disabled (-1), sixteen dump files, and empty lists everywhere.
func New() *Options {
	return &Options{
		SparseTableConfigs: make(map[string]*descriptor.Accessor),
		StatVarNames:       []string{},
		ScaleDataNorm:      -1,
		CheckNanVarNames:   []string{},
		DumpFields:         []string{},
		DumpFileNum:        16,
		DumpParam:          []string{},
		AdjustInsWeight:    make(map[string]string),
	}
}
