package resolve

import (
	"github.com/vk/psfleet/internal/descriptor"
	"github.com/vk/psfleet/internal/program"
)

// ProgramConfig lists the table ids one program pulls from and pushes to.
type ProgramConfig struct {
	PullSparse []int
	PushSparse []int
	PullDense  []int
	PushDense  []int
}

// OptInfo is the aggregate fleet configuration produced by one resolution.
// It is returned explicitly; the training orchestrator threads it to whatever
// consumes it downstream.
type OptInfo struct {
	// Programs resolves the handles that key the per-program maps below.
	Programs *program.Registry

	Workers        map[program.Handle]*descriptor.TrainerParam
	ProgramConfigs map[program.Handle]*ProgramConfig
	FleetDesc      *descriptor.PSParameter

	Trainer      string
	DeviceWorker string
	Optimizer    string
	SkippedOps   []string

	UseCVM           bool
	StatVarNames     []string
	ScaleDataNorm    int
	CheckNanVarNames []string

	// DumpSlot is set when the first sparse accessor is CTR-style; the
	// dumping subsystem keys off it.
	DumpSlot       bool
	DumpConverter  string
	DumpFields     []string
	DumpFileNum    int
	DumpFieldsPath string
	DumpParam      []string

	AdjustInsWeight map[string]string
}

// Result is what Resolve hands back: the per-loss parameter/gradient pair
// lists (in loss order) and the aggregate configuration. Backward operators
// are applied to the programs by the gradient collaborator as its own side
// effect, so no operator list is returned here.
type Result struct {
	ParamGrads [][]ParamGrad
	OptInfo    *OptInfo
}
