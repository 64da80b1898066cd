package resolve

import (
	"context"

	"github.com/vk/psfleet/internal/program"
)

// ParamGrad pairs one trainable parameter with its gradient variable.
type ParamGrad struct {
	Param *program.Variable
	Grad  *program.Variable
}

// Backward is the external gradient-computation collaborator. Implementations
// append backward operators to the loss's program as their own side effect
// and return the resulting parameter/gradient pairs. Resolution does not
// inspect or recover from its failures; they surface to the caller as-is.
type Backward interface {
	AppendBackward(ctx context.Context, loss *program.Loss) ([]ParamGrad, error)
}
