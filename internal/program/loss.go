package program

// Loss is one training objective handed to the resolver. It references the
// program it was defined in; resolution walks that program's operators.
type Loss struct {
	Name    string
	Program *Program
}

// BaseOptimizer is the read surface of the wrapped local optimizer: the
// learning rate propagated into dense-table participations and the
// regularization setting passed through unchanged.
type BaseOptimizer struct {
	LearningRate   float64
	Regularization string
}
