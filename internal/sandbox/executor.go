package sandbox

import "context"

// Executor selects a Backend by kind and runs scripts against a
// working-directory-scoped Bridge.
type Executor struct {
	WorkingDir string
	inProcess  *InProcessBackend
}

// NewExecutor constructs an Executor rooted at workingDir. The
// in-process backend's interpreter is created once and reused across
// every Run call that selects it.
func NewExecutor(workingDir string) *Executor {
	return &Executor{WorkingDir: workingDir, inProcess: NewInProcessBackend()}
}

// Run executes script under opts.Backend (isolated by default). The
// isolated backend creates and drops its runtime within this call; the
// in-process backend's runtime outlives it.
func (e *Executor) Run(ctx context.Context, script string, opts Options) Result {
	backend := e.backendFor(opts.Backend)
	bridge := Bridge{WorkingDir: e.WorkingDir}.Build(ctx)
	return backend.Run(script, bridge, opts)
}

func (e *Executor) backendFor(kind BackendKind) Backend {
	if kind == BackendInProcess {
		return e.inProcess
	}
	return IsolatedBackend{}
}
