package sandbox

import (
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/rs/zerolog/log"
)

// IsolatedBackend runs every script in a fresh goja.Runtime with no
// bindings beyond the supplied bridge — no filesystem or network
// access exists unless the bridge grants it.
type IsolatedBackend struct{}

// InProcessBackend shares one long-lived goja.Runtime across calls,
// modeling the "fallback" capability-object execution mode for
// environments where spinning up a fresh interpreter per call isn't
// wanted. It applies the same static pre-scan as IsolatedBackend.
type InProcessBackend struct {
	runtime *goja.Runtime
}

func NewInProcessBackend() *InProcessBackend {
	return &InProcessBackend{runtime: goja.New()}
}

func (IsolatedBackend) Run(script string, bridge map[string]any, opts Options) Result {
	return runScript(goja.New(), script, bridge, opts)
}

func (b *InProcessBackend) Run(script string, bridge map[string]any, opts Options) Result {
	return runScript(b.runtime, script, bridge, opts)
}

func runScript(vm *goja.Runtime, script string, bridge map[string]any, opts Options) Result {
	opts = opts.withDefaults()

	if pattern := staticScan(script); pattern != "" {
		return blockedResult(pattern)
	}

	console := make([]string, 0, 8)
	if err := bindConsole(vm, &console); err != nil {
		return Result{OK: false, Error: err.Error(), Console: console}
	}
	for name, fn := range bridge {
		if err := vm.Set(name, fn); err != nil {
			return Result{OK: false, Error: fmt.Sprintf("failed to bind %s: %v", name, err), Console: console}
		}
	}
	if opts.MaxMemoryMB > 0 {
		vm.SetMemoryLimit(uint64(opts.MaxMemoryMB) * 1024 * 1024)
	}

	timer := time.AfterFunc(time.Duration(opts.MaxExecutionMs)*time.Millisecond, func() {
		vm.Interrupt("execution timeout")
	})
	defer timer.Stop()

	value, err := vm.RunString(script)
	if err != nil {
		if isInterrupt(err) {
			return Result{OK: false, Error: "Execution timeout", Console: console}
		}
		return Result{OK: false, Error: err.Error(), Console: console}
	}

	exported := value.Export()
	trimmed, wasTrimmed := enforceOutputBudget(exported, opts.MaxOutputTokens)
	return Result{OK: true, Value: trimmed, Console: console, WasTrimmed: wasTrimmed}
}

func bindConsole(vm *goja.Runtime, out *[]string) error {
	console := vm.NewObject()
	logFn := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		line := ""
		for i, p := range parts {
			if i > 0 {
				line += " "
			}
			line += p
		}
		*out = append(*out, line)
		return goja.Undefined()
	}
	if err := console.Set("log", logFn); err != nil {
		return err
	}
	if err := console.Set("error", logFn); err != nil {
		return err
	}
	if err := console.Set("warn", logFn); err != nil {
		return err
	}
	return vm.Set("console", console)
}

func isInterrupt(err error) bool {
	_, ok := err.(*goja.InterruptedError)
	if ok {
		log.Debug().Msg("sandbox script interrupted on timeout")
	}
	return ok
}
