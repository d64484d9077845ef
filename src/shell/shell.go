// Package shell embeds a sandboxed zygomys Lisp interpreter over the
// geometry kernel. Every public kernel operation is reachable as a builtin,
// evaluated under the float64 backend.
package shell

import (
	"fmt"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"geode/src/geometry"
)

// Engine evaluates geometry scripts. It is safe for concurrent use; each
// call to Eval creates a fresh sandboxed environment.
type Engine struct {
	mu  sync.Mutex
	eps float64
}

// NewEngine returns an engine whose builtins start from the default epsilon.
// Scripts can switch tolerance mid-run with (epsilon e).
func NewEngine() *Engine {
	return &Engine{eps: geometry.Epsilon}
}

// Eval runs a script and returns the printed form of its last expression.
// Parse and runtime errors come back as errors; a panicking builtin is
// recovered rather than taking the process down.
func (e *Engine) Eval(source string) (result string, err error) {
	e.mu.Lock()
	eps := e.eps
	e.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during evaluation: %v", r)
		}
	}()

	if strings.TrimSpace(source) == "" {
		return "", nil
	}

	// Sandbox mode keeps user code away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	st := &evalState{ar: geometry.Approx(eps)}
	registerBuiltins(env, st)

	if err := env.LoadString(source); err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}
	out, err := env.Run()
	if err != nil {
		return "", fmt.Errorf("eval: %w", err)
	}
	if out == nil || out == zygo.SexpNull {
		return "nil", nil
	}
	return out.SexpString(nil), nil
}

// evalState carries the per-run arithmetic strategy; the epsilon builtin
// swaps it out for subsequent calls within the same script.
type evalState struct {
	ar geometry.Arith[float64]
}
