package internal

import (
	"fmt"
	"sync"
)

// MacroFunc is an extension method callable on every Context.
type MacroFunc func(c Context, args ...any) (any, error)

// The macro registry is process-wide and populated once at startup,
// before any request is served. It is never mutated during request
// handling; the mutex only guards startup-time registration racing an
// early request in tests.
var (
	macroMu sync.RWMutex
	macros  = make(map[string]MacroFunc)
)

// RegisterMacro adds fn as a callable extension named name on every
// Context. Call it during process initialization, before the server
// starts. Re-registering a name replaces the previous function.
func RegisterMacro(name string, fn MacroFunc) {
	if name == "" || fn == nil {
		return
	}
	macroMu.Lock()
	macros[name] = fn
	macroMu.Unlock()
}

// UnregisterMacros clears the registry. Intended for tests.
func UnregisterMacros() {
	macroMu.Lock()
	macros = make(map[string]MacroFunc)
	macroMu.Unlock()
}

// Call dispatches a registered macro by name.
func (c *requestContext) Call(name string, args ...any) (any, error) {
	macroMu.RLock()
	fn, ok := macros[name]
	macroMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMacroNotFound, name)
	}
	return fn(c, args...)
}
