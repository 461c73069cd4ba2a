package middlewares

import (
	"log/slog"
	"runtime"

	"github.com/dmitrymomot/plinth/internal"
)

type recoverConfig struct {
	stackSize  int
	printStack bool
}

// RecoverOption configures the Recover middleware.
type RecoverOption func(*recoverConfig)

// WithRecoverStackSize caps the captured stack trace at size bytes.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.stackSize = size
	}
}

// WithRecoverDisablePrintStack skips stack capture entirely. Panics are
// still logged and converted, but PanicError.Stack stays nil.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.printStack = false
	}
}

// Recover converts handler panics into a *PanicError carrying the panic
// value and, unless disabled, the goroutine stack at the point of the
// panic. The error flows to the app's error handler like any other
// handler error, so a panicking route still produces a response.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &recoverConfig{stackSize: 4 << 10, printStack: true}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				var stack []byte
				attrs := []any{slog.Any("panic", r)}
				if cfg.printStack {
					stack = make([]byte, cfg.stackSize)
					stack = stack[:runtime.Stack(stack, false)]
					attrs = append(attrs, slog.String("stack", string(stack)))
				}
				c.Logger().ErrorContext(c, "panic recovered", attrs...)

				err = &PanicError{Value: r, Stack: stack}
			}()

			return next(c)
		}
	}
}
