package middlewares

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/plinth/internal"
	"github.com/dmitrymomot/plinth/pkg/session"
)

// Flash returns middleware that moves flash data from the session into
// the request. Stored values are read from the session, removed, and
// the removal is persisted before the handler runs, so flash data is
// visible to exactly one request. Handlers read it with c.Old().
//
// Requests without a session or without stored flash data pass through
// with an empty flash map, so c.Old() resolves to its defaults.
func Flash() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			data := map[string]any{}

			sess, err := c.Session()
			switch {
			case errors.Is(err, session.ErrNotConfigured),
				errors.Is(err, session.ErrNotFound),
				errors.Is(err, session.ErrExpired):
				// No session to read from; continue with empty flash.
			case err != nil:
				c.Logger().WarnContext(c, "flash: session load failed", slog.Any("error", err))
			case sess != nil:
				if raw, ok := sess.GetValue(session.FlashKey); ok {
					if m, ok := raw.(map[string]any); ok {
						data = m
					}
					sess.DeleteValue(session.FlashKey)
					if err := c.SessionStore().Update(c, sess); err != nil {
						c.Logger().ErrorContext(c, "flash: failed to clear flash data", slog.Any("error", err))
					} else {
						sess.ClearDirty()
					}
				}
			}

			c.Set(internal.FlashDataKey{}, data)
			return next(c)
		}
	}
}
