package internal

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/plinth/pkg/session"
)

// FlashDataKey is the context key under which the flash middleware
// stores the flash data loaded for this exchange.
type FlashDataKey struct{}

// Flash writes values under the "flash_messages" session key. The
// store write completes before Flash returns, so the data is durably
// attached to the session before response headers go out. Store
// failures propagate unchanged.
func (c *requestContext) Flash(values any) error {
	mapped, ok := values.(map[string]any)
	if !ok {
		return fmt.Errorf("flash values must be a map, got %T: %w", values, ErrInvalidArgument)
	}

	sess, err := c.Session()
	if err != nil {
		return err
	}
	if sess == nil {
		if err := c.InitSession(); err != nil {
			return err
		}
		sess = c.session
	}

	sess.SetValue(session.FlashKey, mapped)
	if err := c.sessionManager.Store().Update(c.Context(), sess); err != nil {
		return err
	}
	sess.ClearDirty()
	return nil
}

// FlashAll flashes the merged request input.
func (c *requestContext) FlashAll() error {
	return c.Flash(c.All())
}

// FlashOnly flashes the input restricted to keys.
func (c *requestContext) FlashOnly(keys ...string) error {
	return c.Flash(c.Only(keys...))
}

// FlashExcept flashes the input with keys removed.
func (c *requestContext) FlashExcept(keys ...string) error {
	return c.Flash(c.Except(keys...))
}

// Old looks up a key in the flash data loaded by the flash middleware.
// Missing keys resolve to the optional default. When the middleware
// never ran, Old warns once for the exchange and treats the data as
// empty; many requests never use flash, so this degrades silently.
func (c *requestContext) Old(key string, def ...any) any {
	data, loaded := c.Value(FlashDataKey{}).(map[string]any)
	if !loaded {
		if !c.flashWarned {
			c.flashWarned = true
			c.logger.WarnContext(c.Context(),
				"flash data requested but the flash middleware did not run",
				slog.String("key", key))
		}
		data = nil
	}

	if val, ok := data[key]; ok && val != nil {
		return val
	}
	if len(def) > 0 {
		return def[0]
	}
	return nil
}
