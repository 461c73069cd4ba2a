package internal

import (
	"strings"

	"github.com/knadh/koanf/maps"
)

// Get returns the parsed query-string map. Single-valued parameters
// become strings, repeated parameters become ordered slices.
func (c *requestContext) Get() map[string]any {
	query := c.request.URL.Query()
	out := make(map[string]any, len(query))
	for key, values := range query {
		if len(values) == 1 {
			out[key] = values[0]
			continue
		}
		list := make([]any, len(values))
		for i, v := range values {
			list[i] = v
		}
		out[key] = list
	}
	return out
}

// Post returns the parsed body map, empty if no body was parsed.
func (c *requestContext) Post() map[string]any {
	if c.body == nil {
		return map[string]any{}
	}
	return c.body
}

// All deep-merges the query map over the body map: query wins on key
// conflict, nested maps merge recursively, everything else is
// overwritten wholesale. A fresh map is returned on every call so
// callers may mutate the result freely.
func (c *requestContext) All() map[string]any {
	merged := maps.Copy(c.Post())
	maps.Merge(c.Get(), merged)
	return merged
}

// Input resolves key against All using dotted-path notation.
func (c *requestContext) Input(key string, def ...any) any {
	val := maps.Search(c.All(), strings.Split(key, "."))
	if val == nil {
		if len(def) > 0 {
			return def[0]
		}
		return nil
	}
	return val
}

// Only returns the sub-map of All restricted to keys. Absent keys are
// omitted from the result.
func (c *requestContext) Only(keys ...string) map[string]any {
	all := c.All()
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		if val, ok := all[key]; ok {
			out[key] = val
		}
	}
	return out
}

// Except returns All with keys removed.
func (c *requestContext) Except(keys ...string) map[string]any {
	all := c.All()
	for _, key := range keys {
		delete(all, key)
	}
	return all
}
