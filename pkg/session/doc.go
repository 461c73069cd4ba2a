// Package session provides server-side session state with pluggable storage.
//
// A [Session] carries identity, activity timestamps, and an arbitrary value
// bag. Stores address sessions by an opaque token for lookups and by a
// stable ID for mutation, so rotating the token on privilege changes does
// not orphan the session.
//
// # Stores
//
// Three [Store] implementations ship with the package:
//
//   - [MemoryStore] for tests and single-process deployments
//   - [RedisStore] over go-redis, with TTL-based expiry
//   - [PgStore] over pgx, with JSONB values and goose migrations
//
//	store := session.NewMemoryStore()
//	sess := session.New(uuid.NewString(), token, time.Now().Add(30*24*time.Hour))
//	if err := store.Create(ctx, sess); err != nil {
//		// handle error
//	}
//
// # Values
//
// Session values are typed at the call site with the generic helpers:
//
//	sess.SetValue("theme", "dark")
//	theme, err := session.Value[string](sess, "theme")
//	lang := session.ValueOr(sess, "lang", "en")
//
// Flash messages ride the value bag under [FlashKey] and are written
// through Store.Update before the response is sent, which is why Update
// must be durable on return for every implementation.
package session
