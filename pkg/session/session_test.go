package session

import (
	"errors"
	"testing"
	"time"
)

func TestSession_New(t *testing.T) {
	expiresAt := time.Now().Add(24 * time.Hour)
	sess := New("test-id", "test-token", expiresAt)

	if sess.ID != "test-id" {
		t.Errorf("ID = %q, want %q", sess.ID, "test-id")
	}
	if sess.Token != "test-token" {
		t.Errorf("Token = %q, want %q", sess.Token, "test-token")
	}
	if !sess.IsNew() {
		t.Error("IsNew() = false, want true")
	}
	if !sess.IsDirty() {
		t.Error("IsDirty() = false, want true")
	}
	if sess.Values == nil {
		t.Error("Values is nil")
	}
}

func TestSession_IsAuthenticated(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))

	if sess.IsAuthenticated() {
		t.Error("IsAuthenticated() = true for new session, want false")
	}

	userID := "user-123"
	sess.UserID = &userID

	if !sess.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after setting UserID, want true")
	}

	empty := ""
	sess.UserID = &empty

	if sess.IsAuthenticated() {
		t.Error("IsAuthenticated() = true for empty UserID, want false")
	}
}

func TestSession_Values(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.ClearDirty()

	sess.SetValue("key", "value")

	if !sess.IsDirty() {
		t.Error("SetValue should mark session as dirty")
	}

	val, ok := sess.GetValue("key")
	if !ok {
		t.Error("GetValue returned ok=false for existing key")
	}
	if val != "value" {
		t.Errorf("GetValue = %v, want %v", val, "value")
	}

	_, ok = sess.GetValue("nonexistent")
	if ok {
		t.Error("GetValue returned ok=true for nonexistent key")
	}
}

func TestSession_DeleteValue(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.SetValue("key", "value")
	sess.ClearDirty()

	sess.DeleteValue("key")

	if !sess.IsDirty() {
		t.Error("DeleteValue should mark session as dirty")
	}

	_, ok := sess.GetValue("key")
	if ok {
		t.Error("GetValue returned ok=true after DeleteValue")
	}
}

func TestSession_TypedValue(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.SetValue("count", 42)

	count, err := Value[int](sess, "count")
	if err != nil {
		t.Fatalf("Value[int] returned error: %v", err)
	}
	if count != 42 {
		t.Errorf("Value[int] = %d, want 42", count)
	}

	_, err = Value[string](sess, "count")
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Value[string] error = %v, want ErrTypeMismatch", err)
	}

	_, err = Value[int](sess, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Value for missing key error = %v, want ErrNotFound", err)
	}
}

func TestSession_ValueOr(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.SetValue("lang", "de")

	if got := ValueOr(sess, "lang", "en"); got != "de" {
		t.Errorf("ValueOr = %q, want %q", got, "de")
	}
	if got := ValueOr(sess, "missing", "en"); got != "en" {
		t.Errorf("ValueOr for missing key = %q, want fallback %q", got, "en")
	}
	// Wrong type falls back too.
	sess.SetValue("count", 7)
	if got := ValueOr(sess, "count", "zero"); got != "zero" {
		t.Errorf("ValueOr for mistyped key = %q, want fallback %q", got, "zero")
	}
}

func TestSession_IsExpired(t *testing.T) {
	sess := New("id", "token", time.Now().Add(-time.Minute))
	if !sess.IsExpired() {
		t.Error("IsExpired() = false for past expiry, want true")
	}

	sess = New("id", "token", time.Now().Add(time.Hour))
	if sess.IsExpired() {
		t.Error("IsExpired() = true for future expiry, want false")
	}
}
