package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/plinth/pkg/cookie"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func echoRequest(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestPlainRoundTrip(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	rec := httptest.NewRecorder()
	m.Set(rec, "name", "value", 3600)

	got, err := m.Get(echoRequest(t, rec), "name")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := m.Get(r, "missing")
	assert.ErrorIs(t, err, cookie.ErrNotFound)
}

func TestEncryptedRoundTrip(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecret(testSecret))
	rec := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(rec, "token", "secret-value", 3600))

	// Value on the wire must not be the plaintext
	raw := rec.Result().Cookies()[0].Value
	assert.NotEqual(t, "secret-value", raw)

	got, err := m.GetEncrypted(echoRequest(t, rec), "token")
	require.NoError(t, err)
	assert.Equal(t, "secret-value", got)
}

func TestEncrypted_NoSecret(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	rec := httptest.NewRecorder()
	err := m.SetEncrypted(rec, "token", "v", 0)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}

func TestSignedRoundTrip(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecret(testSecret))
	rec := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(rec, "sig", "signed-value", 3600))

	got, err := m.GetSigned(echoRequest(t, rec), "sig")
	require.NoError(t, err)
	assert.Equal(t, "signed-value", got)
}

func TestSigned_Tampered(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecret(testSecret))
	rec := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(rec, "sig", "signed-value", 3600))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	tampered := rec.Result().Cookies()[0]
	tampered.Value = "x" + tampered.Value
	r.AddCookie(tampered)

	_, err := m.GetSigned(r, "sig")
	assert.ErrorIs(t, err, cookie.ErrBadSig)
}

func TestDecodeAll_Plain(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "a", Value: "1"})
	r.AddCookie(&http.Cookie{Name: "b", Value: "2"})

	got, err := m.DecodeAll(r)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, got)
}

func TestDecodeAll_Encrypted(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecret(testSecret))
	rec := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(rec, "session", "abc123", 3600))
	require.NoError(t, m.SetEncrypted(rec, "theme", "dark", 3600))

	r := echoRequest(t, rec)
	// A foreign plain cookie must be skipped, not fail decoding
	r.AddCookie(&http.Cookie{Name: "_ga", Value: "GA1.2.123"})

	got, err := m.DecodeAll(r)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"session": "abc123", "theme": "dark"}, got)
}

func TestDecodeAll_Idempotent(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecret(testSecret))
	rec := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(rec, "k", "v", 3600))
	r := echoRequest(t, rec)

	first, err := m.DecodeAll(r)
	require.NoError(t, err)
	second, err := m.DecodeAll(r)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	rec := httptest.NewRecorder()
	m.Delete(rec, "name")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestWithSecret_TooShort(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecret("short"))
	assert.False(t, m.Encrypted())
}
