package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/plinth/internal"
	"github.com/dmitrymomot/plinth/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("recovers from panic", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.Recover()
		handler := mw(func(c internal.Context) error {
			panic("something broke")
		})

		err := handler(ctx)
		require.Error(t, err)
		require.True(t, middlewares.IsPanicError(err))

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, "something broke", pe.Value)
		require.NotEmpty(t, pe.Stack)
	})

	t.Run("passes through handler errors", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handlerErr := errors.New("regular error")
		mw := middlewares.Recover()
		handler := mw(func(c internal.Context) error {
			return handlerErr
		})

		err := handler(ctx)
		require.ErrorIs(t, err, handlerErr)
		require.False(t, middlewares.IsPanicError(err))
	})

	t.Run("no stack when disabled", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.Recover(middlewares.WithRecoverDisablePrintStack())
		handler := mw(func(c internal.Context) error {
			panic("boom")
		})

		err := handler(ctx)
		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Nil(t, pe.Stack)
	})
}
