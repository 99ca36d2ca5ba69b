package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"helloworld/config"
	deliverycontext "helloworld/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(buf *bytes.Buffer, debug bool) *echo.Echo {
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)

	return e
}

func TestRequestIDMiddleware_PropagatesHeader(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEcho(&buf, false)
	e.GET("/ping", func(c echo.Context) error {
		ctx := c.Request().Context()
		assert.Equal(t, "req-123", deliverycontext.RequestID(ctx))
		assert.NotNil(t, deliverycontext.Logger(ctx, nil))

		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(deliverycontext.HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(deliverycontext.HeaderRequestID))
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEcho(&buf, false)
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Len(t, rec.Header().Get(deliverycontext.HeaderRequestID), 36)
}

func TestLoggerMiddleware(t *testing.T) {
	t.Run("success is quiet outside debug", func(t *testing.T) {
		var buf bytes.Buffer
		e := newTestEcho(&buf, false)
		e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Empty(t, buf.String())
	})

	t.Run("success is logged in debug", func(t *testing.T) {
		var buf bytes.Buffer
		e := newTestEcho(&buf, true)
		e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping?password=secret", nil))

		out := buf.String()
		assert.Contains(t, out, `"status":200`)
		assert.Contains(t, out, `"request_id"`)
		assert.Contains(t, out, `"has_query":true`)
		assert.NotContains(t, out, "secret")
	})

	t.Run("errors are always logged with final status", func(t *testing.T) {
		var buf bytes.Buffer
		e := newTestEcho(&buf, false)
		e.GET("/boom", func(echo.Context) error {
			return echo.NewHTTPError(http.StatusBadGateway, "upstream")
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		require.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, buf.String(), `"status":502`)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})
}
