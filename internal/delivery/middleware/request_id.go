package middleware

import (
	"log/slog"

	deliverycontext "helloworld/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware scopes every request to an id, taken from the
// X-Request-Id header when the client sends one, and echoes it back.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{logger: logger}
}

func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx, requestID := deliverycontext.Begin(req.Context(), req.Header.Get(deliverycontext.HeaderRequestID), m.logger)

		c.Response().Header().Set(deliverycontext.HeaderRequestID, requestID)
		c.SetRequest(req.WithContext(ctx))

		return next(c)
	}
}
