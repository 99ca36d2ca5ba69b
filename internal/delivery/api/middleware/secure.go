package middleware

import (
	"helloworld/config"

	"github.com/labstack/echo/v4"
	"github.com/unrolled/secure"
)

// NewSecureHeaders returns the security-header middleware. Development mode
// skips the HTTPS-only headers so the server works over plain h2c locally.
func NewSecureHeaders(cfg *config.Config) echo.MiddlewareFunc {
	sec := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         cfg.IsDevelop(),
	})

	return echo.WrapMiddleware(sec.Handler)
}
