package middleware

import (
	"time"

	xlogger "InflationPanel/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs HTTP requests. Client errors are logged at warn, server errors at error.
func RequestLogging(l *xlogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			fields := []xlogger.Field{
				xlogger.String("method", req.Method),
				xlogger.String("uri", req.RequestURI),
				xlogger.String("remote_ip", c.RealIP()),
				xlogger.Int("status", status),
				xlogger.Duration("duration_ms", time.Since(start)),
			}
			switch {
			case status >= 500:
				l.Error("http request", append(fields, xlogger.Error(err))...)
			case status >= 400:
				l.Warn("http request", fields...)
			default:
				l.Debug("http request", fields...)
			}
			return nil
		}
	}
}
