package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	MaxAge       int // preflight cache in seconds; 0 omits the header
}

// CORS returns CORS middleware. Disallowed origins get no CORS headers and
// their preflights are rejected with 403.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	wildcard := false
	allowed := make(map[string]struct{}, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = struct{}{}
	}
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			origin := req.Header.Get(echo.HeaderOrigin)
			preflight := req.Method == http.MethodOptions && req.Header.Get(echo.HeaderAccessControlRequestMethod) != ""

			res.Header().Add(echo.HeaderVary, echo.HeaderOrigin)
			if origin == "" {
				if preflight {
					return c.NoContent(http.StatusNoContent)
				}
				return next(c)
			}

			_, ok := allowed[origin]
			if !ok && !wildcard {
				if preflight {
					return c.NoContent(http.StatusForbidden)
				}
				return next(c)
			}

			if wildcard {
				res.Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
			} else {
				res.Header().Set(echo.HeaderAccessControlAllowOrigin, origin)
			}
			if !preflight {
				return next(c)
			}

			if methods != "" {
				res.Header().Set(echo.HeaderAccessControlAllowMethods, methods)
			}
			if headers != "" {
				res.Header().Set(echo.HeaderAccessControlAllowHeaders, headers)
			}
			if cfg.MaxAge > 0 {
				res.Header().Set(echo.HeaderAccessControlMaxAge, strconv.Itoa(cfg.MaxAge))
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}
