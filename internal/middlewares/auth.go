package middlewares

import (
	"crypto/subtle"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-session-bridge/pkg/response"
)

const (
	APIKeyHeader = "x-ins-auth-key"

	// APIKeyQueryParam carries the key on websocket upgrades, where browsers
	// cannot set custom headers.
	APIKeyQueryParam = "key"
)

// secureCompare compares two strings in a way that is safer against timing attacks.
func secureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func APIKeyAuth(apiKey string) echo.MiddlewareFunc {
	return apiKeyAuth(apiKey, func(c echo.Context) string {
		return c.Request().Header.Get(APIKeyHeader)
	})
}

// APIKeyAuthWithQuery accepts the key from the header or, failing that, the
// "key" query parameter.
func APIKeyAuthWithQuery(apiKey string) echo.MiddlewareFunc {
	return apiKeyAuth(apiKey, func(c echo.Context) string {
		if token := c.Request().Header.Get(APIKeyHeader); token != "" {
			return token
		}
		return c.QueryParam(APIKeyQueryParam)
	})
}

func apiKeyAuth(apiKey string, extract func(echo.Context) string) echo.MiddlewareFunc {
	// If the API key is not configured, treat this as a server-side misconfiguration.
	if apiKey == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return response.InternalServerError(
					c,
					fmt.Errorf("API key is not configured for this endpoint group"),
				)
			}
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extract(c)
			if token == "" || !secureCompare(token, apiKey) {
				return response.Unauthorized(c)
			}

			return next(c)
		}
	}
}
