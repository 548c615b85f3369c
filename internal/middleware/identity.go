package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated admin id for cache and rate limit
// keys, or "anon" before authentication.
func currentUserID(c echo.Context) string {
	switch v := c.Get(CtxUserID).(type) {
	case uint64:
		if v > 0 {
			return strconv.FormatUint(v, 10)
		}
	case string:
		if v != "" {
			return v
		}
	}
	return "anon"
}
