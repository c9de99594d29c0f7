package respond

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Every payload carries the serving timestamp so clients can tell a fresh
// snapshot from a stale one.

func Data(c echo.Context, status int, data any) error {
	return c.JSON(status, echo.Map{
		"data":      data,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func Error(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{
		"error":     msg,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
