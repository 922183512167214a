package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	e.Use(Logger(WithLogger(l), WithSkipPaths("/health")))
	e.GET("/scores", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, path := range []string{"/scores", "/health", "/missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := buf.String()
	assert.Contains(t, out, "msg=REQUEST method=GET uri=/scores status=200")
	assert.NotContains(t, out, "uri=/health")
	assert.Contains(t, out, "msg=REQUEST_ERROR method=GET uri=/missing status=404")
}
