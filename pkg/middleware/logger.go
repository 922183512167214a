package middleware

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type LoggerOpts func(*loggerOptions)

type loggerOptions struct {
	logger *slog.Logger
	skip   middleware.Skipper
}

// WithLogger routes request logs to l instead of slog.Default().
func WithLogger(l *slog.Logger) LoggerOpts {
	return func(o *loggerOptions) {
		o.logger = l
	}
}

// WithSkipPaths disables request logging for the given paths.
func WithSkipPaths(paths ...string) LoggerOpts {
	return func(o *loggerOptions) {
		o.skip = func(c echo.Context) bool {
			for _, p := range paths {
				if c.Path() == p {
					return true
				}
			}
			return false
		}
	}
}

func Logger(opts ...LoggerOpts) echo.MiddlewareFunc {
	o := loggerOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return middleware.RequestLoggerWithConfig(config(o))
}

func config(o loggerOptions) middleware.RequestLoggerConfig {
	logger := func() *slog.Logger {
		if o.logger != nil {
			return o.logger
		}
		return slog.Default()
	}

	return middleware.RequestLoggerConfig{
		Skipper:     o.skip,
		LogStatus:   true,
		LogLatency:  true,
		LogMethod:   true,
		LogURI:      true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error == nil {
				logger().LogAttrs(context.Background(), slog.LevelInfo, "REQUEST", attrs...)
			} else {
				attrs = append(attrs, slog.String("err", v.Error.Error()))
				logger().LogAttrs(context.Background(), slog.LevelError, "REQUEST_ERROR", attrs...)
			}
			return nil
		},
	}
}
