package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/cardquest-go/internal/application/logging"
	"github.com/andrescamacho/cardquest-go/internal/application/mediator"
)

// LoggingMiddleware logs every request with its outcome and duration. The
// logger is also placed on the context for handlers that want it.
func LoggingMiddleware(logger logging.Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		name := requestName(request)
		start := time.Now()

		response, err := next(logging.WithLogger(ctx, logger), request)

		metadata := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log(logging.LevelWarn, "request rejected", metadata)
			return nil, err
		}
		logger.Log(logging.LevelDebug, "request handled", metadata)
		return response, nil
	}
}

func requestName(request mediator.Request) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", request), "*")
}
