package metrics

import (
	"context"
	"reflect"
	"strings"
	"unicode"

	"github.com/andrescamacho/cardquest-go/internal/application/mediator"
)

// PrometheusMiddleware times every request the mediator dispatches.
// A nil collector passes requests straight through.
func PrometheusMiddleware(collector *ActionMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}
		done := collector.begin(actionName(request))
		response, err := next(ctx, request)
		done(err)
		return response, err
	}
}

// actionName turns *commands.AssignHeroCommand into "assign_hero" and
// *queries.GetSnapshotQuery into "get_snapshot"
func actionName(request mediator.Request) string {
	if request == nil {
		return "unknown"
	}
	t := reflect.TypeOf(request)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := strings.TrimSuffix(strings.TrimSuffix(t.Name(), "Command"), "Query")

	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
