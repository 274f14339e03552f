package log

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// errorHandler rewrites records carrying an error attribute: it appends the
// root cause's type, so logs can be filtered on the pipeline error taxonomy,
// and the cockroachdb/errors stacktrace when one is attached.
type errorHandler struct {
	next slog.Handler
}

func wrapWithErrorHandler(next slog.Handler) slog.Handler {
	return &errorHandler{next: next}
}

func (h *errorHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h *errorHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == ErrAttrKey {
			err, _ = attr.Value.Any().(error)
			return false
		}
		return true
	})
	if err != nil {
		r.AddAttrs(slog.String(ErrCauseAttrKey, fmt.Sprintf("%T", errors.UnwrapAll(err))))
		if st := extractStacktrace(err); st != "" {
			r.AddAttrs(slog.String(StacktraceAttrKey, st))
		}
	}
	return h.next.Handle(ctx, r)
}

func (h *errorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &errorHandler{next: h.next.WithAttrs(attrs)}
}

func (h *errorHandler) WithGroup(g string) slog.Handler {
	return &errorHandler{next: h.next.WithGroup(g)}
}

func extractStacktrace(err error) string {
	details := errors.GetSafeDetails(err).SafeDetails
	if len(details) > 0 {
		return details[0]
	}
	return ""
}
