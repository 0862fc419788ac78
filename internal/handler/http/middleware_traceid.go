package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const traceIDHeader = "X-Trace-ID"

var httpTracer = otel.Tracer("github.com/MKhiriev/go-chama-sync/internal/handler/http")

// withTraceID opens a server span for the request and attaches a request
// scoped logger carrying trace_id. The id is taken from the X-Trace-ID
// header, then from the span, and is generated otherwise. It is echoed back
// in the response.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := httpTracer.Start(r.Context(), r.Method+" request",
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			))
		defer span.End()

		traceID := r.Header.Get(traceIDHeader)
		switch {
		case traceID != "":
		case span.SpanContext().HasTraceID():
			traceID = span.SpanContext().TraceID().String()
		default:
			traceID = uuid.NewString()
		}
		span.SetAttributes(attribute.String("request.trace_id", traceID))

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(ctx)))
	})
}
