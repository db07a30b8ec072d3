package middleware_http

import (
	"bytes"
	"net/http"
	"time"

	"catalog-api/internal/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

var tracer = otel.Tracer("HttpMiddleware")

// ResponseWriter captures status, size and body (up to MaxBodyLogged).
type ResponseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int64
	buf        bytes.Buffer
}

func (rw *ResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *ResponseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)

	if rw.buf.Len() < logger.MaxBodyLogged {
		toCopy := logger.MaxBodyLogged - rw.buf.Len()
		if len(b) < toCopy {
			toCopy = len(b)
		}
		rw.buf.Write(b[:toCopy])
	}
	return n, err
}

// Trace wraps the mux with OpenTelemetry tracing: it continues an incoming
// trace when the headers carry one, injects X-Trace-ID into the response,
// records panics on the span, and logs request and response metadata.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path)
		defer func() {
			if rec := recover(); rec != nil {
				span.RecordError(errFromRecover(rec))
				span.SetStatus(codes.Error, "panic occurred")
				panic(rec)
			}
			span.End()
		}()

		r = r.WithContext(ctx)

		attrs := logger.LogHTTPRequest(ctx, r, "incoming::request")
		logger.Info(ctx, "HTTP", attrs...)

		rw := &ResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()

		rw.Header().Set("X-Trace-ID", span.SpanContext().TraceID().String())

		next.ServeHTTP(rw, r)

		if rw.statusCode >= 500 {
			span.SetStatus(codes.Error, "internal server error")
		} else if rw.statusCode >= 400 {
			span.SetStatus(codes.Error, "client error")
		} else {
			span.SetStatus(codes.Ok, "")
		}

		duration := time.Since(start)

		attrs = logger.LogHTTPResponse(ctx, r, rw.Header(), rw.statusCode, &rw.buf, duration.Milliseconds(), "incoming::response")
		logger.Info(ctx, "HTTP", attrs...)
	})
}

// errFromRecover converts a panic value into an error for span recording.
func errFromRecover(rec interface{}) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return &panicError{rec}
}

type panicError struct {
	value interface{}
}

func (p *panicError) Error() string {
	if s, ok := p.value.(string); ok {
		return "panic: " + s
	}
	return "panic: unknown"
}
