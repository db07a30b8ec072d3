package tracer

import (
	"context"
	"log/slog"
	"sync"

	"catalog-api/internal/config"
	"catalog-api/internal/logger"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/grafana/pyroscope-go"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

var (
	once         sync.Once
	shutdownFunc func()
	initErr      error
)

var pyroLogrus = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return l
}()

// Instance initializes the OpenTelemetry tracer provider and the Pyroscope
// profiler once. Both are optional: with no remote endpoints configured it
// returns a no-op shutdown and the propagators only.
func Instance(globalCtx context.Context) (func(), error) {
	once.Do(func() {
		cfg := config.Instance()
		log := logger.Instance()

		shutdownFunc = func() {}

		// Propagate trace context and baggage across processes regardless
		// of whether an exporter is attached.
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))

		if cfg.RemoteTraceRpcURI != "" {
			// OTLP exporter (Tempo, etc)
			exp, err := otlptracegrpc.New(globalCtx,
				otlptracegrpc.WithInsecure(),
				otlptracegrpc.WithEndpoint(cfg.RemoteTraceRpcURI),
				otlptracegrpc.WithCompressor("gzip"),
			)
			if err != nil {
				log.Error("Failed to create OTLP exporter", slog.String("error", err.Error()))
				initErr = err
				return
			}

			res, err := resource.New(globalCtx,
				resource.WithAttributes(
					semconv.ServiceNameKey.String(cfg.AppName),
					attribute.String("env", "production"),
				),
			)
			if err != nil {
				log.Error("Failed to create resource", slog.String("error", err.Error()))
				initErr = err
				return
			}

			tp := trace.NewTracerProvider(
				trace.WithBatcher(exp),
				trace.WithResource(res),
			)

			otel.SetTracerProvider(otelpyroscope.NewTracerProvider(tp))

			log.Info("OpenTelemetry Tracer initialized")

			shutdownFunc = func() {
				if err := tp.Shutdown(globalCtx); err != nil {
					log.Error("Error shutting down tracer provider", slog.String("error", err.Error()))
				}
			}
		}

		if cfg.RemoteProfilingHttpURI != "" {
			_, err := pyroscope.Start(pyroscope.Config{
				ApplicationName: cfg.AppName,
				ServerAddress:   cfg.RemoteProfilingHttpURI,
				Logger:          pyroLogrus,
			})
			if err != nil {
				log.Error("Pyroscope failed to start", slog.String("error", err.Error()))
			} else {
				log.Info("Pyroscope started successfully")
			}
		}
	})

	return shutdownFunc, initErr
}
