// Package tracing installs the OpenTelemetry tracer provider used for spin
// spans. With the "none" exporter the global no-op provider stays in place.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/zjrosen/roleta/internal/config"
	"github.com/zjrosen/roleta/internal/log"
)

// ServiceName identifies roleta in exported spans.
const ServiceName = "roleta"

// Shutdown flushes pending spans and releases the exporter.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

// Setup builds an exporter from cfg and registers a tracer provider
// globally. The returned Shutdown must be called before exit.
func Setup(ctx context.Context, cfg config.TracingConfig, version string) (Shutdown, error) {
	var (
		exp    sdktrace.SpanExporter
		closer io.Closer
		err    error
	)

	switch cfg.Exporter {
	case "", config.ExporterNone:
		return noop, nil
	case config.ExporterStdout:
		var w io.Writer = io.Discard
		if cfg.File != "" {
			if err := os.MkdirAll(filepath.Dir(cfg.File), 0750); err != nil {
				return nil, fmt.Errorf("creating span file directory: %w", err)
			}
			f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
			if err != nil {
				return nil, fmt.Errorf("opening span file: %w", err)
			}
			w, closer = f, f
		}
		exp, err = stdouttrace.New(stdouttrace.WithWriter(w))
	case config.ExporterOTLP:
		exp, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unknown tracing exporter %q", cfg.Exporter)
	}
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("creating %s exporter: %w", cfg.Exporter, err)
	}

	tp := NewProvider(sdktrace.WithBatcher(exp), version)
	otel.SetTracerProvider(tp)
	log.Info(log.CatTrace, "Tracing enabled", "exporter", cfg.Exporter, "file", cfg.File, "endpoint", cfg.Endpoint)

	return func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if closer != nil {
			err = errors.Join(err, closer.Close())
		}
		return err
	}, nil
}

// NewProvider returns a tracer provider tagged with the roleta resource.
func NewProvider(processor sdktrace.TracerProviderOption, version string) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", version),
	)
	return sdktrace.NewTracerProvider(processor, sdktrace.WithResource(res))
}
