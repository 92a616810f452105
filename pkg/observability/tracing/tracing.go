/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var logger = log.New("tracing")

// SpanExporterType specifies the type of span exporter used by tracer provider.
type SpanExporterType = string

const (
	None   SpanExporterType = ""
	Stdout SpanExporterType = "STDOUT"
)

const tracerName = "https://github.com/trustbloc/vcs-issuance"

// IsExportedSupported reports whether the exporter type can be initialized.
func IsExportedSupported(exporter SpanExporterType) bool {
	return exporter == None || exporter == Stdout
}

type options struct {
	serviceVersion string
	writer         io.Writer
	sampleRatio    float64
}

// Opt configures Initialize.
type Opt func(*options)

// WithServiceVersion adds service.version to the span resource.
func WithServiceVersion(version string) Opt {
	return func(o *options) {
		o.serviceVersion = version
	}
}

// WithWriter redirects the stdout exporter.
func WithWriter(w io.Writer) Opt {
	return func(o *options) {
		o.writer = w
	}
}

// WithSampleRatio samples the given fraction of root spans. Child spans follow their parent.
func WithSampleRatio(ratio float64) Opt {
	return func(o *options) {
		o.sampleRatio = ratio
	}
}

// Initialize registers a global tracer provider exporting to exporter. The
// returned func flushes and shuts the provider down. With no exporter a noop
// tracer is returned and the globals are left untouched.
func Initialize(exporter SpanExporterType, serviceName string, opts ...Opt) (func(), trace.Tracer, error) {
	if exporter == None {
		return func() {}, noop.NewTracerProvider().Tracer(""), nil
	}

	o := &options{sampleRatio: 1}
	for _, opt := range opts {
		opt(o)
	}

	var (
		spanExporter tracesdk.SpanExporter
		err          error
	)

	switch exporter {
	case Stdout:
		var exporterOpts []stdouttrace.Option
		if o.writer != nil {
			exporterOpts = append(exporterOpts, stdouttrace.WithWriter(o.writer))
		}

		spanExporter, err = stdouttrace.New(exporterOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("create stdout exporter: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported exporter type: %s", exporter)
	}

	attrs := []attribute.KeyValue{
		semconv.ServiceNameKey.String(serviceName),
		semconv.ProcessPIDKey.Int(os.Getpid()),
	}

	if o.serviceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersionKey.String(o.serviceVersion))
	}

	tracerProvider := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(spanExporter),
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(o.sampleRatio))),
		tracesdk.WithResource(resource.NewWithAttributes(semconv.SchemaURL, attrs...)),
	)

	otel.SetTracerProvider(tracerProvider)

	// Propagate trace context via traceparent and tracestate headers (https://www.w3.org/TR/trace-context/).
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return func() {
		if err = tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Warn("Error shutting down tracer provider", log.WithError(err))
		}
	}, tracerProvider.Tracer(tracerName), nil
}
