package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	// OTel meters and instruments
	meter          metric.Meter
	inFlightGauge  metric.Int64ObservableGauge
	completedGauge metric.Int64ObservableGauge
	attemptsGauge  metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	// Create Prometheus exporter
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	// Create meter provider
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	// Create meter with service info
	meter := meterProvider.Meter(
		"webhook-outbox",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	// Register metrics instruments
	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	// In-flight work item gauge
	oe.inFlightGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.workitems.in_flight",
		metric.WithDescription("Number of work items awaiting a delivery outcome"),
		metric.WithUnit("{workitems}"),
		metric.WithInt64Callback(oe.observeInFlight),
	)
	if err != nil {
		return fmt.Errorf("creating in-flight gauge: %w", err)
	}

	// Completed work item gauge
	oe.completedGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.workitems.completed",
		metric.WithDescription("Number of work items with a recorded delivery outcome"),
		metric.WithUnit("{workitems}"),
		metric.WithInt64Callback(oe.observeCompleted),
	)
	if err != nil {
		return fmt.Errorf("creating completed gauge: %w", err)
	}

	// Attempt counter gauge (per delivery triple)
	oe.attemptsGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.attempts.count",
		metric.WithDescription("Completed delivery attempts per tenant/webhook/subscription"),
		metric.WithUnit("{attempts}"),
		metric.WithInt64Callback(oe.observeAttempts),
	)
	if err != nil {
		return fmt.Errorf("creating attempts gauge: %w", err)
	}

	return nil
}

// observeInFlight is a callback that reports in-flight work item counts
func (oe *OTelExporter) observeInFlight(ctx context.Context, observer metric.Int64Observer) error {
	inFlight, _, err := oe.collector.GetWorkItemCounts(ctx)
	if err != nil {
		return err
	}

	observer.Observe(inFlight)
	return nil
}

// observeCompleted is a callback that reports completed work item counts
func (oe *OTelExporter) observeCompleted(ctx context.Context, observer metric.Int64Observer) error {
	_, completed, err := oe.collector.GetWorkItemCounts(ctx)
	if err != nil {
		return err
	}

	observer.Observe(completed)
	return nil
}

// observeAttempts is a callback that reports attempt counts per triple
func (oe *OTelExporter) observeAttempts(ctx context.Context, observer metric.Int64Observer) error {
	attemptCounts, err := oe.collector.GetAttemptCounts(ctx)
	if err != nil {
		return err
	}

	for triple, count := range attemptCounts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("delivery.triple", triple),
		))
	}

	return nil
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
