package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	meter = otel.Meter("chefgpt/business")

	// Generation metrics
	GenerationsTotal   metric.Int64Counter     = noop.Int64Counter{}
	GenerationDuration metric.Float64Histogram = noop.Float64Histogram{}

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter     = noop.Int64Counter{}
	ExternalAPIDuration   metric.Float64Histogram = noop.Float64Histogram{}

	// Provider fallback metrics
	ProviderFallbackTotal metric.Int64Counter = noop.Int64Counter{}

	// Form session metrics
	FormSubmissionsTotal metric.Int64Counter = noop.Int64Counter{}
	StaleResultsTotal    metric.Int64Counter = noop.Int64Counter{}
)

func Init() error {
	var err error

	// Generation metrics
	GenerationsTotal, err = meter.Int64Counter(
		"recipe.generations.total",
		metric.WithDescription("Total number of gateway generations by capability and outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	GenerationDuration, err = meter.Float64Histogram(
		"recipe.generation.duration",
		metric.WithDescription("Duration of a gateway generation, validation included"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	// External API metrics
	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of model provider calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of model provider calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	// Provider fallback metrics
	ProviderFallbackTotal, err = meter.Int64Counter(
		"provider.fallback.total",
		metric.WithDescription("Total number of provider fallback events"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	// Form session metrics
	FormSubmissionsTotal, err = meter.Int64Counter(
		"form.submissions.total",
		metric.WithDescription("Total number of recipe form submissions"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	StaleResultsTotal, err = meter.Int64Counter(
		"form.stale_results.total",
		metric.WithDescription("Generation results discarded because a newer submission superseded them"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	return nil
}
