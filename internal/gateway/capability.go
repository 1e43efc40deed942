// Package gateway is the generation gateway: it validates a capability's
// input, renders its prompt, calls the model once and validates the reply.
package gateway

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/socialchef/chefgpt/internal/errors"
	"github.com/socialchef/chefgpt/internal/llm"
	"github.com/socialchef/chefgpt/internal/logger"
	"github.com/socialchef/chefgpt/internal/metrics"
	"github.com/socialchef/chefgpt/internal/prompts"
	"github.com/socialchef/chefgpt/internal/schema"
	"github.com/socialchef/chefgpt/internal/sentry"
	"github.com/socialchef/chefgpt/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Generation outcomes recorded in metrics and spans.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalidInput  = "invalid_input"
	OutcomeProviderError = "provider_error"
	OutcomeInvalidOutput = "invalid_output"
)

// Error codes carried by RECIPE_GENERATION_ERROR values.
const (
	CodePromptFailed  = "PROMPT_RENDER_FAILED"
	CodeProviderError = "PROVIDER_ERROR"
	CodeTimeout       = "GENERATION_TIMEOUT"
	CodeCanceled      = "GENERATION_CANCELED"
	CodeEmptyResponse = "EMPTY_MODEL_RESPONSE"
	CodeInvalidOutput = "INVALID_MODEL_OUTPUT"
)

var tracer = telemetry.Tracer("chefgpt/gateway")

// Capability is one structured generation: In is validated, rendered into
// Template, sent to the model, and the reply is decoded into Out.
type Capability[In, Out any] struct {
	Name     string
	Input    schema.Schema[In]
	Output   schema.Schema[Out]
	Template *prompts.Template
	Fields   func(In) map[string]string

	provider llm.Provider
	timeout  time.Duration
}

// Generate runs the capability. Invalid input fails with a VALIDATION_ERROR
// and never reaches the model. Every later failure is a
// RECIPE_GENERATION_ERROR. The model is called exactly once.
func (c *Capability[In, Out]) Generate(ctx context.Context, in In) (Out, error) {
	var zero Out

	ctx, span := tracer.Start(ctx, "gateway."+c.Name)
	defer span.End()
	span.SetAttributes(
		attribute.String("capability", c.Name),
		attribute.String("provider", c.provider.Name()),
	)

	start := time.Now()
	outcome := OutcomeSuccess
	defer func() {
		attrs := metric.WithAttributes(
			attribute.String("capability", c.Name),
			attribute.String("outcome", outcome),
		)
		metrics.GenerationsTotal.Add(ctx, 1, attrs)
		metrics.GenerationDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		span.SetAttributes(attribute.String("outcome", outcome))
	}()

	validated, err := c.Input.Validate(in)
	if err != nil {
		outcome = OutcomeInvalidInput
		span.SetStatus(codes.Error, "invalid input")
		slog.DebugContext(ctx, "Rejected generation input",
			"capability", c.Name,
			"error", err.Error(),
			logger.WithTraceContext(ctx))
		return zero, err
	}

	userPrompt, err := c.Template.Render(c.Fields(validated))
	if err != nil {
		outcome = OutcomeProviderError
		return zero, c.fail(ctx, errors.NewRecipeGenerationError("failed to render prompt", CodePromptFailed, err))
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reply, err := c.provider.Complete(callCtx, llm.Prompt{
		System: prompts.System(),
		User:   userPrompt,
		JSON:   true,
	})
	if err != nil {
		outcome = OutcomeProviderError
		return zero, c.fail(ctx, providerFailure(callCtx, err))
	}

	out, err := c.Output.Decode([]byte(extractJSON(reply)))
	if err != nil {
		outcome = OutcomeInvalidOutput
		return zero, c.fail(ctx, errors.NewRecipeGenerationError(
			"model reply did not match "+c.Output.Name(), CodeInvalidOutput, err).WithRetryable(true))
	}

	slog.InfoContext(ctx, "Generation succeeded",
		"capability", c.Name,
		"provider", c.provider.Name(),
		"duration_ms", time.Since(start).Milliseconds(),
		logger.WithTraceContext(ctx))

	return out, nil
}

func (c *Capability[In, Out]) fail(ctx context.Context, err *errors.AppError) error {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Message)

	level := slog.LevelError
	if err.ErrorCode == CodeCanceled {
		level = slog.LevelDebug
	} else {
		sentry.CaptureError(ctx, err, map[string]string{
			"capability": c.Name,
			"error_code": err.ErrorCode,
		})
	}
	slog.Log(ctx, level, "Generation failed",
		"capability", c.Name,
		"provider", c.provider.Name(),
		"error_code", err.ErrorCode,
		"error", err.Error(),
		logger.WithTraceContext(ctx))
	return err
}

func providerFailure(callCtx context.Context, err error) *errors.AppError {
	switch {
	case stderrors.Is(err, context.Canceled):
		return errors.NewRecipeGenerationError("generation was canceled", CodeCanceled, err)
	case stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(callCtx.Err(), context.DeadlineExceeded):
		return errors.NewRecipeGenerationError("model did not answer in time", CodeTimeout, err).WithRetryable(true)
	case stderrors.Is(err, llm.ErrNoResponse):
		return errors.NewRecipeGenerationError("model returned no content", CodeEmptyResponse, err).WithRetryable(true)
	default:
		return errors.NewRecipeGenerationError("model provider call failed", CodeProviderError, err).
			WithRetryable(llm.IsRetryableError(err))
	}
}
