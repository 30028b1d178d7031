// Package relay forwards a prompt from a Lambda event to a text model and
// shapes the reply into an API Gateway style envelope.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/smithy-go"
	"github.com/pricofy/prompt-relay/internal/config"
	"github.com/pricofy/prompt-relay/internal/domain"
	"github.com/pricofy/prompt-relay/internal/titan"
	"github.com/rs/zerolog"
)

// Generator produces a completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, gen config.Generation) (*titan.Result, error)
}

var _ Generator = (*titan.Client)(nil)

// Relay handles prompt events.
type Relay struct {
	generator  Generator
	log        zerolog.Logger
	loadConfig func() (config.Generation, error)
}

// New creates a Relay that sends prompts to g and logs through log.
func New(g Generator, log zerolog.Logger) *Relay {
	return &Relay{
		generator:  g,
		log:        log,
		loadConfig: config.Load,
	}
}

// Handle processes one invocation.
//
// A missing prompt yields a 400 envelope and no model call. Any failure
// while invoking the model or reading its reply yields a 500 envelope.
// A malformed generation configuration is returned as an error so the
// invocation fails instead of answering.
func (r *Relay) Handle(ctx context.Context, event json.RawMessage) (*domain.Response, error) {
	log := r.requestLogger(ctx)
	log.Info().Msg("prompt relay invoked")
	log.Debug().RawJSON("event", event).Msg("received event")

	prompt, ok := ExtractPrompt(event)
	if !ok {
		log.Error().Err(ErrMissingPrompt).Msg("no prompt found in event")
		return respond(http.StatusBadRequest, domain.ErrorBody{Error: ErrMissingPrompt.Error()})
	}

	gen, err := r.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load generation config: %w", err)
	}

	result, err := r.generate(ctx, prompt, gen)
	if err != nil {
		ev := log.Error().Err(err).Str("model", gen.ModelID)
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			ev = ev.Str("error_code", apiErr.ErrorCode())
		}
		ev.Msg("error invoking model")
		return respond(http.StatusInternalServerError, domain.ErrorBody{
			Error: err.Error(),
			Model: gen.ModelID,
		})
	}

	log.Info().
		Str("model", gen.ModelID).
		Int("input_tokens", result.InputTokens).
		Int("output_tokens", result.OutputTokens).
		Str("completion_reason", result.CompletionReason).
		Msg("model responded")
	log.Debug().Str("output", result.Text).Msg("model output")

	return respond(http.StatusOK, domain.SuccessBody{
		Response: result.Text,
		Model:    gen.ModelID,
	})
}

// generate is the single boundary around the remote call and reply parsing.
func (r *Relay) generate(ctx context.Context, prompt string, gen config.Generation) (*titan.Result, error) {
	result, err := r.generator.Generate(ctx, prompt, gen)
	if err != nil {
		return nil, &InferenceError{Err: err}
	}
	return result, nil
}

func (r *Relay) requestLogger(ctx context.Context) zerolog.Logger {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return r.log.With().Str("aws_request_id", lc.AwsRequestID).Logger()
	}
	return r.log
}

func respond(status int, body any) (*domain.Response, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response body: %w", err)
	}
	return &domain.Response{StatusCode: status, Body: string(encoded)}, nil
}
