// Package titan invokes Amazon Titan text models through the Bedrock runtime.
package titan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/pricofy/prompt-relay/internal/config"
	"github.com/pricofy/prompt-relay/internal/domain"
)

const contentTypeJSON = "application/json"

// Errors returned when the model replies with an unexpected shape.
var (
	ErrNoResults    = errors.New("response has no results")
	ErrNoOutputText = errors.New("first result has no outputText")
)

// API is the subset of the Bedrock runtime client used here.
type API interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

var _ API = (*bedrockruntime.Client)(nil)

// Client sends prompts to a Titan text model.
type Client struct {
	api API
}

// Result is the text of a completed generation plus its accounting.
type Result struct {
	Text             string
	InputTokens      int
	OutputTokens     int
	CompletionReason string
}

// New creates a Client backed by the given Bedrock runtime API.
func New(api API) *Client {
	return &Client{api: api}
}

// NewRequest builds the Titan payload for a prompt.
func NewRequest(prompt string, gen config.Generation) domain.TitanRequest {
	return domain.TitanRequest{
		InputText: prompt,
		TextGenerationConfig: domain.TextGenerationConfig{
			MaxTokenCount: gen.MaxTokens,
			Temperature:   gen.Temperature,
			StopSequences: []string{},
			TopP:          gen.TopP,
		},
	}
}

// Generate invokes the model once and returns the first result's text.
// Any transport, provider or decoding failure is returned as an error.
func (c *Client) Generate(ctx context.Context, prompt string, gen config.Generation) (*Result, error) {
	payload, err := json.Marshal(NewRequest(prompt, gen))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(gen.ModelID),
		ContentType: aws.String(contentTypeJSON),
		Accept:      aws.String(contentTypeJSON),
		Body:        payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %w", gen.ModelID, err)
	}

	return ParseResponse(out.Body)
}

// ParseResponse decodes a Titan reply and extracts results[0].outputText.
func ParseResponse(body []byte) (*Result, error) {
	var resp domain.TitanResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(resp.Results) == 0 {
		return nil, ErrNoResults
	}

	first := resp.Results[0]
	if first.OutputText == nil {
		return nil, ErrNoOutputText
	}

	return &Result{
		Text:             *first.OutputText,
		InputTokens:      resp.InputTextTokenCount,
		OutputTokens:     first.TokenCount,
		CompletionReason: first.CompletionReason,
	}, nil
}
