// Package mock provides test doubles using function fields.
package mock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/pricofy/prompt-relay/internal/titan"
)

var _ titan.API = (*BedrockRuntime)(nil)

// BedrockRuntime is a test double for titan.API.
// Set InvokeModelFn before calling InvokeModel.
type BedrockRuntime struct {
	InvokeModelFn func(ctx context.Context, params *bedrockruntime.InvokeModelInput) (*bedrockruntime.InvokeModelOutput, error)

	// Calls counts InvokeModel invocations.
	Calls int
}

// InvokeModel delegates to InvokeModelFn.
func (b *BedrockRuntime) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	b.Calls++
	return b.InvokeModelFn(ctx, params)
}

// Reply returns a BedrockRuntime that answers every call with body.
func Reply(body string) *BedrockRuntime {
	return &BedrockRuntime{
		InvokeModelFn: func(context.Context, *bedrockruntime.InvokeModelInput) (*bedrockruntime.InvokeModelOutput, error) {
			return &bedrockruntime.InvokeModelOutput{
				Body:        []byte(body),
				ContentType: ptr("application/json"),
			}, nil
		},
	}
}

// Fail returns a BedrockRuntime that fails every call with err.
func Fail(err error) *BedrockRuntime {
	return &BedrockRuntime{
		InvokeModelFn: func(context.Context, *bedrockruntime.InvokeModelInput) (*bedrockruntime.InvokeModelOutput, error) {
			return nil, err
		},
	}
}

func ptr(s string) *string { return &s }
