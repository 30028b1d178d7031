package titan_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/pricofy/prompt-relay/internal/config"
	"github.com/pricofy/prompt-relay/internal/mock"
	"github.com/pricofy/prompt-relay/internal/titan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGen = config.Generation{
	ModelID:     "amazon.titan-text-lite-v1",
	MaxTokens:   100,
	Temperature: 0.5,
	TopP:        1,
}

func TestNewRequest(t *testing.T) {
	payload, err := json.Marshal(titan.NewRequest("Tell me a joke", testGen))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"inputText": "Tell me a joke",
		"textGenerationConfig": {
			"maxTokenCount": 100,
			"temperature": 0.5,
			"stopSequences": [],
			"topP": 1
		}
	}`, string(payload))
}

func TestNewRequest_Overrides(t *testing.T) {
	gen := testGen
	gen.MaxTokens = 250
	gen.Temperature = 0.05

	req := titan.NewRequest("hi", gen)
	assert.Equal(t, 250, req.TextGenerationConfig.MaxTokenCount)
	assert.Equal(t, 0.05, req.TextGenerationConfig.Temperature)
	assert.NotNil(t, req.TextGenerationConfig.StopSequences)
	assert.Empty(t, req.TextGenerationConfig.StopSequences)
}

func TestGenerate_SendsInvokeModelInput(t *testing.T) {
	var got *bedrockruntime.InvokeModelInput
	api := &mock.BedrockRuntime{
		InvokeModelFn: func(_ context.Context, params *bedrockruntime.InvokeModelInput) (*bedrockruntime.InvokeModelOutput, error) {
			got = params
			return &bedrockruntime.InvokeModelOutput{
				Body: []byte(`{"inputTextTokenCount":3,"results":[{"tokenCount":5,"outputText":"hello","completionReason":"FINISH"}]}`),
			}, nil
		},
	}

	res, err := titan.New(api).Generate(context.Background(), "say hello", testGen)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "amazon.titan-text-lite-v1", aws.ToString(got.ModelId))
	assert.Equal(t, "application/json", aws.ToString(got.ContentType))
	assert.Equal(t, "application/json", aws.ToString(got.Accept))
	assert.JSONEq(t, `{"inputText":"say hello","textGenerationConfig":{"maxTokenCount":100,"temperature":0.5,"stopSequences":[],"topP":1}}`, string(got.Body))

	assert.Equal(t, &titan.Result{
		Text:             "hello",
		InputTokens:      3,
		OutputTokens:     5,
		CompletionReason: "FINISH",
	}, res)
}

func TestGenerate_InvokeError(t *testing.T) {
	wantErr := errors.New("connection reset")

	_, err := titan.New(mock.Fail(wantErr)).Generate(context.Background(), "hi", testGen)
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
	assert.Contains(t, err.Error(), "amazon.titan-text-lite-v1")
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{
			name: "single result",
			body: `{"results":[{"outputText":"hello"}]}`,
			want: "hello",
		},
		{
			name: "first of several results",
			body: `{"results":[{"outputText":"first"},{"outputText":"second"}]}`,
			want: "first",
		},
		{
			name: "empty completion is still a completion",
			body: `{"results":[{"outputText":""}]}`,
			want: "",
		},
		{
			name:    "missing results",
			body:    `{"message":"throttled"}`,
			wantErr: titan.ErrNoResults,
		},
		{
			name:    "empty results",
			body:    `{"results":[]}`,
			wantErr: titan.ErrNoResults,
		},
		{
			name:    "missing outputText",
			body:    `{"results":[{"tokenCount":0}]}`,
			wantErr: titan.ErrNoOutputText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := titan.ParseResponse([]byte(tt.body))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text)
		})
	}
}

func TestParseResponse_NotJSON(t *testing.T) {
	_, err := titan.ParseResponse([]byte("<html>502</html>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}
