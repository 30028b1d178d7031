// Package domain contains the wire types for the prompt relay.
package domain

import "encoding/json"

// ModelID is the Bedrock model every invocation targets.
const ModelID = "amazon.titan-text-lite-v1"

// Response is the envelope returned to the Lambda caller.
// Body is itself a JSON document encoded as a string.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// SuccessBody is the Response.Body document for a completed generation.
type SuccessBody struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}

// ErrorBody is the Response.Body document for a rejected or failed request.
// Model is omitted when the request never reached the model.
type ErrorBody struct {
	Error string `json:"error"`
	Model string `json:"model,omitempty"`
}

// TitanRequest is the InvokeModel payload for Titan text models.
type TitanRequest struct {
	InputText            string               `json:"inputText"`
	TextGenerationConfig TextGenerationConfig `json:"textGenerationConfig"`
}

// TextGenerationConfig holds the sampling parameters sent to Titan.
type TextGenerationConfig struct {
	MaxTokenCount int      `json:"maxTokenCount"`
	Temperature   float64  `json:"temperature"`
	StopSequences []string `json:"stopSequences"`
	TopP          float64  `json:"topP"`
}

// TitanResponse is the InvokeModel reply from Titan text models.
type TitanResponse struct {
	InputTextTokenCount int           `json:"inputTextTokenCount"`
	Results             []TitanResult `json:"results"`
}

// TitanResult is one generation. OutputText is a pointer so a missing
// field can be told apart from an empty completion.
type TitanResult struct {
	TokenCount       int     `json:"tokenCount"`
	OutputText       *string `json:"outputText"`
	CompletionReason string  `json:"completionReason"`
}

// Event is the inbound invocation payload. Both fields are kept raw so
// extraction can tell a missing value from one of the wrong type.
type Event struct {
	Prompt json.RawMessage `json:"prompt"`
	Body   json.RawMessage `json:"body"`
}
