package relay

import "errors"

// MissingPromptMessage is the fixed error text returned for requests without a prompt.
const MissingPromptMessage = "Missing 'prompt' in the request body."

// ErrMissingPrompt is returned by validation when no usable prompt was found.
var ErrMissingPrompt = errors.New(MissingPromptMessage)

// InferenceError wraps any failure that happened while invoking the model
// or reading its reply.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string { return e.Err.Error() }

func (e *InferenceError) Unwrap() error { return e.Err }
