package relay

import (
	"bytes"
	"encoding/json"

	"github.com/pricofy/prompt-relay/internal/domain"
)

// ExtractPrompt resolves the prompt from an inbound event.
// The top-level "prompt" wins; otherwise "body.prompt" is used. The body may
// be an object or a string holding an encoded object, as API Gateway proxy
// integrations deliver it. Any other body shape counts as no prompt.
func ExtractPrompt(event json.RawMessage) (string, bool) {
	var ev domain.Event
	if err := json.Unmarshal(event, &ev); err != nil {
		return "", false
	}

	if prompt, ok := nonEmptyString(ev.Prompt); ok {
		return prompt, true
	}

	return bodyPrompt(ev.Body)
}

func bodyPrompt(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}

	// String-encoded body
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return "", false
		}
		raw = bytes.TrimSpace([]byte(encoded))
	}

	if len(raw) == 0 || raw[0] != '{' {
		return "", false
	}

	var body struct {
		Prompt json.RawMessage `json:"prompt"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", false
	}

	return nonEmptyString(body.Prompt)
}

// nonEmptyString reports whether raw is a JSON string with at least one character.
func nonEmptyString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}

	return s, s != ""
}
