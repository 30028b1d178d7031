// Package config resolves the generation configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pricofy/prompt-relay/internal/domain"
)

// Defaults applied when the environment does not override them.
const (
	DefaultMaxTokens   = 100
	DefaultTemperature = 0.5

	// TopP is fixed; Titan Text Lite is always sampled over the full distribution.
	TopP = 1.0
)

// Environment variable names.
const (
	EnvMaxTokens   = "MAX_TOKENS"
	EnvTemperature = "TEMPERATURE"
)

// Generation is the immutable set of parameters for one invocation.
type Generation struct {
	ModelID     string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// Load reads the generation configuration from the process environment.
// It is called once per invocation so overrides take effect without a cold start.
// A malformed override is a deployment defect and is returned as an error.
func Load() (Generation, error) {
	gen := Generation{
		ModelID:     domain.ModelID,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		TopP:        TopP,
	}

	if v, ok := os.LookupEnv(EnvMaxTokens); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Generation{}, fmt.Errorf("invalid %s %q: %w", EnvMaxTokens, v, err)
		}
		gen.MaxTokens = n
	}

	if v, ok := os.LookupEnv(EnvTemperature); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Generation{}, fmt.Errorf("invalid %s %q: %w", EnvTemperature, v, err)
		}
		gen.Temperature = f
	}

	return gen, nil
}
