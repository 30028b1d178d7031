// Command invoke runs the prompt relay once against Bedrock from a
// developer machine and prints the Lambda response envelope.
//
//	invoke -prompt "Write a haiku about autumn"
//	invoke -event testdata/api_gateway.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/aws/aws-lambda-go/lambdacontext"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pricofy/prompt-relay/internal/logx"
	"github.com/pricofy/prompt-relay/internal/relay"
	"github.com/pricofy/prompt-relay/internal/titan"
)

func main() {
	var (
		prompt    string
		eventPath string
		envFile   string
		logLevel  string
	)
	flag.StringVar(&prompt, "prompt", "", "prompt to send")
	flag.StringVar(&eventPath, "event", "", "path to a JSON event file; overrides -prompt")
	flag.StringVar(&envFile, "env-file", ".env", "dotenv file with MAX_TOKENS, TEMPERATURE and AWS settings")
	flag.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, none)")
	flag.Parse()

	if err := run(prompt, eventPath, envFile, logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "invoke:", err)
		os.Exit(1)
	}
}

func run(prompt, eventPath, envFile, logLevel string) error {
	if err := loadEnv(envFile); err != nil {
		return err
	}
	if logLevel != "" {
		logx.Configure(logLevel)
	}

	event, err := buildEvent(prompt, eventPath)
	if err != nil {
		return err
	}

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{
		AwsRequestID: uuid.NewString(),
	})

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	r := relay.New(titan.New(bedrockruntime.NewFromConfig(cfg)), logx.Log)
	resp, err := r.Handle(ctx, event)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// loadEnv applies a dotenv file without overriding variables already set.
// A missing file is not an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// buildEvent reads the event file when given, else wraps prompt as {"prompt": ...}.
func buildEvent(prompt, eventPath string) (json.RawMessage, error) {
	if eventPath != "" {
		data, err := os.ReadFile(eventPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("event %s is not valid JSON", eventPath)
		}
		return data, nil
	}

	return json.Marshal(map[string]string{"prompt": prompt})
}
