// Package main is the entry point for the prompt relay Lambda function.
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/pricofy/prompt-relay/internal/logx"
	"github.com/pricofy/prompt-relay/internal/relay"
	"github.com/pricofy/prompt-relay/internal/titan"
)

// app holds the clients shared across invocations of one instance.
type app struct {
	relay  *relay.Relay
	warmer *warmer
}

func main() {
	ctx := context.Background()

	// Region and credentials come from the execution role
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logx.Log.Fatal().Err(err).Msg("failed to load AWS config")
	}

	a := &app{
		relay:  relay.New(titan.New(bedrockruntime.NewFromConfig(cfg)), logx.Log),
		warmer: newWarmer(lambdasdk.NewFromConfig(cfg), os.Getenv("AWS_LAMBDA_FUNCTION_NAME")),
	}

	lambda.Start(a.handleRequest)
}

func (a *app) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection must happen before any relay processing
	if ev, ok := parseWarmupEvent(event); ok {
		return a.warmer.warm(ctx, ev), nil
	}

	return a.relay.Handle(ctx, event)
}
