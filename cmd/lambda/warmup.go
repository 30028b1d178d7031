package main

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/pricofy/prompt-relay/internal/logx"
)

const (
	// warmupSource identifies scheduled keep-warm events.
	warmupSource = "warmup"

	// warmupDelay keeps this instance busy long enough for the
	// self-invocations to land on other instances.
	warmupDelay = 75 * time.Millisecond
)

// warmupEvent is the scheduled keep-warm payload.
type warmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

type warmupStatus struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

type warmupResponse struct {
	StatusCode int          `json:"statusCode"`
	Body       warmupStatus `json:"body"`
}

// invoker is the subset of the Lambda client used for self-invocation.
type invoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

type warmer struct {
	client       invoker
	functionName string
	delay        time.Duration
}

func newWarmer(client invoker, functionName string) *warmer {
	return &warmer{client: client, functionName: functionName, delay: warmupDelay}
}

// parseWarmupEvent reports whether event is a keep-warm event.
// A missing or non-numeric concurrency means zero.
func parseWarmupEvent(event json.RawMessage) (warmupEvent, bool) {
	var fields map[string]interface{}
	if err := json.Unmarshal(event, &fields); err != nil {
		return warmupEvent{}, false
	}

	source, ok := fields["source"].(string)
	if !ok || source != warmupSource {
		return warmupEvent{}, false
	}

	ev := warmupEvent{Source: source}
	if c, ok := fields["concurrency"].(float64); ok && c > 0 {
		ev.Concurrency = int(c)
	}
	return ev, true
}

// warm answers a keep-warm event, fanning out ev.Concurrency async
// self-invocations so that many instances stay warm.
func (w *warmer) warm(ctx context.Context, ev warmupEvent) warmupResponse {
	warmed := 1

	if ev.Concurrency > 0 {
		if err := w.selfInvoke(ctx, ev.Concurrency); err != nil {
			logx.Log.Warn().Err(err).Int("concurrency", ev.Concurrency).Msg("warmup self-invocation failed")
		} else {
			warmed += ev.Concurrency
		}
	}

	time.Sleep(w.delay)

	logx.Log.Debug().Int("instances_warmed", warmed).Msg("warmup complete")
	return warmupResponse{
		StatusCode: 200,
		Body:       warmupStatus{Status: "warm", InstancesWarmed: warmed},
	}
}

// selfInvoke sends count async invocations to this function and returns the
// first error seen.
func (w *warmer) selfInvoke(ctx context.Context, count int) error {
	// Children get concurrency 0 so they do not fan out again
	payload, err := json.Marshal(warmupEvent{Source: warmupSource})
	if err != nil {
		return err
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := w.client.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(w.functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return firstErr
}
