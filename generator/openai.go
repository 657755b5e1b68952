package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/planforge/planforge/internal/synth"
	"github.com/planforge/planforge/models"
	"github.com/planforge/planforge/types"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 60 * time.Second
	defaultRetries = 2
	retryDelay     = 500 * time.Millisecond
)

// chatClient is the slice of the OpenAI client this generator needs.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI is the LLM-backed sibling of the heuristic engine. It shares the
// Generator contract and the validation gatekeeper, but suspends on network
// I/O, retries transient failures with backoff, and feeds validation errors
// back to the model for one self-correction round per retry.
type OpenAI struct {
	client      chatClient
	model       string
	temperature float64
	maxTokens   int
	maxRetries  int
	debug       bool
}

// NewOpenAI creates an OpenAI-backed generator from LLM configuration.
func NewOpenAI(cfg types.LLMConfig) *OpenAI {
	timeout := defaultTimeout
	if cfg.RequestTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	}
	conf := openai.DefaultConfig(cfg.APIKey)
	conf.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.ModelName
	if model == "" {
		model = defaultModel
	}
	retries := defaultRetries
	if cfg.MaxRetries > 0 {
		retries = cfg.MaxRetries
	}
	return &OpenAI{
		client:      openai.NewClientWithConfig(conf),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxOutputTokens,
		maxRetries:  retries,
		debug:       cfg.Debug,
	}
}

// taskListWrapper matches the JSON object the model is instructed to emit.
type taskListWrapper struct {
	Tasks []models.Task `json:"tasks"`
}

// Generate asks the model for a task collection and runs it through the
// same gatekeeper as the heuristic engine. Malformed or invalid output is
// fed back to the model; transient API errors are retried with backoff.
func (g *OpenAI) Generate(ctx context.Context, prdText string, opts Options) (*models.TasksJson, error) {
	model := g.model
	if opts.ModelName != "" {
		model = opts.ModelName
	}
	temperature := g.temperature
	if opts.Temperature > 0 {
		temperature = opts.Temperature
	}
	maxTasks := opts.MaxTasks
	if maxTasks <= 0 {
		maxTasks = synth.DefaultMaxTasks
	}

	attempts := g.maxRetries + 1
	var lastErr error
	var feedback string

	for attempt := 1; attempt <= attempts; attempt++ {
		requestID := uuid.NewString()
		if g.debug {
			fmt.Fprintf(os.Stderr, "openai request %s: attempt %d/%d, model %s\n", requestID, attempt, attempts, model)
		}

		req := openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: generateTasksSystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(prdText, maxTasks, feedback)},
			},
			Temperature:    float32(temperature),
			ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		}
		if g.maxTokens > 0 {
			req.MaxCompletionTokens = g.maxTokens
		}

		resp, err := g.client.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = fmt.Errorf("openai chat completion (request %s): %w", requestID, err)
			if isTransient(err) && attempt < attempts {
				if err := sleep(ctx, retryDelay*time.Duration(attempt)); err != nil {
					return nil, err
				}
				continue
			}
			return nil, lastErr
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("openai returned no choices (request %s)", requestID)
			continue
		}
		content := resp.Choices[0].Message.Content

		var wrapper taskListWrapper
		if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
			lastErr = fmt.Errorf("parse model output (request %s): %w", requestID, err)
			feedback = parseFeedback(err, content)
			continue
		}

		tj, err := finalize(wrapper.Tasks, "openai/"+model, prdText)
		if err != nil {
			lastErr = fmt.Errorf("model output rejected (request %s): %w", requestID, err)
			feedback = validationFeedback(err)
			continue
		}
		return tj, nil
	}

	return nil, fmt.Errorf("task generation failed after %d attempts: %w", attempts, lastErr)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// isTransient reports whether an API error is worth retrying.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "quota exceeded") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection") ||
		strings.Contains(msg, "temporary")
}
