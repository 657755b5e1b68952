package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/planforge/planforge/types"
)

type fakeTurn struct {
	content string
	err     error
}

// fakeChat replays canned completions and records every request.
type fakeChat struct {
	turns []fakeTurn
	reqs  []openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.reqs = append(f.reqs, req)
	turn := f.turns[len(f.reqs)-1]
	if turn.err != nil {
		return openai.ChatCompletionResponse{}, turn.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: turn.content}},
		},
	}, nil
}

func testOpenAI(fake *fakeChat) *OpenAI {
	return &OpenAI{client: fake, model: "gpt-4o-mini", maxRetries: 2}
}

const goodOutput = `{"tasks":[
  {"id":"T-001","title":"Set up the repository","steps":["init repo","add CI"]},
  {"id":"T-002","title":"Implement endpoints","deps":["T-001"],"steps":["write handlers"]}
]}`

func TestOpenAI_Generate(t *testing.T) {
	fake := &fakeChat{turns: []fakeTurn{{content: goodOutput}}}
	tj, err := testOpenAI(fake).Generate(context.Background(), "## Goal\nship it", Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(tj.Tasks) != 2 {
		t.Errorf("got %d tasks, want 2", len(tj.Tasks))
	}
	if tj.Version.Generator != "openai/gpt-4o-mini" {
		t.Errorf("version generator = %q", tj.Version.Generator)
	}
	if len(fake.reqs) != 1 {
		t.Errorf("made %d requests, want 1", len(fake.reqs))
	}
	if fake.reqs[0].ResponseFormat == nil || fake.reqs[0].ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Error("request must demand a JSON object response")
	}
}

func TestOpenAI_RetriesOnMalformedJSON(t *testing.T) {
	fake := &fakeChat{turns: []fakeTurn{
		{content: "sorry, here is prose instead of JSON"},
		{content: goodOutput},
	}}
	tj, err := testOpenAI(fake).Generate(context.Background(), "## Goal\nship it", Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(tj.Tasks) != 2 {
		t.Errorf("got %d tasks, want 2", len(tj.Tasks))
	}
	if len(fake.reqs) != 2 {
		t.Fatalf("made %d requests, want 2", len(fake.reqs))
	}
	retryPrompt := fake.reqs[1].Messages[1].Content
	if !strings.Contains(retryPrompt, "PREVIOUS ATTEMPT FAILED") {
		t.Error("retry prompt must carry error feedback")
	}
}

func TestOpenAI_RetriesOnGatekeeperRejection(t *testing.T) {
	duplicate := `{"tasks":[
	  {"id":"T-001","title":"First of the pair","steps":["a"]},
	  {"id":"T-001","title":"Second of the pair","steps":["b"]}
	]}`
	fake := &fakeChat{turns: []fakeTurn{{content: duplicate}, {content: goodOutput}}}
	tj, err := testOpenAI(fake).Generate(context.Background(), "## Goal\nship it", Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(tj.Tasks) != 2 {
		t.Errorf("got %d tasks, want 2", len(tj.Tasks))
	}
	if len(fake.reqs) != 2 {
		t.Errorf("made %d requests, want 2", len(fake.reqs))
	}
}

func TestOpenAI_TransientErrorIsRetried(t *testing.T) {
	fake := &fakeChat{turns: []fakeTurn{
		{err: errors.New("429 too many requests")},
		{content: goodOutput},
	}}
	if _, err := testOpenAI(fake).Generate(context.Background(), "## Goal\nship it", Options{}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(fake.reqs) != 2 {
		t.Errorf("made %d requests, want 2", len(fake.reqs))
	}
}

func TestOpenAI_FatalErrorStops(t *testing.T) {
	fake := &fakeChat{turns: []fakeTurn{{err: errors.New("invalid api key")}}}
	if _, err := testOpenAI(fake).Generate(context.Background(), "## Goal\nship it", Options{}); err == nil {
		t.Fatal("Generate() must surface non-transient errors")
	}
	if len(fake.reqs) != 1 {
		t.Errorf("made %d requests, want 1", len(fake.reqs))
	}
}

func TestOpenAI_ModelOverride(t *testing.T) {
	fake := &fakeChat{turns: []fakeTurn{{content: goodOutput}}}
	tj, err := testOpenAI(fake).Generate(context.Background(), "## Goal\nship it", Options{ModelName: "gpt-4o"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if fake.reqs[0].Model != "gpt-4o" {
		t.Errorf("request model = %q, want override", fake.reqs[0].Model)
	}
	if tj.Version.Generator != "openai/gpt-4o" {
		t.Errorf("version generator = %q", tj.Version.Generator)
	}
}

func TestNewOpenAI_Defaults(t *testing.T) {
	g := NewOpenAI(types.LLMConfig{APIKey: "test-key"})
	if g.model != defaultModel {
		t.Errorf("model = %q, want %q", g.model, defaultModel)
	}
	if g.maxRetries != defaultRetries {
		t.Errorf("maxRetries = %d, want %d", g.maxRetries, defaultRetries)
	}
}
