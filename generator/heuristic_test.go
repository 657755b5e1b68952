package generator

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/planforge/planforge/internal/graph"
	"github.com/planforge/planforge/models"
)

const testPRD = `## Setup
- init repo
- add CI

## API endpoints
Implement the REST endpoints for projects and tasks. Each endpoint needs
request validation and error handling.

## Testing
- unit tests
- integration tests
- coverage report
`

func pinnedHeuristic() *Heuristic {
	h := NewHeuristic()
	h.clock = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	return h
}

func TestHeuristic_Generate(t *testing.T) {
	tj, err := pinnedHeuristic().Generate(context.Background(), testPRD, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(tj.Tasks) < 1 || len(tj.Tasks) > 20 {
		t.Errorf("got %d tasks, want 1..20", len(tj.Tasks))
	}
	if issues := models.CheckTasks(tj); len(issues) > 0 {
		t.Errorf("generated collection is structurally invalid: %v", issues)
	}
	if res := graph.ValidateUniqueIDs(tj.Tasks); !res.Valid {
		t.Errorf("duplicate ids: %v", res.Duplicates)
	}
	if res := graph.DetectCycles(tj.Tasks); res.HasCycle {
		t.Errorf("generated graph has a cycle: %v", res.Path)
	}

	if tj.Version.Schema != SchemaVersion {
		t.Errorf("version schema = %q, want %q", tj.Version.Schema, SchemaVersion)
	}
	if tj.Version.Generator != "heuristic" {
		t.Errorf("version generator = %q", tj.Version.Generator)
	}
	if !strings.HasPrefix(tj.Version.SourcePRD, "sha256:") {
		t.Errorf("source digest = %q, want sha256 prefix", tj.Version.SourcePRD)
	}
}

func TestHeuristic_Deterministic(t *testing.T) {
	h := pinnedHeuristic()
	a, err := h.Generate(context.Background(), testPRD, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := h.Generate(context.Background(), testPRD, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("Generate() is not deterministic for identical input")
	}
}

func TestHeuristic_IgnoresModelOptions(t *testing.T) {
	h := pinnedHeuristic()
	plain, err := h.Generate(context.Background(), testPRD, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	tuned, err := h.Generate(context.Background(), testPRD, Options{ModelName: "gpt-4o", Temperature: 0.9})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !reflect.DeepEqual(plain, tuned) {
		t.Error("model and temperature must be meaningless to the heuristic engine")
	}
}

func TestHeuristic_MaxTasks(t *testing.T) {
	tj, err := pinnedHeuristic().Generate(context.Background(), testPRD, Options{MaxTasks: 2})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(tj.Tasks) != 2 {
		t.Errorf("got %d tasks, want 2", len(tj.Tasks))
	}
}

func TestHeuristic_HeaderlessDocument(t *testing.T) {
	tj, err := pinnedHeuristic().Generate(context.Background(), "just one paragraph of prose", Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(tj.Tasks) == 0 {
		t.Fatal("headerless document must still yield tasks")
	}
	if !strings.HasPrefix(tj.Tasks[0].Title, "Overview") {
		t.Errorf("task title = %q, want Overview section title", tj.Tasks[0].Title)
	}
}

func TestHeuristic_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := pinnedHeuristic().Generate(ctx, testPRD, Options{}); err == nil {
		t.Error("Generate() must fail on a canceled context")
	}
}
