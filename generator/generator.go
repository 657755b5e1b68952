// Package generator defines the contract shared by every task generator and
// provides the deterministic heuristic engine plus the OpenAI-backed
// sibling. All implementations funnel their output through the same
// validation gatekeeper, so a caller gets the same guarantees regardless of
// which generator produced a collection.
package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/planforge/planforge/internal/graph"
	"github.com/planforge/planforge/models"
)

// SchemaVersion is the collection schema emitted by the generators in this
// package.
const SchemaVersion = "1.0"

// Options are per-call generation parameters. ModelName and Temperature are
// meaningful only to LLM-backed generators; the heuristic engine accepts
// and ignores them.
type Options struct {
	MaxTasks    int
	ModelName   string
	Temperature float64
}

// Generator turns a requirements document into a validated task collection.
//
// Implementations may suspend on I/O (the LLM-backed ones do); the
// deterministic engine returns immediately. Callers that need timeouts or
// cancellation apply them through ctx around the whole call.
type Generator interface {
	Generate(ctx context.Context, prdText string, opts Options) (*models.TasksJson, error)
}

// finalize is the shared gatekeeper: structural validation, unique-id
// check, dependency sanitization, then cycle detection on the sanitized
// graph (sanitization only removes edges, so it cannot introduce a cycle).
// Every generator's output passes through here before reaching a caller.
func finalize(tasks []models.Task, generatorName, prdText string) (*models.TasksJson, error) {
	tj := &models.TasksJson{
		Version: models.Version{
			Schema:    SchemaVersion,
			Generator: generatorName,
			SourcePRD: sourceDigest(prdText),
		},
		Tasks: tasks,
	}

	if issues := models.CheckTasks(tj); len(issues) > 0 {
		return nil, fmt.Errorf("generated collection is structurally invalid: %s", joinIssues(issues))
	}
	if res := graph.ValidateUniqueIDs(tj.Tasks); !res.Valid {
		return nil, fmt.Errorf("generated collection has duplicate task ids: %s", strings.Join(res.Duplicates, ", "))
	}
	tj.Tasks = graph.SanitizeDependencies(tj.Tasks)
	if res := graph.DetectCycles(tj.Tasks); res.HasCycle {
		return nil, fmt.Errorf("generated collection has a dependency cycle: %s", strings.Join(res.Path, " -> "))
	}
	return tj, nil
}

func joinIssues(issues []models.Issue) string {
	parts := make([]string, len(issues))
	for i, iss := range issues {
		parts[i] = iss.String()
	}
	return strings.Join(parts, "; ")
}

// sourceDigest fingerprints the source document so a collection can be
// matched back to the PRD revision it was generated from.
func sourceDigest(prdText string) string {
	sum := sha256.Sum256([]byte(prdText))
	return "sha256:" + hex.EncodeToString(sum[:])[:16]
}
