package generator

import (
	"context"
	"time"

	"github.com/planforge/planforge/internal/segment"
	"github.com/planforge/planforge/internal/synth"
	"github.com/planforge/planforge/models"
)

// Heuristic is the deterministic, in-process generation engine: segment the
// document, synthesize tasks, run the gatekeeper. It performs no I/O and
// holds no state between calls.
type Heuristic struct {
	// clock supplies the metadata timestamp; overridable so tests can pin
	// output byte-for-byte.
	clock func() time.Time
}

// NewHeuristic creates the deterministic generation engine.
func NewHeuristic() *Heuristic {
	return &Heuristic{clock: time.Now}
}

// Generate fulfills the Generator contract synchronously. Options.ModelName
// and Options.Temperature are accepted for contract compatibility and
// ignored. The only use of ctx is a cancellation courtesy check up front;
// there is nothing to cancel mid-flight.
func (h *Heuristic) Generate(ctx context.Context, prdText string, opts Options) (*models.TasksJson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sections := segment.Segment(prdText)
	now := h.clock().UTC().Truncate(time.Second)
	tasks := synth.Synthesize(sections, opts.MaxTasks, now)
	return finalize(tasks, "heuristic", prdText)
}
