// Package synth turns document sections into a bounded list of task records
// using deterministic heuristics. Every function here is a pure transform:
// the running accumulator of already-synthesized tasks is threaded through
// explicitly, so identical input always yields identical output.
package synth

import (
	"fmt"
	"time"

	"github.com/planforge/planforge/internal/segment"
	"github.com/planforge/planforge/models"
)

const (
	// DefaultMaxTasks bounds a single synthesis run unless the caller asks
	// for more.
	DefaultMaxTasks = 20

	maxDeps      = 16
	maxSteps     = 20
	maxTags      = 8
	maxTitle     = 140
	longSection  = 500
	smallDocSize = 3
)

// Synthesize produces at most maxTasks tasks from the given sections,
// walking them in document order. A non-positive maxTasks selects
// DefaultMaxTasks. The now timestamp is stamped into task metadata; passing
// a fixed value makes the output fully reproducible.
//
// Whenever at least one section exists, at least one task is returned.
func Synthesize(sections []segment.Section, maxTasks int, now time.Time) []models.Task {
	if maxTasks <= 0 {
		maxTasks = DefaultMaxTasks
	}

	var tasks []models.Task
	for _, sec := range sections {
		if len(tasks) >= maxTasks {
			break
		}
		count := taskCountFor(sec, len(sections))
		for i := 0; i < count && len(tasks) < maxTasks; i++ {
			tasks = append(tasks, buildTask(sec, i, tasks, now))
		}
	}

	// A document can in principle produce nothing (the per-section loop is
	// bounded); force one task from the first section so the collection
	// contract of 1..200 tasks holds for any segmented input.
	if len(tasks) == 0 && len(sections) > 0 {
		tasks = append(tasks, buildTask(sections[0], 0, nil, now))
	}
	return tasks
}

// taskCountFor decides how many tasks one section yields. The rules are
// evaluated once, in fixed precedence: item-rich sections win over long
// sections, which win over the small-document rule.
func taskCountFor(sec segment.Section, totalSections int) int {
	items := listItems(sec.Content)
	switch {
	case len(items) >= 5:
		return 3
	case len(items) >= 3:
		return 2
	case len(sec.Content) > longSection:
		return 2
	case totalSections <= smallDocSize:
		return 2
	default:
		return 1
	}
}

// buildTask constructs the next task for a section. indexInSection is the
// 0-based position of this task among the section's tasks; existing holds
// every task synthesized so far, across all sections.
func buildTask(sec segment.Section, indexInSection int, existing []models.Task, now time.Time) models.Task {
	id := fmt.Sprintf("T-%03d", len(existing)+1)
	title := buildTitle(sec.Title, indexInSection, len(existing))
	tags := inferTags(sec.Title + " " + sec.Content)
	deps := buildDeps(sec, existing)
	steps := buildSteps(sec)

	return models.Task{
		ID:          id,
		Title:       title,
		Description: fmt.Sprintf("Derived from section %q of the source document.", sec.Title),
		Tags:        tags,
		Deps:        deps,
		Steps:       steps,
		Metadata:    buildMetadata(tags, deps, steps, now),
	}
}

// buildTitle applies the section title, the implementation suffix for later
// tasks of a multi-task section, and the length bounds of the task model.
func buildTitle(sectionTitle string, indexInSection, existingCount int) string {
	title := sectionTitle
	if indexInSection > 0 && existingCount > 0 && existingCount%2 == 0 {
		title += " - Implementation"
	}
	if len([]rune(title)) < 3 {
		title = "Task: " + title
	}
	if runes := []rune(title); len(runes) > maxTitle {
		title = string(runes[:maxTitle-3]) + "..."
	}
	return title
}

// buildDeps applies the dependency heuristic. Only tasks synthesized
// strictly earlier are ever referenced, so the resulting graph is acyclic
// by construction.
func buildDeps(sec segment.Section, existing []models.Task) []string {
	if sec.Order == 0 || len(existing) == 0 {
		return nil
	}
	var deps []string
	if len(existing)%3 == 0 {
		deps = append(deps, existing[len(existing)-1].ID)
	}
	// Sections deep into the document lean on the second task overall,
	// treated as a foundational task.
	if sec.Order > 2 && len(existing) >= 2 {
		deps = append(deps, existing[1].ID)
	}
	if len(deps) > maxDeps {
		deps = deps[:maxDeps]
	}
	return deps
}

// buildSteps extracts the section's list items as steps, falling back to a
// generic five-step plan when the section has no list structure.
func buildSteps(sec segment.Section) []string {
	steps := listItems(sec.Content)
	if len(steps) > maxSteps {
		steps = steps[:maxSteps]
	}
	if len(steps) > 0 {
		return steps
	}
	return []string{
		"Review " + sec.Title,
		"Design " + sec.Title,
		"Implement " + sec.Title,
		"Test " + sec.Title,
		"Document " + sec.Title,
	}
}

// buildMetadata derives planning metadata from the already-computed task
// shape. All rules are deterministic; the clock is the caller's.
func buildMetadata(tags, deps, steps []string, now time.Time) *models.TaskMetadata {
	return &models.TaskMetadata{
		Priority:    priorityFor(tags),
		Risk:        riskFor(deps),
		EffortHours: effortFor(steps),
		Role:        roleFor(tags),
		Status:      models.StatusPlanned,
		Created:     now,
		Updated:     now,
	}
}

func priorityFor(tags []string) models.TaskPriority {
	switch {
	case hasTag(tags, "bug"):
		return models.PriorityP1
	case hasTag(tags, "feature"), hasTag(tags, "api"):
		return models.PriorityP2
	default:
		return models.PriorityP3
	}
}

func riskFor(deps []string) models.TaskRisk {
	switch len(deps) {
	case 0:
		return models.RiskLow
	case 1:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// effortFor estimates two hours per step, clamped to the model's [2,24] band.
func effortFor(steps []string) float64 {
	h := float64(2 * len(steps))
	if h < 2 {
		h = 2
	}
	if h > 24 {
		h = 24
	}
	return h
}

func roleFor(tags []string) models.TaskRole {
	switch {
	case hasTag(tags, "ui"):
		return models.RoleFrontend
	case hasTag(tags, "api"):
		return models.RoleBackend
	case hasTag(tags, "testing"):
		return models.RoleQA
	case hasTag(tags, "documentation"):
		return models.RolePM
	case hasTag(tags, "refactor"):
		return models.RoleInfra
	default:
		return models.RoleBackend
	}
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
