// Package graph enforces collection-level invariants on task collections:
// unique identifiers, an acyclic dependency relation, and no dangling or
// self references. All operations are pure; input slices are never mutated.
package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/planforge/planforge/models"
)

// ErrCycle is returned by TopologicalOrder when the dependency graph is not
// a DAG.
var ErrCycle = errors.New("dependency cycle detected")

// UniqueIDResult reports duplicate task identifiers in a collection.
type UniqueIDResult struct {
	Valid      bool     `json:"valid"`
	Duplicates []string `json:"duplicates,omitempty"`
}

// ValidateUniqueIDs walks the collection once and reports every id that
// occurs more than once, sorted. An empty collection is valid.
func ValidateUniqueIDs(tasks []models.Task) UniqueIDResult {
	seen := make(map[string]bool, len(tasks))
	dup := make(map[string]bool)
	for _, t := range tasks {
		if seen[t.ID] {
			dup[t.ID] = true
		}
		seen[t.ID] = true
	}
	if len(dup) == 0 {
		return UniqueIDResult{Valid: true}
	}
	duplicates := make([]string, 0, len(dup))
	for id := range dup {
		duplicates = append(duplicates, id)
	}
	sort.Strings(duplicates)
	return UniqueIDResult{Valid: false, Duplicates: duplicates}
}

// CycleResult reports whether the dependency graph contains a cycle, with
// one example path when it does. The path ends with a repeat of its first
// node, e.g. ["A", "B", "A"].
type CycleResult struct {
	HasCycle bool     `json:"hasCycle"`
	Path     []string `json:"path,omitempty"`
}

// DFS node colors: white = unvisited, gray = on the current path, black =
// fully processed. A dependency edge into a gray node is a back edge.
const (
	white = iota
	gray
	black
)

// DetectCycles searches the id -> deps graph for a cycle. Self-loops are
// reported first, in collection order, as the trivial path [id, id].
// Otherwise a depth-first search runs from every unvisited node in
// collection order and the first cycle found is returned; no claim of
// minimality is made. Dependencies naming ids absent from the collection
// are skipped — dangling references are SanitizeDependencies' concern.
func DetectCycles(tasks []models.Task) CycleResult {
	for _, t := range tasks {
		for _, dep := range t.Deps {
			if dep == t.ID {
				return CycleResult{HasCycle: true, Path: []string{t.ID, t.ID}}
			}
		}
	}

	byID := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t.Deps
	}

	color := make(map[string]int, len(tasks))
	var path []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		path = append(path, id)
		for _, dep := range byID[id] {
			if _, exists := byID[dep]; !exists {
				continue
			}
			switch color[dep] {
			case white:
				if dfs(dep) {
					return true
				}
			case gray:
				// Back edge: the cycle is the current path from dep onward,
				// closed by repeating dep.
				for i, node := range path {
					if node == dep {
						cycle = append(append(cycle, path[i:]...), dep)
						return true
					}
				}
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		return false
	}

	for _, t := range tasks {
		if color[t.ID] == white {
			if dfs(t.ID) {
				return CycleResult{HasCycle: true, Path: cycle}
			}
		}
	}
	return CycleResult{HasCycle: false}
}

// SanitizeDependencies returns a new collection in which every task's deps
// have had self references and references to absent ids removed, preserving
// order and all other fields. This is a normalization step, not a check: it
// never fails, and applying it twice is the same as applying it once.
func SanitizeDependencies(tasks []models.Task) []models.Task {
	ids := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		ids[t.ID] = true
	}

	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		clean := t
		clean.Deps = nil
		for _, dep := range t.Deps {
			if dep == t.ID || !ids[dep] {
				continue
			}
			clean.Deps = append(clean.Deps, dep)
		}
		out[i] = clean
	}
	return out
}

// TopologicalOrder returns the tasks in dependency order (dependencies
// first). The collection must already be sanitized and acyclic; a cycle is
// reported as an error wrapping ErrCycle with the offending path.
func TopologicalOrder(tasks []models.Task) ([]models.Task, error) {
	if res := DetectCycles(tasks); res.HasCycle {
		return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(res.Path, " -> "))
	}

	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	sorted := make([]models.Task, 0, len(tasks))
	visited := make(map[string]bool, len(tasks))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		t, exists := byID[id]
		if !exists {
			return
		}
		for _, dep := range t.Deps {
			visit(dep)
		}
		sorted = append(sorted, t)
	}

	for _, t := range tasks {
		visit(t.ID)
	}
	return sorted, nil
}
