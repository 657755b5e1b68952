// Package schema validates raw task-collection JSON against an embedded
// JSON Schema before it is decoded into model structs. This catches
// shape-level problems (wrong types, missing keys) in untrusted files with
// positions the structural validator cannot give once decoding has coerced
// or dropped fields.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/planforge/planforge/models"
)

const schemaURL = "planforge://tasks.schema.json"

var compiled = mustCompile()

func mustCompile() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(tasksSchema)); err != nil {
		panic(fmt.Sprintf("add tasks schema resource: %v", err))
	}
	s, err := compiler.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile tasks schema: %v", err))
	}
	return s
}

// Validate checks raw JSON bytes against the task-collection schema and
// returns every violation as an issue. A nil result means the document is
// well-shaped; it says nothing about business rules (uniqueness, cycles).
func Validate(data []byte) []models.Issue {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []models.Issue{{Path: "", Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}
	err := compiled.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []models.Issue{{Path: "", Message: err.Error()}}
	}
	var issues []models.Issue
	collect(ve, &issues)
	if len(issues) == 0 {
		issues = []models.Issue{{Path: pointerToPath(ve.InstanceLocation), Message: ve.Message}}
	}
	return issues
}

// collect flattens the cause tree into leaf issues.
func collect(err *jsonschema.ValidationError, issues *[]models.Issue) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*issues = append(*issues, models.Issue{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collect(cause, issues)
	}
}

// pointerToPath converts a JSON pointer like "/tasks/2/title" into the
// "tasks[2].title" form the structural validator uses.
func pointerToPath(ptr string) string {
	if ptr == "" || ptr == "/" {
		return ""
	}
	parts := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	var b strings.Builder
	for _, p := range parts {
		if isIndex(p) {
			b.WriteString("[" + p + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(p)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
