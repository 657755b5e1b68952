package generator

import (
	"fmt"
	"strings"
)

// generateTasksSystemPrompt instructs the model to emit a task collection
// in exactly the shape the gatekeeper validates.
const generateTasksSystemPrompt = `<instructions>
You are an expert project manager AI. Deconstruct the given Product
Requirements Document (PRD) into a flat list of actionable engineering
tasks. Base your output exclusively on the document content.
</instructions>

<rules>
- Respond with a single valid JSON object and nothing else: {"tasks": [...]}.
- Each task object has: "id" (pattern "T-001", "T-002", ... sequential),
  "title" (3-140 characters), "description" (optional), "tags" (optional,
  at most 8 lowercase keywords), "deps" (optional, ids of tasks that must
  complete first, at most 16), "steps" (1-20 concrete, non-empty steps).
- Ids must be unique. A task may only depend on ids that appear in your
  output, never on itself, and the dependency graph must contain no cycle.
- Do not include markdown, comments, or any text outside the JSON object.
</rules>`

// buildUserPrompt assembles the per-request prompt. When a previous attempt
// was rejected, the feedback section tells the model what to fix.
func buildUserPrompt(prdText string, maxTasks int, feedback string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate at most %d tasks from the following PRD.\n\n", maxTasks)
	b.WriteString("<prd>\n")
	b.WriteString(prdText)
	b.WriteString("\n</prd>\n")
	if feedback != "" {
		b.WriteString("\n")
		b.WriteString(feedback)
	}
	return b.String()
}

// parseFeedback describes a JSON parse failure to the model.
func parseFeedback(err error, rawOutput string) string {
	truncated := rawOutput
	if len(truncated) > 500 {
		truncated = truncated[:500] + "... [truncated]"
	}
	return fmt.Sprintf(`PREVIOUS ATTEMPT FAILED - PLEASE FIX

Your previous output was not valid JSON: %v

Previous output:
%s

Respond with only the JSON object described in the instructions.`, err, truncated)
}

// validationFeedback describes a gatekeeper rejection to the model.
func validationFeedback(err error) string {
	return fmt.Sprintf(`PREVIOUS ATTEMPT FAILED - VALIDATION ERRORS

The generated tasks were rejected:
%v

Regenerate the full JSON object with these issues corrected.`, err)
}
