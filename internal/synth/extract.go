package synth

import (
	"regexp"
	"strings"
)

// listItemPattern matches unordered (-, *, +) and ordered (1., 2., ...)
// list markers, including indented and nested variants, one item per line.
var listItemPattern = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|\d+\.)[ \t]+(.+)$`)

// listItems extracts list item texts from section content, preserving order
// of first appearance and dropping duplicates.
func listItems(content string) []string {
	matches := listItemPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	items := make([]string, 0, len(matches))
	for _, m := range matches {
		item := strings.TrimSpace(m[1])
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		items = append(items, item)
	}
	return items
}

// tagRules maps each tag to the keywords that trigger it. Rules are applied
// in this fixed order so tag output is deterministic.
var tagRules = []struct {
	tag      string
	keywords []string
}{
	{"feature", []string{"feature", "implement", "add", "create", "new"}},
	{"bug", []string{"fix", "bug", "issue", "error", "defect"}},
	{"enhancement", []string{"update", "improve", "enhance", "optimize", "upgrade"}},
	{"testing", []string{"test", "testing", "qa", "quality", "coverage"}},
	{"documentation", []string{"doc", "documentation", "readme", "guide"}},
	{"refactor", []string{"refactor", "cleanup", "reorganize", "restructure"}},
	{"api", []string{"api", "endpoint", "route", "rest"}},
	{"ui", []string{"ui", "interface", "frontend", "component", "design"}},
}

// inferTags lower-cases the text and matches it against the keyword table.
// Each tag appears at most once; the result is capped at the tag bound of
// the task model.
func inferTags(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	for _, rule := range tagRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, rule.tag)
				break
			}
		}
		if len(tags) >= maxTags {
			break
		}
	}
	return tags
}
