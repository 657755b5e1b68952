// Package segment splits a requirements document into ordered sections by
// level-2 markdown headings.
package segment

import (
	"regexp"
	"strings"
)

// headingPattern matches level-2 markdown headings, one per line.
var headingPattern = regexp.MustCompile(`(?m)^##\s+(.+)$`)

// Section is one contiguous span of the document under a single heading.
// Sections exist only during synthesis of one document; they are never
// persisted.
type Section struct {
	Title   string
	Content string
	Order   int
}

// Segment splits raw document text into sections, one per `## ` heading,
// numbered in discovery order. A document with no headings yields exactly
// one section titled "Overview" holding the whole (trimmed) input, so the
// synthesizer always receives at least one section.
func Segment(text string) []Section {
	matches := headingPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []Section{{Title: "Overview", Content: strings.TrimSpace(text), Order: 0}}
	}

	sections := make([]Section, 0, len(matches))
	for i, m := range matches {
		title := strings.TrimSpace(text[m[2]:m[3]])
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		sections = append(sections, Section{
			Title:   title,
			Content: strings.TrimSpace(text[m[1]:end]),
			Order:   i,
		})
	}
	return sections
}
