package segment

import (
	"reflect"
	"testing"
)

func TestSegment_NoHeadings(t *testing.T) {
	text := "  Just a plain document.\nNo headings anywhere.  \n"
	sections := Segment(text)

	if len(sections) != 1 {
		t.Fatalf("Segment() returned %d sections, want 1", len(sections))
	}
	if sections[0].Title != "Overview" {
		t.Errorf("title = %q, want %q", sections[0].Title, "Overview")
	}
	if sections[0].Content != "Just a plain document.\nNo headings anywhere." {
		t.Errorf("content = %q, want trimmed input", sections[0].Content)
	}
	if sections[0].Order != 0 {
		t.Errorf("order = %d, want 0", sections[0].Order)
	}
}

func TestSegment_MultipleHeadings(t *testing.T) {
	text := "preamble is ignored\n## Setup\n- init repo\n- add CI\n## Build\nCompile everything.\n"
	sections := Segment(text)

	if len(sections) != 2 {
		t.Fatalf("Segment() returned %d sections, want 2", len(sections))
	}
	if sections[0].Title != "Setup" || sections[0].Order != 0 {
		t.Errorf("section 0 = %q order %d, want Setup order 0", sections[0].Title, sections[0].Order)
	}
	if sections[0].Content != "- init repo\n- add CI" {
		t.Errorf("section 0 content = %q", sections[0].Content)
	}
	if sections[1].Title != "Build" || sections[1].Order != 1 {
		t.Errorf("section 1 = %q order %d, want Build order 1", sections[1].Title, sections[1].Order)
	}
	if sections[1].Content != "Compile everything." {
		t.Errorf("section 1 content = %q", sections[1].Content)
	}
}

func TestSegment_HeadingAtEOF(t *testing.T) {
	sections := Segment("## Last")
	if len(sections) != 1 {
		t.Fatalf("Segment() returned %d sections, want 1", len(sections))
	}
	if sections[0].Title != "Last" || sections[0].Content != "" {
		t.Errorf("got %+v, want empty-content section titled Last", sections[0])
	}
}

func TestSegment_IgnoresOtherHeadingLevels(t *testing.T) {
	text := "# Top\n### Deep\nbody\n"
	sections := Segment(text)
	if len(sections) != 1 || sections[0].Title != "Overview" {
		t.Fatalf("non-level-2 headings must not split the document, got %+v", sections)
	}
}

func TestSegment_Deterministic(t *testing.T) {
	text := "## A\none\n## B\ntwo\n"
	if !reflect.DeepEqual(Segment(text), Segment(text)) {
		t.Error("Segment() is not deterministic for identical input")
	}
}
