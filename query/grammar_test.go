package query

import "testing"

func TestParseFreeTextOnly(t *testing.T) {
	p := Parse("vibe coding")
	if p.FreeText != "vibe coding" {
		t.Errorf("FreeText = %q, want %q", p.FreeText, "vibe coding")
	}
	if len(p.Extensions) != 0 || len(p.RecordKinds) != 0 {
		t.Errorf("unexpected filters parsed from plain free text: %+v", p)
	}
}

func TestParseExtFilter(t *testing.T) {
	p := Parse("report ext:pdf")
	if p.FreeText != "report" {
		t.Errorf("FreeText = %q, want %q", p.FreeText, "report")
	}
	if len(p.Extensions) != 1 || p.Extensions[0] != "pdf" {
		t.Errorf("Extensions = %v, want [pdf]", p.Extensions)
	}
}

func TestParseExtFilterCSV(t *testing.T) {
	p := Parse("ext:pdf,docx notes")
	if p.FreeText != "notes" {
		t.Errorf("FreeText = %q, want %q", p.FreeText, "notes")
	}
	want := []string{"pdf", "docx"}
	if len(p.Extensions) != 2 || p.Extensions[0] != want[0] || p.Extensions[1] != want[1] {
		t.Errorf("Extensions = %v, want %v", p.Extensions, want)
	}
}

func TestParseTypeFilterExpandsTable(t *testing.T) {
	p := Parse("report type:doc in:files")
	if p.FreeText != "report" {
		t.Errorf("FreeText = %q, want %q", p.FreeText, "report")
	}
	found := false
	for _, e := range p.Extensions {
		if e == "pdf" {
			found = true
		}
	}
	if !found {
		t.Errorf("type:doc did not expand to include pdf: %v", p.Extensions)
	}
	if len(p.RecordKinds) != 1 || p.RecordKinds[0] != KindFile {
		t.Errorf("RecordKinds = %v, want [KindFile]", p.RecordKinds)
	}
}

func TestParseInWebExpandsToBookmarksAndHistory(t *testing.T) {
	p := Parse("in:web vacation")
	if len(p.RecordKinds) != 2 {
		t.Fatalf("RecordKinds = %v, want 2 entries", p.RecordKinds)
	}
	if p.RecordKinds[0] != KindBookmark || p.RecordKinds[1] != KindHistory {
		t.Errorf("RecordKinds = %v, want [KindBookmark KindHistory]", p.RecordKinds)
	}
}

func TestParseBareLeadingExtShorthand(t *testing.T) {
	p := Parse(".pdf")
	if p.FreeText != "" {
		t.Errorf("FreeText = %q, want empty for bare extension shorthand", p.FreeText)
	}
	if len(p.Extensions) != 1 || p.Extensions[0] != "pdf" {
		t.Errorf("Extensions = %v, want [pdf]", p.Extensions)
	}
}

func TestParseUnknownPrefixIsFreeText(t *testing.T) {
	p := Parse("foo:bar baz")
	if p.FreeText != "foo:bar baz" {
		t.Errorf("FreeText = %q, want unknown prefix kept verbatim", p.FreeText)
	}
}
