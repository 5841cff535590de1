package segment

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/docsight/internal/document"
)

func TestPageBlocks(t *testing.T) {
	doc := &document.Document{
		Pages: []document.Page{
			{Number: 1, Text: "  First   page\twith \n messy   whitespace  "},
			{Number: 2, Text: "hi"},
			{Number: 3, Text: ""},
			{Number: 4, Text: "Fourth page has plenty of text"},
		},
	}

	blocks := PageBlocks(doc, 10)
	want := []PageBlock{
		{Page: 1, Text: "First page with messy whitespace"},
		{Page: 4, Text: "Fourth page has plenty of text"},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("expected %v, got %v", want, blocks)
	}
}

func TestPageBlocks_ZeroMinChars(t *testing.T) {
	doc := &document.Document{
		Pages: []document.Page{
			{Number: 1, Text: "a"},
			{Number: 2, Text: ""},
		},
	}
	blocks := PageBlocks(doc, 0)
	if len(blocks) != 2 {
		t.Errorf("expected all pages with min_chars 0, got %d", len(blocks))
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  a   b  ", "a b"},
		{"a\nb\tc", "a b c"},
		{"", ""},
		{"   ", ""},
		{"single", "single"},
	}
	for _, tt := range tests {
		if got := CollapseSpace(tt.in); got != tt.want {
			t.Errorf("CollapseSpace(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First sentence. Second one! Third? Trailing without punctuation")
	want := []string{"First sentence.", "Second one!", "Third?", "Trailing without punctuation"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitSentences_NoSplitInsideNumbers(t *testing.T) {
	// A period not followed by whitespace is not a sentence boundary.
	got := SplitSentences("The price is 3.50 today.")
	if len(got) != 1 {
		t.Errorf("expected 1 sentence, got %d: %v", len(got), got)
	}
}

func TestFirstSentences(t *testing.T) {
	text := "Alpha is first. Beta is second. Gamma is third."
	if got := FirstSentences(text, 2, 100); got != "Alpha is first. Beta is second." {
		t.Errorf("unexpected result: %q", got)
	}

	// Fewer sentences than requested: whole text, possibly truncated.
	short := "Only one sentence here"
	if got := FirstSentences(short, 2, 100); got != short {
		t.Errorf("expected whole text, got %q", got)
	}
	long := strings.Repeat("word ", 50)
	got := FirstSentences(long, 2, 20)
	if len([]rune(got)) != 20 {
		t.Errorf("expected truncation to 20 runes, got %d", len([]rune(got)))
	}

	if got := FirstSentences("   ", 2, 100); got != "" {
		t.Errorf("expected empty result for blank input, got %q", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("Heading  Line\nbody text\nmore"); got != "Heading Line" {
		t.Errorf("expected first line collapsed, got %q", got)
	}
	if got := FirstLine("no newline at all"); got != "no newline at all" {
		t.Errorf("expected whole string, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10, "..."); got != "hello" {
		t.Errorf("expected no truncation, got %q", got)
	}
	if got := Truncate("hello world", 5, "..."); got != "hello..." {
		t.Errorf("expected truncation with marker, got %q", got)
	}
	// Rune-safe on multibyte text.
	if got := Truncate("héllo wörld", 5, "…"); got != "héllo…" {
		t.Errorf("expected rune-safe truncation, got %q", got)
	}
}
