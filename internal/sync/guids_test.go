// ABOUTME: Tests for guid extraction and index building
// ABOUTME: Pins the guid line format contract against materialized corpora

package sync

import "testing"

func TestExtractGuid(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "frontmatter guid",
			text: "---\nguid: post-1\ndate: x\n---\n\nbody",
			want: "post-1",
		},
		{
			name: "guid mid-document",
			text: "# Title\n\nguid: https://example.com/a?id=1\n",
			want: "https://example.com/a?id=1",
		},
		{
			name: "whitespace trimmed",
			text: "guid:   spaced-out   \n",
			want: "spaced-out",
		},
		{
			name: "first match wins",
			text: "guid: first\nguid: second\n",
			want: "first",
		},
		{
			name: "indented line does not match",
			text: "  guid: nope\n",
			want: "",
		},
		{
			name: "no guid line",
			text: "# Just a note\n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractGuid(tt.text); got != tt.want {
				t.Errorf("ExtractGuid(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestBuildGuidIndex(t *testing.T) {
	store := newFakeStore()
	store.seed("a.md", "guid: g1\n")
	store.seed("sub/b.md", "---\nguid: g2\n---\n")
	store.seed("c.md", "no marker here\n")

	idx, err := BuildGuidIndex(store)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, g := range []string{"g1", "g2"} {
		if !idx.Has(g) {
			t.Errorf("index missing %q", g)
		}
	}
	if idx.Has("g3") {
		t.Error("index has unseen guid g3")
	}
	// Guid-less documents contribute the empty-string sentinel.
	if !idx.Has("") {
		t.Error("index missing empty-string entry for guid-less document")
	}
}
