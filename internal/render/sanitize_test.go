// ABOUTME: Tests for title sanitization and entity decoding
// ABOUTME: Pins the exact stripped-character set used in document names

package render

import "testing"

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "clean title untouched", title: "Plain Title", want: "Plain Title"},
		{name: "slash colon question", title: "A/B: C?", want: "AB C"},
		{name: "full unsafe set", title: `*"\<>/:|?#^`, want: ""},
		{name: "newlines stripped", title: "line\r\nbreak", want: "linebreak"},
		{name: "unicode preserved", title: "Café — résumé", want: "Café — résumé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.title); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "basic entities", in: "Ben &amp; Jerry&#x27;s", want: "Ben & Jerry's"},
		{name: "comparison entities", in: "&lt;tag&gt;", want: "<tag>"},
		{name: "double-escaped not over-decoded", in: "&amp;lt;", want: "&lt;"},
		{name: "no entities", in: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeEntities(tt.in); got != tt.want {
				t.Errorf("DecodeEntities(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
