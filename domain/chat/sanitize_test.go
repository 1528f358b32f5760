package chat

import "testing"

func TestSanitizeProviderText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bold italic code", "**Bold** and *italic* and `code`", "Bold and italic and code"},
		{"plain text untouched", "Keep charge between 20-80%.", "Keep charge between 20-80%."},
		{"empty", "", ""},
		{"collapse newlines", "a\n\n\n\nb", "a\n\nb"},
		{"collapse whitespace-only lines", "a\n  \n\t\nb", "a\n\nb"},
		{"double newline preserved", "a\n\nb", "a\n\nb"},
		{"trims ends", "  hello  ", "hello"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeProviderText(tc.in)
			if got != tc.want {
				t.Errorf("SanitizeProviderText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"**Bold** and *italic* and `code`",
		"Battery advice:\n\n\n\nkeep it cool.",
		"already clean text\n\nwith one blank line",
	}

	for _, in := range inputs {
		once := SanitizeProviderText(in)
		twice := SanitizeProviderText(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
