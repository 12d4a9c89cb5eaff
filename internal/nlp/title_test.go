package nlp

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"buy milk", "Buy milk"},
		{"  buy   milk  ", "Buy milk"},
		{"i need to call the bank", "Call the bank"},
		{"please remind me to stretch", "Stretch"},
		{"don't forget to stretch", "Stretch"},
		{"finish report by", "Finish report"},
		{"pick up laundry at", "Pick up laundry"},
		{"submit form and", "Submit form"},
		{"pay rent, ", "Pay rent"},
		{"water plants please", "Water plants"},
		{"water plants thanks", "Water plants"},
		{"book flights if you can", "Book flights"},
		{", finish report", "Finish report"},
		{"...", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestNormalizeTitleIdempotent(t *testing.T) {
	inputs := []string{
		"i need to call the bank please",
		"finish report by",
		"This is , finish report",
		"buy milk",
	}
	for _, in := range inputs {
		once := NormalizeTitle(in)
		twice := NormalizeTitle(once)
		if once != twice {
			t.Errorf("NormalizeTitle(%q) not idempotent: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeTitleStackedFiller(t *testing.T) {
	// Filler can survive in layers; stripping loops until stable.
	if got := NormalizeTitle("please don't forget to water plants please"); got != "Water plants" {
		t.Errorf("Expected 'Water plants', got %q", got)
	}
}
