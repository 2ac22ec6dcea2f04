package match

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"order", "ordre", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			result := levenshtein(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}

			// Distance is symmetric.
			if reversed := levenshtein(tt.b, tt.a); reversed != result {
				t.Errorf("levenshtein(%q, %q) = %d, not symmetric with %d", tt.b, tt.a, reversed, result)
			}
		})
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"", "", 100},
		{"abc", "abc", 100},
		{"abcd", "wxyz", 0},
		{"abcd", "abce", 75},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			result := Ratio(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Ratio(%q, %q) = %f, want %f", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}
