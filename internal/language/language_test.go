package language

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"hi", "hi", true},
		{"Hindi", "hi", true},
		{"hin", "hi", true},
		{"en-IN", "en-IN", true},
		{"PUNJABI", "pa", true},
		{"bhojpuri", "bho", true},
		{"", "", false},
		{"klingon", "", false},
		{"x!", "", false},
	}
	for _, tc := range tests {
		got, ok := Normalize(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hi", "Hindi"},
		{"en", "English"},
		{"", "Unknown"},
		{"zz!", "ZZ!"},
	}
	for _, tc := range tests {
		if got := DisplayName(tc.input); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
