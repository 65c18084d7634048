package form

import (
	"regexp"
	"strings"
	"testing"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"abc", ""},
		{"1", "(1"},
		{"12", "(12"},
		{"123", "(123"},
		{"1234", "(123) 4"},
		{"12345", "(123) 45"},
		{"123456", "(123) 456"},
		{"1234567", "(123) 456-7"},
		{"12345678", "(123) 456-78"},
		{"123456789", "(123) 456-789"},
		{"1234567890", "(123) 456-7890"},
		{"12345678901234", "(123) 456-7890"},
		{"+1 (555) 123-4567", "(155) 512-3456"},
		{"555.123.4567", "(555) 123-4567"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FormatPhone(tt.input); got != tt.expected {
				t.Errorf("FormatPhone(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatPhone_AllLengthsFollowPunctuationRule(t *testing.T) {
	shapes := []*regexp.Regexp{
		regexp.MustCompile(`^$`),
		regexp.MustCompile(`^\(\d{1,3}$`),
		regexp.MustCompile(`^\(\d{3}\) \d{1,3}$`),
		regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{1,4}$`),
	}
	digits := "9876543210"
	for n := 0; n <= len(digits); n++ {
		got := FormatPhone(digits[:n])
		var shape *regexp.Regexp
		switch {
		case n == 0:
			shape = shapes[0]
		case n <= 3:
			shape = shapes[1]
		case n <= 6:
			shape = shapes[2]
		default:
			shape = shapes[3]
		}
		if !shape.MatchString(got) {
			t.Errorf("FormatPhone(%q) = %q does not match %s", digits[:n], got, shape)
		}
		if stripped := stripNonDigits(got); stripped != digits[:n] {
			t.Errorf("FormatPhone(%q) lost digits: %q", digits[:n], stripped)
		}
	}
}

func TestFormatPhone_Idempotent(t *testing.T) {
	inputs := []string{"", "1", "1234", "1234567", "1234567890", "123456789012", "(12) 3"}
	for _, in := range inputs {
		once := FormatPhone(in)
		twice := FormatPhone(once)
		if once != twice {
			t.Errorf("FormatPhone not stable for %q: %q then %q", in, once, twice)
		}
	}
}

func TestFormatPhone_Backspace(t *testing.T) {
	// Each step deletes the last character of the displayed value, the way
	// a backspace at the end of the field does, then reformats.
	value := FormatPhone("1234567890")
	expected := []string{
		"(123) 456-789",
		"(123) 456-78",
		"(123) 456-7",
		"(123) 456",
		"(123) 45",
		"(123) 4",
		"(123",
		"(12",
		"(1",
		"",
	}
	for _, want := range expected {
		value = FormatPhone(value[:len(value)-1])
		if value != want {
			t.Fatalf("after backspace got %q, expected %q", value, want)
		}
	}
}

func TestAllowEmailRune(t *testing.T) {
	if AllowEmailRune(' ') {
		t.Error("space must be rejected")
	}
	for _, r := range "aZ09@._-+\t" {
		if !AllowEmailRune(r) {
			t.Errorf("rune %q should pass", r)
		}
	}
}

func stripNonDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
