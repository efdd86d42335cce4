package version

import (
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  Release
	}{
		{"0.1.0", Release{0, 1, 0}},
		{"1.2.3", Release{1, 2, 3}},
		{"v2.0.10", Release{2, 0, 10}},
		{"10.23.0", Release{10, 23, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, v, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1",
		"1.0",
		"abc",
		"1.0.0.0",
		"1.x.0",
		"-1.0.0",
		"1..0",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestCurrentParses(t *testing.T) {
	if got := MustCurrent().String(); got != Current {
		t.Errorf("MustCurrent().String() = %q, want %q", got, Current)
	}
}

func TestRelease_Compatible(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1.0.0", "1.4.2", true},
		{"1.0.0", "2.0.0", false},
		{"0.1.0", "0.1.7", true},
		{"0.1.0", "0.2.0", false},
	}

	for _, tt := range tests {
		a, _ := Parse(tt.a)
		b, _ := Parse(tt.b)
		if got := a.Compatible(b); got != tt.want {
			t.Errorf("%s.Compatible(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRelease_Less(t *testing.T) {
	a, _ := Parse("1.2.3")
	b, _ := Parse("1.10.0")
	if !a.Less(b) {
		t.Errorf("%s should sort before %s", a, b)
	}
	if b.Less(a) {
		t.Errorf("%s should not sort before %s", b, a)
	}
	if a.Less(a) {
		t.Error("a version should not sort before itself")
	}
}
