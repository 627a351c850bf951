package rematch

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/rematch/syntax"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"", "", true},
		{"", "a", false},

		{"a*", "", true},
		{"a*", "a", true},
		{"a*", "aaaa", true},
		{"a*", "b", false},

		{"a|b", "a", true},
		{"a|b", "b", true},
		{"a|b", "c", false},
		{"a|b", "ab", false},

		{"a.c", "abc", true},
		{"a.c", "aZc", true},
		{"a.c", "a\nc", true},
		{"a.c", "ac", false},
		{"a.c", "abbc", false},

		{"[a-z]+", "hello", true},
		{"[a-z]+", "Hello", false},
		{"[a-z]+", "", false},

		{"^a$", "a", true},
		{"^a$", "b", false},
		{"^a$", "aa", false},
		{"^a$", "ba", false},
		{"^a$", "", false},

		{"(ab|cd)+", "abcdab", true},
		{"(ab|cd)+", "abc", false},

		{`\(a\)`, "(a)", true},
		{`\(a\)`, "a", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.pattern, err)
			}
			if got := p.Matches(tt.input); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got := p.MatchesBytes([]byte(tt.input)); got != tt.want {
				t.Errorf("MatchesBytes(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompileError(t *testing.T) {
	for _, pattern := range []string{"(", "[a-", "*", "a|", `\`} {
		t.Run(pattern, func(t *testing.T) {
			if _, err := Compile(pattern); err == nil {
				t.Fatalf("Compile(%q) should have failed", pattern)
			}
		})
	}

	_, err := Compile("a**")
	var syntaxErr *syntax.Error
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected wrapped *syntax.Error, got %v", err)
	}
	if syntaxErr.Pos != 2 {
		t.Errorf("error position = %d, want 2", syntaxErr.Pos)
	}
	if !errors.Is(err, syntax.ErrDanglingQuantifier) {
		t.Errorf("expected ErrDanglingQuantifier, got %v", err)
	}
}

func TestMustCompile(t *testing.T) {
	p := MustCompile("[0-9]+")
	if !p.Matches("123") {
		t.Error("MustCompile pattern should work normally")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustCompile with a bad pattern should panic")
		}
	}()
	MustCompile("(")
}

func TestString(t *testing.T) {
	const pattern = "[a-z]+@[a-z]+"
	if got := MustCompile(pattern).String(); got != pattern {
		t.Errorf("String() = %q, want %q", got, pattern)
	}
}

func TestFindString(t *testing.T) {
	p := MustCompile("[0-9]+")

	if got := p.FindString("order 1234 shipped 56"); got != "1234" {
		t.Errorf("FindString = %q, want %q", got, "1234")
	}
	if got := p.FindString("no digits"); got != "" {
		t.Errorf("FindString on no match = %q, want empty", got)
	}

	if got := p.FindStringIndex("order 1234 shipped"); !cmp.Equal(got, []int{6, 10}) {
		t.Errorf("FindStringIndex = %v, want [6 10]", got)
	}
	if got := p.FindStringIndex("no digits"); got != nil {
		t.Errorf("FindStringIndex on no match = %v, want nil", got)
	}
}

func TestFindLeftmostLongest(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    []int
	}{
		{"a|ab", "ab", []int{0, 2}},
		{"(aa)+", "aaa", []int{0, 2}},
		{"a|ab|cd|ef|gh|ij|kl|mn", "ab", []int{0, 2}},
		{"a+", "baaab", []int{1, 4}},
		{"a*", "bb", []int{0, 0}},
		{"^a", "abc", []int{0, 1}},
		{"^a", "bac", nil},
		{"a$", "cba", []int{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			got := MustCompile(tt.pattern).FindStringIndex(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindStringIndex(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestFindAllStringIndex(t *testing.T) {
	p := MustCompile("[0-9]+")
	input := "a1b22c333"

	want := [][]int{{1, 2}, {3, 5}, {6, 9}}
	if got := p.FindAllStringIndex(input, -1); !cmp.Equal(want, got) {
		t.Errorf("FindAllStringIndex = %v, want %v", got, want)
	}

	if got := p.FindAllStringIndex(input, 2); len(got) != 2 {
		t.Errorf("FindAllStringIndex with n=2 returned %d matches", len(got))
	}
	if got := p.FindAllStringIndex("no digits", -1); got != nil {
		t.Errorf("FindAllStringIndex on no match = %v, want nil", got)
	}
}

func TestFindAllEmptyPattern(t *testing.T) {
	want := [][]int{{0, 0}, {1, 1}, {2, 2}}
	got := MustCompile("").FindAllStringIndex("ab", -1)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("empty pattern spans mismatch (-want +got):\n%s", diff)
	}
}

// TestDeterministic compiles the same pattern twice and checks the two
// Patterns agree everywhere; compilation must not depend on hidden state.
func TestDeterministic(t *testing.T) {
	const pattern = "(ab|c[d-f]*)+"
	inputs := []string{"", "ab", "cdef", "abcd", "x", "cdx", "ababab"}

	p1, p2 := MustCompile(pattern), MustCompile(pattern)
	for _, input := range inputs {
		if g1, g2 := p1.Matches(input), p2.Matches(input); g1 != g2 {
			t.Errorf("Matches(%q) disagree: %v vs %v", input, g1, g2)
		}
		if g1, g2 := p1.FindStringIndex(input), p2.FindStringIndex(input); !cmp.Equal(g1, g2) {
			t.Errorf("FindStringIndex(%q) disagree: %v vs %v", input, g1, g2)
		}
	}
}

func TestRepeatedUse(t *testing.T) {
	p := MustCompile("(a|b)*c")
	for i := 0; i < 3; i++ {
		if !p.Matches("abbac") {
			t.Fatal("repeated Matches should keep succeeding")
		}
		if p.Matches("abba") {
			t.Fatal("repeated Matches should keep failing")
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	p := MustCompile("[a-z]+@[a-z]+")

	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func() {
			ok := true
			for j := 0; j < 200; j++ {
				if !p.Matches("user@host") {
					ok = false
				}
				if p.Matches("not an address") {
					ok = false
				}
				if idx := p.FindStringIndex("mail user@host now"); len(idx) != 2 || idx[0] != 5 || idx[1] != 14 {
					ok = false
				}
			}
			done <- ok
		}()
	}
	for i := 0; i < 8; i++ {
		if !<-done {
			t.Fatal("concurrent use produced a wrong result")
		}
	}
}

func TestCompileWithConfig(t *testing.T) {
	config := DefaultConfig()
	config.EnableLiteralEngines = false

	p, err := CompileWithConfig("hello", config)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Matches("hello") || p.Matches("hell") {
		t.Error("pattern behavior must not depend on strategy selection")
	}
}
