package syntax

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lit(b byte) *Regexp { return &Regexp{Op: OpLiteral, Byte: b} }

func concat(subs ...*Regexp) *Regexp {
	return &Regexp{Op: OpConcat, Sub: subs}
}

func alternate(subs ...*Regexp) *Regexp {
	return &Regexp{Op: OpAlternate, Sub: subs}
}

func TestParse(t *testing.T) {
	tests := []struct {
		pattern string
		want    *Regexp
	}{
		{"", &Regexp{Op: OpEmpty}},
		{"a", lit('a')},
		{"ab", concat(lit('a'), lit('b'))},
		{".", &Regexp{Op: OpAnyChar}},
		{"a.c", concat(lit('a'), &Regexp{Op: OpAnyChar}, lit('c'))},
		{"a|b", alternate(lit('a'), lit('b'))},
		{"a|b|c", alternate(lit('a'), lit('b'), lit('c'))},
		{"ab|cd", alternate(concat(lit('a'), lit('b')), concat(lit('c'), lit('d')))},
		{"a*", &Regexp{Op: OpStar, Sub: []*Regexp{lit('a')}}},
		{"a+", &Regexp{Op: OpPlus, Sub: []*Regexp{lit('a')}}},
		{"a?", &Regexp{Op: OpQuest, Sub: []*Regexp{lit('a')}}},
		{"ab*", concat(lit('a'), &Regexp{Op: OpStar, Sub: []*Regexp{lit('b')}})},
		{"(ab)*", &Regexp{Op: OpStar, Sub: []*Regexp{concat(lit('a'), lit('b'))}}},
		{"(a)", lit('a')},
		{"()", &Regexp{Op: OpEmpty}},
		{"(a|b)c", concat(alternate(lit('a'), lit('b')), lit('c'))},
		{"^a$", concat(&Regexp{Op: OpBeginText}, lit('a'), &Regexp{Op: OpEndText})},
		{"^", &Regexp{Op: OpBeginText}},
		{"$", &Regexp{Op: OpEndText}},
		{"[abc]", &Regexp{Op: OpClass, Ranges: []Range{{'a', 'a'}, {'b', 'b'}, {'c', 'c'}}}},
		{"[a-z]", &Regexp{Op: OpClass, Ranges: []Range{{'a', 'z'}}}},
		{"[a-zA-Z0-9]", &Regexp{Op: OpClass, Ranges: []Range{{'a', 'z'}, {'A', 'Z'}, {'0', '9'}}}},
		{"[^a-z]", &Regexp{Op: OpClass, Ranges: []Range{{'a', 'z'}}, Negated: true}},
		{"[-a]", &Regexp{Op: OpClass, Ranges: []Range{{'-', '-'}, {'a', 'a'}}}},
		{"[a-]", &Regexp{Op: OpClass, Ranges: []Range{{'a', 'a'}, {'-', '-'}}}},
		{"[a-z]+", &Regexp{Op: OpPlus, Sub: []*Regexp{
			{Op: OpClass, Ranges: []Range{{'a', 'z'}}},
		}}},
		{`\.`, lit('.')},
		{`\*`, lit('*')},
		{`\\`, lit('\\')},
		{`\n`, lit('\n')},
		{`\t`, lit('\t')},
		{`\0`, lit(0)},
		{`\x41`, lit('A')},
		{`\xff`, lit(0xff)},
		{`[\x00-\x1f]`, &Regexp{Op: OpClass, Ranges: []Range{{0x00, 0x1f}}}},
		{`[\]]`, &Regexp{Op: OpClass, Ranges: []Range{{']', ']'}}}},
		{`[\n-\r]`, &Regexp{Op: OpClass, Ranges: []Range{{'\n', '\r'}}}},
		{"(a*)*", &Regexp{Op: OpStar, Sub: []*Regexp{
			{Op: OpStar, Sub: []*Regexp{lit('a')}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.pattern, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) tree mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		pattern string
		wantErr error
		wantPos int
	}{
		{"(", ErrUnterminatedGroup, 0},
		{"abc(", ErrUnterminatedGroup, 3},
		{"(a", ErrUnterminatedGroup, 0},
		{"(a|b", ErrUnterminatedGroup, 0},
		{")", ErrUnmatchedParen, 0},
		{"a)b", ErrUnmatchedParen, 1},
		{"[", ErrUnterminatedClass, 0},
		{"[a-", ErrUnterminatedClass, 0},
		{"[abc", ErrUnterminatedClass, 0},
		{"a[bc", ErrUnterminatedClass, 1},
		{"[]", ErrEmptyClass, 0},
		{"[^]", ErrEmptyClass, 0},
		{"[z-a]", ErrInvalidClassRange, 2},
		{"*a", ErrDanglingQuantifier, 0},
		{"+", ErrDanglingQuantifier, 0},
		{"?", ErrDanglingQuantifier, 0},
		{"a**", ErrDanglingQuantifier, 2},
		{"(*a)", ErrDanglingQuantifier, 1},
		{"a|", ErrEmptyAlternate, 1},
		{"|a", ErrEmptyAlternate, 0},
		{"a||b", ErrEmptyAlternate, 1},
		{"(a|)", ErrEmptyAlternate, 2},
		{`\`, ErrTrailingBackslash, 0},
		{`ab\`, ErrTrailingBackslash, 2},
		{`[a\`, ErrTrailingBackslash, 2},
		{`\xZZ`, ErrInvalidEscape, 0},
		{`a\x4`, ErrInvalidEscape, 1},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			if err == nil {
				t.Fatalf("Parse(%q) should have failed", tt.pattern)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.pattern, err, tt.wantErr)
			}
			var syntaxErr *Error
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Parse(%q) error is not a *syntax.Error: %v", tt.pattern, err)
			}
			if syntaxErr.Pos != tt.wantPos {
				t.Errorf("Parse(%q) error position = %d, want %d", tt.pattern, syntaxErr.Pos, tt.wantPos)
			}
		})
	}
}

func TestOpString(t *testing.T) {
	ops := map[Op]string{
		OpEmpty:     "Empty",
		OpLiteral:   "Literal",
		OpAnyChar:   "AnyChar",
		OpClass:     "Class",
		OpConcat:    "Concat",
		OpAlternate: "Alternate",
		OpStar:      "Star",
		OpPlus:      "Plus",
		OpQuest:     "Quest",
		OpBeginText: "BeginText",
		OpEndText:   "EndText",
	}
	for op, want := range ops {
		if got := op.String(); got != want {
			t.Errorf("Op(%d).String() = %q, want %q", op, got, want)
		}
	}
}

func TestRegexpString(t *testing.T) {
	re, err := Parse("a(b|c)*")
	if err != nil {
		t.Fatal(err)
	}
	want := `concat(lit("a") star(alternate(lit("b") lit("c"))))`
	if got := re.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
