package shellexp

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func scanAll(t *testing.T, src string) []Segment {
	t.Helper()
	sc := newScanner(src)
	var segs []Segment
	for {
		seg, ok, err := sc.next()
		if err != nil {
			t.Fatalf("scan %q: unexpected error: %v", src, err)
		}
		if !ok {
			return segs
		}
		segs = append(segs, seg)
	}
}

func TestScanner_Segments(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Segment
	}{
		{
			name: "plain text is a single literal",
			src:  "Just plain text",
			want: []Segment{
				{Kind: SegLiteral, Text: "Just plain text", Start: 0, End: 15},
			},
		},
		{
			name: "braced variable between literals",
			src:  "Hello ${USER}!",
			want: []Segment{
				{Kind: SegLiteral, Text: "Hello ", Start: 0, End: 6},
				{Kind: SegVariable, Name: "USER", Braced: true, Start: 6, End: 13},
				{Kind: SegLiteral, Text: "!", Start: 13, End: 14},
			},
		},
		{
			name: "bare variable stops at non-identifier",
			src:  "$HOME/bin",
			want: []Segment{
				{Kind: SegVariable, Name: "HOME", Start: 0, End: 5},
				{Kind: SegLiteral, Text: "/bin", Start: 5, End: 9},
			},
		},
		{
			name: "strict default modifier keeps raw word",
			src:  "${A:-${B}}",
			want: []Segment{
				{Kind: SegVariable, Name: "A", Mod: ModDefaultStrict, Word: "${B}", Braced: true, Start: 0, End: 10},
			},
		},
		{
			name: "loose default modifier",
			src:  "${A-x}",
			want: []Segment{
				{Kind: SegVariable, Name: "A", Mod: ModDefaultLoose, Word: "x", Braced: true, Start: 0, End: 6},
			},
		},
		{
			name: "strict alternate modifier",
			src:  "${A:+x}",
			want: []Segment{
				{Kind: SegVariable, Name: "A", Mod: ModAlternateStrict, Word: "x", Braced: true, Start: 0, End: 7},
			},
		},
		{
			name: "loose alternate modifier",
			src:  "${A+x}",
			want: []Segment{
				{Kind: SegVariable, Name: "A", Mod: ModAlternateLoose, Word: "x", Braced: true, Start: 0, End: 6},
			},
		},
		{
			name: "nested braces extend the variable name",
			src:  "${A${B}}",
			want: []Segment{
				{Kind: SegVariable, Name: "A${B}", Braced: true, Start: 0, End: 8},
			},
		},
		{
			name: "command substitution with quoted paren",
			src:  "$(echo 'a)b')",
			want: []Segment{
				{Kind: SegCommand, Text: "echo 'a)b'", Start: 0, End: 13},
			},
		},
		{
			name: "backtick command",
			src:  "run `date` now",
			want: []Segment{
				{Kind: SegLiteral, Text: "run ", Start: 0, End: 4},
				{Kind: SegBacktick, Text: "date", Start: 4, End: 10},
				{Kind: SegLiteral, Text: " now", Start: 10, End: 14},
			},
		},
		{
			name: "escaped dollar",
			src:  `\$HOME`,
			want: []Segment{
				{Kind: SegEscape, Text: "$", Start: 0, End: 2},
				{Kind: SegLiteral, Text: "HOME", Start: 2, End: 6},
			},
		},
		{
			name: "double dollar is an escape",
			src:  "$$",
			want: []Segment{
				{Kind: SegEscape, Text: "$", Start: 0, End: 2},
			},
		},
		{
			name: "lone dollars stay literal",
			src:  "Price is $100 and $ more$",
			want: []Segment{
				{Kind: SegLiteral, Text: "Price is $100 and $ more$", Start: 0, End: 25},
			},
		},
		{
			name: "single quote block is opaque",
			src:  "'${X}' ${Y}",
			want: []Segment{
				{Kind: SegLiteral, Text: "'${X}' ", Start: 0, End: 7},
				{Kind: SegVariable, Name: "Y", Braced: true, Start: 7, End: 11},
			},
		},
		{
			name: "trailing backslash",
			src:  `end\`,
			want: []Segment{
				{Kind: SegLiteral, Text: "end", Start: 0, End: 3},
				{Kind: SegEscape, Text: "", Start: 3, End: 4},
			},
		},
		{
			name: "unicode braced name",
			src:  "${🚀}",
			want: []Segment{
				{Kind: SegVariable, Name: "🚀", Braced: true, Start: 0, End: 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanAll(t, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("segments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// 片段区间依次拼接必须原样还原输入。
func TestScanner_SegmentsReconstructInput(t *testing.T) {
	inputs := []string{
		"Hello ${USER}, today is $(date) or `date`",
		`escaped \$ and \n plus '${quoted}' $$ tail`,
		"${A:-${B:-${C}}} mixed $BARE text",
	}
	for _, src := range inputs {
		var rebuilt string
		for _, seg := range scanAll(t, src) {
			rebuilt += src[seg.Start:seg.End]
		}
		if rebuilt != src {
			t.Errorf("reconstruction mismatch:\n got %q\nwant %q", rebuilt, src)
		}
	}
}

func TestScanner_Errors(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantDelim  string
		wantSyntax bool
	}{
		{name: "unterminated brace", src: "${TEST_VAR", wantDelim: "}"},
		{name: "unterminated brace with modifier", src: "${TEST_VAR:-default", wantDelim: "}"},
		{name: "unterminated command", src: "$(echo hi", wantDelim: ")"},
		{name: "unterminated backtick", src: "`unclosed", wantDelim: "`"},
		{name: "empty name", src: "${}", wantSyntax: true},
		{name: "modifier without name", src: "${:-x}", wantSyntax: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newScanner(tt.src)
			var err error
			for err == nil {
				var ok bool
				_, ok, err = sc.next()
				if !ok {
					break
				}
			}
			if err == nil {
				t.Fatalf("scan %q: expected error", tt.src)
			}
			if tt.wantSyntax {
				var syntaxErr *SyntaxError
				if !errors.As(err, &syntaxErr) {
					t.Fatalf("scan %q: expected SyntaxError, got %v", tt.src, err)
				}
				return
			}
			var untermErr *UnterminatedError
			if !errors.As(err, &untermErr) {
				t.Fatalf("scan %q: expected UnterminatedError, got %v", tt.src, err)
			}
			if untermErr.Delim != tt.wantDelim {
				t.Errorf("scan %q: delim = %q, want %q", tt.src, untermErr.Delim, tt.wantDelim)
			}
		})
	}
}
