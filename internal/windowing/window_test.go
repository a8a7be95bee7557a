package windowing_test

import (
	"strings"
	"testing"

	"github.com/petasbytes/taskrunner/internal/windowing"
)

func TestClamp_Table(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		n         int
		want      string
		truncated bool
	}{
		{"Empty", "", 5, "", false},
		{"UnderLimit", "abc", 5, "abc", false},
		{"ExactLimit", "abcde", 5, "abcde", false},
		{"OverLimit", "abcdef", 5, "abcde", true},
		{"ZeroLimit", "abc", 0, "", true},
		{"ZeroLimitEmpty", "", 0, "", false},
		// 2 bytes per rune: byte length exceeds n but rune count does not
		{"MultibyteFits", "héllö", 5, "héllö", false},
		{"MultibyteCut", "世界世界", 3, "世界世", true},
		{"AstralCut", "👍👍👍", 1, "👍", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, cut := windowing.Clamp(tc.in, tc.n)
			if got != tc.want || cut != tc.truncated {
				t.Fatalf("Clamp(%q, %d) = %q,%v; want %q,%v", tc.in, tc.n, got, cut, tc.want, tc.truncated)
			}
		})
	}
}

func TestClamp_MatchesOriginalPromptLimit(t *testing.T) {
	in := strings.Repeat("x", 1200)
	got, cut := windowing.Clamp(in, 500)
	if !cut || windowing.RuneLen(got) != 500 {
		t.Fatalf("want 500 runes cut, got %d runes cut=%v", windowing.RuneLen(got), cut)
	}
}

func TestRecent(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if got := windowing.Recent(items, 3); len(got) != 3 || got[0] != 3 || got[2] != 5 {
		t.Fatalf("want [3 4 5], got %v", got)
	}
	if got := windowing.Recent(items[:2], 3); len(got) != 2 || got[0] != 1 {
		t.Fatalf("want whole slice when shorter than n, got %v", got)
	}
	if got := windowing.Recent([]int(nil), 3); got != nil {
		t.Fatalf("want nil for empty input, got %v", got)
	}
	if got := windowing.Recent(items, 0); got != nil {
		t.Fatalf("want nil for n=0, got %v", got)
	}
}
