package shuffle

import (
	"fmt"
	"strings"
	"testing"

	"github.com/examtools/quizshuffle/models"
)

// mcq builds a multiple-choice question whose \di sits at pos.
func mcq(t *testing.T, pos, count int) *models.Question {
	t.Helper()
	if pos < 0 || pos >= count {
		t.Fatalf("bad fixture: pos %d outside %d alternatives", pos, count)
	}
	var b strings.Builder
	b.WriteString("\\begin{answerlist}\n")
	for i := 0; i < count; i++ {
		marker := `\ti`
		if i == pos {
			marker = `\di`
		}
		fmt.Fprintf(&b, "    %s option %d\n", marker, i)
	}
	b.WriteString("\\end{answerlist}\n")
	return &models.Question{Content: b.String()}
}

// vfq builds a true/false question (no key position).
func vfq() *models.Question {
	return &models.Question{Content: "\\ifnum\\gabarito=1 V \\else F \\fi\n"}
}

// buildSequence turns a position list into questions; -1 means true/false.
func buildSequence(t *testing.T, positions []int) []*models.Question {
	t.Helper()
	qs := make([]*models.Question, len(positions))
	for i, pos := range positions {
		if pos < 0 {
			qs[i] = vfq()
		} else {
			qs[i] = mcq(t, pos, 4)
		}
	}
	return qs
}

func TestConstraintOK(t *testing.T) {
	cases := []struct {
		name      string
		positions []int
		limit     int
		want      bool
	}{
		{"empty list", nil, 3, true},
		{"single question", []int{0}, 1, true},
		{"alternating positions", []int{0, 1, 0, 1}, 2, true},
		{"pair at limit 2", []int{0, 0}, 2, false},
		{"pair under limit 3", []int{0, 0}, 3, true},
		{"triple at limit 3", []int{0, 0, 0}, 3, false},
		{"run of 4 under limit 5", []int{2, 2, 2, 2}, 5, true},
		{"run of 4 at limit 4", []int{2, 2, 2, 2}, 4, false},
		{"true/false resets the run", []int{0, -1, 0}, 2, true},
		{"two short runs split by true/false", []int{1, 1, -1, 1, 1}, 3, true},
		{"limit 1 forbids any repeat", []int{0, 0}, 1, false},
		{"limit 1 allows distinct neighbors", []int{0, 1, 2}, 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qs := buildSequence(t, tc.positions)
			if got := constraintOK(qs, tc.limit); got != tc.want {
				t.Errorf("constraintOK(%v, %d) = %v, want %v", tc.positions, tc.limit, got, tc.want)
			}
		})
	}
}

func TestWithConstraintIsPermutation(t *testing.T) {
	qs := buildSequence(t, []int{0, 1, 2, 3, -1, 0, 1})
	snapshot := make([]*models.Question, len(qs))
	copy(snapshot, qs)

	out := WithConstraint(qs, 2)

	if len(out) != len(qs) {
		t.Fatalf("expected %d questions, got %d", len(qs), len(out))
	}

	seen := make(map[*models.Question]int)
	for _, q := range qs {
		seen[q]++
	}
	for _, q := range out {
		seen[q]--
	}
	for q, n := range seen {
		if n != 0 {
			t.Fatalf("result is not a permutation of the input (off by %d for %p)", n, q)
		}
	}

	for i := range qs {
		if qs[i] != snapshot[i] {
			t.Fatalf("input slice was reordered in place at index %d", i)
		}
	}
}

func TestWithConstraintSatisfiesWhenPossible(t *testing.T) {
	// Two pairs of repeated positions: a third of all arrangements satisfy
	// the limit, so the retry search finds one.
	qs := buildSequence(t, []int{0, 0, 1, 1})

	out := WithConstraint(qs, 2)
	if !constraintOK(out, 2) {
		var positions []int
		for _, q := range out {
			pos, _ := q.CorrectAnswerPosition()
			positions = append(positions, pos)
		}
		t.Errorf("arrangement %v violates the limit", positions)
	}
}

func TestWithConstraintReturnsLastAttemptWhenImpossible(t *testing.T) {
	// Both questions share the position, so every arrangement violates
	// limit 1; the search must still hand back a full arrangement.
	qs := buildSequence(t, []int{0, 0})

	out := WithConstraint(qs, 1)
	if len(out) != 2 {
		t.Fatalf("expected 2 questions back, got %d", len(out))
	}
	if (out[0] == qs[0]) == (out[1] == qs[0]) {
		t.Errorf("result must contain both input questions exactly once")
	}
}
