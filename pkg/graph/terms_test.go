package graph

import (
	"errors"
	"testing"

	"github.com/atlascrm/relgraph/backend/pkg/common"
)

func intp(v int) *int { return &v }

func TestResolveScore_Defaults(t *testing.T) {
	tests := []struct {
		name string
		term common.Term
		want *int
	}{
		{"works_for has no score", common.TermWorksFor, nil},
		{"invested_in", common.TermInvestedIn, intp(50)},
		{"competitor", common.TermCompetitor, intp(-50)},
		{"colleague", common.TermColleague, intp(20)},
		{"friend", common.TermFriend, intp(80)},
		{"enemy", common.TermEnemy, intp(-100)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveScore(tc.term, nil)
			if err != nil {
				t.Fatalf("ResolveScore(%q, nil) returned error: %v", tc.term, err)
			}
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("ResolveScore(%q, nil) = %v, want %v", tc.term, got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("ResolveScore(%q, nil) = %d, want %d", tc.term, *got, *tc.want)
			}
		})
	}
}

func TestResolveScore_Validation(t *testing.T) {
	tests := []struct {
		name  string
		term  common.Term
		score *int
	}{
		{"unknown term", common.Term("nemesis"), nil},
		{"score on works_for", common.TermWorksFor, intp(10)},
		{"zero score on works_for", common.TermWorksFor, intp(0)},
		{"above range", common.TermFriend, intp(101)},
		{"below range", common.TermEnemy, intp(-101)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveScore(tc.term, tc.score)
			if !errors.Is(err, common.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestResolveScore_ExplicitBounds(t *testing.T) {
	for _, v := range []int{-100, 0, 100} {
		got, err := ResolveScore(common.TermColleague, intp(v))
		if err != nil {
			t.Fatalf("score %d rejected: %v", v, err)
		}
		if got == nil || *got != v {
			t.Fatalf("score %d not preserved, got %v", v, got)
		}
	}
}

func TestSpecFor_CoversAllTerms(t *testing.T) {
	for _, term := range Terms() {
		spec, ok := SpecFor(term)
		if !ok {
			t.Fatalf("missing spec for term %q", term)
		}
		if spec.Kind == "" {
			t.Fatalf("term %q has no kind", term)
		}
		if !spec.Scored && spec.DefaultScore != 0 {
			t.Fatalf("structural term %q has a default score", term)
		}
	}
}
