package graph

import (
	"errors"
	"testing"

	"github.com/atlascrm/relgraph/backend/pkg/common"
)

func activeSnapshot(term common.Term, score *int) common.Snapshot {
	spec := termSpecs[term]
	return common.Snapshot{
		Term:     term,
		Kind:     spec.Kind,
		Directed: spec.Directed,
		Score:    score,
		Active:   true,
	}
}

func TestNewRelationship(t *testing.T) {
	tests := []struct {
		name      string
		term      common.Term
		score     *int
		wantScore *int
		wantErr   bool
	}{
		{"works_for stays unscored", common.TermWorksFor, nil, nil, false},
		{"works_for rejects score", common.TermWorksFor, intp(5), nil, true},
		{"competitor default", common.TermCompetitor, nil, intp(-50), false},
		{"explicit score kept", common.TermFriend, intp(33), intp(33), false},
		{"out of range", common.TermFriend, intp(200), nil, true},
		{"unknown term", common.Term("rival"), nil, nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mut, err := NewRelationship(tc.term, tc.score)
			if tc.wantErr {
				if !errors.Is(err, common.ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mut.Action != common.ActionCreate {
				t.Fatalf("action = %q, want create", mut.Action)
			}
			if mut.Previous != nil {
				t.Fatalf("create mutation has a previous snapshot")
			}
			if !mut.New.Active {
				t.Fatalf("created relationship not active")
			}
			if (mut.New.Score == nil) != (tc.wantScore == nil) {
				t.Fatalf("score = %v, want %v", mut.New.Score, tc.wantScore)
			}
			if mut.New.Score != nil && *mut.New.Score != *tc.wantScore {
				t.Fatalf("score = %d, want %d", *mut.New.Score, *tc.wantScore)
			}
		})
	}
}

func TestNewRelationship_KindAndDirection(t *testing.T) {
	mut, err := NewRelationship(common.TermWorksFor, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mut.New.Kind != common.KindEmployment || !mut.New.Directed {
		t.Fatalf("works_for = %+v, want directed employment", mut.New)
	}

	mut, err = NewRelationship(common.TermColleague, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mut.New.Kind != common.KindBusiness || mut.New.Directed {
		t.Fatalf("colleague = %+v, want undirected business", mut.New)
	}
}

func TestUpdateRelationship_ScoreChange(t *testing.T) {
	cur := activeSnapshot(common.TermCompetitor, intp(-50))

	mut, err := UpdateRelationship(cur, nil, intp(-70))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mut.Action != common.ActionScoreChange {
		t.Fatalf("action = %q, want score_change", mut.Action)
	}
	if mut.Previous == nil || *mut.Previous.Score != -50 {
		t.Fatalf("previous snapshot = %+v, want score -50", mut.Previous)
	}
	if mut.New.Score == nil || *mut.New.Score != -70 {
		t.Fatalf("new score = %v, want -70", mut.New.Score)
	}
}

func TestUpdateRelationship_TermChangeResetsScore(t *testing.T) {
	cur := activeSnapshot(common.TermCompetitor, intp(-70))
	term := common.TermFriend

	mut, err := UpdateRelationship(cur, &term, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mut.Action != common.ActionTermChange {
		t.Fatalf("action = %q, want term_change", mut.Action)
	}
	if mut.New.Term != common.TermFriend {
		t.Fatalf("term = %q, want friend", mut.New.Term)
	}
	if mut.New.Score == nil || *mut.New.Score != 80 {
		t.Fatalf("score = %v, want friend default 80", mut.New.Score)
	}
	if mut.New.Directed {
		t.Fatalf("friend relationship should be undirected")
	}
}

func TestUpdateRelationship_TermChangeToStructural(t *testing.T) {
	cur := activeSnapshot(common.TermColleague, intp(20))
	term := common.TermWorksFor

	mut, err := UpdateRelationship(cur, &term, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mut.New.Score != nil {
		t.Fatalf("works_for carries score %d after term change", *mut.New.Score)
	}

	// supplying a score alongside the structural term is rejected
	_, err = UpdateRelationship(cur, &term, intp(10))
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateRelationship_Rejections(t *testing.T) {
	term := common.TermFriend

	deleted := activeSnapshot(common.TermFriend, intp(80))
	deleted.Active = false
	if _, err := UpdateRelationship(deleted, &term, nil); !errors.Is(err, common.ErrConflict) {
		t.Fatalf("update of deleted relationship: expected conflict, got %v", err)
	}

	cur := activeSnapshot(common.TermFriend, intp(80))
	if _, err := UpdateRelationship(cur, nil, nil); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("empty update: expected validation error, got %v", err)
	}
	if _, err := UpdateRelationship(cur, nil, intp(999)); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("out of range update: expected validation error, got %v", err)
	}
}

func TestDeleteAndReactivate(t *testing.T) {
	cur := activeSnapshot(common.TermEnemy, intp(-100))

	del, err := DeleteRelationship(cur, "Relationship soft deleted")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if del.Action != common.ActionSoftDelete {
		t.Fatalf("action = %q, want soft_delete", del.Action)
	}
	if del.New.Active {
		t.Fatalf("deleted relationship still active")
	}
	if del.New.Score == nil || *del.New.Score != -100 {
		t.Fatalf("soft delete must preserve the score, got %v", del.New.Score)
	}

	if _, err := DeleteRelationship(del.New, ""); !errors.Is(err, common.ErrConflict) {
		t.Fatalf("double delete: expected conflict, got %v", err)
	}

	rea, err := ReactivateRelationship(del.New)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rea.Action != common.ActionReactivate || !rea.New.Active {
		t.Fatalf("reactivate produced %+v", rea)
	}
	if _, err := ReactivateRelationship(rea.New); !errors.Is(err, common.ErrConflict) {
		t.Fatalf("reactivate of active relationship: expected conflict, got %v", err)
	}
}

// Every successful transition carries exactly one log payload: an action,
// a new snapshot, and a previous snapshot for everything but create.
func TestMutationShape(t *testing.T) {
	create, _ := NewRelationship(common.TermFriend, nil)
	term := common.TermEnemy
	update, _ := UpdateRelationship(create.New, &term, nil)
	del, _ := DeleteRelationship(update.New, "")
	rea, _ := ReactivateRelationship(del.New)

	muts := []Mutation{create, update, del, rea}
	for i, m := range muts {
		if m.Action == "" {
			t.Fatalf("mutation %d has no action", i)
		}
		if i == 0 && m.Previous != nil {
			t.Fatalf("create has a previous snapshot")
		}
		if i > 0 && m.Previous == nil {
			t.Fatalf("mutation %d (%s) missing previous snapshot", i, m.Action)
		}
	}
}
