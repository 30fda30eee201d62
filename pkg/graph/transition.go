package graph

import (
	"fmt"

	"github.com/atlascrm/relgraph/backend/pkg/common"
)

// Mutation is the outcome of one relationship state transition: the
// state to persist plus exactly one log entry describing it. The store
// commits both or neither.
type Mutation struct {
	Action   common.Action
	Previous *common.Snapshot
	New      common.Snapshot
	Note     string
}

// NewRelationship validates a create request and returns the initial
// state together with its create mutation.
func NewRelationship(term common.Term, score *int) (Mutation, error) {
	resolved, err := ResolveScore(term, score)
	if err != nil {
		return Mutation{}, err
	}
	spec := termSpecs[term]
	next := common.Snapshot{
		Term:     term,
		Kind:     spec.Kind,
		Directed: spec.Directed,
		Score:    resolved,
		Active:   true,
	}
	return Mutation{
		Action: common.ActionCreate,
		New:    next,
	}, nil
}

// UpdateRelationship applies a term and/or score change to an active
// relationship. A term change without an explicit score resets the
// score to the new term's default, matching the dashboard behavior.
func UpdateRelationship(current common.Snapshot, term *common.Term, score *int) (Mutation, error) {
	if !current.Active {
		return Mutation{}, fmt.Errorf("%w: relationship is deleted", common.ErrConflict)
	}
	if term == nil && score == nil {
		return Mutation{}, fmt.Errorf("%w: nothing to update", common.ErrValidation)
	}

	nextTerm := current.Term
	if term != nil {
		nextTerm = *term
	}
	effectiveScore := score
	if term != nil && *term != current.Term && score == nil {
		// term change resets the score to the new default
		effectiveScore = nil
	} else if score == nil {
		effectiveScore = current.Score
	}
	resolved, err := ResolveScore(nextTerm, effectiveScore)
	if err != nil {
		return Mutation{}, err
	}

	spec := termSpecs[nextTerm]
	prev := current
	next := common.Snapshot{
		Term:     nextTerm,
		Kind:     spec.Kind,
		Directed: spec.Directed,
		Score:    resolved,
		Active:   true,
	}

	action := common.ActionUpdate
	note := ""
	switch {
	case nextTerm != prev.Term:
		action = common.ActionTermChange
		note = fmt.Sprintf("Term changed to %s", nextTerm)
	case !scoreEqual(resolved, prev.Score):
		action = common.ActionScoreChange
	}

	return Mutation{
		Action:   action,
		Previous: &prev,
		New:      next,
		Note:     note,
	}, nil
}

// DeleteRelationship soft-deletes an active relationship.
func DeleteRelationship(current common.Snapshot, note string) (Mutation, error) {
	if !current.Active {
		return Mutation{}, fmt.Errorf("%w: relationship already deleted", common.ErrConflict)
	}
	prev := current
	next := current
	next.Active = false
	return Mutation{
		Action:   common.ActionSoftDelete,
		Previous: &prev,
		New:      next,
		Note:     note,
	}, nil
}

// ReactivateRelationship revives a soft-deleted relationship as-is.
func ReactivateRelationship(current common.Snapshot) (Mutation, error) {
	if current.Active {
		return Mutation{}, fmt.Errorf("%w: relationship already active", common.ErrConflict)
	}
	prev := current
	next := current
	next.Active = true
	return Mutation{
		Action:   common.ActionReactivate,
		Previous: &prev,
		New:      next,
		Note:     "Reactivated existing relationship",
	}, nil
}

func scoreEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
