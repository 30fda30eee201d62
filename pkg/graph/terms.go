package graph

import (
	"fmt"

	"github.com/atlascrm/relgraph/backend/pkg/common"
)

// MinScore and MaxScore bound the sentiment range for scored terms.
const (
	MinScore = -100
	MaxScore = 100
)

// TermSpec describes one relationship term. Structural terms carry no
// score; adding a term is a data change here, not new code.
type TermSpec struct {
	Kind         common.Kind
	Directed     bool
	Scored       bool
	DefaultScore int
}

var termSpecs = map[common.Term]TermSpec{
	common.TermWorksFor:   {Kind: common.KindEmployment, Directed: true, Scored: false},
	common.TermInvestedIn: {Kind: common.KindBusiness, Directed: true, Scored: true, DefaultScore: 50},
	common.TermCompetitor: {Kind: common.KindBusiness, Directed: false, Scored: true, DefaultScore: -50},
	common.TermColleague:  {Kind: common.KindBusiness, Directed: false, Scored: true, DefaultScore: 20},
	common.TermFriend:     {Kind: common.KindSocial, Directed: false, Scored: true, DefaultScore: 80},
	common.TermEnemy:      {Kind: common.KindSocial, Directed: false, Scored: true, DefaultScore: -100},
}

// Terms returns all known terms in a stable order.
func Terms() []common.Term {
	return []common.Term{
		common.TermWorksFor,
		common.TermInvestedIn,
		common.TermCompetitor,
		common.TermColleague,
		common.TermFriend,
		common.TermEnemy,
	}
}

// SpecFor looks up the spec for a term.
func SpecFor(term common.Term) (TermSpec, bool) {
	spec, ok := termSpecs[term]
	return spec, ok
}

// ResolveScore validates a requested score against the term's spec and
// returns the score to store. A nil score selects the term default.
// Structural terms must not carry a score.
func ResolveScore(term common.Term, score *int) (*int, error) {
	spec, ok := termSpecs[term]
	if !ok {
		return nil, fmt.Errorf("%w: unknown term %q", common.ErrValidation, term)
	}
	if !spec.Scored {
		if score != nil {
			return nil, fmt.Errorf("%w: term %q carries no score", common.ErrValidation, term)
		}
		return nil, nil
	}
	if score == nil {
		v := spec.DefaultScore
		return &v, nil
	}
	if *score < MinScore || *score > MaxScore {
		return nil, fmt.Errorf("%w: score %d out of range [%d, %d]", common.ErrValidation, *score, MinScore, MaxScore)
	}
	v := *score
	return &v, nil
}
