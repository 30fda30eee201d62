package common

import "time"

// NodeType discriminates the two entity tables a relationship endpoint
// can point at.
type NodeType string

const (
	NodeAccount NodeType = "account"
	NodeContact NodeType = "contact"
)

// Term is the enumerated relationship type between two nodes.
type Term string

const (
	TermWorksFor   Term = "works_for"
	TermInvestedIn Term = "invested_in"
	TermCompetitor Term = "competitor"
	TermColleague  Term = "colleague"
	TermFriend     Term = "friend"
	TermEnemy      Term = "enemy"
)

// Kind groups terms into the three coarse relationship categories the
// dashboard renders differently.
type Kind string

const (
	KindEmployment Kind = "employment"
	KindBusiness   Kind = "business"
	KindSocial     Kind = "social"
)

// Action names a relationship state transition as recorded in the log.
type Action string

const (
	ActionCreate      Action = "create"
	ActionScoreChange Action = "score_change"
	ActionTermChange  Action = "term_change"
	ActionUpdate      Action = "update"
	ActionSoftDelete  Action = "soft_delete"
	ActionReactivate  Action = "reactivate"
)

// Account represents a company node.
type Account struct {
	ID             int64      `json:"-"`
	PublicID       string     `json:"id"`
	Name           string     `json:"name"`
	Ticker         string     `json:"ticker,omitempty"`
	DynamicsID     string     `json:"dynamics_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastModifiedBy string     `json:"last_modified_by"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// Contact represents a person node, optionally linked to the account
// they work for.
type Contact struct {
	ID              int64      `json:"-"`
	PublicID        string     `json:"id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name,omitempty"`
	JobTitle        string     `json:"job_title,omitempty"`
	DynamicsID      string     `json:"dynamics_id,omitempty"`
	AccountID       *int64     `json:"-"`
	AccountPublicID string     `json:"account_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastModifiedBy  string     `json:"last_modified_by"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

// DisplayName returns the contact's full name as rendered on graph nodes.
func (c Contact) DisplayName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// NodeRef identifies one endpoint of a relationship.
type NodeRef struct {
	Type NodeType `json:"type"`
	ID   int64    `json:"-"`
	// PublicID is the external identifier exposed over the API.
	PublicID string `json:"id"`
}

// Relationship is a typed edge between two nodes. Score is nil exactly
// when the term is structural (works_for).
type Relationship struct {
	ID             int64     `json:"-"`
	PublicID       string    `json:"id"`
	Source         NodeRef   `json:"source"`
	Target         NodeRef   `json:"target"`
	Term           Term      `json:"term"`
	Kind           Kind      `json:"kind"`
	Directed       bool      `json:"directed"`
	Score          *int      `json:"score"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	LastModifiedBy string    `json:"last_modified_by"`
}

// Snapshot captures the mutable relationship state for audit logging.
type Snapshot struct {
	Term     Term `json:"term"`
	Kind     Kind `json:"kind"`
	Directed bool `json:"directed"`
	Score    *int `json:"score"`
	Active   bool `json:"active"`
}

// SnapshotOf extracts the loggable state of a relationship.
func SnapshotOf(r Relationship) Snapshot {
	return Snapshot{
		Term:     r.Term,
		Kind:     r.Kind,
		Directed: r.Directed,
		Score:    r.Score,
		Active:   r.Active,
	}
}

// LogEntry is one audit record for a relationship. Previous is nil for
// the create entry. The relationship reference survives soft deletion.
type LogEntry struct {
	ID                   int64     `json:"id"`
	RelationshipPublicID string    `json:"relationship_id"`
	Action               Action    `json:"action"`
	Previous             *Snapshot `json:"previous,omitempty"`
	New                  Snapshot  `json:"new"`
	Note                 string    `json:"note,omitempty"`
	Actor                string    `json:"actor,omitempty"`
	ChangedAt            time.Time `json:"changed_at"`
}

// Node is a renderable graph node handed to the UI.
type Node struct {
	ID     string   `json:"id"`
	Type   NodeType `json:"type"`
	Label  string   `json:"label"`
	Ticker string   `json:"ticker,omitempty"`
	Job    string   `json:"job,omitempty"`
}

// Edge is a renderable graph edge. Score is nil for structural edges.
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Term     Term   `json:"term"`
	Kind     Kind   `json:"kind"`
	Directed bool   `json:"directed"`
	Score    *int   `json:"score"`
	Deleted  bool   `json:"deleted,omitempty"`
}

// Graph is the node/edge set returned for a subgraph query. Both slices
// are sorted by ID so identical store state yields identical output.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
