package store

import (
	"context"

	"github.com/atlascrm/relgraph/backend/pkg/common"
	"github.com/atlascrm/relgraph/backend/pkg/graph"
)

// CreateAccountParams holds the fields accepted when creating a company
// node. Actor is stamped into last_modified_by and the audit trail.
type CreateAccountParams struct {
	Name       string
	Ticker     string
	DynamicsID string
	Actor      string
}

// AccountPatch is a partial account update. Nil fields are left as-is.
type AccountPatch struct {
	Name       *string
	Ticker     *string
	DynamicsID *string
	Actor      string
}

// CreateContactParams holds the fields accepted when creating a person
// node. AccountPublicID optionally links the contact to an account.
type CreateContactParams struct {
	FirstName       string
	LastName        string
	JobTitle        string
	DynamicsID      string
	AccountPublicID string
	Actor           string
}

// ContactPatch is a partial contact update. Nil fields are left as-is;
// an empty AccountPublicID pointer clears the account link.
type ContactPatch struct {
	FirstName       *string
	LastName        *string
	JobTitle        *string
	DynamicsID      *string
	AccountPublicID *string
	Actor           string
}

// CreateRelationshipParams identifies the two endpoints by node type and
// public id. A nil Score selects the term's default.
type CreateRelationshipParams struct {
	SourceType     common.NodeType
	SourcePublicID string
	TargetType     common.NodeType
	TargetPublicID string
	Term           common.Term
	Score          *int
	Actor          string
}

// RelationshipPatch changes term and/or score. A term change without an
// explicit score resets the score to the new term's default.
type RelationshipPatch struct {
	Term  *common.Term
	Score *int
	Actor string
}

// Storage is the persistence contract for the relationship graph. Every
// relationship mutation commits its state change together with exactly
// one log entry; implementations must roll both back on any failure.
type Storage interface {
	CreateAccount(ctx context.Context, params CreateAccountParams) (common.Account, error)
	GetAccount(ctx context.Context, publicID string) (common.Account, error)
	ListAccounts(ctx context.Context) ([]common.Account, error)
	UpdateAccount(ctx context.Context, publicID string, patch AccountPatch) (common.Account, error)
	DeleteAccount(ctx context.Context, publicID string, cascade bool, actor string) ([]common.Relationship, error)

	CreateContact(ctx context.Context, params CreateContactParams) (common.Contact, error)
	GetContact(ctx context.Context, publicID string) (common.Contact, error)
	ListContacts(ctx context.Context) ([]common.Contact, error)
	UpdateContact(ctx context.Context, publicID string, patch ContactPatch) (common.Contact, error)
	DeleteContact(ctx context.Context, publicID string, cascade bool, actor string) ([]common.Relationship, error)

	CreateRelationship(ctx context.Context, params CreateRelationshipParams) (common.Relationship, error)
	GetRelationship(ctx context.Context, publicID string) (common.Relationship, error)
	UpdateRelationship(ctx context.Context, publicID string, patch RelationshipPatch) (common.Relationship, error)
	DeleteRelationship(ctx context.Context, publicID string, actor string) (common.Relationship, error)

	History(ctx context.Context, relationshipPublicID string, afterID int64, limit int32) ([]common.LogEntry, error)
	ListDeleted(ctx context.Context) ([]common.Relationship, error)

	LoadGraphData(ctx context.Context, includeDeleted bool) (graph.Data, error)
}
