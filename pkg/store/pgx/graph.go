package pgx

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/atlascrm/relgraph/backend/pkg/common"
	"github.com/atlascrm/relgraph/backend/pkg/graph"
)

// LoadGraphData fetches everything the assembler needs in one round.
// Soft-deleted entities are never included; includeDeleted only
// controls whether inactive relationships come along.
func (s *GraphStore) LoadGraphData(ctx context.Context, includeDeleted bool) (graph.Data, error) {
	var data graph.Data

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		accounts, err := s.ListAccounts(groupCtx)
		if err != nil {
			return err
		}
		data.Accounts = accounts
		return nil
	})

	group.Go(func() error {
		contacts, err := s.ListContacts(groupCtx)
		if err != nil {
			return err
		}
		data.Contacts = contacts
		return nil
	})

	group.Go(func() error {
		relationships, err := s.listRelationships(groupCtx, includeDeleted)
		if err != nil {
			return err
		}
		data.Relationships = relationships
		return nil
	})

	if err := group.Wait(); err != nil {
		return graph.Data{}, err
	}
	return data, nil
}

func (s *GraphStore) listRelationships(ctx context.Context, includeDeleted bool) ([]common.Relationship, error) {
	query := `SELECT ` + relationshipColumns + ` ` + relationshipFrom
	if !includeDeleted {
		query += ` WHERE r.is_active`
	}
	query += ` ORDER BY r.id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	relationships := make([]common.Relationship, 0)
	for rows.Next() {
		relationship, err := scanRelationship(rows)
		if err != nil {
			return nil, err
		}
		relationships = append(relationships, relationship)
	}
	return relationships, rows.Err()
}
