package pgx

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/atlascrm/relgraph/backend/pkg/common"
	"github.com/atlascrm/relgraph/backend/pkg/graph"
	"github.com/atlascrm/relgraph/backend/pkg/store"
)

const relationshipColumns = `r.id, r.public_id,
	r.source_type, r.source_id,
	CASE r.source_type WHEN 'account' THEN sa.public_id ELSE sc.public_id END,
	r.target_type, r.target_id,
	CASE r.target_type WHEN 'account' THEN ta.public_id ELSE tc.public_id END,
	r.term, r.kind, r.directed, r.score, r.is_active,
	r.created_at, r.updated_at, r.last_modified_by`

const relationshipFrom = `FROM relationships r
	LEFT JOIN accounts sa ON r.source_type = 'account' AND sa.id = r.source_id
	LEFT JOIN contacts sc ON r.source_type = 'contact' AND sc.id = r.source_id
	LEFT JOIN accounts ta ON r.target_type = 'account' AND ta.id = r.target_id
	LEFT JOIN contacts tc ON r.target_type = 'contact' AND tc.id = r.target_id`

func scanRelationship(row pgx.Row) (common.Relationship, error) {
	var r common.Relationship
	err := row.Scan(&r.ID, &r.PublicID,
		&r.Source.Type, &r.Source.ID, &r.Source.PublicID,
		&r.Target.Type, &r.Target.ID, &r.Target.PublicID,
		&r.Term, &r.Kind, &r.Directed, &r.Score, &r.Active,
		&r.CreatedAt, &r.UpdatedAt, &r.LastModifiedBy)
	return r, err
}

// resolveNode maps a (type, public id) endpoint to its internal id,
// rejecting unknown and soft-deleted nodes.
func resolveNode(ctx context.Context, tx pgx.Tx, nodeType common.NodeType, publicID string) (int64, error) {
	table := "accounts"
	switch nodeType {
	case common.NodeAccount:
	case common.NodeContact:
		table = "contacts"
	default:
		return 0, fmt.Errorf("%w: unknown node type %q", common.ErrValidation, nodeType)
	}

	var id int64
	err := tx.QueryRow(ctx, `
		SELECT id FROM `+table+`
		WHERE public_id = $1 AND deleted_at IS NULL`, publicID).Scan(&id)
	if err != nil {
		return 0, mapPgError(err, fmt.Sprintf("%s %s", nodeType, publicID))
	}
	return id, nil
}

// appendLog writes the audit row for one mutation. It runs inside the
// mutation's transaction so the state change and its log entry commit
// or roll back together.
func appendLog(ctx context.Context, tx pgx.Tx, relationshipID int64, mut graph.Mutation, actor string) error {
	var previous []byte
	if mut.Previous != nil {
		var err error
		previous, err = json.Marshal(mut.Previous)
		if err != nil {
			return err
		}
	}
	next, err := json.Marshal(mut.New)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO relationship_logs (relationship_id, action, previous, new, note, actor)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		relationshipID, mut.Action, previous, next, mut.Note, actor)
	return err
}

// applyMutation persists a transition produced by the graph package and
// its log entry against a row-locked relationship.
func applyMutation(ctx context.Context, tx pgx.Tx, relationshipID int64, mut graph.Mutation, actor string) error {
	_, err := tx.Exec(ctx, `
		UPDATE relationships SET
			term = $2, kind = $3, directed = $4, score = $5, is_active = $6,
			updated_at = now(), last_modified_by = $7
		WHERE id = $1`,
		relationshipID, mut.New.Term, mut.New.Kind, mut.New.Directed, mut.New.Score, mut.New.Active, actor)
	if err != nil {
		return mapPgError(err, "relationship")
	}
	return appendLog(ctx, tx, relationshipID, mut, actor)
}

func (s *GraphStore) CreateRelationship(ctx context.Context, params store.CreateRelationshipParams) (common.Relationship, error) {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return common.Relationship{}, err
	}
	defer tx.Rollback(ctx)

	sourceID, err := resolveNode(ctx, tx, params.SourceType, params.SourcePublicID)
	if err != nil {
		return common.Relationship{}, err
	}
	targetID, err := resolveNode(ctx, tx, params.TargetType, params.TargetPublicID)
	if err != nil {
		return common.Relationship{}, err
	}
	if params.SourceType == params.TargetType && sourceID == targetID {
		return common.Relationship{}, fmt.Errorf("%w: cannot relate a node to itself", common.ErrValidation)
	}

	// an existing row for the pair is either a conflict (active) or
	// revived as-is (soft-deleted), matching the dashboard's connect
	var existingID int64
	var existing common.Snapshot
	err = tx.QueryRow(ctx, `
		SELECT id, term, kind, directed, score, is_active FROM relationships
		WHERE (source_type = $1 AND source_id = $2 AND target_type = $3 AND target_id = $4)
		   OR (source_type = $3 AND source_id = $4 AND target_type = $1 AND target_id = $2)
		ORDER BY id LIMIT 1
		FOR UPDATE`,
		params.SourceType, sourceID, params.TargetType, targetID).
		Scan(&existingID, &existing.Term, &existing.Kind, &existing.Directed, &existing.Score, &existing.Active)
	if err != nil && err != pgx.ErrNoRows {
		return common.Relationship{}, err
	}

	if err == nil {
		if existing.Active {
			return common.Relationship{}, fmt.Errorf("%w: relationship already exists", common.ErrConflict)
		}
		mut, err := graph.ReactivateRelationship(existing)
		if err != nil {
			return common.Relationship{}, err
		}
		if err := applyMutation(ctx, tx, existingID, mut, params.Actor); err != nil {
			return common.Relationship{}, err
		}
		relationship, err := s.getByID(ctx, tx, existingID)
		if err != nil {
			return common.Relationship{}, err
		}
		return relationship, tx.Commit(ctx)
	}

	mut, err := graph.NewRelationship(params.Term, params.Score)
	if err != nil {
		return common.Relationship{}, err
	}
	publicID, err := gonanoid.New()
	if err != nil {
		return common.Relationship{}, err
	}

	var relationshipID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO relationships (public_id, source_type, source_id, target_type, target_id,
			term, kind, directed, score, is_active, last_modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true, $10)
		RETURNING id`,
		publicID, params.SourceType, sourceID, params.TargetType, targetID,
		mut.New.Term, mut.New.Kind, mut.New.Directed, mut.New.Score, params.Actor).Scan(&relationshipID)
	if err != nil {
		return common.Relationship{}, mapPgError(err, "relationship")
	}
	if err := appendLog(ctx, tx, relationshipID, mut, params.Actor); err != nil {
		return common.Relationship{}, err
	}

	relationship, err := s.getByID(ctx, tx, relationshipID)
	if err != nil {
		return common.Relationship{}, err
	}
	return relationship, tx.Commit(ctx)
}

func (s *GraphStore) GetRelationship(ctx context.Context, publicID string) (common.Relationship, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT `+relationshipColumns+` `+relationshipFrom+`
		WHERE r.public_id = $1`, publicID)
	relationship, err := scanRelationship(row)
	if err != nil {
		return common.Relationship{}, mapPgError(err, "relationship")
	}
	return relationship, nil
}

func (s *GraphStore) UpdateRelationship(ctx context.Context, publicID string, patch store.RelationshipPatch) (common.Relationship, error) {
	return s.mutate(ctx, publicID, patch.Actor, func(current common.Snapshot) (graph.Mutation, error) {
		return graph.UpdateRelationship(current, patch.Term, patch.Score)
	})
}

func (s *GraphStore) DeleteRelationship(ctx context.Context, publicID string, actor string) (common.Relationship, error) {
	return s.mutate(ctx, publicID, actor, func(current common.Snapshot) (graph.Mutation, error) {
		return graph.DeleteRelationship(current, "Relationship soft deleted")
	})
}

// mutate locks the relationship row, derives the transition, and commits
// the new state together with its log entry.
func (s *GraphStore) mutate(
	ctx context.Context,
	publicID string,
	actor string,
	transition func(common.Snapshot) (graph.Mutation, error),
) (common.Relationship, error) {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return common.Relationship{}, err
	}
	defer tx.Rollback(ctx)

	var relationshipID int64
	var current common.Snapshot
	err = tx.QueryRow(ctx, `
		SELECT id, term, kind, directed, score, is_active FROM relationships
		WHERE public_id = $1
		FOR UPDATE`, publicID).
		Scan(&relationshipID, &current.Term, &current.Kind, &current.Directed, &current.Score, &current.Active)
	if err != nil {
		return common.Relationship{}, mapPgError(err, "relationship")
	}

	mut, err := transition(current)
	if err != nil {
		return common.Relationship{}, err
	}
	if err := applyMutation(ctx, tx, relationshipID, mut, actor); err != nil {
		return common.Relationship{}, err
	}

	relationship, err := s.getByID(ctx, tx, relationshipID)
	if err != nil {
		return common.Relationship{}, err
	}
	return relationship, tx.Commit(ctx)
}

// softDeleteReferencing soft-deletes every active relationship touching
// the given node, one logged transition each. Caller holds the entity
// row lock and the enclosing transaction.
func (s *GraphStore) softDeleteReferencing(ctx context.Context, tx pgx.Tx, nodeType common.NodeType, internalID int64, actor string) ([]common.Relationship, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, term, kind, directed, score, is_active FROM relationships
		WHERE is_active AND (
			(source_type = $1 AND source_id = $2) OR
			(target_type = $1 AND target_id = $2)
		)
		ORDER BY id
		FOR UPDATE`, nodeType, internalID)
	if err != nil {
		return nil, err
	}

	type locked struct {
		id      int64
		current common.Snapshot
	}
	var targets []locked
	for rows.Next() {
		var l locked
		if err := rows.Scan(&l.id, &l.current.Term, &l.current.Kind, &l.current.Directed, &l.current.Score, &l.current.Active); err != nil {
			rows.Close()
			return nil, err
		}
		targets = append(targets, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	note := fmt.Sprintf("Cascade from deleted %s", nodeType)
	cascaded := make([]common.Relationship, 0, len(targets))
	for _, target := range targets {
		mut, err := graph.DeleteRelationship(target.current, note)
		if err != nil {
			return nil, err
		}
		if err := applyMutation(ctx, tx, target.id, mut, actor); err != nil {
			return nil, err
		}
		relationship, err := s.getByID(ctx, tx, target.id)
		if err != nil {
			return nil, err
		}
		cascaded = append(cascaded, relationship)
	}
	return cascaded, nil
}

func (s *GraphStore) getByID(ctx context.Context, tx pgx.Tx, id int64) (common.Relationship, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+relationshipColumns+` `+relationshipFrom+`
		WHERE r.id = $1`, id)
	relationship, err := scanRelationship(row)
	if err != nil {
		return common.Relationship{}, mapPgError(err, "relationship")
	}
	return relationship, nil
}

