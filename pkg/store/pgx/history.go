package pgx

import (
	"context"
	"encoding/json"

	"github.com/atlascrm/relgraph/backend/pkg/common"
)

const defaultHistoryPage = 50

// History returns the audit trail for a relationship, oldest first.
// Paging is cursor based: pass the last seen log id as afterID to
// resume. Works for soft-deleted relationships too.
func (s *GraphStore) History(ctx context.Context, relationshipPublicID string, afterID int64, limit int32) ([]common.LogEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryPage
	}

	// resolve first so an unknown relationship is NotFound, not empty
	var relationshipID int64
	err := s.conn.QueryRow(ctx, `
		SELECT id FROM relationships WHERE public_id = $1`, relationshipPublicID).Scan(&relationshipID)
	if err != nil {
		return nil, mapPgError(err, "relationship")
	}

	rows, err := s.conn.Query(ctx, `
		SELECT l.id, l.action, l.previous, l.new, l.note, l.actor, l.changed_at
		FROM relationship_logs l
		WHERE l.relationship_id = $1 AND l.id > $2
		ORDER BY l.id
		LIMIT $3`, relationshipID, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]common.LogEntry, 0)
	for rows.Next() {
		var entry common.LogEntry
		var previous, next []byte
		err := rows.Scan(&entry.ID, &entry.Action, &previous, &next, &entry.Note, &entry.Actor, &entry.ChangedAt)
		if err != nil {
			return nil, err
		}
		entry.RelationshipPublicID = relationshipPublicID
		if len(previous) > 0 {
			entry.Previous = &common.Snapshot{}
			if err := json.Unmarshal(previous, entry.Previous); err != nil {
				return nil, err
			}
		}
		if err := json.Unmarshal(next, &entry.New); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListDeleted returns the soft-deleted relationships for the history
// toggle view, most recently deleted first.
func (s *GraphStore) ListDeleted(ctx context.Context) ([]common.Relationship, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT `+relationshipColumns+` `+relationshipFrom+`
		WHERE NOT r.is_active
		ORDER BY r.updated_at DESC, r.id DESC`)
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
