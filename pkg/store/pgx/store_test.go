package pgx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/atlascrm/relgraph/backend/pkg/common"
)

func TestMapPgError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, common.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", pgx.ErrNoRows), common.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation}, common.ErrValidation},
		{"check violation", &pgconn.PgError{Code: pgCheckViolation, ConstraintName: "relationships_score_check"}, common.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapPgError(tt.err, "relationship")
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMapPgError_PassesThroughUnknown(t *testing.T) {
	unknown := errors.New("connection reset")
	if got := mapPgError(unknown, "account"); got != unknown {
		t.Fatalf("expected error passed through, got %v", got)
	}

	// other pg error codes are not client errors
	serial := &pgconn.PgError{Code: "40001"}
	got := mapPgError(serial, "relationship")
	if errors.Is(got, common.ErrValidation) || errors.Is(got, common.ErrNotFound) {
		t.Fatalf("serialization failure must not map to a client error, got %v", got)
	}
}
