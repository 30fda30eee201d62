package pgx

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/atlascrm/relgraph/backend/pkg/common"
	"github.com/atlascrm/relgraph/backend/pkg/store"
)

const accountColumns = `id, public_id, name, ticker, dynamics_id, created_at, updated_at, last_modified_by, deleted_at`

const contactColumns = `c.id, c.public_id, c.first_name, c.last_name, c.job_title, c.dynamics_id,
	c.account_id, COALESCE(a.public_id, ''), c.created_at, c.updated_at, c.last_modified_by, c.deleted_at`

const contactFrom = `FROM contacts c LEFT JOIN accounts a ON a.id = c.account_id`

func scanAccount(row pgx.Row) (common.Account, error) {
	var a common.Account
	err := row.Scan(&a.ID, &a.PublicID, &a.Name, &a.Ticker, &a.DynamicsID,
		&a.CreatedAt, &a.UpdatedAt, &a.LastModifiedBy, &a.DeletedAt)
	return a, err
}

func scanContact(row pgx.Row) (common.Contact, error) {
	var c common.Contact
	err := row.Scan(&c.ID, &c.PublicID, &c.FirstName, &c.LastName, &c.JobTitle, &c.DynamicsID,
		&c.AccountID, &c.AccountPublicID, &c.CreatedAt, &c.UpdatedAt, &c.LastModifiedBy, &c.DeletedAt)
	return c, err
}

func (s *GraphStore) CreateAccount(ctx context.Context, params store.CreateAccountParams) (common.Account, error) {
	if strings.TrimSpace(params.Name) == "" {
		return common.Account{}, fmt.Errorf("%w: account name is required", common.ErrValidation)
	}
	publicID, err := gonanoid.New()
	if err != nil {
		return common.Account{}, err
	}

	row := s.conn.QueryRow(ctx, `
		INSERT INTO accounts (public_id, name, ticker, dynamics_id, last_modified_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+accountColumns,
		publicID, strings.TrimSpace(params.Name), params.Ticker, params.DynamicsID, params.Actor)
	account, err := scanAccount(row)
	if err != nil {
		return common.Account{}, mapPgError(err, "account dynamics id")
	}
	return account, nil
}

func (s *GraphStore) GetAccount(ctx context.Context, publicID string) (common.Account, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE public_id = $1 AND deleted_at IS NULL`, publicID)
	account, err := scanAccount(row)
	if err != nil {
		return common.Account{}, mapPgError(err, "account")
	}
	return account, nil
}

func (s *GraphStore) ListAccounts(ctx context.Context) ([]common.Account, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]common.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (s *GraphStore) UpdateAccount(ctx context.Context, publicID string, patch store.AccountPatch) (common.Account, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return common.Account{}, fmt.Errorf("%w: account name is required", common.ErrValidation)
	}

	row := s.conn.QueryRow(ctx, `
		UPDATE accounts SET
			name = COALESCE($2, name),
			ticker = COALESCE($3, ticker),
			dynamics_id = COALESCE($4, dynamics_id),
			updated_at = now(),
			last_modified_by = $5
		WHERE public_id = $1 AND deleted_at IS NULL
		RETURNING `+accountColumns,
		publicID, patch.Name, patch.Ticker, patch.DynamicsID, patch.Actor)
	account, err := scanAccount(row)
	if err != nil {
		return common.Account{}, mapPgError(err, "account")
	}
	return account, nil
}

func (s *GraphStore) DeleteAccount(ctx context.Context, publicID string, cascade bool, actor string) ([]common.Relationship, error) {
	return s.deleteEntity(ctx, common.NodeAccount, publicID, cascade, actor)
}

func (s *GraphStore) CreateContact(ctx context.Context, params store.CreateContactParams) (common.Contact, error) {
	if strings.TrimSpace(params.FirstName) == "" {
		return common.Contact{}, fmt.Errorf("%w: contact first name is required", common.ErrValidation)
	}

	var accountID *int64
	if params.AccountPublicID != "" {
		account, err := s.GetAccount(ctx, params.AccountPublicID)
		if err != nil {
			return common.Contact{}, err
		}
		accountID = &account.ID
	}

	publicID, err := gonanoid.New()
	if err != nil {
		return common.Contact{}, err
	}

	row := s.conn.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO contacts (public_id, first_name, last_name, job_title, dynamics_id, account_id, last_modified_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT `+contactColumns+` FROM inserted c
		LEFT JOIN accounts a ON a.id = c.account_id`,
		publicID, strings.TrimSpace(params.FirstName), params.LastName, params.JobTitle,
		params.DynamicsID, accountID, params.Actor)
	contact, err := scanContact(row)
	if err != nil {
		return common.Contact{}, mapPgError(err, "contact dynamics id")
	}
	return contact, nil
}

func (s *GraphStore) GetContact(ctx context.Context, publicID string) (common.Contact, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT `+contactColumns+` `+contactFrom+`
		WHERE c.public_id = $1 AND c.deleted_at IS NULL`, publicID)
	contact, err := scanContact(row)
	if err != nil {
		return common.Contact{}, mapPgError(err, "contact")
	}
	return contact, nil
}

func (s *GraphStore) ListContacts(ctx context.Context) ([]common.Contact, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT `+contactColumns+` `+contactFrom+`
		WHERE c.deleted_at IS NULL ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]common.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func (s *GraphStore) UpdateContact(ctx context.Context, publicID string, patch store.ContactPatch) (common.Contact, error) {
	if patch.FirstName != nil && strings.TrimSpace(*patch.FirstName) == "" {
		return common.Contact{}, fmt.Errorf("%w: contact first name is required", common.ErrValidation)
	}

	var accountID *int64
	clearAccount := false
	if patch.AccountPublicID != nil {
		if *patch.AccountPublicID == "" {
			clearAccount = true
		} else {
			account, err := s.GetAccount(ctx, *patch.AccountPublicID)
			if err != nil {
				return common.Contact{}, err
			}
			accountID = &account.ID
		}
	}

	row := s.conn.QueryRow(ctx, `
		WITH updated AS (
			UPDATE contacts SET
				first_name = COALESCE($2, first_name),
				last_name = COALESCE($3, last_name),
				job_title = COALESCE($4, job_title),
				dynamics_id = COALESCE($5, dynamics_id),
				account_id = CASE WHEN $6 THEN NULL ELSE COALESCE($7, account_id) END,
				updated_at = now(),
				last_modified_by = $8
			WHERE public_id = $1 AND deleted_at IS NULL
			RETURNING *
		)
		SELECT `+contactColumns+` FROM updated c
		LEFT JOIN accounts a ON a.id = c.account_id`,
		publicID, patch.FirstName, patch.LastName, patch.JobTitle, patch.DynamicsID,
		clearAccount, accountID, patch.Actor)
	contact, err := scanContact(row)
	if err != nil {
		return common.Contact{}, mapPgError(err, "contact")
	}
	return contact, nil
}

func (s *GraphStore) DeleteContact(ctx context.Context, publicID string, cascade bool, actor string) ([]common.Relationship, error) {
	return s.deleteEntity(ctx, common.NodeContact, publicID, cascade, actor)
}

// deleteEntity soft-deletes an account or contact. Without cascade it
// fails with a conflict while active relationships still reference the
// node; with cascade those relationships are soft-deleted (and logged)
// in the same transaction. Returns the relationships that were cascaded.
func (s *GraphStore) deleteEntity(ctx context.Context, nodeType common.NodeType, publicID string, cascade bool, actor string) ([]common.Relationship, error) {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	table := "accounts"
	if nodeType == common.NodeContact {
		table = "contacts"
	}

	var internalID int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM `+table+`
		WHERE public_id = $1 AND deleted_at IS NULL
		FOR UPDATE`, publicID).Scan(&internalID)
	if err != nil {
		return nil, mapPgError(err, string(nodeType))
	}

	var activeRefs int
	err = tx.QueryRow(ctx, `
		SELECT count(*) FROM relationships
		WHERE is_active AND (
			(source_type = $1 AND source_id = $2) OR
			(target_type = $1 AND target_id = $2)
		)`, nodeType, internalID).Scan(&activeRefs)
	if err != nil {
		return nil, err
	}

	cascaded := make([]common.Relationship, 0)
	if activeRefs > 0 {
		if !cascade {
			return nil, fmt.Errorf("%w: %s has %d active relationships", common.ErrConflict, nodeType, activeRefs)
		}
		cascaded, err = s.softDeleteReferencing(ctx, tx, nodeType, internalID, actor)
		if err != nil {
			return nil, err
		}
	}

	if nodeType == common.NodeAccount {
		// contacts of a deleted account lose their employment link
		_, err = tx.Exec(ctx, `
			UPDATE contacts SET account_id = NULL, updated_at = now(), last_modified_by = $2
			WHERE account_id = $1 AND deleted_at IS NULL`, internalID, actor)
		if err != nil {
			return nil, err
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE `+table+` SET deleted_at = now(), updated_at = now(), last_modified_by = $2
		WHERE id = $1`, internalID, actor)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return cascaded, nil
}
