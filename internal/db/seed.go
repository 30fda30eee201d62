package db

import (
	"context"
	"fmt"

	"github.com/atlascrm/relgraph/backend/pkg/common"
	"github.com/atlascrm/relgraph/backend/pkg/store"
)

const seedActor = "seed"

// SeedIfEmpty loads a small demo dataset when the database holds no
// entities. All rows go through the regular store so relationships get
// their audit trail like any user-created ones.
func SeedIfEmpty(ctx context.Context, storage store.Storage) error {
	accounts, err := storage.ListAccounts(ctx)
	if err != nil {
		return err
	}
	contacts, err := storage.ListContacts(ctx)
	if err != nil {
		return err
	}
	if len(accounts) > 0 || len(contacts) > 0 {
		return nil
	}

	acme, err := storage.CreateAccount(ctx, store.CreateAccountParams{
		Name: "Acme Corp", Ticker: "ACME", DynamicsID: "ACC-001", Actor: seedActor})
	if err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	stark, err := storage.CreateAccount(ctx, store.CreateAccountParams{
		Name: "Stark Ind", Ticker: "STRK", DynamicsID: "ACC-002", Actor: seedActor})
	if err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	wayne, err := storage.CreateAccount(ctx, store.CreateAccountParams{
		Name: "Wayne Ent", Ticker: "WAYN", DynamicsID: "ACC-003", Actor: seedActor})
	if err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}

	wile, err := storage.CreateContact(ctx, store.CreateContactParams{
		FirstName: "Wile E.", LastName: "Coyote", JobTitle: "Genius",
		AccountPublicID: acme.PublicID, Actor: seedActor})
	if err != nil {
		return fmt.Errorf("seed contacts: %w", err)
	}
	tony, err := storage.CreateContact(ctx, store.CreateContactParams{
		FirstName: "Tony", LastName: "Stark", JobTitle: "CEO",
		AccountPublicID: stark.PublicID, Actor: seedActor})
	if err != nil {
		return fmt.Errorf("seed contacts: %w", err)
	}
	pepper, err := storage.CreateContact(ctx, store.CreateContactParams{
		FirstName: "Pepper", LastName: "Potts", JobTitle: "CEO",
		AccountPublicID: stark.PublicID, Actor: seedActor})
	if err != nil {
		return fmt.Errorf("seed contacts: %w", err)
	}
	bruce, err := storage.CreateContact(ctx, store.CreateContactParams{
		FirstName: "Bruce", LastName: "Wayne", JobTitle: "Chairman",
		AccountPublicID: wayne.PublicID, Actor: seedActor})
	if err != nil {
		return fmt.Errorf("seed contacts: %w", err)
	}

	seeds := []store.CreateRelationshipParams{
		{SourceType: common.NodeContact, SourcePublicID: tony.PublicID,
			TargetType: common.NodeContact, TargetPublicID: bruce.PublicID,
			Term: common.TermColleague, Actor: seedActor},
		{SourceType: common.NodeAccount, SourcePublicID: stark.PublicID,
			TargetType: common.NodeAccount, TargetPublicID: wayne.PublicID,
			Term: common.TermCompetitor, Actor: seedActor},
		{SourceType: common.NodeContact, SourcePublicID: pepper.PublicID,
			TargetType: common.NodeContact, TargetPublicID: tony.PublicID,
			Term: common.TermFriend, Actor: seedActor},
		{SourceType: common.NodeAccount, SourcePublicID: wayne.PublicID,
			TargetType: common.NodeAccount, TargetPublicID: acme.PublicID,
			Term: common.TermInvestedIn, Actor: seedActor},
		{SourceType: common.NodeContact, SourcePublicID: wile.PublicID,
			TargetType: common.NodeAccount, TargetPublicID: acme.PublicID,
			Term: common.TermWorksFor, Actor: seedActor},
	}
	for _, params := range seeds {
		if _, err := storage.CreateRelationship(ctx, params); err != nil {
			return fmt.Errorf("seed relationships: %w", err)
		}
	}
	return nil
}
