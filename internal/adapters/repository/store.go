// Package repository defines the character, snapshot and assignment stores.
package repository

import (
	"context"

	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/internal/domain/reconcile"
)

// CharacterStore provides access to the roster.
type CharacterStore interface {
	// PutCharacter inserts or replaces a character.
	PutCharacter(ctx context.Context, c model.Character) error
	// Character returns ErrNotFound if the id is unknown.
	Character(ctx context.Context, id string) (model.Character, error)
	// Characters returns the roster ordered by name.
	Characters(ctx context.Context) ([]model.Character, error)
	CountCharacters(ctx context.Context) int
}

// SnapshotStore keeps the latest snapshot of every source for a character.
// A snapshot only replaces a stored one when it is strictly newer; the
// returned bool reports whether it was stored.
type SnapshotStore interface {
	// PutDroptimizer keeps one report per character and raid difficulty.
	PutDroptimizer(ctx context.Context, d model.Droptimizer) (bool, error)
	PutSimC(ctx context.Context, s model.SimC) (bool, error)
	PutProfile(ctx context.Context, p model.ExternalProfile) (bool, error)
	// Sources returns whatever is stored for the character, possibly nothing.
	Sources(ctx context.Context, characterID string) (reconcile.Sources, error)
}

// AssignmentStore records which character received which loot.
type AssignmentStore interface {
	// Assign stores the assignment, replacing any previous one for the same loot.
	Assign(ctx context.Context, l model.LootWithAssigned) error
	// Assignment returns ErrNotFound if the loot was never assigned.
	Assignment(ctx context.Context, lootID string) (model.LootWithAssigned, error)
	// Assigned returns the loot assigned to a character, oldest first.
	Assigned(ctx context.Context, characterID string) ([]model.LootWithAssigned, error)
	CountAssignments(ctx context.Context) int
}

// Store bundles every store the service needs.
type Store interface {
	CharacterStore
	SnapshotStore
	AssignmentStore
	Close() error
}
