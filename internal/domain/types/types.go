// Package types contains common types used across the application
package types

import (
	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/internal/domain/reconcile"
)

// Entry represents one ranked candidate for a dropped item
type Entry struct {
	Rank          int                            `json:"rank"`
	CharacterID   string                         `json:"character_id"`
	CharacterName string                         `json:"character_name"`
	Score         int                            `json:"score"`
	Highlights    model.CharAssignmentHighlights `json:"highlights"`
}

// Ranking is the ordered candidate list for one loot
type Ranking struct {
	LootID  string     `json:"loot_id"`
	ItemID  int        `json:"item_id"`
	Loot    model.Loot `json:"loot"`
	Entries []Entry    `json:"entries"`
	// Failed lists candidates that could not be scored.
	Failed []string `json:"failed,omitempty"`
}

// Top returns the first entry, if any.
func (r Ranking) Top() (Entry, bool) {
	if len(r.Entries) == 0 {
		return Entry{}, false
	}
	return r.Entries[0], true
}

// Entry returns the entry of a character, if ranked.
func (r Ranking) Entry(characterID string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.CharacterID == characterID {
			return e, true
		}
	}
	return Entry{}, false
}

// CharacterStatus reports how fresh each gear source of a character is.
type CharacterStatus struct {
	CharacterID   string                `json:"character_id"`
	CharacterName string                `json:"character_name"`
	Assigned      int                   `json:"assigned"`
	Sources       []reconcile.Staleness `json:"sources"`
	// Vault holds the great vault choices of the most recent source.
	Vault []model.GearItem `json:"vault,omitempty"`
}

// IngestResult is the outcome of one snapshot upload.
type IngestResult struct {
	CharacterID string           `json:"character_id"`
	Source      model.SourceKind `json:"source"`
	// Accepted is false when a newer snapshot of the same source was kept.
	Accepted bool `json:"accepted"`
	Skipped  int  `json:"skipped"`
}
