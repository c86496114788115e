package sources

import (
	"time"

	"github.com/okian/lootcouncil/internal/domain/model"
)

// RawItem is one gear entry as exported by an addon, a report or the armory.
type RawItem struct {
	ItemID     int                `json:"item_id"`
	ItemLevel  int                `json:"item_level"`
	BonusIDs   []int              `json:"bonus_ids,omitempty"`
	EnchantIDs []int              `json:"enchant_ids,omitempty"`
	GemIDs     []int              `json:"gem_ids,omitempty"`
	EquippedIn model.EquippedSlot `json:"equipped_in,omitempty"`
	// UpgradesLeft is the number of upgrade ranks still purchasable.
	UpgradesLeft *int `json:"upgrades_left,omitempty"`
	// Difficulty the item dropped on, when the source knows it.
	Difficulty model.RaidDifficulty `json:"difficulty,omitempty"`
}

// Payload is the envelope accepted for every source kind. Bag, WeeklyChest
// and Upgrades are ignored for kinds that do not expose them.
type Payload struct {
	Kind           model.SourceKind     `json:"kind"`
	ID             string               `json:"id,omitempty"`
	CharacterID    string               `json:"character_id"`
	Timestamp      time.Time            `json:"timestamp"`
	RaidDifficulty model.RaidDifficulty `json:"raid_difficulty,omitempty"`
	Equipped       []RawItem            `json:"equipped"`
	Bag            []RawItem            `json:"bag,omitempty"`
	WeeklyChest    []RawItem            `json:"weekly_chest,omitempty"`
	Upgrades       []model.Upgrade      `json:"upgrades,omitempty"`
}

// Parsed holds exactly one non-nil snapshot matching Kind.
type Parsed struct {
	Kind        model.SourceKind
	Droptimizer *model.Droptimizer
	SimC        *model.SimC
	Profile     *model.ExternalProfile
	// Skipped counts entries dropped because the catalog lacks them.
	Skipped int
}

// CharacterID returns the owner of the parsed snapshot.
func (p Parsed) CharacterID() string {
	switch {
	case p.Droptimizer != nil:
		return p.Droptimizer.CharacterID
	case p.SimC != nil:
		return p.SimC.CharacterID
	case p.Profile != nil:
		return p.Profile.CharacterID
	}
	return ""
}

// Timestamp returns the snapshot time of the parsed snapshot.
func (p Parsed) Timestamp() time.Time {
	switch {
	case p.Droptimizer != nil:
		return p.Droptimizer.Timestamp
	case p.SimC != nil:
		return p.SimC.Timestamp
	case p.Profile != nil:
		return p.Profile.Timestamp
	}
	return time.Time{}
}
