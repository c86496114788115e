package model

import "time"

// TierBonus is the set bonus a loot would newly enable.
type TierBonus string

const (
	TierNone TierBonus = "none"
	Tier2p   TierBonus = "2p"
	Tier4p   TierBonus = "4p"
)

// IlvlDiffNone marks a character without any comparable item in the slot.
const IlvlDiffNone = -999

// Loot is a single dropped item instance tied to a raid session.
type Loot struct {
	ID             string         `json:"id"`
	RaidSessionID  string         `json:"raid_session_id"`
	Gear           GearItem       `json:"gear"`
	RaidDifficulty RaidDifficulty `json:"raid_difficulty"`
	DropDate       time.Time      `json:"drop_date"`
	// Eligible holds the ids of characters who may receive the item.
	Eligible []string `json:"eligible"`
}

// LootWithAssigned is a loot plus its assignment state.
type LootWithAssigned struct {
	Loot
	AssignedCharacterID *string `json:"assigned_character_id,omitempty"`
	// AssignedHighlights is frozen at assignment time for audit.
	AssignedHighlights *CharAssignmentHighlights `json:"assigned_highlights,omitempty"`
	AssignedAt         time.Time                 `json:"assigned_at"`
}

// CharAssignmentHighlights is the scoring output for one (character, loot) pair.
type CharAssignmentHighlights struct {
	IsMain                 bool      `json:"is_main"`
	DPSGain                float64   `json:"dps_gain"`
	LootEnableTiersetBonus TierBonus `json:"loot_enable_tierset_bonus"`
	IlvlDiff               int       `json:"ilvl_diff"`
	GearIsBis              bool      `json:"gear_is_bis"`
	IsTrackUpgrade         bool      `json:"is_track_upgrade"`
	AlreadyGotIt           bool      `json:"already_got_it"`
	Score                  int       `json:"score"`
}

// BisEntry marks an item as best-in-slot for some specs.
type BisEntry struct {
	ItemID  int   `json:"item_id" yaml:"item_id"`
	SpecIDs []int `json:"spec_ids" yaml:"spec_ids"`
}

// TokenMapping links a class token to the tierset piece it converts into.
type TokenMapping struct {
	ItemID  int      `json:"item_id" yaml:"item_id"`
	TokenID int      `json:"token_id" yaml:"token_id"`
	ClassID WowClass `json:"class_id" yaml:"class_id"`
}

// CatalystMapping links a raid item to its catalyzed tierset version.
type CatalystMapping struct {
	ItemID          int `json:"item_id" yaml:"item_id"`
	EncounterID     int `json:"encounter_id" yaml:"encounter_id"`
	CatalyzedItemID int `json:"catalyzed_item_id" yaml:"catalyzed_item_id"`
}
