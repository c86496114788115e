package model

import "time"

// SourceKind names one of the independently updated gear sources.
type SourceKind string

const (
	KindDroptimizer SourceKind = "droptimizer"
	KindSimC        SourceKind = "simc"
	KindProfile     SourceKind = "profile"
)

// SourceKinds lists every kind in reporting order.
var SourceKinds = []SourceKind{KindDroptimizer, KindSimC, KindProfile}

// Upgrade is a droptimizer projection: DPS gained by equipping an item.
type Upgrade struct {
	ItemID int     `json:"item_id"`
	Slot   SlotKey `json:"slot"`
	DPS    float64 `json:"dps"`
}

// Droptimizer is a simulation report snapshot.
type Droptimizer struct {
	ID             string         `json:"id"`
	CharacterID    string         `json:"character_id"`
	Timestamp      time.Time      `json:"timestamp"`
	RaidDifficulty RaidDifficulty `json:"raid_difficulty,omitempty"`
	Equipped       []GearItem     `json:"equipped"`
	Bag            []GearItem     `json:"bag"`
	Tierset        []GearItem     `json:"tierset"`
	WeeklyChest    []GearItem     `json:"weekly_chest"`
	Upgrades       []Upgrade      `json:"upgrades"`
}

// SimC is an addon export snapshot.
type SimC struct {
	CharacterID string     `json:"character_id"`
	Timestamp   time.Time  `json:"timestamp"`
	Equipped    []GearItem `json:"equipped"`
	Bag         []GearItem `json:"bag"`
	Tierset     []GearItem `json:"tierset"`
	WeeklyChest []GearItem `json:"weekly_chest"`
}

// ExternalProfile is an armory API snapshot. It exposes no bag or vault data.
type ExternalProfile struct {
	CharacterID string     `json:"character_id"`
	Timestamp   time.Time  `json:"timestamp"`
	Equipped    []GearItem `json:"equipped"`
	Tierset     []GearItem `json:"tierset"`
}
