// Package model contains domain models passed between layers.
package model

// SlotKey is the coarse slot used for eligibility and best-in-slot comparison.
type SlotKey string

// Coarse slot keys.
const (
	SlotHead     SlotKey = "head"
	SlotNeck     SlotKey = "neck"
	SlotShoulder SlotKey = "shoulder"
	SlotBack     SlotKey = "back"
	SlotChest    SlotKey = "chest"
	SlotWrist    SlotKey = "wrist"
	SlotHands    SlotKey = "hands"
	SlotWaist    SlotKey = "waist"
	SlotLegs     SlotKey = "legs"
	SlotFeet     SlotKey = "feet"
	SlotFinger   SlotKey = "finger"
	SlotTrinket  SlotKey = "trinket"
	SlotMainHand SlotKey = "main_hand"
	SlotOffHand  SlotKey = "off_hand"
	SlotTwoHand  SlotKey = "two_hand"
	SlotOneHand  SlotKey = "one_hand"
	SlotRanged   SlotKey = "ranged"
	// SlotOmni marks flexible tier tokens usable for any tier slot.
	SlotOmni SlotKey = "omni"
)

// TierSlots are the five tier-bearing slots, in display order.
var TierSlots = []SlotKey{SlotHead, SlotShoulder, SlotChest, SlotHands, SlotLegs}

// Valid reports whether s is a known slot key.
func (s SlotKey) Valid() bool {
	switch s {
	case SlotHead, SlotNeck, SlotShoulder, SlotBack, SlotChest, SlotWrist, SlotHands,
		SlotWaist, SlotLegs, SlotFeet, SlotFinger, SlotTrinket, SlotMainHand, SlotOffHand,
		SlotTwoHand, SlotOneHand, SlotRanged, SlotOmni:
		return true
	}
	return false
}

// IsDual reports whether a character can equip two different items of this slot.
func (s SlotKey) IsDual() bool {
	return s == SlotFinger || s == SlotTrinket
}

// EquippedSlot is the fine-grained slot an item occupies (finger1 vs finger2).
type EquippedSlot string

// Fine-grained equipped slots that differ from their coarse key.
const (
	EquippedFinger1  EquippedSlot = "finger1"
	EquippedFinger2  EquippedSlot = "finger2"
	EquippedTrinket1 EquippedSlot = "trinket1"
	EquippedTrinket2 EquippedSlot = "trinket2"
)

// ArmorType of wearable items. Empty for items without one.
type ArmorType string

const (
	ArmorCloth   ArmorType = "cloth"
	ArmorLeather ArmorType = "leather"
	ArmorMail    ArmorType = "mail"
	ArmorPlate   ArmorType = "plate"
)

// RaidDifficulty of a raid session or droptimizer report.
type RaidDifficulty string

const (
	DifficultyLFR    RaidDifficulty = "LFR"
	DifficultyNormal RaidDifficulty = "Normal"
	DifficultyHeroic RaidDifficulty = "Heroic"
	DifficultyMythic RaidDifficulty = "Mythic"
)

// GearSource tags where a GearItem instance was observed.
type GearSource string

const (
	SourceEquipped   GearSource = "equipped"
	SourceBag        GearSource = "bag"
	SourceGreatVault GearSource = "great-vault"
	SourceLoot       GearSource = "loot"
)

// Catalog source types that never carry an item track.
const (
	SourceTypeProfession = "profession593"
	SourceTypeSpecial    = "special"
)

// Item is a static catalog entry.
type Item struct {
	ID         int       `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	IlvlBase   int       `json:"ilvl_base" yaml:"ilvl_base"`
	IlvlNormal int       `json:"ilvl_normal" yaml:"ilvl_normal"`
	IlvlHeroic int       `json:"ilvl_heroic" yaml:"ilvl_heroic"`
	IlvlMythic int       `json:"ilvl_mythic" yaml:"ilvl_mythic"`
	Slot       SlotKey   `json:"slot" yaml:"slot"`
	ArmorType  ArmorType `json:"armor_type,omitempty" yaml:"armor_type"`
	Tierset    bool      `json:"tierset" yaml:"tierset"`
	Token      bool      `json:"token" yaml:"token"`
	VeryRare   bool      `json:"very_rare" yaml:"very_rare"`
	Catalyzed  bool      `json:"catalyzed" yaml:"catalyzed"`
	// SpecIDs lists eligible specializations; nil means every spec.
	SpecIDs    []int  `json:"spec_ids,omitempty" yaml:"spec_ids"`
	Season     int    `json:"season" yaml:"season"`
	BossID     int    `json:"boss_id" yaml:"boss_id"`
	BossName   string `json:"boss_name" yaml:"boss_name"`
	InstanceID int    `json:"instance_id" yaml:"instance_id"`
	SourceType string `json:"source_type" yaml:"source_type"`
}

// IlvlFor returns the base item level this item drops at on a difficulty.
func (i Item) IlvlFor(diff RaidDifficulty) int {
	switch diff {
	case DifficultyNormal:
		return i.IlvlNormal
	case DifficultyHeroic:
		return i.IlvlHeroic
	case DifficultyMythic:
		return i.IlvlMythic
	default:
		return i.IlvlBase
	}
}

// Ref returns the comparison-relevant subset of the item.
func (i Item) Ref() GearItemRef {
	return GearItemRef{
		ID:         i.ID,
		Name:       i.Name,
		Slot:       i.Slot,
		ArmorType:  i.ArmorType,
		Tierset:    i.Tierset,
		Token:      i.Token,
		Season:     i.Season,
		SourceType: i.SourceType,
	}
}

// GearItemRef is the lightweight copy of Item fields embedded in a GearItem.
type GearItemRef struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Slot       SlotKey   `json:"slot"`
	ArmorType  ArmorType `json:"armor_type,omitempty"`
	Tierset    bool      `json:"tierset"`
	Token      bool      `json:"token"`
	Season     int       `json:"season"`
	SourceType string    `json:"source_type,omitempty"`
}

// GearItem is an instance of an Item possessed by (or dropped for) a character.
type GearItem struct {
	Item       GearItemRef   `json:"item"`
	Source     GearSource    `json:"source"`
	ItemLevel  int           `json:"item_level"`
	EquippedIn *EquippedSlot `json:"equipped_in,omitempty"`
	ItemTrack  *ItemTrack    `json:"item_track,omitempty"`
	// BonusIDs, EnchantIDs and GemIDs are nil when the source does not expose them.
	BonusIDs   []int `json:"bonus_ids,omitempty"`
	EnchantIDs []int `json:"enchant_ids,omitempty"`
	GemIDs     []int `json:"gem_ids,omitempty"`
}

// TrackName is one of the six ordered upgrade tracks.
type TrackName string

const (
	TrackExplorer   TrackName = "Explorer"
	TrackAdventurer TrackName = "Adventurer"
	TrackVeteran    TrackName = "Veteran"
	TrackChampion   TrackName = "Champion"
	TrackHero       TrackName = "Hero"
	TrackMyth       TrackName = "Myth"
)

// Rank orders tracks lowest to highest, starting at 1. Unknown names rank 0.
func (t TrackName) Rank() int {
	switch t {
	case TrackExplorer:
		return 1
	case TrackAdventurer:
		return 2
	case TrackVeteran:
		return 3
	case TrackChampion:
		return 4
	case TrackHero:
		return 5
	case TrackMyth:
		return 6
	default:
		return 0
	}
}

// ItemTrack is the normalized quality record of a gear instance.
type ItemTrack struct {
	Name      TrackName `json:"name"`
	Level     int       `json:"level"`
	Max       int       `json:"max"`
	ItemLevel int       `json:"item_level"`
	Season    int       `json:"season"`
}

// Compare orders tracks by tier, then level within the tier, then item level.
func (t ItemTrack) Compare(o ItemTrack) int {
	if c := cmpInt(t.Name.Rank(), o.Name.Rank()); c != 0 {
		return c
	}
	if c := cmpInt(t.Level, o.Level); c != 0 {
		return c
	}
	return cmpInt(t.ItemLevel, o.ItemLevel)
}

func cmpInt(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
