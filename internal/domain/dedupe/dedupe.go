// Package dedupe detects whether a character already owns a dropped item,
// directly or through the token it converts into.
package dedupe

import (
	"github.com/okian/lootcouncil/internal/domain/gear"
	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/internal/domain/reconcile"
)

// Deduper decides ownership of a loot for one character.
type Deduper interface {
	// AlreadyGotIt reports whether char already has loot equipped, bagged,
	// pending through an assignment, or as the piece its token maps to.
	AlreadyGotIt(loot model.Loot, char model.Character, src reconcile.Sources, assigned []model.LootWithAssigned) bool
}

// Detector implements Deduper with a fixed token mapping.
type Detector struct {
	tokens []model.TokenMapping
}

// NewDetector creates a Detector configured by opts.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AlreadyGotIt implements Deduper.
func (d *Detector) AlreadyGotIt(loot model.Loot, char model.Character, src reconcile.Sources, assigned []model.LootWithAssigned) bool {
	return AlreadyGotIt(loot, char, src, assigned, d.tokens)
}

// AlreadyGotIt reports whether char owns an equivalent of loot. Omni tokens
// are never owned. The pool is built from equipped and bag items of the most
// recent source with bag data, assigned loot, and profile-equipped items.
func AlreadyGotIt(loot model.Loot, char model.Character, src reconcile.Sources, assigned []model.LootWithAssigned, tokens []model.TokenMapping) bool {
	if loot.Gear.Item.Slot == model.SlotOmni {
		return false
	}

	ids := map[int]struct{}{loot.Gear.Item.ID: {}}
	var equivalent *model.GearItem
	if loot.Gear.Item.Token {
		if equivalent = ResolveTokenEquivalent(loot.Gear, char.Class, tokens); equivalent != nil {
			ids[equivalent.Item.ID] = struct{}{}
		}
	}

	pool := CandidatePool(ids, src, assigned)
	if gear.ContainsSame(pool, loot.Gear) {
		return true
	}
	return equivalent != nil && gear.ContainsSame(pool, *equivalent)
}

// CandidatePool collects every possessed instance whose item id is in ids.
func CandidatePool(ids map[int]struct{}, src reconcile.Sources, assigned []model.LootWithAssigned) []model.GearItem {
	var pool []model.GearItem
	keep := func(items []model.GearItem) {
		for _, g := range items {
			if _, ok := ids[g.Item.ID]; ok {
				pool = append(pool, g)
			}
		}
	}

	if latest, ok := reconcile.Latest(src.Snapshots(), reconcile.WithBag); ok {
		keep(latest.Equipped)
		keep(latest.Bag)
	}
	for _, l := range assigned {
		keep([]model.GearItem{l.Gear})
	}
	if src.Profile != nil {
		keep(src.Profile.Equipped)
	}
	return pool
}

// ResolveTokenEquivalent builds the tierset piece a token converts into for
// class, carrying the token's track and item level. It returns nil when the
// loot is not a token or no mapping exists for the class.
func ResolveTokenEquivalent(loot model.GearItem, class model.WowClass, tokens []model.TokenMapping) *model.GearItem {
	if !loot.Item.Token {
		return nil
	}
	for _, m := range tokens {
		if m.TokenID != loot.Item.ID || m.ClassID != class {
			continue
		}
		piece := loot
		piece.Item.ID = m.ItemID
		piece.Item.Name = ""
		piece.Item.Token = false
		piece.Item.Tierset = true
		if loot.ItemTrack != nil {
			t := *loot.ItemTrack
			piece.ItemTrack = &t
		}
		piece.BonusIDs = append([]int(nil), loot.BonusIDs...)
		return &piece
	}
	return nil
}
