package gear

import (
	"sort"

	"github.com/okian/lootcouncil/internal/domain/model"
)

// BestItemsInSlot returns the best items of pool for slot, best first.
// Omni concatenates the results of the five tier slots. Finger and trinket
// return up to two items with distinct ids; every other slot at most one.
func BestItemsInSlot(slot model.SlotKey, pool []model.GearItem) []model.GearItem {
	if slot == model.SlotOmni {
		var out []model.GearItem
		for _, s := range model.TierSlots {
			out = append(out, BestItemsInSlot(s, pool)...)
		}
		return out
	}

	var inSlot []model.GearItem
	for _, g := range pool {
		if g.Item.Slot == slot {
			inSlot = append(inSlot, g)
		}
	}
	if len(inSlot) == 0 {
		return nil
	}
	sort.SliceStable(inSlot, func(i, j int) bool {
		return Compare(inSlot[i], inSlot[j]) > 0
	})

	if !slot.IsDual() {
		return inSlot[:1]
	}
	out := make([]model.GearItem, 0, 2)
	seen := make(map[int]struct{}, 2)
	for _, g := range inSlot {
		if _, dup := seen[g.Item.ID]; dup {
			continue
		}
		seen[g.Item.ID] = struct{}{}
		out = append(out, g)
		if len(out) == 2 {
			break
		}
	}
	return out
}

// Weakest returns the lowest-ranked item of items, the one a new drop would
// replace. ok is false for an empty list.
func Weakest(items []model.GearItem) (model.GearItem, bool) {
	if len(items) == 0 {
		return model.GearItem{}, false
	}
	w := items[0]
	for _, g := range items[1:] {
		if Compare(g, w) < 0 {
			w = g
		}
	}
	return w, true
}

// TierSetCompletion returns the set bonus newly enabled by acquiring loot on
// top of currentPieces: the 2nd distinct piece enables 2p, the 4th enables 4p.
func TierSetCompletion(loot model.GearItem, currentPieces []model.GearItem) model.TierBonus {
	if !loot.Item.Tierset && !loot.Item.Token {
		return model.TierNone
	}
	if loot.Item.Slot != model.SlotOmni {
		for _, p := range currentPieces {
			if p.Item.Slot == loot.Item.Slot {
				return model.TierNone
			}
		}
	}
	switch len(currentPieces) {
	case 1:
		return model.Tier2p
	case 3:
		return model.Tier4p
	default:
		return model.TierNone
	}
}
