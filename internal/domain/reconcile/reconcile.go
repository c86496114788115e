package reconcile

import (
	"github.com/okian/lootcouncil/internal/domain/model"
)

// TierPredicate reports whether an item id is a tierset piece. A nil
// predicate relies on the Tierset and Token flags alone.
type TierPredicate func(itemID int) bool

// TiersetPieces returns the character's current tierset pieces for season:
// the tierset slice of the most recent source, plus every assigned loot of
// the season that is a tier piece or token. Pieces are distinct per slot;
// omni tokens always count.
func TiersetPieces(src Sources, assigned []model.LootWithAssigned, season int, isTier TierPredicate) []model.GearItem {
	var pool []model.GearItem
	if latest, ok := Latest(src.Snapshots(), Any); ok {
		for _, g := range latest.Tierset {
			if season == 0 || g.Item.Season == season {
				pool = append(pool, g)
			}
		}
	}
	for _, l := range assigned {
		g := l.Gear
		if season != 0 && g.Item.Season != season {
			continue
		}
		if g.Item.Tierset || g.Item.Token || (isTier != nil && isTier(g.Item.ID)) {
			pool = append(pool, g)
		}
	}

	out := make([]model.GearItem, 0, len(pool))
	taken := make(map[model.SlotKey]struct{}, len(pool))
	for _, g := range pool {
		if g.Item.Slot != model.SlotOmni {
			if _, dup := taken[g.Item.Slot]; dup {
				continue
			}
			taken[g.Item.Slot] = struct{}{}
		}
		out = append(out, g)
	}
	return out
}

// VaultItems returns the great vault choices of the most recent source that
// exposes them.
func VaultItems(src Sources) []model.GearItem {
	latest, ok := Latest(src.Snapshots(), WithVault)
	if !ok {
		return nil
	}
	return latest.Vault
}

// GearPool unions equipped and bag items from every snapshot with assigned
// loot. It is the candidate pool for best-in-slot reduction.
func GearPool(src Sources, assigned []model.LootWithAssigned) []model.GearItem {
	var pool []model.GearItem
	for _, s := range src.Snapshots() {
		pool = append(pool, s.Equipped...)
		pool = append(pool, s.Bag...)
	}
	for _, l := range assigned {
		pool = append(pool, l.Gear)
	}
	return pool
}
