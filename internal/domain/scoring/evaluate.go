package scoring

import (
	"github.com/okian/lootcouncil/internal/domain/catalog"
	"github.com/okian/lootcouncil/internal/domain/dedupe"
	"github.com/okian/lootcouncil/internal/domain/gear"
	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/internal/domain/reconcile"
)

// Evaluate derives the highlights of one (character, loot) pair. Score is
// left at zero; EvalScore or Rank fill it in. A nil catalog disables token
// and catalyst lookups; a nil deduper falls back to direct ownership only.
func Evaluate(in Input, cat *catalog.Catalog, d dedupe.Deduper) model.CharAssignmentHighlights {
	loot := in.Loot.Gear
	ids := lootIDs(loot, in.Character.Class, cat)

	h := model.CharAssignmentHighlights{
		IsMain:    in.Character.Main,
		DPSGain:   DPSGain(in.Loot, ids, in.Sources.Droptimizers),
		GearIsBis: IsBis(ids, in.Character.Class, in.Bis),
		IlvlDiff:  model.IlvlDiffNone,
	}

	best := gear.BestItemsInSlot(loot.Item.Slot, reconcile.GearPool(in.Sources, in.Assigned))
	if ref, ok := gear.Weakest(best); ok {
		h.IlvlDiff = loot.ItemLevel - ref.ItemLevel
		h.IsTrackUpgrade = gear.Compare(loot, ref) > 0
	} else {
		h.IsTrackUpgrade = true
	}

	var isTier reconcile.TierPredicate
	if cat != nil {
		isTier = cat.IsTierPiece
	}
	pieces := reconcile.TiersetPieces(in.Sources, in.Assigned, loot.Item.Season, isTier)
	h.LootEnableTiersetBonus = gear.TierSetCompletion(loot, pieces)

	if d != nil {
		h.AlreadyGotIt = d.AlreadyGotIt(in.Loot, in.Character, in.Sources, in.Assigned)
	} else {
		h.AlreadyGotIt = dedupe.AlreadyGotIt(in.Loot, in.Character, in.Sources, in.Assigned, nil)
	}
	return h
}

// lootIDs returns the loot id plus, for class tokens, the piece it maps to.
func lootIDs(loot model.GearItem, class model.WowClass, cat *catalog.Catalog) []int {
	ids := []int{loot.Item.ID}
	if loot.Item.Token && cat != nil {
		if piece, ok := cat.TokenPiece(loot.Item.ID, class); ok {
			ids = append(ids, piece)
		}
	}
	return ids
}

// DPSGain returns the largest upgrade any droptimizer projects for one of
// ids. When both the loot and a report carry a difficulty they must match.
func DPSGain(loot model.Loot, ids []int, reports []model.Droptimizer) float64 {
	var best float64
	for _, r := range reports {
		if loot.RaidDifficulty != "" && r.RaidDifficulty != "" && r.RaidDifficulty != loot.RaidDifficulty {
			continue
		}
		for _, u := range r.Upgrades {
			if containsID(ids, u.ItemID) && u.DPS > best {
				best = u.DPS
			}
		}
	}
	return best
}

// IsBis reports whether one of ids is best-in-slot for a spec of class.
// Entries without specs apply to everyone.
func IsBis(ids []int, class model.WowClass, entries []model.BisEntry) bool {
	for _, e := range entries {
		if !containsID(ids, e.ItemID) {
			continue
		}
		if len(e.SpecIDs) == 0 {
			return true
		}
		for _, spec := range e.SpecIDs {
			if class.HasSpec(spec) {
				return true
			}
		}
	}
	return false
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
