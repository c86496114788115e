// Package itemtrack maps raw bonus ids, or an item level plus a difficulty or
// upgrade delta, to a normalized upgrade track.
package itemtrack

import (
	"github.com/okian/lootcouncil/internal/domain/model"
)

// Excluded reports whether items of this catalog source type never carry a
// track. Callers treat such items as track-less.
func Excluded(sourceType string) bool {
	switch sourceType {
	case model.SourceTypeProfession, model.SourceTypeSpecial:
		return true
	default:
		return false
	}
}

// IsTrackBonus reports whether id is a track-defining bonus id.
func IsTrackBonus(id int) bool {
	_, ok := byBonusID[id]
	return ok
}

// Parse scans bonus ids for a track-defining id. It returns nil when none of
// them define a track, e.g. crafted gear carrying only stat-roll bonuses.
func Parse(bonusIDs []int) *model.ItemTrack {
	for _, id := range bonusIDs {
		if e, ok := byBonusID[id]; ok {
			return tracks[e.def].track(e.level)
		}
	}
	return nil
}

// TrackForDifficulty returns the track raid loot drops on for a difficulty.
func TrackForDifficulty(diff model.RaidDifficulty) (model.TrackName, bool) {
	name, ok := difficultyTracks[diff]
	return name, ok
}

// ApplyByIlvlAndDiff synthesizes a track for an item known only by item level
// and raid difficulty. The rank is the highest one whose item level does not
// exceed ilvl, floored at rank 1. It returns a copy of bonusIDs carrying the
// track bonus id in place of any previous one.
func ApplyByIlvlAndDiff(season int, bonusIDs []int, ilvl int, diff model.RaidDifficulty) ([]int, *model.ItemTrack) {
	name, ok := TrackForDifficulty(diff)
	if !ok {
		return bonusIDs, nil
	}
	def, ok := findDef(season, name)
	if !ok {
		return bonusIDs, nil
	}

	level := 1
	for lvl := 1; lvl <= def.max(); lvl++ {
		if def.ilvls[lvl-1] <= ilvl {
			level = lvl
		}
	}
	return withTrackBonus(bonusIDs, def.bonusID(level)), def.track(level)
}

// ApplyByIlvlAndDelta resolves the track of an item reported as "N of M
// upgrades" where delta = M-N. For each track of the season, highest tier
// first, it walks back delta ranks from the max and accepts the track whose
// rank sits at exactly ilvl.
func ApplyByIlvlAndDelta(season int, bonusIDs []int, ilvl, delta int) ([]int, *model.ItemTrack) {
	if delta < 0 {
		return bonusIDs, nil
	}
	for _, def := range tracks {
		if def.season != season {
			continue
		}
		level := def.max() - delta
		if level < 1 {
			continue
		}
		if def.ilvls[level-1] == ilvl {
			return withTrackBonus(bonusIDs, def.bonusID(level)), def.track(level)
		}
	}
	return bonusIDs, nil
}

// Resolve sets g.ItemTrack from g's bonus ids unless the item's source type
// is excluded. It reports whether a track was found.
func Resolve(g *model.GearItem) bool {
	if g == nil || Excluded(g.Item.SourceType) {
		return false
	}
	if g.ItemTrack != nil {
		return true
	}
	g.ItemTrack = Parse(g.BonusIDs)
	return g.ItemTrack != nil
}

func withTrackBonus(bonusIDs []int, id int) []int {
	out := make([]int, 0, len(bonusIDs)+1)
	for _, b := range bonusIDs {
		if !IsTrackBonus(b) {
			out = append(out, b)
		}
	}
	return append(out, id)
}
