package scoring

import (
	"math"
	"sort"

	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/internal/domain/types"
)

// Default score multipliers.
const (
	DefaultDPSFloor   = 0.01
	DefaultTrack      = 1.1
	DefaultTier2p     = 2
	DefaultTier4p     = 4
	scoreScale        = 100
	neutralMultiplier = 1
)

// Weights are the multipliers folded into a score.
type Weights struct {
	// DPSFloor replaces the normalized DPS when there is no gain to normalize.
	DPSFloor float64 `json:"dps_floor"`
	Track    float64 `json:"track"`
	Tier2p   float64 `json:"tier_2p"`
	Tier4p   float64 `json:"tier_4p"`
	// BIS is added to the score of best-in-slot items. It stays 0 until
	// officers agree on a value.
	BIS float64 `json:"bis"`
}

// DefaultWeights returns the stock multipliers.
func DefaultWeights() Weights {
	return Weights{
		DPSFloor: DefaultDPSFloor,
		Track:    DefaultTrack,
		Tier2p:   DefaultTier2p,
		Tier4p:   DefaultTier4p,
	}
}

func (w Weights) withDefaults() Weights {
	d := DefaultWeights()
	if w.DPSFloor <= 0 {
		w.DPSFloor = d.DPSFloor
	}
	if w.Track <= 0 {
		w.Track = d.Track
	}
	if w.Tier2p <= 0 {
		w.Tier2p = d.Tier2p
	}
	if w.Tier4p <= 0 {
		w.Tier4p = d.Tier4p
	}
	return w
}

// EvalScore folds highlights into an integer score. Owned loot scores 0.
// The DPS gain is normalized against maxDPS, the largest gain among all
// candidates; without a positive gain or maximum the floor is used instead.
func EvalScore(h model.CharAssignmentHighlights, maxDPS float64, w Weights) int {
	if h.AlreadyGotIt {
		return 0
	}
	w = w.withDefaults()

	normalized := w.DPSFloor
	if h.DPSGain > 0 && maxDPS > 0 {
		normalized = h.DPSGain / maxDPS
	}

	tier := float64(neutralMultiplier)
	switch h.LootEnableTiersetBonus {
	case model.Tier4p:
		tier = w.Tier4p
	case model.Tier2p:
		tier = w.Tier2p
	}

	track := float64(neutralMultiplier)
	if h.IsTrackUpgrade {
		track = w.Track
	}

	var bis float64
	if h.GearIsBis {
		bis = w.BIS
	}
	return int(math.Round(normalized*tier*track*scoreScale + bis))
}

// MaxDPSGain returns the largest DPS gain among results.
func MaxDPSGain(results []Result) float64 {
	var m float64
	for _, r := range results {
		if r.Highlights.DPSGain > m {
			m = r.Highlights.DPSGain
		}
	}
	return m
}

// Rank scores every result against the batch maximum and orders them:
// score, best-in-slot first, track upgrades first, non-owners first, then
// character name.
func Rank(results []Result, w Weights) []types.Entry {
	maxDPS := MaxDPSGain(results)
	entries := make([]types.Entry, 0, len(results))
	for _, r := range results {
		h := r.Highlights
		h.Score = EvalScore(h, maxDPS, w)
		entries = append(entries, types.Entry{
			CharacterID:   r.CharacterID,
			CharacterName: r.CharacterName,
			Score:         h.Score,
			Highlights:    h,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// Less reports whether a ranks before b.
func Less(a, b types.Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	ha, hb := a.Highlights, b.Highlights
	if ha.GearIsBis != hb.GearIsBis {
		return ha.GearIsBis
	}
	if ha.IsTrackUpgrade != hb.IsTrackUpgrade {
		return ha.IsTrackUpgrade
	}
	if ha.AlreadyGotIt != hb.AlreadyGotIt {
		return !ha.AlreadyGotIt
	}
	return a.CharacterName < b.CharacterName
}
