package itemtrack

import "github.com/okian/lootcouncil/internal/domain/model"

// trackDef describes one upgrade track of a season. Rank n (1-based) uses
// bonus id firstBonusID+n-1 and item level ilvls[n-1].
type trackDef struct {
	name         model.TrackName
	season       int
	firstBonusID int
	ilvls        []int
}

func (d trackDef) max() int { return len(d.ilvls) }

func (d trackDef) track(level int) *model.ItemTrack {
	return &model.ItemTrack{
		Name:      d.name,
		Level:     level,
		Max:       d.max(),
		ItemLevel: d.ilvls[level-1],
		Season:    d.season,
	}
}

func (d trackDef) bonusID(level int) int { return d.firstBonusID + level - 1 }

// Season 1 rank item levels. Season 2 shifts every rank up.
var (
	explorerS1   = []int{558, 561, 564, 567, 571, 574, 577, 580}
	adventurerS1 = []int{571, 574, 577, 580, 584, 587, 590, 593}
	veteranS1    = []int{584, 587, 590, 593, 597, 600, 603, 606}
	championS1   = []int{597, 600, 603, 606, 610, 613, 616, 619}
	heroS1       = []int{610, 613, 616, 619, 623, 626}
	mythS1       = []int{623, 626, 629, 632, 636, 639}
)

const seasonTwoShift = 39

func shifted(ilvls []int, by int) []int {
	out := make([]int, len(ilvls))
	for i, v := range ilvls {
		out[i] = v + by
	}
	return out
}

// tracks holds every known track, highest tier first within a season.
var tracks = []trackDef{ //nolint:gochecknoglobals // static reference table
	{name: model.TrackMyth, season: 1, firstBonusID: 10335, ilvls: mythS1},
	{name: model.TrackHero, season: 1, firstBonusID: 10329, ilvls: heroS1},
	{name: model.TrackChampion, season: 1, firstBonusID: 10313, ilvls: championS1},
	{name: model.TrackVeteran, season: 1, firstBonusID: 10341, ilvls: veteranS1},
	{name: model.TrackAdventurer, season: 1, firstBonusID: 10305, ilvls: adventurerS1},
	{name: model.TrackExplorer, season: 1, firstBonusID: 10321, ilvls: explorerS1},

	{name: model.TrackMyth, season: 2, firstBonusID: 12356, ilvls: shifted(mythS1, seasonTwoShift)},
	{name: model.TrackHero, season: 2, firstBonusID: 12350, ilvls: shifted(heroS1, seasonTwoShift)},
	{name: model.TrackChampion, season: 2, firstBonusID: 12290, ilvls: shifted(championS1, seasonTwoShift)},
	{name: model.TrackVeteran, season: 2, firstBonusID: 12282, ilvls: shifted(veteranS1, seasonTwoShift)},
	{name: model.TrackAdventurer, season: 2, firstBonusID: 12274, ilvls: shifted(adventurerS1, seasonTwoShift)},
	{name: model.TrackExplorer, season: 2, firstBonusID: 12265, ilvls: shifted(explorerS1, seasonTwoShift)},
}

type bonusEntry struct {
	def   int // index into tracks
	level int
}

var byBonusID = indexBonusIDs() //nolint:gochecknoglobals // derived from tracks

func indexBonusIDs() map[int]bonusEntry {
	idx := make(map[int]bonusEntry)
	for i, d := range tracks {
		for lvl := 1; lvl <= d.max(); lvl++ {
			idx[d.bonusID(lvl)] = bonusEntry{def: i, level: lvl}
		}
	}
	return idx
}

// difficultyTracks maps a raid difficulty to the track its loot drops on.
var difficultyTracks = map[model.RaidDifficulty]model.TrackName{ //nolint:gochecknoglobals // static reference table
	model.DifficultyLFR:    model.TrackVeteran,
	model.DifficultyNormal: model.TrackChampion,
	model.DifficultyHeroic: model.TrackHero,
	model.DifficultyMythic: model.TrackMyth,
}

func findDef(season int, name model.TrackName) (trackDef, bool) {
	for _, d := range tracks {
		if d.season == season && d.name == name {
			return d, true
		}
	}
	return trackDef{}, false
}
