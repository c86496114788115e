package types_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/lootcouncil/internal/domain/model"
	types "github.com/okian/lootcouncil/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntry(t *testing.T) {
	Convey("Given an Entry struct", t, func() {
		entry := types.Entry{
			Rank:          1,
			CharacterID:   "c-1",
			CharacterName: "Frostie",
			Score:         55,
			Highlights: model.CharAssignmentHighlights{
				DPSGain:                2500,
				IlvlDiff:               model.IlvlDiffNone,
				IsTrackUpgrade:         true,
				LootEnableTiersetBonus: model.TierNone,
				Score:                  55,
			},
		}

		Convey("When encoding it as JSON", func() {
			raw, err := json.Marshal(entry)
			So(err, ShouldBeNil)

			Convey("Then the wire names are snake case", func() {
				s := string(raw)
				So(s, ShouldContainSubstring, `"character_id":"c-1"`)
				So(s, ShouldContainSubstring, `"character_name":"Frostie"`)
				So(s, ShouldContainSubstring, `"ilvl_diff":-999`)
				So(s, ShouldContainSubstring, `"loot_enable_tierset_bonus":"none"`)
			})
		})

		Convey("When creating an entry with zero values", func() {
			zero := types.Entry{}

			Convey("Then it should have default values", func() {
				So(zero.Rank, ShouldEqual, 0)
				So(zero.CharacterID, ShouldEqual, "")
				So(zero.Score, ShouldEqual, 0)
				So(zero.Highlights.AlreadyGotIt, ShouldBeFalse)
			})
		})
	})
}

func TestRanking(t *testing.T) {
	Convey("Given a ranking", t, func() {
		Convey("When it has entries", func() {
			r := types.Ranking{LootID: "l-1", Entries: []types.Entry{
				{Rank: 1, CharacterID: "a", Score: 90},
				{Rank: 2, CharacterID: "b", Score: 10},
			}}

			Convey("Then Top returns the first", func() {
				top, ok := r.Top()
				So(ok, ShouldBeTrue)
				So(top.CharacterID, ShouldEqual, "a")
			})

			Convey("Then Entry finds a character", func() {
				e, ok := r.Entry("b")
				So(ok, ShouldBeTrue)
				So(e.Rank, ShouldEqual, 2)
				_, ok = r.Entry("z")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When it is empty", func() {
			_, ok := types.Ranking{}.Top()

			Convey("Then Top reports nothing", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}
