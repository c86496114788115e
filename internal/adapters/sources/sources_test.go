package sources_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/lootcouncil/internal/adapters/sources"
	"github.com/okian/lootcouncil/internal/domain/catalog"
	"github.com/okian/lootcouncil/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(
		[]model.Item{
			{ID: 100, Name: "Crown of Ash", Slot: model.SlotHead, Season: 1, SourceType: "raid", IlvlHeroic: 610, IlvlMythic: 623},
			{ID: 101, Name: "Band of Echoes", Slot: model.SlotFinger, Season: 1, SourceType: "raid"},
			{ID: 200, Name: "Crafted Wraps", Slot: model.SlotWrist, Season: 1, SourceType: model.SourceTypeProfession},
			{ID: 701, Name: "Arcanist Cowl", Slot: model.SlotHead, Season: 1, Tierset: true, SourceType: "raid"},
			{ID: 702, Name: "Arcanist Robe", Slot: model.SlotChest, Season: 1, SourceType: "raid"},
		},
		nil,
		[]model.CatalystMapping{{ItemID: 300, CatalyzedItemID: 702}},
	)
}

func TestDecode(t *testing.T) {
	Convey("Given raw payloads", t, func() {
		Convey("When the JSON is malformed", func() {
			_, err := sources.Decode([]byte(`{"kind":`))
			So(errors.Is(err, sources.ErrInvalidPayload), ShouldBeTrue)
		})

		Convey("When the kind is unknown", func() {
			_, err := sources.Decode([]byte(`{"kind":"wowhead","character_id":"c","timestamp":"2025-03-04T20:00:00Z"}`))
			So(errors.Is(err, sources.ErrUnknownKind), ShouldBeTrue)
		})

		Convey("When the character or timestamp is missing", func() {
			_, err := sources.Decode([]byte(`{"kind":"simc","timestamp":"2025-03-04T20:00:00Z"}`))
			So(errors.Is(err, sources.ErrInvalidPayload), ShouldBeTrue)
			_, err = sources.Decode([]byte(`{"kind":"simc","character_id":"c"}`))
			So(errors.Is(err, sources.ErrInvalidPayload), ShouldBeTrue)
		})
	})
}

func TestParse(t *testing.T) {
	ctx := context.Background()
	p := sources.NewParser(testCatalog())

	Convey("Given a droptimizer payload", t, func() {
		data := []byte(`{
			"kind": "droptimizer",
			"id": "report-1",
			"character_id": "c1",
			"timestamp": "2025-03-04T20:00:00Z",
			"raid_difficulty": "Heroic",
			"equipped": [
				{"item_id": 701, "item_level": 619, "bonus_ids": [6652, 10332], "equipped_in": "head"},
				{"item_id": 702, "item_level": 636, "upgrades_left": 1},
				{"item_id": 999, "item_level": 600}
			],
			"bag": [
				{"item_id": 101, "item_level": 616}
			],
			"weekly_chest": [
				{"item_id": 100, "item_level": 623, "difficulty": "Mythic"}
			],
			"upgrades": [{"item_id": 100, "slot": "head", "dps": 2500}]
		}`)

		parsed, err := p.Parse(ctx, data)
		So(err, ShouldBeNil)
		d := parsed.Droptimizer

		Convey("Then the snapshot is built and unknown items are skipped", func() {
			So(d, ShouldNotBeNil)
			So(parsed.SimC, ShouldBeNil)
			So(parsed.CharacterID(), ShouldEqual, "c1")
			So(parsed.Timestamp().IsZero(), ShouldBeFalse)
			So(parsed.Skipped, ShouldEqual, 1)
			So(d.ID, ShouldEqual, "report-1")
			So(len(d.Equipped), ShouldEqual, 2)
			So(len(d.Upgrades), ShouldEqual, 1)
		})

		Convey("Then tracks resolve from bonus ids, upgrade counts and difficulty", func() {
			cowl := d.Equipped[0]
			So(cowl.ItemTrack.Name, ShouldEqual, model.TrackHero)
			So(cowl.ItemTrack.Level, ShouldEqual, 4)
			So(*cowl.EquippedIn, ShouldEqual, model.EquippedSlot("head"))
			So(cowl.Source, ShouldEqual, model.SourceEquipped)

			robe := d.Equipped[1]
			So(robe.ItemTrack.Name, ShouldEqual, model.TrackMyth)
			So(robe.ItemTrack.Level, ShouldEqual, 5)
			So(robe.BonusIDs, ShouldResemble, []int{10339})

			ring := d.Bag[0]
			So(ring.Source, ShouldEqual, model.SourceBag)
			So(ring.ItemTrack.Name, ShouldEqual, model.TrackHero)
			So(ring.ItemTrack.Level, ShouldEqual, 3)

			vault := d.WeeklyChest[0]
			So(vault.Source, ShouldEqual, model.SourceGreatVault)
			So(vault.ItemTrack.Name, ShouldEqual, model.TrackMyth)
		})

		Convey("Then the tierset includes flagged and catalyzed pieces", func() {
			So(len(d.Tierset), ShouldEqual, 2)
			So(d.Tierset[0].Item.ID, ShouldEqual, 701)
			So(d.Tierset[1].Item.ID, ShouldEqual, 702)
		})
	})

	Convey("Given a profile payload with bag data", t, func() {
		data := []byte(`{
			"kind": "profile",
			"character_id": "c1",
			"timestamp": "2025-03-04T20:00:00Z",
			"equipped": [{"item_id": 200, "item_level": 619, "bonus_ids": [10332]}],
			"bag": [{"item_id": 101, "item_level": 616}]
		}`)
		parsed, err := p.Parse(ctx, data)
		So(err, ShouldBeNil)

		Convey("Then bag data is ignored and crafted gear stays track-less", func() {
			So(parsed.Profile, ShouldNotBeNil)
			So(len(parsed.Profile.Equipped), ShouldEqual, 1)
			So(parsed.Profile.Equipped[0].ItemTrack, ShouldBeNil)
			So(parsed.Profile.Tierset, ShouldBeEmpty)
		})
	})

	Convey("Given a simc entry that cannot be resolved", t, func() {
		data := []byte(`{
			"kind": "simc",
			"character_id": "c2",
			"timestamp": "2025-03-04T20:00:00Z",
			"equipped": [{"item_id": 100, "item_level": 610, "upgrades_left": 2}]
		}`)
		parsed, err := p.Parse(ctx, data)
		So(err, ShouldBeNil)

		Convey("Then the item is kept without a track", func() {
			So(len(parsed.SimC.Equipped), ShouldEqual, 1)
			So(parsed.SimC.Equipped[0].ItemTrack, ShouldBeNil)
			So(parsed.SimC.Equipped[0].ItemLevel, ShouldEqual, 610)
		})
	})
}

func TestBuildLoot(t *testing.T) {
	ctx := context.Background()
	p := sources.NewParser(testCatalog())

	Convey("Given a heroic drop reported without item level", t, func() {
		loot, err := p.BuildLoot(ctx, sources.LootRequest{ItemID: 100, RaidDifficulty: model.DifficultyHeroic, Eligible: []string{"c1"}})
		So(err, ShouldBeNil)

		Convey("Then the catalog level and the Hero track are used", func() {
			So(loot.ID, ShouldNotBeEmpty)
			So(loot.Gear.ItemLevel, ShouldEqual, 610)
			So(loot.Gear.Source, ShouldEqual, model.SourceLoot)
			So(loot.Gear.ItemTrack.Name, ShouldEqual, model.TrackHero)
			So(loot.Gear.ItemTrack.Level, ShouldEqual, 1)
			So(loot.Eligible, ShouldResemble, []string{"c1"})
			So(loot.DropDate.IsZero(), ShouldBeFalse)
		})

		Convey("Then each loot gets its own id", func() {
			other, _ := p.BuildLoot(ctx, sources.LootRequest{ItemID: 100, RaidDifficulty: model.DifficultyHeroic})
			So(other.ID, ShouldNotEqual, loot.ID)
		})
	})

	Convey("Given an unknown item", t, func() {
		_, err := p.BuildLoot(ctx, sources.LootRequest{ItemID: 4242})
		So(errors.Is(err, sources.ErrUnknownItem), ShouldBeTrue)
	})
}
