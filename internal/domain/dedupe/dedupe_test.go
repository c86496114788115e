package dedupe_test

import (
	"testing"
	"time"

	dedupe "github.com/okian/lootcouncil/internal/domain/dedupe"
	"github.com/okian/lootcouncil/internal/domain/itemtrack"
	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/internal/domain/reconcile"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2025, 3, 4, 20, 0, 0, 0, time.UTC)

func gearOf(id int, slot model.SlotKey, bonusID int, src model.GearSource) model.GearItem {
	t := itemtrack.Parse([]int{bonusID})
	return model.GearItem{
		Item:      model.GearItemRef{ID: id, Slot: slot, Season: 1},
		Source:    src,
		ItemLevel: t.ItemLevel,
		ItemTrack: t,
		BonusIDs:  []int{bonusID},
	}
}

func TestAlreadyGotIt(t *testing.T) {
	mage := model.Character{ID: "c1", Name: "Frostie", Class: model.ClassMage}

	Convey("Given a dropped Hero 1/6 ring", t, func() {
		ring := gearOf(500, model.SlotFinger, 10329, model.SourceLoot)
		loot := model.Loot{ID: "l1", Gear: ring, RaidDifficulty: model.DifficultyHeroic}

		Convey("When the character has an exact clone equipped", func() {
			clone := ring
			clone.Source = model.SourceEquipped
			src := reconcile.Sources{SimC: &model.SimC{Timestamp: now, Equipped: []model.GearItem{clone}}}

			Convey("Then it is already owned", func() {
				So(dedupe.AlreadyGotIt(loot, mage, src, nil, nil), ShouldBeTrue)
			})
		})

		Convey("When the character has the same ring at another rank in bags", func() {
			other := gearOf(500, model.SlotFinger, 10331, model.SourceBag)
			src := reconcile.Sources{SimC: &model.SimC{Timestamp: now, Bag: []model.GearItem{other}}}

			Convey("Then it is not owned", func() {
				So(dedupe.AlreadyGotIt(loot, mage, src, nil, nil), ShouldBeFalse)
			})
		})

		Convey("When only an older bag source holds the clone", func() {
			src := reconcile.Sources{
				Droptimizers: []model.Droptimizer{{Timestamp: now.Add(-10 * time.Hour), Bag: []model.GearItem{ring}}},
				SimC:         &model.SimC{Timestamp: now},
			}

			Convey("Then the newer bag snapshot wins and it is not owned", func() {
				So(dedupe.AlreadyGotIt(loot, mage, src, nil, nil), ShouldBeFalse)
			})
		})

		Convey("When the profile has it equipped", func() {
			src := reconcile.Sources{Profile: &model.ExternalProfile{Timestamp: now, Equipped: []model.GearItem{ring}}}

			Convey("Then it is owned", func() {
				So(dedupe.AlreadyGotIt(loot, mage, src, nil, nil), ShouldBeTrue)
			})
		})

		Convey("When the same ring is already assigned", func() {
			assigned := []model.LootWithAssigned{{Loot: model.Loot{ID: "l0", Gear: ring}, AssignedAt: now}}

			Convey("Then it is owned", func() {
				So(dedupe.AlreadyGotIt(loot, mage, reconcile.Sources{}, assigned, nil), ShouldBeTrue)
			})
		})

		Convey("When the ring only sits in the great vault", func() {
			src := reconcile.Sources{SimC: &model.SimC{Timestamp: now, WeeklyChest: []model.GearItem{ring}}}

			Convey("Then it is not owned", func() {
				So(dedupe.AlreadyGotIt(loot, mage, src, nil, nil), ShouldBeFalse)
			})
		})
	})

	Convey("Given an omni token", t, func() {
		omni := gearOf(900, model.SlotOmni, 10335, model.SourceLoot)
		omni.Item.Token = true
		loot := model.Loot{Gear: omni}
		src := reconcile.Sources{SimC: &model.SimC{Timestamp: now, Bag: []model.GearItem{omni}}}
		assigned := []model.LootWithAssigned{{Loot: loot}}

		Convey("Then it is never owned", func() {
			So(dedupe.AlreadyGotIt(loot, mage, src, assigned, nil), ShouldBeFalse)
		})
	})

	Convey("Given a class helm token", t, func() {
		token := gearOf(700, model.SlotHead, 10330, model.SourceLoot)
		token.Item.Token = true
		loot := model.Loot{Gear: token}
		tokens := []model.TokenMapping{
			{ItemID: 701, TokenID: 700, ClassID: model.ClassMage},
			{ItemID: 702, TokenID: 700, ClassID: model.ClassWarrior},
		}

		Convey("When the mage already wears the mapped helm at the same rank", func() {
			helm := gearOf(701, model.SlotHead, 10330, model.SourceEquipped)
			helm.Item.Tierset = true
			src := reconcile.Sources{SimC: &model.SimC{Timestamp: now, Equipped: []model.GearItem{helm}}}

			Convey("Then the token is owned indirectly", func() {
				So(dedupe.AlreadyGotIt(loot, mage, src, nil, tokens), ShouldBeTrue)

				d := dedupe.NewDetector(dedupe.WithTokenMapping(tokens))
				So(d.AlreadyGotIt(loot, mage, src, nil), ShouldBeTrue)
			})

			Convey("Then a warrior wearing the mage helm does not own it", func() {
				warrior := model.Character{ID: "c2", Class: model.ClassWarrior}
				So(dedupe.AlreadyGotIt(loot, warrior, src, nil, tokens), ShouldBeFalse)
			})
		})

		Convey("When no mapping is known", func() {
			helm := gearOf(701, model.SlotHead, 10330, model.SourceEquipped)
			src := reconcile.Sources{SimC: &model.SimC{Timestamp: now, Equipped: []model.GearItem{helm}}}

			Convey("Then only direct ownership counts", func() {
				So(dedupe.AlreadyGotIt(loot, mage, src, nil, nil), ShouldBeFalse)
			})
		})
	})
}

func TestResolveTokenEquivalent(t *testing.T) {
	Convey("Given a token and a mapping", t, func() {
		token := gearOf(700, model.SlotHead, 10330, model.SourceLoot)
		token.Item.Token = true
		tokens := []model.TokenMapping{{ItemID: 701, TokenID: 700, ClassID: model.ClassMage}}

		Convey("Then the synthetic piece carries the token's track", func() {
			piece := dedupe.ResolveTokenEquivalent(token, model.ClassMage, tokens)
			So(piece, ShouldNotBeNil)
			So(piece.Item.ID, ShouldEqual, 701)
			So(piece.Item.Tierset, ShouldBeTrue)
			So(piece.Item.Token, ShouldBeFalse)
			So(*piece.ItemTrack, ShouldResemble, *token.ItemTrack)
			So(piece.ItemTrack, ShouldNotPointTo, token.ItemTrack)
			So(piece.Item.Slot, ShouldEqual, model.SlotHead)
		})

		Convey("Then other classes and non-tokens resolve to nil", func() {
			So(dedupe.ResolveTokenEquivalent(token, model.ClassRogue, tokens), ShouldBeNil)
			plain := token
			plain.Item.Token = false
			So(dedupe.ResolveTokenEquivalent(plain, model.ClassMage, tokens), ShouldBeNil)
		})
	})
}
