package catalog_test

import (
	"testing"

	"github.com/okian/lootcouncil/internal/domain/catalog"
	"github.com/okian/lootcouncil/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalog(t *testing.T) {
	Convey("Given a small catalog", t, func() {
		items := []model.Item{
			{ID: 30, Name: "Mage Hood", Slot: model.SlotHead, Tierset: true, Season: 1},
			{ID: 10, Name: "Dreadful Helm Token", Slot: model.SlotHead, Token: true, Season: 1},
			{ID: 20, Name: "Ring", Slot: model.SlotFinger, Season: 1},
			{ID: 40, Name: "Catalyzed Robe", Slot: model.SlotChest, Season: 1},
		}
		tokens := []model.TokenMapping{{ItemID: 30, TokenID: 10, ClassID: model.ClassMage}}
		catalysts := []model.CatalystMapping{{ItemID: 50, EncounterID: 2607, CatalyzedItemID: 40}}
		cat := catalog.New(items, tokens, catalysts)

		Convey("Then items are looked up by id", func() {
			it, ok := cat.Item(20)
			So(ok, ShouldBeTrue)
			So(it.Name, ShouldEqual, "Ring")

			_, ok = cat.Item(999)
			So(ok, ShouldBeFalse)
			So(cat.Len(), ShouldEqual, 4)
		})

		Convey("Then listings are ordered by id", func() {
			all := cat.Items()
			So(all[0].ID, ShouldEqual, 10)
			So(all[3].ID, ShouldEqual, 40)

			tier := cat.TiersetAndTokenList()
			So(len(tier), ShouldEqual, 2)
			So(tier[0].ID, ShouldEqual, 10)
			So(tier[1].ID, ShouldEqual, 30)
		})

		Convey("Then tokens resolve per class", func() {
			id, ok := cat.TokenPiece(10, model.ClassMage)
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, 30)

			_, ok = cat.TokenPiece(10, model.ClassWarrior)
			So(ok, ShouldBeFalse)
		})

		Convey("Then catalyzed items count as tier pieces", func() {
			So(cat.IsTierPiece(30), ShouldBeTrue)
			So(cat.IsTierPiece(40), ShouldBeTrue)
			So(cat.IsTierPiece(20), ShouldBeFalse)
		})

		Convey("Then mappings are returned as copies", func() {
			m := cat.ItemToTiersetMapping()
			m[0].ItemID = 0
			So(cat.ItemToTiersetMapping()[0].ItemID, ShouldEqual, 30)
			So(cat.ItemToCatalystMapping()[0].EncounterID, ShouldEqual, 2607)
		})
	})
}
