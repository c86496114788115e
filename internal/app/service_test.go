package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/lootcouncil/internal/adapters/sources"
	service "github.com/okian/lootcouncil/internal/app"
	"github.com/okian/lootcouncil/internal/domain/catalog"
	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var t0 = time.Date(2025, 3, 4, 20, 0, 0, 0, time.UTC)

func testCatalog() *catalog.Catalog {
	return catalog.New([]model.Item{
		{ID: 100, Name: "Crown of Ash", Slot: model.SlotHead, Season: 1, SourceType: "raid",
			IlvlHeroic: 610, IlvlMythic: 623, SpecIDs: []int{62, 63, 64}},
		{ID: 101, Name: "Old Hood", Slot: model.SlotHead, Season: 1, SourceType: "raid"},
	}, nil, nil)
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["catalogItems"], ShouldEqual, 0)
			So(stats["staleAfter"], ShouldEqual, "24h0m0s")
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(8),
			service.WithQueueSize(500),
			service.WithStaleAfter(time.Hour),
			service.WithCatalog(testCatalog(), nil),
		)

		Convey("Then the options are applied", func() {
			stats := svc.GetStats()
			So(stats["workerCount"], ShouldEqual, 8)
			So(stats["queueSize"], ShouldEqual, 500)
			So(stats["catalogItems"], ShouldEqual, 2)
			So(stats["staleAfter"], ShouldEqual, "1h0m0s")
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithLogger(logger.Nop()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		Convey("When it is used before Start", func() {
			err := svc.PutCharacter(ctx, model.Character{ID: "c1", Class: model.ClassMage})
			_, evalErr := svc.Evaluate(ctx, sources.LootRequest{ItemID: 100})

			Convey("Then ErrNotStarted is returned", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				So(errors.Is(evalErr, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["totalCharacters"], ShouldEqual, 0)
				So(stats["queueLength"], ShouldEqual, 0)
			})

			Convey("Then Stop is idempotent", func() {
				So(svc.Stop(ctx), ShouldBeNil)
				So(svc.Stop(ctx), ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})

			Reset(func() { _ = svc.Stop(ctx) })
		})
	})
}

func TestService_StartContextCancelled(t *testing.T) {
	Convey("Given a service started on a context that is later cancelled", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithLogger(logger.Nop()),
			service.WithCatalog(testCatalog(), nil),
		)
		rootCtx, cancelRoot := context.WithCancel(context.Background())
		So(svc.Start(rootCtx), ShouldBeNil)
		defer func() { _ = svc.Stop(context.Background()) }()

		ctx := context.Background()
		So(svc.PutCharacter(ctx, model.Character{ID: "c1", Name: "Jaina", Class: model.ClassMage}), ShouldBeNil)
		cancelRoot()

		Convey("When a drop is evaluated", func() {
			reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			begin := time.Now()
			ranking, err := svc.Evaluate(reqCtx, sources.LootRequest{ItemID: 100, RaidDifficulty: model.DifficultyMythic})

			Convey("Then the workers still score it", func() {
				So(err, ShouldBeNil)
				So(time.Since(begin), ShouldBeLessThan, time.Second)
				So(len(ranking.Entries), ShouldEqual, 1)
				So(ranking.Entries[0].CharacterID, ShouldEqual, "c1")
			})
		})

		Convey("When the service is stopped", func() {
			So(svc.Stop(ctx), ShouldBeNil)
			_, err := svc.Evaluate(ctx, sources.LootRequest{ItemID: 100})

			Convey("Then evaluations are refused instead of hanging", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}
