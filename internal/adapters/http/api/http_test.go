package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/okian/lootcouncil/internal/adapters/export"
	"github.com/okian/lootcouncil/internal/adapters/http/api"
	"github.com/okian/lootcouncil/internal/adapters/mq/queue"
	"github.com/okian/lootcouncil/internal/adapters/repository"
	"github.com/okian/lootcouncil/internal/adapters/sources"
	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDependencies struct {
	characters map[string]model.Character

	ingestResult types.IngestResult
	ingestErr    error
	ingested     []byte

	ranking  types.Ranking
	evalErr  error
	lastEval sources.LootRequest

	assignErr error
}

func newMockDependencies() *mockDependencies {
	return &mockDependencies{characters: make(map[string]model.Character)}
}

func (m *mockDependencies) PutCharacter(_ context.Context, c model.Character) error {
	if c.ID == "" {
		return fmt.Errorf("character without id: %w", repository.ErrInvalidRecord)
	}
	m.characters[c.ID] = c
	return nil
}

func (m *mockDependencies) Status(_ context.Context, id string) (types.CharacterStatus, error) {
	c, ok := m.characters[id]
	if !ok {
		return types.CharacterStatus{}, fmt.Errorf("character %s: %w", id, repository.ErrNotFound)
	}
	return types.CharacterStatus{CharacterID: c.ID, CharacterName: c.Name}, nil
}

func (m *mockDependencies) Assignments(_ context.Context, id string) ([]model.LootWithAssigned, error) {
	if _, ok := m.characters[id]; !ok {
		return nil, fmt.Errorf("character %s: %w", id, repository.ErrNotFound)
	}
	return nil, nil
}

func (m *mockDependencies) Ingest(_ context.Context, data []byte) (types.IngestResult, error) {
	m.ingested = data
	return m.ingestResult, m.ingestErr
}

func (m *mockDependencies) Evaluate(_ context.Context, req sources.LootRequest) (types.Ranking, error) {
	m.lastEval = req
	return m.ranking, m.evalErr
}

func (m *mockDependencies) Assign(_ context.Context, lootID, characterID string) (model.LootWithAssigned, error) {
	if m.assignErr != nil {
		return model.LootWithAssigned{}, m.assignErr
	}
	id := characterID
	return model.LootWithAssigned{
		Loot:                model.Loot{ID: lootID},
		AssignedCharacterID: &id,
		AssignedHighlights:  &model.CharAssignmentHighlights{Score: 110},
	}, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func sampleRanking() types.Ranking {
	return types.Ranking{
		LootID: "loot-1",
		ItemID: 100,
		Loot: model.Loot{
			ID:   "loot-1",
			Gear: model.GearItem{Item: model.GearItemRef{ID: 100, Name: "Crown of Ash", Slot: model.SlotHead}, ItemLevel: 623},
		},
		Entries: []types.Entry{
			{Rank: 1, CharacterID: "c1", CharacterName: "Jaina", Score: 110, Highlights: model.CharAssignmentHighlights{Score: 110, DPSGain: 2000, IlvlDiff: 4}},
			{Rank: 2, CharacterID: "c2", CharacterName: "Khadgar", Score: 50, Highlights: model.CharAssignmentHighlights{Score: 50, DPSGain: 1000, IlvlDiff: -3}},
		},
	}
}

func newMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func serve(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		mux := newMux(newMockDependencies())

		Convey("When the health endpoint is requested", func() {
			w := serve(mux, http.MethodGet, "/healthz", "")

			Convey("Then metrics are served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When the stats endpoint is requested", func() {
			w := serve(mux, http.MethodGet, "/stats", "")

			Convey("Then the provider's stats are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"started":true`)
			})
		})

		Convey("When an unknown path is requested", func() {
			w := serve(mux, http.MethodGet, "/unknown", "")

			Convey("Then 404 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When a route is called with the wrong method", func() {
			w := serve(mux, http.MethodGet, "/loot/evaluate", "")

			Convey("Then 405 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestCharacterHandler(t *testing.T) {
	Convey("Given the character routes", t, func() {
		deps := newMockDependencies()
		mux := newMux(deps)

		Convey("When a character is posted", func() {
			w := serve(mux, http.MethodPost, "/characters", `{"id":"c1","name":"Jaina","class":8,"main":true}`)

			Convey("Then it is stored and echoed", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(deps.characters["c1"].Name, ShouldEqual, "Jaina")
				So(deps.characters["c1"].Class, ShouldEqual, model.ClassMage)
			})

			Convey("Then its status can be read", func() {
				st := serve(mux, http.MethodGet, "/characters/c1/status", "")
				So(st.Code, ShouldEqual, http.StatusOK)
				var got types.CharacterStatus
				So(json.Unmarshal(st.Body.Bytes(), &got), ShouldBeNil)
				So(got.CharacterName, ShouldEqual, "Jaina")
			})

			Convey("Then its assignments come back as an empty list", func() {
				as := serve(mux, http.MethodGet, "/characters/c1/assignments", "")
				So(as.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(as.Body.String()), ShouldEqual, "[]")
			})
		})

		Convey("When the body is malformed", func() {
			w := serve(mux, http.MethodPost, "/characters", `{"id":`)

			Convey("Then 400 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "bad_request")
			})
		})

		Convey("When the record is rejected by the store", func() {
			w := serve(mux, http.MethodPost, "/characters", `{"name":"Nobody"}`)

			Convey("Then 400 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When an unknown character is read", func() {
			w := serve(mux, http.MethodGet, "/characters/ghost/status", "")

			Convey("Then 404 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decodeError(w)["code"], ShouldEqual, "not_found")
			})
		})
	})
}

func TestSnapshotHandler(t *testing.T) {
	Convey("Given the snapshot route", t, func() {
		deps := newMockDependencies()
		mux := newMux(deps)
		payload := `{"kind":"simc","character_id":"c1","timestamp":"2025-03-04T20:00:00Z"}`

		Convey("When a new snapshot is accepted", func() {
			deps.ingestResult = types.IngestResult{CharacterID: "c1", Source: model.KindSimC, Accepted: true}
			w := serve(mux, http.MethodPost, "/snapshots", payload)

			Convey("Then 201 is returned and the raw body is forwarded", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(string(deps.ingested), ShouldEqual, payload)
			})
		})

		Convey("When the snapshot is older than the stored one", func() {
			deps.ingestResult = types.IngestResult{CharacterID: "c1", Source: model.KindSimC}
			w := serve(mux, http.MethodPost, "/snapshots", payload)

			Convey("Then 200 is returned with accepted false", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"accepted":false`)
			})
		})

		Convey("When the payload kind is unknown", func() {
			deps.ingestErr = fmt.Errorf("%w: %q", sources.ErrUnknownKind, "wowhead")
			w := serve(mux, http.MethodPost, "/snapshots", payload)

			Convey("Then 400 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the body is empty", func() {
			w := serve(mux, http.MethodPost, "/snapshots", "")

			Convey("Then 400 is returned without calling the service", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(deps.ingested, ShouldBeNil)
			})
		})
	})
}

func TestLootHandler(t *testing.T) {
	Convey("Given the loot routes", t, func() {
		deps := newMockDependencies()
		deps.ranking = sampleRanking()
		mux := newMux(deps)

		Convey("When a drop is evaluated", func() {
			w := serve(mux, http.MethodPost, "/loot/evaluate", `{"item_id":100,"raid_difficulty":"Mythic","eligible":["c1","c2"]}`)

			Convey("Then the request is forwarded and the ranking returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastEval.ItemID, ShouldEqual, 100)
				So(deps.lastEval.RaidDifficulty, ShouldEqual, model.DifficultyMythic)
				So(deps.lastEval.Eligible, ShouldResemble, []string{"c1", "c2"})

				var got types.Ranking
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(len(got.Entries), ShouldEqual, 2)
				So(got.Entries[0].CharacterName, ShouldEqual, "Jaina")
			})
		})

		Convey("When the ranking is requested as a workbook", func() {
			w := serve(mux, http.MethodPost, "/loot/evaluate?format=xlsx", `{"item_id":100,"raid_difficulty":"Mythic"}`)

			Convey("Then an xlsx attachment is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, export.ContentType)
				So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, "ranking-loot-1.xlsx")

				f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
				So(err, ShouldBeNil)
				defer f.Close()
				name, err := f.GetCellValue("Ranking", "B3")
				So(err, ShouldBeNil)
				So(name, ShouldEqual, "Jaina")
			})
		})

		Convey("When the item id is missing", func() {
			w := serve(mux, http.MethodPost, "/loot/evaluate", `{"raid_difficulty":"Mythic"}`)

			Convey("Then 400 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the item is unknown", func() {
			deps.evalErr = fmt.Errorf("item 4242: %w", sources.ErrUnknownItem)
			w := serve(mux, http.MethodPost, "/loot/evaluate", `{"item_id":4242}`)

			Convey("Then 400 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the scoring queue is full", func() {
			deps.evalErr = fmt.Errorf("enqueue: %w", queue.ErrQueueFull)
			w := serve(mux, http.MethodPost, "/loot/evaluate", `{"item_id":100}`)

			Convey("Then 429 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
				So(decodeError(w)["code"], ShouldEqual, "backpressure")
			})
		})

		Convey("When the queue is closed", func() {
			deps.evalErr = queue.ErrQueueClosed
			w := serve(mux, http.MethodPost, "/loot/evaluate", `{"item_id":100}`)

			Convey("Then 503 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})

		Convey("When loot is assigned", func() {
			w := serve(mux, http.MethodPost, "/loot/assign", `{"loot_id":"loot-1","character_id":"c1"}`)

			Convey("Then the assignment is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got model.LootWithAssigned
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.ID, ShouldEqual, "loot-1")
				So(*got.AssignedCharacterID, ShouldEqual, "c1")
				So(got.AssignedHighlights.Score, ShouldEqual, 110)
			})
		})

		Convey("When the assignment is missing a field", func() {
			w := serve(mux, http.MethodPost, "/loot/assign", `{"loot_id":"loot-1"}`)

			Convey("Then 400 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the loot was never evaluated", func() {
			deps.assignErr = fmt.Errorf("loot x: %w", repository.ErrNotFound)
			w := serve(mux, http.MethodPost, "/loot/assign", `{"loot_id":"x","character_id":"c1"}`)

			Convey("Then 404 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}
