// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/lootcouncil/internal/adapters/sources"
	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/internal/domain/types"
)

// CharacterDependencies covers roster and per-character reads.
type CharacterDependencies interface {
	PutCharacter(ctx context.Context, c model.Character) error
	Status(ctx context.Context, characterID string) (types.CharacterStatus, error)
	Assignments(ctx context.Context, characterID string) ([]model.LootWithAssigned, error)
}

// SnapshotDependencies ingests raw source payloads.
type SnapshotDependencies interface {
	Ingest(ctx context.Context, data []byte) (types.IngestResult, error)
}

// LootDependencies ranks and assigns dropped items.
type LootDependencies interface {
	Evaluate(ctx context.Context, req sources.LootRequest) (types.Ranking, error)
	Assign(ctx context.Context, lootID, characterID string) (model.LootWithAssigned, error)
}

// Dependencies required by HTTP handlers.
type Dependencies interface {
	CharacterDependencies
	SnapshotDependencies
	LootDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	characterHandler *CharacterHandler
	snapshotHandler  *SnapshotHandler
	lootHandler      *LootHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		characterHandler: NewCharacterHandler(deps),
		snapshotHandler:  NewSnapshotHandler(deps),
		lootHandler:      NewLootHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /characters", MetricsMiddleware(s.characterHandler.HandlePutCharacter, "characters"))
	mux.HandleFunc("GET /characters/{id}/status", MetricsMiddleware(s.characterHandler.HandleStatus, "character_status"))
	mux.HandleFunc("GET /characters/{id}/assignments", MetricsMiddleware(s.characterHandler.HandleAssignments, "character_assignments"))
	mux.HandleFunc("POST /snapshots", MetricsMiddleware(s.snapshotHandler.HandlePostSnapshot, "snapshots"))
	mux.HandleFunc("POST /loot/evaluate", MetricsMiddleware(s.lootHandler.HandleEvaluate, "loot_evaluate"))
	mux.HandleFunc("POST /loot/assign", MetricsMiddleware(s.lootHandler.HandleAssign, "loot_assign"))
}
