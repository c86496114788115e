// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"

	"github.com/okian/lootcouncil/internal/adapters/export"
	"github.com/okian/lootcouncil/internal/adapters/sources"
)

// formatXLSX selects the spreadsheet rendering of a ranking.
const formatXLSX = "xlsx"

// LootHandler ranks drops and records council decisions.
type LootHandler struct {
	deps LootDependencies
}

// NewLootHandler creates a new loot handler.
func NewLootHandler(deps LootDependencies) *LootHandler {
	return &LootHandler{deps: deps}
}

// AssignRequest is the body of POST /loot/assign.
type AssignRequest struct {
	LootID      string `json:"loot_id"`
	CharacterID string `json:"character_id"`
}

// HandleEvaluate handles POST /loot/evaluate. With ?format=xlsx the ranking
// is returned as a workbook.
func (h *LootHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.loot.evaluate"

	var req sources.LootRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	if req.ItemID <= 0 {
		writeFailure(w, op, fmt.Errorf("%w: item_id is required", ErrBadRequest))
		return
	}

	ranking, err := h.deps.Evaluate(r.Context(), req)
	if err != nil {
		writeFailure(w, op, err)
		return
	}

	if r.URL.Query().Get("format") == formatXLSX {
		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="ranking-%s.xlsx"`, ranking.LootID))
		if err := export.WriteRanking(w, ranking); err != nil {
			writeFailure(w, op, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

// HandleAssign handles POST /loot/assign.
func (h *LootHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	const op = "api.loot.assign"

	var req AssignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	if req.LootID == "" || req.CharacterID == "" {
		writeFailure(w, op, fmt.Errorf("%w: loot_id and character_id are required", ErrBadRequest))
		return
	}

	l, err := h.deps.Assign(r.Context(), req.LootID, req.CharacterID)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}
