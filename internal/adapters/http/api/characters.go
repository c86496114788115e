// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"

	"github.com/okian/lootcouncil/internal/domain/model"
)

// CharacterHandler handles roster writes and per-character reads.
type CharacterHandler struct {
	deps CharacterDependencies
}

// NewCharacterHandler creates a new character handler.
func NewCharacterHandler(deps CharacterDependencies) *CharacterHandler {
	return &CharacterHandler{deps: deps}
}

// HandlePutCharacter handles POST /characters.
func (h *CharacterHandler) HandlePutCharacter(w http.ResponseWriter, r *http.Request) {
	const op = "api.characters.put"

	var c model.Character
	if err := decodeJSON(w, r, &c); err != nil {
		writeFailure(w, op, err)
		return
	}
	if err := h.deps.PutCharacter(r.Context(), c); err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// HandleStatus handles GET /characters/{id}/status.
func (h *CharacterHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	const op = "api.characters.status"

	id, err := characterID(r)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	st, err := h.deps.Status(r.Context(), id)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// HandleAssignments handles GET /characters/{id}/assignments.
func (h *CharacterHandler) HandleAssignments(w http.ResponseWriter, r *http.Request) {
	const op = "api.characters.assignments"

	id, err := characterID(r)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	loot, err := h.deps.Assignments(r.Context(), id)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	if loot == nil {
		loot = []model.LootWithAssigned{}
	}
	writeJSON(w, http.StatusOK, loot)
}

func characterID(r *http.Request) (string, error) {
	id := r.PathValue("id")
	if id == "" {
		return "", fmt.Errorf("%w: missing character id", ErrBadRequest)
	}
	return id, nil
}
