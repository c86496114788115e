// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// SnapshotHandler accepts Droptimizer, SimC and armory payloads.
type SnapshotHandler struct {
	deps SnapshotDependencies
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(deps SnapshotDependencies) *SnapshotHandler {
	return &SnapshotHandler{deps: deps}
}

// HandlePostSnapshot handles POST /snapshots. An accepted snapshot answers
// 201, one superseded by newer data answers 200.
func (h *SnapshotHandler) HandlePostSnapshot(w http.ResponseWriter, r *http.Request) {
	const op = "api.snapshots.post"

	data, err := readBody(w, r)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	res, err := h.deps.Ingest(r.Context(), data)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	status := http.StatusOK
	if res.Accepted {
		status = http.StatusCreated
	}
	writeJSON(w, status, res)
}
