package reconcile

import (
	"time"

	"github.com/okian/lootcouncil/internal/domain/model"
)

// DefaultStaleAfter is the snapshot age beyond which a source is outdated.
const DefaultStaleAfter = 24 * time.Hour

// StalenessState is the advisory freshness of one source kind.
type StalenessState string

const (
	Fresh StalenessState = "fresh"
	// Stale snapshots are too old or predate an assignment.
	Stale StalenessState = "stale"
	// Untracked sources never produced a snapshot.
	Untracked StalenessState = "untracked"
)

// Staleness is the assessment of one source kind for a character.
type Staleness struct {
	Source    model.SourceKind `json:"source"`
	State     StalenessState   `json:"state"`
	Timestamp time.Time        `json:"timestamp"`
	// AssignedSince counts loot assigned after the snapshot was taken.
	AssignedSince int `json:"assigned_since"`
}

// Assess classifies one source given the timestamp of its latest snapshot.
// A nil timestamp means the source was never imported.
func Assess(kind model.SourceKind, latest *time.Time, assigned []model.LootWithAssigned, now time.Time, staleAfter time.Duration) Staleness {
	st := Staleness{Source: kind, State: Untracked}
	if latest == nil {
		return st
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	st.Timestamp = *latest
	for _, l := range assigned {
		if l.AssignedAt.After(*latest) {
			st.AssignedSince++
		}
	}
	st.State = Fresh
	if now.Sub(*latest) > staleAfter || st.AssignedSince > 0 {
		st.State = Stale
	}
	return st
}

// Report assesses every source kind, in model.SourceKinds order.
func Report(src Sources, assigned []model.LootWithAssigned, now time.Time, staleAfter time.Duration) []Staleness {
	latestByKind := make(map[model.SourceKind]*time.Time, len(model.SourceKinds))
	for _, s := range src.Snapshots() {
		ts := s.Timestamp
		if cur, ok := latestByKind[s.Source]; !ok || ts.After(*cur) {
			latestByKind[s.Source] = &ts
		}
	}
	out := make([]Staleness, 0, len(model.SourceKinds))
	for _, kind := range model.SourceKinds {
		out = append(out, Assess(kind, latestByKind[kind], assigned, now, staleAfter))
	}
	return out
}
