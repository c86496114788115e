// Package reconcile assembles a character's current gear view from several
// independently timestamped sources plus already-assigned loot.
package reconcile

import (
	"time"

	"github.com/okian/lootcouncil/internal/domain/model"
)

// Snapshot is the source-neutral view of one gear snapshot.
type Snapshot struct {
	Source    model.SourceKind
	Timestamp time.Time
	Equipped  []model.GearItem
	Bag       []model.GearItem
	Tierset   []model.GearItem
	Vault     []model.GearItem
}

// HasBag reports whether the source kind exposes bag contents at all.
func (s Snapshot) HasBag() bool { return s.Source != model.KindProfile }

// HasVault reports whether the source kind exposes great vault choices.
func (s Snapshot) HasVault() bool { return s.Source != model.KindProfile }

// Sources is everything known about one character's gear.
type Sources struct {
	Droptimizers []model.Droptimizer
	SimC         *model.SimC
	Profile      *model.ExternalProfile
}

// Snapshots flattens the sources: every droptimizer, then SimC, then the profile.
func (s Sources) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, len(s.Droptimizers)+2)
	for _, d := range s.Droptimizers {
		out = append(out, Snapshot{
			Source:    model.KindDroptimizer,
			Timestamp: d.Timestamp,
			Equipped:  d.Equipped,
			Bag:       d.Bag,
			Tierset:   d.Tierset,
			Vault:     d.WeeklyChest,
		})
	}
	if s.SimC != nil {
		out = append(out, Snapshot{
			Source:    model.KindSimC,
			Timestamp: s.SimC.Timestamp,
			Equipped:  s.SimC.Equipped,
			Bag:       s.SimC.Bag,
			Tierset:   s.SimC.Tierset,
			Vault:     s.SimC.WeeklyChest,
		})
	}
	if s.Profile != nil {
		out = append(out, Snapshot{
			Source:    model.KindProfile,
			Timestamp: s.Profile.Timestamp,
			Equipped:  s.Profile.Equipped,
			Tierset:   s.Profile.Tierset,
		})
	}
	return out
}

// Latest returns the most recent snapshot satisfying has. Ties keep the
// earlier snapshot in Snapshots order.
func Latest(snaps []Snapshot, has func(Snapshot) bool) (Snapshot, bool) {
	var (
		best  Snapshot
		found bool
	)
	for _, s := range snaps {
		if has != nil && !has(s) {
			continue
		}
		if !found || s.Timestamp.After(best.Timestamp) {
			best, found = s, true
		}
	}
	return best, found
}

// Any matches every snapshot.
func Any(Snapshot) bool { return true }

// WithBag matches snapshots from sources exposing bag contents.
func WithBag(s Snapshot) bool { return s.HasBag() }

// WithVault matches snapshots from sources exposing great vault choices.
func WithVault(s Snapshot) bool { return s.HasVault() }
