// Package scoring defines the contract for computing loot highlights and the
// ranking score of a character for a dropped item.
package scoring

import (
	"context"
	"fmt"

	"github.com/okian/lootcouncil/internal/domain/catalog"
	"github.com/okian/lootcouncil/internal/domain/dedupe"
	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/internal/domain/reconcile"
)

// Option applies a configuration option to the InMemoryScorer.
type Option func(*InMemoryScorer)

// WithCatalog sets the reference data used for token mapping and tier pieces.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *InMemoryScorer) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithDeduper overrides the ownership detector.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *InMemoryScorer) {
		if d != nil {
			s.deduper = d
		}
	}
}

// WithWeights sets the score multipliers. Zero fields keep their defaults.
func WithWeights(w Weights) Option {
	return func(s *InMemoryScorer) {
		s.weights = w.withDefaults()
	}
}

// Input is everything known about one candidate for one loot.
type Input struct {
	Loot      model.Loot
	Character model.Character
	Sources   reconcile.Sources
	Assigned  []model.LootWithAssigned
	Bis       []model.BisEntry
}

// Result contains the highlights computed for a character. Highlights.Score
// is only final once the whole batch went through Rank.
type Result struct {
	CharacterID   string
	CharacterName string
	Highlights    model.CharAssignmentHighlights
}

// Scorer computes highlights for one candidate.
type Scorer interface {
	// Score computes highlights, honoring ctx for cancellation.
	Score(ctx context.Context, in Input) (Result, error)
}

// InMemoryScorer implements Scorer over already fetched records.
type InMemoryScorer struct {
	catalog *catalog.Catalog
	deduper dedupe.Deduper
	weights Weights
}

// NewInMemoryScorer creates a new scorer with configuration options.
func NewInMemoryScorer(opts ...Option) *InMemoryScorer {
	s := &InMemoryScorer{
		catalog: catalog.New(nil, nil, nil),
		weights: DefaultWeights(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.deduper == nil {
		s.deduper = dedupe.NewDetector(dedupe.WithTokenMapping(s.catalog.ItemToTiersetMapping()))
	}
	return s
}

// Weights returns the multipliers the scorer was built with.
func (s *InMemoryScorer) Weights() Weights { return s.weights }

// Score computes the highlights of in.Character for in.Loot. The score is
// provisional: it is normalized against the character's own DPS gain.
func (s *InMemoryScorer) Score(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("context cancelled: %w", err)
	}
	h := Evaluate(in, s.catalog, s.deduper)
	h.Score = EvalScore(h, h.DPSGain, s.weights)
	return Result{
		CharacterID:   in.Character.ID,
		CharacterName: in.Character.Name,
		Highlights:    h,
	}, nil
}
