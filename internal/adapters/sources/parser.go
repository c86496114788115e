// Package sources turns raw Droptimizer, SimC and armory payloads into gear
// snapshots resolved against the item catalog.
package sources

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/okian/lootcouncil/internal/domain/catalog"
	"github.com/okian/lootcouncil/internal/domain/itemtrack"
	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/pkg/logger"
	"github.com/okian/lootcouncil/pkg/metrics"
)

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithLogger sets the logger used for skipped entries and unresolved tracks.
func WithLogger(l logger.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// Parser converts payloads using one catalog. It holds no mutable state.
type Parser struct {
	cat *catalog.Catalog
	log logger.Logger
}

// NewParser creates a parser over cat.
func NewParser(cat *catalog.Catalog, opts ...Option) *Parser {
	p := &Parser{cat: cat, log: logger.Nop()}
	if p.cat == nil {
		p.cat = catalog.New(nil, nil, nil)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Decode unmarshals and validates the envelope without touching the catalog.
func Decode(data []byte) (Payload, error) {
	var pl Payload
	if err := sonic.Unmarshal(data, &pl); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := pl.validate(); err != nil {
		return Payload{}, err
	}
	return pl, nil
}

func (pl Payload) validate() error {
	switch pl.Kind {
	case model.KindDroptimizer, model.KindSimC, model.KindProfile:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, pl.Kind)
	}
	if pl.CharacterID == "" {
		return fmt.Errorf("%w: missing character_id", ErrInvalidPayload)
	}
	if pl.Timestamp.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidPayload)
	}
	return nil
}

// Parse decodes data and builds the snapshot it describes.
func (p *Parser) Parse(ctx context.Context, data []byte) (Parsed, error) {
	pl, err := Decode(data)
	if err != nil {
		return Parsed{}, err
	}
	return p.Build(ctx, pl)
}

// Build resolves a decoded payload. Unknown items are skipped.
func (p *Parser) Build(ctx context.Context, pl Payload) (Parsed, error) {
	if err := pl.validate(); err != nil {
		return Parsed{}, err
	}
	out := Parsed{Kind: pl.Kind}
	convert := func(raws []RawItem, src model.GearSource) []model.GearItem {
		items := make([]model.GearItem, 0, len(raws))
		for _, r := range raws {
			g, err := p.GearItem(ctx, r, src, pl.RaidDifficulty)
			if err != nil {
				out.Skipped++
				continue
			}
			items = append(items, g)
		}
		return items
	}

	equipped := convert(pl.Equipped, model.SourceEquipped)
	switch pl.Kind {
	case model.KindDroptimizer:
		bag := convert(pl.Bag, model.SourceBag)
		out.Droptimizer = &model.Droptimizer{
			ID:             pl.ID,
			CharacterID:    pl.CharacterID,
			Timestamp:      pl.Timestamp,
			RaidDifficulty: pl.RaidDifficulty,
			Equipped:       equipped,
			Bag:            bag,
			Tierset:        p.tierset(equipped, bag),
			WeeklyChest:    convert(pl.WeeklyChest, model.SourceGreatVault),
			Upgrades:       append([]model.Upgrade(nil), pl.Upgrades...),
		}
	case model.KindSimC:
		bag := convert(pl.Bag, model.SourceBag)
		out.SimC = &model.SimC{
			CharacterID: pl.CharacterID,
			Timestamp:   pl.Timestamp,
			Equipped:    equipped,
			Bag:         bag,
			Tierset:     p.tierset(equipped, bag),
			WeeklyChest: convert(pl.WeeklyChest, model.SourceGreatVault),
		}
	case model.KindProfile:
		out.Profile = &model.ExternalProfile{
			CharacterID: pl.CharacterID,
			Timestamp:   pl.Timestamp,
			Equipped:    equipped,
			Tierset:     p.tierset(equipped),
		}
	}

	if out.Skipped > 0 {
		p.log.Warn(ctx, "skipped unknown items",
			logger.String("character_id", pl.CharacterID),
			logger.String("source", string(pl.Kind)),
			logger.Int("skipped", out.Skipped))
	}
	return out, nil
}

// GearItem resolves one raw entry. The track comes from the bonus ids, else
// from the remaining upgrade count, else from the entry's difficulty or the
// payload's. Items from excluded sources never get a track.
func (p *Parser) GearItem(ctx context.Context, r RawItem, src model.GearSource, fallback model.RaidDifficulty) (model.GearItem, error) {
	it, ok := p.cat.Item(r.ItemID)
	if !ok {
		metrics.RecordUnknownItem()
		p.log.Warn(ctx, "item not in catalog", logger.Int("item_id", r.ItemID))
		return model.GearItem{}, fmt.Errorf("item %d: %w", r.ItemID, ErrUnknownItem)
	}

	g := model.GearItem{
		Item:       it.Ref(),
		Source:     src,
		ItemLevel:  r.ItemLevel,
		BonusIDs:   append([]int(nil), r.BonusIDs...),
		EnchantIDs: r.EnchantIDs,
		GemIDs:     r.GemIDs,
	}
	if r.EquippedIn != "" {
		slot := r.EquippedIn
		g.EquippedIn = &slot
	}
	if itemtrack.Excluded(it.SourceType) {
		return g, nil
	}

	if itemtrack.Resolve(&g) {
		return g, nil
	}
	diff := r.Difficulty
	if diff == "" {
		diff = fallback
	}
	switch {
	case r.UpgradesLeft != nil:
		g.BonusIDs, g.ItemTrack = itemtrack.ApplyByIlvlAndDelta(it.Season, g.BonusIDs, g.ItemLevel, *r.UpgradesLeft)
	case diff != "":
		g.BonusIDs, g.ItemTrack = itemtrack.ApplyByIlvlAndDiff(it.Season, g.BonusIDs, g.ItemLevel, diff)
	}
	if g.ItemTrack == nil {
		metrics.RecordTrackUnresolved()
		p.log.Warn(ctx, "item track unresolved",
			logger.Int("item_id", r.ItemID),
			logger.Int("item_level", r.ItemLevel),
			logger.Any("bonus_ids", r.BonusIDs))
	}
	return g, nil
}

// tierset picks the tier pieces among the given lists, one per slot, in
// list order.
func (p *Parser) tierset(lists ...[]model.GearItem) []model.GearItem {
	var out []model.GearItem
	taken := make(map[model.SlotKey]struct{})
	for _, items := range lists {
		for _, g := range items {
			if !g.Item.Tierset && !p.cat.IsTierPiece(g.Item.ID) {
				continue
			}
			if _, dup := taken[g.Item.Slot]; dup {
				continue
			}
			taken[g.Item.Slot] = struct{}{}
			out = append(out, g)
		}
	}
	return out
}
