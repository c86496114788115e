package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/lootcouncil/internal/domain/model"
)

// LootRequest describes a dropped item as reported by the raid leader.
type LootRequest struct {
	ItemID         int                  `json:"item_id"`
	ItemLevel      int                  `json:"item_level,omitempty"`
	BonusIDs       []int                `json:"bonus_ids,omitempty"`
	RaidDifficulty model.RaidDifficulty `json:"raid_difficulty"`
	RaidSessionID  string               `json:"raid_session_id,omitempty"`
	DropDate       time.Time            `json:"drop_date,omitempty"`
	// Eligible restricts the candidates; empty means the whole roster.
	Eligible []string `json:"eligible,omitempty"`
}

// BuildLoot resolves req against the catalog into a loot with a fresh id.
// A missing item level defaults to the catalog level for the difficulty.
func (p *Parser) BuildLoot(ctx context.Context, req LootRequest) (model.Loot, error) {
	it, ok := p.cat.Item(req.ItemID)
	if !ok {
		return model.Loot{}, fmt.Errorf("loot item %d: %w", req.ItemID, ErrUnknownItem)
	}
	if req.ItemLevel == 0 {
		req.ItemLevel = it.IlvlFor(req.RaidDifficulty)
	}
	raw := RawItem{
		ItemID:     req.ItemID,
		ItemLevel:  req.ItemLevel,
		BonusIDs:   req.BonusIDs,
		Difficulty: req.RaidDifficulty,
	}
	g, err := p.GearItem(ctx, raw, model.SourceLoot, req.RaidDifficulty)
	if err != nil {
		return model.Loot{}, err
	}
	drop := req.DropDate
	if drop.IsZero() {
		drop = time.Now().UTC()
	}
	return model.Loot{
		ID:             uuid.NewString(),
		RaidSessionID:  req.RaidSessionID,
		Gear:           g,
		RaidDifficulty: req.RaidDifficulty,
		DropDate:       drop,
		Eligible:       append([]string(nil), req.Eligible...),
	}, nil
}
