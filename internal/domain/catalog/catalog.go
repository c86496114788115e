// Package catalog holds the read-only item reference data used by one
// parsing or scoring batch. It is built once and passed explicitly.
package catalog

import (
	"sort"

	"github.com/okian/lootcouncil/internal/domain/model"
)

// Catalog is immutable after New and safe for concurrent reads.
type Catalog struct {
	items     map[int]model.Item
	tokens    []model.TokenMapping
	catalysts []model.CatalystMapping

	tokenPiece map[tokenKey]int
	catalyzed  map[int]struct{}
}

type tokenKey struct {
	tokenID int
	classID model.WowClass
}

// New indexes the given reference data. Later duplicates of an item id win.
func New(items []model.Item, tokens []model.TokenMapping, catalysts []model.CatalystMapping) *Catalog {
	c := &Catalog{
		items:      make(map[int]model.Item, len(items)),
		tokens:     append([]model.TokenMapping(nil), tokens...),
		catalysts:  append([]model.CatalystMapping(nil), catalysts...),
		tokenPiece: make(map[tokenKey]int, len(tokens)),
		catalyzed:  make(map[int]struct{}, len(catalysts)),
	}
	for _, it := range items {
		c.items[it.ID] = it
	}
	for _, t := range tokens {
		c.tokenPiece[tokenKey{tokenID: t.TokenID, classID: t.ClassID}] = t.ItemID
	}
	for _, m := range catalysts {
		c.catalyzed[m.CatalyzedItemID] = struct{}{}
	}
	return c
}

// Item looks up a catalog entry by id.
func (c *Catalog) Item(id int) (model.Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

// Len returns the number of catalog items.
func (c *Catalog) Len() int { return len(c.items) }

// Items returns every item ordered by id.
func (c *Catalog) Items() []model.Item {
	out := make([]model.Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TiersetAndTokenList returns tierset pieces and tokens ordered by id.
func (c *Catalog) TiersetAndTokenList() []model.Item {
	var out []model.Item
	for _, it := range c.Items() {
		if it.Tierset || it.Token {
			out = append(out, it)
		}
	}
	return out
}

// ItemToTiersetMapping returns the token to tierset piece mapping.
func (c *Catalog) ItemToTiersetMapping() []model.TokenMapping {
	return append([]model.TokenMapping(nil), c.tokens...)
}

// ItemToCatalystMapping returns the raid item to catalyzed piece mapping.
func (c *Catalog) ItemToCatalystMapping() []model.CatalystMapping {
	return append([]model.CatalystMapping(nil), c.catalysts...)
}

// TokenPiece returns the tierset piece a token converts into for a class.
func (c *Catalog) TokenPiece(tokenID int, class model.WowClass) (int, bool) {
	id, ok := c.tokenPiece[tokenKey{tokenID: tokenID, classID: class}]
	return id, ok
}

// IsTierPiece reports whether id is a tierset piece, either flagged in the
// catalog or produced by the catalyst.
func (c *Catalog) IsTierPiece(id int) bool {
	if it, ok := c.items[id]; ok && it.Tierset {
		return true
	}
	_, ok := c.catalyzed[id]
	return ok
}
