package scoring

import (
	"github.com/okian/lootcouncil/internal/domain/catalog"
	"github.com/okian/lootcouncil/internal/domain/model"
)

// Eligible reports whether a character of class may receive it. Spec-locked
// items need one spec of the class. A token the catalog maps for some class
// needs a mapping for this class; omni tokens fit everyone.
func Eligible(it model.Item, class model.WowClass, cat *catalog.Catalog) bool {
	if len(it.SpecIDs) > 0 {
		ok := false
		for _, spec := range it.SpecIDs {
			if class.HasSpec(spec) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if !it.Token || it.Slot == model.SlotOmni || cat == nil {
		return true
	}
	if _, ok := cat.TokenPiece(it.ID, class); ok {
		return true
	}
	for _, m := range cat.ItemToTiersetMapping() {
		if m.TokenID == it.ID {
			return false
		}
	}
	return true
}
