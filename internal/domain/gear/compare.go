// Package gear compares gear instances and derives best-in-slot and tier-set
// completion state from a character's gear pool.
package gear

import "github.com/okian/lootcouncil/internal/domain/model"

// Compare orders two gear instances; the better one is greater. When both
// carry a track the track order decides, otherwise raw item level does.
func Compare(a, b model.GearItem) int {
	if a.ItemTrack != nil && b.ItemTrack != nil {
		return a.ItemTrack.Compare(*b.ItemTrack)
	}
	return cmpInt(a.ItemLevel, b.ItemLevel)
}

// Same reports whether a and b are the same item at the same quality,
// ignoring where they were seen and cosmetic bonuses such as sockets.
// Same(a, b) implies Compare(a, b) == 0.
func Same(a, b model.GearItem) bool {
	if a.Item.ID != b.Item.ID {
		return false
	}
	if a.ItemTrack != nil && b.ItemTrack != nil {
		return a.ItemTrack.Name == b.ItemTrack.Name &&
			a.ItemTrack.Level == b.ItemTrack.Level &&
			a.ItemTrack.Season == b.ItemTrack.Season &&
			a.ItemTrack.ItemLevel == b.ItemTrack.ItemLevel
	}
	return a.ItemLevel == b.ItemLevel
}

// ContainsSame reports whether any item of pool is Same as g.
func ContainsSame(pool []model.GearItem, g model.GearItem) bool {
	for _, p := range pool {
		if Same(p, g) {
			return true
		}
	}
	return false
}

func cmpInt(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
