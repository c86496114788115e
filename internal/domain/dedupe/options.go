package dedupe

import "github.com/okian/lootcouncil/internal/domain/model"

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithTokenMapping sets the token to tierset piece mapping used to treat a
// token and its piece as the same possession.
func WithTokenMapping(tokens []model.TokenMapping) Option {
	return func(d *Detector) {
		d.tokens = append([]model.TokenMapping(nil), tokens...)
	}
}
