package catalog

import (
	"math/rand/v2"

	"github.com/nhle/mediashelf/internal/model"
)

// Pick returns a uniformly chosen element of items, or false when items is
// empty. A nil r uses the global source.
func Pick[T any](r *rand.Rand, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	if r == nil {
		return items[rand.IntN(len(items))], true
	}
	return items[r.IntN(len(items))], true
}

// PickRandom returns a uniformly chosen item, or false when items is empty.
func (s *Service) PickRandom(items []model.Item) (model.Item, bool) {
	if s.rnd == nil {
		return Pick(nil, items)
	}
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return Pick(s.rnd, items)
}
