package viewstate

import (
	"context"

	"github.com/nhle/mediashelf/internal/catalog"
	"github.com/nhle/mediashelf/internal/model"
)

// HomeState is a snapshot of the home screen.
type HomeState struct {
	Common
	Stats model.Stats
}

func (s *HomeState) common() *Common { return &s.Common }

// Home backs the home screen's catalog counts.
type Home struct {
	*container[HomeState]
}

// NewHome creates the home screen container and starts its reads.
func NewHome(svc *catalog.Service, opts ...Option) *Home {
	h := &Home{
		container: newContainer(svc, buildOptions(opts), HomeState{Common: Common{Loading: true}}, (*HomeState).common),
	}
	h.track(svc.SubscribeStats(h.ctx, func(st model.Stats, err error) {
		if err != nil {
			h.fail("stats", err)
			return
		}
		h.update(func(s *HomeState) {
			s.Stats = st
			s.Loading = false
		})
	}))
	return h
}

// Refresh reloads the counts once.
func (h *Home) Refresh(ctx context.Context) error {
	return h.act("refresh stats", func() error {
		st, err := h.svc.Stats(ctx)
		if err != nil {
			return err
		}
		h.update(func(s *HomeState) { s.Stats = st })
		return nil
	})
}
