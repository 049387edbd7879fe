package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flare/components"
	"github.com/pthm-cable/flare/particle"
)

// AnchorSystem moves emitters to the positions of their anchor entities.
type AnchorSystem struct {
	filter ecs.Filter2[components.Position, components.Anchor]
}

// NewAnchorSystem creates a new anchor system.
func NewAnchorSystem(w *ecs.World) *AnchorSystem {
	return &AnchorSystem{
		filter: *ecs.NewFilter2[components.Position, components.Anchor](w),
	}
}

// Update copies anchor positions into emitter offsets. Anchors pointing past
// the end of emitters are skipped.
func (s *AnchorSystem) Update(emitters []*particle.Emitter) {
	query := s.filter.Query()
	for query.Next() {
		pos, anchor := query.Get()
		if anchor.Emitter < 0 || anchor.Emitter >= len(emitters) {
			continue
		}
		emitters[anchor.Emitter].SetOffset(particle.Vec2{X: pos.X, Y: pos.Y})
	}
}
