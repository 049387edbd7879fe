package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flare/components"
	"github.com/pthm-cable/flare/particle"
	"github.com/pthm-cable/flare/systems"
)

// emitterSeedStride spreads per-emitter RNG seeds so emitters do not share
// a random sequence.
const emitterSeedStride = 7919

// buildSystem creates the pool, the system, its emitters and the updater
// chain: force, turbulence, integrate, property.
func (g *Game) buildSystem(seed int64) error {
	cfg := g.cfg

	pool, err := particle.NewPool(cfg.Simulation.PoolCapacity, particle.NewParticle)
	if err != nil {
		return fmt.Errorf("creating pool: %w", err)
	}
	sys, err := particle.NewSystem(cfg.SystemConfig(), pool)
	if err != nil {
		return fmt.Errorf("creating system: %w", err)
	}
	sys.SetOverflowHandler(g.onOverflow)
	g.pool = pool
	g.system = sys

	for i := range cfg.Emitters {
		em, err := g.buildEmitter(i, seed+int64(i+1)*emitterSeedStride)
		if err != nil {
			return err
		}
		g.emitters = append(g.emitters, em)
		sys.AddEmitter(em)
	}

	up := cfg.Updaters
	if up.Force.Enabled {
		g.force = &particle.ForceUpdater{Wind: float32(up.Force.Wind), Gravity: float32(up.Force.Gravity)}
		sys.AddUpdater(g.force)
	}
	if up.Turbulence.Enabled {
		tu, err := up.Turbulence.TurbulenceUpdater(seed)
		if err != nil {
			return err
		}
		g.turbulence = tu
		sys.AddUpdater(tu)
	}
	if up.Integrate.Enabled {
		g.integrator = &Integrator{Drag: float32(up.Integrate.Drag)}
		sys.AddUpdater(g.integrator)
	}
	if up.Property.Enabled {
		pu, err := up.Property.PropertyUpdater()
		if err != nil {
			return err
		}
		g.property = pu
		sys.AddUpdater(pu)
	}
	return nil
}

// buildEmitter creates emitter i from config with its own RNG.
func (g *Game) buildEmitter(i int, seed int64) (*particle.Emitter, error) {
	ec := g.cfg.Emitters[i]
	rng := rand.New(rand.NewSource(seed))

	prod, err := particle.NewProducer(ec.ProducerConfig(), g.pool, rng)
	if err != nil {
		return nil, fmt.Errorf("emitter %q: %w", ec.Name, err)
	}
	em := particle.NewEmitter(g.pool, prod)
	em.SetName(ec.Name)
	em.SetOffset(ec.Position.Particle())
	em.SetEnabled(ec.IsEnabled())

	for j, ic := range ec.Initializers {
		ri, err := particle.NewRandomInitializer(ic.Particle(), rng)
		if err != nil {
			return nil, fmt.Errorf("emitter %q initializer %d: %w", ec.Name, j, err)
		}
		em.AddInitializer(ri)
	}
	return em, nil
}

// buildScene creates one anchor entity per configured anchor, starting at
// its emitter's configured position.
func (g *Game) buildScene() {
	cfg := g.cfg
	g.world = ecs.NewWorld()
	g.motion = systems.NewMotionSystem(g.world, systems.Bounds{Width: cfg.Derived.WorldW32, Height: cfg.Derived.WorldH32})
	g.anchors = systems.NewAnchorSystem(g.world)

	mapper := ecs.NewMap3[components.Position, components.Velocity, components.Anchor](g.world)
	for _, ac := range cfg.Anchors {
		idx, ok := cfg.Derived.EmitterIndex[ac.Emitter]
		if !ok {
			// Validate rejects unknown names; a hand-built config may not have run it.
			slog.Warn("anchor references unknown emitter", "emitter", ac.Emitter)
			continue
		}
		start := cfg.Emitters[idx].Position
		mapper.NewEntity(
			&components.Position{X: float32(start.X), Y: float32(start.Y)},
			&components.Velocity{X: float32(ac.Velocity.X), Y: float32(ac.Velocity.Y)},
			&components.Anchor{Emitter: idx, Bounce: ac.Bounce},
		)
	}
}

// onOverflow logs the first rejection and every 1000th after it.
func (g *Game) onOverflow(from *particle.Emitter, err error) {
	g.overflow++
	if g.overflow == 1 || g.overflow%1000 == 0 {
		slog.Warn("particle dropped", "emitter", from.Name(), "error", err, "total", g.overflow)
	}
}
