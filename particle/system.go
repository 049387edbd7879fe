package particle

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// OverflowPolicy decides what happens when the active buffer is full.
type OverflowPolicy uint8

const (
	// OverflowGrow doubles the active buffer.
	OverflowGrow OverflowPolicy = iota
	// OverflowReject returns the new particle to the pool and counts a drop.
	OverflowReject
)

func (o OverflowPolicy) String() string {
	switch o {
	case OverflowGrow:
		return "grow"
	case OverflowReject:
		return "reject"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", uint8(o))
	}
}

// ParseOverflowPolicy parses "grow" or "reject".
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "grow":
		return OverflowGrow, nil
	case "reject":
		return OverflowReject, nil
	default:
		return 0, configErr("system.overflow", "unknown policy %q", s)
	}
}

// Phase is the System's position in its per-frame state machine.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseEmitting
	PhaseSimulating
	PhaseRemoving
	PhaseDrawing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEmitting:
		return "emitting"
	case PhaseSimulating:
		return "simulating"
	case PhaseRemoving:
		return "removing"
	case PhaseDrawing:
		return "drawing"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// SystemConfig sizes a System.
type SystemConfig struct {
	Capacity       int            // Initial active buffer size
	Overflow       OverflowPolicy // Behavior when the buffer is full
	Step           float64        // Fixed simulation step in seconds
	BatchTriangles int            // Triangles per render submission
	MaxSteps       int            // Steps simulated per Update before skipping ahead (0 = unlimited)
}

// Validate rejects sizes the System cannot run with.
func (c SystemConfig) Validate() error {
	var errs []error
	if c.Capacity < 1 {
		errs = append(errs, configErr("system.capacity", "%d must be >= 1", c.Capacity))
	}
	if c.Step <= 0 || math.IsNaN(c.Step) || math.IsInf(c.Step, 0) {
		errs = append(errs, configErr("system.step", "%g must be a positive number", c.Step))
	}
	if c.BatchTriangles < 1 {
		errs = append(errs, configErr("system.batch_triangles", "%d must be >= 1", c.BatchTriangles))
	}
	if c.MaxSteps < 0 {
		errs = append(errs, configErr("system.max_steps", "%d is negative", c.MaxSteps))
	}
	if c.Overflow > OverflowReject {
		errs = append(errs, configErr("system.overflow", "unknown policy %d", c.Overflow))
	}
	return errors.Join(errs...)
}

// OverflowHandler is called for every particle rejected by OverflowReject.
type OverflowHandler func(from *Emitter, err error)

// UpdaterID identifies an updater added to a System.
type UpdaterID uint64

// PhaseHook is called on every phase transition, including the return to
// PhaseIdle at the end of Update and Draw.
type PhaseHook func(p Phase)

// System orchestrates emitters, updaters, the active buffer, the fixed-step
// accumulator, removal and render batching.
type System struct {
	cfg  SystemConfig
	pool *Pool[*Particle]

	emitters   []*Emitter
	updaters   []Updater
	updaterIDs []UpdaterID
	nextID     UpdaterID

	// active[:count] are the live particles in creation order.
	active []*Particle
	count  int

	cumulative float64
	watermark  float64

	texture Texture
	batch   []Triangle

	phase      Phase
	stats      Stats
	onOverflow OverflowHandler
	onPhase    PhaseHook
}

// NewSystem validates cfg and creates a System drawing from pool.
func NewSystem(cfg SystemConfig, pool *Pool[*Particle]) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, configErr("system.pool", "must not be nil")
	}
	return &System{
		cfg:    cfg,
		pool:   pool,
		active: make([]*Particle, cfg.Capacity),
		batch:  make([]Triangle, cfg.BatchTriangles),
	}, nil
}

// Config returns the system configuration.
func (s *System) Config() SystemConfig {
	return s.cfg
}

// Pool returns the pool shared by the system and its emitters.
func (s *System) Pool() *Pool[*Particle] {
	return s.pool
}

// Phase returns the current state-machine phase.
func (s *System) Phase() Phase {
	return s.phase
}

// Time returns the cumulative simulated time.
func (s *System) Time() float64 {
	return s.cumulative
}

// Watermark returns the fixed-step cursor.
func (s *System) Watermark() float64 {
	return s.watermark
}

// Count returns the number of live particles.
func (s *System) Count() int {
	return s.count
}

// Particles returns the live particles in creation order. The slice aliases
// internal storage and is only valid until the next Update.
func (s *System) Particles() []*Particle {
	return s.active[:s.count]
}

// Stats returns a snapshot of the counters.
func (s *System) Stats() Stats {
	st := s.stats
	st.Live = s.count
	st.Capacity = len(s.active)
	return st
}

// SetOverflowHandler installs fn to be told about rejected particles.
func (s *System) SetOverflowHandler(fn OverflowHandler) {
	s.onOverflow = fn
}

// SetPhaseHook installs fn to observe phase transitions.
func (s *System) SetPhaseHook(fn PhaseHook) {
	s.onPhase = fn
}

func (s *System) enter(p Phase) {
	s.phase = p
	if s.onPhase != nil {
		s.onPhase(p)
	}
}

// SetTexture binds the texture used by Draw. nil draws untextured quads.
func (s *System) SetTexture(tex Texture) {
	s.texture = tex
}

// Texture returns the bound texture.
func (s *System) Texture() Texture {
	return s.texture
}

// Emitters returns the registered emitters in run order.
func (s *System) Emitters() []*Emitter {
	return s.emitters
}

// AddEmitter registers e. Its clock is moved to the system time so its first
// burst is scheduled relative to now.
func (s *System) AddEmitter(e *Emitter) {
	e.producer.SyncClock(s.cumulative)
	s.emitters = append(s.emitters, e)
}

// RemoveEmitter unregisters e. Particles it already emitted live on.
func (s *System) RemoveEmitter(e *Emitter) bool {
	for i, x := range s.emitters {
		if x == e {
			s.emitters = append(s.emitters[:i], s.emitters[i+1:]...)
			return true
		}
	}
	return false
}

// Updaters returns the updater chain in run order.
func (s *System) Updaters() []Updater {
	return s.updaters
}

// AddUpdater appends u to the chain and returns the handle that removes it.
func (s *System) AddUpdater(u Updater) UpdaterID {
	s.nextID++
	s.updaters = append(s.updaters, u)
	s.updaterIDs = append(s.updaterIDs, s.nextID)
	return s.nextID
}

// RemoveUpdater removes the updater added under id, keeping the order of
// the rest. It reports false for unknown or already removed ids.
func (s *System) RemoveUpdater(id UpdaterID) bool {
	for i, x := range s.updaterIDs {
		if x == id {
			s.updaters = append(s.updaters[:i], s.updaters[i+1:]...)
			s.updaterIDs = append(s.updaterIDs[:i], s.updaterIDs[i+1:]...)
			return true
		}
	}
	return false
}

// Clear returns every live particle to the pool.
func (s *System) Clear() {
	for i := 0; i < s.count; i++ {
		s.pool.Release(s.active[i])
		s.active[i] = nil
	}
	s.count = 0
}

// Update advances the simulation by elapsed seconds: emission, fixed-step
// simulation, then removal. Errors from individual emitters do not stop the
// frame; they are joined into the result.
func (s *System) Update(elapsed float64) error {
	if s.phase != PhaseIdle {
		return ErrReentrant
	}
	defer s.enter(PhaseIdle)

	// A non-finite frame would never let the accumulator catch up; drop it.
	if elapsed < 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		elapsed = 0
	}

	s.enter(PhaseEmitting)
	err := s.emit(elapsed)

	s.enter(PhaseSimulating)
	s.simulate(elapsed)

	s.enter(PhaseRemoving)
	s.remove()

	return err
}

func (s *System) emit(elapsed float64) error {
	var errs []error
	for _, e := range s.emitters {
		batch, err := e.Emit(elapsed)
		if err != nil {
			s.stats.SpawnErrors++
			errs = append(errs, fmt.Errorf("emitter %q: %w", e.name, err))
		}
		for _, p := range batch {
			// Derive color and size before the first draw.
			for _, u := range s.updaters {
				u.Update(p, 0)
			}
			s.add(e, p)
		}
	}
	return errors.Join(errs...)
}

func (s *System) add(from *Emitter, p *Particle) {
	if s.count == len(s.active) {
		if s.cfg.Overflow == OverflowReject {
			s.pool.Release(p)
			s.stats.Dropped++
			Logger().Debug("particle dropped", "emitter", from.name, "capacity", len(s.active))
			if s.onOverflow != nil {
				s.onOverflow(from, ErrCapacityExceeded)
			}
			return
		}
		grown := make([]*Particle, len(s.active)*2)
		copy(grown, s.active[:s.count])
		s.active = grown
		Logger().Debug("active buffer grown", "capacity", len(grown))
	}
	s.active[s.count] = p
	s.count++
	s.stats.Emitted++
}

func (s *System) simulate(elapsed float64) {
	s.cumulative += elapsed
	step := s.cfg.Step

	if s.cfg.MaxSteps > 0 {
		pending := math.Ceil((s.cumulative-s.watermark)/step) - 1
		if limit := float64(s.cfg.MaxSteps); pending > limit {
			// Particles catch up with one larger delta on the next tick.
			skip := pending - limit
			s.watermark += skip * step
			s.stats.SkippedSteps += uint64(skip)
		}
	}

	live := s.active[:s.count]
	for s.cumulative-s.watermark > step {
		s.watermark += step
		s.stats.Steps++

		for _, u := range s.updaters {
			for _, p := range live {
				if d := s.watermark - p.Time; d > 0 {
					u.Update(p, float32(d))
				}
			}
		}
		for _, p := range live {
			if p.Time < s.watermark {
				p.Time = s.watermark
			}
		}
	}
}

// remove compacts the active buffer in place, keeping survivors in order.
func (s *System) remove() {
	alive := 0
	for i := 0; i < s.count; i++ {
		p := s.active[i]
		if p.Energy <= 0 {
			s.pool.Release(p)
			s.stats.Removed++
			continue
		}
		s.active[alive] = p
		alive++
	}
	for i := alive; i < s.count; i++ {
		s.active[i] = nil
	}
	s.count = alive
}

// Draw submits every live particle as two triangles to sink, in batches of
// at most BatchTriangles.
func (s *System) Draw(sink RenderSink) error {
	if s.phase != PhaseIdle {
		return ErrReentrant
	}
	s.enter(PhaseDrawing)
	defer s.enter(PhaseIdle)

	var uvW, uvH float32
	if s.texture != nil {
		w, h := s.texture.Size()
		uvW, uvH = float32(w), float32(h)
	}

	var errs []error
	n := 0
	for _, p := range s.active[:s.count] {
		for _, tri := range Quad(p, uvW, uvH) {
			s.batch[n] = tri
			n++
			if n == len(s.batch) {
				errs = append(errs, s.flush(sink, n))
				n = 0
			}
		}
	}
	if n > 0 {
		errs = append(errs, s.flush(sink, n))
	}
	return errors.Join(errs...)
}

func (s *System) flush(sink RenderSink, n int) error {
	s.stats.Flushes++
	s.stats.Triangles += uint64(n)
	if err := sink.Submit(s.batch[:n], s.texture); err != nil {
		return fmt.Errorf("render sink: %w", err)
	}
	return nil
}
