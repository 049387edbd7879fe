package particle

// Emitter binds a Producer and an ordered Initializer chain to a world position.
type Emitter struct {
	name         string
	pool         *Pool[*Particle]
	producer     *Producer
	initializers []Initializer
	offset       Vec2
	enabled      bool
}

// NewEmitter creates an enabled emitter. The pool must be the one the producer
// draws from; it is kept so callers can reach it through the emitter.
func NewEmitter(pool *Pool[*Particle], producer *Producer, inits ...Initializer) *Emitter {
	return &Emitter{
		pool:         pool,
		producer:     producer,
		initializers: append([]Initializer(nil), inits...),
		enabled:      true,
	}
}

// Name returns the emitter's label.
func (e *Emitter) Name() string {
	return e.name
}

// SetName labels the emitter for logs and telemetry.
func (e *Emitter) SetName(name string) {
	e.name = name
}

// Pool returns the pool the emitter draws from.
func (e *Emitter) Pool() *Pool[*Particle] {
	return e.pool
}

// Producer returns the emission scheduler.
func (e *Emitter) Producer() *Producer {
	return e.producer
}

// AddInitializer appends an initializer to the chain.
func (e *Emitter) AddInitializer(init Initializer) {
	e.initializers = append(e.initializers, init)
}

// Initializers returns the chain in execution order.
func (e *Emitter) Initializers() []Initializer {
	return e.initializers
}

// Offset returns the world position added to every emitted particle.
func (e *Emitter) Offset() Vec2 {
	return e.offset
}

// SetOffset moves the emitter.
func (e *Emitter) SetOffset(v Vec2) {
	e.offset = v
}

// Enabled reports whether the emitter produces particles.
func (e *Emitter) Enabled() bool {
	return e.enabled
}

// SetEnabled toggles emission. A disabled emitter keeps its clock running so
// re-enabling it does not release a backlog of bursts.
func (e *Emitter) SetEnabled(on bool) {
	e.enabled = on
}

// Emit produces the particles due after elapsed seconds, runs the initializer
// chain on each and moves them to the emitter's position. The returned slice
// is reused by the next call.
func (e *Emitter) Emit(elapsed float64) ([]*Particle, error) {
	if !e.enabled {
		e.producer.SyncClock(e.producer.Time() + elapsed)
		return nil, nil
	}

	batch, err := e.producer.Produce(elapsed)
	for _, p := range batch {
		for _, init := range e.initializers {
			init.Initialize(p)
		}
		p.Position = p.Position.Add(e.offset)
	}
	return batch, err
}
