package particle

import (
	"errors"
	"math"
	"math/rand"
)

// clockEpsilon is the relative slack allowed when comparing a spawn boundary
// against the clock. Summed float64 intervals drift by a few ulps from k*I.
const clockEpsilon = 1e-9

// ProducerConfig holds the emission schedule.
type ProducerConfig struct {
	Interval TimeRange // Seconds between bursts
	Count    IntRange  // Particles per burst
}

// Validate rejects schedules that could spin forever or sample inverted ranges.
func (c ProducerConfig) Validate() error {
	var errs []error
	if c.Interval.Min <= 0 {
		errs = append(errs, configErr("producer.interval", "min %g must be > 0", c.Interval.Min))
	}
	errs = append(errs,
		c.Interval.Validate("producer.interval"),
		c.Count.Validate("producer.count"),
	)
	return errors.Join(errs...)
}

// Producer decides how many particles to spawn as time passes.
//
// Its clock advances by the elapsed time handed to Produce. Every interval
// boundary crossed yields one burst, so a long frame can yield several.
type Producer struct {
	cfg  ProducerConfig
	pool *Pool[*Particle]
	rng  *rand.Rand

	currentTime       float64
	lastSpawn         float64
	nextSpawnInterval float64

	out []*Particle
}

// NewProducer validates cfg and returns a producer drawing from pool.
func NewProducer(cfg ProducerConfig, pool *Pool[*Particle], rng *rand.Rand) (*Producer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, configErr("producer.pool", "must not be nil")
	}
	if rng == nil {
		return nil, configErr("producer.rng", "must not be nil")
	}
	p := &Producer{
		cfg:  cfg,
		pool: pool,
		rng:  rng,
		out:  make([]*Particle, 0, cfg.Count.Max),
	}
	p.nextSpawnInterval = cfg.Interval.Sample(rng)
	return p, nil
}

// Config returns the schedule.
func (p *Producer) Config() ProducerConfig {
	return p.cfg
}

// Time returns the producer clock.
func (p *Producer) Time() float64 {
	return p.currentTime
}

// SyncClock moves the producer clock to now without emitting anything for the
// skipped span. The next burst is due one interval after now.
func (p *Producer) SyncClock(now float64) {
	p.currentTime = now
	p.lastSpawn = now
}

// Reset rewinds the clock to zero and samples a fresh interval.
func (p *Producer) Reset() {
	p.currentTime = 0
	p.lastSpawn = 0
	p.nextSpawnInterval = p.cfg.Interval.Sample(p.rng)
	p.out = p.out[:0]
}

// due reports whether the next burst boundary has been reached.
func (p *Producer) due() bool {
	next := p.lastSpawn + p.nextSpawnInterval
	return next <= p.currentTime+clockEpsilon*math.Max(1, math.Abs(p.currentTime))
}

// Produce advances the clock by elapsed seconds and returns the particles due.
//
// The returned slice is reused by the next call. Each particle is zeroed and
// stamped with the burst time. A pool failure ends the current burst; the
// clock still advances and the error is returned with whatever was produced.
func (p *Producer) Produce(elapsed float64) ([]*Particle, error) {
	p.out = p.out[:0]
	p.currentTime += elapsed

	var errs []error
	for p.due() {
		count := p.cfg.Count.Sample(p.rng)
		p.lastSpawn += p.nextSpawnInterval

		for i := 0; i < count; i++ {
			pt, err := p.pool.Acquire()
			if err != nil {
				errs = append(errs, err)
				break
			}
			pt.Reset()
			pt.CreationTime = p.lastSpawn
			pt.Time = p.lastSpawn
			p.out = append(p.out, pt)
		}

		p.nextSpawnInterval = p.cfg.Interval.Sample(p.rng)
	}
	return p.out, errors.Join(errs...)
}
