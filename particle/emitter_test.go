package particle

import (
	"math/rand"
	"testing"
)

func newTestEmitter(t *testing.T, pool *Pool[*Particle], prod ProducerConfig, inits ...Initializer) *Emitter {
	t.Helper()
	p, err := NewProducer(prod, pool, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewProducer: %v", err)
	}
	return NewEmitter(pool, p, inits...)
}

func everySecond(n int) ProducerConfig {
	return ProducerConfig{Interval: TimeRange{Min: 1, Max: 1}, Count: IntRange{Min: n, Max: n}}
}

func TestEmitterAppliesOffsetAfterInitializers(t *testing.T) {
	pool, _ := NewPool(8, NewParticle)
	e := newTestEmitter(t, pool, everySecond(2), InitializerFunc(func(p *Particle) {
		p.Position = Vec2{X: 1, Y: 2}
		p.Energy = 1
	}))
	e.SetOffset(Vec2{X: 100, Y: 50})

	out, err := e.Emit(1)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 particles, got %d", len(out))
	}
	for _, p := range out {
		if p.Position != (Vec2{X: 101, Y: 52}) {
			t.Errorf("expected (101, 52), got %+v", p.Position)
		}
	}
}

func TestEmitterInitializerOrder(t *testing.T) {
	pool, _ := NewPool(8, NewParticle)
	var order []string
	first := InitializerFunc(func(p *Particle) {
		order = append(order, "first")
		p.Size = 1
	})
	second := InitializerFunc(func(p *Particle) {
		order = append(order, "second")
		p.Size = 2
	})
	e := newTestEmitter(t, pool, everySecond(1), first)
	e.AddInitializer(second)

	out, _ := e.Emit(1)
	if len(out) != 1 {
		t.Fatalf("expected 1 particle, got %d", len(out))
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("unexpected initializer order %v", order)
	}
	if out[0].Size != 2 {
		t.Errorf("later initializer should win, got size %v", out[0].Size)
	}
}

func TestEmitterDisabledSkipsBacklog(t *testing.T) {
	pool, _ := NewPool(8, NewParticle)
	e := newTestEmitter(t, pool, everySecond(1))

	e.SetEnabled(false)
	if out, _ := e.Emit(5); len(out) != 0 {
		t.Fatalf("disabled emitter produced %d particles", len(out))
	}

	e.SetEnabled(true)
	out, _ := e.Emit(1)
	if len(out) != 1 {
		t.Errorf("expected a single burst after re-enabling, got %d", len(out))
	}
	if len(out) == 1 && out[0].CreationTime != 6 {
		t.Errorf("expected creation time 6, got %v", out[0].CreationTime)
	}
}
