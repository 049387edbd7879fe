package components

// Anchor ties an entity to an emitter; the emitter follows the entity.
type Anchor struct {
	Emitter int  // Index into the particle system's emitter list
	Bounce  bool // Reflect off world bounds (false = wrap around)
}
