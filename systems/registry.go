package systems

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "visual", "ai")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	// Scene
	r.Register(SystemInfo{ID: "motion", Name: "Motion", Description: "Moves and bounces emitter anchors", Category: "scene"})
	r.Register(SystemInfo{ID: "anchors", Name: "Anchors", Description: "Copies anchor positions to emitters", Category: "scene"})

	// Particle frame
	r.Register(SystemInfo{ID: "emitting", Name: "Emit", Description: "Runs producers and initializers", Category: "particles"})
	r.Register(SystemInfo{ID: "simulating", Name: "Simulate", Description: "Applies updaters in fixed steps", Category: "particles"})
	r.Register(SystemInfo{ID: "removing", Name: "Remove", Description: "Compacts dead particles into the pool", Category: "particles"})

	// Output
	r.Register(SystemInfo{ID: "drawing", Name: "Draw", Description: "Batches triangles to the render sink", Category: "render"})
	r.Register(SystemInfo{ID: "hud", Name: "HUD", Description: "Draws overlays and controls", Category: "render"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Flushes stats windows and CSV rows", Category: "output"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}
