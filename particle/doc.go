// Package particle implements a fixed-step particle simulation core.
//
// A System owns a Pool of reusable particles, a set of Emitters that decide when
// and where particles are born, and an ordered chain of Updaters that age and
// restyle them. Update advances the simulation by a variable frame time while
// applying updaters on a fixed step; Draw turns live particles into textured
// quads and hands them to a RenderSink in bounded batches.
//
// The package is single-threaded. Update and Draw must be called from one
// goroutine, and configuration changes (AddEmitter, AddUpdater, ...) must not
// overlap a frame.
package particle
