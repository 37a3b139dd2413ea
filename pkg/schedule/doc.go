// Package schedule runs recurring work at a fixed period.
//
// A Scheduler accepts a period and a unit of work and returns a Handle.
// The handle is bound to the work for its whole lifetime:
//
//   - work never runs concurrently with itself
//   - Cancel may be called any number of times; only the first call has effect
//   - no run starts after Cancel has been called
//   - Cancel returns only after an in-flight run has completed
//
// Cancel must not be called from inside the work function.
//
// Ticker is the production scheduler: one goroutine per handle driven by a
// time.Ticker. Manual runs work only when Tick is called and is meant for
// tests and simulations that need deterministic stepping.
package schedule
