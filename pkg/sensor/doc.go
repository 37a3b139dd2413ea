// Package sensor implements simulated IPSO sensor instances.
//
// A Sensor owns a current value and the minimum and maximum measured since
// construction or the last reset. A background task samples a Source at a
// fixed period; each tick commits the sample, updates the tracker and then
// reports the primary resource plus any changed bound in one notification.
//
// Reads, executes and the commit step of a tick are serialized by one lock
// per instance, so every read observes the state left by exactly one tick.
// Different instances share nothing and run in parallel.
//
// Exposed floating point values are rounded to two decimals with half-up
// semantics; internal state keeps full precision.
package sensor
