// Package observe fans change notifications out to observers.
//
// A Registry is the Notifier handed to object instances. Observers register
// interest in an object instance, optionally restricted to some resources,
// and receive one Notification per change event that touches them. A change
// event naming several resources is delivered as a single Notification that
// lists every matching id in the order the instance reported them.
//
// Observer callbacks run on the goroutine that reported the change, after
// the registry lock is released. A panicking observer is logged and does
// not affect other observers.
package observe
