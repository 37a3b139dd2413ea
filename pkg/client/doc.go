// Package client hosts object instances and dispatches reads and executes
// to them.
//
// The hierarchy mirrors the device model:
//
//	Client
//	└── ObjectEnabler (one per object id, e.g. 3304 humidity)
//	    └── Instance (one per instance id)
//	        └── resources, served through a Table of Handlers
//
// Every read and execute returns a response value. Handler errors and panics
// are converted into failure responses at the dispatch boundary and never
// reach the caller.
//
// Instances report changed resources through a Notifier. One call carries
// every resource id that changed in the same step, primary id first.
package client
