// ABOUTME: Per-generation telemetry stream from the engine to its host
// ABOUTME: Defines the Update record, the Observer interface and a channel adapter

package main

import "course-scheduler/timetable"

// Update is the telemetry record the engine emits exactly once per
// generation, in generation order, before testing termination. All fields
// are value snapshots, safe to hand across goroutines.
type Update struct {
	Generation    int
	BestCost      float64
	Conflicts     int
	ContinuityPct float64
	Diversity     float64
	MutationRate  float64
	EliteCount    int
	Schedule      []timetable.ScheduleRow // best schedule of this generation
}

// Observer receives the engine's telemetry stream. Calls happen on the
// engine's goroutine; observers that drive a UI must hand the update off
// rather than block.
type Observer interface {
	Generation(Update)
}

// ObserverFunc adapts a plain function to the Observer interface
type ObserverFunc func(Update)

// Generation implements Observer
func (f ObserverFunc) Generation(u Update) {
	f(u)
}

// channelObserver forwards updates into a buffered channel without ever
// blocking the engine. Dropping is host policy: a stalled UI loses
// intermediate frames, not correctness, because the engine keeps the full
// series itself.
type channelObserver struct {
	updates chan<- Update
}

// Generation implements Observer
func (o channelObserver) Generation(u Update) {
	select {
	case o.updates <- u:
	default:
	}
}
