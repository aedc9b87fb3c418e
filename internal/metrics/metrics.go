// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Identity metrics
	IncUserRegistered()
	IncSignInSuccess()
	IncSignInFailure()
	IncAuthRejected()
	ObserveSignInDuration(duration time.Duration)

	// News management metrics
	IncNewsCreated()
	IncNewsUpdated()
	IncNewsDeleted()

	// View pipeline metrics
	IncViewRecorded(status string) // status: "success" or "dropped"
	ObserveViewFlushSize(size int)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
