package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncSignInSuccess is a no-op.
func (n *NoopRecorder) IncSignInSuccess() {}

// IncSignInFailure is a no-op.
func (n *NoopRecorder) IncSignInFailure() {}

// IncAuthRejected is a no-op.
func (n *NoopRecorder) IncAuthRejected() {}

// ObserveSignInDuration is a no-op.
func (n *NoopRecorder) ObserveSignInDuration(duration time.Duration) {}

// IncNewsCreated is a no-op.
func (n *NoopRecorder) IncNewsCreated() {}

// IncNewsUpdated is a no-op.
func (n *NoopRecorder) IncNewsUpdated() {}

// IncNewsDeleted is a no-op.
func (n *NoopRecorder) IncNewsDeleted() {}

// IncViewRecorded is a no-op.
func (n *NoopRecorder) IncViewRecorded(status string) {}

// ObserveViewFlushSize is a no-op.
func (n *NoopRecorder) ObserveViewFlushSize(size int) {}
