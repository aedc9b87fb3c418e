package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered       uint64
	SignInSuccesses       uint64
	SignInFailures        uint64
	AuthRejections        uint64
	SignInDurationCount   uint64
	SignInDurationTotalNs int64
	NewsCreated           uint64
	NewsUpdated           uint64
	NewsDeleted           uint64
	ViewsRecorded         uint64
	ViewsDropped          uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered       uint64
	signInSuccesses       uint64
	signInFailures        uint64
	authRejections        uint64
	signInDurationCount   uint64
	signInDurationTotalNs int64
	newsCreated           uint64
	newsUpdated           uint64
	newsDeleted           uint64
	viewsRecorded         uint64
	viewsDropped          uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:       atomic.LoadUint64(&m.usersRegistered),
		SignInSuccesses:       atomic.LoadUint64(&m.signInSuccesses),
		SignInFailures:        atomic.LoadUint64(&m.signInFailures),
		AuthRejections:        atomic.LoadUint64(&m.authRejections),
		SignInDurationCount:   atomic.LoadUint64(&m.signInDurationCount),
		SignInDurationTotalNs: atomic.LoadInt64(&m.signInDurationTotalNs),
		NewsCreated:           atomic.LoadUint64(&m.newsCreated),
		NewsUpdated:           atomic.LoadUint64(&m.newsUpdated),
		NewsDeleted:           atomic.LoadUint64(&m.newsDeleted),
		ViewsRecorded:         atomic.LoadUint64(&m.viewsRecorded),
		ViewsDropped:          atomic.LoadUint64(&m.viewsDropped),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncSignInSuccess increments the successful sign-in counter.
func (m *InMemoryRecorder) IncSignInSuccess() {
	atomic.AddUint64(&m.signInSuccesses, 1)
}

// IncSignInFailure increments the failed sign-in counter.
func (m *InMemoryRecorder) IncSignInFailure() {
	atomic.AddUint64(&m.signInFailures, 1)
}

// IncAuthRejected increments the rejected-token counter.
func (m *InMemoryRecorder) IncAuthRejected() {
	atomic.AddUint64(&m.authRejections, 1)
}

// ObserveSignInDuration records a sign-in duration.
func (m *InMemoryRecorder) ObserveSignInDuration(duration time.Duration) {
	atomic.AddUint64(&m.signInDurationCount, 1)
	atomic.AddInt64(&m.signInDurationTotalNs, duration.Nanoseconds())
}

// IncNewsCreated increments the news created counter.
func (m *InMemoryRecorder) IncNewsCreated() {
	atomic.AddUint64(&m.newsCreated, 1)
}

// IncNewsUpdated increments the news updated counter.
func (m *InMemoryRecorder) IncNewsUpdated() {
	atomic.AddUint64(&m.newsUpdated, 1)
}

// IncNewsDeleted increments the news deleted counter.
func (m *InMemoryRecorder) IncNewsDeleted() {
	atomic.AddUint64(&m.newsDeleted, 1)
}

// IncViewRecorded increments the view counter for the given status.
func (m *InMemoryRecorder) IncViewRecorded(status string) {
	if status == "success" {
		atomic.AddUint64(&m.viewsRecorded, 1)
		return
	}
	atomic.AddUint64(&m.viewsDropped, 1)
}

// ObserveViewFlushSize is tracked only as recorded views in memory.
func (m *InMemoryRecorder) ObserveViewFlushSize(size int) {}
