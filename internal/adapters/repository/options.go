package repository

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// WithAssignmentStore delegates assignments to another store, typically the
// sqlite one, while characters and snapshots stay in memory.
func WithAssignmentStore(a AssignmentStore) Option {
	return func(s *MemoryStore) {
		if a != nil {
			s.assignments = a
		}
	}
}

// WithClock overrides the time source used for assignment timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}
