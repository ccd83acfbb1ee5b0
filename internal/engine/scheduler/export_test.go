package scheduler

import (
	"maps"
	"time"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
)

// TargetStatuses returns a copy of the internal target status map.
func (s *Scheduler) TargetStatuses() map[string]domain.TargetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.targetStatus)
}

// SetParallelism overrides the number of targets run at once.
func (s *Scheduler) SetParallelism(n int) {
	s.parallelism = n
}

// SetClock overrides the fingerprint timestamp source.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// StackOf exposes stackOf for tests.
var StackOf = stackOf
