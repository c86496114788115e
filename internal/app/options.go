package service

import (
	"time"

	"github.com/okian/lootcouncil/internal/adapters/repository"
	"github.com/okian/lootcouncil/internal/domain/catalog"
	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/internal/domain/scoring"
	"github.com/okian/lootcouncil/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of scoring workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog sets the item catalog and the best-in-slot list.
func WithCatalog(c *catalog.Catalog, bis []model.BisEntry) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
		s.bis = bis
	}
}

// WithWeights sets the score multipliers.
func WithWeights(w scoring.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithStaleAfter sets the age past which a snapshot is reported stale.
func WithStaleAfter(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.staleAfter = d
		}
	}
}

// WithAssignmentStore persists assignments outside the memory store.
func WithAssignmentStore(as repository.AssignmentStore) Option {
	return func(s *Service) {
		s.assignments = as
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
