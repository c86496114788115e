// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	jobqueue "github.com/okian/lootcouncil/internal/adapters/mq/queue"
	workerpool "github.com/okian/lootcouncil/internal/adapters/mq/worker"
	"github.com/okian/lootcouncil/internal/adapters/repository"
	"github.com/okian/lootcouncil/internal/adapters/sources"
	"github.com/okian/lootcouncil/internal/domain/catalog"
	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/internal/domain/reconcile"
	"github.com/okian/lootcouncil/internal/domain/scoring"
	"github.com/okian/lootcouncil/internal/domain/types"
	"github.com/okian/lootcouncil/pkg/logger"
	"github.com/okian/lootcouncil/pkg/metrics"
)

// maxCachedRankings bounds the rankings kept for later assignment.
const maxCachedRankings = 512

// Service implements the API dependencies for the loot council.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	jobs       *jobqueue.InMemoryQueue
	scorer     scoring.Scorer
	workerPool *workerpool.Pool
	parser     *sources.Parser

	// Configuration
	catalog     *catalog.Catalog
	bis         []model.BisEntry
	weights     scoring.Weights
	assignments repository.AssignmentStore
	workerCount int
	queueSize   int
	staleAfter  time.Duration
	now         func() time.Time

	// Rankings by loot id, oldest first in rankingOrder.
	rankMu       sync.Mutex
	rankings     map[string]types.Ranking
	rankingOrder []string

	// runCtx outlives the Start context; Stop cancels it after the pool drains.
	runCtx    context.Context
	cancelRun context.CancelFunc

	started bool
	logger  logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		catalog:     catalog.New(nil, nil, nil),
		weights:     scoring.DefaultWeights(),
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10_000,
		staleAfter:  reconcile.DefaultStaleAfter,
		now:         time.Now,
		rankings:    make(map[string]types.Ranking),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting loot council service...")
	s.runCtx, s.cancelRun = context.WithCancel(context.WithoutCancel(ctx))

	storeOpts := []repository.Option{repository.WithClock(s.now)}
	if s.assignments != nil {
		storeOpts = append(storeOpts, repository.WithAssignmentStore(s.assignments))
	}
	s.store = repository.NewMemoryStore(s.runCtx, storeOpts...)
	s.jobs = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)
	s.scorer = scoring.NewInMemoryScorer(
		scoring.WithCatalog(s.catalog),
		scoring.WithWeights(s.weights),
	)
	s.parser = sources.NewParser(s.catalog, sources.WithLogger(s.logger.Named("sources")))

	s.workerPool = workerpool.NewPool(s.workerCount, s.jobs, s.scorer,
		workerpool.WithPoolLogger(s.logger.Named("worker-pool")))
	s.workerPool.Start(s.runCtx)

	metrics.UpdateCatalogItems(s.catalog.Len())

	s.started = true
	s.logger.Info(ctx, "loot council service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
		logger.Int("catalog_items", s.catalog.Len()),
		logger.Duration("stale_after", s.staleAfter),
	)
	return nil
}

// Stop drains the workers and closes the stores.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping loot council service...")

	var firstErr error
	if err := s.workerPool.Shutdown(ctx); err != nil {
		firstErr = err
	}
	s.cancelRun()
	if err := s.store.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close store: %w", err)
	}

	s.started = false
	s.logger.Info(ctx, "loot council service stopped")
	return firstErr
}

func (s *Service) running() error {
	_, err := s.runDone()
	return err
}

// runDone returns the channel closed once the workers are gone.
func (s *Service) runDone() (<-chan struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.runCtx.Done(), nil
}

// PutCharacter adds or replaces a roster entry.
func (s *Service) PutCharacter(ctx context.Context, c model.Character) error {
	if err := s.running(); err != nil {
		return err
	}
	return s.store.PutCharacter(ctx, c)
}

// Ingest parses a raw source payload and stores the snapshot it describes.
// An older snapshot than the stored one is reported as not accepted.
func (s *Service) Ingest(ctx context.Context, data []byte) (types.IngestResult, error) {
	if err := s.running(); err != nil {
		return types.IngestResult{}, err
	}
	parsed, err := s.parser.Parse(ctx, data)
	if err != nil {
		return types.IngestResult{}, err
	}
	if _, err := s.store.Character(ctx, parsed.CharacterID()); err != nil {
		return types.IngestResult{}, err
	}

	var accepted bool
	switch parsed.Kind {
	case model.KindDroptimizer:
		accepted, err = s.store.PutDroptimizer(ctx, *parsed.Droptimizer)
	case model.KindSimC:
		accepted, err = s.store.PutSimC(ctx, *parsed.SimC)
	case model.KindProfile:
		accepted, err = s.store.PutProfile(ctx, *parsed.Profile)
	}
	if err != nil {
		return types.IngestResult{}, err
	}

	if accepted {
		metrics.RecordSnapshotIngested(string(parsed.Kind))
	} else {
		metrics.RecordSnapshotIgnored(string(parsed.Kind))
		s.logger.Info(ctx, "older snapshot ignored",
			logger.String("character_id", parsed.CharacterID()),
			logger.String("source", string(parsed.Kind)),
			logger.Time("timestamp", parsed.Timestamp()))
	}
	return types.IngestResult{
		CharacterID: parsed.CharacterID(),
		Source:      parsed.Kind,
		Accepted:    accepted,
		Skipped:     parsed.Skipped,
	}, nil
}

// Status reports the freshness of every source of a character.
func (s *Service) Status(ctx context.Context, characterID string) (types.CharacterStatus, error) {
	if err := s.running(); err != nil {
		return types.CharacterStatus{}, err
	}
	c, err := s.store.Character(ctx, characterID)
	if err != nil {
		return types.CharacterStatus{}, err
	}
	src, err := s.store.Sources(ctx, characterID)
	if err != nil {
		return types.CharacterStatus{}, err
	}
	assigned, err := s.store.Assigned(ctx, characterID)
	if err != nil {
		return types.CharacterStatus{}, err
	}
	return types.CharacterStatus{
		CharacterID:   c.ID,
		CharacterName: c.Name,
		Assigned:      len(assigned),
		Sources:       reconcile.Report(src, assigned, s.now(), s.staleAfter),
		Vault:         reconcile.VaultItems(src),
	}, nil
}

// Evaluate ranks the eligible characters for a dropped item. Each candidate
// is scored by the worker pool; ranking waits for the whole batch because the
// score is normalized against the best DPS gain among candidates.
func (s *Service) Evaluate(ctx context.Context, req sources.LootRequest) (types.Ranking, error) {
	if err := s.running(); err != nil {
		return types.Ranking{}, err
	}
	start := time.Now()
	metrics.RecordEvaluation()

	ranking, err := s.evaluate(ctx, req)
	metrics.RecordEvaluationLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		metrics.RecordEvaluationFailure()
		return types.Ranking{}, err
	}
	s.remember(ranking)
	return ranking, nil
}

func (s *Service) evaluate(ctx context.Context, req sources.LootRequest) (types.Ranking, error) {
	done, err := s.runDone()
	if err != nil {
		return types.Ranking{}, err
	}
	loot, err := s.parser.BuildLoot(ctx, req)
	if err != nil {
		return types.Ranking{}, err
	}
	item, _ := s.catalog.Item(req.ItemID)

	candidates, err := s.candidates(ctx, req.Eligible)
	if err != nil {
		return types.Ranking{}, err
	}
	eligible := make([]model.Character, 0, len(candidates))
	loot.Eligible = loot.Eligible[:0]
	for _, c := range candidates {
		if scoring.Eligible(item, c.Class, s.catalog) {
			eligible = append(eligible, c)
			loot.Eligible = append(loot.Eligible, c.ID)
		}
	}

	reply := make(chan jobqueue.Outcome, len(eligible))
	names := make(map[string]string, len(eligible))
	for _, c := range eligible {
		in, err := s.input(ctx, loot, c)
		if err != nil {
			return types.Ranking{}, err
		}
		job := jobqueue.Job{ID: loot.ID + ":" + c.ID, Input: in, Reply: reply}
		if err := s.jobs.Enqueue(ctx, job); err != nil {
			return types.Ranking{}, fmt.Errorf("enqueue %s: %w", job.ID, err)
		}
		names[job.ID] = c.Name
	}

	results := make([]scoring.Result, 0, len(eligible))
	var failed []string
	for range eligible {
		select {
		case o := <-reply:
			if o.Err != nil {
				failed = append(failed, names[o.JobID])
				continue
			}
			results = append(results, o.Result)
		case <-ctx.Done():
			return types.Ranking{}, fmt.Errorf("gather scores: %w", ctx.Err())
		case <-done:
			return types.Ranking{}, fmt.Errorf("gather scores: %w", jobqueue.ErrQueueClosed)
		}
	}

	entries := scoring.Rank(results, s.weights)
	for _, e := range entries {
		metrics.RecordScore(e.Score)
	}
	s.logger.Debug(ctx, "loot evaluated",
		logger.String("loot_id", loot.ID),
		logger.Int("item_id", req.ItemID),
		logger.Int("candidates", len(entries)),
		logger.Int("failed", len(failed)))

	return types.Ranking{
		LootID:  loot.ID,
		ItemID:  req.ItemID,
		Loot:    loot,
		Entries: entries,
		Failed:  failed,
	}, nil
}

// candidates resolves the requested ids, or the whole roster when none.
// Unknown ids are skipped.
func (s *Service) candidates(ctx context.Context, ids []string) ([]model.Character, error) {
	if len(ids) == 0 {
		return s.store.Characters(ctx)
	}
	out := make([]model.Character, 0, len(ids))
	for _, id := range ids {
		c, err := s.store.Character(ctx, id)
		if err != nil {
			s.logger.Warn(ctx, "unknown candidate skipped", logger.String("character_id", id))
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Service) input(ctx context.Context, loot model.Loot, c model.Character) (scoring.Input, error) {
	src, err := s.store.Sources(ctx, c.ID)
	if err != nil {
		return scoring.Input{}, err
	}
	assigned, err := s.store.Assigned(ctx, c.ID)
	if err != nil {
		return scoring.Input{}, err
	}
	return scoring.Input{
		Loot:      loot,
		Character: c,
		Sources:   src,
		Assigned:  assigned,
		Bis:       s.bis,
	}, nil
}

func (s *Service) remember(r types.Ranking) {
	s.rankMu.Lock()
	defer s.rankMu.Unlock()
	if _, ok := s.rankings[r.LootID]; !ok {
		s.rankingOrder = append(s.rankingOrder, r.LootID)
	}
	s.rankings[r.LootID] = r
	for len(s.rankingOrder) > maxCachedRankings {
		delete(s.rankings, s.rankingOrder[0])
		s.rankingOrder = s.rankingOrder[1:]
	}
}

// Ranking returns a cached ranking by loot id.
func (s *Service) Ranking(lootID string) (types.Ranking, bool) {
	s.rankMu.Lock()
	defer s.rankMu.Unlock()
	r, ok := s.rankings[lootID]
	return r, ok
}

// Assign gives an evaluated loot to one of its ranked candidates. The
// highlights of that evaluation are frozen into the assignment.
func (s *Service) Assign(ctx context.Context, lootID, characterID string) (model.LootWithAssigned, error) {
	if err := s.running(); err != nil {
		return model.LootWithAssigned{}, err
	}
	r, ok := s.Ranking(lootID)
	if !ok {
		return model.LootWithAssigned{}, fmt.Errorf("loot %s: %w: %w", lootID, ErrUnknownLoot, repository.ErrNotFound)
	}
	e, ok := r.Entry(characterID)
	if !ok {
		return model.LootWithAssigned{}, fmt.Errorf("character %s for loot %s: %w: %w", characterID, lootID, ErrNotEligible, repository.ErrInvalidRecord)
	}

	h := e.Highlights
	charID := characterID
	l := model.LootWithAssigned{
		Loot:                r.Loot,
		AssignedCharacterID: &charID,
		AssignedHighlights:  &h,
		AssignedAt:          s.now(),
	}
	if err := s.store.Assign(ctx, l); err != nil {
		return model.LootWithAssigned{}, err
	}
	metrics.RecordAssignment()
	s.logger.Info(ctx, "loot assigned",
		logger.String("loot_id", lootID),
		logger.String("character_id", characterID),
		logger.Int("score", e.Score))
	return l, nil
}

// Assignments returns the loot a character received, oldest first.
func (s *Service) Assignments(ctx context.Context, characterID string) ([]model.LootWithAssigned, error) {
	if err := s.running(); err != nil {
		return nil, err
	}
	if _, err := s.store.Character(ctx, characterID); err != nil {
		return nil, err
	}
	return s.store.Assigned(ctx, characterID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"catalogItems": s.catalog.Len(),
		"staleAfter":   s.staleAfter.String(),
	}

	if s.started {
		queueLen := s.jobs.Len(ctx)
		characters := s.store.CountCharacters(ctx)
		assignments := s.store.CountAssignments(ctx)

		stats["queueLength"] = queueLen
		stats["activeWorkers"] = s.workerPool.Active()
		stats["totalCharacters"] = characters
		stats["totalAssignments"] = assignments

		metrics.UpdateTotalCharacters(characters)
		metrics.UpdateTotalAssignments(assignments)
	}

	s.rankMu.Lock()
	stats["cachedRankings"] = len(s.rankings)
	s.rankMu.Unlock()

	return stats
}
