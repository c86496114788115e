package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/internal/domain/reconcile"
	"github.com/okian/lootcouncil/pkg/metrics"
)

const defaultMetricsUpdateInterval = 5 * time.Second

type dropKey struct {
	characterID string
	difficulty  model.RaidDifficulty
}

// MemoryStore is an in-memory Store. Snapshots follow the newer-wins rule.
type MemoryStore struct {
	mu           sync.RWMutex
	characters   map[string]model.Character
	droptimizers map[dropKey]model.Droptimizer
	simc         map[string]model.SimC
	profiles     map[string]model.ExternalProfile

	assignments AssignmentStore
	now         func() time.Time

	metricsUpdateInterval time.Duration
	wg                    sync.WaitGroup
	stopChan              chan struct{}
	closeOnce             sync.Once
}

// NewMemoryStore constructs a store with configuration options. The
// background metrics updater stops on ctx cancellation or Close.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		characters:            make(map[string]model.Character),
		droptimizers:          make(map[dropKey]model.Droptimizer),
		simc:                  make(map[string]model.SimC),
		profiles:              make(map[string]model.ExternalProfile),
		now:                   time.Now,
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.assignments == nil {
		s.assignments = newMemoryAssignments(s.now)
	}

	s.startMetricsUpdater(ctx)
	return s
}

// startMetricsUpdater periodically publishes store sizes.
func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				metrics.UpdateTotalCharacters(s.CountCharacters(ctx))
				metrics.UpdateTotalAssignments(s.CountAssignments(ctx))
			}
		}
	}()
}

// Close stops the background goroutine and closes a delegated assignment
// store if it has a Close method.
func (s *MemoryStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
		if c, ok := s.assignments.(interface{ Close() error }); ok {
			err = c.Close()
		}
	})
	return err
}

func observeUpdate(start time.Time) {
	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
}

func observeQuery(start time.Time) {
	metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
}

// PutCharacter implements CharacterStore.
func (s *MemoryStore) PutCharacter(_ context.Context, c model.Character) error {
	defer observeUpdate(time.Now())
	if c.ID == "" {
		return fmt.Errorf("character without id: %w", ErrInvalidRecord)
	}
	if !c.Class.Valid() {
		return fmt.Errorf("character %s has class %d: %w", c.ID, c.Class, ErrInvalidRecord)
	}
	if c.Priority != nil && (*c.Priority < 1 || *c.Priority > 100) {
		return fmt.Errorf("character %s priority %d out of range: %w", c.ID, *c.Priority, ErrInvalidRecord)
	}
	s.mu.Lock()
	s.characters[c.ID] = c
	s.mu.Unlock()
	return nil
}

// Character implements CharacterStore.
func (s *MemoryStore) Character(_ context.Context, id string) (model.Character, error) {
	defer observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.characters[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Character{}, fmt.Errorf("character %s: %w", id, ErrNotFound)
	}
	return c, nil
}

// Characters implements CharacterStore.
func (s *MemoryStore) Characters(_ context.Context) ([]model.Character, error) {
	defer observeQuery(time.Now())
	s.mu.RLock()
	out := make([]model.Character, 0, len(s.characters))
	for _, c := range s.characters {
		out = append(out, c)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CountCharacters implements CharacterStore.
func (s *MemoryStore) CountCharacters(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.characters)
}

// PutDroptimizer implements SnapshotStore.
func (s *MemoryStore) PutDroptimizer(_ context.Context, d model.Droptimizer) (bool, error) {
	defer observeUpdate(time.Now())
	if d.CharacterID == "" {
		return false, fmt.Errorf("droptimizer without character: %w", ErrInvalidRecord)
	}
	key := dropKey{characterID: d.CharacterID, difficulty: d.RaidDifficulty}
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.droptimizers[key]; ok && !d.Timestamp.After(old.Timestamp) {
		return false, nil
	}
	s.droptimizers[key] = d
	return true, nil
}

// PutSimC implements SnapshotStore.
func (s *MemoryStore) PutSimC(_ context.Context, sc model.SimC) (bool, error) {
	defer observeUpdate(time.Now())
	if sc.CharacterID == "" {
		return false, fmt.Errorf("simc without character: %w", ErrInvalidRecord)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.simc[sc.CharacterID]; ok && !sc.Timestamp.After(old.Timestamp) {
		return false, nil
	}
	s.simc[sc.CharacterID] = sc
	return true, nil
}

// PutProfile implements SnapshotStore.
func (s *MemoryStore) PutProfile(_ context.Context, p model.ExternalProfile) (bool, error) {
	defer observeUpdate(time.Now())
	if p.CharacterID == "" {
		return false, fmt.Errorf("profile without character: %w", ErrInvalidRecord)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.profiles[p.CharacterID]; ok && !p.Timestamp.After(old.Timestamp) {
		return false, nil
	}
	s.profiles[p.CharacterID] = p
	return true, nil
}

// Sources implements SnapshotStore. Droptimizers are returned oldest first.
func (s *MemoryStore) Sources(_ context.Context, characterID string) (reconcile.Sources, error) {
	defer observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	var src reconcile.Sources
	for k, d := range s.droptimizers {
		if k.characterID == characterID {
			src.Droptimizers = append(src.Droptimizers, d)
		}
	}
	sort.Slice(src.Droptimizers, func(i, j int) bool {
		return src.Droptimizers[i].Timestamp.Before(src.Droptimizers[j].Timestamp)
	})
	if sc, ok := s.simc[characterID]; ok {
		src.SimC = &sc
	}
	if p, ok := s.profiles[characterID]; ok {
		src.Profile = &p
	}
	return src, nil
}

// Assign implements AssignmentStore.
func (s *MemoryStore) Assign(ctx context.Context, l model.LootWithAssigned) error {
	return s.assignments.Assign(ctx, l)
}

// Assignment implements AssignmentStore.
func (s *MemoryStore) Assignment(ctx context.Context, lootID string) (model.LootWithAssigned, error) {
	return s.assignments.Assignment(ctx, lootID)
}

// Assigned implements AssignmentStore.
func (s *MemoryStore) Assigned(ctx context.Context, characterID string) ([]model.LootWithAssigned, error) {
	return s.assignments.Assigned(ctx, characterID)
}

// CountAssignments implements AssignmentStore.
func (s *MemoryStore) CountAssignments(ctx context.Context) int {
	return s.assignments.CountAssignments(ctx)
}

// memoryAssignments is the default AssignmentStore.
type memoryAssignments struct {
	mu     sync.RWMutex
	byLoot map[string]model.LootWithAssigned
	now    func() time.Time
}

func newMemoryAssignments(now func() time.Time) *memoryAssignments {
	return &memoryAssignments{byLoot: make(map[string]model.LootWithAssigned), now: now}
}

func (m *memoryAssignments) Assign(_ context.Context, l model.LootWithAssigned) error {
	defer observeUpdate(time.Now())
	if err := validateAssignment(l); err != nil {
		return err
	}
	if l.AssignedAt.IsZero() {
		l.AssignedAt = m.now()
	}
	m.mu.Lock()
	m.byLoot[l.ID] = l
	m.mu.Unlock()
	return nil
}

func (m *memoryAssignments) Assignment(_ context.Context, lootID string) (model.LootWithAssigned, error) {
	defer observeQuery(time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.byLoot[lootID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.LootWithAssigned{}, fmt.Errorf("loot %s: %w", lootID, ErrNotFound)
	}
	return l, nil
}

func (m *memoryAssignments) Assigned(_ context.Context, characterID string) ([]model.LootWithAssigned, error) {
	defer observeQuery(time.Now())
	m.mu.RLock()
	var out []model.LootWithAssigned
	for _, l := range m.byLoot {
		if l.AssignedCharacterID != nil && *l.AssignedCharacterID == characterID {
			out = append(out, l)
		}
	}
	m.mu.RUnlock()
	sortAssigned(out)
	return out, nil
}

func (m *memoryAssignments) CountAssignments(_ context.Context) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byLoot)
}

func validateAssignment(l model.LootWithAssigned) error {
	if l.ID == "" {
		return fmt.Errorf("assignment without loot id: %w", ErrInvalidRecord)
	}
	if l.AssignedCharacterID == nil || *l.AssignedCharacterID == "" {
		return fmt.Errorf("loot %s assigned to nobody: %w", l.ID, ErrInvalidRecord)
	}
	return nil
}

func sortAssigned(out []model.LootWithAssigned) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AssignedAt.Equal(out[j].AssignedAt) {
			return out[i].AssignedAt.Before(out[j].AssignedAt)
		}
		return out[i].ID < out[j].ID
	})
}
