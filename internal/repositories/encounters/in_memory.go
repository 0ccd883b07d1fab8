package encounters

import (
	"context"
	"sync"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/combat"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

type inMemoryRepository struct {
	mu         sync.RWMutex
	encounters map[string]*combat.Encounter
	active     map[string]bool // ids of encounters not yet in a terminal state
}

// NewInMemoryRepository creates a new in-memory encounter repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		encounters: make(map[string]*combat.Encounter),
		active:     make(map[string]bool),
	}
}

func (r *inMemoryRepository) Create(ctx context.Context, encounter *combat.Encounter) error {
	if encounter == nil {
		return errors.InvalidArgument("encounter cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encounters[encounter.ID]; exists {
		return errors.AlreadyExistsf("encounter %s already exists", encounter.ID)
	}

	r.encounters[encounter.ID] = cloneEncounter(encounter)
	if !encounter.State.Terminal() {
		r.active[encounter.ID] = true
	}

	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, id string) (*combat.Encounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	encounter, exists := r.encounters[id]
	if !exists {
		return nil, errors.NotFoundf("encounter %s not found", id)
	}

	return cloneEncounter(encounter), nil
}

func (r *inMemoryRepository) Update(ctx context.Context, encounter *combat.Encounter) error {
	if encounter == nil {
		return errors.InvalidArgument("encounter cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encounters[encounter.ID]; !exists {
		return errors.NotFoundf("encounter %s not found", encounter.ID)
	}

	r.encounters[encounter.ID] = cloneEncounter(encounter)
	if encounter.State.Terminal() {
		delete(r.active, encounter.ID)
	} else {
		r.active[encounter.ID] = true
	}

	return nil
}

func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encounters[id]; !exists {
		return errors.NotFoundf("encounter %s not found", id)
	}

	delete(r.encounters, id)
	delete(r.active, id)

	return nil
}

func (r *inMemoryRepository) ListActive(ctx context.Context) ([]*combat.Encounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]*combat.Encounter, 0, len(r.active))
	for id := range r.active {
		if encounter, exists := r.encounters[id]; exists {
			active = append(active, cloneEncounter(encounter))
		}
	}

	return active, nil
}

func (r *inMemoryRepository) GetMany(ctx context.Context, ids []string) ([]*combat.Encounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	encounters := make([]*combat.Encounter, 0, len(ids))
	for _, id := range ids {
		encounter, exists := r.encounters[id]
		if !exists {
			return nil, errors.NotFoundf("encounter %s not found", id)
		}
		encounters = append(encounters, cloneEncounter(encounter))
	}

	return encounters, nil
}
