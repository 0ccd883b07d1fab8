package bestiary

//go:generate mockgen -destination=mock/mock_service.go -package=mockbestiary -source=service.go

import (
	"sort"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/dice"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/bestiary"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/combat"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

// Service looks up monster stat blocks and builds encounter participants
// from them
type Service interface {
	// Get fetches a stat block by key
	Get(key string) (bestiary.EnemyTemplate, error)

	// List returns the known monster keys in sorted order
	List() []string

	// GetByCR returns stat blocks within a challenge rating range,
	// inclusive on both ends
	GetByCR(minCR, maxCR float64) []bestiary.EnemyTemplate

	// Instantiate builds a combat participant from a stat block. The id
	// suffix distinguishes multiple instances of the same monster in one
	// encounter. Hit points roll from the hit dice when the block has
	// them, otherwise the flat maximum is used.
	Instantiate(key, idSuffix string, roller dice.Roller) (*combat.Participant, error)
}

type service struct {
	templates map[string]bestiary.EnemyTemplate
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	// Templates overrides the built-in catalog, mainly for tests
	Templates map[string]bestiary.EnemyTemplate
}

// NewService creates a new bestiary service
func NewService(cfg *ServiceConfig) Service {
	templates := bestiary.Catalog()
	if cfg != nil && cfg.Templates != nil {
		templates = cfg.Templates
	}

	return &service{templates: templates}
}

func (s *service) Get(key string) (bestiary.EnemyTemplate, error) {
	if key == "" {
		return bestiary.EnemyTemplate{}, errors.InvalidArgument("monster key is required")
	}

	tmpl, ok := s.templates[key]
	if !ok {
		return bestiary.EnemyTemplate{}, errors.NotFoundf("monster %q is not in the bestiary", key)
	}
	return tmpl, nil
}

func (s *service) List() []string {
	keys := make([]string, 0, len(s.templates))
	for key := range s.templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (s *service) GetByCR(minCR, maxCR float64) []bestiary.EnemyTemplate {
	var matches []bestiary.EnemyTemplate
	for _, key := range s.List() {
		tmpl := s.templates[key]
		if tmpl.ChallengeRating >= minCR && tmpl.ChallengeRating <= maxCR {
			matches = append(matches, tmpl)
		}
	}
	return matches
}

func (s *service) Instantiate(key, idSuffix string, roller dice.Roller) (*combat.Participant, error) {
	tmpl, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if idSuffix == "" {
		return nil, errors.InvalidArgument("instance id suffix is required")
	}

	maxHP := tmpl.MaxHP
	if tmpl.HitDice != "" && roller != nil {
		outcome, err := dice.Roll(roller, tmpl.HitDice)
		if err != nil {
			return nil, errors.Wrapf(err, "rolling hit dice for %s", key)
		}
		maxHP = outcome.Total
		if maxHP < 1 {
			maxHP = 1
		}
	}

	return combat.NewEnemyParticipant(combat.EnemyConfig{
		ID:              key + "-" + idSuffix,
		Name:            tmpl.Name,
		MaxHP:           maxHP,
		AC:              tmpl.AC,
		Speed:           tmpl.Speed,
		InitiativeBonus: tmpl.InitiativeBonus(),
		XPValue:         tmpl.XPValue,
		LootTable:       tmpl.LootTable,
	})
}
