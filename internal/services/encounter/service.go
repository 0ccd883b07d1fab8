package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=mockencounter -source=service.go

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/dice"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/combat"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/repositories/encounters"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/rules"
	bestService "github.com/BlakeDanielson/SoloRelms-sub001/internal/services/bestiary"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/uuid"
)

// Service defines the encounter service interface
type Service interface {
	// CreateEncounter builds a new encounter from character sheets and
	// bestiary keys
	CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*combat.Encounter, error)

	// GetEncounter retrieves an encounter by ID
	GetEncounter(ctx context.Context, encounterID string) (*combat.Encounter, error)

	// ListActiveEncounters retrieves all encounters still in play
	ListActiveEncounters(ctx context.Context) ([]*combat.Encounter, error)

	// RollInitiative rolls initiative for every participant and starts
	// combat
	RollInitiative(ctx context.Context, encounterID string) (*combat.Encounter, error)

	// AdvanceTurn moves to the next participant in the turn order
	AdvanceTurn(ctx context.Context, encounterID string) (*combat.Encounter, error)

	// ApplyDamage deals damage to a participant
	ApplyDamage(ctx context.Context, encounterID, targetID string, amount int, damageType string) (*combat.Encounter, error)

	// ApplyHealing restores hit points to a participant
	ApplyHealing(ctx context.Context, encounterID, targetID string, amount int) (*combat.Encounter, error)

	// AddCondition attaches a condition to a participant
	AddCondition(ctx context.Context, encounterID, targetID string, condition combat.Condition) (*combat.Encounter, error)

	// RemoveCondition removes a named condition from a participant
	RemoveCondition(ctx context.Context, encounterID, targetID, name string) (*combat.Encounter, error)

	// Reactivate returns a healed participant to the fight
	Reactivate(ctx context.Context, encounterID, targetID string) (*combat.Encounter, error)

	// SimulateAttack resolves a full attack between two participants and
	// applies the damage in the same serialized step
	SimulateAttack(ctx context.Context, input *AttackInput) (*AttackResult, error)

	// EndEncounter ends an encounter as a retreat
	EndEncounter(ctx context.Context, encounterID string) (*combat.Encounter, error)

	// DeleteEncounter removes an encounter from storage
	DeleteEncounter(ctx context.Context, encounterID string) error
}

// MonsterGroup asks for count instances of one bestiary entry
type MonsterGroup struct {
	Key   string
	Count int
}

// CreateEncounterInput contains data for creating an encounter
type CreateEncounterInput struct {
	Characters []rules.CharacterSheet
	Monsters   []MonsterGroup

	// CharacterSpeed applies to all characters; defaults to 30
	CharacterSpeed int
}

// AttackInput describes one attack to resolve inside an encounter
type AttackInput struct {
	EncounterID string
	AttackerID  string
	TargetID    string

	AttackBonus    int
	DamageNotation string
	DamageType     string
	Mode           dice.AdvantageMode

	// CriticalRange defaults to 20
	CriticalRange int
}

// AttackResult carries the resolved attack and the encounter state after
// any damage landed
type AttackResult struct {
	Outcome          *rules.AttackOutcome
	TargetEliminated bool
	Encounter        *combat.Encounter
}

type service struct {
	repository    encounters.Repository
	bestiary      bestService.Service
	uuidGenerator uuid.Generator
	roller        dice.Roller
	logger        zerolog.Logger

	// encounterLocks serializes mutations per encounter id
	encounterLocks sync.Map
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    encounters.Repository // Required
	Bestiary      bestService.Service   // Required
	UUIDGenerator uuid.Generator        // Defaults to random UUIDs
	Roller        dice.Roller           // Defaults to a time-seeded roller
	Logger        *zerolog.Logger       // Defaults to a no-op logger
}

// NewService creates a new encounter service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Bestiary == nil {
		panic("bestiary service is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		bestiary:      cfg.Bestiary,
		uuidGenerator: cfg.UUIDGenerator,
		roller:        cfg.Roller,
		logger:        zerolog.Nop(),
	}

	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if cfg.Logger != nil {
		svc.logger = *cfg.Logger
	}

	return svc
}

func (s *service) lockEncounter(encounterID string) func() {
	muIface, _ := s.encounterLocks.LoadOrStore(encounterID, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// mutate runs fn against the stored encounter under the per-encounter
// lock and persists the result. Rewards settle before the write so a
// victory reaches storage with its XP and loot already attached.
func (s *service) mutate(ctx context.Context, encounterID string, fn func(*combat.Encounter) error) (*combat.Encounter, error) {
	unlock := s.lockEncounter(encounterID)
	defer unlock()

	enc, err := s.repository.Get(ctx, encounterID)
	if err != nil {
		return nil, err
	}

	if err := fn(enc); err != nil {
		return nil, err
	}

	if enc.State == combat.StateVictory && enc.LootAwarded == nil {
		loot, err := enc.GenerateLoot(s.roller)
		if err != nil {
			return nil, err
		}
		enc.RecordLoot(loot)
		s.logger.Info().
			Str("encounter_id", enc.ID).
			Int("xp", enc.XPAwarded).
			Int("loot_items", len(loot)).
			Msg("encounter won, rewards settled")
	}

	if err := s.repository.Update(ctx, enc); err != nil {
		return nil, err
	}

	return enc, nil
}

func (s *service) CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*combat.Encounter, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.Characters) == 0 {
		return nil, errors.InvalidArgument("at least one character is required")
	}
	if len(input.Monsters) == 0 {
		return nil, errors.InvalidArgument("at least one monster group is required")
	}

	speed := input.CharacterSpeed
	if speed == 0 {
		speed = 30
	}

	enc := combat.NewEncounter(s.uuidGenerator.New())

	for _, sheet := range input.Characters {
		p, err := combat.NewCharacterParticipant(sheet, speed)
		if err != nil {
			return nil, err
		}
		if err := enc.AddParticipant(p); err != nil {
			return nil, err
		}
	}

	for _, group := range input.Monsters {
		if group.Count < 1 {
			return nil, errors.OutOfRangef("monster count must be at least 1, got %d", group.Count)
		}
		for i := 1; i <= group.Count; i++ {
			p, err := s.bestiary.Instantiate(group.Key, s.uuidGenerator.New(), s.roller)
			if err != nil {
				return nil, err
			}
			if err := enc.AddParticipant(p); err != nil {
				return nil, err
			}
		}
	}

	if err := s.repository.Create(ctx, enc); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("encounter_id", enc.ID).
		Int("characters", len(input.Characters)).
		Int("participants", len(enc.Participants)).
		Msg("encounter created")

	return enc, nil
}

func (s *service) GetEncounter(ctx context.Context, encounterID string) (*combat.Encounter, error) {
	return s.repository.Get(ctx, encounterID)
}

func (s *service) ListActiveEncounters(ctx context.Context) ([]*combat.Encounter, error) {
	return s.repository.ListActive(ctx)
}

func (s *service) RollInitiative(ctx context.Context, encounterID string) (*combat.Encounter, error) {
	enc, err := s.mutate(ctx, encounterID, func(enc *combat.Encounter) error {
		return enc.RollInitiative(s.roller)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("encounter_id", enc.ID).
		Strs("turn_order", enc.TurnOrder).
		Msg("initiative rolled, combat started")

	return enc, nil
}

func (s *service) AdvanceTurn(ctx context.Context, encounterID string) (*combat.Encounter, error) {
	enc, err := s.mutate(ctx, encounterID, func(enc *combat.Encounter) error {
		return enc.AdvanceTurn()
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("encounter_id", enc.ID).
		Int("round", enc.Round).
		Int("turn_index", enc.TurnIndex).
		Msg("turn advanced")

	return enc, nil
}

func (s *service) ApplyDamage(ctx context.Context, encounterID, targetID string, amount int, damageType string) (*combat.Encounter, error) {
	return s.mutate(ctx, encounterID, func(enc *combat.Encounter) error {
		_, err := enc.ApplyDamage(targetID, amount, damageType)
		return err
	})
}

func (s *service) ApplyHealing(ctx context.Context, encounterID, targetID string, amount int) (*combat.Encounter, error) {
	return s.mutate(ctx, encounterID, func(enc *combat.Encounter) error {
		return enc.ApplyHealing(targetID, amount)
	})
}

func (s *service) AddCondition(ctx context.Context, encounterID, targetID string, condition combat.Condition) (*combat.Encounter, error) {
	return s.mutate(ctx, encounterID, func(enc *combat.Encounter) error {
		return enc.AddCondition(targetID, condition)
	})
}

func (s *service) RemoveCondition(ctx context.Context, encounterID, targetID, name string) (*combat.Encounter, error) {
	return s.mutate(ctx, encounterID, func(enc *combat.Encounter) error {
		return enc.RemoveCondition(targetID, name)
	})
}

func (s *service) Reactivate(ctx context.Context, encounterID, targetID string) (*combat.Encounter, error) {
	return s.mutate(ctx, encounterID, func(enc *combat.Encounter) error {
		return enc.Reactivate(targetID)
	})
}

func (s *service) SimulateAttack(ctx context.Context, input *AttackInput) (*AttackResult, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.AttackerID == input.TargetID {
		return nil, errors.InvalidArgument("attacker cannot target itself")
	}

	result := &AttackResult{}
	enc, err := s.mutate(ctx, input.EncounterID, func(enc *combat.Encounter) error {
		if enc.State != combat.StateInProgress {
			return errors.InvalidTransitionf("cannot attack in state %s", enc.State)
		}

		attacker, err := enc.Participant(input.AttackerID)
		if err != nil {
			return err
		}
		if !attacker.IsActive {
			return errors.InvalidTransitionf("participant %s is out of the fight", attacker.ID)
		}
		target, err := enc.Participant(input.TargetID)
		if err != nil {
			return err
		}

		outcome, err := rules.RollAttack(s.roller, input.AttackBonus, input.DamageNotation, target.AC, input.Mode, input.CriticalRange)
		if err != nil {
			return err
		}
		result.Outcome = outcome
		attacker.Economy.ActionUsed = true

		if !outcome.IsHit {
			return nil
		}

		eliminated, err := enc.ApplyDamage(target.ID, outcome.DamageRoll.Total, input.DamageType)
		if err != nil {
			return err
		}
		result.TargetEliminated = eliminated
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Encounter = enc

	s.logger.Debug().
		Str("encounter_id", input.EncounterID).
		Str("attacker_id", input.AttackerID).
		Str("target_id", input.TargetID).
		Bool("hit", result.Outcome.IsHit).
		Bool("critical", result.Outcome.IsCritical).
		Msg("attack resolved")

	return result, nil
}

func (s *service) EndEncounter(ctx context.Context, encounterID string) (*combat.Encounter, error) {
	enc, err := s.mutate(ctx, encounterID, func(enc *combat.Encounter) error {
		return enc.End(combat.ResultRetreat, 0, nil)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("encounter_id", enc.ID).
		Str("result", enc.Result).
		Msg("encounter ended")

	return enc, nil
}

func (s *service) DeleteEncounter(ctx context.Context, encounterID string) error {
	unlock := s.lockEncounter(encounterID)
	defer unlock()

	if err := s.repository.Delete(ctx, encounterID); err != nil {
		return err
	}

	s.encounterLocks.Delete(encounterID)
	return nil
}
