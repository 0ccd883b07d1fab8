// Package combat owns the encounter lifecycle: initiative, round-robin
// turns, damage and healing, condition lifetimes, victory detection, and
// reward computation. All randomness flows through an injected dice.Roller.
//
// An encounter is a single mutable aggregate. Mutating operations on one
// encounter must be serialized by the caller; the service layer does this
// with a per-encounter mutex. Reads of a snapshot are safe to share once a
// mutation completes.
package combat

import (
	"fmt"
	"sort"
	"time"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/dice"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

// State is the encounter lifecycle state
type State string

const (
	StateNotStarted State = "not_started"
	StateInitiative State = "initiative"
	StateInProgress State = "in_progress"
	StateVictory    State = "victory"
	StateDefeat     State = "defeat"
	StateRetreat    State = "retreat"
)

// Terminal reports whether the state admits no further transitions
func (s State) Terminal() bool {
	return s == StateVictory || s == StateDefeat || s == StateRetreat
}

// Result labels recorded on a finished encounter
const (
	ResultVictory = "victory"
	ResultDefeat  = "defeat"
	ResultRetreat = "retreat"
)

// Encounter is a combat encounter aggregate
type Encounter struct {
	ID    string
	State State

	// Participants indexes the roster by id; TurnOrder holds the ids
	// sorted by descending initiative once it is rolled
	Participants map[string]*Participant
	TurnOrder    []string

	// Round starts at 0 and becomes 1 when combat starts; TurnIndex is
	// the 0-based position in TurnOrder
	Round     int
	TurnIndex int

	Log []LogEntry

	Result      string
	XPAwarded   int
	LootAwarded []LootAward

	CreatedAt time.Time
	StartedAt *time.Time
	EndedAt   *time.Time
}

// NewEncounter creates an empty encounter in the NOT_STARTED state
func NewEncounter(id string) *Encounter {
	e := &Encounter{
		ID:           id,
		State:        StateNotStarted,
		Participants: make(map[string]*Participant),
		TurnOrder:    []string{},
		Log:          []LogEntry{},
		CreatedAt:    time.Now(),
	}
	e.appendLog(LogEntry{Kind: EventEncounterCreated})
	return e
}

// AddParticipant adds a combatant to the roster. Only legal before
// initiative is rolled.
func (e *Encounter) AddParticipant(p *Participant) error {
	if e.State != StateNotStarted {
		return errors.InvalidTransitionf("cannot add participants in state %s", e.State)
	}
	if p == nil {
		return errors.InvalidArgument("participant cannot be nil")
	}
	if _, exists := e.Participants[p.ID]; exists {
		return errors.AlreadyExistsf("participant %s already in encounter", p.ID)
	}

	e.Participants[p.ID] = p
	return nil
}

// Participant looks up a roster entry. A miss is an InvalidTransition:
// targeting someone who is not in the encounter is caller error that must
// fail loudly.
func (e *Encounter) Participant(id string) (*Participant, error) {
	p, exists := e.Participants[id]
	if !exists {
		return nil, errors.InvalidTransitionf("participant %s is not in encounter %s", id, e.ID)
	}
	return p, nil
}

// CurrentParticipant returns the combatant whose turn it is, or nil before
// combat starts.
func (e *Encounter) CurrentParticipant() *Participant {
	if e.TurnIndex < len(e.TurnOrder) {
		return e.Participants[e.TurnOrder[e.TurnIndex]]
	}
	return nil
}

// RollInitiative rolls 1d20 + initiative bonus for every participant
// (honoring pinned values for pre-seeded NPCs), sorts the turn order
// descending, and starts combat: round 1, turn 0, with the first
// participant's turn already begun. Ties break by higher initiative bonus,
// then lexicographically smaller id, so the order is deterministic given
// the roster and roller.
func (e *Encounter) RollInitiative(roller dice.Roller) error {
	if e.State != StateNotStarted {
		return errors.InvalidTransitionf("initiative already rolled for encounter in state %s", e.State)
	}
	if len(e.Participants) == 0 {
		return errors.InvalidTransition("cannot roll initiative with no participants")
	}
	e.State = StateInitiative

	// Map iteration order is random; rolling in sorted-id order keeps
	// seeded runs reproducible.
	ids := make([]string, 0, len(e.Participants))
	for id := range e.Participants {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := e.Participants[id]
		if p.FixedInitiative != nil {
			p.Initiative = *p.FixedInitiative
			e.appendLog(LogEntry{
				Kind:    EventInitiativeRolled,
				ActorID: p.ID,
				Amount:  p.Initiative,
				Detail:  fmt.Sprintf("%s uses fixed initiative %d", p.Name, p.Initiative),
			})
			continue
		}

		expr := &dice.Expression{Count: 1, Sides: 20, Modifier: p.InitiativeBonus}
		outcome, err := dice.Evaluate(roller, expr, dice.Normal)
		if err != nil {
			return errors.Wrapf(err, "rolling initiative for %s", p.ID)
		}
		p.Initiative = outcome.Total
		e.appendLog(LogEntry{
			Kind:    EventInitiativeRolled,
			ActorID: p.ID,
			Amount:  p.Initiative,
			Detail:  fmt.Sprintf("%s rolls initiative %d (%d%+d)", p.Name, p.Initiative, outcome.NaturalFace(), p.InitiativeBonus),
		})
	}

	e.TurnOrder = ids
	sort.SliceStable(e.TurnOrder, func(i, j int) bool {
		a, b := e.Participants[e.TurnOrder[i]], e.Participants[e.TurnOrder[j]]
		if a.Initiative != b.Initiative {
			return a.Initiative > b.Initiative
		}
		if a.InitiativeBonus != b.InitiativeBonus {
			return a.InitiativeBonus > b.InitiativeBonus
		}
		return a.ID < b.ID
	})

	now := time.Now()
	e.State = StateInProgress
	e.StartedAt = &now
	e.Round = 1
	e.TurnIndex = 0
	e.beginCurrentTurn()

	return nil
}

// AdvanceTurn moves to the next participant, wrapping into a new round
// past the end of the order. Eliminated participants keep their slot so a
// full cycle always advances the round by exactly one.
func (e *Encounter) AdvanceTurn() error {
	if e.State != StateInProgress {
		return errors.InvalidTransitionf("cannot advance turn in state %s", e.State)
	}

	e.TurnIndex++
	if e.TurnIndex >= len(e.TurnOrder) {
		e.TurnIndex = 0
		e.Round++
	}
	e.beginCurrentTurn()

	return nil
}

func (e *Encounter) beginCurrentTurn() {
	p := e.CurrentParticipant()
	if p == nil {
		return
	}

	expired := p.beginTurn()
	for _, cond := range expired {
		e.appendLog(LogEntry{
			Kind:    EventConditionExpired,
			ActorID: p.ID,
			Detail:  fmt.Sprintf("%s is no longer %s", p.Name, cond.Name),
		})
	}

	e.appendLog(LogEntry{
		Kind:    EventTurnStarted,
		ActorID: p.ID,
		Detail:  fmt.Sprintf("%s begins their turn", p.Name),
	})
}

// ApplyDamage deals damage to a participant, temporary hit points first.
// Returns whether this application eliminated the target. When one full
// side goes inactive the encounter transitions to VICTORY or DEFEAT on the
// spot, computing the XP award on victory.
func (e *Encounter) ApplyDamage(participantID string, amount int, damageType string) (bool, error) {
	if e.State != StateInProgress {
		return false, errors.InvalidTransitionf("cannot apply damage in state %s", e.State)
	}
	if amount < 0 {
		return false, errors.OutOfRangef("damage amount cannot be negative, got %d", amount)
	}

	p, err := e.Participant(participantID)
	if err != nil {
		return false, err
	}

	eliminated := p.applyDamage(amount, time.Now())

	detail := fmt.Sprintf("%s takes %d damage", p.Name, amount)
	if damageType != "" {
		detail = fmt.Sprintf("%s takes %d %s damage", p.Name, amount, damageType)
	}
	e.appendLog(LogEntry{
		Kind:     EventDamageApplied,
		TargetID: p.ID,
		Amount:   amount,
		Detail:   detail,
	})

	if eliminated {
		e.appendLog(LogEntry{
			Kind:     EventParticipantEliminated,
			TargetID: p.ID,
			Detail:   fmt.Sprintf("%s falls", p.Name),
		})
		e.checkCombatEnd()
	}

	return eliminated, nil
}

// ApplyHealing restores hit points capped at the maximum. Healing never
// revives an eliminated participant; that takes an explicit Reactivate.
func (e *Encounter) ApplyHealing(participantID string, amount int) error {
	if e.State != StateInProgress {
		return errors.InvalidTransitionf("cannot apply healing in state %s", e.State)
	}
	if amount < 0 {
		return errors.OutOfRangef("healing amount cannot be negative, got %d", amount)
	}

	p, err := e.Participant(participantID)
	if err != nil {
		return err
	}

	p.heal(amount)
	e.appendLog(LogEntry{
		Kind:     EventHealingApplied,
		TargetID: p.ID,
		Amount:   amount,
		Detail:   fmt.Sprintf("%s regains %d hit points", p.Name, amount),
	})

	return nil
}

// Reactivate returns an eliminated participant to the fight. The caller
// must heal them above 0 first.
func (e *Encounter) Reactivate(participantID string) error {
	if e.State != StateInProgress {
		return errors.InvalidTransitionf("cannot reactivate in state %s", e.State)
	}

	p, err := e.Participant(participantID)
	if err != nil {
		return err
	}
	if p.CurrentHP < 1 {
		return errors.InvalidTransitionf("participant %s has no hit points to return with", participantID)
	}

	p.IsActive = true
	p.EliminatedAt = nil
	e.appendLog(LogEntry{
		Kind:     EventParticipantReactivated,
		TargetID: p.ID,
		Detail:   fmt.Sprintf("%s is back in the fight", p.Name),
	})

	return nil
}

// AddCondition attaches a condition to a participant. The same condition
// name may repeat only when it comes from a different source.
func (e *Encounter) AddCondition(participantID string, cond Condition) error {
	if e.State.Terminal() {
		return errors.InvalidTransitionf("cannot add conditions in state %s", e.State)
	}
	if cond.Name == "" {
		return errors.InvalidArgument("condition name is required")
	}
	if cond.DurationRounds < 0 {
		return errors.OutOfRangef("condition duration cannot be negative, got %d", cond.DurationRounds)
	}

	p, err := e.Participant(participantID)
	if err != nil {
		return err
	}

	for _, existing := range p.Conditions {
		if existing.Name == cond.Name && existing.SourceID == cond.SourceID {
			return errors.AlreadyExistsf("participant %s already has condition %s from %s", participantID, cond.Name, cond.SourceID)
		}
	}

	p.Conditions = append(p.Conditions, cond)
	e.appendLog(LogEntry{
		Kind:     EventConditionAdded,
		ActorID:  cond.SourceID,
		TargetID: p.ID,
		Detail:   fmt.Sprintf("%s is %s", p.Name, cond.Name),
	})

	return nil
}

// RemoveCondition removes the first condition with the given name, for
// example after a successful save.
func (e *Encounter) RemoveCondition(participantID, name string) error {
	if e.State.Terminal() {
		return errors.InvalidTransitionf("cannot remove conditions in state %s", e.State)
	}

	p, err := e.Participant(participantID)
	if err != nil {
		return err
	}

	for i, cond := range p.Conditions {
		if cond.Name == name {
			p.Conditions = append(p.Conditions[:i], p.Conditions[i+1:]...)
			e.appendLog(LogEntry{
				Kind:     EventConditionRemoved,
				TargetID: p.ID,
				Detail:   fmt.Sprintf("%s is no longer %s", p.Name, name),
			})
			return nil
		}
	}

	return errors.NotFoundf("participant %s has no condition %s", participantID, name)
}

// checkCombatEnd transitions to VICTORY or DEFEAT when one side has no
// active combatants left.
func (e *Encounter) checkCombatEnd() {
	activeEnemies, activeCharacters := 0, 0
	for _, p := range e.Participants {
		if !p.IsActive {
			continue
		}
		switch p.Kind {
		case KindEnemy:
			activeEnemies++
		case KindCharacter:
			activeCharacters++
		}
	}

	switch {
	case activeEnemies == 0:
		e.finish(StateVictory, ResultVictory)
		e.XPAwarded = e.CalculateXPReward()
	case activeCharacters == 0:
		e.finish(StateDefeat, ResultDefeat)
	}
}

// CalculateXPReward sums the XP values of defeated enemies. Enemies that
// are still standing contribute nothing.
func (e *Encounter) CalculateXPReward() int {
	total := 0
	for _, p := range e.Participants {
		if p.Kind == KindEnemy && !p.IsActive {
			total += p.XPValue
		}
	}
	return total
}

// GenerateLoot resolves the loot tables of every defeated enemy.
// Guaranteed entries always drop; each chance entry drops independently
// when a percentile draw through the roller lands under its chance. Dice
// notation amounts are resolved through the expression engine. Defeated
// enemies are visited in turn-order (falling back to sorted id before
// initiative is rolled) so a seeded run is reproducible.
func (e *Encounter) GenerateLoot(roller dice.Roller) ([]LootAward, error) {
	ids := e.TurnOrder
	if len(ids) == 0 {
		ids = make([]string, 0, len(e.Participants))
		for id := range e.Participants {
			ids = append(ids, id)
		}
		sort.Strings(ids)
	}

	awards := []LootAward{}
	for _, id := range ids {
		p := e.Participants[id]
		if p.Kind != KindEnemy || p.IsActive {
			continue
		}

		for _, entry := range p.LootTable {
			if !entry.Guaranteed {
				face, err := roller.Roll(100)
				if err != nil {
					return nil, errors.Wrapf(err, "rolling loot chance for %q", entry.Name)
				}
				if float64(face-1)/100.0 >= entry.Chance {
					continue
				}
			}

			amount, err := resolveLootAmount(entry.Amount, roller)
			if err != nil {
				return nil, err
			}
			awards = append(awards, LootAward{Name: entry.Name, Amount: amount})
		}
	}

	return awards, nil
}

// End moves the encounter to a terminal state and records the rewards.
// Irreversible; ending an already-finished encounter is an error.
func (e *Encounter) End(result string, xp int, loot []LootAward) error {
	if e.State.Terminal() {
		return errors.InvalidTransitionf("encounter already ended with result %s", e.Result)
	}

	var state State
	switch result {
	case ResultVictory:
		state = StateVictory
	case ResultDefeat:
		state = StateDefeat
	case ResultRetreat:
		state = StateRetreat
	default:
		return errors.InvalidArgumentf("unknown encounter result %q", result)
	}

	e.finish(state, result)
	e.XPAwarded = xp
	e.LootAwarded = loot
	return nil
}

// RecordLoot stores resolved loot on the encounter. Reward recording is
// the one mutation still allowed after the encounter reaches a terminal
// state.
func (e *Encounter) RecordLoot(loot []LootAward) {
	e.LootAwarded = loot
}

func (e *Encounter) finish(state State, result string) {
	now := time.Now()
	e.State = state
	e.Result = result
	e.EndedAt = &now
	e.appendLog(LogEntry{
		Kind:   EventEncounterEnded,
		Detail: fmt.Sprintf("encounter ends: %s", result),
	})
}
