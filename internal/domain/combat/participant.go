package combat

import (
	"time"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/rules"
)

// Kind separates the two sides of an encounter
type Kind string

const (
	KindCharacter Kind = "character"
	KindEnemy     Kind = "enemy"
)

// ActionEconomy tracks the per-turn action flags for a participant. All
// three reset when the participant's turn begins.
type ActionEconomy struct {
	ActionUsed      bool
	BonusActionUsed bool
	ReactionUsed    bool
}

// Reset clears the economy for a new turn
func (ae *ActionEconomy) Reset() {
	ae.ActionUsed = false
	ae.BonusActionUsed = false
	ae.ReactionUsed = false
}

// Participant is one combatant in an encounter. The encounter owns it
// exclusively once added; eliminated participants stay in the roster so
// logs and turn order keep their shape.
type Participant struct {
	ID              string
	Kind            Kind
	Name            string
	MaxHP           int
	CurrentHP       int
	TempHP          int
	AC              int
	Initiative      int
	InitiativeBonus int

	// FixedInitiative pins the initiative value instead of rolling,
	// used for pre-seeded NPCs
	FixedInitiative *int

	// IsActive goes false permanently when CurrentHP reaches 0; only an
	// explicit Reactivate brings a participant back
	IsActive bool

	Conditions        []Condition
	Speed             int
	MovementRemaining int
	Economy           ActionEconomy

	// Enemy-only reward data
	XPValue   int
	LootTable []LootEntry

	EliminatedAt *time.Time
}

// NewCharacterParticipant builds a roster entry from a read-only character
// sheet. Initiative uses the sheet's dexterity modifier.
func NewCharacterParticipant(sheet rules.CharacterSheet, speed int) (*Participant, error) {
	if sheet == nil {
		return nil, errors.InvalidArgument("character sheet cannot be nil")
	}
	if sheet.MaxHP() < 1 {
		return nil, errors.OutOfRangef("max hit points must be at least 1, got %d", sheet.MaxHP())
	}
	if sheet.ArmorClass() < 1 {
		return nil, errors.OutOfRangef("armor class must be at least 1, got %d", sheet.ArmorClass())
	}

	hp := sheet.CurrentHP()
	if hp > sheet.MaxHP() {
		hp = sheet.MaxHP()
	}
	if hp < 0 {
		hp = 0
	}

	return &Participant{
		ID:                sheet.ID(),
		Kind:              KindCharacter,
		Name:              sheet.Name(),
		MaxHP:             sheet.MaxHP(),
		CurrentHP:         hp,
		AC:                sheet.ArmorClass(),
		InitiativeBonus:   sheet.AbilityModifier(rules.AbilityDexterity),
		IsActive:          hp > 0,
		Speed:             speed,
		MovementRemaining: speed,
	}, nil
}

// EnemyConfig carries the stat-block values an enemy participant is built
// from. The bestiary service fills it from a template.
type EnemyConfig struct {
	ID              string
	Name            string
	MaxHP           int
	AC              int
	Speed           int
	InitiativeBonus int
	XPValue         int
	LootTable       []LootEntry
}

// NewEnemyParticipant builds an enemy roster entry
func NewEnemyParticipant(cfg EnemyConfig) (*Participant, error) {
	if cfg.ID == "" {
		return nil, errors.InvalidArgument("enemy participant id is required")
	}
	if cfg.MaxHP < 1 {
		return nil, errors.OutOfRangef("max hit points must be at least 1, got %d", cfg.MaxHP)
	}
	if cfg.AC < 1 {
		return nil, errors.OutOfRangef("armor class must be at least 1, got %d", cfg.AC)
	}

	return &Participant{
		ID:                cfg.ID,
		Kind:              KindEnemy,
		Name:              cfg.Name,
		MaxHP:             cfg.MaxHP,
		CurrentHP:         cfg.MaxHP,
		AC:                cfg.AC,
		InitiativeBonus:   cfg.InitiativeBonus,
		IsActive:          true,
		Speed:             cfg.Speed,
		MovementRemaining: cfg.Speed,
		XPValue:           cfg.XPValue,
		LootTable:         cfg.LootTable,
	}, nil
}

// applyDamage depletes temporary hit points first, then current hit points
// floored at 0. Returns true when this application eliminated the
// participant.
func (p *Participant) applyDamage(amount int, now time.Time) bool {
	if p.TempHP > 0 {
		if amount <= p.TempHP {
			p.TempHP -= amount
			return false
		}
		amount -= p.TempHP
		p.TempHP = 0
	}

	p.CurrentHP -= amount
	if p.CurrentHP < 0 {
		p.CurrentHP = 0
	}

	if p.CurrentHP == 0 && p.IsActive {
		p.IsActive = false
		p.EliminatedAt = &now
		return true
	}
	return false
}

// heal raises current hit points capped at the maximum. It never flips
// IsActive back on.
func (p *Participant) heal(amount int) {
	p.CurrentHP += amount
	if p.CurrentHP > p.MaxHP {
		p.CurrentHP = p.MaxHP
	}
}

// AddTempHP grants temporary hit points. Temp HP does not stack; the
// higher value wins.
func (p *Participant) AddTempHP(amount int) {
	if amount > p.TempHP {
		p.TempHP = amount
	}
}

// HasCondition checks whether a condition with the given name is active
func (p *Participant) HasCondition(name string) bool {
	for _, cond := range p.Conditions {
		if cond.Name == name {
			return true
		}
	}
	return false
}

// beginTurn runs the start-of-turn bookkeeping: condition durations tick
// down, expired conditions drop off, and the action economy and movement
// reset.
func (p *Participant) beginTurn() []Condition {
	var expired []Condition
	remaining := p.Conditions[:0]
	for _, cond := range p.Conditions {
		if cond.DurationRounds > 0 {
			cond.DurationRounds--
			if cond.DurationRounds == 0 {
				expired = append(expired, cond)
				continue
			}
		}
		remaining = append(remaining, cond)
	}
	p.Conditions = remaining

	p.Economy.Reset()
	p.MovementRemaining = p.Speed
	return expired
}
