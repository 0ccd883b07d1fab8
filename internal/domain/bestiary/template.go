// Package bestiary holds the built-in monster stat blocks that enemy
// participants are instantiated from.
package bestiary

import (
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/combat"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/rules"
)

// AttackTemplate is one attack option on a stat block
type AttackTemplate struct {
	Name           string
	AttackBonus    int
	DamageNotation string
	DamageType     string
}

// EnemyTemplate is an immutable monster stat block. Instances are built
// from it per encounter; the template itself is never mutated.
type EnemyTemplate struct {
	Key             string
	Name            string
	ChallengeRating float64
	XPValue         int
	MaxHP           int

	// HitDice, when set, lets an instance roll its hit points instead of
	// using the flat MaxHP average
	HitDice string

	AC    int
	Speed int

	Abilities map[rules.Ability]int

	Attacks   []AttackTemplate
	LootTable []combat.LootEntry
}

// InitiativeBonus derives the dexterity modifier used for initiative
func (t EnemyTemplate) InitiativeBonus() int {
	return rules.AbilityModifier(t.Abilities[rules.AbilityDexterity])
}
