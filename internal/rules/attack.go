package rules

import (
	"fmt"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/dice"
)

// DefaultCriticalRange is the natural d20 face that scores a critical hit
const DefaultCriticalRange = 20

// AttackOutcome is the resolved result of one attack roll against a target.
// DamageRoll is set iff the attack hit.
type AttackOutcome struct {
	AttackRoll *dice.RollOutcome
	DamageRoll *dice.RollOutcome
	IsCritical bool
	IsHit      bool
	TargetAC   int
}

func (o *AttackOutcome) String() string {
	if !o.IsHit {
		return fmt.Sprintf("attack %d vs AC %d: miss", o.AttackRoll.Total, o.TargetAC)
	}
	return fmt.Sprintf("attack %d vs AC %d: hit for %d (crit=%v)", o.AttackRoll.Total, o.TargetAC, o.DamageRoll.Total, o.IsCritical)
}

// RollAttack resolves a d20 attack roll with the given bonus against a
// target AC, then rolls damage on a hit. A natural face at or above
// criticalRange hits regardless of AC and rolls the damage dice a second
// time; the flat modifier is only added once. Passing 0 for criticalRange
// uses the default of 20.
func RollAttack(roller dice.Roller, attackBonus int, damageNotation string, targetAC int, mode dice.AdvantageMode, criticalRange int) (*AttackOutcome, error) {
	if criticalRange == 0 {
		criticalRange = DefaultCriticalRange
	}

	attackExpr := &dice.Expression{Count: 1, Sides: 20, Modifier: attackBonus}
	attackRoll, err := dice.Evaluate(roller, attackExpr, mode)
	if err != nil {
		return nil, err
	}

	outcome := &AttackOutcome{
		AttackRoll: attackRoll,
		TargetAC:   targetAC,
	}
	outcome.IsCritical = attackRoll.NaturalFace() >= criticalRange
	outcome.IsHit = outcome.IsCritical || attackRoll.Total >= targetAC

	if !outcome.IsHit {
		return outcome, nil
	}

	damageExpr, err := dice.Parse(damageNotation)
	if err != nil {
		return nil, err
	}

	damageRoll, err := dice.Evaluate(roller, damageExpr, dice.Normal)
	if err != nil {
		return nil, err
	}

	if outcome.IsCritical {
		// Crits double the dice, not the modifier
		critRoll, err := dice.Evaluate(roller, damageExpr.WithoutModifier(), dice.Normal)
		if err != nil {
			return nil, err
		}
		damageRoll = &dice.RollOutcome{
			Total:    damageRoll.Total + critRoll.Total,
			Kept:     append(damageRoll.Kept, critRoll.Kept...),
			Dropped:  damageRoll.Dropped,
			Modifier: damageRoll.Modifier,
			Notation: damageRoll.Notation,
		}
	}

	// A heavily negative modifier cannot heal the target
	if damageRoll.Total < 0 {
		damageRoll.Total = 0
	}

	outcome.DamageRoll = damageRoll
	return outcome, nil
}
