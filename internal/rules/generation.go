package rules

import (
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/dice"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

// abilityScoreExpr is the standard 4d6-keep-highest-3 generation roll
var abilityScoreExpr = &dice.Expression{
	Count: 4,
	Sides: 6,
	KeepDrop: &dice.KeepDrop{
		Highest: true,
		Count:   3,
	},
}

// RollAbilityScore rolls 4d6 and keeps the highest 3, giving a score in
// [3, 18].
func RollAbilityScore(roller dice.Roller) (*dice.RollOutcome, error) {
	return dice.Evaluate(roller, abilityScoreExpr, dice.Normal)
}

// RollAllAbilityScores produces six independent ability score rolls in
// standard ability order. Each roll has its own pool of four dice.
func RollAllAbilityScores(roller dice.Roller) ([6]*dice.RollOutcome, error) {
	var scores [6]*dice.RollOutcome
	for i := range scores {
		outcome, err := RollAbilityScore(roller)
		if err != nil {
			return scores, err
		}
		scores[i] = outcome
	}
	return scores, nil
}

// RollHitPoints computes hit points gained at a level. Level 1 is the flat
// maximum of the hit die plus the constitution modifier with no roll; later
// levels roll the hit die. The result never drops below 1.
func RollHitPoints(roller dice.Roller, hitDie, constitutionModifier, level int) (*dice.RollOutcome, error) {
	if hitDie < 1 {
		return nil, errors.OutOfRangef("hit die must be positive, got %d", hitDie)
	}
	if level < 1 {
		return nil, errors.OutOfRangef("level must be positive, got %d", level)
	}

	if level == 1 {
		total := hitDie + constitutionModifier
		if total < 1 {
			total = 1
		}
		// No die is rolled at level 1; the kept face records the full
		// hit die for auditing.
		return &dice.RollOutcome{
			Total:    total,
			Kept:     []int{hitDie},
			Dropped:  []int{},
			Modifier: constitutionModifier,
			Notation: (&dice.Expression{Count: 1, Sides: hitDie, Modifier: constitutionModifier}).String(),
		}, nil
	}

	expr := &dice.Expression{Count: 1, Sides: hitDie, Modifier: constitutionModifier}
	outcome, err := dice.Evaluate(roller, expr, dice.Normal)
	if err != nil {
		return nil, err
	}
	if outcome.Total < 1 {
		outcome.Total = 1
	}
	return outcome, nil
}
