package rules

import (
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/dice"
)

// CheckOutcome is the result of a d20 check against a difficulty class
type CheckOutcome struct {
	Roll    *dice.RollOutcome
	DC      int
	Success bool
}

// RollSavingThrow rolls d20 + saveBonus against a DC. The save succeeds
// when the total meets or beats the DC.
func RollSavingThrow(roller dice.Roller, saveBonus, dc int, mode dice.AdvantageMode) (*CheckOutcome, error) {
	return rollCheck(roller, saveBonus, dc, mode)
}

// RollSkillCheck rolls d20 + abilityModifier (+ proficiencyBonus when
// proficient) against a DC.
func RollSkillCheck(roller dice.Roller, abilityModifier, proficiencyBonus int, proficient bool, dc int, mode dice.AdvantageMode) (*CheckOutcome, error) {
	bonus := abilityModifier
	if proficient {
		bonus += proficiencyBonus
	}
	return rollCheck(roller, bonus, dc, mode)
}

func rollCheck(roller dice.Roller, bonus, dc int, mode dice.AdvantageMode) (*CheckOutcome, error) {
	expr := &dice.Expression{Count: 1, Sides: 20, Modifier: bonus}
	roll, err := dice.Evaluate(roller, expr, mode)
	if err != nil {
		return nil, err
	}

	return &CheckOutcome{
		Roll:    roll,
		DC:      dc,
		Success: roll.Total >= dc,
	}, nil
}
