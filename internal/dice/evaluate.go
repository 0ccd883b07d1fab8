package dice

import (
	"sort"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

// RollOutcome is the immutable result of evaluating a dice expression
type RollOutcome struct {
	// Total is sum(Kept) + Modifier
	Total int

	// Kept holds the die faces that contributed to the total
	Kept []int

	// Dropped holds the die faces excluded by keep/drop or
	// advantage/disadvantage; empty for plain rolls
	Dropped []int

	// Modifier is the flat bonus applied once to the total
	Modifier int

	// Notation is the canonical form of the evaluated expression
	Notation string
}

// NaturalFace returns the face of the single kept die. Attack resolution
// uses it to detect critical hits on the raw d20 before modifiers.
func (o *RollOutcome) NaturalFace() int {
	if len(o.Kept) == 0 {
		return 0
	}
	return o.Kept[0]
}

// Evaluate rolls the expression through the given roller. The mode and any
// keep/drop suffix are mutually exclusive evaluation strategies: advantage
// and disadvantage are only legal for a plain single d20.
func Evaluate(roller Roller, expr *Expression, mode AdvantageMode) (*RollOutcome, error) {
	if expr == nil {
		return nil, errors.InvalidArgument("expression cannot be nil")
	}

	switch {
	case mode != Normal:
		if expr.Count != 1 || expr.Sides != 20 || expr.KeepDrop != nil {
			return nil, errors.OutOfRangef("%s requires a plain single d20, got %q", mode, expr.String())
		}
		return evaluateWithMode(roller, expr, mode)
	case expr.KeepDrop != nil:
		return evaluateKeepDrop(roller, expr)
	default:
		return evaluatePlain(roller, expr)
	}
}

// Roll parses and evaluates notation in one step with no advantage mode.
func Roll(roller Roller, notation string) (*RollOutcome, error) {
	expr, err := Parse(notation)
	if err != nil {
		return nil, err
	}
	return Evaluate(roller, expr, Normal)
}

func evaluatePlain(roller Roller, expr *Expression) (*RollOutcome, error) {
	faces, err := roller.RollN(expr.Count, expr.Sides)
	if err != nil {
		return nil, err
	}

	total := expr.Modifier
	for _, face := range faces {
		total += face
	}

	return &RollOutcome{
		Total:    total,
		Kept:     faces,
		Dropped:  []int{},
		Modifier: expr.Modifier,
		Notation: expr.String(),
	}, nil
}

// evaluateWithMode evaluates the entire expression twice, modifier included,
// and keeps the run the mode prefers. Ties keep the first run.
func evaluateWithMode(roller Roller, expr *Expression, mode AdvantageMode) (*RollOutcome, error) {
	first, err := evaluatePlain(roller, expr)
	if err != nil {
		return nil, err
	}
	second, err := evaluatePlain(roller, expr)
	if err != nil {
		return nil, err
	}

	kept, dropped := first, second
	if (mode == Advantage && second.Total > first.Total) ||
		(mode == Disadvantage && second.Total < first.Total) {
		kept, dropped = second, first
	}

	return &RollOutcome{
		Total:    kept.Total,
		Kept:     kept.Kept,
		Dropped:  dropped.Kept,
		Modifier: expr.Modifier,
		Notation: expr.String(),
	}, nil
}

func evaluateKeepDrop(roller Roller, expr *Expression) (*RollOutcome, error) {
	faces, err := roller.RollN(expr.Count, expr.Sides)
	if err != nil {
		return nil, err
	}

	sorted := make([]int, len(faces))
	copy(sorted, faces)
	if expr.KeepDrop.Highest {
		sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	} else {
		sort.Ints(sorted)
	}

	var kept, dropped []int
	if expr.KeepDrop.Drop {
		dropped = sorted[:expr.KeepDrop.Count]
		kept = sorted[expr.KeepDrop.Count:]
	} else {
		kept = sorted[:expr.KeepDrop.Count]
		dropped = sorted[expr.KeepDrop.Count:]
	}

	total := expr.Modifier
	for _, face := range kept {
		total += face
	}

	return &RollOutcome{
		Total:    total,
		Kept:     kept,
		Dropped:  dropped,
		Modifier: expr.Modifier,
		Notation: expr.String(),
	}, nil
}
