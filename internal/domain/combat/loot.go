package combat

import (
	"strconv"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/dice"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

// LootEntry is one row of an enemy's loot table
type LootEntry struct {
	Name string

	// Amount is empty for a count of 1, a plain integer for a fixed
	// count, or dice notation resolved when the loot drops
	Amount string

	// Chance in (0, 1] is the independent drop probability for
	// non-guaranteed entries
	Chance float64

	// Guaranteed entries always drop
	Guaranteed bool
}

// LootAward is a resolved drop
type LootAward struct {
	Name   string
	Amount int
}

// resolveLootAmount turns an entry's amount field into a concrete count
func resolveLootAmount(amount string, roller dice.Roller) (int, error) {
	if amount == "" {
		return 1, nil
	}

	if fixed, err := strconv.Atoi(amount); err == nil {
		if fixed < 1 {
			return 0, errors.OutOfRangef("loot amount must be positive, got %d", fixed)
		}
		return fixed, nil
	}

	outcome, err := dice.Roll(roller, amount)
	if err != nil {
		return 0, errors.Wrapf(err, "resolving loot amount %q", amount)
	}
	return outcome.Total, nil
}
