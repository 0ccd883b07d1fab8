package combat

import (
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/rules"
)

// Condition is a named effect on a participant. The engine tracks lifetime
// only; the mechanical consequences (such as rolling at disadvantage while
// poisoned) are applied by the caller when it builds subsequent rolls.
type Condition struct {
	Name string

	// DurationRounds counts down at the start of the afflicted
	// participant's turn; 0 means the condition lasts until removed
	// explicitly
	DurationRounds int

	// SourceID identifies the participant that inflicted the condition
	SourceID string

	// SaveDC and SaveAbility describe the save that ends the condition
	// early; zero values mean no save applies
	SaveDC      int
	SaveAbility rules.Ability
}
