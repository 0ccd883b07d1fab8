package combat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/BlakeDanielson/SoloRelms-sub001/internal/dice/mock"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

// twoSidedEncounter builds a NOT_STARTED encounter with one character and
// one enemy. IDs sort as char-aria < enemy-goblin, which is also the
// order initiative rolls are consumed in.
func twoSidedEncounter(t *testing.T) *Encounter {
	t.Helper()

	enc := NewEncounter("enc-1")

	char, err := NewCharacterParticipant(testSheet("char-aria", 20, 20, 16, 2), 30)
	require.NoError(t, err)
	require.NoError(t, enc.AddParticipant(char))

	enemy, err := NewEnemyParticipant(EnemyConfig{
		ID:              "enemy-goblin",
		Name:            "Goblin",
		MaxHP:           7,
		AC:              15,
		Speed:           30,
		InitiativeBonus: 2,
		XPValue:         50,
	})
	require.NoError(t, err)
	require.NoError(t, enc.AddParticipant(enemy))

	return enc
}

// startedEncounter rolls initiative with faces that put the character
// first: character 16+2=18, goblin 10+2=12.
func startedEncounter(t *testing.T) *Encounter {
	t.Helper()

	enc := twoSidedEncounter(t)
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{16, 10})
	require.NoError(t, enc.RollInitiative(roller))
	return enc
}

func TestNewEncounter(t *testing.T) {
	enc := NewEncounter("enc-1")

	assert.Equal(t, StateNotStarted, enc.State)
	assert.Equal(t, 0, enc.Round)
	assert.Empty(t, enc.TurnOrder)
	require.Len(t, enc.Log, 1)
	assert.Equal(t, EventEncounterCreated, enc.Log[0].Kind)
}

func TestEncounterAddParticipant(t *testing.T) {
	t.Run("duplicate id", func(t *testing.T) {
		enc := NewEncounter("enc-1")
		p, err := NewEnemyParticipant(EnemyConfig{ID: "goblin-1", Name: "Goblin", MaxHP: 7, AC: 15})
		require.NoError(t, err)
		require.NoError(t, enc.AddParticipant(p))

		dup, err := NewEnemyParticipant(EnemyConfig{ID: "goblin-1", Name: "Goblin", MaxHP: 7, AC: 15})
		require.NoError(t, err)
		assert.True(t, errors.IsAlreadyExists(enc.AddParticipant(dup)))
	})

	t.Run("rejected after initiative", func(t *testing.T) {
		enc := startedEncounter(t)
		p, err := NewEnemyParticipant(EnemyConfig{ID: "late", Name: "Latecomer", MaxHP: 7, AC: 15})
		require.NoError(t, err)
		assert.True(t, errors.IsInvalidTransition(enc.AddParticipant(p)))
	})
}

func TestEncounterRollInitiative(t *testing.T) {
	t.Run("orders by total and starts combat", func(t *testing.T) {
		enc := startedEncounter(t)

		assert.Equal(t, StateInProgress, enc.State)
		assert.Equal(t, []string{"char-aria", "enemy-goblin"}, enc.TurnOrder)
		assert.Equal(t, 18, enc.Participants["char-aria"].Initiative)
		assert.Equal(t, 12, enc.Participants["enemy-goblin"].Initiative)
		assert.Equal(t, 1, enc.Round)
		assert.Equal(t, 0, enc.TurnIndex)
		require.NotNil(t, enc.StartedAt)
		assert.Equal(t, "char-aria", enc.CurrentParticipant().ID)
	})

	t.Run("ties break by bonus then id", func(t *testing.T) {
		enc := NewEncounter("enc-1")
		for i, bonus := range []int{0, 3, 0} {
			p, err := NewEnemyParticipant(EnemyConfig{
				ID:              fmt.Sprintf("enemy-%d", i),
				Name:            "Enemy",
				MaxHP:           7,
				AC:              12,
				InitiativeBonus: bonus,
			})
			require.NoError(t, err)
			require.NoError(t, enc.AddParticipant(p))
		}

		// Faces land every total on 13: 13+0, 10+3, 13+0.
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{13, 10, 13})
		require.NoError(t, enc.RollInitiative(roller))

		assert.Equal(t, []string{"enemy-1", "enemy-0", "enemy-2"}, enc.TurnOrder)
	})

	t.Run("fixed initiative skips the roll", func(t *testing.T) {
		enc := NewEncounter("enc-1")
		pinned := 15
		p, err := NewEnemyParticipant(EnemyConfig{ID: "enemy-0", Name: "Enemy", MaxHP: 7, AC: 12})
		require.NoError(t, err)
		p.FixedInitiative = &pinned
		require.NoError(t, enc.AddParticipant(p))

		roller := mockdice.NewManualMockRoller()
		require.NoError(t, enc.RollInitiative(roller))

		assert.Equal(t, 15, p.Initiative)
		assert.Equal(t, 0, roller.Remaining())
	})

	t.Run("empty roster", func(t *testing.T) {
		enc := NewEncounter("enc-1")
		err := enc.RollInitiative(mockdice.NewManualMockRoller())
		assert.True(t, errors.IsInvalidTransition(err))
	})

	t.Run("cannot reroll", func(t *testing.T) {
		enc := startedEncounter(t)
		err := enc.RollInitiative(mockdice.NewManualMockRoller())
		assert.True(t, errors.IsInvalidTransition(err))
	})
}

func TestEncounterAdvanceTurn(t *testing.T) {
	t.Run("round trips through the order", func(t *testing.T) {
		enc := startedEncounter(t)

		require.NoError(t, enc.AdvanceTurn())
		assert.Equal(t, "enemy-goblin", enc.CurrentParticipant().ID)
		assert.Equal(t, 1, enc.Round)

		require.NoError(t, enc.AdvanceTurn())
		assert.Equal(t, "char-aria", enc.CurrentParticipant().ID)
		assert.Equal(t, 2, enc.Round)
	})

	t.Run("full cycle advances round by one", func(t *testing.T) {
		enc := startedEncounter(t)
		startIndex := enc.TurnIndex

		for range enc.TurnOrder {
			require.NoError(t, enc.AdvanceTurn())
		}
		assert.Equal(t, startIndex, enc.TurnIndex)
		assert.Equal(t, 2, enc.Round)
	})

	t.Run("eliminated participants keep their slot", func(t *testing.T) {
		enc := startedEncounter(t)

		// Goblin goes down but combat continues against the character,
		// so force another enemy in before the kill.
		extra, err := NewEnemyParticipant(EnemyConfig{ID: "enemy-wolf", Name: "Wolf", MaxHP: 11, AC: 13, XPValue: 50})
		require.NoError(t, err)
		enc.Participants[extra.ID] = extra
		enc.TurnOrder = append(enc.TurnOrder, extra.ID)

		_, err = enc.ApplyDamage("enemy-goblin", 7, "slashing")
		require.NoError(t, err)
		require.Equal(t, StateInProgress, enc.State)

		require.NoError(t, enc.AdvanceTurn())
		assert.Equal(t, "enemy-goblin", enc.CurrentParticipant().ID)
	})

	t.Run("rejected before combat", func(t *testing.T) {
		enc := twoSidedEncounter(t)
		assert.True(t, errors.IsInvalidTransition(enc.AdvanceTurn()))
	})
}

func TestEncounterApplyDamage(t *testing.T) {
	t.Run("temp HP depletes first", func(t *testing.T) {
		enc := startedEncounter(t)
		enc.Participants["char-aria"].AddTempHP(5)

		eliminated, err := enc.ApplyDamage("char-aria", 8, "fire")
		require.NoError(t, err)
		assert.False(t, eliminated)
		assert.Equal(t, 0, enc.Participants["char-aria"].TempHP)
		assert.Equal(t, 17, enc.Participants["char-aria"].CurrentHP)
	})

	t.Run("negative amount", func(t *testing.T) {
		enc := startedEncounter(t)
		_, err := enc.ApplyDamage("char-aria", -1, "")
		assert.True(t, errors.IsOutOfRange(err))
	})

	t.Run("unknown participant", func(t *testing.T) {
		enc := startedEncounter(t)
		_, err := enc.ApplyDamage("nobody", 5, "")
		assert.True(t, errors.IsInvalidTransition(err))
	})

	t.Run("rejected before combat", func(t *testing.T) {
		enc := twoSidedEncounter(t)
		_, err := enc.ApplyDamage("char-aria", 5, "")
		assert.True(t, errors.IsInvalidTransition(err))
	})

	t.Run("last enemy down is victory with XP", func(t *testing.T) {
		enc := startedEncounter(t)

		eliminated, err := enc.ApplyDamage("enemy-goblin", 10, "slashing")
		require.NoError(t, err)
		assert.True(t, eliminated)

		assert.Equal(t, StateVictory, enc.State)
		assert.Equal(t, ResultVictory, enc.Result)
		assert.Equal(t, 50, enc.XPAwarded)
		require.NotNil(t, enc.EndedAt)
	})

	t.Run("last character down is defeat", func(t *testing.T) {
		enc := startedEncounter(t)

		_, err := enc.ApplyDamage("char-aria", 20, "piercing")
		require.NoError(t, err)

		assert.Equal(t, StateDefeat, enc.State)
		assert.Equal(t, ResultDefeat, enc.Result)
		assert.Equal(t, 0, enc.XPAwarded)
	})
}

func TestEncounterApplyHealing(t *testing.T) {
	t.Run("caps at max HP", func(t *testing.T) {
		enc := startedEncounter(t)
		_, err := enc.ApplyDamage("char-aria", 5, "")
		require.NoError(t, err)

		require.NoError(t, enc.ApplyHealing("char-aria", 100))
		assert.Equal(t, 20, enc.Participants["char-aria"].CurrentHP)
	})

	t.Run("never revives", func(t *testing.T) {
		enc := startedEncounter(t)
		// Add a second character so the encounter survives the knockout.
		ally, err := NewCharacterParticipant(testSheet("char-bram", 15, 15, 14, 1), 30)
		require.NoError(t, err)
		enc.Participants[ally.ID] = ally
		enc.TurnOrder = append(enc.TurnOrder, ally.ID)

		_, err = enc.ApplyDamage("char-aria", 20, "")
		require.NoError(t, err)
		require.Equal(t, StateInProgress, enc.State)

		require.NoError(t, enc.ApplyHealing("char-aria", 10))
		assert.Equal(t, 10, enc.Participants["char-aria"].CurrentHP)
		assert.False(t, enc.Participants["char-aria"].IsActive)
	})

	t.Run("negative amount", func(t *testing.T) {
		enc := startedEncounter(t)
		err := enc.ApplyHealing("char-aria", -3)
		assert.True(t, errors.IsOutOfRange(err))
	})
}

func TestEncounterReactivate(t *testing.T) {
	enc := startedEncounter(t)
	ally, err := NewCharacterParticipant(testSheet("char-bram", 15, 15, 14, 1), 30)
	require.NoError(t, err)
	enc.Participants[ally.ID] = ally
	enc.TurnOrder = append(enc.TurnOrder, ally.ID)

	_, err = enc.ApplyDamage("char-aria", 20, "")
	require.NoError(t, err)

	// No HP yet, so reactivation is refused.
	assert.True(t, errors.IsInvalidTransition(enc.Reactivate("char-aria")))

	require.NoError(t, enc.ApplyHealing("char-aria", 8))
	require.NoError(t, enc.Reactivate("char-aria"))

	p := enc.Participants["char-aria"]
	assert.True(t, p.IsActive)
	assert.Nil(t, p.EliminatedAt)
}

func TestEncounterConditions(t *testing.T) {
	t.Run("add and remove", func(t *testing.T) {
		enc := startedEncounter(t)
		cond := Condition{Name: "poisoned", DurationRounds: 3, SourceID: "enemy-goblin"}

		require.NoError(t, enc.AddCondition("char-aria", cond))
		assert.True(t, enc.Participants["char-aria"].HasCondition("poisoned"))

		require.NoError(t, enc.RemoveCondition("char-aria", "poisoned"))
		assert.False(t, enc.Participants["char-aria"].HasCondition("poisoned"))
	})

	t.Run("duplicate from the same source", func(t *testing.T) {
		enc := startedEncounter(t)
		cond := Condition{Name: "poisoned", SourceID: "enemy-goblin"}

		require.NoError(t, enc.AddCondition("char-aria", cond))
		assert.True(t, errors.IsAlreadyExists(enc.AddCondition("char-aria", cond)))

		// The same condition from another source stacks.
		cond.SourceID = "enemy-wolf"
		assert.NoError(t, enc.AddCondition("char-aria", cond))
	})

	t.Run("remove missing condition", func(t *testing.T) {
		enc := startedEncounter(t)
		err := enc.RemoveCondition("char-aria", "stunned")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("expires at the start of the bearer's turn", func(t *testing.T) {
		enc := startedEncounter(t)
		require.NoError(t, enc.AddCondition("enemy-goblin", Condition{Name: "prone", DurationRounds: 1, SourceID: "char-aria"}))

		require.NoError(t, enc.AdvanceTurn())
		assert.False(t, enc.Participants["enemy-goblin"].HasCondition("prone"))

		var sawExpiry bool
		for _, entry := range enc.Log {
			if entry.Kind == EventConditionExpired && entry.ActorID == "enemy-goblin" {
				sawExpiry = true
			}
		}
		assert.True(t, sawExpiry)
	})
}

func TestEncounterEnd(t *testing.T) {
	t.Run("retreat", func(t *testing.T) {
		enc := startedEncounter(t)

		require.NoError(t, enc.End(ResultRetreat, 0, nil))
		assert.Equal(t, StateRetreat, enc.State)
		assert.Equal(t, ResultRetreat, enc.Result)
		assert.Equal(t, 0, enc.XPAwarded)
		assert.Empty(t, enc.LootAwarded)
		require.NotNil(t, enc.EndedAt)
	})

	t.Run("already ended", func(t *testing.T) {
		enc := startedEncounter(t)
		require.NoError(t, enc.End(ResultRetreat, 0, nil))
		assert.True(t, errors.IsInvalidTransition(enc.End(ResultVictory, 100, nil)))
	})

	t.Run("unknown result", func(t *testing.T) {
		enc := startedEncounter(t)
		assert.True(t, errors.IsInvalidArgument(enc.End("draw", 0, nil)))
	})

	t.Run("terminal state freezes mutations", func(t *testing.T) {
		enc := startedEncounter(t)
		require.NoError(t, enc.End(ResultRetreat, 0, nil))

		_, err := enc.ApplyDamage("char-aria", 5, "")
		assert.True(t, errors.IsInvalidTransition(err))
		assert.True(t, errors.IsInvalidTransition(enc.ApplyHealing("char-aria", 5)))
		assert.True(t, errors.IsInvalidTransition(enc.AdvanceTurn()))
		assert.True(t, errors.IsInvalidTransition(enc.AddCondition("char-aria", Condition{Name: "prone"})))

		// Reward recording stays open so a victory's loot can land after
		// the transition.
		enc.RecordLoot([]LootAward{{Name: "gold pieces", Amount: 10}})
		assert.Len(t, enc.LootAwarded, 1)
	})
}

func TestEncounterLogCap(t *testing.T) {
	enc := startedEncounter(t)

	for i := 0; i < 120; i++ {
		require.NoError(t, enc.AdvanceTurn())
	}

	assert.Len(t, enc.Log, 50)
	// Oldest entries are discarded first; the tail is the latest turn.
	assert.Equal(t, EventTurnStarted, enc.Log[len(enc.Log)-1].Kind)
}
