package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/BlakeDanielson/SoloRelms-sub001/internal/dice/mock"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

func TestResolveLootAmount(t *testing.T) {
	t.Run("defaults to one", func(t *testing.T) {
		amount, err := resolveLootAmount("", mockdice.NewManualMockRoller())
		require.NoError(t, err)
		assert.Equal(t, 1, amount)
	})

	t.Run("fixed integer", func(t *testing.T) {
		amount, err := resolveLootAmount("5", mockdice.NewManualMockRoller())
		require.NoError(t, err)
		assert.Equal(t, 5, amount)
	})

	t.Run("fixed integer must be positive", func(t *testing.T) {
		_, err := resolveLootAmount("0", mockdice.NewManualMockRoller())
		assert.True(t, errors.IsOutOfRange(err))
	})

	t.Run("dice notation", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{4, 2})

		amount, err := resolveLootAmount("2d6", roller)
		require.NoError(t, err)
		assert.Equal(t, 6, amount)
	})

	t.Run("bad notation", func(t *testing.T) {
		_, err := resolveLootAmount("d", mockdice.NewManualMockRoller())
		assert.True(t, errors.IsInvalidNotation(err))
	})
}

func TestEncounterCalculateXPReward(t *testing.T) {
	enc := NewEncounter("enc-1")
	enc.Participants["char-aria"] = &Participant{ID: "char-aria", Kind: KindCharacter, IsActive: false, XPValue: 999}
	enc.Participants["enemy-goblin"] = &Participant{ID: "enemy-goblin", Kind: KindEnemy, IsActive: false, XPValue: 50}
	enc.Participants["enemy-orc"] = &Participant{ID: "enemy-orc", Kind: KindEnemy, IsActive: false, XPValue: 100}
	enc.Participants["enemy-wolf"] = &Participant{ID: "enemy-wolf", Kind: KindEnemy, IsActive: true, XPValue: 50}

	// Only defeated enemies count; downed characters never do.
	assert.Equal(t, 150, enc.CalculateXPReward())
}

func TestEncounterGenerateLoot(t *testing.T) {
	newLootEncounter := func(table []LootEntry) *Encounter {
		enc := NewEncounter("enc-1")
		enc.Participants["enemy-goblin"] = &Participant{
			ID:        "enemy-goblin",
			Kind:      KindEnemy,
			IsActive:  false,
			LootTable: table,
		}
		return enc
	}

	t.Run("guaranteed entries always drop", func(t *testing.T) {
		enc := newLootEncounter([]LootEntry{
			{Name: "rusty dagger", Guaranteed: true},
			{Name: "gold pieces", Amount: "3", Guaranteed: true},
		})

		awards, err := enc.GenerateLoot(mockdice.NewManualMockRoller())
		require.NoError(t, err)
		require.Len(t, awards, 2)
		assert.Equal(t, LootAward{Name: "rusty dagger", Amount: 1}, awards[0])
		assert.Equal(t, LootAward{Name: "gold pieces", Amount: 3}, awards[1])
	})

	t.Run("chance entries use a percentile draw", func(t *testing.T) {
		enc := newLootEncounter([]LootEntry{
			{Name: "healing potion", Chance: 0.5},
		})

		// A face of 50 maps to 0.49, just under the 50% chance.
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{50})
		awards, err := enc.GenerateLoot(roller)
		require.NoError(t, err)
		require.Len(t, awards, 1)
		assert.Equal(t, "healing potion", awards[0].Name)

		// A face of 51 maps to 0.50 and misses.
		roller.SetRolls([]int{51})
		awards, err = enc.GenerateLoot(roller)
		require.NoError(t, err)
		assert.Empty(t, awards)
	})

	t.Run("dice amounts roll through the expression engine", func(t *testing.T) {
		enc := newLootEncounter([]LootEntry{
			{Name: "gold pieces", Amount: "2d6", Guaranteed: true},
		})

		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{5, 3})
		awards, err := enc.GenerateLoot(roller)
		require.NoError(t, err)
		require.Len(t, awards, 1)
		assert.Equal(t, 8, awards[0].Amount)
	})

	t.Run("standing enemies drop nothing", func(t *testing.T) {
		enc := newLootEncounter([]LootEntry{
			{Name: "rusty dagger", Guaranteed: true},
		})
		enc.Participants["enemy-goblin"].IsActive = true

		awards, err := enc.GenerateLoot(mockdice.NewManualMockRoller())
		require.NoError(t, err)
		assert.Empty(t, awards)
	})
}
