package testutils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/combat"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/rules"
)

// CreateTestSheet creates a character sheet with sensible fighter-ish
// stats for tests
func CreateTestSheet(id string) *rules.StaticSheet {
	return &rules.StaticSheet{
		SheetID:   id,
		SheetName: id,
		Modifiers: map[rules.Ability]int{
			rules.AbilityStrength:     3,
			rules.AbilityDexterity:    2,
			rules.AbilityConstitution: 2,
			rules.AbilityIntelligence: 0,
			rules.AbilityWisdom:       1,
			rules.AbilityCharisma:     0,
		},
		HP:         24,
		HPMax:      24,
		AC:         16,
		Proficient: 2,
	}
}

// CreateTestEnemy creates an enemy participant with goblin-like stats
func CreateTestEnemy(t *testing.T, id string) *combat.Participant {
	t.Helper()

	enemy, err := combat.NewEnemyParticipant(combat.EnemyConfig{
		ID:              id,
		Name:            "Test Enemy",
		MaxHP:           7,
		AC:              15,
		Speed:           30,
		InitiativeBonus: 2,
		XPValue:         50,
		LootTable: []combat.LootEntry{
			{Name: "gold pieces", Amount: "2d4", Guaranteed: true},
		},
	})
	require.NoError(t, err)
	return enemy
}

// CreateTestEncounter creates a NOT_STARTED encounter with the given
// number of characters and enemies
func CreateTestEncounter(t *testing.T, id string, characters, enemies int) *combat.Encounter {
	t.Helper()

	enc := combat.NewEncounter(id)
	for i := 1; i <= characters; i++ {
		p, err := combat.NewCharacterParticipant(CreateTestSheet(fmt.Sprintf("char-%d", i)), 30)
		require.NoError(t, err)
		require.NoError(t, enc.AddParticipant(p))
	}
	for i := 1; i <= enemies; i++ {
		require.NoError(t, enc.AddParticipant(CreateTestEnemy(t, fmt.Sprintf("enemy-%d", i))))
	}
	return enc
}
