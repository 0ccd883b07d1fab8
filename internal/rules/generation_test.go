package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/dice"
	mockdice "github.com/BlakeDanielson/SoloRelms-sub001/internal/dice/mock"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/rules"
)

func TestRollAbilityScore_DropsExactlyOneLowestDie(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{2, 5, 6, 1})

	outcome, err := rules.RollAbilityScore(roller)
	require.NoError(t, err)

	assert.Equal(t, 13, outcome.Total)
	assert.Equal(t, []int{6, 5, 2}, outcome.Kept)
	assert.Equal(t, []int{1}, outcome.Dropped)

	for _, kept := range outcome.Kept {
		assert.LessOrEqual(t, outcome.Dropped[0], kept)
	}
}

func TestRollAbilityScore_AlwaysInRange(t *testing.T) {
	roller := dice.NewSeededRoller(99)

	for i := 0; i < 200; i++ {
		outcome, err := rules.RollAbilityScore(roller)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, outcome.Total, 3)
		assert.LessOrEqual(t, outcome.Total, 18)
	}
}

func TestRollAllAbilityScores_SixIndependentRolls(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	faces := make([]int, 0, 24)
	for i := 0; i < 6; i++ {
		faces = append(faces, 6, 6, 6, 1)
	}
	roller.SetRolls(faces)

	scores, err := rules.RollAllAbilityScores(roller)
	require.NoError(t, err)

	for _, score := range scores {
		require.NotNil(t, score)
		assert.Equal(t, 18, score.Total)
		assert.Equal(t, []int{1}, score.Dropped, "each roll drops its own die")
	}
	assert.Equal(t, 0, roller.Remaining(), "24 dice consumed, 4 per ability")
}

func TestRollHitPoints_LevelOneIsDeterministic(t *testing.T) {
	roller := mockdice.NewManualMockRoller()

	outcome, err := rules.RollHitPoints(roller, 10, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, 12, outcome.Total)
	assert.Equal(t, []int{10}, outcome.Kept)
	assert.Equal(t, 0, roller.Remaining(), "no dice rolled at level 1")
}

func TestRollHitPoints_LevelOneFlooredAtOne(t *testing.T) {
	roller := mockdice.NewManualMockRoller()

	outcome, err := rules.RollHitPoints(roller, 6, -8, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Total)
}

func TestRollHitPoints_HigherLevelRollsTheDie(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{7})

	outcome, err := rules.RollHitPoints(roller, 10, 3, 4)
	require.NoError(t, err)

	assert.Equal(t, 10, outcome.Total)
	assert.Equal(t, []int{7}, outcome.Kept)
}

func TestRollHitPoints_HigherLevelFlooredAtOne(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{2})

	outcome, err := rules.RollHitPoints(roller, 6, -5, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Total)
}

func TestRollHitPoints_InvalidArguments(t *testing.T) {
	roller := mockdice.NewManualMockRoller()

	_, err := rules.RollHitPoints(roller, 0, 2, 1)
	require.Error(t, err)
	assert.True(t, errors.IsOutOfRange(err))

	_, err = rules.RollHitPoints(roller, 8, 2, 0)
	require.Error(t, err)
	assert.True(t, errors.IsOutOfRange(err))
}
