package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/dice"
	mockdice "github.com/BlakeDanielson/SoloRelms-sub001/internal/dice/mock"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/rules"
)

func TestRollSavingThrow(t *testing.T) {
	tests := []struct {
		name        string
		face        int
		bonus       int
		dc          int
		wantSuccess bool
	}{
		{name: "comfortable success", face: 15, bonus: 4, dc: 13, wantSuccess: true},
		{name: "meeting the DC succeeds", face: 10, bonus: 3, dc: 13, wantSuccess: true},
		{name: "one short fails", face: 9, bonus: 3, dc: 13, wantSuccess: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls([]int{tt.face})

			outcome, err := rules.RollSavingThrow(roller, tt.bonus, tt.dc, dice.Normal)
			require.NoError(t, err)

			assert.Equal(t, tt.wantSuccess, outcome.Success)
			assert.Equal(t, tt.face+tt.bonus, outcome.Roll.Total)
			assert.Equal(t, tt.dc, outcome.DC)
		})
	}
}

func TestRollSavingThrow_WithDisadvantage(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{16, 4})

	outcome, err := rules.RollSavingThrow(roller, 2, 12, dice.Disadvantage)
	require.NoError(t, err)

	assert.Equal(t, 6, outcome.Roll.Total)
	assert.False(t, outcome.Success)
}

func TestRollSkillCheck_ProficiencyApplied(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{10, 10})

	proficient, err := rules.RollSkillCheck(roller, 3, 2, true, 15, dice.Normal)
	require.NoError(t, err)
	assert.Equal(t, 15, proficient.Roll.Total)
	assert.True(t, proficient.Success)

	unskilled, err := rules.RollSkillCheck(roller, 3, 2, false, 15, dice.Normal)
	require.NoError(t, err)
	assert.Equal(t, 13, unskilled.Roll.Total)
	assert.False(t, unskilled.Success)
}
