package bestiary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/BlakeDanielson/SoloRelms-sub001/internal/dice/mock"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/bestiary"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/combat"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

func TestServiceGet(t *testing.T) {
	svc := NewService(&ServiceConfig{})

	t.Run("known monster", func(t *testing.T) {
		tmpl, err := svc.Get(bestiary.KeyGoblin)
		require.NoError(t, err)

		assert.Equal(t, "Goblin", tmpl.Name)
		assert.Equal(t, 50, tmpl.XPValue)
		assert.Equal(t, 15, tmpl.AC)
		assert.Equal(t, 2, tmpl.InitiativeBonus())
		require.NotEmpty(t, tmpl.Attacks)
	})

	t.Run("unknown monster", func(t *testing.T) {
		_, err := svc.Get("tarrasque")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := svc.Get("")
		assert.True(t, errors.IsInvalidArgument(err))
	})
}

func TestServiceList(t *testing.T) {
	svc := NewService(&ServiceConfig{})
	keys := svc.List()

	assert.GreaterOrEqual(t, len(keys), 8)
	assert.Contains(t, keys, bestiary.KeyGoblin)
	assert.Contains(t, keys, bestiary.KeyOwlbear)
	assert.IsNonDecreasing(t, keys)
}

func TestServiceGetByCR(t *testing.T) {
	svc := NewService(&ServiceConfig{})

	easy := svc.GetByCR(0, 0.25)
	for _, tmpl := range easy {
		assert.LessOrEqual(t, tmpl.ChallengeRating, 0.25)
	}
	assert.NotEmpty(t, easy)

	hard := svc.GetByCR(3, 10)
	require.Len(t, hard, 1)
	assert.Equal(t, "Owlbear", hard[0].Name)
}

func TestServiceInstantiate(t *testing.T) {
	svc := NewService(&ServiceConfig{})

	t.Run("rolls hit dice", func(t *testing.T) {
		// Goblin hit dice are 2d6.
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{6, 5})

		p, err := svc.Instantiate(bestiary.KeyGoblin, "1", roller)
		require.NoError(t, err)

		assert.Equal(t, "goblin-1", p.ID)
		assert.Equal(t, combat.KindEnemy, p.Kind)
		assert.Equal(t, 11, p.MaxHP)
		assert.Equal(t, 11, p.CurrentHP)
		assert.Equal(t, 2, p.InitiativeBonus)
		assert.Equal(t, 50, p.XPValue)
		assert.NotEmpty(t, p.LootTable)
	})

	t.Run("nil roller uses the flat maximum", func(t *testing.T) {
		p, err := svc.Instantiate(bestiary.KeyGoblin, "2", nil)
		require.NoError(t, err)
		assert.Equal(t, 7, p.MaxHP)
	})

	t.Run("template without hit dice uses the flat maximum", func(t *testing.T) {
		svc := NewService(&ServiceConfig{
			Templates: map[string]bestiary.EnemyTemplate{
				"training_dummy": {Key: "training_dummy", Name: "Training Dummy", MaxHP: 10, AC: 10},
			},
		})

		p, err := svc.Instantiate("training_dummy", "1", mockdice.NewManualMockRoller())
		require.NoError(t, err)
		assert.Equal(t, 10, p.MaxHP)
	})

	t.Run("unknown monster", func(t *testing.T) {
		_, err := svc.Instantiate("tarrasque", "1", nil)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("missing suffix", func(t *testing.T) {
		_, err := svc.Instantiate(bestiary.KeyGoblin, "", nil)
		assert.True(t, errors.IsInvalidArgument(err))
	})
}
