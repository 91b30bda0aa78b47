package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyumbaBack/internal/models"
)

func TestPlanFor(t *testing.T) {
	basic, ok := PlanFor(models.PlanBasic)
	require.True(t, ok)
	assert.Equal(t, 5000.0, basic.Amount)
	assert.Equal(t, 1, basic.Slots)

	standard, ok := PlanFor(models.PlanStandard)
	require.True(t, ok)
	assert.Equal(t, 10000.0, standard.Amount)
	assert.Equal(t, 5, standard.Slots)

	premium, ok := PlanFor(models.PlanPremium)
	require.True(t, ok)
	assert.Equal(t, 20000.0, premium.Amount)
	assert.Equal(t, 15, premium.Slots)

	_, ok = PlanFor("platinum")
	assert.False(t, ok)
}

func TestPlanSlotsAreMonotonic(t *testing.T) {
	basic, _ := PlanFor(models.PlanBasic)
	standard, _ := PlanFor(models.PlanStandard)
	premium, _ := PlanFor(models.PlanPremium)

	assert.Less(t, basic.Slots, standard.Slots)
	assert.Less(t, standard.Slots, premium.Slots)
	assert.Less(t, basic.Amount, standard.Amount)
	assert.Less(t, standard.Amount, premium.Amount)
}
