package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrago/carbon-advisor/internal/types"
)

func TestCatalog_Shape(t *testing.T) {
	c := Catalog()
	require.Len(t, c, 16)

	// Grouped by category in visiting order.
	rank := make(map[types.Category]int)
	for i, cat := range Categories() {
		rank[cat] = i
	}
	last := -1
	seen := make(map[types.ActionID]bool)
	for _, candidate := range c {
		r, ok := rank[candidate.Category]
		require.True(t, ok, "unknown category %s", candidate.Category)
		assert.GreaterOrEqual(t, r, last, "%s is out of category order", candidate.ID)
		last = r

		assert.False(t, seen[candidate.ID], "duplicate %s", candidate.ID)
		seen[candidate.ID] = true
		assert.NotEmpty(t, candidate.Text)
		assert.NotNil(t, candidate.Eligible)
	}
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	c := Catalog()
	c[0].Text = "changed"

	original, ok := Lookup(WalkOrCycleShortTrip)
	require.True(t, ok)
	assert.NotEqual(t, "changed", original.Text)
}

func TestLookup(t *testing.T) {
	c, ok := Lookup(ShorterShowers)
	require.True(t, ok)
	assert.Equal(t, types.CategoryGeneral, c.Category)

	_, ok = Lookup("buy_an_ev")
	assert.False(t, ok)
}

func TestEligibility(t *testing.T) {
	tests := []struct {
		id      types.ActionID
		mutate  func(p *types.HouseholdProfile)
		outcome bool
	}{
		{WalkOrCycleShortTrip, func(p *types.HouseholdProfile) {}, true},
		{WalkOrCycleShortTrip, func(p *types.HouseholdProfile) { p.TripsPerWeek = 0 }, false},
		{CombineErrands, func(p *types.HouseholdProfile) { p.Cars = 0 }, false},
		{FuelSavingDriving, func(p *types.HouseholdProfile) { p.FuelType = types.FuelDiesel }, true},
		{FuelSavingDriving, func(p *types.HouseholdProfile) { p.FuelType = types.FuelEV }, false},
		{PublicTransportWeekly, func(p *types.HouseholdProfile) { p.TripsPerWeek = 5 }, false},
		{PublicTransportWeekly, func(p *types.HouseholdProfile) { p.Cars, p.TripsPerWeek = 0, 7 }, true},
		{KeepWalkingPublicTransport, func(p *types.HouseholdProfile) {}, false},
		{KeepWalkingPublicTransport, func(p *types.HouseholdProfile) { p.Cars = 0 }, true},
		{MeatFreeMeal, func(p *types.HouseholdProfile) { p.Diet = types.DietMeatHeavy }, true},
		{MeatFreeMeal, func(p *types.HouseholdProfile) { p.Diet = types.DietFlexitarian }, false},
		{ExtraVegetarianMeal, func(p *types.HouseholdProfile) { p.Diet = types.DietFlexitarian }, true},
		{SeasonalLocalProduce, func(p *types.HouseholdProfile) { p.Diet = types.DietVegan }, true},
		{SeasonalLocalProduce, func(p *types.HouseholdProfile) {}, false},
		{SwitchOffAppliances, func(p *types.HouseholdProfile) { p.Solar = "Yes" }, false},
		{SwitchOffAppliances, func(p *types.HouseholdProfile) { p.Solar = "NO" }, true},
		{LightsOff, func(p *types.HouseholdProfile) { p.Solar = "yes" }, true},
		{FillKettleAsNeeded, func(p *types.HouseholdProfile) { p.Cars = 0 }, true},
	}

	for _, tt := range tests {
		c, ok := Lookup(tt.id)
		require.True(t, ok)

		profile := scenarioProfile()
		tt.mutate(profile)
		assert.Equal(t, tt.outcome, c.Eligible(profile), "%s with %s", tt.id, describe(profile))
	}
}
