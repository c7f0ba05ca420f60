// Package actions selects eight small, low-cost lifestyle changes for a household.
package actions

import "github.com/terrago/carbon-advisor/internal/types"

// Candidate is one entry of the action catalog.
type Candidate struct {
	ID       types.ActionID
	Category types.Category
	Text     string
	// Eligible reports whether the action applies to the profile.
	Eligible func(p *types.HouseholdProfile) bool
}

// Candidate ids
const (
	WalkOrCycleShortTrip       types.ActionID = "walk_or_cycle_short_trip"
	CombineErrands             types.ActionID = "combine_errands"
	FuelSavingDriving          types.ActionID = "fuel_saving_driving"
	PublicTransportWeekly      types.ActionID = "public_transport_weekly"
	KeepWalkingPublicTransport types.ActionID = "keep_walking_public_transport"
	MeatFreeMeal               types.ActionID = "meat_free_meal"
	ExtraVegetarianMeal        types.ActionID = "extra_vegetarian_meal"
	SeasonalLocalProduce       types.ActionID = "seasonal_local_produce"
	SwitchOffAppliances        types.ActionID = "switch_off_appliances"
	ColdWaterLaundry           types.ActionID = "cold_water_laundry"
	AirDryLaundry              types.ActionID = "air_dry_laundry"
	LightsOff                  types.ActionID = "lights_off"
	ReusableBagsBottles        types.ActionID = "reusable_bags_bottles"
	ShorterShowers             types.ActionID = "shorter_showers"
	FillKettleAsNeeded         types.ActionID = "fill_kettle_as_needed"
	ReduceFoodWaste            types.ActionID = "reduce_food_waste"
)

// HighTripsPerWeek is the weekly trip count above which public transport is suggested.
const HighTripsPerWeek = 5

func always(*types.HouseholdProfile) bool { return true }

func drives(p *types.HouseholdProfile) bool { return p.Drives() }

func dietIn(diets ...types.Diet) func(*types.HouseholdProfile) bool {
	return func(p *types.HouseholdProfile) bool {
		for _, d := range diets {
			if p.Diet == d {
				return true
			}
		}
		return false
	}
}

// catalog is ordered by category, then by rank within the category.
var catalog = []Candidate{
	{
		ID:       WalkOrCycleShortTrip,
		Category: types.CategoryTransport,
		Text:     "Replace one short car trip each week with walking or cycling.",
		Eligible: drives,
	},
	{
		ID:       CombineErrands,
		Category: types.CategoryTransport,
		Text:     "Combine errands into a single outing to cut down on car trips.",
		Eligible: drives,
	},
	{
		ID:       FuelSavingDriving,
		Category: types.CategoryTransport,
		Text:     "Drive gently and keep your tyres properly inflated to save fuel.",
		Eligible: func(p *types.HouseholdProfile) bool {
			return p.Drives() && p.FuelType != types.FuelEV
		},
	},
	{
		ID:       PublicTransportWeekly,
		Category: types.CategoryTransport,
		Text:     "Take public transport for one of your regular journeys once a week.",
		Eligible: func(p *types.HouseholdProfile) bool {
			return p.TripsPerWeek > HighTripsPerWeek
		},
	},
	{
		ID:       KeepWalkingPublicTransport,
		Category: types.CategoryTransport,
		Text:     "Keep up your walking and public transport habits for everyday journeys.",
		Eligible: func(p *types.HouseholdProfile) bool {
			return !p.HasCars()
		},
	},
	{
		ID:       MeatFreeMeal,
		Category: types.CategoryDiet,
		Text:     "Swap one meat-based meal each week for a meat-free one.",
		Eligible: dietIn(types.DietMeatHeavy, types.DietNormal),
	},
	{
		ID:       ExtraVegetarianMeal,
		Category: types.CategoryDiet,
		Text:     "Add one more vegetarian meal to your weekly menu.",
		Eligible: dietIn(types.DietFlexitarian),
	},
	{
		ID:       SeasonalLocalProduce,
		Category: types.CategoryDiet,
		Text:     "Choose seasonal, locally grown produce to cut food transport emissions.",
		Eligible: dietIn(types.DietVegetarian, types.DietVegan),
	},
	{
		ID:       SwitchOffAppliances,
		Category: types.CategoryElectricity,
		Text:     "Switch off appliances at the wall when they are not in use.",
		Eligible: func(p *types.HouseholdProfile) bool {
			return !p.HasSolar()
		},
	},
	{
		ID:       ColdWaterLaundry,
		Category: types.CategoryElectricity,
		Text:     "Wash your clothes in cold water.",
		Eligible: always,
	},
	{
		ID:       AirDryLaundry,
		Category: types.CategoryElectricity,
		Text:     "Air-dry one load of laundry each week instead of using the dryer.",
		Eligible: always,
	},
	{
		ID:       LightsOff,
		Category: types.CategoryElectricity,
		Text:     "Turn off the lights whenever you leave a room.",
		Eligible: always,
	},
	{
		ID:       ReusableBagsBottles,
		Category: types.CategoryGeneral,
		Text:     "Carry reusable bags and water bottles when you go out.",
		Eligible: always,
	},
	{
		ID:       ShorterShowers,
		Category: types.CategoryGeneral,
		Text:     "Cut one minute from each shower.",
		Eligible: always,
	},
	{
		ID:       FillKettleAsNeeded,
		Category: types.CategoryGeneral,
		Text:     "Fill the kettle with only as much water as you need.",
		Eligible: always,
	},
	// Ranked last: only reached when fewer than eight others are eligible.
	{
		ID:       ReduceFoodWaste,
		Category: types.CategoryGeneral,
		Text:     "Plan your meals to cut food waste and use up leftovers.",
		Eligible: always,
	},
}

var catalogIndex = func() map[types.ActionID]int {
	index := make(map[types.ActionID]int, len(catalog))
	for i, c := range catalog {
		index[c.ID] = i
	}
	return index
}()

// Catalog returns a copy of the standard catalog in rank order.
func Catalog() []Candidate {
	out := make([]Candidate, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry with the given id.
func Lookup(id types.ActionID) (Candidate, bool) {
	i, ok := catalogIndex[id]
	if !ok {
		return Candidate{}, false
	}
	return catalog[i], true
}

// Categories returns the categories in the order the selector visits them.
func Categories() []types.Category {
	return []types.Category{
		types.CategoryTransport,
		types.CategoryDiet,
		types.CategoryElectricity,
		types.CategoryGeneral,
	}
}
