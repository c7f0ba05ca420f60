package footprint

import (
	"fmt"
	"math"

	"github.com/terrago/carbon-advisor/internal/household"
	"github.com/terrago/carbon-advisor/internal/types"
)

// Calculator computes annual footprints over a fixed set of factors.
// A Calculator is read-only after construction and safe for concurrent use.
type Calculator struct {
	factors Factors
}

// NewCalculator creates a Calculator over the given factors.
func NewCalculator(factors Factors) *Calculator {
	return &Calculator{factors: factors}
}

var defaultCalculator = NewCalculator(DefaultFactors())

// Compute estimates the annual footprint of a household with the default factors.
func Compute(profile *types.HouseholdProfile) (*types.Footprint, error) {
	return defaultCalculator.Compute(profile)
}

// Compute estimates the annual footprint of a household.
//
// Trip frequency is per household and is charged to every car, so a two-car
// household making five trips a week is counted as ten car trips.
// Subtotals are rounded to two decimals only in the returned value.
func (c *Calculator) Compute(profile *types.HouseholdProfile) (*types.Footprint, error) {
	if err := household.Validate(profile); err != nil {
		return nil, err
	}

	perTrip, ok := c.factors.tripEmissions(profile.FuelType)
	if !ok {
		return nil, &household.InvalidProfileError{
			Field:   "fuel_type",
			Message: fmt.Sprintf("has no emission factor for %q", profile.FuelType),
		}
	}

	perPerson, ok := c.factors.DietPerPerson[profile.Diet]
	if !ok {
		return nil, &household.InvalidProfileError{
			Field:   "diet",
			Message: fmt.Sprintf("has no emission factor for %q", profile.Diet),
		}
	}

	transport := float64(profile.Cars) * float64(profile.TripsPerWeek) * perTrip * WeeksPerYear
	diet := float64(profile.Adults) * perPerson

	electricity := 0.0
	if !profile.HasSolar() {
		electricity = c.factors.gridElectricity()
	}

	return &types.Footprint{
		TransportAnnual:   round2(transport),
		DietAnnual:        round2(diet),
		ElectricityAnnual: round2(electricity),
		TotalAnnual:       round2(transport + diet + electricity),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
