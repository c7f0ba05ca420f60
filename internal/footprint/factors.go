// Package footprint estimates a household's annual CO2e emissions from its profile.
package footprint

import "github.com/terrago/carbon-advisor/internal/types"

// Fixed emission factors. Sources are the household advisor's published constants;
// they are domain constants, not derived from input.
const (
	// AvgTripDistanceKm is the assumed length of one car trip.
	AvgTripDistanceKm = 10.0

	// WeeksPerYear converts weekly trip counts to annual totals.
	WeeksPerYear = 52

	// HouseholdElectricityKWh is the assumed annual electricity use of a household without solar.
	HouseholdElectricityKWh = 4000.0

	// ElectricityFactor is kg CO2e per kWh of grid electricity.
	ElectricityFactor = 0.70
)

// Factors holds the lookup tables used by a Calculator.
type Factors struct {
	AvgTripDistanceKm float64
	// Efficiency is consumption per km: litres for combustion fuels, kWh for electric.
	Efficiency map[types.FuelType]float64
	// Emission is kg CO2e per litre (combustion) or per kWh (electric).
	Emission map[types.FuelType]float64
	// DietPerPerson is annual kg CO2e per adult.
	DietPerPerson           map[types.Diet]float64
	HouseholdElectricityKWh float64
	ElectricityFactor       float64
}

// DefaultFactors returns a fresh copy of the standard factor tables.
func DefaultFactors() Factors {
	return Factors{
		AvgTripDistanceKm: AvgTripDistanceKm,
		Efficiency: map[types.FuelType]float64{
			types.FuelPetrol: 0.07, // L/km
			types.FuelDiesel: 0.06, // L/km
			types.FuelEV:     0.18, // kWh/km
		},
		Emission: map[types.FuelType]float64{
			types.FuelPetrol: 2.31, // kg/L
			types.FuelDiesel: 2.68, // kg/L
			types.FuelEV:     0.70, // kg/kWh
		},
		DietPerPerson: map[types.Diet]float64{
			types.DietMeatHeavy:   3200,
			types.DietNormal:      2500,
			types.DietFlexitarian: 2000,
			types.DietVegetarian:  1500,
			types.DietVegan:       1000,
		},
		HouseholdElectricityKWh: HouseholdElectricityKWh,
		ElectricityFactor:       ElectricityFactor,
	}
}

// tripEmissions returns kg CO2e for one trip with the given fuel.
func (f *Factors) tripEmissions(fuel types.FuelType) (float64, bool) {
	efficiency, ok := f.Efficiency[fuel]
	if !ok {
		return 0, false
	}
	emission, ok := f.Emission[fuel]
	if !ok {
		return 0, false
	}
	return f.AvgTripDistanceKm * efficiency * emission, true
}

// gridElectricity returns the annual kg CO2e of a household drawing all its electricity from the grid.
func (f *Factors) gridElectricity() float64 {
	return f.HouseholdElectricityKWh * f.ElectricityFactor
}
