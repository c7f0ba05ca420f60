package footprint

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/terrago/carbon-advisor/internal/types"
)

// EPA greenhouse gas equivalency divisors (kg CO2e per unit).
// equivalency = kg_CO2e / factor
const (
	MilesDrivenFactor        = 0.192
	SmartphoneChargeFactor   = 0.00822
	TreeSeedlingFactor       = 60.0
	HomeElectricityDayFactor = 18.3

	// MinEquivalencyKg is the smallest total worth expressing as equivalencies.
	MinEquivalencyKg = 1.0
)

// Equivalency kinds
const (
	KindMilesDriven        = "miles_driven"
	KindSmartphonesCharged = "smartphones_charged"
	KindTreeSeedlings      = "tree_seedlings"
	KindHomeDays           = "home_electricity_days"
)

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

type equivalencyDef struct {
	kind   string
	factor float64
	label  string
}

var equivalencyDefs = []equivalencyDef{
	{KindMilesDriven, MilesDrivenFactor, "miles driven in an average car"},
	{KindSmartphonesCharged, SmartphoneChargeFactor, "smartphone charges"},
	{KindTreeSeedlings, TreeSeedlingFactor, "tree seedlings grown for 10 years"},
	{KindHomeDays, HomeElectricityDayFactor, "days of average home electricity"},
}

// Equivalencies expresses an annual CO2e total as everyday quantities.
// Totals below MinEquivalencyKg, and non-finite values, yield nil.
func Equivalencies(totalKg float64) []types.Equivalency {
	if totalKg < MinEquivalencyKg || math.IsInf(totalKg, 0) || math.IsNaN(totalKg) {
		return nil
	}

	results := make([]types.Equivalency, 0, len(equivalencyDefs))
	for _, def := range equivalencyDefs {
		value := totalKg / def.factor
		results = append(results, types.Equivalency{
			Kind:           def.kind,
			Value:          value,
			FormattedValue: FormatQuantity(value),
			Label:          def.label,
		})
	}
	return results
}

// FormatQuantity rounds to a whole number and adds thousands separators, e.g. 18248 -> "18,248".
func FormatQuantity(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

// FormatKg formats a kilogram amount with two decimals and thousands separators, e.g. "8,304.50".
func FormatKg(v float64) string {
	return printer.Sprintf("%.2f", v)
}
