//nolint:revive // types is a standard Go package name pattern
package types

// Footprint is the annual CO2e estimate for a household, in kilograms.
// All values are rounded to two decimal places; TotalAnnual is computed
// from the unrounded subtotals.
type Footprint struct {
	TransportAnnual   float64 `json:"transport_annual"`
	DietAnnual        float64 `json:"diet_annual"`
	ElectricityAnnual float64 `json:"electricity_annual"`
	TotalAnnual       float64 `json:"total_annual"`
}

// FootprintDocument is the serialized form written by the compute command.
// Subtotals are only present when a breakdown was requested.
type FootprintDocument struct {
	AnnualTotalKgCO2e float64  `json:"annual_total_kgco2e"`
	TransportAnnual   *float64 `json:"transport_annual,omitempty"`
	DietAnnual        *float64 `json:"diet_annual,omitempty"`
	ElectricityAnnual *float64 `json:"electricity_annual,omitempty"`
}

// Document converts the footprint to its output document.
func (f *Footprint) Document(breakdown bool) FootprintDocument {
	doc := FootprintDocument{AnnualTotalKgCO2e: f.TotalAnnual}
	if breakdown {
		transport, diet, electricity := f.TransportAnnual, f.DietAnnual, f.ElectricityAnnual
		doc.TransportAnnual = &transport
		doc.DietAnnual = &diet
		doc.ElectricityAnnual = &electricity
	}
	return doc
}

// Equivalency expresses a CO2e amount as a relatable everyday quantity.
type Equivalency struct {
	Kind           string  `json:"kind"`
	Value          float64 `json:"value"`
	FormattedValue string  `json:"formatted_value"`
	Label          string  `json:"label"`
}
