// Package types provides type definitions for structured data used throughout the carbon advisor.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// FuelType is the fuel used by the household's cars.
type FuelType string

// Supported fuel types
const (
	FuelPetrol FuelType = "petrol"
	FuelDiesel FuelType = "diesel"
	FuelEV     FuelType = "ev"
)

// Diet is the household's predominant diet.
type Diet string

// Supported diets, ordered from highest to lowest emissions
const (
	DietMeatHeavy   Diet = "meat_heavy"
	DietNormal      Diet = "normal"
	DietFlexitarian Diet = "flexitarian"
	DietVegetarian  Diet = "vegetarian"
	DietVegan       Diet = "vegan"
)

// FuelTypes lists every supported fuel type.
func FuelTypes() []FuelType {
	return []FuelType{FuelPetrol, FuelDiesel, FuelEV}
}

// Diets lists every supported diet.
func Diets() []Diet {
	return []Diet{DietMeatHeavy, DietNormal, DietFlexitarian, DietVegetarian, DietVegan}
}

// HouseholdProfile describes one household's transport, diet and electricity characteristics.
// Profiles are treated as immutable values once constructed; both the footprint calculator
// and the action selector read them without modification.
type HouseholdProfile struct {
	Postcode     string   `json:"postcode" yaml:"postcode" validate:"required,postcode"`
	Adults       int      `json:"adults" yaml:"adults" validate:"min=0"`
	Cars         int      `json:"cars" yaml:"cars" validate:"min=0"`
	FuelType     FuelType `json:"fuel_type" yaml:"fuel_type" validate:"required,oneof=petrol diesel ev"`
	TripsPerWeek int      `json:"trips_per_week" yaml:"trips_per_week" validate:"min=0"`
	Diet         Diet     `json:"diet" yaml:"diet" validate:"required,oneof=meat_heavy normal flexitarian vegetarian vegan"`
	Solar        string   `json:"solar" yaml:"solar" validate:"required,solar"`
}

// HasSolar reports whether the household generates its own electricity.
// The solar flag is compared case-insensitively.
func (p *HouseholdProfile) HasSolar() bool {
	return strings.EqualFold(strings.TrimSpace(p.Solar), "yes")
}

// HasCars reports whether the household owns at least one car.
func (p *HouseholdProfile) HasCars() bool {
	return p.Cars > 0
}

// Drives reports whether the household owns a car and makes at least one trip a week.
func (p *HouseholdProfile) Drives() bool {
	return p.Cars > 0 && p.TripsPerWeek > 0
}
