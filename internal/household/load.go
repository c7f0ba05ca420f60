package household

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/terrago/carbon-advisor/internal/schemas"
	"github.com/terrago/carbon-advisor/internal/types"
	schemafiles "github.com/terrago/carbon-advisor/schemas"
)

// profileDocument mirrors HouseholdProfile with pointer fields so a missing key
// can be told apart from a zero value. Every key is mandatory.
type profileDocument struct {
	Postcode     *string `json:"postcode" yaml:"postcode" validate:"required"`
	Adults       *int    `json:"adults" yaml:"adults" validate:"required"`
	Cars         *int    `json:"cars" yaml:"cars" validate:"required"`
	FuelType     *string `json:"fuel_type" yaml:"fuel_type" validate:"required"`
	TripsPerWeek *int    `json:"trips_per_week" yaml:"trips_per_week" validate:"required"`
	Diet         *string `json:"diet" yaml:"diet" validate:"required"`
	Solar        *string `json:"solar" yaml:"solar" validate:"required"`
}

func (d *profileDocument) profile() *types.HouseholdProfile {
	return &types.HouseholdProfile{
		Postcode:     *d.Postcode,
		Adults:       *d.Adults,
		Cars:         *d.Cars,
		FuelType:     types.FuelType(*d.FuelType),
		TripsPerWeek: *d.TripsPerWeek,
		Diet:         types.Diet(*d.Diet),
		Solar:        *d.Solar,
	}
}

// Load reads a household profile from a .json, .yaml or .yml file.
// Files with any other extension are parsed as JSON.
func Load(path string) (*types.HouseholdProfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(content)
	default:
		return ParseJSON(content)
	}
}

// ParseJSON decodes and validates a household profile JSON document.
// The document is checked against the household schema first so that missing
// keys and type mismatches are reported with their field names.
func ParseJSON(data []byte) (*types.HouseholdProfile, error) {
	if err := schemas.ValidateDocument(schemafiles.Household, data); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) && len(validationErr.Errors) > 0 {
			first := validationErr.Errors[0]
			return nil, &InvalidProfileError{
				Field:   first.Field,
				Message: first.Message,
				Cause:   err,
			}
		}
		return nil, &LoadError{Message: "failed to parse JSON", Cause: err}
	}

	var doc profileDocument
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil {
		return nil, decodeError(err)
	}

	return finish(&doc)
}

// ParseYAML decodes and validates a household profile YAML document.
func ParseYAML(data []byte) (*types.HouseholdProfile, error) {
	var doc profileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	return finish(&doc)
}

func finish(doc *profileDocument) (*types.HouseholdProfile, error) {
	if problems := missingKeys(doc); len(problems) > 0 {
		return nil, &InvalidProfileError{
			Field:   problems[0].Field,
			Message: problems[0].Message,
		}
	}

	profile := doc.profile()
	if err := Validate(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func missingKeys(doc *profileDocument) []Problem {
	return problemsFrom(validate.Struct(doc))
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &InvalidProfileError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("must be %s, got %s", typeErr.Type, typeErr.Value),
			Cause:   err,
		}
	}
	return &LoadError{Message: "failed to unmarshal JSON", Cause: err}
}
