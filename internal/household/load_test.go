package household

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrago/carbon-advisor/internal/types"
)

func TestLoad_JSON(t *testing.T) {
	profile, err := Load(filepath.Join("testdata", "household.json"))
	require.NoError(t, err)

	assert.Equal(t, validProfile(), profile)
}

func TestLoad_YAML(t *testing.T) {
	profile, err := Load(filepath.Join("testdata", "household.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "EH1 1YZ", profile.Postcode)
	assert.Equal(t, 3, profile.Adults)
	assert.Equal(t, 0, profile.Cars)
	assert.Equal(t, types.FuelEV, profile.FuelType)
	assert.Equal(t, types.DietVegan, profile.Diet)
	assert.True(t, profile.HasSolar())
}

func TestLoad_YAMLMissingKey(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing_solar.yaml"))
	require.Error(t, err)

	var invalid *InvalidProfileError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "solar", invalid.Field)
	assert.Equal(t, "is required", invalid.Message)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.json"))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, os.IsNotExist(errors.Unwrap(loadErr)))
}

func TestParseJSON_MissingKeys(t *testing.T) {
	keys := []string{"postcode", "adults", "cars", "fuel_type", "trips_per_week", "diet", "solar"}
	full := map[string]string{
		"postcode":       `"AB1 2CD"`,
		"adults":         `2`,
		"cars":           `0`,
		"fuel_type":      `"diesel"`,
		"trips_per_week": `0`,
		"diet":           `"flexitarian"`,
		"solar":          `"no"`,
	}

	for _, missing := range keys {
		t.Run(missing, func(t *testing.T) {
			doc := "{"
			first := true
			for _, k := range keys {
				if k == missing {
					continue
				}
				if !first {
					doc += ","
				}
				doc += `"` + k + `":` + full[k]
				first = false
			}
			doc += "}"

			_, err := ParseJSON([]byte(doc))
			require.Error(t, err)

			var invalid *InvalidProfileError
			require.True(t, errors.As(err, &invalid), "missing key must be an InvalidProfileError, got %v", err)
			assert.Equal(t, missing, invalid.Field)
		})
	}
}

func TestParseJSON_ZeroValuesArePresent(t *testing.T) {
	doc := `{"postcode":"X1","adults":0,"cars":0,"fuel_type":"ev","trips_per_week":0,"diet":"vegan","solar":"yes"}`

	profile, err := ParseJSON([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 0, profile.Adults)
	assert.Equal(t, 0, profile.Cars)
	assert.Equal(t, 0, profile.TripsPerWeek)
}

func TestParseJSON_NullIsMissing(t *testing.T) {
	doc := `{"postcode":"X1","adults":null,"cars":0,"fuel_type":"ev","trips_per_week":0,"diet":"vegan","solar":"yes"}`

	_, err := ParseJSON([]byte(doc))
	require.Error(t, err)

	var invalid *InvalidProfileError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "adults", invalid.Field)
}

func TestParseJSON_ExtraKeysIgnored(t *testing.T) {
	doc := `{"postcode":"X1","adults":1,"cars":1,"fuel_type":"diesel","trips_per_week":3,"diet":"normal","solar":"no","pets":2}`

	profile, err := ParseJSON([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, types.FuelDiesel, profile.FuelType)
}

func TestParseJSON_EnumViolation(t *testing.T) {
	doc := `{"postcode":"X1","adults":1,"cars":1,"fuel_type":"diesel","trips_per_week":3,"diet":"keto","solar":"no"}`

	_, err := ParseJSON([]byte(doc))
	require.Error(t, err)

	var invalid *InvalidProfileError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "diet", invalid.Field)
}

func TestParse_BlankPostcode(t *testing.T) {
	jsonDoc := `{"postcode":"   ","adults":1,"cars":0,"fuel_type":"ev","trips_per_week":0,"diet":"vegan","solar":"no"}`
	yamlDoc := "postcode: \"   \"\nadults: 1\ncars: 0\nfuel_type: ev\ntrips_per_week: 0\ndiet: vegan\nsolar: \"no\"\n"

	for name, parse := range map[string]func() (*types.HouseholdProfile, error){
		"json": func() (*types.HouseholdProfile, error) { return ParseJSON([]byte(jsonDoc)) },
		"yaml": func() (*types.HouseholdProfile, error) { return ParseYAML([]byte(yamlDoc)) },
	} {
		t.Run(name, func(t *testing.T) {
			profile, err := parse()
			require.Error(t, err)
			assert.Nil(t, profile)

			var invalid *InvalidProfileError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, "postcode", invalid.Field)
		})
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := ParseJSON([]byte(`{"postcode": `))
	require.Error(t, err)

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestParseYAML_Malformed(t *testing.T) {
	_, err := ParseYAML([]byte("postcode: [unterminated"))
	require.Error(t, err)

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}
