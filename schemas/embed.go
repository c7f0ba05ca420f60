// Package schemas holds the JSON Schema documents for household input and command output.
package schemas

import "embed"

// Files contains every *.schema.json document in this directory.
//
//go:embed *.schema.json
var Files embed.FS

// Schema file names
const (
	Household = "household.schema.json"
	Footprint = "footprint.schema.json"
	Actions   = "actions.schema.json"
)

// All lists every embedded schema file name.
func All() []string {
	return []string{Household, Footprint, Actions}
}
