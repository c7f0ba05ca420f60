//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Assessment combines the footprint estimate and the recommendations for one household.
type Assessment struct {
	ID            uuid.UUID        `json:"id"`
	Profile       HouseholdProfile `json:"profile"`
	Footprint     Footprint        `json:"footprint"`
	Actions       ActionSelection  `json:"actions"`
	Equivalencies []Equivalency    `json:"equivalencies,omitempty"`
	Renderer      string           `json:"renderer"`
	CreatedAt     time.Time        `json:"created_at"`
}
