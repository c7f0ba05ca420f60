package db

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/terrago/carbon-advisor/internal/types"
)

// Listing limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ListAssessmentsOptions contains filters for listing assessments
type ListAssessmentsOptions struct {
	Postcode string // Matched after NormalizePostcode
	Limit    int    // Defaults to DefaultListLimit, capped at MaxListLimit
}

func (o ListAssessmentsOptions) limit() int {
	switch {
	case o.Limit <= 0:
		return DefaultListLimit
	case o.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return o.Limit
	}
}

// NormalizePostcode upper-cases a postcode and drops its whitespace,
// so "sw1a 1aa" and "SW1A1AA" are stored under the same key.
func NormalizePostcode(postcode string) string {
	return strings.ToUpper(strings.Join(strings.Fields(postcode), ""))
}

// assessmentRow is the column layout of the assessments table
type assessmentRow struct {
	ID            uuid.UUID
	Postcode      string
	PostcodeKey   string
	Profile       []byte
	Footprint     []byte
	Actions       []byte
	Equivalencies []byte
	TotalKgCO2e   float64
	Renderer      string
	CreatedAt     time.Time
}

func rowFromAssessment(a *types.Assessment) (*assessmentRow, error) {
	profile, err := json.Marshal(a.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	footprint, err := json.Marshal(a.Footprint)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal footprint: %w", err)
	}
	actions, err := json.Marshal(a.Actions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal actions: %w", err)
	}
	equivalencies := a.Equivalencies
	if equivalencies == nil {
		equivalencies = []types.Equivalency{}
	}
	equivalenciesJSON, err := json.Marshal(equivalencies)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal equivalencies: %w", err)
	}

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return &assessmentRow{
		ID:            a.ID,
		Postcode:      a.Profile.Postcode,
		PostcodeKey:   NormalizePostcode(a.Profile.Postcode),
		Profile:       profile,
		Footprint:     footprint,
		Actions:       actions,
		Equivalencies: equivalenciesJSON,
		TotalKgCO2e:   a.Footprint.TotalAnnual,
		Renderer:      a.Renderer,
		CreatedAt:     createdAt,
	}, nil
}

func (r *assessmentRow) toAssessment() (*types.Assessment, error) {
	a := &types.Assessment{
		ID:        r.ID,
		Renderer:  r.Renderer,
		CreatedAt: r.CreatedAt.UTC(),
	}
	if err := json.Unmarshal(r.Profile, &a.Profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	if err := json.Unmarshal(r.Footprint, &a.Footprint); err != nil {
		return nil, fmt.Errorf("failed to unmarshal footprint: %w", err)
	}
	if err := json.Unmarshal(r.Actions, &a.Actions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal actions: %w", err)
	}
	if len(r.Equivalencies) > 0 {
		if err := json.Unmarshal(r.Equivalencies, &a.Equivalencies); err != nil {
			return nil, fmt.Errorf("failed to unmarshal equivalencies: %w", err)
		}
		if len(a.Equivalencies) == 0 {
			a.Equivalencies = nil
		}
	}
	return a, nil
}
