package actions

import (
	"fmt"

	"github.com/terrago/carbon-advisor/internal/household"
	"github.com/terrago/carbon-advisor/internal/types"
)

// SelectionSize is the number of actions returned for every household.
const SelectionSize = 8

// Policy controls how many actions are selected and how they are spread over categories.
type Policy struct {
	Size int
	// Quotas caps how many actions the first pass takes from a category.
	// Categories without an entry are uncapped. Fill passes ignore quotas.
	Quotas map[types.Category]int
}

// DefaultPolicy selects SelectionSize actions with no category caps.
func DefaultPolicy() Policy {
	return Policy{Size: SelectionSize}
}

// Selector picks actions from a fixed candidate list.
// A Selector is read-only after construction and safe for concurrent use.
type Selector struct {
	policy     Policy
	candidates []Candidate
}

// NewSelector creates a Selector over the given candidates, which must be in rank order.
func NewSelector(policy Policy, candidates []Candidate) (*Selector, error) {
	if policy.Size <= 0 {
		return nil, &PolicyError{Message: fmt.Sprintf("size must be positive, got %d", policy.Size)}
	}
	for category, quota := range policy.Quotas {
		if quota < 0 {
			return nil, &PolicyError{Message: fmt.Sprintf("quota for %s must be >= 0, got %d", category, quota)}
		}
	}

	seen := make(map[types.ActionID]bool, len(candidates))
	for _, c := range candidates {
		if c.ID == "" {
			return nil, &PolicyError{Message: "candidate with empty id"}
		}
		if seen[c.ID] {
			return nil, &PolicyError{Message: fmt.Sprintf("duplicate candidate %s", c.ID)}
		}
		if c.Eligible == nil {
			return nil, &PolicyError{Message: fmt.Sprintf("candidate %s has no eligibility rule", c.ID)}
		}
		seen[c.ID] = true
	}

	quotas := make(map[types.Category]int, len(policy.Quotas))
	for k, v := range policy.Quotas {
		quotas[k] = v
	}
	owned := make([]Candidate, len(candidates))
	copy(owned, candidates)

	return &Selector{
		policy:     Policy{Size: policy.Size, Quotas: quotas},
		candidates: owned,
	}, nil
}

var defaultSelector = func() *Selector {
	s, err := NewSelector(DefaultPolicy(), catalog)
	if err != nil {
		panic(err)
	}
	return s
}()

// Select picks the standard eight actions for a household from the standard catalog.
func Select(profile *types.HouseholdProfile) (*types.ActionSelection, error) {
	return defaultSelector.Select(profile)
}

// Select picks actions for a household.
//
// The first pass walks categories in order (transport, diet, electricity, general)
// and takes eligible candidates up to each category's quota. Fill passes then take
// the remaining eligible candidates in catalog order until the selection is full.
func (s *Selector) Select(profile *types.HouseholdProfile) (*types.ActionSelection, error) {
	if err := household.Validate(profile); err != nil {
		return nil, err
	}

	eligible := make([]Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		if c.Eligible(profile) {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) < s.policy.Size {
		return nil, &InsufficientCandidatesError{Eligible: len(eligible), Required: s.policy.Size}
	}

	picked := make([]bool, len(eligible))
	order := make([]int, 0, s.policy.Size)

	for _, category := range Categories() {
		quota, capped := s.policy.Quotas[category]
		taken := 0
		for i, c := range eligible {
			if len(order) == s.policy.Size || (capped && taken == quota) {
				break
			}
			if c.Category != category {
				continue
			}
			picked[i] = true
			order = append(order, i)
			taken++
		}
	}

	for i := range eligible {
		if len(order) == s.policy.Size {
			break
		}
		if !picked[i] {
			picked[i] = true
			order = append(order, i)
		}
	}

	selected := make([]types.SelectedAction, 0, len(order))
	for _, i := range order {
		c := eligible[i]
		selected = append(selected, types.SelectedAction{ID: c.ID, Category: c.Category, Text: c.Text})
	}
	return &types.ActionSelection{Actions: selected}, nil
}
