// Package pipeline runs a complete household assessment: footprint, actions,
// equivalencies, rendering and optional persistence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/terrago/carbon-advisor/internal/actions"
	"github.com/terrago/carbon-advisor/internal/footprint"
	"github.com/terrago/carbon-advisor/internal/logging"
	"github.com/terrago/carbon-advisor/internal/rewriting"
	"github.com/terrago/carbon-advisor/internal/types"
)

// Step names reported through OnProgress
const (
	StepFootprint     = "footprint"
	StepActions       = "actions"
	StepEquivalencies = "equivalencies"
	StepRender        = "render"
	StepPersist       = "persist"
)

// ProgressEvent represents a progress update during an assessment
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Saver persists finished assessments.
type Saver interface {
	SaveAssessment(ctx context.Context, assessment *types.Assessment) error
}

// Options holds configuration for running an assessment.
// Every field is optional.
type Options struct {
	Calculator *footprint.Calculator
	Selector   *actions.Selector
	// Renderer defaults to rewriting.FixedRenderer.
	Renderer rewriting.Renderer
	// Store receives the assessment after it is built; a save failure fails the run.
	Store      Saver
	OnProgress ProgressCallback
	// Now defaults to time.Now.
	Now func() time.Time
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// Assess computes the footprint and actions for one household.
//
// A renderer failure never fails the assessment: the catalog text is used
// instead and a warning is logged. Context cancellation does fail it.
func Assess(ctx context.Context, profile *types.HouseholdProfile, opts Options) (*types.Assessment, error) {
	logger := logging.FromContext(ctx)

	fp, err := compute(opts, profile)
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, StepFootprint, fmt.Sprintf("Annual footprint %.2f kg CO2e", fp.TotalAnnual), fp)

	selection, err := selectActions(opts, profile)
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, StepActions, fmt.Sprintf("Selected %d actions", len(selection.Actions)), selection.IDs())

	equivalencies := footprint.Equivalencies(fp.TotalAnnual)
	emitProgress(&opts, StepEquivalencies, fmt.Sprintf("Computed %d equivalencies", len(equivalencies)), nil)

	renderer := opts.Renderer
	if renderer == nil {
		renderer = rewriting.FixedRenderer{}
	}
	rendered, err := renderer.Render(ctx, profile, selection)
	rendererName := renderer.Name()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn().
			Err(err).
			Str("renderer", rendererName).
			Str("postcode", profile.Postcode).
			Msg("renderer failed, using catalog text")
		rendered, _ = rewriting.FixedRenderer{}.Render(ctx, profile, selection)
		rendererName = rewriting.RendererFixed
	} else if !sameIDs(selection, rendered) {
		logger.Warn().
			Str("renderer", rendererName).
			Msg("renderer changed the selected actions, using catalog text")
		rendered, _ = rewriting.FixedRenderer{}.Render(ctx, profile, selection)
		rendererName = rewriting.RendererFixed
	}
	emitProgress(&opts, StepRender, "Rendered actions with "+rendererName, nil)

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	assessment := &types.Assessment{
		ID:            uuid.New(),
		Profile:       *profile,
		Footprint:     *fp,
		Actions:       *rendered,
		Equivalencies: equivalencies,
		Renderer:      rendererName,
		CreatedAt:     now().UTC(),
	}

	if opts.Store != nil {
		if err := opts.Store.SaveAssessment(ctx, assessment); err != nil {
			return nil, fmt.Errorf("failed to save assessment: %w", err)
		}
		emitProgress(&opts, StepPersist, "Saved assessment "+assessment.ID.String(), nil)
	}

	logger.Debug().
		Str("assessment_id", assessment.ID.String()).
		Float64("total_kgco2e", fp.TotalAnnual).
		Str("renderer", rendererName).
		Msg("assessment complete")

	return assessment, nil
}

func compute(opts Options, profile *types.HouseholdProfile) (*types.Footprint, error) {
	if opts.Calculator != nil {
		return opts.Calculator.Compute(profile)
	}
	return footprint.Compute(profile)
}

func selectActions(opts Options, profile *types.HouseholdProfile) (*types.ActionSelection, error) {
	if opts.Selector != nil {
		return opts.Selector.Select(profile)
	}
	return actions.Select(profile)
}

func sameIDs(a, b *types.ActionSelection) bool {
	if b == nil || len(a.Actions) != len(b.Actions) {
		return false
	}
	for i := range a.Actions {
		if a.Actions[i].ID != b.Actions[i].ID {
			return false
		}
	}
	return true
}

// BatchError identifies the profile that stopped a batch.
type BatchError struct {
	Index int
	Cause error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("profile %d: %v", e.Index, e.Cause)
}

func (e *BatchError) Unwrap() error {
	return e.Cause
}

// AssessBatch assesses many households concurrently, at most concurrency at a time
// (unbounded when concurrency <= 0). Results are in input order. The first failure
// cancels the remaining work and is returned as a *BatchError.
func AssessBatch(ctx context.Context, profiles []*types.HouseholdProfile, opts Options, concurrency int) ([]*types.Assessment, error) {
	results := make([]*types.Assessment, len(profiles))

	g, gCtx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, profile := range profiles {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			assessment, err := Assess(gCtx, profile, opts)
			if err != nil {
				return &BatchError{Index: i, Cause: err}
			}
			results[i] = assessment
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var batchErr *BatchError
		if errors.As(err, &batchErr) {
			return nil, batchErr
		}
		return nil, err
	}

	logging.FromContext(ctx).Info().Int("count", len(results)).Msg("batch assessment complete")
	return results, nil
}
