package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/terrago/carbon-advisor/internal/types"
)

const assessmentColumns = `id, postcode, postcode_key, profile, footprint, actions,
	equivalencies, total_kgco2e::float8, renderer, created_at`

// SaveAssessment inserts an assessment. Saving the same id twice overwrites the stored copy.
func (db *DB) SaveAssessment(ctx context.Context, assessment *types.Assessment) error {
	if assessment == nil {
		return errors.New("assessment is nil")
	}
	if assessment.ID == uuid.Nil {
		return errors.New("assessment id is required")
	}

	row, err := rowFromAssessment(assessment)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO assessments (id, postcode, postcode_key, profile, footprint, actions,
		                          equivalencies, total_kgco2e, renderer, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE SET
		     postcode = EXCLUDED.postcode,
		     postcode_key = EXCLUDED.postcode_key,
		     profile = EXCLUDED.profile,
		     footprint = EXCLUDED.footprint,
		     actions = EXCLUDED.actions,
		     equivalencies = EXCLUDED.equivalencies,
		     total_kgco2e = EXCLUDED.total_kgco2e,
		     renderer = EXCLUDED.renderer`,
		row.ID, row.Postcode, row.PostcodeKey, row.Profile, row.Footprint, row.Actions,
		row.Equivalencies, row.TotalKgCO2e, row.Renderer, row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment %s: %w", row.ID, err)
	}
	return nil
}

// GetAssessment retrieves an assessment by ID. It returns nil, nil when no row matches.
func (db *DB) GetAssessment(ctx context.Context, id uuid.UUID) (*types.Assessment, error) {
	var row assessmentRow
	err := db.pool.QueryRow(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE id = $1`,
		id,
	).Scan(rowDest(&row)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return row.toAssessment()
}

// ListAssessments returns the most recent assessments for a postcode, newest first
func (db *DB) ListAssessments(ctx context.Context, opts ListAssessmentsOptions) ([]types.Assessment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+assessmentColumns+`
		 FROM assessments
		 WHERE postcode_key = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		NormalizePostcode(opts.Postcode), opts.limit(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	assessments := []types.Assessment{}
	for rows.Next() {
		var row assessmentRow
		if err := rows.Scan(rowDest(&row)...); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		a, err := row.toAssessment()
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

// ListAssessmentsByPostcode is ListAssessments with the default limit
func (db *DB) ListAssessmentsByPostcode(ctx context.Context, postcode string) ([]types.Assessment, error) {
	return db.ListAssessments(ctx, ListAssessmentsOptions{Postcode: postcode})
}

// DeleteAssessment removes an assessment and reports whether it existed
func (db *DB) DeleteAssessment(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM assessments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete assessment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func rowDest(r *assessmentRow) []any {
	return []any{&r.ID, &r.Postcode, &r.PostcodeKey, &r.Profile, &r.Footprint, &r.Actions,
		&r.Equivalencies, &r.TotalKgCO2e, &r.Renderer, &r.CreatedAt}
}
