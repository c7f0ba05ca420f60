package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/terrago/carbon-advisor/internal/actions"
	"github.com/terrago/carbon-advisor/internal/footprint"
	"github.com/terrago/carbon-advisor/internal/household"
	"github.com/terrago/carbon-advisor/internal/pipeline"
	"github.com/terrago/carbon-advisor/internal/types"
)

// FootprintResponse is returned by POST /footprint
type FootprintResponse struct {
	types.FootprintDocument
	Equivalencies []types.Equivalency `json:"equivalencies,omitempty"`
}

// ActionsResponse is returned by POST /actions
type ActionsResponse struct {
	Actions []string         `json:"actions"`
	IDs     []types.ActionID `json:"ids"`
}

// AssessmentListResponse is returned by GET /assessments
type AssessmentListResponse struct {
	Postcode    string             `json:"postcode"`
	Assessments []types.Assessment `json:"assessments"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	storage := "disabled"
	if s.store != nil {
		storage = "enabled"
	}
	s.jsonResponse(w, r, http.StatusOK, map[string]string{"status": "ok", "storage": storage})
}

// handleFootprint computes the annual footprint of the posted household
func (s *Server) handleFootprint(w http.ResponseWriter, r *http.Request) {
	profile, err := readProfile(w, r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	fp, err := footprint.Compute(profile)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, r, http.StatusOK, FootprintResponse{
		FootprintDocument: fp.Document(true),
		Equivalencies:     footprint.Equivalencies(fp.TotalAnnual),
	})
}

// handleActions selects the eight recommendations for the posted household
func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	profile, err := readProfile(w, r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	selection, err := actions.Select(profile)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, r, http.StatusOK, ActionsResponse{
		Actions: selection.Texts(),
		IDs:     selection.IDs(),
	})
}

// handleCreateAssessment runs a full assessment. It answers 201 when the
// assessment was stored and 200 when the server has no storage.
func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	profile, err := readProfile(w, r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	assessment, err := pipeline.Assess(r.Context(), profile, pipeline.Options{
		Renderer: s.renderer,
		Store:    s.store,
	})
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	status := http.StatusOK
	if s.store != nil {
		status = http.StatusCreated
		w.Header().Set("Location", "/assessments/"+assessment.ID.String())
	}
	s.jsonResponse(w, r, status, assessment)
}

// handleGetAssessment returns one stored assessment
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}
	if s.store == nil {
		s.errorResponse(w, r, &ErrStoreUnavailable{})
		return
	}

	assessment, err := s.store.GetAssessment(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if assessment == nil {
		s.errorResponse(w, r, &ErrAssessmentNotFound{ID: id})
		return
	}

	s.jsonResponse(w, r, http.StatusOK, assessment)
}

// handleListAssessments returns the recent assessments for ?postcode=
func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	postcode := strings.TrimSpace(r.URL.Query().Get("postcode"))
	if postcode == "" {
		s.errorResponse(w, r, &ErrValidation{Field: "postcode", Message: "query parameter is required"})
		return
	}
	if s.store == nil {
		s.errorResponse(w, r, &ErrStoreUnavailable{})
		return
	}

	assessments, err := s.store.ListAssessmentsByPostcode(r.Context(), postcode)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if assessments == nil {
		assessments = []types.Assessment{}
	}

	s.jsonResponse(w, r, http.StatusOK, AssessmentListResponse{Postcode: postcode, Assessments: assessments})
}

// readProfile decodes and validates the household profile in the request body
func readProfile(w http.ResponseWriter, r *http.Request) (*types.HouseholdProfile, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrValidation{Field: "body", Message: "request body too large"}
		}
		return nil, &ErrValidation{Field: "body", Message: "failed to read request body"}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, &ErrValidation{Field: "body", Message: "household profile is required"}
	}
	return household.ParseJSON(data)
}
