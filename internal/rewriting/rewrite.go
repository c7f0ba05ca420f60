// Package rewriting renders selected actions as text, either verbatim or
// restyled by an LLM that must keep the set, count and order unchanged.
package rewriting

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/terrago/carbon-advisor/internal/actions"
	"github.com/terrago/carbon-advisor/internal/llm"
	"github.com/terrago/carbon-advisor/internal/prompts"
	"github.com/terrago/carbon-advisor/internal/schemas"
	"github.com/terrago/carbon-advisor/internal/types"
	schemafiles "github.com/terrago/carbon-advisor/schemas"
)

// Renderer names recorded on assessments
const (
	RendererFixed = "fixed"
	RendererLLM   = "llm"
)

// Renderer turns a selection into presentation text.
// Implementations must return the same ids in the same order.
type Renderer interface {
	Render(ctx context.Context, profile *types.HouseholdProfile, selection *types.ActionSelection) (*types.ActionSelection, error)
	Name() string
}

// FixedRenderer returns the catalog sentences unchanged.
type FixedRenderer struct{}

// Render returns a copy of the selection.
func (FixedRenderer) Render(_ context.Context, _ *types.HouseholdProfile, selection *types.ActionSelection) (*types.ActionSelection, error) {
	if selection == nil {
		return nil, &RenderError{Message: "selection is nil"}
	}
	return cloneSelection(selection), nil
}

// Name returns RendererFixed.
func (FixedRenderer) Name() string { return RendererFixed }

// LLMRenderer rewrites the sentences with a language model.
type LLMRenderer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMRenderer creates a renderer over an existing client. The caller owns the client.
func NewLLMRenderer(client llm.Client) *LLMRenderer {
	return &LLMRenderer{client: client, tier: llm.TierLite}
}

// Name returns "llm:<model>".
func (r *LLMRenderer) Name() string {
	return RendererLLM + ":" + r.client.GetModel(r.tier)
}

// Render asks the model for one sentence per action and checks that the reply
// keeps the count and avoids forbidden suggestions.
func (r *LLMRenderer) Render(ctx context.Context, profile *types.HouseholdProfile, selection *types.ActionSelection) (*types.ActionSelection, error) {
	if selection == nil || len(selection.Actions) == 0 {
		return nil, &RenderError{Message: "selection is empty"}
	}

	prompt, err := buildRewritingPrompt(profile, selection)
	if err != nil {
		return nil, &RenderError{Message: "failed to build prompt", Cause: err}
	}

	responseText, err := r.client.GenerateJSON(ctx, prompt, r.tier)
	if err != nil {
		return nil, &RenderError{Message: "failed to generate content", Cause: err}
	}

	texts, err := parseActionsResponse(responseText, len(selection.Actions))
	if err != nil {
		return nil, err
	}

	if found := CheckForbiddenPhrases(texts, ForbiddenPhrases()); len(found) > 0 {
		return nil, &RenderError{Message: fmt.Sprintf("rewrite suggests excluded changes: %s", describeFindings(found))}
	}
	for i, text := range texts {
		if result := ValidateStyle(text); !result.OK() {
			return nil, &RenderError{Message: fmt.Sprintf("sentence %d fails style checks: %s", i+1, result)}
		}
	}

	out := cloneSelection(selection)
	for i := range out.Actions {
		out.Actions[i].Text = strings.TrimSpace(texts[i])
	}
	return out, nil
}

// buildRewritingPrompt constructs the prompt for the action rewrite
func buildRewritingPrompt(profile *types.HouseholdProfile, selection *types.ActionSelection) (string, error) {
	household, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, a := range selection.Actions {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		sb.WriteString(a.Text)
		sb.WriteString("\n")
	}

	return prompts.Render(prompts.RewritingFile, prompts.KeyRewriteActions, map[string]string{
		"Count":     strconv.Itoa(len(selection.Actions)),
		"Household": string(household),
		"Actions":   strings.TrimRight(sb.String(), "\n"),
	})
}

// parseActionsResponse decodes {"actions": [...]} and checks the count.
// Eight-item replies are also checked against the actions schema.
func parseActionsResponse(responseText string, want int) ([]string, error) {
	text := llm.CleanJSONBlock(responseText)

	if want == actions.SelectionSize {
		if err := schemas.ValidateDocument(schemafiles.Actions, []byte(text)); err != nil {
			return nil, &RenderError{Message: "response does not match actions schema", Cause: err}
		}
	}

	var doc types.ActionsDocument
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &RenderError{Message: "failed to parse response", Cause: err}
	}
	if len(doc.Actions) != want {
		return nil, &RenderError{Message: fmt.Sprintf("expected %d actions, got %d", want, len(doc.Actions))}
	}
	for i, a := range doc.Actions {
		if strings.TrimSpace(a) == "" {
			return nil, &RenderError{Message: fmt.Sprintf("action %d is empty", i+1)}
		}
	}
	return doc.Actions, nil
}

func cloneSelection(selection *types.ActionSelection) *types.ActionSelection {
	out := &types.ActionSelection{Actions: make([]types.SelectedAction, len(selection.Actions))}
	copy(out.Actions, selection.Actions)
	return out
}
