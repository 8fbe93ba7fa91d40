package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/daniel/career-assistant/internal/llm"
	"github.com/daniel/career-assistant/internal/prompts"
	"github.com/daniel/career-assistant/internal/types"
)

// Refine regenerates a complete replacement document from the current
// document state, the full conversation history, and the latest free-text
// request. It is stateless from the caller's perspective: everything needed
// travels in the call, and the response is always a whole document, never a
// diff. On success the stored document is overwritten in place; on failure
// the prior stored document is left untouched and the error is returned.
//
// The refined output passes the same schema validation as the original, and
// may not introduce companies absent from the current document.
func (g *Generator) Refine(ctx context.Context, documentID uuid.UUID, current *types.DocumentContent, userRequest string, history []types.ChatMessage) (*types.DocumentContent, error) {
	if current == nil {
		return nil, &InputError{Field: "current", Message: "current document is required"}
	}
	if strings.TrimSpace(userRequest) == "" {
		return nil, &InputError{Field: "request", Message: "refinement request is required"}
	}

	prompt, err := buildRefinementPrompt(current, userRequest, history)
	if err != nil {
		return nil, err
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	system := prompts.MustGet("generation.json", "refine-system")
	responseText, err := g.client.GenerateJSON(callCtx, system, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "document refinement", Cause: err}
	}

	refined, err := parseDocument(llm.CleanJSONBlock(responseText))
	if err != nil {
		return nil, err
	}

	if violations := companyViolations(refined, current.Companies(), nil); len(violations) > 0 {
		return nil, &FabricationError{Companies: violations}
	}

	if err := g.store.OverwriteGeneratedDocument(ctx, documentID, refined); err != nil {
		return nil, err
	}
	return refined, nil
}

func buildRefinementPrompt(current *types.DocumentContent, userRequest string, history []types.ChatMessage) (string, error) {
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return "", fmt.Errorf("failed to serialize current document: %w", err)
	}

	var convo strings.Builder
	if len(history) == 0 {
		convo.WriteString("(no prior messages)")
	}
	for _, msg := range history {
		convo.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
	}

	template := prompts.MustGet("generation.json", "refine-document")
	return prompts.Format(template, map[string]string{
		"CurrentDocument":     string(currentJSON),
		"ConversationHistory": convo.String(),
		"UserRequest":         userRequest,
	}), nil
}
