package facts

import (
	"context"
	"fmt"
	"strings"

	"github.com/daniel/career-assistant/internal/llm"
	"github.com/daniel/career-assistant/internal/prompts"
	"github.com/daniel/career-assistant/internal/types"
)

// ExtractFacts pulls a provenance-tagged fact inventory from the profile
// summary and the qualifying (cv/experience) documents.
//
// Error semantics: a failed external call returns an *ExtractionError; a
// response that cannot be parsed as the expected shape is NOT an error -
// it degrades to an empty inventory with no partial state, keeping this
// function total with respect to response content.
func ExtractFacts(ctx context.Context, client llm.Client, profileSummary string, documents []types.SourceDocument) (*types.FactInventory, error) {
	relevant := make([]types.SourceDocument, 0, len(documents))
	for _, doc := range documents {
		if doc.Relevant() {
			relevant = append(relevant, doc)
		}
	}
	if len(relevant) == 0 && strings.TrimSpace(profileSummary) == "" {
		return types.EmptyInventory(), nil
	}

	system := prompts.MustGet("facts.json", "extract-system")
	prompt := buildExtractionPrompt(profileSummary, relevant)

	responseText, err := client.GenerateJSON(ctx, system, prompt, llm.TierStandard)
	if err != nil {
		return nil, &ExtractionError{
			Message: "external generation call failed",
			Cause:   err,
		}
	}

	return ParseInventory(llm.CleanJSONBlock(responseText)), nil
}

// buildExtractionPrompt assembles the user prompt from the profile summary
// and each qualifying document's text
func buildExtractionPrompt(profileSummary string, documents []types.SourceDocument) string {
	var sb strings.Builder
	for _, doc := range documents {
		sb.WriteString(fmt.Sprintf("--- Document: %s (%s) ---\n", doc.Name, doc.Kind))
		sb.WriteString(doc.Content)
		sb.WriteString("\n\n")
	}

	template := prompts.MustGet("facts.json", "extract-inventory")
	return prompts.Format(template, map[string]string{
		"ProfileSummary": profileSummary,
		"Documents":      sb.String(),
	})
}
