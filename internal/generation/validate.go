package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/daniel/career-assistant/internal/schemas"
	"github.com/daniel/career-assistant/internal/types"
)

// parseDocument decodes and schema-validates a model response. Unlike fact
// extraction there is no permissive fallback here: a generated document that
// fails validation fails the whole operation.
func parseDocument(jsonText string) (*types.DocumentContent, error) {
	if err := schemas.ValidateDocument(jsonText); err != nil {
		return nil, err
	}

	var content types.DocumentContent
	if err := json.Unmarshal([]byte(jsonText), &content); err != nil {
		return nil, fmt.Errorf("failed to decode document content: %w", err)
	}
	return &content, nil
}

// companyViolations returns every company name appearing in the document's
// entries that is neither in the allowed list nor present verbatim in any of
// the raw texts. Matching is case-insensitive; this is the anti-fabrication
// boundary, so unknown names are violations regardless of plausibility.
func companyViolations(doc *types.DocumentContent, allowed []string, rawTexts []string) []string {
	allowedSet := make(map[string]bool, len(allowed))
	for _, company := range allowed {
		allowedSet[strings.ToLower(strings.TrimSpace(company))] = true
	}

	var lowered []string
	for _, text := range rawTexts {
		lowered = append(lowered, strings.ToLower(text))
	}

	var violations []string
	seen := make(map[string]bool)
	for _, company := range doc.Companies() {
		key := strings.ToLower(strings.TrimSpace(company))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		if allowedSet[key] {
			continue
		}
		verbatim := false
		for _, text := range lowered {
			if strings.Contains(text, key) {
				verbatim = true
				break
			}
		}
		if !verbatim {
			violations = append(violations, company)
		}
	}
	return violations
}

// checkFabrication enforces the anti-fabrication contract on a parsed
// document: every company must be traceable to the fact inventory or appear
// verbatim in the raw source documents. The template never relaxes this.
func checkFabrication(doc *types.DocumentContent, inventory *types.FactInventory, documents []types.SourceDocument) error {
	var allowed []string
	if inventory != nil {
		allowed = inventory.Companies
	}
	rawTexts := make([]string, 0, len(documents))
	for _, sourceDoc := range documents {
		rawTexts = append(rawTexts, sourceDoc.Content)
	}

	if violations := companyViolations(doc, allowed, rawTexts); len(violations) > 0 {
		return &FabricationError{Companies: violations}
	}
	return nil
}
