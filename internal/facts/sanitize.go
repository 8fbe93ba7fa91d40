package facts

import (
	"encoding/json"
	"strings"

	"github.com/daniel/career-assistant/internal/types"
)

// unknownSource is assigned when an extracted fact arrives without provenance
const unknownSource = "Unknown"

// ParseInventory turns raw LLM output into a well-typed FactInventory.
// It is total: any input, including non-JSON garbage, yields a valid
// (possibly empty) inventory and never an error. A strict decode is
// attempted first; anything that fails strict validation goes through the
// permissive field-by-field rebuild in SanitizeInventory.
func ParseInventory(text string) *types.FactInventory {
	var strict types.FactInventory
	if err := json.Unmarshal([]byte(text), &strict); err == nil {
		if inventoryWellFormed(&strict) {
			normalizeInventory(&strict)
			return &strict
		}
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return types.EmptyInventory()
	}
	return SanitizeInventory(raw)
}

// SanitizeInventory defensively rebuilds a fact inventory from parsed but
// untrusted JSON. This is the boundary that prevents a malformed or
// adversarial external response from corrupting the pipeline: nothing about
// the shape of the input is trusted.
//
// Rules: a skill without a "skill" string is dropped; an achievement without
// a "description" string is dropped; a credential without a "name" string is
// dropped; unknown confidence values default to the most conservative tier
// ("mentioned"); unknown credential types default to "title"; missing sources
// default to "Unknown"; companies are filtered to non-empty trimmed strings.
func SanitizeInventory(raw map[string]any) *types.FactInventory {
	inv := types.EmptyInventory()
	if raw == nil {
		return inv
	}

	for _, item := range asObjectSlice(raw["skills"]) {
		skill := stringField(item, "skill")
		if skill == "" {
			continue
		}
		inv.Skills = append(inv.Skills, types.Skill{
			Skill:      skill,
			Source:     stringFieldDefault(item, "source", unknownSource),
			Context:    stringField(item, "context"),
			Confidence: sanitizeConfidence(stringField(item, "confidence")),
		})
	}

	for _, item := range asObjectSlice(raw["achievements"]) {
		description := stringField(item, "description")
		if description == "" {
			continue
		}
		inv.Achievements = append(inv.Achievements, types.Achievement{
			Description: description,
			Metrics:     stringField(item, "metrics"),
			Source:      stringFieldDefault(item, "source", unknownSource),
		})
	}

	for _, item := range asObjectSlice(raw["credentials"]) {
		name := stringField(item, "name")
		if name == "" {
			continue
		}
		inv.Credentials = append(inv.Credentials, types.Credential{
			Type:   sanitizeCredentialType(stringField(item, "type")),
			Name:   name,
			Source: stringFieldDefault(item, "source", unknownSource),
		})
	}

	if companies, ok := raw["companies"].([]any); ok {
		for _, c := range companies {
			if s, ok := c.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					inv.Companies = append(inv.Companies, trimmed)
				}
			}
		}
	}

	return inv
}

// inventoryWellFormed reports whether a strictly decoded inventory already
// satisfies the sanitization contract
func inventoryWellFormed(inv *types.FactInventory) bool {
	for _, s := range inv.Skills {
		if s.Skill == "" || s.Source == "" || !validConfidence(s.Confidence) {
			return false
		}
	}
	for _, a := range inv.Achievements {
		if a.Description == "" || a.Source == "" {
			return false
		}
	}
	for _, c := range inv.Credentials {
		if c.Name == "" || c.Source == "" || !validCredentialType(c.Type) {
			return false
		}
	}
	for _, company := range inv.Companies {
		if strings.TrimSpace(company) == "" {
			return false
		}
	}
	return true
}

// normalizeInventory replaces nil slices so the inventory serializes as
// empty arrays rather than nulls
func normalizeInventory(inv *types.FactInventory) {
	if inv.Skills == nil {
		inv.Skills = []types.Skill{}
	}
	if inv.Achievements == nil {
		inv.Achievements = []types.Achievement{}
	}
	if inv.Credentials == nil {
		inv.Credentials = []types.Credential{}
	}
	if inv.Companies == nil {
		inv.Companies = []string{}
	}
}

func validConfidence(c types.Confidence) bool {
	switch c {
	case types.ConfidenceExplicit, types.ConfidenceDemonstrated, types.ConfidenceMentioned:
		return true
	}
	return false
}

func sanitizeConfidence(value string) types.Confidence {
	c := types.Confidence(strings.ToLower(strings.TrimSpace(value)))
	if validConfidence(c) {
		return c
	}
	return types.ConfidenceMentioned
}

func validCredentialType(t types.CredentialType) bool {
	switch t {
	case types.CredentialDegree, types.CredentialCertification, types.CredentialTitle:
		return true
	}
	return false
}

func sanitizeCredentialType(value string) types.CredentialType {
	t := types.CredentialType(strings.ToLower(strings.TrimSpace(value)))
	if validCredentialType(t) {
		return t
	}
	return types.CredentialTitle
}

// asObjectSlice extracts the objects from an untyped JSON array, skipping
// anything that is not an object
func asObjectSlice(value any) []map[string]any {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	objects := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			objects = append(objects, obj)
		}
	}
	return objects
}

func stringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func stringFieldDefault(obj map[string]any, key, fallback string) string {
	if s := stringField(obj, key); s != "" {
		return s
	}
	return fallback
}
