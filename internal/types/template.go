package types

import "strings"

// TemplateConfig is a named structural/stylistic configuration governing
// section emphasis in a generated document. Templates change structure only;
// the anti-fabrication contract is identical across all of them.
type TemplateConfig struct {
	Name            string   `json:"name"`
	SectionOrder    []string `json:"section_order"`
	MaxEntries      int      `json:"max_entries"`
	Emphasis        string   `json:"emphasis"`
	StructuralRules []string `json:"structural_rules"`
}

// Built-in templates
var (
	// TemplateClassic is a chronological layout with even emphasis
	TemplateClassic = TemplateConfig{
		Name:         "classic",
		SectionOrder: []string{"Summary", "Experience", "Education", "Skills"},
		MaxEntries:   6,
		Emphasis:     "balanced, chronological",
		StructuralRules: []string{
			"List experience in reverse chronological order.",
			"Each experience entry carries two to four bullets.",
			"Keep the summary under three sentences.",
		},
	}

	// TemplateHybrid leads with skills and pairs them with supporting experience
	TemplateHybrid = TemplateConfig{
		Name:         "hybrid",
		SectionOrder: []string{"Summary", "Skills", "Experience", "Education"},
		MaxEntries:   5,
		Emphasis:     "skills-first, competency groupings",
		StructuralRules: []string{
			"Open with a skills section grouped by competency.",
			"Experience entries reference the skills they evidence.",
			"Each experience entry carries at most three bullets.",
		},
	}

	// TemplateExecutive compresses history and foregrounds scope and outcomes
	TemplateExecutive = TemplateConfig{
		Name:         "executive",
		SectionOrder: []string{"Summary", "Experience", "Credentials"},
		MaxEntries:   4,
		Emphasis:     "leadership scope, measurable outcomes",
		StructuralRules: []string{
			"Lead every bullet with scope or outcome.",
			"Only include roles from the last fifteen years.",
			"Omit granular skill lists; fold key skills into the summary.",
		},
	}
)

// TemplateByName resolves a template by its case-insensitive name,
// falling back to the classic template for unknown names.
func TemplateByName(name string) TemplateConfig {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hybrid":
		return TemplateHybrid
	case "executive":
		return TemplateExecutive
	default:
		return TemplateClassic
	}
}
