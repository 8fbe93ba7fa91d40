package types

// GeneratedKind distinguishes CVs from interview briefing packs
type GeneratedKind string

// Generated document kinds
const (
	GeneratedCV       GeneratedKind = "cv"
	GeneratedBriefing GeneratedKind = "briefing"
)

// DocumentContent is the structured body of a generated CV or briefing pack.
// The required shape is enforced by internal/schemas: a non-empty Headline
// and a non-empty Sections array.
type DocumentContent struct {
	Headline string    `json:"headline"`
	Summary  string    `json:"summary,omitempty"`
	Sections []Section `json:"sections"`
	Skills   []string  `json:"skills,omitempty"`
}

// Section is a titled group of entries (e.g. "Experience", "Education")
type Section struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
}

// Entry is a single item within a section. For experience sections the
// Company field is checked against the fact inventory's company list.
type Entry struct {
	Company string   `json:"company,omitempty"`
	Role    string   `json:"role,omitempty"`
	Period  string   `json:"period,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// ChatMessage is a single turn of the refinement conversation.
// The full history travels with every refine call; no server-side session.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Companies returns every non-empty company name appearing in the document's
// entries, in document order
func (d *DocumentContent) Companies() []string {
	var companies []string
	for _, section := range d.Sections {
		for _, entry := range section.Entries {
			if entry.Company != "" {
				companies = append(companies, entry.Company)
			}
		}
	}
	return companies
}
