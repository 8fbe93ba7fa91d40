// Package types provides type definitions for structured data used throughout the career-assistant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Confidence describes how strongly a skill is evidenced in the source documents
type Confidence string

// Confidence tiers, from strongest to weakest evidence
const (
	// ConfidenceExplicit means the skill is listed outright (e.g. in a skills section)
	ConfidenceExplicit Confidence = "explicit"
	// ConfidenceDemonstrated means the skill is shown through described work
	ConfidenceDemonstrated Confidence = "demonstrated"
	// ConfidenceMentioned is the most conservative tier, used as the default
	ConfidenceMentioned Confidence = "mentioned"
)

// CredentialType categorizes a credential entry
type CredentialType string

// Credential type constants
const (
	CredentialDegree        CredentialType = "degree"
	CredentialCertification CredentialType = "certification"
	// CredentialTitle is the default for unknown or missing types
	CredentialTitle CredentialType = "title"
)

// Skill is a single skill claim extracted from a source document
type Skill struct {
	Skill      string     `json:"skill"`
	Source     string     `json:"source"`
	Context    string     `json:"context"`
	Confidence Confidence `json:"confidence"`
}

// Achievement is a concrete accomplishment extracted from a source document.
// Metrics is set only when a literal number or quantity appears in the source
// text; it is never synthesized.
type Achievement struct {
	Description string `json:"description"`
	Metrics     string `json:"metrics,omitempty"`
	Source      string `json:"source"`
}

// Credential is a degree, certification, or title extracted from a source document
type Credential struct {
	Type   CredentialType `json:"type"`
	Name   string         `json:"name"`
	Source string         `json:"source"`
}

// FactInventory is the structured, provenance-tagged set of facts extracted
// from a candidate's documents. It is the sole permitted source of factual
// claims for generated documents: every entry carries a Source referencing
// an input document, and nothing downstream may introduce new claims.
type FactInventory struct {
	Skills       []Skill       `json:"skills"`
	Achievements []Achievement `json:"achievements"`
	Credentials  []Credential  `json:"credentials"`
	Companies    []string      `json:"companies"`
}

// EmptyInventory returns a well-typed inventory with no facts.
// Extraction failures degrade to this rather than propagating partial state.
func EmptyInventory() *FactInventory {
	return &FactInventory{
		Skills:       []Skill{},
		Achievements: []Achievement{},
		Credentials:  []Credential{},
		Companies:    []string{},
	}
}

// IsEmpty reports whether the inventory contains no facts at all
func (inv *FactInventory) IsEmpty() bool {
	if inv == nil {
		return true
	}
	return len(inv.Skills) == 0 && len(inv.Achievements) == 0 &&
		len(inv.Credentials) == 0 && len(inv.Companies) == 0
}
