// Package generation orchestrates constrained document generation: the fact
// inventory, job description, and template rules are combined into a single
// generation request whose output is schema-validated and checked against
// the anti-fabrication contract before being persisted.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daniel/career-assistant/internal/factcache"
	"github.com/daniel/career-assistant/internal/llm"
	"github.com/daniel/career-assistant/internal/prompts"
	"github.com/daniel/career-assistant/internal/types"
)

// Phase identifies a progress boundary during generation. Progress events
// are a UI convenience, not part of the correctness contract.
type Phase string

// Generation phases
const (
	PhaseSaving     Phase = "saving"
	PhaseExtracting Phase = "extracting"
	PhaseGenerating Phase = "generating"
)

// ProgressFunc receives phase-boundary notifications
type ProgressFunc func(phase Phase, message string)

// DocumentStore is the persistence boundary for generated documents.
// Implemented by internal/db against Postgres.
type DocumentStore interface {
	CreateGeneratedDocument(ctx context.Context, profileID uuid.UUID, kind types.GeneratedKind, template, jobTitle, companyName string) (uuid.UUID, error)
	CompleteGeneratedDocument(ctx context.Context, id uuid.UUID, content *types.DocumentContent) error
	FailGeneratedDocument(ctx context.Context, id uuid.UUID, message string) error
	OverwriteGeneratedDocument(ctx context.Context, id uuid.UUID, content *types.DocumentContent) error
}

// Request carries everything needed to generate one document
type Request struct {
	ProfileID      uuid.UUID
	ProfileSummary string
	Documents      []types.SourceDocument
	Job            types.JobSpec
	Kind           types.GeneratedKind
	Template       types.TemplateConfig
	OnProgress     ProgressFunc
}

// Result is the outcome of a successful generation
type Result struct {
	DocumentID uuid.UUID
	Content    *types.DocumentContent
}

// Generator runs the constrained generation and refinement flows
type Generator struct {
	client  llm.Client
	store   DocumentStore
	cache   *factcache.Manager
	timeout time.Duration
}

// NewGenerator creates a generator. A zero timeout leaves external calls
// unbounded except by the caller's context.
func NewGenerator(client llm.Client, store DocumentStore, cache *factcache.Manager, timeout time.Duration) *Generator {
	return &Generator{
		client:  client,
		store:   store,
		cache:   cache,
		timeout: timeout,
	}
}

// Generate produces and persists a document for the request's job. The
// sequence is: persist a generating placeholder, resolve the fact inventory
// (cached when ready and fingerprint-matched), issue one generation call,
// validate the response shape and the anti-fabrication contract, then
// persist the result. Any failure after the placeholder exists marks the
// row failed and propagates; there are no automatic retries.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if !req.Job.Valid() {
		return nil, &InputError{Field: "job", Message: "job title, company name, and description are required"}
	}
	if req.Kind == "" {
		req.Kind = types.GeneratedCV
	}

	emit(req.OnProgress, PhaseSaving, "persisting placeholder document")
	docID, err := g.store.CreateGeneratedDocument(ctx, req.ProfileID, req.Kind,
		req.Template.Name, req.Job.JobTitle, req.Job.CompanyName)
	if err != nil {
		return nil, err
	}

	return g.GenerateInto(ctx, docID, req)
}

// GenerateInto runs the generation flow against an already-persisted
// placeholder row. The HTTP API uses this to return the document id before
// the model call completes.
func (g *Generator) GenerateInto(ctx context.Context, docID uuid.UUID, req Request) (*Result, error) {
	content, err := g.generateContent(ctx, req)
	if err != nil {
		if failErr := g.store.FailGeneratedDocument(ctx, docID, err.Error()); failErr != nil {
			log.Printf("failed to record generation failure for %s: %v", docID, failErr)
		}
		return nil, err
	}

	emit(req.OnProgress, PhaseSaving, "persisting generated document")
	if err := g.store.CompleteGeneratedDocument(ctx, docID, content); err != nil {
		return nil, err
	}

	return &Result{DocumentID: docID, Content: content}, nil
}

// generateContent is steps (b)-(e): resolve facts, call the model once,
// parse and validate
func (g *Generator) generateContent(ctx context.Context, req Request) (*types.DocumentContent, error) {
	emit(req.OnProgress, PhaseExtracting, "resolving fact inventory")
	inventory, err := g.cache.Resolve(ctx, req.ProfileID, req.ProfileSummary, req.Documents)
	if err != nil {
		// Extraction failures degrade to an empty inventory so generation
		// can proceed rather than block
		log.Printf("fact extraction failed for profile %s, continuing with empty inventory: %v", req.ProfileID, err)
		inventory = types.EmptyInventory()
	}

	emit(req.OnProgress, PhaseGenerating, "calling generation model")
	prompt, err := buildGenerationPrompt(req, inventory)
	if err != nil {
		return nil, err
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	system := prompts.MustGet("generation.json", "generate-system")
	responseText, err := g.client.GenerateJSON(callCtx, system, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "document generation", Cause: err}
	}

	content, err := parseDocument(llm.CleanJSONBlock(responseText))
	if err != nil {
		return nil, err
	}
	if err := checkFabrication(content, inventory, req.Documents); err != nil {
		return nil, err
	}
	return content, nil
}

// buildGenerationPrompt embeds the job fields, the entire fact inventory
// serialized verbatim, the raw documents (stylistic grounding only), and the
// template's structural rules into one request
func buildGenerationPrompt(req Request, inventory *types.FactInventory) (string, error) {
	inventoryJSON, err := json.Marshal(inventory)
	if err != nil {
		return "", fmt.Errorf("failed to serialize fact inventory: %w", err)
	}

	var docs strings.Builder
	for _, doc := range req.Documents {
		if !doc.Relevant() {
			continue
		}
		docs.WriteString(fmt.Sprintf("--- Document: %s ---\n%s\n\n", doc.Name, doc.Content))
	}

	template := prompts.MustGet("generation.json", "generate-document")
	return prompts.Format(template, map[string]string{
		"Kind":             string(req.Kind),
		"JobTitle":         req.Job.JobTitle,
		"CompanyName":      req.Job.CompanyName,
		"JobDescription":   req.Job.JobDescription,
		"FactInventory":    string(inventoryJSON),
		"Documents":        docs.String(),
		"TemplateName":     req.Template.Name,
		"TemplateEmphasis": req.Template.Emphasis,
		"SectionOrder":     strings.Join(req.Template.SectionOrder, ", "),
		"StructuralRules":  "- " + strings.Join(req.Template.StructuralRules, "\n- "),
	}), nil
}

func emit(fn ProgressFunc, phase Phase, message string) {
	if fn != nil {
		fn(phase, message)
	}
}
