package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel/career-assistant/internal/factcache"
	"github.com/daniel/career-assistant/internal/types"
)

func currentDocument() *types.DocumentContent {
	return &types.DocumentContent{
		Headline: "Senior Backend Engineer",
		Summary:  "Ten years building services in Go.",
		Sections: []types.Section{{
			Title: "Experience",
			Entries: []types.Entry{{
				Company: "Acme",
				Role:    "Engineer",
				Period:  "2019-2024",
				Bullets: []string{"Built the platform"},
			}},
		}},
		Skills: []string{"Go"},
	}
}

// seedReadyDocument stores a ready document and returns its id, so
// Overwrite has a row to replace
func seedReadyDocument(t *testing.T, store *memDocStore) uuid.UUID {
	t.Helper()
	id, err := store.CreateGeneratedDocument(context.Background(), uuid.New(), types.GeneratedCV, "classic", "Staff Engineer", "Globex")
	require.NoError(t, err)
	require.NoError(t, store.CompleteGeneratedDocument(context.Background(), id, currentDocument()))
	return id
}

func refineGenerator(client *fakeLLM, store *memDocStore) *Generator {
	cache := factcache.NewManager(nullCacheStore{}, inventoryExtractor(acmeInventory(), nil), 0)
	return NewGenerator(client, store, cache, 0)
}

func TestRefine_Success(t *testing.T) {
	refined := `{
		"headline": "Staff Backend Engineer",
		"summary": "A decade of Go, condensed.",
		"sections": [{"title": "Experience", "entries": [{"company": "Acme", "role": "Engineer", "period": "2019-2024", "bullets": ["Built and ran the platform"]}]}],
		"skills": ["Go", "Postgres"]
	}`
	client := &fakeLLM{responses: []string{refined}}
	store := newMemDocStore()
	docID := seedReadyDocument(t, store)
	g := refineGenerator(client, store)

	history := []types.ChatMessage{
		{Role: "user", Content: "Make it punchier"},
		{Role: "assistant", Content: "Done"},
	}
	result, err := g.Refine(context.Background(), docID, currentDocument(), "Shorten the summary", history)
	require.NoError(t, err)

	assert.Equal(t, "Staff Backend Engineer", result.Headline)
	assert.Equal(t, result, store.contents[docID], "store must hold the refined document")

	// The prompt carries the whole current document, the conversation, and
	// the latest request
	assert.Contains(t, client.lastPrompt, "Senior Backend Engineer")
	assert.Contains(t, client.lastPrompt, "user: Make it punchier")
	assert.Contains(t, client.lastPrompt, "Shorten the summary")
}

func TestRefine_EmptyRequestRejected(t *testing.T) {
	store := newMemDocStore()
	docID := seedReadyDocument(t, store)
	g := refineGenerator(&fakeLLM{}, store)

	_, err := g.Refine(context.Background(), docID, currentDocument(), "   ", nil)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "request", inputErr.Field)
}

func TestRefine_NilCurrentRejected(t *testing.T) {
	g := refineGenerator(&fakeLLM{}, newMemDocStore())

	_, err := g.Refine(context.Background(), uuid.New(), nil, "Shorten it", nil)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestRefine_ModelErrorLeavesStoreUntouched(t *testing.T) {
	client := &fakeLLM{errs: []error{errors.New("upstream 503")}}
	store := newMemDocStore()
	docID := seedReadyDocument(t, store)
	before := store.contents[docID]
	g := refineGenerator(client, store)

	_, err := g.Refine(context.Background(), docID, currentDocument(), "Shorten it", nil)

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, before, store.contents[docID])
	assert.Equal(t, "ready", store.statuses[docID])
}

func TestRefine_NewCompanyRejected(t *testing.T) {
	refined := `{
		"headline": "Engineer",
		"sections": [{"title": "Experience", "entries": [
			{"company": "Acme", "role": "Engineer"},
			{"company": "Initech", "role": "Consultant"}
		]}]
	}`
	client := &fakeLLM{responses: []string{refined}}
	store := newMemDocStore()
	docID := seedReadyDocument(t, store)
	before := store.contents[docID]
	g := refineGenerator(client, store)

	_, err := g.Refine(context.Background(), docID, currentDocument(), "Add my consulting work", nil)

	var fabErr *FabricationError
	require.ErrorAs(t, err, &fabErr)
	assert.Equal(t, []string{"Initech"}, fabErr.Companies)
	assert.Equal(t, before, store.contents[docID], "rejected refinement must not overwrite")
}

func TestRefine_SchemaViolationLeavesStoreUntouched(t *testing.T) {
	client := &fakeLLM{responses: []string{`{"summary": "headline went missing"}`}}
	store := newMemDocStore()
	docID := seedReadyDocument(t, store)
	before := store.contents[docID]
	g := refineGenerator(client, store)

	_, err := g.Refine(context.Background(), docID, currentDocument(), "Shorten it", nil)

	require.Error(t, err)
	assert.Equal(t, before, store.contents[docID])
}

func TestRefine_NoOpRequestStillValidates(t *testing.T) {
	// A request that changes nothing still round-trips through schema
	// validation and the company check
	currentJSON := `{
		"headline": "Senior Backend Engineer",
		"summary": "Ten years building services in Go.",
		"sections": [{"title": "Experience", "entries": [{"company": "Acme", "role": "Engineer", "period": "2019-2024", "bullets": ["Built the platform"]}]}],
		"skills": ["Go"]
	}`
	client := &fakeLLM{responses: []string{currentJSON}}
	store := newMemDocStore()
	docID := seedReadyDocument(t, store)
	g := refineGenerator(client, store)

	result, err := g.Refine(context.Background(), docID, currentDocument(), "Keep it exactly as it is", nil)
	require.NoError(t, err)
	assert.Equal(t, currentDocument(), result)
}
