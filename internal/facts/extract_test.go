package facts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel/career-assistant/internal/llm"
	"github.com/daniel/career-assistant/internal/types"
)

// fakeClient implements llm.Client for tests
type fakeClient struct {
	response   string
	err        error
	calls      int
	lastSystem string
	lastPrompt string
}

func (f *fakeClient) GenerateContent(_ context.Context, system, prompt string, _ llm.ModelTier) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, system, prompt string, _ llm.ModelTier) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func TestExtractFacts_BuildsPromptFromDocuments(t *testing.T) {
	client := &fakeClient{response: `{"skills": [], "achievements": [], "credentials": [], "companies": []}`}
	docs := []types.SourceDocument{
		doc(idA, "cv.txt", "cv", "Ten years of Go at Acme."),
		doc(idB, "scratch.txt", "other", "should not appear"),
	}

	_, err := ExtractFacts(context.Background(), client, "Backend engineer.", docs)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Contains(t, client.lastPrompt, "Ten years of Go at Acme.")
	assert.Contains(t, client.lastPrompt, "Backend engineer.")
	assert.NotContains(t, client.lastPrompt, "should not appear")
	assert.Contains(t, client.lastSystem, "Never invent metrics")
}

func TestExtractFacts_ParsesFencedResponse(t *testing.T) {
	client := &fakeClient{
		response: "```json\n{\"skills\": [{\"skill\": \"Go\", \"source\": \"cv.txt\", \"context\": \"\", \"confidence\": \"explicit\"}], \"achievements\": [], \"credentials\": [], \"companies\": [\"Acme\"]}\n```",
	}
	docs := []types.SourceDocument{doc(idA, "cv.txt", "cv", "Go at Acme")}

	inv, err := ExtractFacts(context.Background(), client, "", docs)
	require.NoError(t, err)

	require.Len(t, inv.Skills, 1)
	assert.Equal(t, "Go", inv.Skills[0].Skill)
	assert.Equal(t, []string{"Acme"}, inv.Companies)
}

func TestExtractFacts_MalformedResponseYieldsEmptyInventory(t *testing.T) {
	client := &fakeClient{response: "I could not find any structured facts, sorry!"}
	docs := []types.SourceDocument{doc(idA, "cv.txt", "cv", "Go at Acme")}

	inv, err := ExtractFacts(context.Background(), client, "", docs)

	require.NoError(t, err)
	assert.True(t, inv.IsEmpty())
}

func TestExtractFacts_TransportErrorPropagates(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	docs := []types.SourceDocument{doc(idA, "cv.txt", "cv", "Go at Acme")}

	_, err := ExtractFacts(context.Background(), client, "", docs)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestExtractFacts_NothingToExtract(t *testing.T) {
	client := &fakeClient{}

	inv, err := ExtractFacts(context.Background(), client, "   ", nil)

	require.NoError(t, err)
	assert.True(t, inv.IsEmpty())
	assert.Zero(t, client.calls, "no external call should be issued for empty input")
}
