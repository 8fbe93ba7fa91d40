package jobpost

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel/career-assistant/internal/llm"
)

type fakeClient struct {
	response   string
	err        error
	calls      int
	lastSystem string
	lastPrompt string
	lastTier   llm.ModelTier
}

func (f *fakeClient) GenerateContent(_ context.Context, system, prompt string, tier llm.ModelTier) (string, error) {
	f.calls++
	f.lastSystem, f.lastPrompt, f.lastTier = system, prompt, tier
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, system, prompt string, tier llm.ModelTier) (string, error) {
	f.calls++
	f.lastSystem, f.lastPrompt, f.lastTier = system, prompt, tier
	return f.response, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

const postingText = `Staff Engineer
Globex Corporation
We are looking for a staff engineer to build distributed systems.
Requirements: 8+ years of backend experience.`

func TestParsePosting_Success(t *testing.T) {
	client := &fakeClient{response: `{
		"job_title": "Staff Engineer",
		"company_name": "Globex Corporation",
		"job_description": "We are looking for a staff engineer to build distributed systems.",
		"company_url": "https://globex.example"
	}`}

	spec, err := ParsePosting(context.Background(), client, postingText)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", spec.JobTitle)
	assert.Equal(t, "Globex Corporation", spec.CompanyName)
	assert.Equal(t, "https://globex.example", spec.CompanyURL)

	assert.Equal(t, llm.TierLite, client.lastTier)
	assert.Contains(t, client.lastPrompt, postingText)
}

func TestParsePosting_FencedResponse(t *testing.T) {
	client := &fakeClient{response: "```json\n{\"job_title\": \"Engineer\", \"company_name\": \"Acme\", \"job_description\": \"Build things.\"}\n```"}

	spec, err := ParsePosting(context.Background(), client, postingText)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", spec.JobTitle)
}

func TestParsePosting_EmptyText(t *testing.T) {
	client := &fakeClient{}

	_, err := ParsePosting(context.Background(), client, "   \n ")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Zero(t, client.calls, "empty text must not reach the model")
}

func TestParsePosting_ModelError(t *testing.T) {
	client := &fakeClient{err: errors.New("upstream 503")}

	_, err := ParsePosting(context.Background(), client, postingText)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.ErrorContains(t, err, "upstream 503")
}

func TestParsePosting_MalformedResponse(t *testing.T) {
	client := &fakeClient{response: "Sure! Here is the posting you asked about."}

	_, err := ParsePosting(context.Background(), client, postingText)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParsePosting_MissingRequiredFields(t *testing.T) {
	client := &fakeClient{response: `{"job_title": "Engineer"}`}

	_, err := ParsePosting(context.Background(), client, postingText)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.ErrorContains(t, err, "missing")
}
