package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocument = `{
	"headline": "Senior Backend Engineer",
	"summary": "Ten years building services.",
	"sections": [
		{"title": "Experience", "entries": [{"company": "Acme", "role": "Engineer", "period": "2019-2024", "bullets": ["Built things"]}]}
	],
	"skills": ["Go"]
}`

func TestValidateDocument_Valid(t *testing.T) {
	assert.NoError(t, ValidateDocument(validDocument))
}

func TestValidateDocument_MissingHeadline(t *testing.T) {
	err := ValidateDocument(`{"sections": [{"title": "Experience", "entries": []}]}`)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, err.Error(), "headline")
}

func TestValidateDocument_EmptyHeadline(t *testing.T) {
	err := ValidateDocument(`{"headline": "", "sections": [{"title": "Experience", "entries": []}]}`)
	assert.Error(t, err)
}

func TestValidateDocument_EmptySections(t *testing.T) {
	err := ValidateDocument(`{"headline": "Engineer", "sections": []}`)
	assert.Error(t, err)
}

func TestValidateDocument_SectionsWrongType(t *testing.T) {
	err := ValidateDocument(`{"headline": "Engineer", "sections": "Experience"}`)
	assert.Error(t, err)
}

func TestValidateDocument_NotJSON(t *testing.T) {
	err := ValidateDocument(`here is your resume!`)
	require.Error(t, err)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}
