package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel/career-assistant/internal/types"
)

func TestSanitizeInventory_MinimalSkill(t *testing.T) {
	inv := SanitizeInventory(map[string]any{
		"skills": []any{map[string]any{"skill": "SQL"}},
	})

	require.Len(t, inv.Skills, 1)
	assert.Equal(t, types.Skill{
		Skill:      "SQL",
		Source:     "Unknown",
		Context:    "",
		Confidence: types.ConfidenceMentioned,
	}, inv.Skills[0])
	assert.Empty(t, inv.Achievements)
	assert.Empty(t, inv.Credentials)
	assert.Empty(t, inv.Companies)
}

func TestSanitizeInventory_DropsSkillWithoutName(t *testing.T) {
	inv := SanitizeInventory(map[string]any{
		"skills": []any{
			map[string]any{"source": "cv.txt"},
			map[string]any{"skill": "", "source": "cv.txt"},
			map[string]any{"skill": "Go", "source": "cv.txt", "confidence": "explicit"},
		},
	})

	require.Len(t, inv.Skills, 1)
	assert.Equal(t, "Go", inv.Skills[0].Skill)
	assert.Equal(t, types.ConfidenceExplicit, inv.Skills[0].Confidence)
}

func TestSanitizeInventory_UnknownConfidenceDefaultsToMentioned(t *testing.T) {
	inv := SanitizeInventory(map[string]any{
		"skills": []any{map[string]any{"skill": "Go", "confidence": "absolutely certain"}},
	})

	require.Len(t, inv.Skills, 1)
	assert.Equal(t, types.ConfidenceMentioned, inv.Skills[0].Confidence)
}

func TestSanitizeInventory_DropsAchievementWithoutDescription(t *testing.T) {
	inv := SanitizeInventory(map[string]any{
		"achievements": []any{
			map[string]any{"metrics": "40%"},
			map[string]any{"description": "Cut deploy time", "metrics": "40%", "source": "cv.txt"},
		},
	})

	require.Len(t, inv.Achievements, 1)
	assert.Equal(t, "Cut deploy time", inv.Achievements[0].Description)
	assert.Equal(t, "40%", inv.Achievements[0].Metrics)
}

func TestSanitizeInventory_UnknownCredentialTypeDefaultsToTitle(t *testing.T) {
	inv := SanitizeInventory(map[string]any{
		"credentials": []any{
			map[string]any{"type": "diploma", "name": "BSc Computer Science"},
			map[string]any{"type": "degree", "name": "MSc Mathematics", "source": "cv.txt"},
			map[string]any{"type": "degree"}, // no name: dropped
		},
	})

	require.Len(t, inv.Credentials, 2)
	assert.Equal(t, types.CredentialTitle, inv.Credentials[0].Type)
	assert.Equal(t, "Unknown", inv.Credentials[0].Source)
	assert.Equal(t, types.CredentialDegree, inv.Credentials[1].Type)
}

func TestSanitizeInventory_FiltersCompanies(t *testing.T) {
	inv := SanitizeInventory(map[string]any{
		"companies": []any{" Acme ", "", "   ", 42, nil, "Globex"},
	})

	assert.Equal(t, []string{"Acme", "Globex"}, inv.Companies)
}

func TestSanitizeInventory_ArbitraryJunkNeverPanics(t *testing.T) {
	junk := []map[string]any{
		nil,
		{},
		{"skills": "not an array"},
		{"skills": []any{"not an object", 42, nil}},
		{"achievements": map[string]any{"description": "wrong container"}},
		{"credentials": []any{map[string]any{"name": 12}}},
		{"companies": "Acme"},
		{"unrelated": []any{map[string]any{"skill": "Go"}}},
	}

	for _, raw := range junk {
		inv := SanitizeInventory(raw)
		require.NotNil(t, inv)
		assert.NotNil(t, inv.Skills)
		assert.NotNil(t, inv.Achievements)
		assert.NotNil(t, inv.Credentials)
		assert.NotNil(t, inv.Companies)
	}
}

func TestParseInventory_StrictPath(t *testing.T) {
	text := `{
		"skills": [{"skill": "Go", "source": "cv.txt", "context": "backend work", "confidence": "demonstrated"}],
		"achievements": [],
		"credentials": [],
		"companies": ["Acme"]
	}`

	inv := ParseInventory(text)

	require.Len(t, inv.Skills, 1)
	assert.Equal(t, types.ConfidenceDemonstrated, inv.Skills[0].Confidence)
	assert.Equal(t, []string{"Acme"}, inv.Companies)
}

func TestParseInventory_PermissiveFallback(t *testing.T) {
	// Strict decode succeeds but the payload violates the contract
	// (missing source, bogus confidence), so the permissive rebuild applies.
	text := `{"skills": [{"skill": "Go", "confidence": "very"}]}`

	inv := ParseInventory(text)

	require.Len(t, inv.Skills, 1)
	assert.Equal(t, "Unknown", inv.Skills[0].Source)
	assert.Equal(t, types.ConfidenceMentioned, inv.Skills[0].Confidence)
}

func TestParseInventory_GarbageYieldsEmpty(t *testing.T) {
	for _, text := range []string{"", "not json at all", "[1, 2, 3]", "null"} {
		inv := ParseInventory(text)
		require.NotNil(t, inv, "input %q", text)
		assert.True(t, inv.IsEmpty(), "input %q", text)
	}
}
