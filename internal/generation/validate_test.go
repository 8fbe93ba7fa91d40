package generation

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel/career-assistant/internal/schemas"
	"github.com/daniel/career-assistant/internal/types"
)

func TestParseDocument_Valid(t *testing.T) {
	content, err := parseDocument(`{
		"headline": "Senior Backend Engineer",
		"sections": [{"title": "Experience", "entries": [{"company": "Acme", "role": "Engineer"}]}]
	}`)

	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", content.Headline)
	assert.Equal(t, []string{"Acme"}, content.Companies())
}

func TestParseDocument_MissingHeadlineRejected(t *testing.T) {
	_, err := parseDocument(`{"sections": [{"title": "Experience", "entries": []}]}`)

	var ve *schemas.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestParseDocument_EmptySectionsRejected(t *testing.T) {
	_, err := parseDocument(`{"headline": "Engineer", "sections": []}`)
	assert.Error(t, err)
}

func documentWithCompanies(companies ...string) *types.DocumentContent {
	entries := make([]types.Entry, 0, len(companies))
	for _, c := range companies {
		entries = append(entries, types.Entry{Company: c, Role: "Engineer"})
	}
	return &types.DocumentContent{
		Headline: "Engineer",
		Sections: []types.Section{{Title: "Experience", Entries: entries}},
	}
}

func TestCompanyViolations_AllowedCompaniesPass(t *testing.T) {
	doc := documentWithCompanies("Acme", "Globex")
	violations := companyViolations(doc, []string{"Acme", "Globex"}, nil)
	assert.Empty(t, violations)
}

func TestCompanyViolations_CaseInsensitive(t *testing.T) {
	doc := documentWithCompanies("ACME")
	violations := companyViolations(doc, []string{"acme"}, nil)
	assert.Empty(t, violations)
}

func TestCompanyViolations_VerbatimInRawText(t *testing.T) {
	doc := documentWithCompanies("Initech")
	violations := companyViolations(doc, nil, []string{"I spent two years at Initech."})
	assert.Empty(t, violations)
}

func TestCompanyViolations_UnlistedCompanyFlagged(t *testing.T) {
	doc := documentWithCompanies("Acme", "Hooli")
	violations := companyViolations(doc, []string{"Acme"}, []string{"worked at Acme"})
	assert.Equal(t, []string{"Hooli"}, violations)
}

func TestCheckFabrication_ReturnsTypedError(t *testing.T) {
	doc := documentWithCompanies("Hooli")
	inv := types.EmptyInventory()
	inv.Companies = []string{"Acme"}

	err := checkFabrication(doc, inv, nil)

	var fabErr *FabricationError
	require.ErrorAs(t, err, &fabErr)
	assert.Equal(t, []string{"Hooli"}, fabErr.Companies)
}

// Randomized outputs against randomized inventories: the validator must
// reject exactly those documents introducing a company outside the inventory
// and raw sources.
func TestCompanyViolations_Randomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	pool := make([]string, 20)
	for i := range pool {
		pool[i] = fmt.Sprintf("Company%02d", i)
	}

	for trial := 0; trial < 200; trial++ {
		// Random inventory: a subset of the pool
		allowed := make([]string, 0)
		allowedSet := make(map[string]bool)
		for _, company := range pool {
			if rng.Intn(2) == 0 {
				allowed = append(allowed, company)
				allowedSet[company] = true
			}
		}

		// Random raw text mentioning a further subset verbatim
		rawText := ""
		mentioned := make(map[string]bool)
		for _, company := range pool {
			if rng.Intn(4) == 0 {
				rawText += "Worked at " + company + ". "
				mentioned[company] = true
			}
		}

		// Random "model output" drawing from the whole pool
		picked := make([]string, 0)
		for _, company := range pool {
			if rng.Intn(3) == 0 {
				picked = append(picked, company)
			}
		}
		doc := documentWithCompanies(picked...)

		violations := companyViolations(doc, allowed, []string{rawText})

		expected := make([]string, 0)
		for _, company := range picked {
			if !allowedSet[company] && !mentioned[company] {
				expected = append(expected, company)
			}
		}
		if len(expected) == 0 {
			assert.Empty(t, violations, "trial %d", trial)
		} else {
			assert.Equal(t, expected, violations, "trial %d", trial)
		}
	}
}
