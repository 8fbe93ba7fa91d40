// Package facts implements the document-ingestion and fact-grounding pipeline:
// fingerprinting a profile's source documents, extracting a provenance-tagged
// fact inventory via LLM, and defensively sanitizing the result.
package facts

import (
	"sort"
	"strconv"
	"strings"

	"github.com/daniel/career-assistant/internal/types"
)

// Fingerprint computes a short deterministic digest over a document set,
// used for cheap staleness detection of cached extractions. It is not a
// cryptographic hash: two sets with equal (id, name, length) triples collide,
// and a content edit that preserves length is invisible. The worst outcome
// of a collision is a false-positive cache hit, which is acceptable here.
//
// Only cv and experience documents participate. The result is independent
// of the input order.
func Fingerprint(documents []types.SourceDocument) string {
	parts := make([]string, 0, len(documents))
	for _, doc := range documents {
		if !doc.Relevant() {
			continue
		}
		parts = append(parts, doc.ID.String()+":"+doc.Name+":"+strconv.Itoa(len(doc.Content)))
	}
	sort.Strings(parts)

	joined := strings.Join(parts, "|")

	var h uint32
	for i := 0; i < len(joined); i++ {
		h = h*31 + uint32(joined[i])
	}

	return strconv.FormatUint(uint64(h), 36)
}
