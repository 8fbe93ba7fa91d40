package generation

import (
	"fmt"
	"strings"
)

// InputError represents a missing or invalid generation input. Surfaced
// before any placeholder record exists; no partial state is created.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
}

// APICallError represents a failed external generation call
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// FabricationError reports company names in the generated output that are
// not traceable to the fact inventory or the raw source documents
type FabricationError struct {
	Companies []string
}

func (e *FabricationError) Error() string {
	return fmt.Sprintf("generated output introduces unlisted companies: %s",
		strings.Join(e.Companies, ", "))
}
