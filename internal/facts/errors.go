package facts

import "fmt"

// ExtractionError represents a failed external extraction call. Parse
// failures are not extraction errors; they degrade to an empty inventory.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fact extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("fact extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
