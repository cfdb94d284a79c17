package normalizer

import (
	"fmt"

	"github.com/desertthunder/tidalfest/internal/shared"
)

// ReasonUnrecognized is the reason used when no strategy matches.
const ReasonUnrecognized = "unrecognized shape"

// SchemaError reports a payload that decoded but is not a usable lineup.
type SchemaError struct {
	Reason string
	// BackendReported is set when the payload itself carried "success": false.
	BackendReported bool
	// Raw is the payload as received.
	Raw any
}

func (e *SchemaError) Error() string {
	if e.BackendReported {
		if e.Reason == "" {
			return "backend reported failure"
		}
		return fmt.Sprintf("backend reported failure: %s", e.Reason)
	}
	return fmt.Sprintf("schema error: %s", e.Reason)
}

func (e *SchemaError) Unwrap() error {
	return shared.ErrSchema
}
