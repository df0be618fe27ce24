package ledgerapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure cases handlers care about specially.
var (
	// ErrUnauthorized marks a 401 from the ledger API; handlers surface a
	// "please log in" hint on top of the generic failure path.
	ErrUnauthorized = errors.New("ledger API rejected credentials")

	// ErrBillProcessed marks a bill approve/decline against a bill already
	// in a terminal state. Not a failure for the checkout page: it renders
	// as an informational message.
	ErrBillProcessed = errors.New("bill already processed")

	// ErrNotFound marks a 404 for a single-resource lookup.
	ErrNotFound = errors.New("resource not found")
)

// APIError is the uniform wrapper for ledger API failures. Message carries
// the server-provided text when the response included one, so notifications
// can show it verbatim.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ledger API error (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("ledger API error (%d %s)", e.StatusCode, e.Code)
}

// Is maps well-known statuses onto the sentinel errors so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrBillProcessed:
		return e.StatusCode == http.StatusConflict && e.Code == codeBillProcessed
	default:
		return false
	}
}

const codeBillProcessed = "BILL_ALREADY_PROCESSED"
