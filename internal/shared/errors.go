package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingToken = fmt.Errorf("missing upstream access token")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrUpstream           = fmt.Errorf("upstream request failed")

	// Archive errors
	ErrYearNotArchived = fmt.Errorf("year not archived")
)

// GenericFetchMessage is the user-facing text shown when a category fetch
// fails. Raw status codes and upstream error bodies never reach the user;
// they are logged instead.
const GenericFetchMessage = "Something went wrong loading this shelf. Try again."
