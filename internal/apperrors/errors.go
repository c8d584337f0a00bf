package apperrors

import "errors"

// Lookup errors indicate that a requested resource does not exist.
var (
	// ErrViewerNotFound indicates that no mounted viewer has the given ID.
	ErrViewerNotFound = errors.New("viewer not found")

	// ErrStockNotFound indicates that the ticker is not in the viewer's current list.
	ErrStockNotFound = errors.New("stock not found")
)

// Gate and state errors indicate that an action is not allowed right now.
var (
	// ErrLimitReached indicates the user's daily screener limit is exhausted.
	// The message is shown to the user as-is.
	ErrLimitReached = errors.New("Daily screener limit reached. Please try again tomorrow.")

	// ErrNoSelection indicates a chart refresh was requested without a selected stock.
	ErrNoSelection = errors.New("no stock selected")

	// ErrViewerClosed indicates the viewer was unmounted.
	ErrViewerClosed = errors.New("viewer closed")

	// ErrSessionRequired indicates the operation needs a logged-in user.
	ErrSessionRequired = errors.New("login required")

	// ErrAdminRequired indicates the operation needs an admin session.
	ErrAdminRequired = errors.New("admin login required")
)

// Validation errors
var (
	ErrInvalidUUID   = errors.New("invalid UUID format")
	ErrEmptyID       = errors.New("ID cannot be empty")
	ErrInvalidTicker = errors.New("ticker is required")
	ErrInvalidUserID = errors.New("user ID is required")

	ErrInvalidSidebarEvent = errors.New("unknown sidebar event")
)

// Remote and session errors represent failures talking to collaborators.
var (
	// ErrUnexpectedStatus indicates a remote endpoint replied with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrInvalidSession indicates a session token that fails verification.
	ErrInvalidSession = errors.New("invalid or expired session")

	// ErrSessionKeyMissing indicates no fernet key is configured.
	ErrSessionKeyMissing = errors.New("session key not configured")

	ErrFailedToRetrieveStocks = errors.New("failed to retrieve stocks")
	ErrFailedToRetrieveUsage  = errors.New("failed to retrieve screener usage")
	ErrFailedToLoadChart      = errors.New("Failed to load chart data. Please try again later.")
)
