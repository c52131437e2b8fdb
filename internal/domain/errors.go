package domain

import "errors"

// Domain errors.
var (
	ErrInvalidSnapshot     = errors.New("invalid snapshot")
	ErrUnauthorized        = errors.New("unauthorized (check the API token)")
	ErrAPIUnavailable      = errors.New("task API unavailable")
	ErrUnknownSource       = errors.New("unknown snapshot source")
	ErrSuggestionNotFound  = errors.New("suggestion not found")
	ErrNotDismissed        = errors.New("suggestion is not dismissed")
	ErrConfigExists        = errors.New("config file already exists")
	ErrUnsupportedFormat   = errors.New("unsupported format")
	ErrStoreCorrupted      = errors.New("dismissal store is corrupted")
	ErrMissingAPIBaseURL   = errors.New("api base_url is not configured")
	ErrMissingSnapshotFile = errors.New("snapshot file path is not configured")
)
