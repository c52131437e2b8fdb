package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskpulse/internal/domain"
)

// RestoreSuggestionsInput contains the parameters for restoring suggestions.
type RestoreSuggestionsInput struct {
	ID  string // Suggestion id to restore (ignored when All is set)
	All bool   // Restore every dismissed suggestion
}

// RestoreSuggestionsOutput contains the result of restoring suggestions.
type RestoreSuggestionsOutput struct {
	Restored int
}

// RestoreSuggestions makes dismissed suggestions visible again.
type RestoreSuggestions struct {
	dismissals domain.DismissalStore
	logger     domain.Logger
}

// NewRestoreSuggestions creates a new RestoreSuggestions use case.
func NewRestoreSuggestions(dismissals domain.DismissalStore, logger domain.Logger) *RestoreSuggestions {
	return &RestoreSuggestions{
		dismissals: dismissals,
		logger:     logger,
	}
}

// Execute removes one dismissal, or all of them.
func (uc *RestoreSuggestions) Execute(_ context.Context, in RestoreSuggestionsInput) (*RestoreSuggestionsOutput, error) {
	if in.All {
		n, err := uc.dismissals.RestoreAll()
		if err != nil {
			return nil, fmt.Errorf("restore all: %w", err)
		}
		uc.logger.Info("restore", fmt.Sprintf("restored %d suggestion(s)", n))
		return &RestoreSuggestionsOutput{Restored: n}, nil
	}

	if !domain.IsKnownSuggestion(in.ID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSuggestionNotFound, in.ID)
	}

	ok, err := uc.dismissals.Restore(in.ID)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", in.ID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotDismissed, in.ID)
	}
	uc.logger.Info("restore", "restored suggestion "+in.ID)

	return &RestoreSuggestionsOutput{Restored: 1}, nil
}
