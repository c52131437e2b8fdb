package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/taskpulse/internal/domain"
)

// DismissSuggestionInput contains the parameters for dismissing a suggestion.
type DismissSuggestionInput struct {
	ID string // Suggestion id (e.g. "overdue-tasks")
}

// DismissSuggestionOutput contains the result of dismissing a suggestion.
type DismissSuggestionOutput struct {
	DismissedAt time.Time
	ID          string
}

// DismissSuggestion hides a suggestion from future reports.
type DismissSuggestion struct {
	dismissals domain.DismissalStore
	clock      domain.Clock
	logger     domain.Logger
}

// NewDismissSuggestion creates a new DismissSuggestion use case.
func NewDismissSuggestion(dismissals domain.DismissalStore, clock domain.Clock, logger domain.Logger) *DismissSuggestion {
	return &DismissSuggestion{
		dismissals: dismissals,
		clock:      clock,
		logger:     logger,
	}
}

// Execute records the dismissal. Only stable suggestion ids are accepted.
func (uc *DismissSuggestion) Execute(_ context.Context, in DismissSuggestionInput) (*DismissSuggestionOutput, error) {
	if !domain.IsKnownSuggestion(in.ID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSuggestionNotFound, in.ID)
	}

	now := uc.clock.Now()
	if err := uc.dismissals.Dismiss(in.ID, now); err != nil {
		return nil, fmt.Errorf("dismiss %s: %w", in.ID, err)
	}
	uc.logger.Info("dismiss", "dismissed suggestion "+in.ID)

	return &DismissSuggestionOutput{
		ID:          in.ID,
		DismissedAt: now,
	}, nil
}
