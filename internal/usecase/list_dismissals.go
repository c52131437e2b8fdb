package usecase

import (
	"context"
	"sort"

	"github.com/runoshun/taskpulse/internal/domain"
)

// ListDismissalsInput contains the parameters for listing dismissals.
type ListDismissalsInput struct{}

// ListDismissalsOutput contains the current dismissals sorted by id.
type ListDismissalsOutput struct {
	Dismissals []domain.Dismissal
}

// ListDismissals returns the dismissed suggestions.
type ListDismissals struct {
	dismissals domain.DismissalStore
}

// NewListDismissals creates a new ListDismissals use case.
func NewListDismissals(dismissals domain.DismissalStore) *ListDismissals {
	return &ListDismissals{dismissals: dismissals}
}

// Execute lists dismissals.
func (uc *ListDismissals) Execute(_ context.Context, _ ListDismissalsInput) (*ListDismissalsOutput, error) {
	dismissals, err := uc.dismissals.List()
	if err != nil {
		return nil, err
	}
	sort.Slice(dismissals, func(i, j int) bool {
		return dismissals[i].ID < dismissals[j].ID
	})
	return &ListDismissalsOutput{Dismissals: dismissals}, nil
}
