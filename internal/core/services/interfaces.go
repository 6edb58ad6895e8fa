package services

import (
	"context"

	"github.com/kananfatullayev/ms-loan/internal/adapters/persistence/models"
	"github.com/kananfatullayev/ms-loan/internal/core/domain"
)

// UserDirectory resolves user identity in the external ms-user service.
// The loan service only needs the single lookup.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint) (*domain.User, error)
}

// Notifier is told about successfully created loans. Implementations must
// not fail the calling operation; delivery is best effort.
type Notifier interface {
	LoanCreated(ctx context.Context, loan *models.Loan)
}
