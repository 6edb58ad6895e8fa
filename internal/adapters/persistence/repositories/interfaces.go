package repositories

import (
	"context"

	"github.com/kananfatullayev/ms-loan/internal/adapters/persistence/models"
)

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	List(ctx context.Context) ([]*models.Loan, error)
	ListByUserID(ctx context.Context, userID uint) ([]*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	Delete(ctx context.Context, id uint) error
	ExistsByID(ctx context.Context, id uint) (bool, error)
	// Transaction runs fn against a repository bound to a single database
	// transaction; any error rolls the whole unit of work back.
	Transaction(ctx context.Context, fn func(repo LoanRepository) error) error
}
