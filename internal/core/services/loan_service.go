package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/kananfatullayev/ms-loan/internal/adapters/persistence/models"
	"github.com/kananfatullayev/ms-loan/internal/adapters/persistence/repositories"
	"github.com/kananfatullayev/ms-loan/internal/core/domain"
	"github.com/kananfatullayev/ms-loan/internal/pkg/amortization"

	"github.com/shopspring/decimal"
)

// LoanService handles loan business logic
type LoanService struct {
	loanRepo   repositories.LoanRepository
	users      UserDirectory
	notifier   Notifier
	annualRate decimal.Decimal
	// recomputeOnUpdate restores monthly-amount consistency after an
	// update. Off by default: the monthly amount is fixed at creation.
	recomputeOnUpdate bool
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	users UserDirectory,
	notifier Notifier,
	annualRate decimal.Decimal,
	recomputeOnUpdate bool,
) *LoanService {
	return &LoanService{
		loanRepo:          loanRepo,
		users:             users,
		notifier:          notifier,
		annualRate:        annualRate,
		recomputeOnUpdate: recomputeOnUpdate,
	}
}

// LoanInput represents create/update loan input
type LoanInput struct {
	UserID   uint
	Amount   decimal.Decimal
	Duration decimal.Decimal
}

func (in *LoanInput) validate() error {
	if in.UserID == 0 {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if in.Amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidInput)
	}
	if in.Duration.Truncate(0).Sign() <= 0 {
		return fmt.Errorf("%w: duration must be at least one month", domain.ErrInvalidInput)
	}
	return nil
}

// Create validates the referenced user against the directory, computes the
// monthly payment with the process-wide annual rate and persists the loan.
func (s *LoanService) Create(ctx context.Context, input *LoanInput) (*models.Loan, error) {
	log.Printf("creating loan for user %d", input.UserID)

	if err := input.validate(); err != nil {
		return nil, err
	}

	// Directory errors (not found, validation, generic) propagate as-is.
	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	monthlyAmount, err := amortization.MonthlyPayment(input.Amount, s.annualRate, input.Duration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	loan := &models.Loan{
		UserID:        input.UserID,
		Amount:        input.Amount,
		MonthlyAmount: monthlyAmount,
		Duration:      input.Duration,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	log.Printf("loan created with id %d", loan.ID)

	if s.notifier != nil {
		s.notifier.LoanCreated(ctx, loan)
	}

	return loan, nil
}

// GetByID gets a loan by ID
func (s *LoanService) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundWithID(err, id)
	}
	return loan, nil
}

// List lists all loans in the store's natural order
func (s *LoanService) List(ctx context.Context) ([]*models.Loan, error) {
	return s.loanRepo.List(ctx)
}

// ListByUserID lists all loans belonging to a user
func (s *LoanService) ListByUserID(ctx context.Context, userID uint) ([]*models.Loan, error) {
	return s.loanRepo.ListByUserID(ctx, userID)
}

// Update overwrites userId, amount and duration of an existing loan. The
// fetch and the save run inside one transaction so the check-then-write
// cannot lose a concurrent update.
func (s *LoanService) Update(ctx context.Context, id uint, input *LoanInput) (*models.Loan, error) {
	log.Printf("updating loan with id %d", id)

	if err := input.validate(); err != nil {
		return nil, err
	}

	var updated *models.Loan
	err := s.loanRepo.Transaction(ctx, func(repo repositories.LoanRepository) error {
		loan, err := repo.GetByID(ctx, id)
		if err != nil {
			return notFoundWithID(err, id)
		}

		loan.UserID = input.UserID
		loan.Amount = input.Amount
		loan.Duration = input.Duration

		if s.recomputeOnUpdate {
			monthlyAmount, err := amortization.MonthlyPayment(input.Amount, s.annualRate, input.Duration)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
			}
			loan.MonthlyAmount = monthlyAmount
		}

		if err := repo.Update(ctx, loan); err != nil {
			return err
		}

		updated = loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("loan updated with id %d", id)
	return updated, nil
}

// Delete physically removes a loan
func (s *LoanService) Delete(ctx context.Context, id uint) error {
	log.Printf("deleting loan with id %d", id)

	err := s.loanRepo.Transaction(ctx, func(repo repositories.LoanRepository) error {
		exists, err := repo.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return notFoundWithID(domain.ErrLoanNotFound, id)
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Printf("loan deleted with id %d", id)
	return nil
}

func notFoundWithID(err error, id uint) error {
	if errors.Is(err, domain.ErrLoanNotFound) {
		return fmt.Errorf("%w with id: %d", domain.ErrLoanNotFound, id)
	}
	return err
}
