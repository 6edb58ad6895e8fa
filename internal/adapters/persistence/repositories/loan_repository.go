package repositories

import (
	"context"
	"errors"

	"github.com/kananfatullayev/ms-loan/internal/adapters/persistence/models"
	"github.com/kananfatullayev/ms-loan/internal/core/domain"

	"gorm.io/gorm"
)

// GormLoanRepository handles loan data access
type GormLoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{db: db}
}

// Create inserts a new loan
func (r *GormLoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID
func (r *GormLoanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).First(&loan, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// List lists all loans in insertion order
func (r *GormLoanRepository) List(ctx context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&loans).Error
	return loans, err
}

// ListByUserID lists loans belonging to a user
func (r *GormLoanRepository) ListByUserID(ctx context.Context, userID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&loans).Error
	return loans, err
}

// Update saves a loan
func (r *GormLoanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// Delete permanently removes a loan
func (r *GormLoanRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Loan{}, id).Error
}

// ExistsByID reports whether a loan exists
func (r *GormLoanRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// Transaction runs fn inside a single database transaction
func (r *GormLoanRepository) Transaction(ctx context.Context, fn func(repo LoanRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormLoanRepository{db: tx})
	})
}
