package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Loan represents the loans table
type Loan struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"amount"`
	MonthlyAmount decimal.Decimal `gorm:"type:decimal(16,2)" json:"monthly_amount"`
	Duration      decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"duration"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string {
	return "loans"
}

// LoanResponse DTO
type LoanResponse struct {
	ID            uint            `json:"id"`
	UserID        uint            `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	Duration      decimal.Decimal `json:"duration"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (l *Loan) ToResponse() *LoanResponse {
	return &LoanResponse{
		ID:            l.ID,
		UserID:        l.UserID,
		Amount:        l.Amount,
		MonthlyAmount: l.MonthlyAmount,
		Duration:      l.Duration,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Loan{},
	)
}
