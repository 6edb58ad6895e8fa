package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/kananfatullayev/ms-loan/internal/adapters/persistence/models"
)

// NotificationService posts loan-created events to a webhook. When no
// webhook URL is configured it is a no-op, so it can always be injected.
type NotificationService struct {
	webhookURL string
	enabled    bool
	httpClient *http.Client
}

// NewNotificationService creates a new notification service
func NewNotificationService(webhookURL string) *NotificationService {
	return &NotificationService{
		webhookURL: webhookURL,
		enabled:    webhookURL != "",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// loanCreatedEvent is the webhook payload
type loanCreatedEvent struct {
	Event         string `json:"event"`
	LoanID        uint   `json:"loan_id"`
	UserID        uint   `json:"user_id"`
	Amount        string `json:"amount"`
	MonthlyAmount string `json:"monthly_amount"`
	Duration      string `json:"duration"`
}

// LoanCreated sends a notification for a newly created loan. Delivery is
// best effort; failures are logged and never fail the create operation.
func (s *NotificationService) LoanCreated(ctx context.Context, loan *models.Loan) {
	if !s.enabled {
		return
	}

	event := loanCreatedEvent{
		Event:         "loan.created",
		LoanID:        loan.ID,
		UserID:        loan.UserID,
		Amount:        loan.Amount.String(),
		MonthlyAmount: loan.MonthlyAmount.String(),
		Duration:      loan.Duration.String(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("notification: marshal failed: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("notification: request build failed: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("notification: delivery failed for loan %d: %v", loan.ID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		log.Printf("notification: webhook returned status %d for loan %d", resp.StatusCode, loan.ID)
	}
}
