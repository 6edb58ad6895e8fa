package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kananfatullayev/ms-loan/internal/adapters/persistence/models"
)

func TestNotificationService_Disabled(t *testing.T) {
	svc := NewNotificationService("")
	if svc.IsEnabled() {
		t.Fatal("expected notifier disabled without webhook URL")
	}

	// Must be a safe no-op.
	svc.LoanCreated(context.Background(), &models.Loan{ID: 1})
}

func TestNotificationService_PostsEvent(t *testing.T) {
	var received loanCreatedEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode event failed: %v", err)
		}
	}))
	defer srv.Close()

	svc := NewNotificationService(srv.URL)
	if !svc.IsEnabled() {
		t.Fatal("expected notifier enabled")
	}

	loan := &models.Loan{ID: 5, UserID: 7, Amount: dec("1200.00"), MonthlyAmount: dec("106.62"), Duration: dec("12")}
	svc.LoanCreated(context.Background(), loan)

	if received.Event != "loan.created" || received.LoanID != 5 || received.MonthlyAmount != "106.62" {
		t.Errorf("unexpected event payload: %+v", received)
	}
}
