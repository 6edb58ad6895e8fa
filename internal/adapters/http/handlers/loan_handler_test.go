package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kananfatullayev/ms-loan/internal/adapters/persistence/models"
	"github.com/kananfatullayev/ms-loan/internal/adapters/persistence/repositories"
	"github.com/kananfatullayev/ms-loan/internal/core/domain"
	"github.com/kananfatullayev/ms-loan/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type stubLoanRepo struct {
	loans  map[uint]*models.Loan
	nextID uint
}

func newStubLoanRepo() *stubLoanRepo {
	return &stubLoanRepo{loans: make(map[uint]*models.Loan), nextID: 1}
}

func (s *stubLoanRepo) Create(_ context.Context, loan *models.Loan) error {
	loan.ID = s.nextID
	s.nextID++
	now := time.Now()
	loan.CreatedAt = now
	loan.UpdatedAt = now
	stored := *loan
	s.loans[loan.ID] = &stored
	return nil
}

func (s *stubLoanRepo) GetByID(_ context.Context, id uint) (*models.Loan, error) {
	loan, ok := s.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	copied := *loan
	return &copied, nil
}

func (s *stubLoanRepo) List(_ context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	for id := uint(1); id < s.nextID; id++ {
		if loan, ok := s.loans[id]; ok {
			copied := *loan
			loans = append(loans, &copied)
		}
	}
	return loans, nil
}

func (s *stubLoanRepo) ListByUserID(_ context.Context, userID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	for id := uint(1); id < s.nextID; id++ {
		if loan, ok := s.loans[id]; ok && loan.UserID == userID {
			copied := *loan
			loans = append(loans, &copied)
		}
	}
	return loans, nil
}

func (s *stubLoanRepo) Update(_ context.Context, loan *models.Loan) error {
	loan.UpdatedAt = time.Now()
	stored := *loan
	s.loans[loan.ID] = &stored
	return nil
}

func (s *stubLoanRepo) Delete(_ context.Context, id uint) error {
	delete(s.loans, id)
	return nil
}

func (s *stubLoanRepo) ExistsByID(_ context.Context, id uint) (bool, error) {
	_, ok := s.loans[id]
	return ok, nil
}

func (s *stubLoanRepo) Transaction(_ context.Context, fn func(repo repositories.LoanRepository) error) error {
	return fn(s)
}

type stubUserDirectory struct {
	err error
}

func (s *stubUserDirectory) GetByID(_ context.Context, id uint) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.User{ID: id}, nil
}

type stubNotifier struct{}

func (stubNotifier) LoanCreated(context.Context, *models.Loan) {}

func newTestApp(users *stubUserDirectory) (*fiber.App, *stubLoanRepo) {
	repo := newStubLoanRepo()
	svc := services.NewLoanService(repo, users, stubNotifier{}, decimal.NewFromInt(12), false)
	handler := NewLoanHandler(svc)

	app := fiber.New()
	loans := app.Group("/api/v1/loans")
	loans.Post("/", handler.Create)
	loans.Get("/", handler.List)
	loans.Get("/user/:userId", handler.ListByUserID)
	loans.Get("/:id", handler.GetByID)
	loans.Put("/:id", handler.Update)
	loans.Delete("/:id", handler.Delete)

	return app, repo
}

type apiResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Error   string                     `json:"error"`
	Code    string                     `json:"code"`
	Data    map[string]json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, *apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("decode body failed: %v (%s)", err, raw)
	}

	return resp.StatusCode, &parsed
}

func decodeLoan(t *testing.T, data map[string]json.RawMessage) *models.LoanResponse {
	t.Helper()

	var loan models.LoanResponse
	if err := json.Unmarshal(data["loan"], &loan); err != nil {
		t.Fatalf("decode loan failed: %v", err)
	}
	return &loan
}

func TestCreateLoanEndpoint(t *testing.T) {
	app, _ := newTestApp(&stubUserDirectory{})

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/loans/",
		`{"user_id":7,"amount":1200.00,"duration":12}`)

	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (%+v)", status, body)
	}

	loan := decodeLoan(t, body.Data)
	if loan.UserID != 7 {
		t.Errorf("expected user 7, got %d", loan.UserID)
	}
	if got := loan.MonthlyAmount.String(); got != "106.62" {
		t.Errorf("expected monthly amount 106.62, got %s", got)
	}
}

func TestCreateLoanEndpoint_UserNotFound(t *testing.T) {
	app, repo := newTestApp(&stubUserDirectory{err: &domain.DirectoryError{
		Code:    domain.CodeUserNotFound,
		Message: "User not found with id: 99",
		Kind:    domain.ErrUserNotFound,
	}})

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/loans/",
		`{"user_id":99,"amount":1200.00,"duration":12}`)

	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if body.Code != domain.CodeUserNotFound {
		t.Errorf("expected code %s, got %s", domain.CodeUserNotFound, body.Code)
	}
	if len(repo.loans) != 0 {
		t.Errorf("expected no loan persisted")
	}
}

func TestCreateLoanEndpoint_InvalidInput(t *testing.T) {
	app, _ := newTestApp(&stubUserDirectory{})

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/loans/",
		`{"user_id":1,"amount":-5,"duration":12}`)

	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body.Code != domain.CodeValidation {
		t.Errorf("expected code %s, got %s", domain.CodeValidation, body.Code)
	}
}

func TestGetLoanEndpoint_NotFound(t *testing.T) {
	app, _ := newTestApp(&stubUserDirectory{})

	status, body := doRequest(t, app, http.MethodGet, "/api/v1/loans/42", "")

	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if body.Code != domain.CodeLoanNotFound {
		t.Errorf("expected code %s, got %s", domain.CodeLoanNotFound, body.Code)
	}
}

func TestGetLoanEndpoint_InvalidID(t *testing.T) {
	app, _ := newTestApp(&stubUserDirectory{})

	status, _ := doRequest(t, app, http.MethodGet, "/api/v1/loans/abc", "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestUpdateLoanEndpoint(t *testing.T) {
	app, _ := newTestApp(&stubUserDirectory{})

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/loans/",
		`{"user_id":1,"amount":1200.00,"duration":12}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	created := decodeLoan(t, body.Data)

	status, body = doRequest(t, app, http.MethodPut, "/api/v1/loans/1",
		`{"user_id":2,"amount":2400.00,"duration":24}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%+v)", status, body)
	}

	updated := decodeLoan(t, body.Data)
	if updated.UserID != 2 || !updated.Amount.Equal(decimal.NewFromInt(2400)) {
		t.Errorf("update not applied: %+v", updated)
	}
	// Monthly amount is not recomputed on update by default.
	if !updated.MonthlyAmount.Equal(created.MonthlyAmount) {
		t.Errorf("monthly amount changed: %s -> %s", created.MonthlyAmount, updated.MonthlyAmount)
	}
}

func TestDeleteLoanEndpoint(t *testing.T) {
	app, _ := newTestApp(&stubUserDirectory{})

	status, _ := doRequest(t, app, http.MethodPost, "/api/v1/loans/",
		`{"user_id":1,"amount":1000,"duration":12}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}

	status, _ = doRequest(t, app, http.MethodDelete, "/api/v1/loans/1", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/loans/1", "")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", status)
	}

	status, _ = doRequest(t, app, http.MethodDelete, "/api/v1/loans/1", "")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 deleting missing loan, got %d", status)
	}
}

func TestListLoansByUserEndpoint(t *testing.T) {
	app, _ := newTestApp(&stubUserDirectory{})

	for _, body := range []string{
		`{"user_id":1,"amount":1000,"duration":12}`,
		`{"user_id":2,"amount":2000,"duration":24}`,
		`{"user_id":1,"amount":3000,"duration":36}`,
	} {
		if status, _ := doRequest(t, app, http.MethodPost, "/api/v1/loans/", body); status != fiber.StatusCreated {
			t.Fatalf("expected 201, got %d", status)
		}
	}

	status, resp := doRequest(t, app, http.MethodGet, "/api/v1/loans/user/1", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var loans []*models.LoanResponse
	if err := json.Unmarshal(resp.Data["loans"], &loans); err != nil {
		t.Fatalf("decode loans failed: %v", err)
	}
	if len(loans) != 2 {
		t.Errorf("expected 2 loans for user 1, got %d", len(loans))
	}

	status, resp = doRequest(t, app, http.MethodGet, "/api/v1/loans/user/99", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if err := json.Unmarshal(resp.Data["loans"], &loans); err != nil {
		t.Fatalf("decode loans failed: %v", err)
	}
	if len(loans) != 0 {
		t.Errorf("expected empty list for user 99, got %d", len(loans))
	}
}
