package handlers

import (
	"errors"
	"strconv"

	"github.com/kananfatullayev/ms-loan/internal/adapters/persistence/models"
	"github.com/kananfatullayev/ms-loan/internal/core/domain"
	"github.com/kananfatullayev/ms-loan/internal/core/services"
	"github.com/kananfatullayev/ms-loan/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

// LoanRequest represents create/update loan request
type LoanRequest struct {
	UserID   uint            `json:"user_id"`
	Amount   decimal.Decimal `json:"amount"`
	Duration decimal.Decimal `json:"duration"`
}

func (r *LoanRequest) toInput() *services.LoanInput {
	return &services.LoanInput{
		UserID:   r.UserID,
		Amount:   r.Amount,
		Duration: r.Duration,
	}
}

// Create creates a new loan
// @Summary Create loan
// @Description Create a new loan; the referenced user is validated against the user directory and the monthly payment is computed from the configured annual rate
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body LoanRequest true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var req LoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Create(c.Context(), req.toInput())
	if err != nil {
		return serviceError(c, err)
	}

	return response.Created(c, "Loan created successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// GetByID gets a loan by ID
// @Summary Get loan by ID
// @Description Get a specific loan
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Loan retrieved successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// List lists all loans
// @Summary List loans
// @Description List every loan in the store's natural order
// @Tags Loans
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	loans, err := h.loanService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": toResponses(loans),
	})
}

// ListByUserID lists loans for a user
// @Summary List loans by user
// @Description List all loans belonging to a user (possibly empty)
// @Tags Loans
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /loans/user/{userId} [get]
func (h *LoanHandler) ListByUserID(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	loans, err := h.loanService.ListByUserID(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": toResponses(loans),
	})
}

// Update updates an existing loan
// @Summary Update loan
// @Description Overwrite userId, amount and duration of an existing loan
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Param body body LoanRequest true "Loan data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [put]
func (h *LoanHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req LoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Update(c.Context(), id, req.toInput())
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Loan updated successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// Delete deletes a loan
// @Summary Delete loan
// @Description Permanently remove a loan
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [delete]
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	if err := h.loanService.Delete(c.Context(), id); err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Loan deleted successfully", nil)
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func toResponses(loans []*models.Loan) []*models.LoanResponse {
	responses := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, loan.ToResponse())
	}
	return responses
}

// serviceError maps service-level errors to status codes and the uniform
// error envelope. Directory errors keep the code decoded from ms-user.
func serviceError(c *fiber.Ctx, err error) error {
	code := ""
	var dirErr *domain.DirectoryError
	if errors.As(err, &dirErr) {
		code = dirErr.Code
	}

	switch {
	case errors.Is(err, domain.ErrLoanNotFound):
		if code == "" {
			code = domain.CodeLoanNotFound
		}
		return response.ErrorWithCode(c, fiber.StatusNotFound, err.Error(), code)
	case errors.Is(err, domain.ErrUserNotFound):
		if code == "" {
			code = domain.CodeUserNotFound
		}
		return response.ErrorWithCode(c, fiber.StatusNotFound, err.Error(), code)
	case errors.Is(err, domain.ErrUserValidation), errors.Is(err, domain.ErrInvalidInput):
		if code == "" {
			code = domain.CodeValidation
		}
		return response.ErrorWithCode(c, fiber.StatusBadRequest, err.Error(), code)
	default:
		// Generic failures carry the message only, no code.
		return response.InternalServerError(c, err.Error())
	}
}
