package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	bookModel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/service"
	userModel "library-backend/internal/domains/user/model"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type LoanHandler struct {
	service service.Service
}

func NewLoanHandler(svc service.Service) *LoanHandler {
	return &LoanHandler{service: svc}
}

// Create handles POST /v1/loans
func (h *LoanHandler) Create(c *gin.Context) {
	var req model.CreateLoanRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actorID := c.GetString(middleware.CtxUserID)
	actorRole := c.GetString(middleware.CtxRole)

	loan, err := h.service.Create(c.Request.Context(), actorID, actorRole, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, loan)
}

// Return handles POST /v1/loans/:id/return
func (h *LoanHandler) Return(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserID)
	actorRole := c.GetString(middleware.CtxRole)

	loan, err := h.service.Return(c.Request.Context(), actorID, actorRole, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// Renew handles POST /v1/loans/:id/renew
func (h *LoanHandler) Renew(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserID)
	actorRole := c.GetString(middleware.CtxRole)

	loan, err := h.service.Renew(c.Request.Context(), actorID, actorRole, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// List handles GET /v1/loans?status= (admin)
func (h *LoanHandler) List(c *gin.Context) {
	loans, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, loans, &response.Meta{Total: len(loans)})
}

// ListMine handles GET /v1/loans/my
func (h *LoanHandler) ListMine(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	loans, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, loans, &response.Meta{Total: len(loans)})
}

// handleError picks the most specific mapping: lifecycle errors first,
// then catalog and account errors surfaced through loan operations.
func (h *LoanHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", vErrs)
		return
	}

	if code := model.ToErrorCode(err); code != "INTERNAL_ERROR" {
		response.ErrorResponse(c, model.ToHTTPStatus(err), code, err.Error())
		return
	}
	if code := bookModel.ToErrorCode(err); code != "INTERNAL_ERROR" {
		response.ErrorResponse(c, bookModel.ToHTTPStatus(err), code, err.Error())
		return
	}
	if code := userModel.ToErrorCode(err); code != "INTERNAL_ERROR" {
		response.ErrorResponse(c, userModel.ToHTTPStatus(err), code, err.Error())
		return
	}

	response.InternalServerError(c, err.Error())
}
