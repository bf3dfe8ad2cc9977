package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/service"
	"github.com/locvowork/hr_records/internal/service/serviceutils"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) ListHandler(c echo.Context) error {
	reviews, err := h.svc.List(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to fetch performance reviews", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Performance reviews listed successfully", reviews)
}

func (h *ReviewHandler) CreateHandler(c echo.Context) error {
	var req domain.ReviewInput
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	review, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		status := serviceutils.StatusFromError(err)
		msg := "Failed to create performance review"
		if status == http.StatusBadRequest {
			msg = err.Error()
		}
		return serviceutils.ResponseError(c, status, msg, err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Performance review created", review)
}
