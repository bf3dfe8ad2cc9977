package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/service"
	"github.com/locvowork/hr_records/internal/service/serviceutils"
)

type LeaveHandler struct {
	svc service.LeaveService
}

func NewLeaveHandler(svc service.LeaveService) *LeaveHandler {
	return &LeaveHandler{svc: svc}
}

func (h *LeaveHandler) ListHandler(c echo.Context) error {
	requests, err := h.svc.List(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to fetch leave requests", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Leave requests listed successfully", requests)
}

func (h *LeaveHandler) CreateHandler(c echo.Context) error {
	var req domain.LeaveRequestInput
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	created, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		status := serviceutils.StatusFromError(err)
		msg := "Failed to create leave request"
		if status == http.StatusBadRequest {
			msg = err.Error()
		}
		return serviceutils.ResponseError(c, status, msg, err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Leave request created", created)
}

func (h *LeaveHandler) UpdateStatusHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid leave request ID", err)
	}

	var req domain.LeaveStatusInput
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	updated, err := h.svc.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		switch status := serviceutils.StatusFromError(err); status {
		case http.StatusNotFound:
			return serviceutils.ResponseError(c, status, fmt.Sprintf("Leave request not found with ID: %d", id), err)
		case http.StatusBadRequest:
			return serviceutils.ResponseError(c, status, err.Error(), err)
		default:
			return serviceutils.ResponseError(c, status, "Failed to update leave request", err)
		}
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Leave request updated", updated)
}
