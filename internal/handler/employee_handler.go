package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/service"
	"github.com/locvowork/hr_records/internal/service/serviceutils"
)

const msgEmployeeNotFound = "Employee not found"

type EmployeeHandler struct {
	svc service.EmployeeService
}

func NewEmployeeHandler(svc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

func (h *EmployeeHandler) ListHandler(c echo.Context) error {
	employees, err := h.svc.List(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to fetch employees", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees listed successfully", employees)
}

func (h *EmployeeHandler) CreateHandler(c echo.Context) error {
	var req domain.EmployeeInput
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	emp, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		status := serviceutils.StatusFromError(err)
		msg := "Failed to add employee"
		if status == http.StatusBadRequest {
			msg = err.Error()
		}
		return serviceutils.ResponseError(c, status, msg, err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Employee created successfully", emp)
}

func (h *EmployeeHandler) DeleteHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, DeleteResponse{Success: false, Message: msgEmployeeNotFound})
		}
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to delete employee", err)
	}

	return c.JSON(http.StatusOK, DeleteResponse{Success: true, Message: "Employee deleted", ID: id})
}

func (h *EmployeeHandler) SearchHandler(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	employees, err := h.svc.Search(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		status := serviceutils.StatusFromError(err)
		msg := "Failed to search employees"
		if status == http.StatusBadRequest {
			msg = err.Error()
		}
		return serviceutils.ResponseError(c, status, msg, err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees found", employees)
}
