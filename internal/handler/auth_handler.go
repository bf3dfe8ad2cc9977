package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/logger"
	"github.com/locvowork/hr_records/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// LoginHandler answers 200 for both outcomes; Success tells them apart.
// Every response of this endpoint has the LoginResult shape.
func (h *AuthHandler) LoginHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.Credentials
	if err := c.Bind(&req); err != nil {
		logger.WarnLog(ctx, "Invalid login request body: %v", err)
		return c.JSON(http.StatusBadRequest, domain.LoginResult{Success: false, Message: "Invalid request body"})
	}

	res, err := h.svc.Login(ctx, req)
	if err != nil {
		logger.ErrorLog(ctx, "Login failed: %v", err)
		return c.JSON(http.StatusInternalServerError, domain.LoginResult{Success: false, Message: "Server error"})
	}

	return c.JSON(http.StatusOK, res)
}
