package controller

import (
	"errors"
	"net/http"

	httpdto "ledger/app/dto/http"
	"ledger/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	userService   *service.UserService
	ledgerService *service.LedgerService
}

func NewUserController(userService *service.UserService, ledgerService *service.LedgerService) *UserController {
	return &UserController{userService: userService, ledgerService: ledgerService}
}

func (c *UserController) Me(ctx echo.Context) error {
	userID, ok := ctx.Get("user_id").(string)
	if !ok {
		logrus.Warn("Profile lookup failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
	}

	user, err := c.userService.Profile(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("user_id", userID).Warn("Profile lookup failed: user not found")
			return ctx.JSON(http.StatusNotFound, httpdto.ErrorResponse{Error: "user not found"})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Profile lookup failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, httpdto.NewUserResponse(user))
}

func (c *UserController) Update(ctx echo.Context) error {
	callerID, ok := ctx.Get("user_id").(string)
	if !ok {
		logrus.Warn("Update failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
	}

	var req httpdto.UpdateUserRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind update request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Update validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	if err := c.userService.UpdateProfile(ctx.Request().Context(), callerID, req.UserID, req.Name, req.Email); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			logrus.WithField("caller_id", callerID).Warn("Update attempted on another account")
			return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
		}
		logrus.WithError(err).WithField("user_id", callerID).Error("Update failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", callerID).Info("User updated")
	return ctx.JSON(http.StatusOK, httpdto.MessageResponse{Message: "user updated successfully"})
}

func (c *UserController) Deposit(ctx echo.Context) error {
	callerID, ok := ctx.Get("user_id").(string)
	if !ok {
		logrus.Warn("Deposit failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
	}

	var req httpdto.DepositRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind deposit request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Deposit validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	balance, err := c.ledgerService.Deposit(ctx.Request().Context(), callerID, req.Email, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrEmailMismatch) {
			logrus.WithField("user_id", callerID).Warn("Deposit failed: email mismatch")
			return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
		}
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("user_id", callerID).Warn("Deposit failed: user not found")
			return ctx.JSON(http.StatusNotFound, httpdto.ErrorResponse{Error: "user not found"})
		}
		logrus.WithError(err).WithField("user_id", callerID).Error("Deposit failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", callerID).Info("User balance updated")
	return ctx.JSON(http.StatusOK, httpdto.DepositResponse{Balance: balance})
}
