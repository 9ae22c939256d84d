package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	httpdto "ledger/app/dto/http"
	"ledger/app/entity"
	"ledger/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type TransferController struct {
	ledgerService *service.LedgerService
}

func NewTransferController(ledgerService *service.LedgerService) *TransferController {
	return &TransferController{ledgerService: ledgerService}
}

func (c *TransferController) CreateTransfer(ctx echo.Context) error {
	callerID, ok := ctx.Get("user_id").(string)
	if !ok {
		logrus.Warn("Transfer failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
	}

	var req httpdto.TransferRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind transfer request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Transfer validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	logrus.WithField("caller_id", callerID).Info("Transfer request received")
	transferID, err := c.ledgerService.Transfer(ctx.Request().Context(), callerID, req.SenderID, req.ReceiverID, req.Amount, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
		}
		logrus.WithError(err).WithField("caller_id", callerID).Error("Transfer failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "failed to transfer amount"})
	}

	return ctx.JSON(http.StatusOK, httpdto.TransferResponse{TransferID: transferID})
}

func (c *TransferController) GetTransfer(ctx echo.Context) error {
	callerID, ok := ctx.Get("user_id").(string)
	if !ok {
		logrus.Warn("Get transfer failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
	}

	transferID := ctx.Param("id")
	transfer, err := c.ledgerService.GetTransfer(ctx.Request().Context(), callerID, transferID)
	if err != nil {
		if errors.Is(err, service.ErrTransferNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.ErrorResponse{Error: "transfer not found"})
		}
		logrus.WithError(err).WithField("transfer_id", transferID).Error("Failed to retrieve transfer")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, httpdto.NewTransferRecord(transfer))
}

// ListTransfers streams the caller's transfers as server-sent events. Each
// row is flushed as its own event while the store cursor is still open, so
// the full result set is never held in memory.
func (c *TransferController) ListTransfers(ctx echo.Context) error {
	callerID, ok := ctx.Get("user_id").(string)
	if !ok {
		logrus.Warn("List transfers failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
	}

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)

	err := c.ledgerService.ListTransfers(ctx.Request().Context(), callerID, func(transfer *entity.Transfer) error {
		payload, err := json.Marshal(httpdto.NewTransferRecord(transfer))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(resp, "data: %s\n\n", payload); err != nil {
			return err
		}
		resp.Flush()
		return nil
	})
	if err != nil {
		// Headers are already on the wire; all that is left is to stop the
		// stream and log why.
		logrus.WithError(err).WithField("caller_id", callerID).Error("Failed to stream transfers")
	}
	return nil
}
