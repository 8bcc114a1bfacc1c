package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/dto"
	"github.com/SscSPs/forexdesk/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transferHandler struct {
	transferService portssvc.TransferSvcFacade
	sessionService  portssvc.SessionReaderSvc
}

func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade, sessionService portssvc.SessionReaderSvc) {
	h := &transferHandler{transferService: transferService, sessionService: sessionService}

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.GET("/lines", h.listLines)
		transfers.GET("/:transferID", h.getTransfer)
		transfers.POST("/lines/:lineID/cancel", h.lineAction("cancel", h.transferService.Cancel))
		transfers.POST("/lines/:lineID/receive", h.lineAction("receive", h.transferService.Receive))
		transfers.POST("/lines/:lineID/reject", h.lineAction("reject", h.transferService.Reject))
		transfers.PUT("/lines/:lineID/receiver", middleware.RequireAdmin(), h.redirectLine)
	}
}

// createTransfer godoc
// @Summary Send cash to other desks
// @Description Debits the sender desk at creation. Every receiver desk must hold a reconciled
// @Description opening claim and accept the line currency.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer lines"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid line"
// @Failure 409 {object} map[string]string "Insufficient balance or desk not reconciled"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	var req dto.CreateTransferRequest
	if !bindJSON(c, &req, "CreateTransfer") {
		return
	}
	sc, ok := sessionContext(c, h.sessionService)
	if !ok {
		return
	}

	transfer, err := h.transferService.Create(c.Request.Context(), *sc, req)
	if err != nil {
		respondError(c, err, "Failed to create transfer")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transfer created",
		slog.String("transfer_id", transfer.TransferID), slog.Int("lines", len(transfer.Lines)))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// getTransfer godoc
// @Summary Get a transfer with its lines
// @Tags transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 404 {object} map[string]string "Transfer not found"
// @Security BearerAuth
// @Router /transfers/{transferID} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	transfer, err := h.transferService.GetTransfer(c.Request.Context(), c.Param("transferID"))
	if err != nil {
		respondError(c, err, "Failed to get transfer")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// listLines godoc
// @Summary List the caller's transfer lines
// @Description Lines the caller sent or that are addressed to the caller
// @Tags transfers
// @Produce  json
// @Success 200 {array} dto.TransferLineResponse
// @Security BearerAuth
// @Router /transfers/lines [get]
func (h *transferHandler) listLines(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	lines, err := h.transferService.ListLines(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list transfer lines")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferLineResponses(lines))
}

// lineAction godoc
// @Summary Cancel, receive or reject a pending transfer line
// @Description cancel: sender only, refunds the sender. receive: receiver claim holder only, credits
// @Description the receiver. reject: receiver claim holder only.
// @Tags transfers
// @Produce  json
// @Param   lineID path string true "Line ID"
// @Success 200 {object} dto.TransferLineResponse
// @Failure 403 {object} map[string]string "Caller is not a party to the line"
// @Failure 409 {object} map[string]string "Line is not pending"
// @Security BearerAuth
// @Router /transfers/lines/{lineID}/cancel [post]
// @Router /transfers/lines/{lineID}/receive [post]
// @Router /transfers/lines/{lineID}/reject [post]
func (h *transferHandler) lineAction(name string, fn func(ctx context.Context, sc domain.SessionContext, lineID string) (*domain.TransferLine, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, ok := sessionContext(c, h.sessionService)
		if !ok {
			return
		}
		line, err := fn(c.Request.Context(), *sc, c.Param("lineID"))
		if err != nil {
			respondError(c, err, "Failed to "+name+" transfer line")
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transfer line updated",
			slog.String("line_id", line.LineID), slog.String("transition", name))
		c.JSON(http.StatusOK, dto.ToTransferLineResponse(line))
	}
}

// redirectLine godoc
// @Summary Redirect a pending transfer line
// @Description Moves a pending line to another receiver desk. Administrators only.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   lineID path string true "Line ID"
// @Param   redirect body dto.RedirectTransferLineRequest true "New receiver desk"
// @Success 200 {object} dto.TransferLineResponse
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 409 {object} map[string]string "Line is not pending or receiver not reconciled"
// @Security BearerAuth
// @Router /transfers/lines/{lineID}/receiver [put]
func (h *transferHandler) redirectLine(c *gin.Context) {
	var req dto.RedirectTransferLineRequest
	if !bindJSON(c, &req, "RedirectTransferLine") {
		return
	}
	sc, ok := sessionContext(c, h.sessionService)
	if !ok {
		return
	}
	line, err := h.transferService.Redirect(c.Request.Context(), *sc, c.Param("lineID"), req.ReceiverDeskID)
	if err != nil {
		respondError(c, err, "Failed to redirect transfer line")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferLineResponse(line))
}
