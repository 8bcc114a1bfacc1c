package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/dto"
	"github.com/SscSPs/forexdesk/internal/middleware"
	"github.com/gin-gonic/gin"
)

type operationHandler struct {
	operationService portssvc.OperationSvcFacade
	sessionService   portssvc.SessionReaderSvc
}

func registerOperationRoutes(rg *gin.RouterGroup, operationService portssvc.OperationSvcFacade, sessionService portssvc.SessionReaderSvc) {
	h := &operationHandler{operationService: operationService, sessionService: sessionService}

	operations := rg.Group("/operations")
	{
		operations.POST("", h.settleOperation)
		operations.GET("/:operationID", h.getOperation)
	}
	rg.GET("/sessions/:sessionID/operations", h.listBySession)
}

// settleOperation godoc
// @Summary Settle a conversion operation
// @Description Resolves every line, credits the received currency when paid in cash and debits the
// @Description delivered currency on the opening desk ledger. An optional transfer is created in the
// @Description same transaction. Nothing is committed when any line fails.
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   operation body dto.SettleOperationRequest true "Operation lines"
// @Success 201 {object} dto.OperationResponse
// @Failure 400 {object} map[string]string "Invalid line or rounding choice required"
// @Failure 409 {object} map[string]string "Insufficient balance, repeated pair, amounts changed or desk not reconciled"
// @Failure 422 {object} map[string]string "Amounts did not converge"
// @Failure 502 {object} map[string]string "Rate source unavailable"
// @Security BearerAuth
// @Router /operations [post]
func (h *operationHandler) settleOperation(c *gin.Context) {
	var req dto.SettleOperationRequest
	if !bindJSON(c, &req, "SettleOperation") {
		return
	}
	sc, ok := sessionContext(c, h.sessionService)
	if !ok {
		return
	}

	op, err := h.operationService.Settle(c.Request.Context(), *sc, req)
	if err != nil {
		respondError(c, err, "Failed to settle operation")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Operation settled",
		slog.String("operation_id", op.OperationID), slog.String("desk_id", op.DeskID))
	c.JSON(http.StatusCreated, dto.ToOperationResponse(op))
}

// getOperation godoc
// @Summary Get a settled operation
// @Tags operations
// @Produce  json
// @Param   operationID path string true "Operation ID"
// @Success 200 {object} dto.OperationResponse
// @Failure 404 {object} map[string]string "Operation not found"
// @Security BearerAuth
// @Router /operations/{operationID} [get]
func (h *operationHandler) getOperation(c *gin.Context) {
	op, err := h.operationService.GetOperation(c.Request.Context(), c.Param("operationID"))
	if err != nil {
		respondError(c, err, "Failed to get operation")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperationResponse(op))
}

// listBySession godoc
// @Summary List the operations of a session
// @Tags operations
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {array} dto.OperationResponse
// @Security BearerAuth
// @Router /sessions/{sessionID}/operations [get]
func (h *operationHandler) listBySession(c *gin.Context) {
	ops, err := h.operationService.ListBySession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to list operations")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperationResponses(ops))
}
