package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/dto"
	"github.com/SscSPs/forexdesk/internal/middleware"
	"github.com/gin-gonic/gin"
)

type deskHandler struct {
	deskService   portssvc.DeskSvc
	ledgerService portssvc.CashLedgerReaderSvc
}

func registerDeskRoutes(rg *gin.RouterGroup, deskService portssvc.DeskSvc, ledgerService portssvc.CashLedgerReaderSvc) {
	h := &deskHandler{deskService: deskService, ledgerService: ledgerService}

	desks := rg.Group("/desks")
	{
		desks.POST("/link", h.linkDesk)
		desks.GET("/current", h.currentDesk)
		desks.GET("/:deskID/balances", h.listBalances)
	}
}

// linkDesk godoc
// @Summary Link the caller to a desk
// @Description Declares the desk the caller is physically at. The desk pairing code must match.
// @Tags desks
// @Accept  json
// @Produce  json
// @Param   link body dto.LinkDeskRequest true "Desk and pairing code"
// @Success 200 {object} dto.DeskLinkResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Pairing code mismatch"
// @Failure 404 {object} map[string]string "Desk not found"
// @Security BearerAuth
// @Router /desks/link [post]
func (h *deskHandler) linkDesk(c *gin.Context) {
	var req dto.LinkDeskRequest
	if !bindJSON(c, &req, "LinkDesk") {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	link, err := h.deskService.LinkDesk(c.Request.Context(), userID, req.DeskID, req.PairingCode)
	if err != nil {
		respondError(c, err, "Failed to link desk")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Desk linked", slog.String("desk_id", link.DeskID))
	c.JSON(http.StatusOK, dto.ToDeskLinkResponse(link))
}

// currentDesk godoc
// @Summary Get the caller's linked desk
// @Tags desks
// @Produce  json
// @Success 200 {object} dto.DeskLinkResponse
// @Failure 404 {object} map[string]string "No linked desk"
// @Security BearerAuth
// @Router /desks/current [get]
func (h *deskHandler) currentDesk(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	link, err := h.deskService.CurrentDesk(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get linked desk")
		return
	}
	c.JSON(http.StatusOK, dto.ToDeskLinkResponse(link))
}

// listBalances godoc
// @Summary List desk balances
// @Description Returns the cash balance of every currency held at the desk
// @Tags desks
// @Produce  json
// @Param   deskID path string true "Desk ID"
// @Success 200 {array} dto.BalanceResponse
// @Failure 500 {object} map[string]string "Failed to list balances"
// @Security BearerAuth
// @Router /desks/{deskID}/balances [get]
func (h *deskHandler) listBalances(c *gin.Context) {
	balances, err := h.ledgerService.ListBalances(c.Request.Context(), c.Param("deskID"))
	if err != nil {
		respondError(c, err, "Failed to list balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponses(balances))
}
