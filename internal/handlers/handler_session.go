package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/dto"
	"github.com/SscSPs/forexdesk/internal/middleware"
	"github.com/gin-gonic/gin"
)

// sessionContext resolves the caller's session context. A caller without an open checkin at
// the linked desk gets 409 rather than 404.
func sessionContext(c *gin.Context, sessions portssvc.SessionReaderSvc) (*domain.SessionContext, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	sc, err := sessions.ResolveContext(c.Request.Context(), userID, middleware.IsAdminFromContext(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = fmt.Errorf("%w: no open checkin at the linked desk", apperrors.ErrInvalidState)
		}
		respondError(c, err, "Failed to resolve session context")
		return nil, false
	}
	return sc, true
}

type sessionHandler struct {
	sessionService        portssvc.SessionSvcFacade
	reconciliationService portssvc.ReconciliationSvcFacade
}

func registerSessionRoutes(rg *gin.RouterGroup, sessionService portssvc.SessionSvcFacade, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := &sessionHandler{sessionService: sessionService, reconciliationService: reconciliationService}

	sessions := rg.Group("/sessions")
	{
		sessions.POST("/checkin", h.checkin)
		sessions.POST("/checkout", h.checkout)
		sessions.GET("/open", h.listOpen)
		sessions.GET("/:sessionID", h.getSession)

		recon := sessions.Group("/:sessionID/reconciliation")
		recon.POST("/start", h.startChecks)
		recon.GET("/checks", h.listChecks)
		recon.PUT("/counts/:currencyCode", h.recordCount)
		recon.POST("/search-difference", h.searchDifference)
		recon.POST("/confirm", h.confirm)
	}
	rg.POST("/balance-checks/:checkID/note", h.attachNote)
}

// checkin godoc
// @Summary Check in at the linked desk
// @Description Opens a checkin. The first checkin of a workday claims the desk and becomes the
// @Description opening checkin. Checkins at further desks are secondary.
// @Tags sessions
// @Produce  json
// @Success 201 {object} dto.WorkSessionResponse
// @Failure 400 {object} map[string]string "No linked desk"
// @Failure 409 {object} map[string]string "Already checked in, desk claimed or checkout pending"
// @Security BearerAuth
// @Router /sessions/checkin [post]
func (h *sessionHandler) checkin(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	session, err := h.sessionService.Checkin(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to check in")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Checked in",
		slog.String("session_id", session.SessionID), slog.Bool("opening", session.IsOpening))
	c.JSON(http.StatusCreated, dto.ToWorkSessionResponse(session))
}

// checkout godoc
// @Summary Check out of the linked desk
// @Description Opens a checkout for the open checkin. At the opening desk the checkout stays open
// @Description until its balance checks are confirmed.
// @Tags sessions
// @Produce  json
// @Success 201 {object} dto.WorkSessionResponse
// @Failure 409 {object} map[string]string "No open checkin or checkout already pending"
// @Security BearerAuth
// @Router /sessions/checkout [post]
func (h *sessionHandler) checkout(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	session, err := h.sessionService.Checkout(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to check out")
		return
	}
	c.JSON(http.StatusCreated, dto.ToWorkSessionResponse(session))
}

// listOpen godoc
// @Summary List the caller's open sessions
// @Tags sessions
// @Produce  json
// @Success 200 {array} dto.WorkSessionResponse
// @Security BearerAuth
// @Router /sessions/open [get]
func (h *sessionHandler) listOpen(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sessions, err := h.sessionService.ListOpenSessions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list open sessions")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkSessionResponses(sessions))
}

// getSession godoc
// @Summary Get a work session
// @Tags sessions
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.WorkSessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Security BearerAuth
// @Router /sessions/{sessionID} [get]
func (h *sessionHandler) getSession(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to get session")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkSessionResponse(session))
}

// startChecks godoc
// @Summary Start the balance check of a session
// @Description Creates one check per currency accepted by the desk's workcenter, snapshotting
// @Description the system balance.
// @Tags reconciliation
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 201 {array} dto.BalanceCheckResponse
// @Failure 409 {object} map[string]string "Session cannot be reconciled"
// @Failure 403 {object} map[string]string "Session belongs to another user"
// @Security BearerAuth
// @Router /sessions/{sessionID}/reconciliation/start [post]
func (h *sessionHandler) startChecks(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	checks, err := h.reconciliationService.Start(c.Request.Context(), userID, c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to start balance checks")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBalanceCheckResponses(checks))
}

// listChecks godoc
// @Summary List the balance checks of a session
// @Tags reconciliation
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {array} dto.BalanceCheckResponse
// @Security BearerAuth
// @Router /sessions/{sessionID}/reconciliation/checks [get]
func (h *sessionHandler) listChecks(c *gin.Context) {
	checks, err := h.reconciliationService.ListChecks(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to list balance checks")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceCheckResponses(checks))
}

// recordCount godoc
// @Summary Record the physical count of a currency
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   currencyCode path string true "Currency code"
// @Param   count body dto.RecordCountRequest true "Physical count"
// @Success 200 {object} dto.BalanceCheckResponse
// @Failure 400 {object} map[string]string "Negative count"
// @Failure 409 {object} map[string]string "Check already confirmed"
// @Failure 404 {object} map[string]string "No check for the currency"
// @Security BearerAuth
// @Router /sessions/{sessionID}/reconciliation/counts/{currencyCode} [put]
func (h *sessionHandler) recordCount(c *gin.Context) {
	var req dto.RecordCountRequest
	if !bindJSON(c, &req, "RecordPhysicalCount") {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	check, err := h.reconciliationService.RecordPhysicalCount(c.Request.Context(), userID,
		c.Param("sessionID"), c.Param("currencyCode"), req.PhysicalBalance)
	if err != nil {
		respondError(c, err, "Failed to record physical count")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceCheckResponse(check))
}

// searchDifference godoc
// @Summary Compute differences without committing them
// @Description Confirms checks without difference. Checks with a difference stay open for a recount.
// @Tags reconciliation
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {array} dto.BalanceCheckResponse
// @Security BearerAuth
// @Router /sessions/{sessionID}/reconciliation/search-difference [post]
func (h *sessionHandler) searchDifference(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	checks, err := h.reconciliationService.SearchDifference(c.Request.Context(), userID, c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to search differences")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceCheckResponses(checks))
}

// confirm godoc
// @Summary Confirm the counted balances
// @Description Overwrites the ledger with the physical counts and records any shrinkage.
// @Tags reconciliation
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {array} dto.BalanceCheckResponse
// @Security BearerAuth
// @Router /sessions/{sessionID}/reconciliation/confirm [post]
func (h *sessionHandler) confirm(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	checks, err := h.reconciliationService.Confirm(c.Request.Context(), userID, c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to confirm balance checks")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceCheckResponses(checks))
}

// attachNote godoc
// @Summary Attach a note to a balance check
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   checkID path string true "Check ID"
// @Param   note body dto.AttachNoteRequest true "Note"
// @Success 200 {object} dto.BalanceCheckResponse
// @Failure 403 {object} map[string]string "Check belongs to another user"
// @Security BearerAuth
// @Router /balance-checks/{checkID}/note [post]
func (h *sessionHandler) attachNote(c *gin.Context) {
	var req dto.AttachNoteRequest
	if !bindJSON(c, &req, "AttachNote") {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	check, err := h.reconciliationService.AttachNote(c.Request.Context(), userID, c.Param("checkID"), req.Note)
	if err != nil {
		respondError(c, err, "Failed to attach note")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceCheckResponse(check))
}
