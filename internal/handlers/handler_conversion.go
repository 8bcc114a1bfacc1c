package handlers

import (
	"errors"
	"net/http"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/dto"
	"github.com/gin-gonic/gin"
)

type conversionHandler struct {
	conversionService portssvc.ConversionSvc
	deskService       portssvc.DeskSvc
}

func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvc, deskService portssvc.DeskSvc) {
	h := &conversionHandler{conversionService: conversionService, deskService: deskService}
	rg.POST("/conversions/quote", h.quote)
}

// quote godoc
// @Summary Quote a conversion line
// @Description Resolves amounts payable with accepted denominations on both legs. When the
// @Description anchor amount is not payable and no rounding is given, both alternatives are returned.
// @Description Callers linked to a desk also get an advisory availability snapshot.
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   line body dto.ConversionLineRequest true "Conversion line"
// @Success 200 {object} domain.ConversionResult
// @Failure 400 {object} map[string]string "Invalid line"
// @Failure 422 {object} map[string]string "Amounts did not converge"
// @Failure 502 {object} map[string]string "Rate source unavailable"
// @Security BearerAuth
// @Router /conversions/quote [post]
func (h *conversionHandler) quote(c *gin.Context) {
	var req dto.ConversionLineRequest
	if !bindJSON(c, &req, "QuoteConversion") {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	deskID := ""
	link, err := h.deskService.CurrentDesk(c.Request.Context(), userID)
	switch {
	case err == nil:
		deskID = link.DeskID
	case !errors.Is(err, apperrors.ErrNotFound):
		respondError(c, err, "Failed to quote conversion")
		return
	}

	result, err := h.conversionService.Quote(c.Request.Context(), req.ToDomain(), deskID)
	if err != nil {
		respondError(c, err, "Failed to quote conversion")
		return
	}
	c.JSON(http.StatusOK, result)
}
