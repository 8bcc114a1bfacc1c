package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/dto"
	"github.com/SscSPs/forexdesk/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies and their rates.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
	rateService     portssvc.RateSvc
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade, rs portssvc.RateSvc) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
		rateService:     rs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade, rateService portssvc.RateSvc) {
	h := newCurrencyHandler(currencyService, rateService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", middleware.RequireAdmin(), h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrencyByCode)
	}
	rg.GET("/rates/:source/:target", h.getRates)
}

// createCurrency godoc
// @Summary Create a new currency
// @Description Adds a currency with its accepted denominations (admin operation)
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 409 {object} map[string]string "Currency code or base currency already exists"
// @Failure 500 {object} map[string]string "Failed to create currency"
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	var req dto.CreateCurrencyRequest
	if !bindJSON(c, &req, "CreateCurrency") {
		return
	}
	creatorUserID, ok := currentUser(c)
	if !ok {
		return
	}

	createdCurrency, err := h.currencyService.CreateCurrency(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create currency")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Currency created successfully",
		slog.String("currency_code", createdCurrency.CurrencyCode))
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(createdCurrency))
}

// getCurrencyByCode godoc
// @Summary Get a currency by code
// @Description Retrieves a currency and its denominations by its 3-letter code
// @Tags currencies
// @Produce  json
// @Param   code path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 500 {object} map[string]string "Failed to retrieve currency"
// @Security BearerAuth
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	currencyCode := c.Param("code")
	if len(currencyCode) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency code must be 3 letters"})
		return
	}

	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), currencyCode)
	if err != nil {
		respondError(c, err, "Failed to retrieve currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List all currencies
// @Description Retrieves a list of all available currencies
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Failure 500 {object} map[string]string "Failed to list currencies"
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list currencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// getRates godoc
// @Summary Quote buy, sell and base rates
// @Description Prices a pair in which exactly one side is the base currency
// @Tags rates
// @Produce  json
// @Param   source path string true "Source currency"
// @Param   target path string true "Target currency"
// @Param   discount query int false "Discount tier"
// @Success 200 {object} dto.RateQuoteResponse
// @Failure 400 {object} map[string]string "Identical currencies, cross conversion or invalid discount"
// @Failure 502 {object} map[string]string "Rate source unavailable"
// @Security BearerAuth
// @Router /rates/{source}/{target} [get]
func (h *currencyHandler) getRates(c *gin.Context) {
	discount := 0
	if raw := c.Query("discount"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, apperrors.ErrValidation, "Invalid discount")
			return
		}
		discount = d
	}

	quote, err := h.rateService.GetRates(c.Request.Context(), c.Param("source"), c.Param("target"), discount)
	if err != nil {
		respondError(c, err, "Failed to quote rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToRateQuoteResponse(quote))
}
