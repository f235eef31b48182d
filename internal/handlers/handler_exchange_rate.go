package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/farruhbek/business_accounting_app/internal/core/ports/services"
	"github.com/farruhbek/business_accounting_app/internal/dto"
	"github.com/farruhbek/business_accounting_app/internal/middleware"
)

// exchangeRateHandler handles HTTP requests for exchange rates and one-off
// conversions.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	converter           portssvc.ConverterSvc
}

func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade, conv portssvc.ConverterSvc) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: ers, converter: conv}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, converter portssvc.ConverterSvc) {
	h := newExchangeRateHandler(exchangeRateService, converter)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.upsertExchangeRate)
		rates.GET("", h.listExchangeRates)
		rates.GET("/convert", h.convert)
	}
}

// upsertExchangeRate godoc
// @Summary Set the rate of a currency against the base
// @Tags exchange rates
// @Accept json
// @Produce json
// @Param rate body dto.UpsertExchangeRateRequest true "Rate details"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) upsertExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for upsertExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rate, err := h.exchangeRateService.UpsertRate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to upsert exchange rate")
		return
	}

	logger.Info("Exchange rate upserted", slog.String("currency_code", rate.CurrencyCode))
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List stored exchange rates
// @Tags exchange rates
// @Produce json
// @Success 200 {array} dto.ExchangeRateResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.exchangeRateService.ListRates(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponses(rates))
}

// convert godoc
// @Summary Convert an amount between two currency codes
// @Tags exchange rates
// @Produce json
// @Param from query string true "From currency code"
// @Param to query string true "To currency code"
// @Param amount query string true "Amount to convert"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	converted, err := h.converter.Convert(req.From, req.To, req.Amount)
	if err != nil {
		respondError(c, logger, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":      req.From,
		"to":        req.To,
		"amount":    req.Amount,
		"converted": converted,
	})
}
