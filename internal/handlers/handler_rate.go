package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siperka/siperka_backend/internal/apperrors"
	portssvc "github.com/siperka/siperka_backend/internal/core/ports/services"
	"github.com/siperka/siperka_backend/internal/dto"
	"github.com/siperka/siperka_backend/internal/middleware"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{
		rateService: rs,
	}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade, updateLimiter gin.HandlerFunc) {
	h := newRateHandler(rateService)

	ratesGroup := rg.Group("/rates")
	{
		ratesGroup.GET("/current", h.getCurrentRate)
		ratesGroup.PUT("/current", updateLimiter, h.updateRate)
		ratesGroup.GET("/:date", h.getRateForDate)
	}
}

// getCurrentRate godoc
// @Summary Get the current USD->IDR rate
// @Description Resolves the current rate through cache, live providers and the persisted record, in that order
// @Tags rates
// @Produce json
// @Param refresh query bool false "Skip the cache short-circuit"
// @Success 200 {object} dto.RateResponse
// @Failure 503 {object} map[string]string "Every rate source exhausted"
// @Security BearerAuth
// @Router /rates/current [get]
func (h *rateHandler) getCurrentRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	forceRefresh := c.Query("refresh") == "true"

	quote, err := h.rateService.GetCurrentRate(c.Request.Context(), forceRefresh)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			logger.Error("Current rate unavailable from all sources")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate is currently unavailable"})
			return
		}
		logger.Error("Failed to resolve current rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve current rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(quote))
}

// getRateForDate godoc
// @Summary Get the USD->IDR rate for a calendar date
// @Description Resolves the rate in effect on a past date; degrades to the current rate when no historical source answers
// @Tags rates
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.HistoricalRateResponse
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 503 {object} map[string]string "Every rate source exhausted"
// @Security BearerAuth
// @Router /rates/{date} [get]
func (h *rateHandler) getRateForDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	date := c.Param("date")

	quote, err := h.rateService.GetRateForDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid date for rate lookup", slog.String("date", date))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			logger.Error("Rate unavailable for date", slog.String("date", date))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate is currently unavailable"})
			return
		}
		logger.Error("Failed to resolve rate for date", slog.String("date", date), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve rate for date"})
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoricalRateResponse(quote))
}

// updateRate godoc
// @Summary Manually override the current rate
// @Description Persists an administrator-supplied rate; wins over cached and live values until the next refresh
// @Tags rates
// @Accept json
// @Produce json
// @Param rate body dto.UpdateRateRequest true "New rate value"
// @Success 200 {object} dto.RateRecordResponse
// @Failure 400 {object} map[string]string "Invalid rate value"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to persist the override"
// @Security BearerAuth
// @Router /rates/current [put]
func (h *rateHandler) updateRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.rateService.UpdateRateManually(c.Request.Context(), req.Value, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rate"})
		return
	}

	logger.Info("Rate updated manually", slog.Float64("value", record.Value))
	c.JSON(http.StatusOK, dto.ToRateRecordResponse(record))
}
