package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/siperka/siperka_backend/internal/apperrors"
	portssvc "github.com/siperka/siperka_backend/internal/core/ports/services"
	"github.com/siperka/siperka_backend/internal/dto"
	"github.com/siperka/siperka_backend/internal/middleware"
)

// estimationHandler handles HTTP requests related to cost estimations.
type estimationHandler struct {
	estimationService portssvc.EstimationSvcFacade
}

// newEstimationHandler creates a new estimationHandler.
func newEstimationHandler(es portssvc.EstimationSvcFacade) *estimationHandler {
	return &estimationHandler{
		estimationService: es,
	}
}

// registerEstimationRoutes registers routes related to cost estimations.
func registerEstimationRoutes(rg *gin.RouterGroup, estimationService portssvc.EstimationSvcFacade) {
	h := newEstimationHandler(estimationService)

	estimations := rg.Group("/estimations")
	{
		estimations.POST("/calculate", h.calculateEstimation)
		estimations.POST("", h.saveEstimation)
		estimations.GET("", h.listEstimations)
	}
}

// calculateEstimation godoc
// @Summary Estimate the present-day cost of a product
// @Description Normalizes every historical purchase of the product to the current exchange rate and averages them
// @Tags estimations
// @Accept json
// @Produce json
// @Param request body dto.CalculateEstimationRequest true "Product to estimate"
// @Success 200 {object} dto.EstimationResponse
// @Failure 400 {object} map[string]string "Missing product name"
// @Failure 404 {object} map[string]string "No procurement history for the product"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Security BearerAuth
// @Router /estimations/calculate [post]
func (h *estimationHandler) calculateEstimation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CalculateEstimationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for calculateEstimation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	estimation, err := h.estimationService.EstimateProductCost(c.Request.Context(), req.ProductName)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("No procurement history", slog.String("product_name", req.ProductName))
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, apperrors.ErrRateUnavailable):
			logger.Error("Rate unavailable during estimation", slog.String("product_name", req.ProductName))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate is currently unavailable"})
		default:
			logger.Error("Failed to estimate product cost", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to estimate product cost"})
		}
		return
	}

	logger.Info("Estimation computed",
		slog.String("product_name", req.ProductName),
		slog.Int("record_count", estimation.RecordCount))
	c.JSON(http.StatusOK, dto.ToEstimationResponse(estimation))
}

// saveEstimation godoc
// @Summary Save a computed estimation to the history
// @Tags estimations
// @Accept json
// @Produce json
// @Param request body dto.SaveEstimationRequest true "Estimation to save"
// @Success 201 {object} dto.EstimationRecordResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /estimations [post]
func (h *estimationHandler) saveEstimation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveEstimationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for saveEstimation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.estimationService.SaveEstimation(c.Request.Context(), req.ProductName, req.EstimatedPrice, req.Rate, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to save estimation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save estimation"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToEstimationRecordResponse(record))
}

// listEstimations godoc
// @Summary List saved estimations
// @Tags estimations
// @Produce json
// @Param limit query int false "Maximum number of results (default 50)"
// @Success 200 {array} dto.EstimationRecordResponse
// @Security BearerAuth
// @Router /estimations [get]
func (h *estimationHandler) listEstimations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.estimationService.ListEstimations(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to list estimations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list estimations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListEstimationRecordResponse(records))
}
