package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pricing-service/internal/events"
	"pricing-service/internal/models"
	"pricing-service/internal/repository"
	"pricing-service/internal/services"
)

// TaxHandler handles tax calculation and rate admin requests
type TaxHandler struct {
	calculator *services.TaxCalculator
	repo       repository.TaxRepositoryInterface
}

// NewTaxHandler creates a new tax handler
func NewTaxHandler(calculator *services.TaxCalculator, repo repository.TaxRepositoryInterface) *TaxHandler {
	return &TaxHandler{
		calculator: calculator,
		repo:       repo,
	}
}

// CalculateTax handles POST /api/v1/tax/calculate
func (h *TaxHandler) CalculateTax(c *gin.Context) {
	var req models.CalculateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	response, err := h.calculator.CalculateTax(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to calculate tax",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ==================== Tax Rate CRUD ====================

// ListRates handles GET /api/v1/rates
func (h *TaxHandler) ListRates(c *gin.Context) {
	rates, err := h.repo.ListRates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list tax rates",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, rates)
}

// GetRate handles GET /api/v1/rates/:id
func (h *TaxHandler) GetRate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid rate ID",
			"message": err.Error(),
		})
		return
	}

	rate, err := h.repo.GetRate(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Tax rate not found",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, rate)
}

// CreateRate handles POST /api/v1/rates
func (h *TaxHandler) CreateRate(c *gin.Context) {
	var rate models.TaxRate
	if err := c.ShouldBindJSON(&rate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}
	if rate.Country == "" || rate.Country == models.TaxWildcard {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": "country must be a specific country code",
		})
		return
	}

	if err := h.repo.CreateRate(c.Request.Context(), &rate); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create tax rate",
			"message": err.Error(),
		})
		return
	}

	events.GetPublisher().Publish(events.SubjectRateCreated, events.ConfigEvent{
		EntityID: rate.ID.String(),
		Name:     rate.Name,
	})
	c.JSON(http.StatusCreated, rate)
}

// UpdateRate handles PUT /api/v1/rates/:id
func (h *TaxHandler) UpdateRate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid rate ID",
			"message": err.Error(),
		})
		return
	}

	var rate models.TaxRate
	if err := c.ShouldBindJSON(&rate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}
	if rate.Country == "" || rate.Country == models.TaxWildcard {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": "country must be a specific country code",
		})
		return
	}

	rate.ID = id
	if err := h.repo.UpdateRate(c.Request.Context(), &rate); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update tax rate",
			"message": err.Error(),
		})
		return
	}

	events.GetPublisher().Publish(events.SubjectRateUpdated, events.ConfigEvent{
		EntityID: rate.ID.String(),
		Name:     rate.Name,
	})
	c.JSON(http.StatusOK, rate)
}

// DeleteRate handles DELETE /api/v1/rates/:id
func (h *TaxHandler) DeleteRate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid rate ID",
			"message": err.Error(),
		})
		return
	}

	if err := h.repo.DeleteRate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete tax rate",
			"message": err.Error(),
		})
		return
	}

	events.GetPublisher().Publish(events.SubjectRateDeleted, events.ConfigEvent{
		EntityID: id.String(),
	})
	c.JSON(http.StatusOK, gin.H{"message": "Tax rate deleted successfully"})
}
