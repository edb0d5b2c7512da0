package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pricing-service/internal/events"
	"pricing-service/internal/models"
	"pricing-service/internal/repository"
	"pricing-service/internal/services"

	"gorm.io/gorm"
)

// CurrencyHandler handles currency conversion and admin requests
type CurrencyHandler struct {
	service *services.CurrencyService
	repo    repository.CurrencyRepositoryInterface
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(service *services.CurrencyService, repo repository.CurrencyRepositoryInterface) *CurrencyHandler {
	return &CurrencyHandler{
		service: service,
		repo:    repo,
	}
}

// Convert handles POST /api/v1/currency/convert
func (h *CurrencyHandler) Convert(c *gin.Context) {
	var req models.ConvertCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	req.From = strings.ToUpper(req.From)
	req.To = strings.ToUpper(req.To)

	response, err := h.service.Convert(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Currency not found",
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to convert currency",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ==================== Currency CRUD ====================

// ListCurrencies handles GET /api/v1/currencies
func (h *CurrencyHandler) ListCurrencies(c *gin.Context) {
	currencies, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list currencies",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, currencies)
}

// GetCurrency handles GET /api/v1/currencies/:code
func (h *CurrencyHandler) GetCurrency(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	currency, err := h.repo.GetByCode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Currency not found",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, currency)
}

// CreateCurrency handles POST /api/v1/currencies
func (h *CurrencyHandler) CreateCurrency(c *gin.Context) {
	var currency models.Currency
	if err := c.ShouldBindJSON(&currency); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	currency.Code = strings.ToUpper(currency.Code)
	if err := h.repo.Create(c.Request.Context(), &currency); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create currency",
			"message": err.Error(),
		})
		return
	}

	events.GetPublisher().Publish(events.SubjectCurrencyUpdated, events.ConfigEvent{
		EntityID: currency.ID.String(),
		Code:     currency.Code,
	})
	c.JSON(http.StatusCreated, currency)
}

// UpdateCurrency handles PUT /api/v1/currencies/:code
func (h *CurrencyHandler) UpdateCurrency(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	existing, err := h.repo.GetByCode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Currency not found",
			"message": err.Error(),
		})
		return
	}

	var currency models.Currency
	if err := c.ShouldBindJSON(&currency); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	currency.ID = existing.ID
	currency.Code = code
	// Base status only changes through the dedicated base endpoint, which
	// runs the unset-then-set transaction. The base currency keeps rate 1.
	currency.IsBase = existing.IsBase
	if existing.IsBase {
		currency.ExchangeRate = 1
	}
	if err := h.repo.Update(c.Request.Context(), &currency); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update currency",
			"message": err.Error(),
		})
		return
	}

	events.GetPublisher().Publish(events.SubjectCurrencyUpdated, events.ConfigEvent{
		EntityID: currency.ID.String(),
		Code:     currency.Code,
	})
	c.JSON(http.StatusOK, currency)
}

// DeleteCurrency handles DELETE /api/v1/currencies/:code
func (h *CurrencyHandler) DeleteCurrency(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	currency, err := h.repo.GetByCode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Currency not found",
			"message": err.Error(),
		})
		return
	}
	if currency.IsBase {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": "the base currency cannot be deactivated",
		})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete currency",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Currency deleted successfully"})
}

// SetBaseCurrency handles POST /api/v1/currencies/:code/base
func (h *CurrencyHandler) SetBaseCurrency(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	currency, err := h.repo.SetBase(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Currency not found",
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to set base currency",
			"message": err.Error(),
		})
		return
	}

	events.GetPublisher().Publish(events.SubjectBaseChanged, events.ConfigEvent{
		EntityID: currency.ID.String(),
		Code:     currency.Code,
	})
	c.JSON(http.StatusOK, currency)
}
