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

// ShippingHandler handles shipping calculation and zone admin requests
type ShippingHandler struct {
	calculator *services.ShippingCalculator
	repo       repository.ShippingRepositoryInterface
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(calculator *services.ShippingCalculator, repo repository.ShippingRepositoryInterface) *ShippingHandler {
	return &ShippingHandler{
		calculator: calculator,
		repo:       repo,
	}
}

// CalculateShipping handles POST /api/v1/shipping/calculate
func (h *ShippingHandler) CalculateShipping(c *gin.Context) {
	var req models.CalculateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	response, err := h.calculator.CalculateShipping(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to calculate shipping",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ==================== Zone CRUD ====================

// ListZones handles GET /api/v1/zones
func (h *ShippingHandler) ListZones(c *gin.Context) {
	zones, err := h.repo.ListZones(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list zones",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, zones)
}

// GetZone handles GET /api/v1/zones/:id
func (h *ShippingHandler) GetZone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid zone ID",
			"message": err.Error(),
		})
		return
	}

	zone, err := h.repo.GetZone(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Zone not found",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, zone)
}

// CreateZone handles POST /api/v1/zones
func (h *ShippingHandler) CreateZone(c *gin.Context) {
	var zone models.ShippingZone
	if err := c.ShouldBindJSON(&zone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	if err := h.repo.CreateZone(c.Request.Context(), &zone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create zone",
			"message": err.Error(),
		})
		return
	}

	events.GetPublisher().Publish(events.SubjectZoneCreated, events.ConfigEvent{
		EntityID: zone.ID.String(),
		Name:     zone.Name,
	})
	c.JSON(http.StatusCreated, zone)
}

// UpdateZone handles PUT /api/v1/zones/:id
func (h *ShippingHandler) UpdateZone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid zone ID",
			"message": err.Error(),
		})
		return
	}

	var zone models.ShippingZone
	if err := c.ShouldBindJSON(&zone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	zone.ID = id
	if err := h.repo.UpdateZone(c.Request.Context(), &zone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update zone",
			"message": err.Error(),
		})
		return
	}

	events.GetPublisher().Publish(events.SubjectZoneUpdated, events.ConfigEvent{
		EntityID: zone.ID.String(),
		Name:     zone.Name,
	})
	c.JSON(http.StatusOK, zone)
}

// DeleteZone handles DELETE /api/v1/zones/:id
func (h *ShippingHandler) DeleteZone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid zone ID",
			"message": err.Error(),
		})
		return
	}

	if err := h.repo.DeleteZone(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete zone",
			"message": err.Error(),
		})
		return
	}

	events.GetPublisher().Publish(events.SubjectZoneDeleted, events.ConfigEvent{
		EntityID: id.String(),
	})
	c.JSON(http.StatusOK, gin.H{"message": "Zone deleted successfully"})
}

// ==================== Location CRUD ====================

// CreateLocation handles POST /api/v1/zones/:id/locations
func (h *ShippingHandler) CreateLocation(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid zone ID",
			"message": err.Error(),
		})
		return
	}

	var req models.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	location := models.ShippingLocation{
		ZoneID: zoneID,
		Type:   req.Type,
		Code:   req.Code,
		Name:   req.Name,
	}
	if err := h.repo.CreateLocation(c.Request.Context(), &location); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create location",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, location)
}

// DeleteLocation handles DELETE /api/v1/locations/:id
func (h *ShippingHandler) DeleteLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid location ID",
			"message": err.Error(),
		})
		return
	}

	if err := h.repo.DeleteLocation(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete location",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}

// ==================== Method CRUD ====================

// ListMethods handles GET /api/v1/zones/:id/methods
func (h *ShippingHandler) ListMethods(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid zone ID",
			"message": err.Error(),
		})
		return
	}

	methods, err := h.repo.ListMethods(c.Request.Context(), zoneID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list methods",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, methods)
}

// CreateMethod handles POST /api/v1/zones/:id/methods
func (h *ShippingHandler) CreateMethod(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid zone ID",
			"message": err.Error(),
		})
		return
	}

	var method models.ShippingMethod
	if err := c.ShouldBindJSON(&method); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	method.ZoneID = zoneID
	if err := h.repo.CreateMethod(c.Request.Context(), &method); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create method",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, method)
}

// UpdateMethod handles PUT /api/v1/methods/:id
func (h *ShippingHandler) UpdateMethod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid method ID",
			"message": err.Error(),
		})
		return
	}

	var method models.ShippingMethod
	if err := c.ShouldBindJSON(&method); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	method.ID = id
	if err := h.repo.UpdateMethod(c.Request.Context(), &method); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update method",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, method)
}

// DeleteMethod handles DELETE /api/v1/methods/:id
func (h *ShippingHandler) DeleteMethod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid method ID",
			"message": err.Error(),
		})
		return
	}

	if err := h.repo.DeleteMethod(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete method",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Method deleted successfully"})
}
