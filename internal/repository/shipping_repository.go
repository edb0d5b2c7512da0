package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pricing-service/internal/models"

	"gorm.io/gorm"
)

// Cache TTL constants for shipping configuration
const (
	ZoneCacheTTL = 15 * time.Minute
	zoneCacheKey = "pricing:shipping:zones"
)

// ShippingRepositoryInterface abstracts shipping configuration storage
type ShippingRepositoryInterface interface {
	ListActiveZones(ctx context.Context) ([]models.ShippingZone, error)
	ListZones(ctx context.Context) ([]models.ShippingZone, error)
	GetZone(ctx context.Context, zoneID uuid.UUID) (*models.ShippingZone, error)
	CreateZone(ctx context.Context, zone *models.ShippingZone) error
	UpdateZone(ctx context.Context, zone *models.ShippingZone) error
	DeleteZone(ctx context.Context, zoneID uuid.UUID) error
	CreateLocation(ctx context.Context, location *models.ShippingLocation) error
	DeleteLocation(ctx context.Context, locationID uuid.UUID) error
	ListMethods(ctx context.Context, zoneID uuid.UUID) ([]models.ShippingMethod, error)
	CreateMethod(ctx context.Context, method *models.ShippingMethod) error
	UpdateMethod(ctx context.Context, method *models.ShippingMethod) error
	DeleteMethod(ctx context.Context, methodID uuid.UUID) error
}

// ShippingRepository handles shipping zone data operations
type ShippingRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

// Ensure ShippingRepository implements the interface
var _ ShippingRepositoryInterface = (*ShippingRepository)(nil)

// NewShippingRepository creates a new shipping repository
func NewShippingRepository(db *gorm.DB, redisClient *redis.Client) *ShippingRepository {
	return &ShippingRepository{
		db:    db,
		redis: redisClient,
	}
}

// invalidateZoneCache drops the cached zone list after any config write
func (r *ShippingRepository) invalidateZoneCache(ctx context.Context) {
	if r.redis == nil {
		return
	}
	_ = r.redis.Del(ctx, zoneCacheKey).Err()
}

// ListActiveZones loads every active zone with its locations and methods,
// sorted ascending by priority. This is the input the zone matcher expects.
func (r *ShippingRepository) ListActiveZones(ctx context.Context) ([]models.ShippingZone, error) {
	// Try cache first
	if r.redis != nil {
		val, err := r.redis.Get(ctx, zoneCacheKey).Result()
		if err == nil {
			var zones []models.ShippingZone
			if err := json.Unmarshal([]byte(val), &zones); err == nil {
				return zones, nil
			}
		}
	}

	var zones []models.ShippingZone
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Preload("Locations").
		Preload("Methods", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = true").Order("position ASC")
		}).
		Order("priority ASC").
		Find(&zones).Error
	if err != nil {
		return nil, err
	}

	// Cache the result
	if r.redis != nil {
		if data, marshalErr := json.Marshal(zones); marshalErr == nil {
			r.redis.Set(ctx, zoneCacheKey, data, ZoneCacheTTL)
		}
	}

	return zones, nil
}

// ListZones lists all zones for the admin surface, inactive included
func (r *ShippingRepository) ListZones(ctx context.Context) ([]models.ShippingZone, error) {
	var zones []models.ShippingZone
	err := r.db.WithContext(ctx).
		Preload("Locations").
		Preload("Methods").
		Order("priority ASC").
		Find(&zones).Error
	return zones, err
}

// GetZone gets a zone by ID with its locations and methods
func (r *ShippingRepository) GetZone(ctx context.Context, zoneID uuid.UUID) (*models.ShippingZone, error) {
	var zone models.ShippingZone
	err := r.db.WithContext(ctx).
		Preload("Locations").
		Preload("Methods").
		First(&zone, "id = ?", zoneID).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

// CreateZone creates a new shipping zone
func (r *ShippingRepository) CreateZone(ctx context.Context, zone *models.ShippingZone) error {
	err := r.db.WithContext(ctx).Create(zone).Error
	if err == nil {
		r.invalidateZoneCache(ctx)
	}
	return err
}

// UpdateZone updates a shipping zone
func (r *ShippingRepository) UpdateZone(ctx context.Context, zone *models.ShippingZone) error {
	zone.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Save(zone).Error
	if err == nil {
		r.invalidateZoneCache(ctx)
	}
	return err
}

// DeleteZone soft deletes a zone (marks as inactive). Inactive zones are
// never loaded for matching, so their locations and methods drop out with
// them.
func (r *ShippingRepository) DeleteZone(ctx context.Context, zoneID uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&models.ShippingZone{}).
		Where("id = ?", zoneID).
		Update("is_active", false).Error
	if err == nil {
		r.invalidateZoneCache(ctx)
	}
	return err
}

// CreateLocation adds a matching rule to a zone
func (r *ShippingRepository) CreateLocation(ctx context.Context, location *models.ShippingLocation) error {
	err := r.db.WithContext(ctx).Create(location).Error
	if err == nil {
		r.invalidateZoneCache(ctx)
	}
	return err
}

// DeleteLocation removes a matching rule
func (r *ShippingRepository) DeleteLocation(ctx context.Context, locationID uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&models.ShippingLocation{}, "id = ?", locationID).Error
	if err == nil {
		r.invalidateZoneCache(ctx)
	}
	return err
}

// ListMethods lists all methods for a zone, display order first
func (r *ShippingRepository) ListMethods(ctx context.Context, zoneID uuid.UUID) ([]models.ShippingMethod, error) {
	var methods []models.ShippingMethod
	err := r.db.WithContext(ctx).
		Where("zone_id = ?", zoneID).
		Order("position ASC").
		Find(&methods).Error
	return methods, err
}

// CreateMethod adds a method to a zone
func (r *ShippingRepository) CreateMethod(ctx context.Context, method *models.ShippingMethod) error {
	err := r.db.WithContext(ctx).Create(method).Error
	if err == nil {
		r.invalidateZoneCache(ctx)
	}
	return err
}

// UpdateMethod updates a shipping method
func (r *ShippingRepository) UpdateMethod(ctx context.Context, method *models.ShippingMethod) error {
	method.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Save(method).Error
	if err == nil {
		r.invalidateZoneCache(ctx)
	}
	return err
}

// DeleteMethod soft deletes a shipping method
func (r *ShippingRepository) DeleteMethod(ctx context.Context, methodID uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&models.ShippingMethod{}).
		Where("id = ?", methodID).
		Update("is_active", false).Error
	if err == nil {
		r.invalidateZoneCache(ctx)
	}
	return err
}
