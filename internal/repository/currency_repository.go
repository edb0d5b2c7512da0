package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pricing-service/internal/models"

	"gorm.io/gorm"
)

// Cache TTL constants for currency configuration
const (
	CurrencyCacheTTL  = 15 * time.Minute
	currencyKeyPrefix = "pricing:currency:"
)

// CurrencyRepositoryInterface abstracts currency storage
type CurrencyRepositoryInterface interface {
	GetByCode(ctx context.Context, code string) (*models.Currency, error)
	GetBase(ctx context.Context) (*models.Currency, error)
	ListActive(ctx context.Context) ([]models.Currency, error)
	ListAll(ctx context.Context) ([]models.Currency, error)
	Create(ctx context.Context, currency *models.Currency) error
	Update(ctx context.Context, currency *models.Currency) error
	Delete(ctx context.Context, code string) error
	SetBase(ctx context.Context, code string) (*models.Currency, error)
}

// CurrencyRepository handles currency data operations
type CurrencyRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

// Ensure CurrencyRepository implements the interface
var _ CurrencyRepositoryInterface = (*CurrencyRepository)(nil)

// NewCurrencyRepository creates a new currency repository
func NewCurrencyRepository(db *gorm.DB, redisClient *redis.Client) *CurrencyRepository {
	return &CurrencyRepository{
		db:    db,
		redis: redisClient,
	}
}

func currencyCacheKey(code string) string {
	return fmt.Sprintf("%scode:%s", currencyKeyPrefix, code)
}

// invalidateCurrencyCache drops a cached currency after a write
func (r *CurrencyRepository) invalidateCurrencyCache(ctx context.Context, codes ...string) {
	if r.redis == nil {
		return
	}
	for _, code := range codes {
		_ = r.redis.Del(ctx, currencyCacheKey(code)).Err()
	}
}

// GetByCode gets a currency by its uppercase ISO-like code
func (r *CurrencyRepository) GetByCode(ctx context.Context, code string) (*models.Currency, error) {
	// Try cache first
	if r.redis != nil {
		val, err := r.redis.Get(ctx, currencyCacheKey(code)).Result()
		if err == nil {
			var currency models.Currency
			if err := json.Unmarshal([]byte(val), &currency); err == nil {
				return &currency, nil
			}
		}
	}

	var currency models.Currency
	err := r.db.WithContext(ctx).First(&currency, "code = ?", code).Error
	if err != nil {
		return nil, err
	}

	// Cache the result
	if r.redis != nil {
		if data, marshalErr := json.Marshal(currency); marshalErr == nil {
			r.redis.Set(ctx, currencyCacheKey(code), data, CurrencyCacheTTL)
		}
	}

	return &currency, nil
}

// GetBase gets the currency currently flagged as base
func (r *CurrencyRepository) GetBase(ctx context.Context) (*models.Currency, error) {
	var currency models.Currency
	err := r.db.WithContext(ctx).First(&currency, "is_base = true").Error
	if err != nil {
		return nil, err
	}
	return &currency, nil
}

// ListActive lists active currencies in display order
func (r *CurrencyRepository) ListActive(ctx context.Context) ([]models.Currency, error) {
	var currencies []models.Currency
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("position ASC, code ASC").
		Find(&currencies).Error
	return currencies, err
}

// ListAll lists every currency for the admin surface
func (r *CurrencyRepository) ListAll(ctx context.Context) ([]models.Currency, error) {
	var currencies []models.Currency
	err := r.db.WithContext(ctx).
		Order("position ASC, code ASC").
		Find(&currencies).Error
	return currencies, err
}

// Create creates a new currency. When the new currency is flagged as base
// it goes through the same unset-then-set transaction as SetBase.
func (r *CurrencyRepository) Create(ctx context.Context, currency *models.Currency) error {
	if !currency.IsBase {
		return r.db.WithContext(ctx).Create(currency).Error
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Currency{}).
			Where("is_base = true").
			Update("is_base", false).Error; err != nil {
			return err
		}
		return tx.Create(currency).Error
	})
	if err == nil {
		r.invalidateAll(ctx)
	}
	return err
}

// Update updates a currency
func (r *CurrencyRepository) Update(ctx context.Context, currency *models.Currency) error {
	currency.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Save(currency).Error
	if err == nil {
		r.invalidateCurrencyCache(ctx, currency.Code)
	}
	return err
}

// Delete deactivates a currency by code
func (r *CurrencyRepository) Delete(ctx context.Context, code string) error {
	err := r.db.WithContext(ctx).Model(&models.Currency{}).
		Where("code = ?", code).
		Update("is_active", false).Error
	if err == nil {
		r.invalidateCurrencyCache(ctx, code)
	}
	return err
}

// SetBase flags one currency as base and unsets every other in a single
// transaction, so concurrent updates can never leave zero or two base
// currencies. A base currency converts 1:1, so its rate is pinned to 1.
func (r *CurrencyRepository) SetBase(ctx context.Context, code string) (*models.Currency, error) {
	var currency models.Currency

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&currency, "code = ?", code).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Currency{}).
			Where("is_base = true AND code <> ?", code).
			Update("is_base", false).Error; err != nil {
			return err
		}
		return tx.Model(&currency).
			Updates(map[string]interface{}{"is_base": true, "exchange_rate": 1.0}).Error
	})
	if err != nil {
		return nil, err
	}

	currency.IsBase = true
	currency.ExchangeRate = 1
	r.invalidateAll(ctx)
	return &currency, nil
}

// invalidateAll drops every cached currency entry. Base changes touch all
// codes, so a pattern scan is simpler than tracking individual keys.
func (r *CurrencyRepository) invalidateAll(ctx context.Context) {
	if r.redis == nil {
		return
	}
	iter := r.redis.Scan(ctx, 0, currencyKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		_ = r.redis.Del(ctx, iter.Val()).Err()
	}
}
