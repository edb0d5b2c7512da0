package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pricing-service/internal/models"

	"gorm.io/gorm"
)

// TaxRepositoryInterface abstracts tax rate storage
type TaxRepositoryInterface interface {
	GetRatesForCountry(ctx context.Context, country string) ([]models.TaxRate, error)
	ListRates(ctx context.Context) ([]models.TaxRate, error)
	GetRate(ctx context.Context, rateID uuid.UUID) (*models.TaxRate, error)
	CreateRate(ctx context.Context, rate *models.TaxRate) error
	UpdateRate(ctx context.Context, rate *models.TaxRate) error
	DeleteRate(ctx context.Context, rateID uuid.UUID) error
}

// TaxRepository handles tax rate data operations
type TaxRepository struct {
	db *gorm.DB
}

// Ensure TaxRepository implements the interface
var _ TaxRepositoryInterface = (*TaxRepository)(nil)

// NewTaxRepository creates a new tax repository
func NewTaxRepository(db *gorm.DB) *TaxRepository {
	return &TaxRepository{db: db}
}

// GetRatesForCountry loads every active rate configured for a country,
// ordered by priority then sort order. The specificity matching against
// state/postcode/city happens in the calculator, where the tier rules
// stay explicit and testable.
func (r *TaxRepository) GetRatesForCountry(ctx context.Context, country string) ([]models.TaxRate, error) {
	var rates []models.TaxRate
	err := r.db.WithContext(ctx).
		Where("country = ? AND is_active = true", country).
		Order("priority ASC, sort_order ASC").
		Find(&rates).Error
	return rates, err
}

// ListRates lists all tax rates for the admin surface
func (r *TaxRepository) ListRates(ctx context.Context) ([]models.TaxRate, error) {
	var rates []models.TaxRate
	err := r.db.WithContext(ctx).
		Order("country ASC, priority ASC, sort_order ASC").
		Find(&rates).Error
	return rates, err
}

// GetRate gets a tax rate by ID
func (r *TaxRepository) GetRate(ctx context.Context, rateID uuid.UUID) (*models.TaxRate, error) {
	var rate models.TaxRate
	err := r.db.WithContext(ctx).First(&rate, "id = ?", rateID).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// CreateRate creates a new tax rate
func (r *TaxRepository) CreateRate(ctx context.Context, rate *models.TaxRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

// UpdateRate updates a tax rate
func (r *TaxRepository) UpdateRate(ctx context.Context, rate *models.TaxRate) error {
	rate.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(rate).Error
}

// DeleteRate soft deletes a tax rate (marks as inactive)
func (r *TaxRepository) DeleteRate(ctx context.Context, rateID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.TaxRate{}).
		Where("id = ?", rateID).
		Update("is_active", false).Error
}
