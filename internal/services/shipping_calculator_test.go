package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pricing-service/internal/models"
	"pricing-service/internal/repository"
)

// MockShippingRepository is a mock implementation of ShippingRepositoryInterface
type MockShippingRepository struct {
	mock.Mock
}

var _ repository.ShippingRepositoryInterface = (*MockShippingRepository)(nil)

func (m *MockShippingRepository) ListActiveZones(ctx context.Context) ([]models.ShippingZone, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ShippingZone), args.Error(1)
}

func (m *MockShippingRepository) ListZones(ctx context.Context) ([]models.ShippingZone, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ShippingZone), args.Error(1)
}

func (m *MockShippingRepository) GetZone(ctx context.Context, zoneID uuid.UUID) (*models.ShippingZone, error) {
	args := m.Called(ctx, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShippingZone), args.Error(1)
}

func (m *MockShippingRepository) CreateZone(ctx context.Context, zone *models.ShippingZone) error {
	args := m.Called(ctx, zone)
	return args.Error(0)
}

func (m *MockShippingRepository) UpdateZone(ctx context.Context, zone *models.ShippingZone) error {
	args := m.Called(ctx, zone)
	return args.Error(0)
}

func (m *MockShippingRepository) DeleteZone(ctx context.Context, zoneID uuid.UUID) error {
	args := m.Called(ctx, zoneID)
	return args.Error(0)
}

func (m *MockShippingRepository) CreateLocation(ctx context.Context, location *models.ShippingLocation) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockShippingRepository) DeleteLocation(ctx context.Context, locationID uuid.UUID) error {
	args := m.Called(ctx, locationID)
	return args.Error(0)
}

func (m *MockShippingRepository) ListMethods(ctx context.Context, zoneID uuid.UUID) ([]models.ShippingMethod, error) {
	args := m.Called(ctx, zoneID)
	return args.Get(0).([]models.ShippingMethod), args.Error(1)
}

func (m *MockShippingRepository) CreateMethod(ctx context.Context, method *models.ShippingMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockShippingRepository) UpdateMethod(ctx context.Context, method *models.ShippingMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockShippingRepository) DeleteMethod(ctx context.Context, methodID uuid.UUID) error {
	args := m.Called(ctx, methodID)
	return args.Error(0)
}

func floatPtr(v float64) *float64 { return &v }

func method(title string, mt models.MethodType, cost float64, minAmount *float64, position int) models.ShippingMethod {
	return models.ShippingMethod{
		ID:        uuid.New(),
		Title:     title,
		Type:      mt,
		Cost:      cost,
		MinAmount: minAmount,
		Position:  position,
		IsActive:  true,
	}
}

// ===========================================
// AvailableMethods Tests
// ===========================================

func TestAvailableMethods_FreeShippingThreshold(t *testing.T) {
	z := zone("vietnam", 1)
	z.Methods = []models.ShippingMethod{
		method("Free shipping", models.MethodTypeFreeShipping, 30000, floatPtr(500000), 0),
	}

	// At the threshold: available, cost forced to zero
	quotes := AvailableMethods(&z, 500000)
	assert.Len(t, quotes, 1)
	assert.True(t, quotes[0].Available)
	assert.Equal(t, float64(0), quotes[0].Cost)

	// One under the threshold: unavailable, configured cost preserved
	quotes = AvailableMethods(&z, 499999)
	assert.Len(t, quotes, 1)
	assert.False(t, quotes[0].Available)
	assert.Equal(t, float64(30000), quotes[0].Cost)
	assert.NotEmpty(t, quotes[0].Reason)
}

func TestAvailableMethods_FreeShippingWithoutThreshold(t *testing.T) {
	z := zone("vietnam", 1)
	z.Methods = []models.ShippingMethod{
		method("Free shipping", models.MethodTypeFreeShipping, 30000, nil, 0),
	}

	quotes := AvailableMethods(&z, 0)
	assert.True(t, quotes[0].Available)
	assert.Equal(t, float64(0), quotes[0].Cost)
}

func TestAvailableMethods_FlatRateAlwaysAvailable(t *testing.T) {
	z := zone("vietnam", 1)
	z.Methods = []models.ShippingMethod{
		method("Standard", models.MethodTypeFlatRate, 25000, nil, 0),
	}

	for _, cartTotal := range []float64{0, 1, 999999999} {
		quotes := AvailableMethods(&z, cartTotal)
		assert.True(t, quotes[0].Available)
		assert.Equal(t, float64(25000), quotes[0].Cost)
	}
}

func TestAvailableMethods_FlatRateMinimumOrder(t *testing.T) {
	z := zone("vietnam", 1)
	z.Methods = []models.ShippingMethod{
		method("Express", models.MethodTypeFlatRate, 50000, floatPtr(100000), 0),
	}

	quotes := AvailableMethods(&z, 99999)
	assert.False(t, quotes[0].Available)
	assert.Equal(t, float64(50000), quotes[0].Cost)

	quotes = AvailableMethods(&z, 100000)
	assert.True(t, quotes[0].Available)
}

func TestAvailableMethods_MaxAmountNotEnforced(t *testing.T) {
	z := zone("vietnam", 1)
	m := method("Standard", models.MethodTypeFlatRate, 25000, nil, 0)
	m.MaxAmount = floatPtr(100)
	z.Methods = []models.ShippingMethod{m}

	quotes := AvailableMethods(&z, 1000000)
	assert.True(t, quotes[0].Available)
}

func TestAvailableMethods_PreservesPositionOrder(t *testing.T) {
	z := zone("vietnam", 1)
	z.Methods = []models.ShippingMethod{
		method("Standard", models.MethodTypeFlatRate, 25000, nil, 0),
		method("Express", models.MethodTypeFlatRate, 50000, nil, 1),
		method("Free shipping", models.MethodTypeFreeShipping, 0, floatPtr(500000), 2),
	}

	quotes := AvailableMethods(&z, 10000)

	assert.Len(t, quotes, 3)
	assert.Equal(t, "Standard", quotes[0].Title)
	assert.Equal(t, "Express", quotes[1].Title)
	assert.Equal(t, "Free shipping", quotes[2].Title)
}

func TestAvailableMethods_SkipsInactive(t *testing.T) {
	z := zone("vietnam", 1)
	inactive := method("Old method", models.MethodTypeFlatRate, 10000, nil, 0)
	inactive.IsActive = false
	z.Methods = []models.ShippingMethod{
		inactive,
		method("Standard", models.MethodTypeFlatRate, 25000, nil, 1),
	}

	quotes := AvailableMethods(&z, 10000)

	assert.Len(t, quotes, 1)
	assert.Equal(t, "Standard", quotes[0].Title)
}

// ===========================================
// CalculateShipping Tests
// ===========================================

func TestCalculateShipping_MatchedZone(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockShippingRepository)

	z := zone("vietnam", 1, loc(models.LocationTypeCountry, "VN"))
	z.Methods = []models.ShippingMethod{
		method("Standard", models.MethodTypeFlatRate, 25000, nil, 0),
	}
	mockRepo.On("ListActiveZones", ctx).Return([]models.ShippingZone{z}, nil)

	calculator := NewShippingCalculator(mockRepo, 3000)
	resp, err := calculator.CalculateShipping(ctx, models.CalculateShippingRequest{
		Country:   "VN",
		CartTotal: floatPtr(100000),
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp.Zone)
	assert.Equal(t, "vietnam", resp.Zone.Name)
	assert.Len(t, resp.Methods, 1)
	mockRepo.AssertExpectations(t)
}

func TestCalculateShipping_FallbackDefaultMethod(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockShippingRepository)
	mockRepo.On("ListActiveZones", ctx).Return([]models.ShippingZone{}, nil)

	calculator := NewShippingCalculator(mockRepo, 3000)
	resp, err := calculator.CalculateShipping(ctx, models.CalculateShippingRequest{
		Country:   "US",
		CartTotal: floatPtr(100000),
	})

	assert.NoError(t, err)
	assert.Nil(t, resp.Zone)
	assert.Len(t, resp.Methods, 1)
	assert.Equal(t, DefaultMethodID, resp.Methods[0].ID)
	assert.Equal(t, "Default shipping", resp.Methods[0].Title)
	assert.Equal(t, models.MethodTypeFlatRate, resp.Methods[0].Type)
	assert.Equal(t, float64(3000), resp.Methods[0].Cost)
	assert.True(t, resp.Methods[0].Available)
	mockRepo.AssertExpectations(t)
}
