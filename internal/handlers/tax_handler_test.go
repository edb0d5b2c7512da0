package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pricing-service/internal/models"
	"pricing-service/internal/repository"
	"pricing-service/internal/services"
)

// MockTaxRepository is a mock implementation of TaxRepositoryInterface
type MockTaxRepository struct {
	mock.Mock
}

var _ repository.TaxRepositoryInterface = (*MockTaxRepository)(nil)

func (m *MockTaxRepository) GetRatesForCountry(ctx context.Context, country string) ([]models.TaxRate, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TaxRate), args.Error(1)
}

func (m *MockTaxRepository) ListRates(ctx context.Context) ([]models.TaxRate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.TaxRate), args.Error(1)
}

func (m *MockTaxRepository) GetRate(ctx context.Context, rateID uuid.UUID) (*models.TaxRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaxRate), args.Error(1)
}

func (m *MockTaxRepository) CreateRate(ctx context.Context, rate *models.TaxRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockTaxRepository) UpdateRate(ctx context.Context, rate *models.TaxRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockTaxRepository) DeleteRate(ctx context.Context, rateID uuid.UUID) error {
	args := m.Called(ctx, rateID)
	return args.Error(0)
}

// ===========================================
// Calculate Tax Handler Tests
// ===========================================

func TestCalculateTax_Handler_Success(t *testing.T) {
	mockRepo := new(MockTaxRepository)
	vat := models.TaxRate{
		ID:       uuid.New(),
		Name:     "VAT",
		Country:  "VN",
		State:    models.TaxWildcard,
		Postcode: models.TaxWildcard,
		City:     models.TaxWildcard,
		Rate:     10,
		Priority: 1,
		IsActive: true,
	}
	mockRepo.On("GetRatesForCountry", mock.Anything, "VN").Return([]models.TaxRate{vat}, nil)

	calculator := services.NewTaxCalculator(mockRepo)
	handler := NewTaxHandler(calculator, mockRepo)

	router := setupTestRouter()
	router.POST("/api/v1/tax/calculate", handler.CalculateTax)

	w := postJSON(router, "/api/v1/tax/calculate", map[string]interface{}{
		"country":       "VN",
		"subtotal":      100000,
		"shippingTotal": 20000,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.CalculateTaxResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(10000), response.TaxTotal)
	assert.Len(t, response.Rates, 1)
	assert.Len(t, response.Breakdown, 1)
	mockRepo.AssertExpectations(t)
}

func TestCalculateTax_Handler_NoRatesYieldsZero(t *testing.T) {
	mockRepo := new(MockTaxRepository)
	mockRepo.On("GetRatesForCountry", mock.Anything, "US").Return([]models.TaxRate{}, nil)

	calculator := services.NewTaxCalculator(mockRepo)
	handler := NewTaxHandler(calculator, mockRepo)

	router := setupTestRouter()
	router.POST("/api/v1/tax/calculate", handler.CalculateTax)

	w := postJSON(router, "/api/v1/tax/calculate", map[string]interface{}{
		"country":  "US",
		"subtotal": 100000,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.CalculateTaxResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(0), response.TaxTotal)
	assert.Empty(t, response.Rates)
	assert.Empty(t, response.Breakdown)
	mockRepo.AssertExpectations(t)
}

func TestCalculateTax_Handler_ZeroSubtotal(t *testing.T) {
	mockRepo := new(MockTaxRepository)
	vat := models.TaxRate{
		ID:       uuid.New(),
		Name:     "VAT",
		Country:  "VN",
		State:    models.TaxWildcard,
		Postcode: models.TaxWildcard,
		City:     models.TaxWildcard,
		Rate:     10,
		Priority: 1,
		IsActive: true,
	}
	mockRepo.On("GetRatesForCountry", mock.Anything, "VN").Return([]models.TaxRate{vat}, nil)

	calculator := services.NewTaxCalculator(mockRepo)
	handler := NewTaxHandler(calculator, mockRepo)

	router := setupTestRouter()
	router.POST("/api/v1/tax/calculate", handler.CalculateTax)

	// A zero subtotal is a legal calculation, not a missing field
	w := postJSON(router, "/api/v1/tax/calculate", map[string]interface{}{
		"country":  "VN",
		"subtotal": 0,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.CalculateTaxResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(0), response.TaxTotal)
	assert.Len(t, response.Breakdown, 1)
	mockRepo.AssertExpectations(t)
}

func TestCalculateTax_Handler_MissingSubtotal(t *testing.T) {
	mockRepo := new(MockTaxRepository)
	calculator := services.NewTaxCalculator(mockRepo)
	handler := NewTaxHandler(calculator, mockRepo)

	router := setupTestRouter()
	router.POST("/api/v1/tax/calculate", handler.CalculateTax)

	w := postJSON(router, "/api/v1/tax/calculate", map[string]interface{}{
		"country": "VN",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateTax_Handler_MissingCountry(t *testing.T) {
	mockRepo := new(MockTaxRepository)
	calculator := services.NewTaxCalculator(mockRepo)
	handler := NewTaxHandler(calculator, mockRepo)

	router := setupTestRouter()
	router.POST("/api/v1/tax/calculate", handler.CalculateTax)

	w := postJSON(router, "/api/v1/tax/calculate", map[string]interface{}{
		"subtotal": 100000,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Invalid request", response["error"])
}

// ===========================================
// Rate CRUD Handler Tests
// ===========================================

func TestCreateRate_Handler_Success(t *testing.T) {
	mockRepo := new(MockTaxRepository)
	mockRepo.On("CreateRate", mock.Anything, mock.AnythingOfType("*models.TaxRate")).Return(nil)

	calculator := services.NewTaxCalculator(mockRepo)
	handler := NewTaxHandler(calculator, mockRepo)

	router := setupTestRouter()
	router.POST("/api/v1/rates", handler.CreateRate)

	w := postJSON(router, "/api/v1/rates", map[string]interface{}{
		"name":     "VAT",
		"country":  "VN",
		"rate":     10,
		"priority": 1,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestCreateRate_Handler_RejectsWildcardCountry(t *testing.T) {
	mockRepo := new(MockTaxRepository)
	calculator := services.NewTaxCalculator(mockRepo)
	handler := NewTaxHandler(calculator, mockRepo)

	router := setupTestRouter()
	router.POST("/api/v1/rates", handler.CreateRate)

	// A wildcard country would never match any calculation
	w := postJSON(router, "/api/v1/rates", map[string]interface{}{
		"name":    "Everywhere",
		"country": "*",
		"rate":    10,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "country must be a specific country code", response["message"])
	mockRepo.AssertNotCalled(t, "CreateRate", mock.Anything, mock.Anything)
}

func TestDeleteRate_Handler_InvalidID(t *testing.T) {
	mockRepo := new(MockTaxRepository)
	calculator := services.NewTaxCalculator(mockRepo)
	handler := NewTaxHandler(calculator, mockRepo)

	router := setupTestRouter()
	router.DELETE("/api/v1/rates/:id", handler.DeleteRate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/v1/rates/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
