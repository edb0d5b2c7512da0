package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"pricing-service/internal/models"
	"pricing-service/internal/repository"
)

// TaxCalculator handles tax calculation logic
type TaxCalculator struct {
	repo repository.TaxRepositoryInterface
}

// NewTaxCalculator creates a new tax calculator
func NewTaxCalculator(repo repository.TaxRepositoryInterface) *TaxCalculator {
	return &TaxCalculator{repo: repo}
}

// CalculateTax selects the rates applicable to the address and accumulates
// tax by ascending priority group. The taxable base is always the subtotal;
// a compound rate additionally bases itself on the tax accumulated by
// earlier groups. No matching rate yields a zero result, never an error.
func (c *TaxCalculator) CalculateTax(ctx context.Context, req models.CalculateTaxRequest) (*models.CalculateTaxResponse, error) {
	rates, err := c.repo.GetRatesForCountry(ctx, req.Country)
	if err != nil {
		return nil, fmt.Errorf("failed to load tax rates: %w", err)
	}

	matched := MatchRates(rates, req.State, req.Postcode, req.City)
	return AccumulateTax(matched, *req.Subtotal, req.ShippingTotal), nil
}

// MatchRates filters a country's rates against the address using three
// explicit specificity tiers: exact (each field the given value or "*"),
// country+state only, and country only. A rate is included when it
// satisfies any tier. Overlapping configuration rows are deliberately not
// de-duplicated - every matching row participates in the calculation.
// Input order (priority, then sort order) is preserved.
func MatchRates(rates []models.TaxRate, state, postcode, city string) []models.TaxRate {
	w := models.TaxWildcard
	matched := make([]models.TaxRate, 0, len(rates))

	for _, rate := range rates {
		exact := (rate.State == state || rate.State == w) &&
			(rate.Postcode == postcode || rate.Postcode == w) &&
			(rate.City == city || rate.City == w)
		stateOnly := (rate.State == state || rate.State == w) &&
			rate.Postcode == w && rate.City == w
		countryOnly := rate.State == w && rate.Postcode == w && rate.City == w

		if exact || stateOnly || countryOnly {
			matched = append(matched, rate)
		}
	}

	return matched
}

// AccumulateTax applies matched rates grouped by ascending priority. Each
// per-rate amount is rounded to the nearest integer independently, so the
// total is a sum of rounded parts rather than a round of the sum - the
// reproducible behavior the storefront displays.
func AccumulateTax(rates []models.TaxRate, subtotal, shippingTotal float64) *models.CalculateTaxResponse {
	response := &models.CalculateTaxResponse{
		Rates:     []models.AppliedRate{},
		Breakdown: []models.TaxLine{},
	}
	if len(rates) == 0 {
		return response
	}

	groups := make(map[int][]models.TaxRate)
	priorities := make([]int, 0)
	for _, rate := range rates {
		if _, seen := groups[rate.Priority]; !seen {
			priorities = append(priorities, rate.Priority)
		}
		groups[rate.Priority] = append(groups[rate.Priority], rate)
	}
	sort.Ints(priorities)

	taxableAmount := subtotal
	var taxTotal float64

	for _, priority := range priorities {
		group := groups[priority]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Order < group[j].Order
		})

		for _, rate := range group {
			base := taxableAmount
			if rate.Compound {
				base += taxTotal
			}

			amount := math.Round(base * rate.Rate / 100)
			if rate.Shipping && shippingTotal > 0 {
				amount += math.Round(shippingTotal * rate.Rate / 100)
			}

			taxTotal += amount
			response.Rates = append(response.Rates, models.AppliedRate{
				ID:   rate.ID,
				Name: rate.Name,
				Rate: rate.Rate,
			})
			response.Breakdown = append(response.Breakdown, models.TaxLine{
				Name:     rate.Name,
				Rate:     rate.Rate,
				Amount:   amount,
				Compound: rate.Compound,
			})
		}
	}

	response.TaxTotal = taxTotal
	return response
}
