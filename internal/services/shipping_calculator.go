package services

import (
	"context"
	"fmt"

	"pricing-service/internal/models"
	"pricing-service/internal/repository"
)

// DefaultMethodID identifies the synthetic fallback method returned when
// no zone matches the destination address.
const DefaultMethodID = "default"

// ShippingCalculator resolves shipping options for a destination
type ShippingCalculator struct {
	repo        repository.ShippingRepositoryInterface
	defaultCost float64
}

// NewShippingCalculator creates a new shipping calculator. defaultCost is
// the flat cost of the fallback method used when no zone matches.
func NewShippingCalculator(repo repository.ShippingRepositoryInterface, defaultCost float64) *ShippingCalculator {
	return &ShippingCalculator{
		repo:        repo,
		defaultCost: defaultCost,
	}
}

// CalculateShipping matches the address to a zone and annotates that
// zone's methods against the cart total. Incomplete configuration is a
// defined fallback path, not an error - checkout never hard-fails here.
func (c *ShippingCalculator) CalculateShipping(ctx context.Context, req models.CalculateShippingRequest) (*models.CalculateShippingResponse, error) {
	zones, err := c.repo.ListActiveZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipping zones: %w", err)
	}

	zone := MatchZone(req.Country, req.State, req.Postcode, zones)
	if zone == nil {
		return &models.CalculateShippingResponse{
			Zone:    nil,
			Methods: []models.ShippingMethodQuote{c.defaultMethod()},
		}, nil
	}

	return &models.CalculateShippingResponse{
		Zone:    &models.ZoneSummary{ID: zone.ID, Name: zone.Name},
		Methods: AvailableMethods(zone, *req.CartTotal),
	}, nil
}

// AvailableMethods annotates a matched zone's active methods as available
// or unavailable for the given cart total. Input order (position ascending)
// is preserved - this filters and annotates, it never re-sorts.
//
// An unavailable method keeps its configured cost so the storefront can
// show what the option would have cost; a qualified free_shipping method
// has its cost forced to zero.
func AvailableMethods(zone *models.ShippingZone, cartTotal float64) []models.ShippingMethodQuote {
	quotes := make([]models.ShippingMethodQuote, 0, len(zone.Methods))

	for _, method := range zone.Methods {
		if !method.IsActive {
			continue
		}

		quote := models.ShippingMethodQuote{
			ID:            method.ID.String(),
			Title:         method.Title,
			Type:          method.Type,
			Cost:          method.Cost,
			EstimatedDays: method.EstimatedDays,
			Available:     true,
		}

		switch {
		case method.Type == models.MethodTypeFreeShipping:
			if method.MinAmount != nil && cartTotal < *method.MinAmount {
				quote.Available = false
				quote.Reason = fmt.Sprintf("Free shipping requires a minimum order of %.0f", *method.MinAmount)
			} else {
				quote.Cost = 0
			}
		case method.MinAmount != nil && cartTotal < *method.MinAmount:
			quote.Available = false
			quote.Reason = fmt.Sprintf("Requires a minimum order of %.0f", *method.MinAmount)
		}

		quotes = append(quotes, quote)
	}

	return quotes
}

func (c *ShippingCalculator) defaultMethod() models.ShippingMethodQuote {
	return models.ShippingMethodQuote{
		ID:        DefaultMethodID,
		Title:     "Default shipping",
		Type:      models.MethodTypeFlatRate,
		Cost:      c.defaultCost,
		Available: true,
	}
}
