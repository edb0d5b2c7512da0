package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pricing-service/internal/models"
	"pricing-service/internal/repository"
)

// CurrencyService handles currency conversion and formatting
type CurrencyService struct {
	repo repository.CurrencyRepositoryInterface
}

// NewCurrencyService creates a new currency service
func NewCurrencyService(repo repository.CurrencyRepositoryInterface) *CurrencyService {
	return &CurrencyService{repo: repo}
}

// Convert converts an amount between two configured currencies. Unknown
// codes surface the repository's not-found error; the HTTP layer maps it
// to a 404. Amount validation (> 0) belongs to the HTTP boundary - the
// pure math accepts any real number.
func (s *CurrencyService) Convert(ctx context.Context, req models.ConvertCurrencyRequest) (*models.ConvertCurrencyResponse, error) {
	from, err := s.repo.GetByCode(ctx, req.From)
	if err != nil {
		return nil, fmt.Errorf("currency %s: %w", req.From, err)
	}
	to, err := s.repo.GetByCode(ctx, req.To)
	if err != nil {
		return nil, fmt.Errorf("currency %s: %w", req.To, err)
	}

	converted := ConvertAmount(req.Amount, from, to)
	return &models.ConvertCurrencyResponse{
		From: models.ConvertedAmount{
			Code:      from.Code,
			Amount:    req.Amount,
			Formatted: FormatAmount(req.Amount, from),
		},
		To: models.ConvertedAmount{
			Code:      to.Code,
			Amount:    converted,
			Formatted: FormatAmount(converted, to),
		},
		Rate: from.ExchangeRate / to.ExchangeRate,
	}, nil
}

// ConvertAmount converts via the base currency: a currency's exchange
// rate is the number of base-currency units equal to 1 unit of it, so
// converting from multiplies and converting to divides.
func ConvertAmount(amount float64, from, to *models.Currency) float64 {
	amountInBase := amount * from.ExchangeRate
	return amountInBase / to.ExchangeRate
}

// FormatAmount renders an amount per the currency's display configuration:
// fixed decimal places, thousand separators grouped from the right, and
// the symbol before or after the number.
func FormatAmount(amount float64, currency *models.Currency) string {
	fixed := strconv.FormatFloat(amount, 'f', currency.DecimalPlaces, 64)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	intPart := fixed
	fracPart := ""
	if idx := strings.IndexByte(fixed, '.'); idx >= 0 {
		intPart = fixed[:idx]
		fracPart = fixed[idx+1:]
	}

	number := groupThousands(intPart, currency.ThousandSep)
	if currency.DecimalPlaces > 0 {
		number += currency.DecimalSep + fracPart
	}
	if negative {
		number = "-" + number
	}

	if currency.SymbolPosition == models.SymbolAfter {
		return number + currency.Symbol
	}
	return currency.Symbol + number
}

// groupThousands inserts the separator every 3 digits from the right
func groupThousands(digits, sep string) string {
	n := len(digits)
	if n <= 3 || sep == "" {
		return digits
	}

	var b strings.Builder
	first := n % 3
	if first > 0 {
		b.WriteString(digits[:first])
	}
	for i := first; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
