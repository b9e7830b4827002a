package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/dto"
	"github.com/finworks/erp_financials_api/internal/utils/pagination"
)

const (
	defaultRatePageSize = 50
	maxRatePageSize     = 500
)

// currencyRateService lists published exchange rates, newest first, with
// date-cursor pagination.
type currencyRateService struct {
	rateRepo portsrepo.CurrencyRateReader
}

// NewCurrencyRateService creates the rate listing facade.
func NewCurrencyRateService(rateRepo portsrepo.CurrencyRateReader) portssvc.CurrencyRateSvcFacade {
	return &currencyRateService{rateRepo: rateRepo}
}

var _ portssvc.CurrencyRateSvcFacade = (*currencyRateService)(nil)

func (s *currencyRateService) ListRates(ctx context.Context, filter dto.CurrencyRateFilter, params dto.ListCurrencyRatesParams) (*dto.ListCurrencyRatesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultRatePageSize
	}
	if limit > maxRatePageSize {
		limit = maxRatePageSize
	}

	before := filter.RateDate
	if params.NextToken != nil && *params.NextToken != "" {
		cursor, err := pagination.DecodeDateBasedToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		before = &cursor
	}

	source := strings.ToUpper(filter.SourceCurrency)
	destination := strings.ToUpper(filter.DestinationCurrency)

	rows, err := s.rateRepo.ListRates(ctx, source, destination, before, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to list currency rates: %w", err)
	}

	response := &dto.ListCurrencyRatesResponse{
		Rates: make([]dto.CurrencyRateResponse, 0, len(rows)),
	}
	if len(rows) > limit {
		rows = rows[:limit]
		token := pagination.EncodeDateBasedToken(rows[len(rows)-1].RateDate)
		response.NextToken = &token
	}

	for _, row := range rows {
		response.Rates = append(response.Rates, dto.CurrencyRateResponse{
			SourceCurrency:      row.SourceCurrency,
			DestinationCurrency: row.DestinationCurrency,
			RateDate:            row.RateDate,
			Rate:                row.Rate,
			Divisor:             row.Divisor,
		})
	}
	return response, nil
}
