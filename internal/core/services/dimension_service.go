package services

import (
	"context"
	"fmt"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
)

// dimensionService resolves dimension reference data and the per-account
// required/provided dimension sets the pipeline validates with.
type dimensionService struct {
	dimensionRepo portsrepo.DimensionRepositoryFacade
}

func newDimensionService(dimensionRepo portsrepo.DimensionRepositoryFacade) *dimensionService {
	return &dimensionService{dimensionRepo: dimensionRepo}
}

// DimensionDataKey builds the map key of one (type, value) pair.
func DimensionDataKey(typeCode, code string) string {
	return typeCode + "|" + code
}

// LoadDimensionTypesMap loads the configured dimension types and annotates
// each with whether the company marks it mandatory. Types are keyed by
// semantic field name.
func (s *dimensionService) LoadDimensionTypesMap(ctx context.Context, company domain.Company) (map[string]domain.DimensionTypeConfig, error) {
	typesMap, err := s.dimensionRepo.ListDimensionTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dimension types: %w", err)
	}

	mandatory := make(map[string]bool, domain.MaxDimensionSlots)
	for i := 0; i < domain.MaxDimensionSlots; i++ {
		if typeCode := company.DimensionTypes[i]; typeCode != "" {
			mandatory[typeCode] = company.IsMandatoryDimension[i].Bool()
		}
	}

	annotated := make(map[string]domain.DimensionTypeConfig, len(typesMap))
	for field, config := range typesMap {
		config.IsMandatory = mandatory[config.Code]
		annotated[field] = config
	}
	return annotated, nil
}

// LoadDimensionsData batch-loads every dimension record referenced by the
// given keys, keyed by "TYPE|CODE". Unknown pairs are absent from the result.
func (s *dimensionService) LoadDimensionsData(ctx context.Context, keys []domain.DimensionKey) (map[string]domain.Dimension, error) {
	if len(keys) == 0 {
		return map[string]domain.Dimension{}, nil
	}
	data, err := s.dimensionRepo.FindDimensions(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to load dimensions: %w", err)
	}
	return data, nil
}

// RequiredDimensions computes the dimension types account requires and the
// subset of provided values whose type is configured. Provided values for
// types the account neither requires nor allows are rejected.
func (s *dimensionService) RequiredDimensions(
	lineNumber int,
	ledger string,
	provided map[string]string, // semantic field -> value
	account domain.Account,
	typesMap map[string]domain.DimensionTypeConfig,
) (required map[string]struct{}, providedByType map[string]string, err error) {
	required = make(map[string]struct{})
	for i := 0; i < account.NumberOfDimensionsEntered && i < domain.MaxDimensionSlots; i++ {
		if typeCode := account.DimensionTypes[i]; typeCode != "" {
			required[typeCode] = struct{}{}
		}
	}

	providedByType = make(map[string]string)
	for field, value := range provided {
		config, ok := typesMap[field]
		if !ok {
			return nil, nil, fmt.Errorf("%w: line #%d: ledger [%s]: dimension field %q is not configured",
				apperrors.ErrValidation, lineNumber, ledger, field)
		}
		if _, allowed := required[config.Code]; !allowed {
			return nil, nil, fmt.Errorf("%w: line #%d: ledger [%s]: dimension type %s is not allowed for account %s",
				apperrors.ErrValidation, lineNumber, ledger, config.Code, account.Account)
		}
		providedByType[config.Code] = value
	}

	// Mandatory company-level types configured on the account must carry a value.
	for _, config := range typesMap {
		if !config.IsMandatory {
			continue
		}
		if _, requires := required[config.Code]; !requires {
			continue
		}
		if providedByType[config.Code] == "" {
			return nil, nil, fmt.Errorf("%w: line #%d: ledger [%s]: dimension type %s is mandatory for account %s",
				apperrors.ErrValidation, lineNumber, ledger, config.Code, account.Account)
		}
	}

	return required, providedByType, nil
}
