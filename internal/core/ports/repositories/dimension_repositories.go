package repositories

import (
	"context"

	"github.com/finworks/erp_financials_api/internal/core/domain"
)

// DimensionReader batch-resolves dimension reference data.
type DimensionReader interface {
	// FindDimensions returns the dimension records that exist among keys,
	// keyed by "TYPE|CODE".
	FindDimensions(ctx context.Context, keys []domain.DimensionKey) (map[string]domain.Dimension, error)
}

// DimensionTypeReader loads the dimension-type configuration table.
type DimensionTypeReader interface {
	// ListDimensionTypes returns the configured dimension types keyed by
	// semantic field name, with their storage slot numbers.
	ListDimensionTypes(ctx context.Context) (map[string]domain.DimensionTypeConfig, error)
}

// DimensionRepositoryFacade combines the dimension lookups.
type DimensionRepositoryFacade interface {
	DimensionReader
	DimensionTypeReader
}
