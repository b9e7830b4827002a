package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
)

// PgxDimensionRepository resolves dimension reference data.
type PgxDimensionRepository struct {
	BaseRepository
}

func newPgxDimensionRepository(pool *pgxpool.Pool) portsrepo.DimensionRepositoryFacade {
	return &PgxDimensionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DimensionRepositoryFacade = (*PgxDimensionRepository)(nil)

// FindDimensions batch-loads dimension records, keyed by "TYPE|CODE".
// Unknown pairs are absent from the result.
func (r *PgxDimensionRepository) FindDimensions(ctx context.Context, keys []domain.DimensionKey) (map[string]domain.Dimension, error) {
	if len(keys) == 0 {
		return map[string]domain.Dimension{}, nil
	}

	typeCodes := make([]string, len(keys))
	codes := make([]string, len(keys))
	for i, key := range keys {
		typeCodes[i] = key.TypeCode
		codes[i] = key.Code
	}

	// The unnest pair keeps the lookup a single round trip.
	query := `
		SELECT d.type_code, d.code, d.short_title, d.business_partner, d.is_active, d.customer
		FROM dimensions d
		JOIN unnest($1::text[], $2::text[]) AS k(type_code, code)
			ON d.type_code = k.type_code AND d.code = k.code;
	`
	rows, err := r.Pool.Query(ctx, query, typeCodes, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query dimensions", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Dimension)
	for rows.Next() {
		var dim domain.Dimension
		var isActive int
		if err := rows.Scan(&dim.TypeCode, &dim.Code, &dim.ShortTitle, &dim.BusinessPartner, &isActive, &dim.Customer); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan dimension", err)
		}
		dim.IsActive = domain.NoYes(isActive)
		result[dim.TypeCode+"|"+dim.Code] = dim
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read dimensions", err)
	}
	return result, nil
}

// ListDimensionTypes returns the configured dimension types keyed by
// semantic field name.
func (r *PgxDimensionRepository) ListDimensionTypes(ctx context.Context) (map[string]domain.DimensionTypeConfig, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT field, code, field_number FROM dimension_types ORDER BY field_number;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query dimension types", err)
	}
	defer rows.Close()

	result := make(map[string]domain.DimensionTypeConfig)
	for rows.Next() {
		var config domain.DimensionTypeConfig
		if err := rows.Scan(&config.Field, &config.Code, &config.FieldNumber); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan dimension type", err)
		}
		result[config.Field] = config
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read dimension types", err)
	}
	return result, nil
}
