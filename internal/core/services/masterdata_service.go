package services

import (
	"context"
	"fmt"

	"github.com/finworks/erp_financials_api/internal/core/domain"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
)

// masterDataService exposes the read-only reference lookups.
type masterDataService struct {
	siteRepo      portsrepo.SiteReader
	dimensionRepo portsrepo.DimensionTypeReader
}

// NewMasterDataService creates the reference lookup facade.
func NewMasterDataService(siteRepo portsrepo.SiteReader, dimensionRepo portsrepo.DimensionTypeReader) portssvc.MasterDataSvcFacade {
	return &masterDataService{siteRepo: siteRepo, dimensionRepo: dimensionRepo}
}

var _ portssvc.MasterDataSvcFacade = (*masterDataService)(nil)

func (s *masterDataService) ListSites(ctx context.Context) ([]domain.Site, error) {
	sites, err := s.siteRepo.ListSites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	return sites, nil
}

func (s *masterDataService) ListDimensionTypes(ctx context.Context) (map[string]domain.DimensionTypeConfig, error) {
	types, err := s.dimensionRepo.ListDimensionTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dimension types: %w", err)
	}
	return types, nil
}
