package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finworks/erp_financials_api/internal/core/domain"
	"github.com/finworks/erp_financials_api/internal/core/services"
)

func TestMasterDataService_ListSites(t *testing.T) {
	siteRepo := new(MockMasterDataRepository)
	dimensionRepo := new(MockDimensionRepository)
	service := services.NewMasterDataService(siteRepo, dimensionRepo)

	expected := []domain.Site{
		{Code: "PAR01", Description: "Paris", Company: "FRCO"},
		{Code: "LYO01", Description: "Lyon", Company: "FRCO"},
	}
	siteRepo.On("ListSites", mock.Anything).Return(expected, nil).Once()

	sites, err := service.ListSites(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, sites)
}

func TestMasterDataService_ListSitesError(t *testing.T) {
	siteRepo := new(MockMasterDataRepository)
	service := services.NewMasterDataService(siteRepo, new(MockDimensionRepository))

	siteRepo.On("ListSites", mock.Anything).Return(nil, errors.New("db down")).Once()

	_, err := service.ListSites(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list sites")
}

func TestMasterDataService_ListDimensionTypes(t *testing.T) {
	dimensionRepo := new(MockDimensionRepository)
	service := services.NewMasterDataService(new(MockMasterDataRepository), dimensionRepo)

	expected := map[string]domain.DimensionTypeConfig{
		"fixture": {Field: "fixture", Code: "FIX", FieldNumber: 1},
	}
	dimensionRepo.On("ListDimensionTypes", mock.Anything).Return(expected, nil).Once()

	types, err := service.ListDimensionTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, types)
}
