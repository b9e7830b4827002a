package services

import (
	"fmt"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
)

// Dimension type codes. Fixture and broker carry dedicated validation
// rules; the rest validate through the general strategy.
const (
	DimensionTypeFixture    = "FIX"
	DimensionTypeBroker     = "BRO"
	DimensionTypeDepartment = "DEP"
	DimensionTypeLocation   = "LOC"
	DimensionTypeType       = "TYP"
	DimensionTypeProduct    = "PRD"
	DimensionTypeAnalysis   = "ANA"
)

// DimensionStrategyContext carries the line-scoped data a strategy needs to
// produce a useful error message.
type DimensionStrategyContext struct {
	LineNumber int
	Ledger     string
	Account    string
}

// DimensionStrategy validates one loaded dimension record against the
// business rules of its type.
type DimensionStrategy interface {
	Validate(dimension domain.Dimension, ctx DimensionStrategyContext) error
}

// generalDimensionStrategy accepts any loaded dimension. It is the default
// for types without dedicated rules.
type generalDimensionStrategy struct{}

func (generalDimensionStrategy) Validate(domain.Dimension, DimensionStrategyContext) error {
	return nil
}

// fixtureDimensionStrategy requires the fixture to be active and assigned
// to an authorized customer.
type fixtureDimensionStrategy struct{}

func (fixtureDimensionStrategy) Validate(dimension domain.Dimension, ctx DimensionStrategyContext) error {
	if !dimension.IsActive.Bool() {
		return fmt.Errorf("%w: line #%d: ledger [%s]: fixture %s is not active",
			apperrors.ErrValidation, ctx.LineNumber, ctx.Ledger, dimension.Code)
	}
	if dimension.Customer == "" {
		return fmt.Errorf("%w: line #%d: ledger [%s]: fixture %s is not assigned to an authorized customer",
			apperrors.ErrValidation, ctx.LineNumber, ctx.Ledger, dimension.Code)
	}
	return nil
}

// brokerDimensionStrategy requires the broker to be active and linked to a
// business partner.
type brokerDimensionStrategy struct{}

func (brokerDimensionStrategy) Validate(dimension domain.Dimension, ctx DimensionStrategyContext) error {
	if !dimension.IsActive.Bool() {
		return fmt.Errorf("%w: line #%d: ledger [%s]: broker %s is not active",
			apperrors.ErrValidation, ctx.LineNumber, ctx.Ledger, dimension.Code)
	}
	if dimension.BusinessPartner == "" {
		return fmt.Errorf("%w: line #%d: ledger [%s]: broker %s has no linked business partner",
			apperrors.ErrValidation, ctx.LineNumber, ctx.Ledger, dimension.Code)
	}
	return nil
}

// dimensionStrategies is the closed dispatch table from dimension type code
// to validation strategy.
var dimensionStrategies = map[string]DimensionStrategy{
	DimensionTypeFixture: fixtureDimensionStrategy{},
	DimensionTypeBroker:  brokerDimensionStrategy{},
}

// StrategyForDimensionType selects the strategy for a type code, defaulting
// to the no-op general strategy.
func StrategyForDimensionType(typeCode string) DimensionStrategy {
	if strategy, ok := dimensionStrategies[typeCode]; ok {
		return strategy
	}
	return generalDimensionStrategy{}
}
