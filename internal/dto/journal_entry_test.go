package dto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finworks/erp_financials_api/internal/core/domain"
	"github.com/finworks/erp_financials_api/internal/dto"
)

func sampleRequest() dto.CreateJournalEntryRequest {
	debit := decimal.NewFromInt(100)
	credit := decimal.NewFromInt(100)
	return dto.CreateJournalEntryRequest{
		Site:           "par01",
		DocumentType:   "odinv",
		SourceCurrency: "eur",
		SourceDocument: "inv-001",
		Lines: []dto.JournalEntryLineInput{
			{
				Account:         "601000",
				BusinessPartner: "acme",
				TaxCode:         "vat20",
				Debit:           &debit,
				Dimensions:      &dto.DimensionsInput{Fixture: "vessel9", Broker: "brk1"},
			},
			{Account: "411000", Credit: &credit},
		},
	}
}

func TestCreateJournalEntryRequest_Normalized(t *testing.T) {
	normalized := sampleRequest().Normalized()

	assert.Equal(t, "PAR01", normalized.Site)
	assert.Equal(t, "ODINV", normalized.DocumentType)
	assert.Equal(t, "EUR", normalized.SourceCurrency)
	assert.Equal(t, "INV-001", normalized.SourceDocument)
	assert.Equal(t, "601000", normalized.Lines[0].Account)
	assert.Equal(t, "ACME", normalized.Lines[0].BusinessPartner)
	assert.Equal(t, "VAT20", normalized.Lines[0].TaxCode)
	assert.Equal(t, "VESSEL9", normalized.Lines[0].Dimensions.Fixture)
	assert.Equal(t, "BRK1", normalized.Lines[0].Dimensions.Broker)

	// Amounts pass through untouched.
	require.NotNil(t, normalized.Lines[0].Debit)
	assert.True(t, normalized.Lines[0].Debit.Equal(decimal.NewFromInt(100)))
}

func TestCreateJournalEntryRequest_NormalizedIsIdempotent(t *testing.T) {
	once := sampleRequest().Normalized()
	twice := once.Normalized()
	assert.Equal(t, once, twice)
}

func TestCreateJournalEntryRequest_NormalizedDoesNotShareLines(t *testing.T) {
	original := sampleRequest()
	normalized := original.Normalized()
	normalized.Lines[0].Account = "CHANGED"
	assert.Equal(t, "601000", original.Lines[0].Account)
}

func TestCreateJournalEntryRequest_Validate(t *testing.T) {
	t.Run("valid request has no violations", func(t *testing.T) {
		assert.Empty(t, sampleRequest().Validate())
	})

	t.Run("collects every violation", func(t *testing.T) {
		req := dto.CreateJournalEntryRequest{
			SourceCurrency: "EURO",
			Lines: []dto.JournalEntryLineInput{
				{Account: "601000"},
				{Account: "  "},
			},
		}
		violations := req.Validate()
		require.Len(t, violations, 4)
		assert.Contains(t, violations, "site is required")
		assert.Contains(t, violations, "documentType is required")
		assert.Contains(t, violations, "sourceCurrency must be a 3-letter ISO code")
		assert.Contains(t, violations, "line #2: account is required")
	})
}

func TestCreateJournalEntryRequest_RateTypeOrDefault(t *testing.T) {
	cases := []struct {
		name     string
		rateType string
		fallback domain.RateType
		want     domain.RateType
		wantErr  bool
	}{
		{name: "daily", rateType: "dailyRate", want: domain.RateTypeDaily},
		{name: "monthly", rateType: "monthlyRate", want: domain.RateTypeMonthly},
		{name: "average", rateType: "averageRate", want: domain.RateTypeAverage},
		{name: "empty uses fallback", rateType: "", fallback: domain.RateTypeAverage, want: domain.RateTypeAverage},
		{name: "empty without fallback defaults to monthly", rateType: "", want: domain.RateTypeMonthly},
		{name: "unknown value", rateType: "spotRate", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := dto.CreateJournalEntryRequest{RateType: tc.rateType}
			got, err := req.RateTypeOrDefault(tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.rateType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDimensionsInput_Fields(t *testing.T) {
	t.Run("nil input yields nil", func(t *testing.T) {
		var d *dto.DimensionsInput
		assert.Nil(t, d.Fields())
	})

	t.Run("only non-empty values returned", func(t *testing.T) {
		d := &dto.DimensionsInput{Fixture: "VESSEL9", Department: "SALES"}
		assert.Equal(t, map[string]string{"fixture": "VESSEL9", "department": "SALES"}, d.Fields())
	})
}
