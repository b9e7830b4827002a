package services

import (
	"context"

	"github.com/finworks/erp_financials_api/internal/core/domain"
	"github.com/finworks/erp_financials_api/internal/dto"
)

// ApiCredentialSvcFacade exposes credential issuance and lookup.
type ApiCredentialSvcFacade interface {
	// Create validates the login/password pair and issues a fresh client
	// ID, app key and app secret. The raw secret is only returned here.
	Create(ctx context.Context, input dto.CreateApiCredentialRequest) (*dto.ApiCredentialResponse, error)

	// Get validates the login/password pair and returns the existing
	// credentials with the decrypted secret.
	Get(ctx context.Context, input dto.GetApiCredentialRequest) (*dto.ApiCredentialResponse, error)

	// FindActiveCredential returns the active credential matching the
	// app-key/client-ID pair, or nil when none matches.
	FindActiveCredential(ctx context.Context, appKey, clientID string) (*domain.ApiCredential, error)
}
