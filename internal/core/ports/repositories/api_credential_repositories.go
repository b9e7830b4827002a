package repositories

import (
	"context"

	"github.com/finworks/erp_financials_api/internal/core/domain"
)

// ApiCredentialRepository defines persistence operations for API credentials.
type ApiCredentialRepository interface {
	// FindByLogin returns the credential record for login.
	FindByLogin(ctx context.Context, login string) (*domain.ApiCredential, error)

	// FindActive returns the active credential matching appKey and clientID,
	// or nil when none matches.
	FindActive(ctx context.Context, appKey, clientID string) (*domain.ApiCredential, error)

	// CountByClientID returns how many credentials carry clientID.
	CountByClientID(ctx context.Context, clientID string) (int, error)

	// UpdateCredentials stores the issued client ID, app key and encrypted
	// app secret on the login's record.
	UpdateCredentials(ctx context.Context, credential domain.ApiCredential) error
}
