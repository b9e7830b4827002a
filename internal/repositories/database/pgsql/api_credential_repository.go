package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
)

// PgxApiCredentialRepository persists login-bound API credentials.
type PgxApiCredentialRepository struct {
	BaseRepository
}

func newPgxApiCredentialRepository(pool *pgxpool.Pool) portsrepo.ApiCredentialRepository {
	return &PgxApiCredentialRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ApiCredentialRepository = (*PgxApiCredentialRepository)(nil)

const selectApiCredentialQuery = `
	SELECT login, description, password_hash, client_id, app_key, app_secret, is_active, update_datetime
	FROM api_credentials
`

// FindByLogin returns the credential record for login.
func (r *PgxApiCredentialRepository) FindByLogin(ctx context.Context, login string) (*domain.ApiCredential, error) {
	credential, err := r.scanCredential(r.Pool.QueryRow(ctx,
		selectApiCredentialQuery+` WHERE login = $1;`, login))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query credential for login "+login, err)
	}
	return credential, nil
}

// FindActive returns the active credential matching appKey and clientID.
func (r *PgxApiCredentialRepository) FindActive(ctx context.Context, appKey, clientID string) (*domain.ApiCredential, error) {
	credential, err := r.scanCredential(r.Pool.QueryRow(ctx,
		selectApiCredentialQuery+` WHERE app_key = $1 AND client_id = $2 AND is_active = 2;`, appKey, clientID))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active credential", err)
	}
	return credential, nil
}

// CountByClientID returns how many credentials carry clientID.
func (r *PgxApiCredentialRepository) CountByClientID(ctx context.Context, clientID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM api_credentials WHERE client_id = $1;`, clientID,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count credentials by client id", err)
	}
	return count, nil
}

// UpdateCredentials stores the issued client ID, app key and encrypted app
// secret on the login's record.
func (r *PgxApiCredentialRepository) UpdateCredentials(ctx context.Context, credential domain.ApiCredential) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE api_credentials
		SET client_id = $2, app_key = $3, app_secret = $4, update_datetime = NOW()
		WHERE login = $1;
	`, credential.Login, credential.ClientID, credential.AppKey, credential.AppSecret)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update credentials for login "+credential.Login, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(404, "login "+credential.Login+" not found", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxApiCredentialRepository) scanCredential(row pgx.Row) (*domain.ApiCredential, error) {
	var credential domain.ApiCredential
	var isActive int
	err := row.Scan(
		&credential.Login, &credential.Description, &credential.PasswordHash,
		&credential.ClientID, &credential.AppKey, &credential.AppSecret,
		&isActive, &credential.UpdateDatetime,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	credential.IsActive = domain.NoYes(isActive)
	return &credential, nil
}
