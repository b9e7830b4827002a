package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/dto"
	"github.com/finworks/erp_financials_api/internal/utils"
)

const (
	// clientIDMaxAttempts bounds the retry loop on client-ID collisions.
	clientIDMaxAttempts = 5

	appKeyBytes    = 20
	appSecretBytes = 32
)

// apiCredentialService issues and retrieves login-bound API credentials.
// App secrets are encrypted at rest and only decrypted for the owning login.
type apiCredentialService struct {
	credentialRepo portsrepo.ApiCredentialRepository
	secretBox      *utils.SecretBox
}

// NewApiCredentialService creates the credential service facade.
func NewApiCredentialService(credentialRepo portsrepo.ApiCredentialRepository, secretBox *utils.SecretBox) portssvc.ApiCredentialSvcFacade {
	return &apiCredentialService{credentialRepo: credentialRepo, secretBox: secretBox}
}

var _ portssvc.ApiCredentialSvcFacade = (*apiCredentialService)(nil)

// Create verifies the login's password and issues a fresh client ID, app
// key and app secret. A login that already holds credentials is rejected.
func (s *apiCredentialService) Create(ctx context.Context, input dto.CreateApiCredentialRequest) (*dto.ApiCredentialResponse, error) {
	credential, err := s.authenticate(ctx, input.Login, input.Password)
	if err != nil {
		return nil, err
	}
	if credential.HasCredentials() {
		return nil, fmt.Errorf("%w: credentials already issued for login %s", apperrors.ErrDuplicate, input.Login)
	}

	clientID, err := s.uniqueClientID(ctx)
	if err != nil {
		return nil, err
	}

	appKey, err := utils.GenerateSecureRandomString(appKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate app key: %v", apperrors.ErrInternal, err)
	}
	appSecret, err := utils.GenerateSecureRandomString(appSecretBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate app secret: %v", apperrors.ErrInternal, err)
	}
	encryptedSecret, err := s.secretBox.Encrypt(appSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to protect app secret: %v", apperrors.ErrInternal, err)
	}

	credential.ClientID = clientID
	credential.AppKey = appKey
	credential.AppSecret = encryptedSecret
	if err := s.credentialRepo.UpdateCredentials(ctx, *credential); err != nil {
		return nil, fmt.Errorf("failed to store credentials for %s: %w", input.Login, err)
	}

	return &dto.ApiCredentialResponse{
		Name:      credential.Description,
		ClientID:  clientID,
		AppKey:    appKey,
		AppSecret: appSecret,
	}, nil
}

// Get verifies the login's password and returns its issued credentials
// with the decrypted secret.
func (s *apiCredentialService) Get(ctx context.Context, input dto.GetApiCredentialRequest) (*dto.ApiCredentialResponse, error) {
	credential, err := s.authenticate(ctx, input.Login, input.Password)
	if err != nil {
		return nil, err
	}
	if !credential.HasCredentials() {
		return nil, fmt.Errorf("%w: no credentials issued for login %s", apperrors.ErrNotFound, input.Login)
	}

	appSecret, err := s.secretBox.Decrypt(credential.AppSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to recover app secret: %v", apperrors.ErrInternal, err)
	}

	return &dto.ApiCredentialResponse{
		Name:      credential.Description,
		ClientID:  credential.ClientID,
		AppKey:    credential.AppKey,
		AppSecret: appSecret,
	}, nil
}

// FindActiveCredential resolves the active credential of an app-key/client-ID
// pair. Both nil results and lookup errors deny access upstream.
func (s *apiCredentialService) FindActiveCredential(ctx context.Context, appKey, clientID string) (*domain.ApiCredential, error) {
	if appKey == "" || clientID == "" {
		return nil, nil
	}
	credential, err := s.credentialRepo.FindActive(ctx, appKey, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve credential: %w", err)
	}
	return credential, nil
}

// authenticate resolves the login record and verifies the password against
// its bcrypt hash.
func (s *apiCredentialService) authenticate(ctx context.Context, login, password string) (*domain.ApiCredential, error) {
	credential, err := s.credentialRepo.FindByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve login %s: %w", login, err)
	}
	if credential == nil || !credential.IsActive.Bool() {
		return nil, fmt.Errorf("%w: invalid login or password", apperrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, fmt.Errorf("%w: invalid login or password", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: failed to verify password: %v", apperrors.ErrInternal, err)
	}
	return credential, nil
}

// uniqueClientID generates candidate client IDs until one is unused,
// bounded by clientIDMaxAttempts.
func (s *apiCredentialService) uniqueClientID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < clientIDMaxAttempts; attempt++ {
		candidate := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
		count, err := s.credentialRepo.CountByClientID(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check client ID uniqueness: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: could not allocate a unique client ID", apperrors.ErrInternal)
}
