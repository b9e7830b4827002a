package services

import (
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/utils"
)

// NewServiceContainer wires every service facade from the repository
// provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, secretBox *utils.SecretBox) *portssvc.ServiceContainer {
	validator := NewJournalEntryValidationService(repos.MasterDataRepo, repos.CurrencyRateRepo, repos.DimensionRepo)

	return &portssvc.ServiceContainer{
		JournalEntry:   NewJournalEntryService(repos.JournalEntryRepo, repos.SequenceRepo, validator),
		AccountBalance: NewAccountBalanceService(repos.AccountBalanceRepo),
		CurrencyRate:   NewCurrencyRateService(repos.CurrencyRateRepo),
		ApiCredential:  NewApiCredentialService(repos.ApiCredentialRepo, secretBox),
		MasterData:     NewMasterDataService(repos.MasterDataRepo, repos.DimensionRepo),
	}
}
