package services

// ServiceContainer bundles every service facade handed to the handlers.
type ServiceContainer struct {
	JournalEntry   JournalEntrySvcFacade
	AccountBalance AccountBalanceSvcFacade
	CurrencyRate   CurrencyRateSvcFacade
	ApiCredential  ApiCredentialSvcFacade
	MasterData     MasterDataSvcFacade
}
