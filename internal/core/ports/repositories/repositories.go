package repositories

// RepositoryProvider bundles every repository implementation handed to the
// service container.
type RepositoryProvider struct {
	JournalEntryRepo   JournalEntryRepositoryWithTx
	MasterDataRepo     MasterDataRepositoryFacade
	DimensionRepo      DimensionRepositoryFacade
	CurrencyRateRepo   CurrencyRateReader
	SequenceRepo       SequenceRepository
	ApiCredentialRepo  ApiCredentialRepository
	AccountBalanceRepo AccountBalanceReader
}
