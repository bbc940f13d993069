package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// It is assembled once at startup from the concrete database implementations.
type RepositoryProvider struct {
	UserRepo       UserRepositoryFacade
	TeamRepo       TeamRepositoryFacade
	DocumentRepo   DocumentRepositoryFacade
	PaymentRepo    PaymentRepositoryFacade
	AdjustmentRepo AdjustmentRepositoryFacade
	AdvanceRepo    AdvanceRepositoryFacade
	PeriodLockRepo PeriodLockRepositoryFacade
	ActivityRepo   ActivityRepositoryFacade
	ReportingRepo  ReportingRepository
}
