package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User               UserSvcFacade
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
	Category           CategorySvcFacade
	Transaction        TransactionSvcFacade
	Bill               BillSvcFacade
	Loan               LoanSvcFacade
	Budget             BudgetSvcFacade
	Goal               GoalSvcFacade
	Reporting          ReportingService
	Import             ImportSvc
	WhatsApp           WhatsAppSvc
	Advice             AdviceSvc
}
