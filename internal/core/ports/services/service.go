package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers and the
// background job runner.
type ServiceContainer struct {
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Conversion   ConversionSvc
	Compliance   ComplianceSvc
	Remittance   RemittanceSvcFacade
	Reporting    ReportingSvc
	Exemption    ExemptionSvc
}
