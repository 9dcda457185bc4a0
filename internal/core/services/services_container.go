package services

import (
	portsrepo "github.com/remitflow/remit_backend/internal/core/ports/repositories"
	portssvc "github.com/remitflow/remit_backend/internal/core/ports/services"
	"github.com/remitflow/remit_backend/internal/platform/config"
)

// NewServiceContainer wires up the full service graph. Construction order
// matters only in that the remittance service takes the reporting dispatcher
// for its completed-status hook.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, regulatorClient portssvc.RegulatorClient) *portssvc.ServiceContainer {
	currencyService := NewCurrencyService(repos.CurrencyRepo)
	exchangeRateService := NewExchangeRateService(repos.ExchangeRateRepo, currencyService)
	conversionService := NewConversionService(cfg, repos.ExchangeRateRepo, currencyService)
	complianceService := NewComplianceService(cfg)
	reportBuilder := NewReportBuilderService(cfg)
	reportingService := NewReportingService(cfg, repos.RemittanceRepo, reportBuilder, complianceService, regulatorClient)
	exemptionService := NewExemptionService(cfg, repos.RemittanceRepo, complianceService)
	remittanceService := NewRemittanceService(repos.RemittanceRepo, conversionService, complianceService, reportingService)

	return &portssvc.ServiceContainer{
		Currency:     currencyService,
		ExchangeRate: exchangeRateService,
		Conversion:   conversionService,
		Compliance:   complianceService,
		Remittance:   remittanceService,
		Reporting:    reportingService,
		Exemption:    exemptionService,
	}
}
