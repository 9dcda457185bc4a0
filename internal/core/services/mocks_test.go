package services_test

import (
	"context"
	"time"

	"github.com/remitflow/remit_backend/internal/core/domain"
	portsrepo "github.com/remitflow/remit_backend/internal/core/ports/repositories"
	portssvc "github.com/remitflow/remit_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) DeactivateCurrency(ctx context.Context, currencyCode string, updaterUserID string) error {
	args := m.Called(ctx, currencyCode, updaterUserID)
	return args.Error(0)
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindLatestRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCode, toCode *string, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, fromCode, toCode, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Int(1), args.Error(2)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

// --- Mock RemittanceRepository ---
type MockRemittanceRepository struct {
	mock.Mock
}

func (m *MockRemittanceRepository) FindRemittanceByID(ctx context.Context, remittanceID string) (*domain.Remittance, error) {
	args := m.Called(ctx, remittanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) FindRemittanceByReference(ctx context.Context, referenceNumber string) (*domain.Remittance, error) {
	args := m.Called(ctx, referenceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) ListRemittances(ctx context.Context, status *domain.RemittanceStatus, page, pageSize int) ([]domain.Remittance, int, error) {
	args := m.Called(ctx, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Remittance), args.Int(1), args.Error(2)
}

func (m *MockRemittanceRepository) FindUnreported(ctx context.Context, createdAfter time.Time, threshold decimal.Decimal, limit int) ([]domain.Remittance, error) {
	args := m.Called(ctx, createdAfter, threshold, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) CountStaleUnreported(ctx context.Context, createdBefore time.Time, threshold decimal.Decimal) (int, error) {
	args := m.Called(ctx, createdBefore, threshold)
	return args.Int(0), args.Error(1)
}

func (m *MockRemittanceRepository) FindPendingExemptions(ctx context.Context, createdAfter time.Time) ([]domain.Remittance, error) {
	args := m.Called(ctx, createdAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) SaveRemittance(ctx context.Context, remittance domain.Remittance) error {
	args := m.Called(ctx, remittance)
	return args.Error(0)
}

func (m *MockRemittanceRepository) UpdateStatus(ctx context.Context, remittanceID string, status domain.RemittanceStatus, updaterUserID string) error {
	args := m.Called(ctx, remittanceID, status, updaterUserID)
	return args.Error(0)
}

func (m *MockRemittanceRepository) MarkReported(ctx context.Context, remittanceID, reportReference string) (bool, error) {
	args := m.Called(ctx, remittanceID, reportReference)
	return args.Bool(0), args.Error(1)
}

func (m *MockRemittanceRepository) RecordReportAttempt(ctx context.Context, remittanceID string, attemptedAt time.Time, attemptErr *string) error {
	args := m.Called(ctx, remittanceID, attemptedAt, attemptErr)
	return args.Error(0)
}

func (m *MockRemittanceRepository) UpdateExemptionStatus(ctx context.Context, remittanceID string, from, to domain.ExemptionStatus, approver *string) (bool, error) {
	args := m.Called(ctx, remittanceID, from, to, approver)
	return args.Bool(0), args.Error(1)
}

var _ portsrepo.RemittanceRepositoryFacade = (*MockRemittanceRepository)(nil)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

var _ portssvc.CurrencyReaderSvc = (*MockCurrencyService)(nil)

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, *domain.ExchangeRate, error) {
	args := m.Called(ctx, amount, fromCode, toCode)
	if args.Get(1) == nil {
		return decimal.Zero, nil, args.Error(2)
	}
	return args.Get(0).(decimal.Decimal), args.Get(1).(*domain.ExchangeRate), args.Error(2)
}

func (m *MockConversionService) ComputeFee(amount decimal.Decimal) decimal.Decimal {
	args := m.Called(amount)
	return args.Get(0).(decimal.Decimal)
}

func (m *MockConversionService) QuoteRemittance(ctx context.Context, amountSent decimal.Decimal, toCode string) (*domain.RemittanceQuote, error) {
	args := m.Called(ctx, amountSent, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RemittanceQuote), args.Error(1)
}

var _ portssvc.ConversionSvc = (*MockConversionService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
	// Dispatched signals every completed ReportRemittance call, so tests can
	// wait for the async completed-status hook.
	Dispatched chan string
}

func (m *MockReportingService) ReportRemittance(ctx context.Context, remittanceID string) (domain.ReportOutcome, error) {
	args := m.Called(ctx, remittanceID)
	if m.Dispatched != nil {
		m.Dispatched <- remittanceID
	}
	return args.Get(0).(domain.ReportOutcome), args.Error(1)
}

func (m *MockReportingService) ReportBatch(ctx context.Context, remittances []domain.Remittance) (domain.ReconciliationSummary, error) {
	args := m.Called(ctx, remittances)
	return args.Get(0).(domain.ReconciliationSummary), args.Error(1)
}

func (m *MockReportingService) ReconcileUnreported(ctx context.Context) (domain.ReconciliationSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ReconciliationSummary), args.Error(1)
}

func (m *MockReportingService) UnreportedBacklog(ctx context.Context) ([]domain.Remittance, int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Remittance), args.Int(1), args.Error(2)
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

// --- Mock RegulatorClient ---
type MockRegulatorClient struct {
	mock.Mock
}

func (m *MockRegulatorClient) SubmitReport(ctx context.Context, report *domain.RegulatorReport) (string, error) {
	args := m.Called(ctx, report)
	return args.String(0), args.Error(1)
}

func (m *MockRegulatorClient) SubmitBatch(ctx context.Context, batch *domain.RegulatorBatchReport) (map[string]string, map[string]string, error) {
	args := m.Called(ctx, batch)
	var ids, errs map[string]string
	if args.Get(0) != nil {
		ids = args.Get(0).(map[string]string)
	}
	if args.Get(1) != nil {
		errs = args.Get(1).(map[string]string)
	}
	return ids, errs, args.Error(2)
}

var _ portssvc.RegulatorClient = (*MockRegulatorClient)(nil)
