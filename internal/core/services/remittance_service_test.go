package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/remitflow/remit_backend/internal/apperrors"
	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/remitflow/remit_backend/internal/core/services"
	"github.com/remitflow/remit_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RemittanceServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockRemittanceRepository
	mockConversion *MockConversionService
	mockReporting  *MockReportingService
	service        *services.RemittanceService
}

func (suite *RemittanceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRemittanceRepository)
	suite.mockConversion = new(MockConversionService)
	suite.mockReporting = &MockReportingService{Dispatched: make(chan string, 1)}
	compliance := services.NewComplianceService(testConfig())
	suite.service = services.NewRemittanceService(suite.mockRepo, suite.mockConversion, compliance, suite.mockReporting)
}

func createRequest() dto.CreateRemittanceRequest {
	return dto.CreateRemittanceRequest{
		SenderName:            "Ama Mensah",
		SenderCountry:         "US",
		SenderIdentification:  "P1234567",
		SenderRiskCategory:    "low",
		RecipientName:         "Kofi Mensah",
		RecipientPhone:        "+233201234567",
		RecipientCountry:      "GH",
		AmountSent:            decimal.RequireFromString("1500.00"),
		CurrencyReceived:      "GHS",
		Purpose:               "family support",
		SourceOfFundsVerified: true,
		RecipientVerified:     true,
	}
}

func ghsQuote() *domain.RemittanceQuote {
	return &domain.RemittanceQuote{
		AmountSent:       decimal.RequireFromString("1500.00"),
		AmountReceived:   decimal.RequireFromString("24000.00"),
		CurrencySent:     "USD",
		CurrencyReceived: "GHS",
		ExchangeRate:     decimal.RequireFromString("16.00"),
		Fee:              decimal.RequireFromString("25.00"),
		TotalDebit:       decimal.RequireFromString("1525.00"),
	}
}

func (suite *RemittanceServiceTestSuite) TestCreateRemittance_SnapshotsQuote() {
	ctx := context.Background()
	req := createRequest()
	suite.mockConversion.On("QuoteRemittance", ctx, req.AmountSent, "GHS").Return(ghsQuote(), nil).Once()
	suite.mockRepo.On("SaveRemittance", ctx, mock.AnythingOfType("domain.Remittance")).Return(nil).Once()

	remittance, err := suite.service.CreateRemittance(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.NotEmpty(remittance.RemittanceID)
	suite.Regexp(`^RF-\d{14}-[0-9A-F]{8}$`, remittance.ReferenceNumber)
	suite.Equal(domain.RemittancePending, remittance.Status)
	suite.Equal(domain.ExemptionNone, remittance.ExemptionStatus)
	suite.Equal(domain.RiskLow, remittance.SenderRiskCategory)
	suite.True(remittance.AmountReceived.Equal(decimal.RequireFromString("24000.00")))
	suite.True(remittance.ExchangeRate.Equal(decimal.RequireFromString("16.00")))
	suite.False(remittance.ReportedToRegulator)
	suite.Equal("user-1", remittance.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RemittanceServiceTestSuite) TestCreateRemittance_UnclassifiedSenderDefaultsHighRisk() {
	ctx := context.Background()
	req := createRequest()
	req.SenderRiskCategory = ""
	suite.mockConversion.On("QuoteRemittance", ctx, req.AmountSent, "GHS").Return(ghsQuote(), nil).Once()
	suite.mockRepo.On("SaveRemittance", ctx, mock.Anything).Return(nil).Once()

	remittance, err := suite.service.CreateRemittance(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.RiskHigh, remittance.SenderRiskCategory)
}

func (suite *RemittanceServiceTestSuite) TestCreateRemittance_QuoteFailurePropagates() {
	ctx := context.Background()
	req := createRequest()
	suite.mockConversion.On("QuoteRemittance", ctx, req.AmountSent, "GHS").
		Return(nil, apperrors.ErrRateUnavailable).Once()

	_, err := suite.service.CreateRemittance(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRemittance", mock.Anything, mock.Anything)
}

func (suite *RemittanceServiceTestSuite) TestUpdateStatus_ValidTransition() {
	ctx := context.Background()
	r := completeRemittance()
	r.Status = domain.RemittancePending
	suite.mockRepo.On("FindRemittanceByID", ctx, "rem-1").Return(r, nil).Once()
	suite.mockRepo.On("UpdateStatus", ctx, "rem-1", domain.RemittanceProcessing, "user-1").Return(nil).Once()

	updated, err := suite.service.UpdateStatus(ctx, "rem-1", domain.RemittanceProcessing, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.RemittanceProcessing, updated.Status)
	suite.mockReporting.AssertNotCalled(suite.T(), "ReportRemittance", mock.Anything, mock.Anything)
}

func (suite *RemittanceServiceTestSuite) TestUpdateStatus_InvalidTransition() {
	ctx := context.Background()
	r := completeRemittance()
	r.Status = domain.RemittancePending
	suite.mockRepo.On("FindRemittanceByID", ctx, "rem-1").Return(r, nil).Once()

	_, err := suite.service.UpdateStatus(ctx, "rem-1", domain.RemittanceCompleted, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RemittanceServiceTestSuite) TestUpdateStatus_CompletedTriggersReportDispatch() {
	ctx := context.Background()
	r := completeRemittance()
	r.Status = domain.RemittanceProcessing
	suite.mockRepo.On("FindRemittanceByID", ctx, "rem-1").Return(r, nil).Once()
	suite.mockRepo.On("UpdateStatus", ctx, "rem-1", domain.RemittanceCompleted, "user-1").Return(nil).Once()
	suite.mockReporting.On("ReportRemittance", mock.Anything, "rem-1").
		Return(domain.Reported("REG-1"), nil).Once()

	updated, err := suite.service.UpdateStatus(ctx, "rem-1", domain.RemittanceCompleted, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.RemittanceCompleted, updated.Status)

	// The dispatch is async; wait for it rather than sleeping.
	select {
	case id := <-suite.mockReporting.Dispatched:
		suite.Equal("rem-1", id)
	case <-time.After(2 * time.Second):
		suite.Fail("report dispatch was not triggered")
	}
	suite.mockReporting.AssertExpectations(suite.T())
}

func (suite *RemittanceServiceTestSuite) TestUpdateStatus_ReportFailureDoesNotFailTransition() {
	ctx := context.Background()
	r := completeRemittance()
	r.Status = domain.RemittanceProcessing
	suite.mockRepo.On("FindRemittanceByID", ctx, "rem-1").Return(r, nil).Once()
	suite.mockRepo.On("UpdateStatus", ctx, "rem-1", domain.RemittanceCompleted, "user-1").Return(nil).Once()
	suite.mockReporting.On("ReportRemittance", mock.Anything, "rem-1").
		Return(domain.FailedOutcome(apperrors.ErrTransport), nil).Once()

	updated, err := suite.service.UpdateStatus(ctx, "rem-1", domain.RemittanceCompleted, "user-1")

	// Payout completion never blocks on the regulator.
	suite.Require().NoError(err)
	suite.Equal(domain.RemittanceCompleted, updated.Status)

	select {
	case <-suite.mockReporting.Dispatched:
	case <-time.After(2 * time.Second):
		suite.Fail("report dispatch was not triggered")
	}
}

func (suite *RemittanceServiceTestSuite) TestGetRemittanceByReference() {
	ctx := context.Background()
	r := completeRemittance()
	suite.mockRepo.On("FindRemittanceByReference", ctx, r.ReferenceNumber).Return(r, nil).Once()

	got, err := suite.service.GetRemittanceByReference(ctx, r.ReferenceNumber)

	suite.Require().NoError(err)
	suite.Equal(r.RemittanceID, got.RemittanceID)
}

func (suite *RemittanceServiceTestSuite) TestListRemittances_ClampsPagination() {
	ctx := context.Background()
	status := domain.RemittanceCompleted
	suite.mockRepo.On("ListRemittances", ctx, &status, 1, 20).
		Return([]domain.Remittance{}, 0, nil).Once()

	_, _, err := suite.service.ListRemittances(ctx, &status, -3, 5000)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestRemittanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RemittanceServiceTestSuite))
}
