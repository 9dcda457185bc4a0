package services_test

import (
	"context"
	"testing"

	"github.com/remitflow/remit_backend/internal/apperrors"
	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/remitflow/remit_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExemptionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockRemittanceRepository
	service  *services.ExemptionService
}

func (suite *ExemptionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRemittanceRepository)
	compliance := services.NewComplianceService(testConfig())
	suite.service = services.NewExemptionService(testConfig(), suite.mockRepo, compliance)
}

func (suite *ExemptionServiceTestSuite) TestRequestExemption_OpensPending() {
	ctx := context.Background()
	r := completeRemittance()
	r.ExemptionStatus = domain.ExemptionNone
	updated := *r
	updated.ExemptionStatus = domain.ExemptionPending

	suite.mockRepo.On("FindRemittanceByID", ctx, "rem-1").Return(r, nil).Once()
	suite.mockRepo.On("UpdateExemptionStatus", ctx, "rem-1", domain.ExemptionNone, domain.ExemptionPending, (*string)(nil)).
		Return(true, nil).Once()
	suite.mockRepo.On("FindRemittanceByID", ctx, "rem-1").Return(&updated, nil).Once()

	result, err := suite.service.RequestExemption(ctx, "rem-1", "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.ExemptionPending, result.ExemptionStatus)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExemptionServiceTestSuite) TestRequestExemption_AlreadyPending() {
	ctx := context.Background()
	r := completeRemittance()
	r.ExemptionStatus = domain.ExemptionPending
	suite.mockRepo.On("FindRemittanceByID", ctx, "rem-1").Return(r, nil).Once()

	_, err := suite.service.RequestExemption(ctx, "rem-1", "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ExemptionServiceTestSuite) TestRequestExemption_ReopensDecided() {
	ctx := context.Background()
	r := completeRemittance()
	r.ExemptionStatus = domain.ExemptionRejected
	reopened := *r
	reopened.ExemptionStatus = domain.ExemptionPending

	suite.mockRepo.On("FindRemittanceByID", ctx, "rem-1").Return(r, nil).Once()
	suite.mockRepo.On("UpdateExemptionStatus", ctx, "rem-1", domain.ExemptionRejected, domain.ExemptionPending, (*string)(nil)).
		Return(true, nil).Once()
	suite.mockRepo.On("FindRemittanceByID", ctx, "rem-1").Return(&reopened, nil).Once()

	result, err := suite.service.RequestExemption(ctx, "rem-1", "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.ExemptionPending, result.ExemptionStatus)
}

func (suite *ExemptionServiceTestSuite) TestDecideExemption_Approves() {
	ctx := context.Background()
	r := completeRemittance()
	r.ExemptionStatus = domain.ExemptionPending
	approver := "reviewer-9"
	decided := *r
	decided.ExemptionStatus = domain.ExemptionApproved
	decided.ExemptionApprover = &approver

	suite.mockRepo.On("FindRemittanceByID", ctx, "rem-1").Return(r, nil).Once()
	suite.mockRepo.On("UpdateExemptionStatus", ctx, "rem-1", domain.ExemptionPending, domain.ExemptionApproved, &approver).
		Return(true, nil).Once()
	suite.mockRepo.On("FindRemittanceByID", ctx, "rem-1").Return(&decided, nil).Once()

	result, err := suite.service.DecideExemption(ctx, "rem-1", domain.ExemptionApproved, approver)

	suite.Require().NoError(err)
	suite.Equal(domain.ExemptionApproved, result.ExemptionStatus)
	suite.Require().NotNil(result.ExemptionApprover)
	suite.Equal(approver, *result.ExemptionApprover)
}

func (suite *ExemptionServiceTestSuite) TestDecideExemption_InvalidDecision() {
	ctx := context.Background()

	_, err := suite.service.DecideExemption(ctx, "rem-1", domain.ExemptionNone, "reviewer-9")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRemittanceByID", mock.Anything, mock.Anything)
}

func (suite *ExemptionServiceTestSuite) TestDecideExemption_NotPending() {
	ctx := context.Background()
	r := completeRemittance()
	r.ExemptionStatus = domain.ExemptionApproved
	suite.mockRepo.On("FindRemittanceByID", ctx, "rem-1").Return(r, nil).Once()

	_, err := suite.service.DecideExemption(ctx, "rem-1", domain.ExemptionRejected, "reviewer-9")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateExemptionStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExemptionServiceTestSuite) TestDecideExemption_ConcurrentDecision() {
	ctx := context.Background()
	r := completeRemittance()
	r.ExemptionStatus = domain.ExemptionPending
	approver := "reviewer-9"
	suite.mockRepo.On("FindRemittanceByID", ctx, "rem-1").Return(r, nil).Once()
	suite.mockRepo.On("UpdateExemptionStatus", ctx, "rem-1", domain.ExemptionPending, domain.ExemptionRejected, &approver).
		Return(false, nil).Once()

	_, err := suite.service.DecideExemption(ctx, "rem-1", domain.ExemptionRejected, approver)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ExemptionServiceTestSuite) TestProcessPendingExemptions_AutoApprovesLowRiskSmall() {
	ctx := context.Background()
	eligible := completeRemittance()
	eligible.ExemptionStatus = domain.ExemptionPending
	eligible.SenderRiskCategory = domain.RiskLow
	eligible.AmountSent = decimal.RequireFromString("250.00")

	manual := completeRemittance()
	manual.RemittanceID = "rem-2"
	manual.ExemptionStatus = domain.ExemptionPending
	manual.SenderRiskCategory = domain.RiskHigh
	manual.AmountSent = decimal.RequireFromString("250.00")

	suite.mockRepo.On("FindPendingExemptions", ctx, mock.Anything).
		Return([]domain.Remittance{*eligible, *manual}, nil).Once()
	suite.mockRepo.On("UpdateExemptionStatus", ctx, "rem-1", domain.ExemptionPending, domain.ExemptionApproved, mock.Anything).
		Return(true, nil).Once()

	decided, err := suite.service.ProcessPendingExemptions(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, decided)
	// The high-risk request stays pending for a human.
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateExemptionStatus",
		ctx, "rem-2", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExemptionServiceTestSuite) TestProcessPendingExemptions_ManualReviewerWinsRace() {
	ctx := context.Background()
	eligible := completeRemittance()
	eligible.ExemptionStatus = domain.ExemptionPending
	eligible.SenderRiskCategory = domain.RiskLow
	eligible.AmountSent = decimal.RequireFromString("100.00")

	suite.mockRepo.On("FindPendingExemptions", ctx, mock.Anything).
		Return([]domain.Remittance{*eligible}, nil).Once()
	suite.mockRepo.On("UpdateExemptionStatus", ctx, "rem-1", domain.ExemptionPending, domain.ExemptionApproved, mock.Anything).
		Return(false, nil).Once()

	decided, err := suite.service.ProcessPendingExemptions(ctx)

	suite.Require().NoError(err)
	suite.Equal(0, decided)
}

func TestExemptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExemptionServiceTestSuite))
}
