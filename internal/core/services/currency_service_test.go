package services_test

import (
	"context"
	"testing"

	"github.com/remitflow/remit_backend/internal/apperrors"
	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/remitflow/remit_backend/internal/core/services"
	"github.com/remitflow/remit_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  *services.CurrencyService
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "ghs",
		Symbol:       "GH₵",
		Name:         "Ghanaian Cedi",
	}
	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal("GHS", currency.CurrencyCode)
	suite.Equal(2, currency.Precision)
	suite.True(currency.IsActive)
	suite.Equal("user-1", currency.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_CustomPrecision() {
	ctx := context.Background()
	precision := 0
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "JPY",
		Symbol:       "¥",
		Name:         "Japanese Yen",
		Precision:    &precision,
	}
	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "JPY" && c.Precision == 0
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(0, currency.Precision)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Duplicate() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"}
	suite.mockRepo.On("SaveCurrency", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateCurrency(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NormalizesCase() {
	ctx := context.Background()
	want := &domain.Currency{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2, IsActive: true}
	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(want, nil).Once()

	got, err := suite.service.GetCurrencyByCode(ctx, "usd")

	suite.Require().NoError(err)
	suite.Equal("USD", got.CurrencyCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetCurrencyByCode(ctx, "XXX")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_NilBecomesEmpty() {
	ctx := context.Background()
	suite.mockRepo.On("ListCurrencies", ctx).Return(nil, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx)

	suite.Require().NoError(err)
	suite.NotNil(currencies)
	suite.Empty(currencies)
}

func (suite *CurrencyServiceTestSuite) TestDeactivateCurrency() {
	ctx := context.Background()
	suite.mockRepo.On("DeactivateCurrency", ctx, "GHS", "user-1").Return(nil).Once()

	err := suite.service.DeactivateCurrency(ctx, "ghs", "user-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
