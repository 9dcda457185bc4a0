package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/remitflow/remit_backend/internal/apperrors"
	"github.com/remitflow/remit_backend/internal/core/domain"
	portsrepo "github.com/remitflow/remit_backend/internal/core/ports/repositories"
	portssvc "github.com/remitflow/remit_backend/internal/core/ports/services"
	"github.com/remitflow/remit_backend/internal/platform/config"
	"github.com/remitflow/remit_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// ConversionService implements the fee & conversion engine. All arithmetic is
// decimal; rounding to currency precision happens only at the quote boundary,
// never on intermediate values.
type ConversionService struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateReader
	currencyService portssvc.CurrencyReaderSvc

	baseCurrencyCode      string
	baseCurrencyPrecision int
	baseFee               decimal.Decimal
	feePercentage         decimal.Decimal
}

// NewConversionService creates a new ConversionService from the typed config.
func NewConversionService(cfg *config.Config, rateRepo portsrepo.ExchangeRateReader, currencyService portssvc.CurrencyReaderSvc) *ConversionService {
	return &ConversionService{
		rateRepo:              rateRepo,
		currencyService:       currencyService,
		baseCurrencyCode:      cfg.BaseCurrencyCode,
		baseCurrencyPrecision: cfg.BaseCurrencyPrecision,
		baseFee:               cfg.BaseFee,
		feePercentage:         cfg.FeePercentage,
	}
}

var _ portssvc.ConversionSvc = (*ConversionService)(nil)

// Convert converts amount from one currency to another using the latest rate
// for the pair. When only the inverse pair has a rate, it is inverted
// (rate' = 1/rate). Returns the unrounded converted amount and the rate
// snapshot actually used.
func (s *ConversionService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, *domain.ExchangeRate, error) {
	if fromCode == toCode {
		// Same-currency transfers convert 1:1
		return amount, &domain.ExchangeRate{
			FromCurrencyCode: fromCode,
			ToCurrencyCode:   toCode,
			Rate:             decimal.NewFromInt(1),
		}, nil
	}

	rate, err := s.rateRepo.FindLatestRate(ctx, fromCode, toCode)
	if err == nil {
		return amount.Mul(rate.Rate), rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, nil, fmt.Errorf("failed to look up rate %s->%s: %w", fromCode, toCode, err)
	}

	// Direct rate absent: try the inverse pair and invert.
	inverse, invErr := s.rateRepo.FindLatestRate(ctx, toCode, fromCode)
	if invErr == nil && !inverse.Rate.IsZero() {
		inverted := *inverse
		inverted.FromCurrencyCode = fromCode
		inverted.ToCurrencyCode = toCode
		inverted.Rate = decimal.NewFromInt(1).Div(inverse.Rate)
		return amount.Mul(inverted.Rate), &inverted, nil
	}
	if invErr != nil && !errors.Is(invErr, apperrors.ErrNotFound) {
		return decimal.Zero, nil, fmt.Errorf("failed to look up inverse rate %s->%s: %w", toCode, fromCode, invErr)
	}

	return decimal.Zero, nil, fmt.Errorf("%w: no rate for pair %s->%s in either direction", apperrors.ErrRateUnavailable, fromCode, toCode)
}

// ComputeFee computes baseFee + amount * feePercentage, rounded half-up to the
// base currency's minor-unit precision.
func (s *ConversionService) ComputeFee(amount decimal.Decimal) decimal.Decimal {
	fee := s.baseFee.Add(amount.Mul(s.feePercentage))
	return utils.RoundToPrecision(fee, s.baseCurrencyPrecision)
}

// QuoteRemittance prices a transfer of amountSent (base currency) into toCode.
// Amounts are rounded to their currency precision here, at the persistence
// boundary; the rate itself stays unrounded.
func (s *ConversionService) QuoteRemittance(ctx context.Context, amountSent decimal.Decimal, toCode string) (*domain.RemittanceQuote, error) {
	if amountSent.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount sent must be positive", apperrors.ErrValidation)
	}

	toCurrency, err := s.currencyService.GetCurrencyByCode(ctx, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: receiving currency '%s' not found", apperrors.ErrValidation, toCode)
		}
		return nil, fmt.Errorf("failed to validate receiving currency: %w", err)
	}
	if !toCurrency.IsActive {
		return nil, fmt.Errorf("%w: receiving currency '%s' is inactive", apperrors.ErrValidation, toCode)
	}

	converted, rate, err := s.Convert(ctx, amountSent, s.baseCurrencyCode, toCurrency.CurrencyCode)
	if err != nil {
		return nil, err
	}

	amountSent = utils.RoundToPrecision(amountSent, s.baseCurrencyPrecision)
	fee := s.ComputeFee(amountSent)

	return &domain.RemittanceQuote{
		AmountSent:       amountSent,
		AmountReceived:   utils.RoundToCurrencyPrecision(converted, *toCurrency),
		CurrencySent:     s.baseCurrencyCode,
		CurrencyReceived: toCurrency.CurrencyCode,
		ExchangeRate:     rate.Rate,
		Fee:              fee,
		TotalDebit:       amountSent.Add(fee),
	}, nil
}
