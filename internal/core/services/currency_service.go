package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/remitflow/remit_backend/internal/core/domain"
	portsrepo "github.com/remitflow/remit_backend/internal/core/ports/repositories"
	portssvc "github.com/remitflow/remit_backend/internal/core/ports/services"
	"github.com/remitflow/remit_backend/internal/dto"
)

const defaultCurrencyPrecision = 2

// CurrencyService provides business logic for currencies.
type CurrencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

// CreateCurrency persists a new currency. Codes are normalized to uppercase;
// duplicates surface as apperrors.ErrDuplicate from the repository.
func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	now := time.Now()

	precision := defaultCurrencyPrecision
	if req.Precision != nil {
		precision = *req.Precision
	}

	currency := domain.Currency{
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    precision,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	s.LogInfo(ctx, "Currency created", "currency_code", currency.CurrencyCode)
	return &currency, nil
}

// GetCurrencyByCode retrieves a specific currency by its code.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

// ListCurrencies retrieves all available currencies.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// DeactivateCurrency marks a currency inactive. Historical rates and
// remittances keep referencing it.
func (s *CurrencyService) DeactivateCurrency(ctx context.Context, currencyCode string, updaterUserID string) error {
	code := strings.ToUpper(currencyCode)
	if err := s.currencyRepo.DeactivateCurrency(ctx, code, updaterUserID); err != nil {
		return fmt.Errorf("failed to deactivate currency in service: %w", err)
	}
	s.LogInfo(ctx, "Currency deactivated", "currency_code", code)
	return nil
}
