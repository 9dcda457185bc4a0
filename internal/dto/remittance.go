package dto

import (
	"time"

	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRemittanceRequest defines the data needed to initiate a cross-border transfer.
// Sender identity fields come from the (external) KYC pipeline and are passed
// through; they are required at report-build time, not at creation.
type CreateRemittanceRequest struct {
	SenderName           string `json:"senderName" binding:"required"`
	SenderCountry        string `json:"senderCountry" binding:"required,len=2,uppercase"`
	SenderIdentification string `json:"senderIdentification"`
	SenderRiskCategory   string `json:"senderRiskCategory" binding:"omitempty,oneof=low medium high"`

	RecipientName    string `json:"recipientName" binding:"required"`
	RecipientPhone   string `json:"recipientPhone" binding:"required"`
	RecipientCountry string `json:"recipientCountry" binding:"required,len=2,uppercase"`

	AmountSent       decimal.Decimal `json:"amountSent" binding:"required"`
	CurrencyReceived string          `json:"currencyReceived" binding:"required,currencycode"`
	Purpose          string          `json:"purpose" binding:"required"`

	SourceOfFundsVerified bool `json:"sourceOfFundsVerified"`
	RecipientVerified     bool `json:"recipientVerified"`
}

// UpdateRemittanceStatusRequest moves a remittance along its lifecycle.
type UpdateRemittanceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=processing completed failed cancelled"`
}

// ExemptionDecisionRequest records a manual exemption review outcome.
type ExemptionDecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}

// QuoteRequest prices a prospective transfer without creating it.
type QuoteRequest struct {
	AmountSent       decimal.Decimal `form:"amountSent" binding:"required"`
	CurrencyReceived string          `form:"currencyReceived" binding:"required,currencycode"`
}

// QuoteResponse returns the fee & conversion engine result.
type QuoteResponse struct {
	AmountSent       decimal.Decimal `json:"amountSent"`
	AmountReceived   decimal.Decimal `json:"amountReceived"`
	CurrencySent     string          `json:"currencySent"`
	CurrencyReceived string          `json:"currencyReceived"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	Fee              decimal.Decimal `json:"fee"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
}

// ToQuoteResponse converts a domain.RemittanceQuote to its response DTO.
func ToQuoteResponse(q *domain.RemittanceQuote) QuoteResponse {
	return QuoteResponse{
		AmountSent:       q.AmountSent,
		AmountReceived:   q.AmountReceived,
		CurrencySent:     q.CurrencySent,
		CurrencyReceived: q.CurrencyReceived,
		ExchangeRate:     q.ExchangeRate,
		Fee:              q.Fee,
		TotalDebit:       q.TotalDebit,
	}
}

// RemittanceResponse defines the data returned for a remittance.
type RemittanceResponse struct {
	RemittanceID    string `json:"remittanceID"`
	ReferenceNumber string `json:"referenceNumber"`

	SenderName         string `json:"senderName"`
	SenderCountry      string `json:"senderCountry"`
	SenderRiskCategory string `json:"senderRiskCategory"`

	RecipientName    string `json:"recipientName"`
	RecipientPhone   string `json:"recipientPhone"`
	RecipientCountry string `json:"recipientCountry"`

	AmountSent       decimal.Decimal `json:"amountSent"`
	AmountReceived   decimal.Decimal `json:"amountReceived"`
	CurrencySent     string          `json:"currencySent"`
	CurrencyReceived string          `json:"currencyReceived"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	Fee              decimal.Decimal `json:"fee"`
	Purpose          string          `json:"purpose"`

	Status            string  `json:"status"`
	ExemptionStatus   string  `json:"exemptionStatus"`
	ExemptionApprover *string `json:"exemptionApprover,omitempty"`

	SourceOfFundsVerified bool `json:"sourceOfFundsVerified"`
	RecipientVerified     bool `json:"recipientVerified"`

	ReportedToRegulator bool    `json:"reportedToRegulator"`
	ReportReference     *string `json:"reportReference,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ToRemittanceResponse converts a domain.Remittance to RemittanceResponse DTO
func ToRemittanceResponse(r *domain.Remittance) RemittanceResponse {
	return RemittanceResponse{
		RemittanceID:          r.RemittanceID,
		ReferenceNumber:       r.ReferenceNumber,
		SenderName:            r.SenderName,
		SenderCountry:         r.SenderCountry,
		SenderRiskCategory:    string(r.SenderRiskCategory),
		RecipientName:         r.RecipientName,
		RecipientPhone:        r.RecipientPhone,
		RecipientCountry:      r.RecipientCountry,
		AmountSent:            r.AmountSent,
		AmountReceived:        r.AmountReceived,
		CurrencySent:          r.CurrencySent,
		CurrencyReceived:      r.CurrencyReceived,
		ExchangeRate:          r.ExchangeRate,
		Fee:                   r.Fee,
		Purpose:               r.Purpose,
		Status:                string(r.Status),
		ExemptionStatus:       string(r.ExemptionStatus),
		ExemptionApprover:     r.ExemptionApprover,
		SourceOfFundsVerified: r.SourceOfFundsVerified,
		RecipientVerified:     r.RecipientVerified,
		ReportedToRegulator:   r.ReportedToRegulator,
		ReportReference:       r.ReportReference,
		CreatedAt:             r.CreatedAt,
	}
}

// ListRemittancesResponse wraps a paginated remittance listing.
type ListRemittancesResponse struct {
	Remittances []RemittanceResponse `json:"remittances"`
	Total       int                  `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"pageSize"`
}

// ToListRemittanceResponse converts domain remittances to response DTOs.
func ToListRemittanceResponse(rs []domain.Remittance) []RemittanceResponse {
	res := make([]RemittanceResponse, len(rs))
	for i := range rs {
		res[i] = ToRemittanceResponse(&rs[i])
	}
	return res
}
