package dto

import (
	"github.com/shopspring/decimal"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
)

// CreateAccountRequest is the payload for creating a ledger account.
type CreateAccountRequest struct {
	OwnerID      string `json:"ownerID" binding:"required"`
	OwnerType    string `json:"ownerType" binding:"required,oneof=PERSON SECTION BANK"`
	Name         string `json:"name" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
}

// AccountResponse is the API representation of a ledger account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	OwnerID       string          `json:"ownerID"`
	OwnerType     string          `json:"ownerType"`
	Name          string          `json:"name"`
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"`
	Debt          decimal.Decimal `json:"debt"`
	CreditAdvance decimal.Decimal `json:"creditAdvance"`
	IsActive      bool            `json:"isActive"`
}

// ListAccountsParams pages account listings.
type ListAccountsParams struct {
	OwnerType string `form:"ownerType"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// ToAccountResponse converts a domain.Account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		OwnerID:       a.OwnerID,
		OwnerType:     string(a.OwnerType),
		Name:          a.Name,
		CurrencyCode:  a.CurrencyCode,
		Balance:       a.Balance,
		Debt:          a.Debt,
		CreditAdvance: a.CreditAdvance,
		IsActive:      a.IsActive,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
