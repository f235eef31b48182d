package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
)

// CreateEntryRequest is the payload for creating a ledger entry.
type CreateEntryRequest struct {
	Kind         string          `json:"kind" binding:"required,entrykind"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`

	CounterpartyAccountID string `json:"counterpartyAccountID"`
	BankAccountID         string `json:"bankAccountID"`
	ProductID             string `json:"productID"`
	RawMaterialID         string `json:"rawMaterialID"`

	Direction string          `json:"direction" binding:"omitempty,oneof=GIVE GET"`
	FlowType  string          `json:"flowType" binding:"omitempty,oneof=INCOME OUTCOME"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsDebt    bool            `json:"isDebt"`

	SectionID string `json:"sectionID"`
	Notes     string `json:"notes"`
}

// UpdateEntryRequest carries the editable fields of an entry. Nil fields
// keep their previous values; the ledger still reverses the full previous
// effect and applies the merged entry's effect.
type UpdateEntryRequest struct {
	Amount                *decimal.Decimal `json:"amount"`
	CurrencyCode          *string          `json:"currencyCode" binding:"omitempty,len=3"`
	CounterpartyAccountID *string          `json:"counterpartyAccountID"`
	BankAccountID         *string          `json:"bankAccountID"`
	ProductID             *string          `json:"productID"`
	RawMaterialID         *string          `json:"rawMaterialID"`
	Direction             *string          `json:"direction" binding:"omitempty,oneof=GIVE GET"`
	FlowType              *string          `json:"flowType" binding:"omitempty,oneof=INCOME OUTCOME"`
	Quantity              *decimal.Decimal `json:"quantity"`
	UnitPrice             *decimal.Decimal `json:"unitPrice"`
	IsDebt                *bool            `json:"isDebt"`
	Notes                 *string          `json:"notes"`
}

// ListEntriesParams narrows and pages entry listings.
type ListEntriesParams struct {
	Kind      string `form:"kind"`
	SectionID string `form:"sectionID"`
	AccountID string `form:"accountID"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// EntryResponse is the API representation of a ledger entry.
type EntryResponse struct {
	EntryID               string          `json:"entryID"`
	Kind                  string          `json:"kind"`
	Amount                decimal.Decimal `json:"amount"`
	CurrencyCode          string          `json:"currencyCode"`
	CreatorAccountID      string          `json:"creatorAccountID"`
	CounterpartyAccountID string          `json:"counterpartyAccountID,omitempty"`
	BankAccountID         string          `json:"bankAccountID,omitempty"`
	ProductID             string          `json:"productID,omitempty"`
	RawMaterialID         string          `json:"rawMaterialID,omitempty"`
	Direction             string          `json:"direction,omitempty"`
	FlowType              string          `json:"flowType,omitempty"`
	Quantity              decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice             decimal.Decimal `json:"unitPrice,omitempty"`
	IsDebt                bool            `json:"isDebt,omitempty"`
	SectionID             string          `json:"sectionID,omitempty"`
	Status                string          `json:"status"`
	Notes                 string          `json:"notes,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	CreatedBy             string          `json:"createdBy"`
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// ToEntryResponse converts a domain.Entry to its API representation.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:               e.EntryID,
		Kind:                  string(e.Kind),
		Amount:                e.Amount,
		CurrencyCode:          e.CurrencyCode,
		CreatorAccountID:      e.CreatorAccountID,
		CounterpartyAccountID: e.CounterpartyAccountID,
		BankAccountID:         e.BankAccountID,
		ProductID:             e.ProductID,
		RawMaterialID:         e.RawMaterialID,
		Direction:             string(e.Direction),
		FlowType:              string(e.FlowType),
		Quantity:              e.Quantity,
		UnitPrice:             e.UnitPrice,
		IsDebt:                e.IsDebt,
		SectionID:             e.SectionID,
		Status:                string(e.Status),
		Notes:                 e.Notes,
		CreatedAt:             e.CreatedAt,
		CreatedBy:             e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of entries.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
