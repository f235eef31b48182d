package domain

import (
	"github.com/shopspring/decimal"
)

// OwnerType identifies what kind of entity holds a ledger account.
type OwnerType string

const (
	OwnerPerson  OwnerType = "PERSON"
	OwnerSection OwnerType = "SECTION"
	OwnerBank    OwnerType = "BANK"
)

// Account represents a balance-holding entity: a person (worker, driver,
// client, supplier, acquaintance), a section pseudo-account (factory,
// logistic, garden, fridge, general) or a bank account.
//
// Balance, Debt and CreditAdvance are mutated only through ledger entry
// effects, never directly by handlers. Debt is what the owner owes the
// business; CreditAdvance is what the business owes the owner. The two
// offset each other before either grows (see ApplyToSnapshot / effect
// rules for money circulation).
type Account struct {
	AccountID     string          `json:"accountID"`
	OwnerID       string          `json:"ownerID"`   // user/section/bank entity id
	OwnerType     OwnerType       `json:"ownerType"` // PERSON, SECTION or BANK
	Name          string          `json:"name"`
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"`
	Debt          decimal.Decimal `json:"debt"`          // person accounts only
	CreditAdvance decimal.Decimal `json:"creditAdvance"` // person accounts only
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// FieldValue returns the named sub-balance of the account.
func (a Account) FieldValue(field BalanceField) decimal.Decimal {
	switch field {
	case FieldDebt:
		return a.Debt
	case FieldCreditAdvance:
		return a.CreditAdvance
	default:
		return a.Balance
	}
}
