package domain

import (
	"github.com/shopspring/decimal"
)

// EntryKind is the closed set of financial record types the ledger knows.
type EntryKind string

const (
	KindExpense            EntryKind = "EXPENSE"
	KindIncome             EntryKind = "INCOME"
	KindSalary             EntryKind = "SALARY"
	KindDebtPayment        EntryKind = "DEBT_PAYMENT"
	KindSaleItem           EntryKind = "SALE_ITEM"
	KindMoneyCirculation   EntryKind = "MONEY_CIRCULATION"
	KindSectionTransfer    EntryKind = "SECTION_TRANSFER"
	KindAccountHistory     EntryKind = "ACCOUNT_HISTORY"
	KindRawMaterialReceipt EntryKind = "RAW_MATERIAL_RECEIPT"
)

// EntryKinds lists every supported kind, used for validation.
var EntryKinds = []EntryKind{
	KindExpense, KindIncome, KindSalary, KindDebtPayment, KindSaleItem,
	KindMoneyCirculation, KindSectionTransfer, KindAccountHistory,
	KindRawMaterialReceipt,
}

// EntryStatus is the verification lifecycle of an entry.
type EntryStatus string

const (
	EntryNew      EntryStatus = "NEW"
	EntryVerified EntryStatus = "VERIFIED"
	EntryCanceled EntryStatus = "CANCELED"
)

// Direction distinguishes money given to vs. received from a counterparty
// for circulation and section transfer entries.
type Direction string

const (
	DirectionGive Direction = "GIVE"
	DirectionGet  Direction = "GET"
)

// FlowType distinguishes incoming from outgoing bank account history entries.
type FlowType string

const (
	FlowIncome  FlowType = "INCOME"
	FlowOutcome FlowType = "OUTCOME"
)

// Entry represents one financial record. Creating it applies a balance
// effect to the accounts it references; editing it reverses the previous
// effect before applying the new one; deleting it reverses only.
type Entry struct {
	EntryID      string          `json:"entryID"`
	Kind         EntryKind       `json:"kind"`
	Amount       decimal.Decimal `json:"amount"` // always positive
	CurrencyCode string          `json:"currencyCode"`

	// Account references. CreatorAccountID is the creating user's own
	// account; CounterpartyAccountID is the worker/client/acquaintance
	// account depending on kind; BankAccountID only for account history.
	CreatorAccountID      string `json:"creatorAccountID"`
	CounterpartyAccountID string `json:"counterpartyAccountID,omitempty"`
	BankAccountID         string `json:"bankAccountID,omitempty"`

	// Inventory references.
	ProductID     string `json:"productID,omitempty"`
	RawMaterialID string `json:"rawMaterialID,omitempty"`

	Direction Direction       `json:"direction,omitempty"` // GIVE or GET
	FlowType  FlowType        `json:"flowType,omitempty"`  // INCOME or OUTCOME
	Quantity  decimal.Decimal `json:"quantity,omitempty"`  // sold quantity / received weight
	UnitPrice decimal.Decimal `json:"unitPrice,omitempty"`
	IsDebt    bool            `json:"isDebt,omitempty"` // sale on credit

	SectionID string      `json:"sectionID,omitempty"`
	Status    EntryStatus `json:"status"`
	Notes     string      `json:"notes,omitempty"`
	AuditFields
}

// Normalize fills derived fields: a sale item with no explicit amount
// defaults to quantity * unit price.
func (e *Entry) Normalize() {
	if e.Kind == KindSaleItem && e.Amount.IsZero() {
		e.Amount = e.Quantity.Mul(e.UnitPrice)
	}
}

// AffectedAccountIDs returns every ledger account the entry touches.
func (e Entry) AffectedAccountIDs() []string {
	ids := make([]string, 0, 3)
	seen := make(map[string]struct{}, 3)
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	add(e.CreatorAccountID)
	add(e.CounterpartyAccountID)
	add(e.BankAccountID)
	return ids
}

// ValidKind reports whether k is one of the supported entry kinds.
func ValidKind(k EntryKind) bool {
	for _, known := range EntryKinds {
		if k == known {
			return true
		}
	}
	return false
}
