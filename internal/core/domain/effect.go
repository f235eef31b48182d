package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farruhbek/business_accounting_app/internal/apperrors"
)

// Converter converts an amount between currency codes. Implemented by the
// currency converter service; declared here so effect rules stay free of
// service imports.
type Converter interface {
	Convert(fromCode, toCode string, amount decimal.Decimal) (decimal.Decimal, error)
}

// BalanceField names one of the sub-balances an account carries.
type BalanceField string

const (
	FieldBalance       BalanceField = "balance"
	FieldDebt          BalanceField = "debt"
	FieldCreditAdvance BalanceField = "credit_advance"
)

// AccountDelta is a single signed adjustment to one sub-balance of one account.
type AccountDelta struct {
	AccountID string
	Field     BalanceField
	Delta     decimal.Decimal
}

// StockDelta is a signed adjustment to product quantity or raw material weight.
type StockDelta struct {
	ProductID     string
	RawMaterialID string
	Delta         decimal.Decimal
}

// Effect is the full set of balance and stock adjustments an entry causes.
// Applying an entry applies its effect; reversing it applies the inverse.
type Effect struct {
	Accounts []AccountDelta
	Stock    []StockDelta
}

// account adds one delta, dropping zero deltas.
func (eff *Effect) account(accountID string, field BalanceField, delta decimal.Decimal) {
	if delta.IsZero() {
		return
	}
	eff.Accounts = append(eff.Accounts, AccountDelta{AccountID: accountID, Field: field, Delta: delta})
}

// BuildEffect computes the balance effect of applying the entry, using the
// supplied locked snapshots of every account it references. Validation
// failures (debt cap, missing client, invalid flow type) are reported as
// typed errors and must abort the surrounding transaction.
func BuildEffect(e Entry, accounts map[string]Account, conv Converter) (Effect, error) {
	return buildEffect(e, accounts, conv, false)
}

// BuildReversal computes the exact inverse of the entry's effect, evaluated
// against the current snapshots and current rates. Money circulation
// reverses by running the opposite direction's offset rule; every other
// kind negates its forward deltas. Reversal never enforces the debt cap.
func BuildReversal(e Entry, accounts map[string]Account, conv Converter) (Effect, error) {
	return buildEffect(e, accounts, conv, true)
}

func buildEffect(e Entry, accounts map[string]Account, conv Converter, reverse bool) (Effect, error) {
	var eff Effect

	sign := decimal.NewFromInt(1)
	if reverse {
		sign = decimal.NewFromInt(-1)
	}

	// convTo converts the entry amount into the given account's currency.
	convTo := func(accountID string) (decimal.Decimal, Account, error) {
		acc, ok := accounts[accountID]
		if !ok {
			return decimal.Zero, Account{}, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		amt, err := conv.Convert(e.CurrencyCode, acc.CurrencyCode, e.Amount)
		if err != nil {
			return decimal.Zero, Account{}, err
		}
		return amt, acc, nil
	}

	switch e.Kind {
	case KindExpense:
		amt, _, err := convTo(e.CreatorAccountID)
		if err != nil {
			return Effect{}, err
		}
		eff.account(e.CreatorAccountID, FieldBalance, amt.Neg().Mul(sign))

	case KindIncome:
		target := e.CounterpartyAccountID
		if target == "" {
			target = e.CreatorAccountID
		}
		amt, _, err := convTo(target)
		if err != nil {
			return Effect{}, err
		}
		eff.account(target, FieldBalance, amt.Mul(sign))

	case KindSalary:
		workerAmt, _, err := convTo(e.CounterpartyAccountID)
		if err != nil {
			return Effect{}, err
		}
		payerAmt, _, err := convTo(e.CreatorAccountID)
		if err != nil {
			return Effect{}, err
		}
		eff.account(e.CounterpartyAccountID, FieldBalance, workerAmt.Mul(sign))
		eff.account(e.CreatorAccountID, FieldBalance, payerAmt.Neg().Mul(sign))

	case KindDebtPayment:
		amt, client, err := convTo(e.CounterpartyAccountID)
		if err != nil {
			return Effect{}, err
		}
		if !reverse && amt.GreaterThan(client.Debt) {
			return Effect{}, fmt.Errorf("%w: payment %s exceeds debt %s", apperrors.ErrDebtExceeded, amt, client.Debt)
		}
		eff.account(e.CounterpartyAccountID, FieldDebt, amt.Neg().Mul(sign))

	case KindSaleItem:
		if e.ProductID != "" {
			eff.Stock = append(eff.Stock, StockDelta{ProductID: e.ProductID, Delta: e.Quantity.Neg().Mul(sign)})
		}
		if e.IsDebt {
			if e.CounterpartyAccountID == "" {
				return Effect{}, apperrors.ErrClientRequired
			}
			amt, _, err := convTo(e.CounterpartyAccountID)
			if err != nil {
				return Effect{}, err
			}
			eff.account(e.CounterpartyAccountID, FieldDebt, amt.Mul(sign))
		} else {
			amt, _, err := convTo(e.CreatorAccountID)
			if err != nil {
				return Effect{}, err
			}
			eff.account(e.CreatorAccountID, FieldBalance, amt.Mul(sign))
		}

	case KindMoneyCirculation:
		direction := e.Direction
		if reverse {
			// The inverse of receiving money is giving it back: the
			// opposite direction's offset rule restores debt/credit
			// through the same drain-then-remainder path.
			direction = oppositeDirection(direction)
		}
		if err := circulationEffect(&eff, e, direction, accounts, conv); err != nil {
			return Effect{}, err
		}

	case KindSectionTransfer:
		creatorAmt, _, err := convTo(e.CreatorAccountID)
		if err != nil {
			return Effect{}, err
		}
		sectionAmt, _, err := convTo(e.CounterpartyAccountID)
		if err != nil {
			return Effect{}, err
		}
		switch e.Direction {
		case DirectionGive:
			eff.account(e.CreatorAccountID, FieldBalance, creatorAmt.Neg().Mul(sign))
			eff.account(e.CounterpartyAccountID, FieldBalance, sectionAmt.Mul(sign))
		case DirectionGet:
			eff.account(e.CreatorAccountID, FieldBalance, creatorAmt.Mul(sign))
			eff.account(e.CounterpartyAccountID, FieldBalance, sectionAmt.Neg().Mul(sign))
		default:
			return Effect{}, fmt.Errorf("%w: transfer direction %q", apperrors.ErrInvalidEntryType, e.Direction)
		}

	case KindAccountHistory:
		amt, _, err := convTo(e.BankAccountID)
		if err != nil {
			return Effect{}, err
		}
		switch e.FlowType {
		case FlowIncome:
			eff.account(e.BankAccountID, FieldBalance, amt.Mul(sign))
		case FlowOutcome:
			eff.account(e.BankAccountID, FieldBalance, amt.Neg().Mul(sign))
		default:
			return Effect{}, fmt.Errorf("%w: account history flow %q", apperrors.ErrInvalidEntryType, e.FlowType)
		}

	case KindRawMaterialReceipt:
		if e.RawMaterialID != "" {
			eff.Stock = append(eff.Stock, StockDelta{RawMaterialID: e.RawMaterialID, Delta: e.Quantity.Mul(sign)})
		}
		amt, _, err := convTo(e.CreatorAccountID)
		if err != nil {
			return Effect{}, err
		}
		eff.account(e.CreatorAccountID, FieldBalance, amt.Neg().Mul(sign))

	default:
		return Effect{}, fmt.Errorf("%w: entry kind %q", apperrors.ErrInvalidEntryType, e.Kind)
	}

	return eff, nil
}

// circulationEffect applies the offset-then-remainder rule for money
// circulation. GET (money received from an acquaintance) raises their debt
// to the business, draining any credit advance first, and credits the
// creator. GIVE is the mirror image.
func circulationEffect(eff *Effect, e Entry, direction Direction, accounts map[string]Account, conv Converter) error {
	other, ok := accounts[e.CounterpartyAccountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, e.CounterpartyAccountID)
	}
	creator, ok := accounts[e.CreatorAccountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, e.CreatorAccountID)
	}

	otherAmt, err := conv.Convert(e.CurrencyCode, other.CurrencyCode, e.Amount)
	if err != nil {
		return err
	}
	creatorAmt, err := conv.Convert(e.CurrencyCode, creator.CurrencyCode, e.Amount)
	if err != nil {
		return err
	}

	switch direction {
	case DirectionGet:
		drain, remainder := offsetSplit(other.CreditAdvance, otherAmt)
		eff.account(other.AccountID, FieldCreditAdvance, drain.Neg())
		eff.account(other.AccountID, FieldDebt, remainder)
		eff.account(creator.AccountID, FieldBalance, creatorAmt)
	case DirectionGive:
		drain, remainder := offsetSplit(other.Debt, otherAmt)
		eff.account(other.AccountID, FieldDebt, drain.Neg())
		eff.account(other.AccountID, FieldCreditAdvance, remainder)
		eff.account(creator.AccountID, FieldBalance, creatorAmt.Neg())
	default:
		return fmt.Errorf("%w: circulation direction %q", apperrors.ErrInvalidEntryType, direction)
	}
	return nil
}

// offsetSplit drains the counter-balance first: with counter C and
// magnitude M, C >= M drains M with no remainder; otherwise the whole
// counter drains and M-C remains to accrue on the opposite side.
func offsetSplit(counter, magnitude decimal.Decimal) (drain, remainder decimal.Decimal) {
	if counter.GreaterThanOrEqual(magnitude) {
		return magnitude, decimal.Zero
	}
	return counter, magnitude.Sub(counter)
}

func oppositeDirection(d Direction) Direction {
	if d == DirectionGet {
		return DirectionGive
	}
	return DirectionGet
}

// ApplyToSnapshot folds the effect's account deltas into the in-memory
// snapshots, so a subsequent effect computation in the same transaction
// (the apply half of an edit) sees post-reversal balances.
func ApplyToSnapshot(accounts map[string]Account, eff Effect) {
	for _, d := range eff.Accounts {
		acc, ok := accounts[d.AccountID]
		if !ok {
			continue
		}
		switch d.Field {
		case FieldDebt:
			acc.Debt = acc.Debt.Add(d.Delta)
		case FieldCreditAdvance:
			acc.CreditAdvance = acc.CreditAdvance.Add(d.Delta)
		default:
			acc.Balance = acc.Balance.Add(d.Delta)
		}
		accounts[d.AccountID] = acc
	}
}
