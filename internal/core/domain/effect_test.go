package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farruhbek/business_accounting_app/internal/apperrors"
	"github.com/farruhbek/business_accounting_app/internal/core/domain"
)

// rateConverter converts through a table of base-currency values, the way
// the live rate cache does.
type rateConverter struct {
	rates map[string]decimal.Decimal
}

func (c rateConverter) Convert(fromCode, toCode string, amount decimal.Decimal) (decimal.Decimal, error) {
	if fromCode == toCode {
		return amount, nil
	}
	from, ok := c.rates[fromCode]
	if !ok {
		return decimal.Zero, apperrors.ErrUnknownCurrency
	}
	to, ok := c.rates[toCode]
	if !ok || to.IsZero() {
		return decimal.Zero, apperrors.ErrUnknownCurrency
	}
	return amount.Mul(from).Div(to).Round(2), nil
}

func testConverter() domain.Converter {
	return rateConverter{rates: map[string]decimal.Decimal{
		"UZS": decimal.NewFromInt(1),
		"USD": decimal.NewFromInt(12500),
	}}
}

func acct(id, currency string, balance, debt, credit int64) domain.Account {
	return domain.Account{
		AccountID:     id,
		CurrencyCode:  currency,
		Balance:       decimal.NewFromInt(balance),
		Debt:          decimal.NewFromInt(debt),
		CreditAdvance: decimal.NewFromInt(credit),
		IsActive:      true,
	}
}

func deltaFor(t *testing.T, eff domain.Effect, accountID string, field domain.BalanceField) decimal.Decimal {
	t.Helper()
	total := decimal.Zero
	for _, d := range eff.Accounts {
		if d.AccountID == accountID && d.Field == field {
			total = total.Add(d.Delta)
		}
	}
	return total
}

func TestBuildEffect_Expense(t *testing.T) {
	accounts := map[string]domain.Account{
		"creator": acct("creator", "UZS", 1000, 0, 0),
	}
	entry := domain.Entry{
		Kind:             domain.KindExpense,
		Amount:           decimal.NewFromInt(300),
		CurrencyCode:     "UZS",
		CreatorAccountID: "creator",
	}

	eff, err := domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "creator", domain.FieldBalance).Equal(decimal.NewFromInt(-300)))
	assert.Empty(t, eff.Stock)
}

func TestBuildEffect_Expense_CrossCurrency(t *testing.T) {
	accounts := map[string]domain.Account{
		"creator": acct("creator", "UZS", 0, 0, 0),
	}
	entry := domain.Entry{
		Kind:             domain.KindExpense,
		Amount:           decimal.NewFromInt(2),
		CurrencyCode:     "USD",
		CreatorAccountID: "creator",
	}

	eff, err := domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "creator", domain.FieldBalance).Equal(decimal.NewFromInt(-25000)))
}

func TestBuildEffect_Income_TargetsCounterpartyWhenSet(t *testing.T) {
	accounts := map[string]domain.Account{
		"creator": acct("creator", "UZS", 0, 0, 0),
		"other":   acct("other", "UZS", 0, 0, 0),
	}
	entry := domain.Entry{
		Kind:                  domain.KindIncome,
		Amount:                decimal.NewFromInt(500),
		CurrencyCode:          "UZS",
		CreatorAccountID:      "creator",
		CounterpartyAccountID: "other",
	}

	eff, err := domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "other", domain.FieldBalance).Equal(decimal.NewFromInt(500)))
	assert.True(t, deltaFor(t, eff, "creator", domain.FieldBalance).IsZero())

	entry.CounterpartyAccountID = ""
	eff, err = domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "creator", domain.FieldBalance).Equal(decimal.NewFromInt(500)))
}

func TestBuildEffect_Salary_ConvertsPerAccountCurrency(t *testing.T) {
	accounts := map[string]domain.Account{
		"payer":  acct("payer", "UZS", 0, 0, 0),
		"worker": acct("worker", "USD", 0, 0, 0),
	}
	entry := domain.Entry{
		Kind:                  domain.KindSalary,
		Amount:                decimal.NewFromInt(125000),
		CurrencyCode:          "UZS",
		CreatorAccountID:      "payer",
		CounterpartyAccountID: "worker",
	}

	eff, err := domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "worker", domain.FieldBalance).Equal(decimal.NewFromInt(10)))
	assert.True(t, deltaFor(t, eff, "payer", domain.FieldBalance).Equal(decimal.NewFromInt(-125000)))
}

func TestBuildEffect_DebtPayment_ReducesDebt(t *testing.T) {
	accounts := map[string]domain.Account{
		"creator": acct("creator", "UZS", 0, 0, 0),
		"client":  acct("client", "UZS", 0, 800, 0),
	}
	entry := domain.Entry{
		Kind:                  domain.KindDebtPayment,
		Amount:                decimal.NewFromInt(300),
		CurrencyCode:          "UZS",
		CreatorAccountID:      "creator",
		CounterpartyAccountID: "client",
	}

	eff, err := domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "client", domain.FieldDebt).Equal(decimal.NewFromInt(-300)))
}

func TestBuildEffect_DebtPayment_RejectsOverpayment(t *testing.T) {
	accounts := map[string]domain.Account{
		"creator": acct("creator", "UZS", 0, 0, 0),
		"client":  acct("client", "UZS", 0, 100, 0),
	}
	entry := domain.Entry{
		Kind:                  domain.KindDebtPayment,
		Amount:                decimal.NewFromInt(300),
		CurrencyCode:          "UZS",
		CreatorAccountID:      "creator",
		CounterpartyAccountID: "client",
	}

	_, err := domain.BuildEffect(entry, accounts, testConverter())
	assert.ErrorIs(t, err, apperrors.ErrDebtExceeded)

	// The cap never blocks a reversal: undoing a payment restores debt.
	_, err = domain.BuildReversal(entry, accounts, testConverter())
	assert.NoError(t, err)
}

func TestBuildEffect_SaleItem_Cash(t *testing.T) {
	accounts := map[string]domain.Account{
		"creator": acct("creator", "UZS", 0, 0, 0),
	}
	entry := domain.Entry{
		Kind:             domain.KindSaleItem,
		Amount:           decimal.NewFromInt(600),
		CurrencyCode:     "UZS",
		CreatorAccountID: "creator",
		ProductID:        "prod-1",
		Quantity:         decimal.NewFromInt(3),
	}

	eff, err := domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "creator", domain.FieldBalance).Equal(decimal.NewFromInt(600)))
	require.Len(t, eff.Stock, 1)
	assert.Equal(t, "prod-1", eff.Stock[0].ProductID)
	assert.True(t, eff.Stock[0].Delta.Equal(decimal.NewFromInt(-3)))
}

func TestBuildEffect_SaleItem_OnCredit(t *testing.T) {
	accounts := map[string]domain.Account{
		"creator": acct("creator", "UZS", 0, 0, 0),
		"client":  acct("client", "UZS", 0, 0, 0),
	}
	entry := domain.Entry{
		Kind:                  domain.KindSaleItem,
		Amount:                decimal.NewFromInt(600),
		CurrencyCode:          "UZS",
		CreatorAccountID:      "creator",
		CounterpartyAccountID: "client",
		ProductID:             "prod-1",
		Quantity:              decimal.NewFromInt(3),
		IsDebt:                true,
	}

	eff, err := domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "client", domain.FieldDebt).Equal(decimal.NewFromInt(600)))
	assert.True(t, deltaFor(t, eff, "creator", domain.FieldBalance).IsZero())
}

func TestBuildEffect_SaleItem_CreditWithoutClientFails(t *testing.T) {
	accounts := map[string]domain.Account{
		"creator": acct("creator", "UZS", 0, 0, 0),
	}
	entry := domain.Entry{
		Kind:             domain.KindSaleItem,
		Amount:           decimal.NewFromInt(600),
		CurrencyCode:     "UZS",
		CreatorAccountID: "creator",
		IsDebt:           true,
	}

	_, err := domain.BuildEffect(entry, accounts, testConverter())
	assert.ErrorIs(t, err, apperrors.ErrClientRequired)
}

func TestBuildEffect_Circulation_GetDrainsCreditAdvanceFirst(t *testing.T) {
	tests := []struct {
		name          string
		creditAdvance int64
		amount        int64
		wantDrain     int64
		wantRemainder int64
	}{
		{"credit covers amount", 500, 300, -300, 0},
		{"credit partially covers", 200, 300, -200, 100},
		{"no credit", 0, 300, 0, 300},
		{"credit equals amount", 300, 300, -300, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := map[string]domain.Account{
				"creator": acct("creator", "UZS", 0, 0, 0),
				"friend":  acct("friend", "UZS", 0, 0, tt.creditAdvance),
			}
			entry := domain.Entry{
				Kind:                  domain.KindMoneyCirculation,
				Amount:                decimal.NewFromInt(tt.amount),
				CurrencyCode:          "UZS",
				CreatorAccountID:      "creator",
				CounterpartyAccountID: "friend",
				Direction:             domain.DirectionGet,
			}

			eff, err := domain.BuildEffect(entry, accounts, testConverter())
			require.NoError(t, err)
			assert.True(t, deltaFor(t, eff, "friend", domain.FieldCreditAdvance).Equal(decimal.NewFromInt(tt.wantDrain)),
				"credit advance delta")
			assert.True(t, deltaFor(t, eff, "friend", domain.FieldDebt).Equal(decimal.NewFromInt(tt.wantRemainder)),
				"debt delta")
			assert.True(t, deltaFor(t, eff, "creator", domain.FieldBalance).Equal(decimal.NewFromInt(tt.amount)))
		})
	}
}

func TestBuildEffect_Circulation_GiveDrainsDebtFirst(t *testing.T) {
	accounts := map[string]domain.Account{
		"creator": acct("creator", "UZS", 0, 0, 0),
		"friend":  acct("friend", "UZS", 0, 200, 0),
	}
	entry := domain.Entry{
		Kind:                  domain.KindMoneyCirculation,
		Amount:                decimal.NewFromInt(300),
		CurrencyCode:          "UZS",
		CreatorAccountID:      "creator",
		CounterpartyAccountID: "friend",
		Direction:             domain.DirectionGive,
	}

	eff, err := domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "friend", domain.FieldDebt).Equal(decimal.NewFromInt(-200)))
	assert.True(t, deltaFor(t, eff, "friend", domain.FieldCreditAdvance).Equal(decimal.NewFromInt(100)))
	assert.True(t, deltaFor(t, eff, "creator", domain.FieldBalance).Equal(decimal.NewFromInt(-300)))
}

func TestBuildReversal_Circulation_RestoresState(t *testing.T) {
	// GET of 300 against 200 credit advance leaves the friend with
	// 0 credit and 100 debt. Reversing from that state must restore
	// 200 credit and 0 debt.
	accounts := map[string]domain.Account{
		"creator": acct("creator", "UZS", 0, 0, 0),
		"friend":  acct("friend", "UZS", 0, 0, 200),
	}
	entry := domain.Entry{
		Kind:                  domain.KindMoneyCirculation,
		Amount:                decimal.NewFromInt(300),
		CurrencyCode:          "UZS",
		CreatorAccountID:      "creator",
		CounterpartyAccountID: "friend",
		Direction:             domain.DirectionGet,
	}

	forward, err := domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	domain.ApplyToSnapshot(accounts, forward)
	assert.True(t, accounts["friend"].CreditAdvance.IsZero())
	assert.True(t, accounts["friend"].Debt.Equal(decimal.NewFromInt(100)))

	reversal, err := domain.BuildReversal(entry, accounts, testConverter())
	require.NoError(t, err)
	domain.ApplyToSnapshot(accounts, reversal)

	assert.True(t, accounts["friend"].CreditAdvance.Equal(decimal.NewFromInt(200)))
	assert.True(t, accounts["friend"].Debt.IsZero())
	assert.True(t, accounts["creator"].Balance.IsZero())
}

func TestBuildEffect_SectionTransfer(t *testing.T) {
	accounts := map[string]domain.Account{
		"creator": acct("creator", "UZS", 0, 0, 0),
		"section": acct("section", "UZS", 0, 0, 0),
	}
	entry := domain.Entry{
		Kind:                  domain.KindSectionTransfer,
		Amount:                decimal.NewFromInt(1000),
		CurrencyCode:          "UZS",
		CreatorAccountID:      "creator",
		CounterpartyAccountID: "section",
		Direction:             domain.DirectionGive,
	}

	eff, err := domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "creator", domain.FieldBalance).Equal(decimal.NewFromInt(-1000)))
	assert.True(t, deltaFor(t, eff, "section", domain.FieldBalance).Equal(decimal.NewFromInt(1000)))

	entry.Direction = domain.DirectionGet
	eff, err = domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "creator", domain.FieldBalance).Equal(decimal.NewFromInt(1000)))
	assert.True(t, deltaFor(t, eff, "section", domain.FieldBalance).Equal(decimal.NewFromInt(-1000)))

	entry.Direction = ""
	_, err = domain.BuildEffect(entry, accounts, testConverter())
	assert.ErrorIs(t, err, apperrors.ErrInvalidEntryType)
}

func TestBuildEffect_AccountHistory(t *testing.T) {
	accounts := map[string]domain.Account{
		"creator": acct("creator", "UZS", 0, 0, 0),
		"bank":    acct("bank", "UZS", 0, 0, 0),
	}
	entry := domain.Entry{
		Kind:             domain.KindAccountHistory,
		Amount:           decimal.NewFromInt(400),
		CurrencyCode:     "UZS",
		CreatorAccountID: "creator",
		BankAccountID:    "bank",
		FlowType:         domain.FlowIncome,
	}

	eff, err := domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "bank", domain.FieldBalance).Equal(decimal.NewFromInt(400)))

	entry.FlowType = domain.FlowOutcome
	eff, err = domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "bank", domain.FieldBalance).Equal(decimal.NewFromInt(-400)))

	entry.FlowType = "SIDEWAYS"
	_, err = domain.BuildEffect(entry, accounts, testConverter())
	assert.ErrorIs(t, err, apperrors.ErrInvalidEntryType)
}

func TestBuildEffect_RawMaterialReceipt(t *testing.T) {
	accounts := map[string]domain.Account{
		"creator": acct("creator", "UZS", 0, 0, 0),
	}
	entry := domain.Entry{
		Kind:             domain.KindRawMaterialReceipt,
		Amount:           decimal.NewFromInt(700),
		CurrencyCode:     "UZS",
		CreatorAccountID: "creator",
		RawMaterialID:    "raw-1",
		Quantity:         decimal.NewFromInt(50),
	}

	eff, err := domain.BuildEffect(entry, accounts, testConverter())
	require.NoError(t, err)
	assert.True(t, deltaFor(t, eff, "creator", domain.FieldBalance).Equal(decimal.NewFromInt(-700)))
	require.Len(t, eff.Stock, 1)
	assert.Equal(t, "raw-1", eff.Stock[0].RawMaterialID)
	assert.True(t, eff.Stock[0].Delta.Equal(decimal.NewFromInt(50)))
}

func TestBuildEffect_UnknownKind(t *testing.T) {
	_, err := domain.BuildEffect(domain.Entry{Kind: "DIVIDEND"}, nil, testConverter())
	assert.ErrorIs(t, err, apperrors.ErrInvalidEntryType)
}

func TestBuildReversal_NegatesForwardEffect(t *testing.T) {
	// For every non-circulation kind, apply followed by reversal must
	// leave all snapshots exactly where they started.
	conv := testConverter()
	entries := []domain.Entry{
		{Kind: domain.KindExpense, Amount: decimal.NewFromInt(100), CurrencyCode: "UZS", CreatorAccountID: "a"},
		{Kind: domain.KindIncome, Amount: decimal.NewFromInt(200), CurrencyCode: "UZS", CreatorAccountID: "a", CounterpartyAccountID: "b"},
		{Kind: domain.KindSalary, Amount: decimal.NewFromInt(300), CurrencyCode: "UZS", CreatorAccountID: "a", CounterpartyAccountID: "b"},
		{Kind: domain.KindSectionTransfer, Amount: decimal.NewFromInt(400), CurrencyCode: "UZS", CreatorAccountID: "a", CounterpartyAccountID: "b", Direction: domain.DirectionGive},
		{Kind: domain.KindAccountHistory, Amount: decimal.NewFromInt(500), CurrencyCode: "UZS", CreatorAccountID: "a", BankAccountID: "c", FlowType: domain.FlowIncome},
	}

	for _, entry := range entries {
		t.Run(string(entry.Kind), func(t *testing.T) {
			accounts := map[string]domain.Account{
				"a": acct("a", "UZS", 1000, 0, 0),
				"b": acct("b", "UZS", 1000, 500, 0),
				"c": acct("c", "UZS", 1000, 0, 0),
			}

			forward, err := domain.BuildEffect(entry, accounts, conv)
			require.NoError(t, err)
			domain.ApplyToSnapshot(accounts, forward)

			reversal, err := domain.BuildReversal(entry, accounts, conv)
			require.NoError(t, err)
			domain.ApplyToSnapshot(accounts, reversal)

			for id, acc := range accounts {
				assert.True(t, acc.Balance.Equal(decimal.NewFromInt(1000)), "balance of %s", id)
				assert.True(t, acc.CreditAdvance.IsZero(), "credit advance of %s", id)
			}
			assert.True(t, accounts["b"].Debt.Equal(decimal.NewFromInt(500)))
		})
	}
}

func TestEntry_Normalize_SaleAmountDefaultsToQuantityTimesPrice(t *testing.T) {
	entry := domain.Entry{
		Kind:      domain.KindSaleItem,
		Quantity:  decimal.NewFromInt(4),
		UnitPrice: decimal.NewFromInt(250),
	}
	entry.Normalize()
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(1000)))

	explicit := domain.Entry{
		Kind:      domain.KindSaleItem,
		Amount:    decimal.NewFromInt(900),
		Quantity:  decimal.NewFromInt(4),
		UnitPrice: decimal.NewFromInt(250),
	}
	explicit.Normalize()
	assert.True(t, explicit.Amount.Equal(decimal.NewFromInt(900)))
}

func TestEntry_AffectedAccountIDs_Dedupes(t *testing.T) {
	entry := domain.Entry{
		CreatorAccountID:      "a",
		CounterpartyAccountID: "a",
		BankAccountID:         "b",
	}
	assert.Equal(t, []string{"a", "b"}, entry.AffectedAccountIDs())
}
