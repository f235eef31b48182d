package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/farruhbek/business_accounting_app/internal/apperrors"
	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	portsrepo "github.com/farruhbek/business_accounting_app/internal/core/ports/repositories"
)

const entryColumns = `entry_id, kind, amount, currency_code,
	creator_account_id, counterparty_account_id, bank_account_id,
	product_id, raw_material_id, direction, flow_type,
	quantity, unit_price, is_debt, section_id, status, notes,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the repository for ledger entries and the
// atomic reverse/apply scope.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// WithTx runs fn inside one database transaction. Any error from fn rolls
// back every balance mutation and record write performed through the tx.
func (r *PgxLedgerRepository) WithTx(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := fn(&pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry outside any transaction.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`
	return scanEntry(r.Pool.QueryRow(ctx, query, entryID), entryID)
}

// ListEntries retrieves a filtered page of entries, newest first.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, filter portsrepo.EntryListFilter, limit, offset int) ([]domain.Entry, error) {
	query := `SELECT ` + entryColumns + `
		FROM entries
		WHERE ($1 = '' OR kind = $1)
		  AND ($2 = '' OR section_id = $2)
		  AND ($3 = '' OR creator_account_id = $3 OR counterparty_account_id = $3 OR bank_account_id = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5;`

	rows, err := r.Pool.Query(ctx, query, string(filter.Kind), filter.SectionID, filter.AccountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		entry, err := scanEntryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading entry rows: %w", err)
	}
	return entries, nil
}

// pgxLedgerTx implements portsrepo.LedgerTx over one pgx transaction.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

// LockAccounts reads the referenced accounts FOR UPDATE. Missing accounts
// surface as ErrNotFound so the whole scope aborts.
func (t *pgxLedgerTx) LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		FOR UPDATE;`

	rows, err := t.tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts for update: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accounts[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading locked account rows: %w", err)
	}

	for _, id := range accountIDs {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

// balanceColumn whitelists the mutable sub-balance columns.
func balanceColumn(field domain.BalanceField) (string, error) {
	switch field {
	case domain.FieldBalance:
		return "balance", nil
	case domain.FieldDebt:
		return "debt", nil
	case domain.FieldCreditAdvance:
		return "credit_advance", nil
	default:
		return "", fmt.Errorf("unknown balance field %q", field)
	}
}

// ApplyAccountDeltas applies batched single-statement increments to the
// locked accounts. Conditional increments, not read-modify-write, so
// concurrent scopes never lose an update.
func (t *pgxLedgerTx) ApplyAccountDeltas(ctx context.Context, deltas []domain.AccountDelta, userID string, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	queued := make([]domain.AccountDelta, 0, len(deltas))
	for _, d := range deltas {
		if d.Delta.IsZero() {
			continue
		}
		column, err := balanceColumn(d.Field)
		if err != nil {
			return err
		}
		query := fmt.Sprintf(`
			UPDATE accounts
			SET %s = COALESCE(%s, 0) + $2, last_updated_at = $3, last_updated_by = $4
			WHERE account_id = $1;`, column, column)
		batch.Queue(query, d.AccountID, d.Delta, now, userID)
		queued = append(queued, d)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := t.tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to adjust %s of account %s: %w", queued[i].Field, queued[i].AccountID, err)
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, queued[i].AccountID)
		}
	}
	if closeErr := br.Close(); closeErr != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", closeErr)
	}
	return batchErr
}

// AdjustProductQuantity applies an atomic increment to product stock.
func (t *pgxLedgerTx) AdjustProductQuantity(ctx context.Context, productID string, delta decimal.Decimal) error {
	ct, err := t.tx.Exec(ctx, `
		UPDATE products
		SET quantity = COALESCE(quantity, 0) + $2, last_updated_at = NOW()
		WHERE product_id = $1;`, productID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust quantity of product %s: %w", productID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
	}
	return nil
}

// AdjustRawMaterialWeight applies an atomic increment to raw material stock.
func (t *pgxLedgerTx) AdjustRawMaterialWeight(ctx context.Context, rawMaterialID string, delta decimal.Decimal) error {
	ct, err := t.tx.Exec(ctx, `
		UPDATE raw_materials
		SET weight = COALESCE(weight, 0) + $2, last_updated_at = NOW()
		WHERE raw_material_id = $1;`, rawMaterialID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust weight of raw material %s: %w", rawMaterialID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: raw material %s", apperrors.ErrNotFound, rawMaterialID)
	}
	return nil
}

// SaveEntry inserts the entry row inside the transaction.
func (t *pgxLedgerTx) SaveEntry(ctx context.Context, entry domain.Entry) error {
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := t.tx.Exec(ctx, query, entryArgs(entry)...)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// UpdateEntry overwrites the mutable fields of the entry row.
func (t *pgxLedgerTx) UpdateEntry(ctx context.Context, entry domain.Entry) error {
	query := `
		UPDATE entries
		SET amount = $2, currency_code = $3,
		    counterparty_account_id = $4, bank_account_id = $5,
		    product_id = $6, raw_material_id = $7,
		    direction = $8, flow_type = $9,
		    quantity = $10, unit_price = $11, is_debt = $12,
		    status = $13, notes = $14,
		    last_updated_at = $15, last_updated_by = $16
		WHERE entry_id = $1;
	`
	ct, err := t.tx.Exec(ctx, query,
		entry.EntryID,
		entry.Amount,
		entry.CurrencyCode,
		nullString(entry.CounterpartyAccountID),
		nullString(entry.BankAccountID),
		nullString(entry.ProductID),
		nullString(entry.RawMaterialID),
		nullString(string(entry.Direction)),
		nullString(string(entry.FlowType)),
		entry.Quantity,
		entry.UnitPrice,
		entry.IsDebt,
		entry.Status,
		entry.Notes,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", entry.EntryID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntry removes the entry row inside the transaction.
func (t *pgxLedgerTx) DeleteEntry(ctx context.Context, entryID string) error {
	ct, err := t.tx.Exec(ctx, `DELETE FROM entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindEntryByID reads the persisted snapshot of an entry inside the
// transaction, before any field is overwritten.
func (t *pgxLedgerTx) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1 FOR UPDATE;`
	return scanEntry(t.tx.QueryRow(ctx, query, entryID), entryID)
}

func entryArgs(entry domain.Entry) []any {
	return []any{
		entry.EntryID,
		entry.Kind,
		entry.Amount,
		entry.CurrencyCode,
		entry.CreatorAccountID,
		nullString(entry.CounterpartyAccountID),
		nullString(entry.BankAccountID),
		nullString(entry.ProductID),
		nullString(entry.RawMaterialID),
		nullString(string(entry.Direction)),
		nullString(string(entry.FlowType)),
		entry.Quantity,
		entry.UnitPrice,
		entry.IsDebt,
		nullString(entry.SectionID),
		entry.Status,
		entry.Notes,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func scanEntry(row pgx.Row, entryID string) (*domain.Entry, error) {
	entry, err := scanEntryFrom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}
	return &entry, nil
}

func scanEntryRow(rows pgx.Rows) (domain.Entry, error) {
	return scanEntryFrom(rows)
}

func scanEntryFrom(row pgx.Row) (domain.Entry, error) {
	var (
		entry                            domain.Entry
		counterparty, bank, product, raw sql.NullString
		direction, flowType, sectionID   sql.NullString
	)
	err := row.Scan(
		&entry.EntryID,
		&entry.Kind,
		&entry.Amount,
		&entry.CurrencyCode,
		&entry.CreatorAccountID,
		&counterparty,
		&bank,
		&product,
		&raw,
		&direction,
		&flowType,
		&entry.Quantity,
		&entry.UnitPrice,
		&entry.IsDebt,
		&sectionID,
		&entry.Status,
		&entry.Notes,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		return domain.Entry{}, err
	}
	entry.CounterpartyAccountID = counterparty.String
	entry.BankAccountID = bank.String
	entry.ProductID = product.String
	entry.RawMaterialID = raw.String
	entry.Direction = domain.Direction(direction.String)
	entry.FlowType = domain.FlowType(flowType.String)
	entry.SectionID = sectionID.String
	return entry, nil
}
