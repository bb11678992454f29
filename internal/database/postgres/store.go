// Package postgres implements repository.Store on PostgreSQL with pgx.
//
// Ledger reads inside a transaction take row locks (SELECT ... FOR UPDATE)
// so a read-check-write sequence cannot interleave with another transaction
// touching the same row. Stack increments are single atomic statements.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
)

// Store is the PostgreSQL repository.Store
type Store struct {
	pool *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// NewStore creates a Store on an open pool
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// BeginTx starts a ledger transaction
func (s *Store) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	return &ledgerTx{tx: tx}, nil
}

type ledgerTx struct {
	tx pgx.Tx
}

func (t *ledgerTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *ledgerTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *ledgerTx) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	return getItem(ctx, t.tx, "item_id = $1", id)
}

func (t *ledgerTx) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return getCurrency(ctx, t.tx, "code = $1", code)
}

func (t *ledgerTx) FindStack(ctx context.Context, ownerID string, itemID int) (*domain.StackEntry, error) {
	var qty int
	err := t.tx.QueryRow(ctx, `
		SELECT quantity FROM stacks WHERE owner_id = $1 AND item_id = $2 FOR UPDATE`,
		ownerID, itemID).Scan(&qty)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFindStackFailed, err)
	}
	return &domain.StackEntry{OwnerID: ownerID, ItemID: itemID, Quantity: qty}, nil
}

func (t *ledgerTx) AddToStack(ctx context.Context, ownerID string, itemID, delta int) (int, bool, error) {
	var qty int
	err := t.tx.QueryRow(ctx, `
		UPDATE stacks SET quantity = quantity + $3
		WHERE owner_id = $1 AND item_id = $2
		RETURNING quantity`,
		ownerID, itemID, delta).Scan(&qty)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf(ErrMsgUpdateStackFailed, err)
	}
	return qty, true, nil
}

func (t *ledgerTx) UpsertStack(ctx context.Context, ownerID string, itemID, delta int) (int, error) {
	var qty int
	err := t.tx.QueryRow(ctx, `
		INSERT INTO stacks (owner_id, item_id, quantity) VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, item_id) DO UPDATE SET quantity = stacks.quantity + EXCLUDED.quantity
		RETURNING quantity`,
		ownerID, itemID, delta).Scan(&qty)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgUpdateStackFailed, err)
	}
	return qty, nil
}

func (t *ledgerTx) DeleteStack(ctx context.Context, ownerID string, itemID int) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM stacks WHERE owner_id = $1 AND item_id = $2`, ownerID, itemID); err != nil {
		return fmt.Errorf(ErrMsgUpdateStackFailed, err)
	}
	return nil
}

func (t *ledgerTx) ListStacks(ctx context.Context, ownerID string) ([]domain.StackEntry, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT owner_id, item_id, quantity FROM stacks WHERE owner_id = $1 ORDER BY item_id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListStacksFailed, err)
	}
	stacks, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.StackEntry])
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListStacksFailed, err)
	}
	return stacks, nil
}

const instanceColumns = `world_id, item_id, owner_id, bonuses, created_at`

func scanInstance(row pgx.Row) (*domain.ItemInstance, error) {
	var inst domain.ItemInstance
	var bonuses []byte
	if err := row.Scan(&inst.WorldID, &inst.ItemID, &inst.OwnerID, &bonuses, &inst.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if inst.Bonuses, err = unmarshalStats(bonuses); err != nil {
		return nil, err
	}
	return &inst, nil
}

func (t *ledgerTx) findInstance(ctx context.Context, sql string, args ...any) (*domain.ItemInstance, error) {
	inst, err := scanInstance(t.tx.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFindInstanceFailed, err)
	}
	return inst, nil
}

func (t *ledgerTx) FindInstance(ctx context.Context, worldID uuid.UUID) (*domain.ItemInstance, error) {
	return t.findInstance(ctx, `
		SELECT `+instanceColumns+` FROM item_instances WHERE world_id = $1 FOR UPDATE`, worldID)
}

func (t *ledgerTx) FindInstanceByOwnerItem(ctx context.Context, ownerID string, itemID int) (*domain.ItemInstance, error) {
	return t.findInstance(ctx, `
		SELECT `+instanceColumns+` FROM item_instances
		WHERE owner_id = $1 AND item_id = $2
		ORDER BY created_at, world_id
		LIMIT 1 FOR UPDATE`, ownerID, itemID)
}

func (t *ledgerTx) InsertInstance(ctx context.Context, instance *domain.ItemInstance) error {
	if instance.CreatedAt.IsZero() {
		// Postgres keeps microseconds
		instance.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	bonuses, err := marshalStats(instance.Bonuses)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(ctx, `
		INSERT INTO item_instances (`+instanceColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		instance.WorldID, instance.ItemID, instance.OwnerID, bonuses, instance.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf(ErrMsgInsertInstanceFailed, fmt.Errorf(ErrMsgDuplicateWorldIDFmt, instance.WorldID))
	}
	if err != nil {
		return fmt.Errorf(ErrMsgInsertInstanceFailed, err)
	}
	return nil
}

func (t *ledgerTx) ReassignOwner(ctx context.Context, worldID uuid.UUID, ownerID *string) error {
	tag, err := t.tx.Exec(ctx, `UPDATE item_instances SET owner_id = $2 WHERE world_id = $1`, worldID, ownerID)
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateInstanceFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf(ErrMsgInstanceNotFoundFmt, domain.ErrInstanceNotFound, worldID)
	}
	return nil
}

func (t *ledgerTx) DeleteInstance(ctx context.Context, worldID uuid.UUID) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM item_instances WHERE world_id = $1`, worldID); err != nil {
		return fmt.Errorf(ErrMsgUpdateInstanceFailed, err)
	}
	return nil
}

func (t *ledgerTx) ListInstances(ctx context.Context, ownerID string) ([]domain.ItemInstance, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT `+instanceColumns+` FROM item_instances
		WHERE owner_id = $1 ORDER BY created_at, world_id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListInstancesFailed, err)
	}
	instances, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ItemInstance, error) {
		inst, err := scanInstance(row)
		if err != nil {
			return domain.ItemInstance{}, err
		}
		return *inst, nil
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListInstancesFailed, err)
	}
	return instances, nil
}

func (t *ledgerTx) FindWallet(ctx context.Context, ownerID string, currencyID int) (*domain.Wallet, error) {
	var amount int64
	err := t.tx.QueryRow(ctx, `
		SELECT amount FROM wallets WHERE owner_id = $1 AND currency_id = $2 FOR UPDATE`,
		ownerID, currencyID).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFindWalletFailed, err)
	}
	return &domain.Wallet{OwnerID: ownerID, CurrencyID: currencyID, Amount: amount}, nil
}

func (t *ledgerTx) UpsertWallet(ctx context.Context, wallet *domain.Wallet) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO wallets (owner_id, currency_id, amount) VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, currency_id) DO UPDATE SET amount = EXCLUDED.amount`,
		wallet.OwnerID, wallet.CurrencyID, wallet.Amount)
	if err != nil {
		return fmt.Errorf(ErrMsgUpsertWalletFailed, err)
	}
	return nil
}
