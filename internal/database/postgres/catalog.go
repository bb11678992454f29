package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
)

const itemColumns = `item_id, code, name, description, item_type, is_stacked, is_sellable, is_active, cost, min_level, base_stats`

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	var stats []byte
	err := row.Scan(&item.ID, &item.Code, &item.Name, &item.Description, &item.ItemType,
		&item.IsStacked, &item.IsSellable, &item.IsActive, &item.Cost, &item.MinLevel, &stats)
	if err != nil {
		return nil, err
	}
	if item.BaseStats, err = unmarshalStats(stats); err != nil {
		return nil, err
	}
	return &item, nil
}

func getItem(ctx context.Context, q querier, where string, arg any) (*domain.Item, error) {
	item, err := scanItem(q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE `+where, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemFailed, err)
	}
	return item, nil
}

func getCurrency(ctx context.Context, q querier, where string, arg any) (*domain.Currency, error) {
	var c domain.Currency
	err := q.QueryRow(ctx, `SELECT currency_id, code, name, is_active FROM currencies WHERE `+where, arg).
		Scan(&c.ID, &c.Code, &c.Name, &c.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCurrencyFailed, err)
	}
	return &c, nil
}

// GetItemByID returns the item template or nil when unknown
func (s *Store) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	return getItem(ctx, s.pool, "item_id = $1", id)
}

func (s *Store) GetItemByCode(ctx context.Context, code string) (*domain.Item, error) {
	return getItem(ctx, s.pool, "code = $1", code)
}

func (s *Store) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListItemsFailed, err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Item, error) {
		item, err := scanItem(row)
		if err != nil {
			return domain.Item{}, err
		}
		return *item, nil
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListItemsFailed, err)
	}
	return items, nil
}

// UpsertItem inserts or updates an item keyed by code and returns its id
func (s *Store) UpsertItem(ctx context.Context, item *domain.Item) (int, error) {
	stats, err := marshalStats(item.BaseStats)
	if err != nil {
		return 0, err
	}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO items (code, name, description, item_type, is_stacked, is_sellable, is_active, cost, min_level, base_stats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			item_type = EXCLUDED.item_type,
			is_stacked = EXCLUDED.is_stacked,
			is_sellable = EXCLUDED.is_sellable,
			is_active = EXCLUDED.is_active,
			cost = EXCLUDED.cost,
			min_level = EXCLUDED.min_level,
			base_stats = EXCLUDED.base_stats
		RETURNING item_id`,
		item.Code, item.Name, item.Description, string(item.ItemType), item.IsStacked,
		item.IsSellable, item.IsActive, item.Cost, item.MinLevel, stats,
	).Scan(&item.ID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgUpsertItemFailed, item.Code, err)
	}
	return item.ID, nil
}

func (s *Store) GetAllCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := s.pool.Query(ctx, `SELECT currency_id, code, name, is_active FROM currencies ORDER BY currency_id`)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListCurrenciesFailed, err)
	}
	currencies, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Currency])
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListCurrenciesFailed, err)
	}
	return currencies, nil
}

func (s *Store) GetCurrencyByID(ctx context.Context, id int) (*domain.Currency, error) {
	return getCurrency(ctx, s.pool, "currency_id = $1", id)
}

func (s *Store) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return getCurrency(ctx, s.pool, "code = $1", code)
}

// UpsertCurrency inserts or updates a currency keyed by code and returns its id
func (s *Store) UpsertCurrency(ctx context.Context, currency *domain.Currency) (int, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO currencies (code, name, is_active) VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, is_active = EXCLUDED.is_active
		RETURNING currency_id`,
		currency.Code, currency.Name, currency.IsActive,
	).Scan(&currency.ID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgUpsertCurrencyFailed, currency.Code, err)
	}
	return currency.ID, nil
}

func (s *Store) GetMonsterByID(ctx context.Context, id int) (*domain.Monster, error) {
	return s.getMonster(ctx, "monster_id = $1", id)
}

func (s *Store) GetMonsterByCode(ctx context.Context, code string) (*domain.Monster, error) {
	return s.getMonster(ctx, "code = $1", code)
}

func (s *Store) getMonster(ctx context.Context, where string, arg any) (*domain.Monster, error) {
	var m domain.Monster
	err := s.pool.QueryRow(ctx, `SELECT monster_id, code, name, level, xp_reward, is_active FROM monsters WHERE `+where, arg).
		Scan(&m.ID, &m.Code, &m.Name, &m.Level, &m.XPReward, &m.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetMonsterFailed, err)
	}
	if m.Drops, err = s.getDrops(ctx, m.ID); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) getDrops(ctx context.Context, monsterID int) ([]domain.DropTableEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT drop_id, monster_id, kind, currency_id, item_id, min_amount, max_amount, chance_percent::text
		FROM drop_table WHERE monster_id = $1 ORDER BY position`, monsterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetDropsFailed, monsterID, err)
	}
	drops, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DropTableEntry, error) {
		var d domain.DropTableEntry
		var chance string
		if err := row.Scan(&d.ID, &d.MonsterID, &d.Kind, &d.CurrencyID, &d.ItemID, &d.MinAmount, &d.MaxAmount, &chance); err != nil {
			return d, err
		}
		parsed, err := decimal.NewFromString(chance)
		if err != nil {
			return d, fmt.Errorf(ErrMsgParseChanceFailed, chance, err)
		}
		d.ChancePercent = parsed
		return d, nil
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetDropsFailed, monsterID, err)
	}
	return drops, nil
}

// UpsertMonster inserts or updates a monster keyed by code, leaving its drop table untouched
func (s *Store) UpsertMonster(ctx context.Context, monster *domain.Monster) (int, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO monsters (code, name, level, xp_reward, is_active) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			level = EXCLUDED.level,
			xp_reward = EXCLUDED.xp_reward,
			is_active = EXCLUDED.is_active
		RETURNING monster_id`,
		monster.Code, monster.Name, monster.Level, monster.XPReward, monster.IsActive,
	).Scan(&monster.ID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgUpsertMonsterFailed, monster.Code, err)
	}
	return monster.ID, nil
}

// ReplaceDropTable swaps a monster's whole drop table in one transaction,
// keeping the given entry order
func (s *Store) ReplaceDropTable(ctx context.Context, monsterID int, drops []domain.DropTableEntry) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer SafeRollback(ctx, tx)

	var locked int
	err = tx.QueryRow(ctx, `SELECT monster_id FROM monsters WHERE monster_id = $1 FOR UPDATE`, monsterID).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf(ErrMsgMonsterNotFoundFmt, domain.ErrMonsterNotFound, monsterID)
	}
	if err != nil {
		return fmt.Errorf(ErrMsgReplaceDropsFailed, monsterID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM drop_table WHERE monster_id = $1`, monsterID); err != nil {
		return fmt.Errorf(ErrMsgReplaceDropsFailed, monsterID, err)
	}

	batch := &pgx.Batch{}
	for i, d := range drops {
		batch.Queue(`
			INSERT INTO drop_table (monster_id, kind, currency_id, item_id, min_amount, max_amount, chance_percent, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8)`,
			monsterID, string(d.Kind), d.CurrencyID, d.ItemID, d.MinAmount, d.MaxAmount, d.ChancePercent.String(), i)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf(ErrMsgReplaceDropsFailed, monsterID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitFailed, err)
	}
	return nil
}

var _ repository.Catalog = (*Store)(nil)
