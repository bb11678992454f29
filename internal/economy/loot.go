package economy

import (
	"context"
	"fmt"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/inventory"
	"github.com/osse101/Lootkeeper_Go/internal/logger"
	"github.com/osse101/Lootkeeper_Go/internal/metrics"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
	"github.com/osse101/Lootkeeper_Go/internal/wallet"
)

// AwardLoot rolls the monster's drop table and grants the result to
// ownerID. Item drops are applied with GrantBatch semantics and currency
// drops are credited, all in one transaction. Unique drops are minted
// unowned inside that transaction and then transferred in, so a failed
// award leaves no stray instances behind.
func (s *service) AwardLoot(ctx context.Context, ownerID string, monsterID int) (*LootAward, error) {
	if ownerID == "" {
		return nil, domain.ErrInvalidOwner
	}

	monster, err := s.catalog.GetMonsterByID(ctx, monsterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetMonsterFailed, err)
	}
	if monster == nil {
		return nil, fmt.Errorf(ErrMsgMonsterNotFoundFmt, domain.ErrMonsterNotFound, monsterID)
	}

	award := &LootAward{MonsterID: monster.ID, XPReward: monster.XPReward}
	err = s.withTx(ctx, ownerID, func(tx repository.LedgerTx) error {
		inv := inventory.NewMutator(tx)
		resolver := s.resolver.WithMinter(inv)

		items, err := resolver.Resolve(ctx, monster.Drops)
		if err != nil {
			return fmt.Errorf(ErrMsgResolveLootFailed, err)
		}
		currency, err := resolver.ResolveCurrency(ctx, monster.Drops)
		if err != nil {
			return fmt.Errorf(ErrMsgResolveLootFailed, err)
		}

		if err := s.applyGrants(ctx, inv, ownerID, items); err != nil {
			return err
		}

		w := wallet.NewMutator(tx)
		for _, grant := range currency {
			if _, err := w.Credit(ctx, ownerID, grant.CurrencyCode, grant.Amount); err != nil {
				return fmt.Errorf(ErrMsgCreditLootFailed, err)
			}
		}

		award.Items = items
		award.Currency = currency
		return nil
	})
	s.recordBatch(ctx, domain.TxTypeLoot, ownerID, len(award.Items), err)
	if err != nil {
		return nil, err
	}

	for _, grant := range award.Currency {
		metrics.MoneyEarned.WithLabelValues(grant.CurrencyCode).Add(float64(grant.Amount))
	}
	logger.FromContext(ctx).Info(LogMsgLootAwarded, "owner_id", ownerID, "monster_id", monster.ID,
		"items", len(award.Items), "currency_drops", len(award.Currency))
	return award, nil
}
