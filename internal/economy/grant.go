package economy

import (
	"context"
	"fmt"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/inventory"
	"github.com/osse101/Lootkeeper_Go/internal/logger"
	"github.com/osse101/Lootkeeper_Go/internal/metrics"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
)

// GrantBatch applies every grant to ownerID in order inside one
// transaction. The first failure rolls the whole batch back and is returned
// as a *domain.BatchGrantError. An empty batch succeeds without touching
// storage.
func (s *service) GrantBatch(ctx context.Context, ownerID string, grants []domain.Grant) error {
	if len(grants) == 0 {
		return nil
	}
	if ownerID == "" {
		return domain.ErrInvalidOwner
	}

	err := s.withTx(ctx, ownerID, func(tx repository.LedgerTx) error {
		return s.applyGrants(ctx, inventory.NewMutator(tx), ownerID, grants)
	})
	s.recordBatch(ctx, domain.TxTypeGrant, ownerID, len(grants), err)
	return err
}

func (s *service) applyGrants(ctx context.Context, inv *inventory.Mutator, ownerID string, grants []domain.Grant) error {
	for i, grant := range grants {
		if err := s.applyGrant(ctx, inv, ownerID, grant); err != nil {
			return &domain.BatchGrantError{Index: i, Grant: grant, Err: err}
		}
	}
	return nil
}

// applyGrant maps one grant onto the ledger. Stacked items take the signed
// amount. For unique items +1 with a WorldID transfers that instance in, +1
// without one mints a new instance for the owner, and -1 removes the named
// instance or, without a WorldID, any instance of the template the owner holds.
func (s *service) applyGrant(ctx context.Context, inv *inventory.Mutator, ownerID string, grant domain.Grant) error {
	item, err := s.getItem(ctx, grant.ItemID)
	if err != nil {
		return err
	}
	if item.IsStacked {
		return inv.ChangeQuantity(ctx, ownerID, item, grant.Amount, nil)
	}

	switch {
	case grant.Amount == 1 && grant.WorldID == nil:
		_, err := inv.MintInstance(ctx, item.ID, &ownerID)
		metrics.LedgerOperations.WithLabelValues(domain.OpMintInstance, metrics.Result(err)).Inc()
		if err != nil {
			return &domain.OperationError{Op: domain.OpMintInstance, ItemID: item.ID, Err: err}
		}
		return nil
	case grant.Amount == -1 && grant.WorldID == nil:
		holding, found, err := inv.Find(ctx, ownerID, item.ID, nil)
		if err != nil {
			return fmt.Errorf(ErrMsgFindHoldingFailed, err)
		}
		if !found || holding.Instance == nil {
			return &domain.OperationError{
				Op:     domain.OpRemoveInstance,
				ItemID: item.ID,
				Err:    fmt.Errorf(ErrMsgNotInInventoryFmt, domain.ErrNotInInventory, ownerID, item.ID),
			}
		}
		worldID := holding.Instance.WorldID
		return inv.ChangeQuantity(ctx, ownerID, item, -1, &worldID)
	default:
		return inv.ChangeQuantity(ctx, ownerID, item, grant.Amount, grant.WorldID)
	}
}

func (s *service) recordBatch(ctx context.Context, source, ownerID string, size int, err error) {
	metrics.GrantBatches.WithLabelValues(source, metrics.Result(err)).Inc()
	log := logger.FromContext(ctx)
	if err != nil {
		log.Warn(LogMsgGrantBatchRejected, "source", source, "owner_id", ownerID, "grants", size, "error", err)
		return
	}
	log.Info(LogMsgGrantBatchApplied, "source", source, "owner_id", ownerID, "grants", size)
}
