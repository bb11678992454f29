package economy

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/inventory"
	"github.com/osse101/Lootkeeper_Go/internal/logger"
	"github.com/osse101/Lootkeeper_Go/internal/metrics"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
	"github.com/osse101/Lootkeeper_Go/internal/wallet"
)

// Buy debits PricePerUnit x Quantity of the trade currency and grants the
// item in the same transaction. A unique item named by WorldID is
// transferred in; otherwise Quantity new instances are minted. If the grant
// fails after the debit, both are rolled back.
func (s *service) Buy(ctx context.Context, req TradeRequest) (*Receipt, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBuyCalled, "owner_id", req.OwnerID, "item_id", req.ItemID, "quantity", req.Quantity, "price_per_unit", req.PricePerUnit)

	receipt, err := s.buy(ctx, req)
	metrics.Trades.WithLabelValues(domain.TxTypeBuy, metrics.Result(err)).Inc()
	if err != nil {
		log.Warn(LogMsgTradeFailed, "type", domain.TxTypeBuy, "owner_id", req.OwnerID, "item_id", req.ItemID, "error", err)
		return nil, err
	}

	log.Info(LogMsgItemPurchased, "owner_id", req.OwnerID, "item_id", req.ItemID, "quantity", receipt.Quantity, "total", receipt.Total)
	return receipt, nil
}

func (s *service) buy(ctx context.Context, req TradeRequest) (*Receipt, error) {
	// 1. Validate request
	if err := validateTradeRequest(req); err != nil {
		return nil, err
	}

	// 2. Resolve item and price
	item, err := s.getItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if err := validateUniqueQuantity(item, req); err != nil {
		return nil, err
	}
	total, err := tradeTotal(req.PricePerUnit, req.Quantity)
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{
		OwnerID:   req.OwnerID,
		ItemID:    item.ID,
		Quantity:  req.Quantity,
		UnitPrice: req.PricePerUnit,
		Total:     total,
		Currency:  s.tradeCurrency,
	}

	// 3. Debit and grant atomically
	err = s.withTx(ctx, req.OwnerID, func(tx repository.LedgerTx) error {
		balance, err := wallet.NewMutator(tx).Debit(ctx, req.OwnerID, s.tradeCurrency, total)
		if err != nil {
			return err
		}
		receipt.Balance = balance

		worldIDs, err := s.grantPurchase(ctx, inventory.NewMutator(tx), item, req)
		if err != nil {
			return err
		}
		receipt.WorldIDs = worldIDs
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ItemsBought.WithLabelValues(item.Code).Add(float64(req.Quantity))
	metrics.MoneySpent.WithLabelValues(s.tradeCurrency).Add(float64(total))
	return receipt, nil
}

func (s *service) grantPurchase(ctx context.Context, inv *inventory.Mutator, item *domain.Item, req TradeRequest) ([]uuid.UUID, error) {
	if item.IsStacked {
		return nil, inv.ChangeQuantity(ctx, req.OwnerID, item, req.Quantity, nil)
	}
	if req.WorldID != nil {
		if err := inv.ChangeQuantity(ctx, req.OwnerID, item, 1, req.WorldID); err != nil {
			return nil, err
		}
		return []uuid.UUID{*req.WorldID}, nil
	}

	worldIDs := make([]uuid.UUID, 0, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		inst, err := inv.MintInstance(ctx, item.ID, &req.OwnerID)
		metrics.LedgerOperations.WithLabelValues(domain.OpMintInstance, metrics.Result(err)).Inc()
		if err != nil {
			return nil, &domain.OperationError{Op: domain.OpMintInstance, ItemID: item.ID, Err: err}
		}
		worldIDs = append(worldIDs, inst.WorldID)
	}
	return worldIDs, nil
}
