package economy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/inventory"
	"github.com/osse101/Lootkeeper_Go/internal/logger"
	"github.com/osse101/Lootkeeper_Go/internal/metrics"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
	"github.com/osse101/Lootkeeper_Go/internal/wallet"
)

// Sell removes Quantity units of the item and credits the trade currency
// at the item's catalog cost. The caller's PricePerUnit is not used.
// Selling something the owner does not hold at all fails with
// domain.ErrNotInInventory; holding too few fails with
// domain.ErrInsufficientQuantity.
func (s *service) Sell(ctx context.Context, req TradeRequest) (*Receipt, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellCalled, "owner_id", req.OwnerID, "item_id", req.ItemID, "quantity", req.Quantity)

	receipt, err := s.sell(ctx, req)
	metrics.Trades.WithLabelValues(domain.TxTypeSell, metrics.Result(err)).Inc()
	if err != nil {
		log.Warn(LogMsgTradeFailed, "type", domain.TxTypeSell, "owner_id", req.OwnerID, "item_id", req.ItemID, "error", err)
		return nil, err
	}

	log.Info(LogMsgItemSold, "owner_id", req.OwnerID, "item_id", req.ItemID, "quantity", receipt.Quantity, "total", receipt.Total)
	return receipt, nil
}

func (s *service) sell(ctx context.Context, req TradeRequest) (*Receipt, error) {
	log := logger.FromContext(ctx)

	// 1. Validate request
	if err := validateTradeRequest(req); err != nil {
		return nil, err
	}

	// 2. Resolve item and price
	item, err := s.getItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.IsSellable {
		return nil, fmt.Errorf(ErrMsgItemNotSellableFmt, domain.ErrItemNotSellable, item.ID)
	}
	if !item.IsStacked && req.Quantity != 1 {
		return nil, fmt.Errorf(ErrMsgUniqueQuantityFmt, item.ID, req.Quantity, domain.ErrInvalidQuantity)
	}
	unitPrice := int64(item.Cost)
	if req.PricePerUnit != 0 && req.PricePerUnit != unitPrice {
		log.Info(LogMsgSellPriceIgnored, "item_id", item.ID, "requested", req.PricePerUnit, "cost", unitPrice)
	}
	total, err := tradeTotal(unitPrice, req.Quantity)
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{
		OwnerID:   req.OwnerID,
		ItemID:    item.ID,
		Quantity:  req.Quantity,
		UnitPrice: unitPrice,
		Total:     total,
		Currency:  s.tradeCurrency,
	}

	// 3. Remove and credit atomically
	err = s.withTx(ctx, req.OwnerID, func(tx repository.LedgerTx) error {
		inv := inventory.NewMutator(tx)

		holding, found, err := inv.Find(ctx, req.OwnerID, item.ID, req.WorldID)
		if err != nil {
			return fmt.Errorf(ErrMsgFindHoldingFailed, err)
		}
		if !found {
			return fmt.Errorf(ErrMsgNotInInventoryFmt, domain.ErrNotInInventory, req.OwnerID, item.ID)
		}

		var worldID *uuid.UUID
		if holding.Instance != nil {
			id := holding.Instance.WorldID
			worldID = &id
			receipt.WorldIDs = []uuid.UUID{id}
		}
		if err := inv.ChangeQuantity(ctx, req.OwnerID, item, -req.Quantity, worldID); err != nil {
			return err
		}

		balance, err := wallet.NewMutator(tx).Credit(ctx, req.OwnerID, s.tradeCurrency, total)
		if err != nil {
			return err
		}
		receipt.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ItemsSold.WithLabelValues(item.Code).Add(float64(req.Quantity))
	metrics.MoneyEarned.WithLabelValues(s.tradeCurrency).Add(float64(total))
	return receipt, nil
}
