package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/logger"
	"github.com/osse101/Lootkeeper_Go/internal/metrics"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
)

// Mutator applies inventory ledger primitives inside a caller-owned
// transaction. It never commits, rolls back or takes locks; callers that
// compose several changes into one unit of work hold the owner lock and
// decide the outcome of the transaction.
type Mutator struct {
	tx repository.LedgerTx
}

// NewMutator binds a Mutator to tx
func NewMutator(tx repository.LedgerTx) *Mutator {
	return &Mutator{tx: tx}
}

// Find resolves the held representation of an item. Without worldID it
// looks for the owner's stack and then for any instance of the template the
// owner holds. With worldID the instance must be owned by ownerID and be of
// template itemID. Absence is reported as found == false.
func (m *Mutator) Find(ctx context.Context, ownerID string, itemID int, worldID *uuid.UUID) (domain.Holding, bool, error) {
	if worldID != nil {
		inst, err := m.tx.FindInstance(ctx, *worldID)
		if err != nil {
			return domain.Holding{}, false, fmt.Errorf(ErrMsgFindInstanceFailed, err)
		}
		if inst == nil || !inst.OwnedBy(ownerID) || inst.ItemID != itemID {
			return domain.Holding{}, false, nil
		}
		return domain.Holding{Instance: inst}, true, nil
	}

	stack, err := m.tx.FindStack(ctx, ownerID, itemID)
	if err != nil {
		return domain.Holding{}, false, fmt.Errorf(ErrMsgFindStackFailed, err)
	}
	if stack != nil {
		return domain.Holding{Stack: stack}, true, nil
	}

	inst, err := m.tx.FindInstanceByOwnerItem(ctx, ownerID, itemID)
	if err != nil {
		return domain.Holding{}, false, fmt.Errorf(ErrMsgFindInstanceFailed, err)
	}
	if inst != nil {
		return domain.Holding{Instance: inst}, true, nil
	}
	return domain.Holding{}, false, nil
}

// Lookup is Find with absence reported as a NotFound error
func (m *Mutator) Lookup(ctx context.Context, ownerID string, itemID int, worldID *uuid.UUID) (domain.Holding, error) {
	holding, found, err := m.Find(ctx, ownerID, itemID, worldID)
	if err != nil {
		return domain.Holding{}, err
	}
	if !found {
		if worldID != nil {
			return domain.Holding{}, fmt.Errorf(ErrMsgInstanceNotFoundFmt, domain.ErrInstanceNotFound, worldID)
		}
		return domain.Holding{}, fmt.Errorf(ErrMsgStackNotFoundFmt, domain.ErrNotInInventory, ownerID, itemID)
	}
	return holding, nil
}

// ChangeStackQuantity applies a signed delta to a stacked item and returns
// the resulting quantity. A stack that reaches zero is deleted; a removal
// larger than the held quantity fails without touching storage.
func (m *Mutator) ChangeStackQuantity(ctx context.Context, ownerID string, itemID, delta int) (int, error) {
	if ownerID == "" {
		return 0, domain.ErrInvalidOwner
	}
	if delta == 0 {
		return 0, domain.ErrZeroDelta
	}
	if delta > 0 {
		return m.addToStack(ctx, ownerID, itemID, delta)
	}
	return m.removeFromStack(ctx, ownerID, itemID, -delta)
}

func (m *Mutator) addToStack(ctx context.Context, ownerID string, itemID, amount int) (int, error) {
	item, err := m.stackedItem(ctx, itemID)
	if err != nil {
		return 0, err
	}

	stack, err := m.tx.FindStack(ctx, ownerID, item.ID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgFindStackFailed, err)
	}
	var held int
	if stack != nil {
		held = stack.Quantity
	}
	if amount > domain.MaxStackQuantity-held {
		return 0, fmt.Errorf(ErrMsgStackLimitFmt, domain.ErrStackLimit, itemID, held, amount)
	}

	qty, err := m.tx.UpsertStack(ctx, ownerID, item.ID, amount)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgUpdateStackFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgStackChanged, "owner_id", ownerID, "item_id", itemID, "delta", amount, "quantity", qty)
	return qty, nil
}

func (m *Mutator) removeFromStack(ctx context.Context, ownerID string, itemID, amount int) (int, error) {
	stack, err := m.tx.FindStack(ctx, ownerID, itemID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgFindStackFailed, err)
	}
	if stack == nil {
		return 0, &domain.InsufficientQuantityError{
			ItemID:   itemID,
			Required: amount,
			Cause:    fmt.Errorf(ErrMsgStackNotFoundFmt, domain.ErrStackNotFound, ownerID, itemID),
		}
	}
	if stack.Quantity < amount {
		return 0, &domain.InsufficientQuantityError{ItemID: itemID, Required: amount, Available: stack.Quantity}
	}

	log := logger.FromContext(ctx)
	if stack.Quantity == amount {
		if err := m.tx.DeleteStack(ctx, ownerID, itemID); err != nil {
			return 0, fmt.Errorf(ErrMsgUpdateStackFailed, err)
		}
		log.Debug(LogMsgStackDeleted, "owner_id", ownerID, "item_id", itemID)
		return 0, nil
	}

	qty, ok, err := m.tx.AddToStack(ctx, ownerID, itemID, -amount)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgUpdateStackFailed, err)
	}
	if !ok {
		return 0, &domain.InsufficientQuantityError{ItemID: itemID, Required: amount, Cause: domain.ErrStackNotFound}
	}

	log.Debug(LogMsgStackChanged, "owner_id", ownerID, "item_id", itemID, "delta", -amount, "quantity", qty)
	return qty, nil
}

// MintInstance creates a brand-new unique instance of itemID with a fresh
// WorldID. A nil ownerID leaves the instance unowned in the world.
func (m *Mutator) MintInstance(ctx context.Context, itemID int, ownerID *string) (*domain.ItemInstance, error) {
	if ownerID != nil && *ownerID == "" {
		return nil, domain.ErrInvalidOwner
	}
	item, err := m.item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.IsStacked {
		return nil, fmt.Errorf("%w: item %d", domain.ErrItemIsStackable, itemID)
	}

	inst := &domain.ItemInstance{
		WorldID: uuid.New(),
		ItemID:  item.ID,
		OwnerID: ownerID,
	}
	if err := m.tx.InsertInstance(ctx, inst); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateInstanceFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgInstanceMinted, "world_id", inst.WorldID, "item_id", itemID, "owned", ownerID != nil)
	return inst, nil
}

// TransferInstance reassigns an existing instance to newOwnerID
func (m *Mutator) TransferInstance(ctx context.Context, worldID uuid.UUID, newOwnerID string) (*domain.ItemInstance, error) {
	if newOwnerID == "" {
		return nil, domain.ErrInvalidOwner
	}
	inst, err := m.tx.FindInstance(ctx, worldID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFindInstanceFailed, err)
	}
	if inst == nil {
		return nil, fmt.Errorf(ErrMsgInstanceNotFoundFmt, domain.ErrInstanceNotFound, worldID)
	}

	if err := m.tx.ReassignOwner(ctx, worldID, &newOwnerID); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateInstanceFailed, err)
	}
	inst.OwnerID = &newOwnerID

	logger.FromContext(ctx).Debug(LogMsgInstanceMoved, "world_id", worldID, "item_id", inst.ItemID, "owner_id", newOwnerID)
	return inst, nil
}

// RemoveInstance permanently deletes an instance owned by ownerID. Removing
// an instance that is absent or held by someone else is NotFound, so a
// second removal of the same WorldID never succeeds silently.
func (m *Mutator) RemoveInstance(ctx context.Context, ownerID string, worldID uuid.UUID) (*domain.ItemInstance, error) {
	inst, err := m.tx.FindInstance(ctx, worldID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFindInstanceFailed, err)
	}
	if inst == nil || !inst.OwnedBy(ownerID) {
		return nil, fmt.Errorf(ErrMsgInstanceNotFoundFmt, domain.ErrInstanceNotFound, worldID)
	}

	if err := m.tx.DeleteInstance(ctx, worldID); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateInstanceFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgInstanceRemoved, "world_id", worldID, "item_id", inst.ItemID, "owner_id", ownerID)
	return inst, nil
}

// ChangeUniqueItem moves one specific instance in (+1) or out (-1) of the
// owner's holdings. Both directions need the instance's WorldID; creating
// new instances is MintInstance's job and is never inferred from the sign.
func (m *Mutator) ChangeUniqueItem(ctx context.Context, ownerID string, itemID, delta int, worldID *uuid.UUID) error {
	if delta != 1 && delta != -1 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidInstanceDelta, delta)
	}
	if worldID == nil {
		return domain.ErrWorldIDRequired
	}

	if delta == -1 {
		holding, found, err := m.Find(ctx, ownerID, itemID, worldID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf(ErrMsgInstanceNotFoundFmt, domain.ErrInstanceNotFound, worldID)
		}
		_, err = m.RemoveInstance(ctx, ownerID, holding.Instance.WorldID)
		return err
	}

	inst, err := m.tx.FindInstance(ctx, *worldID)
	if err != nil {
		return fmt.Errorf(ErrMsgFindInstanceFailed, err)
	}
	if inst == nil || inst.ItemID != itemID {
		return fmt.Errorf(ErrMsgInstanceNotFoundFmt, domain.ErrInstanceNotFound, worldID)
	}
	_, err = m.TransferInstance(ctx, *worldID, ownerID)
	return err
}

// ChangeQuantity dispatches on the item kind and wraps every failure in a
// single *domain.OperationError.
func (m *Mutator) ChangeQuantity(ctx context.Context, ownerID string, item *domain.Item, delta int, worldID *uuid.UUID) error {
	if item == nil {
		return &domain.OperationError{Op: operationName(false, delta), Err: domain.ErrItemNotFound}
	}

	op := operationName(item.IsStacked, delta)
	var err error
	if item.IsStacked {
		_, err = m.ChangeStackQuantity(ctx, ownerID, item.ID, delta)
	} else {
		err = m.ChangeUniqueItem(ctx, ownerID, item.ID, delta, worldID)
	}

	metrics.LedgerOperations.WithLabelValues(op, metrics.Result(err)).Inc()
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgChangeFailed, "owner_id", ownerID, "item_id", item.ID, "delta", delta, "error", err)
		return &domain.OperationError{Op: op, ItemID: item.ID, Err: err}
	}
	return nil
}

// ConsumeOne removes a single unit of a stacked item if the owner holds any.
// It reports false without error when nothing was held.
func (m *Mutator) ConsumeOne(ctx context.Context, ownerID string, itemID int) (bool, error) {
	stack, err := m.tx.FindStack(ctx, ownerID, itemID)
	if err != nil {
		return false, fmt.Errorf(ErrMsgFindStackFailed, err)
	}
	if stack == nil {
		return false, nil
	}
	if _, err := m.ChangeStackQuantity(ctx, ownerID, itemID, -1); err != nil {
		return false, err
	}
	logger.FromContext(ctx).Info(LogMsgItemConsumed, "owner_id", ownerID, "item_id", itemID)
	return true, nil
}

func (m *Mutator) item(ctx context.Context, itemID int) (*domain.Item, error) {
	item, err := m.tx.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemFailed, err)
	}
	if item == nil {
		return nil, fmt.Errorf(ErrMsgItemNotFoundFmt, domain.ErrItemNotFound, itemID)
	}
	return item, nil
}

func (m *Mutator) stackedItem(ctx context.Context, itemID int) (*domain.Item, error) {
	item, err := m.item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsStacked {
		return nil, fmt.Errorf("%w: item %d", domain.ErrItemNotStackable, itemID)
	}
	return item, nil
}

func operationName(stacked bool, delta int) string {
	switch {
	case stacked && delta >= 0:
		return domain.OpAddStack
	case stacked:
		return domain.OpRemoveStack
	case delta >= 0:
		return domain.OpAddInstance
	default:
		return domain.OpRemoveInstance
	}
}
