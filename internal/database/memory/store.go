// Package memory provides an in-process implementation of repository.Store.
//
// Ledger transactions are serialized by a store-wide mutex: BeginTx copies
// the ledger state, the transaction mutates its copy, and Commit swaps it
// in. Rollback simply discards the copy, so a failed transaction is never
// observable. Catalog data is configuration and lives outside transactions.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
)

// ErrTxClosed is returned by Commit or Rollback on a finished transaction
var ErrTxClosed = errors.New(domain.ErrMsgTxClosed)

// ErrMsgStackLimitFmt reports an increment past domain.MaxStackQuantity
const ErrMsgStackLimitFmt = "%w: item %d"

type stackKey struct {
	ownerID string
	itemID  int
}

type walletKey struct {
	ownerID    string
	currencyID int
}

type ledgerState struct {
	stacks    map[stackKey]int
	instances map[uuid.UUID]domain.ItemInstance
	wallets   map[walletKey]int64
}

func newLedgerState() *ledgerState {
	return &ledgerState{
		stacks:    make(map[stackKey]int),
		instances: make(map[uuid.UUID]domain.ItemInstance),
		wallets:   make(map[walletKey]int64),
	}
}

func (s *ledgerState) clone() *ledgerState {
	c := &ledgerState{
		stacks:    make(map[stackKey]int, len(s.stacks)),
		instances: make(map[uuid.UUID]domain.ItemInstance, len(s.instances)),
		wallets:   make(map[walletKey]int64, len(s.wallets)),
	}
	for k, v := range s.stacks {
		c.stacks[k] = v
	}
	for k, v := range s.instances {
		c.instances[k] = copyInstance(v)
	}
	for k, v := range s.wallets {
		c.wallets[k] = v
	}
	return c
}

type catalogState struct {
	items      map[int]domain.Item
	currencies map[int]domain.Currency
	monsters   map[int]domain.Monster
	nextID     int
}

// Store is an in-memory repository.Store
type Store struct {
	txMu   sync.Mutex
	ledger *ledgerState

	catMu   sync.RWMutex
	catalog catalogState

	now func() time.Time
}

var _ repository.Store = (*Store)(nil)

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		ledger: newLedgerState(),
		catalog: catalogState{
			items:      make(map[int]domain.Item),
			currencies: make(map[int]domain.Currency),
			monsters:   make(map[int]domain.Monster),
		},
		now: time.Now,
	}
}

// BeginTx starts a transaction. It blocks until any other open transaction finishes.
func (s *Store) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.txMu.Lock()
	return &tx{store: s, state: s.ledger.clone()}, nil
}

// StackCount returns the number of stack rows currently committed
func (s *Store) StackCount() int {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return len(s.ledger.stacks)
}

type tx struct {
	store *Store
	state *ledgerState
	done  bool
}

func (t *tx) Commit(ctx context.Context) error {
	if t.done {
		return ErrTxClosed
	}
	t.done = true
	t.store.ledger = t.state
	t.store.txMu.Unlock()
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if t.done {
		return ErrTxClosed
	}
	t.done = true
	t.store.txMu.Unlock()
	return nil
}

func (t *tx) FindStack(ctx context.Context, ownerID string, itemID int) (*domain.StackEntry, error) {
	qty, ok := t.state.stacks[stackKey{ownerID, itemID}]
	if !ok {
		return nil, nil
	}
	return &domain.StackEntry{OwnerID: ownerID, ItemID: itemID, Quantity: qty}, nil
}

func (t *tx) AddToStack(ctx context.Context, ownerID string, itemID, delta int) (int, bool, error) {
	key := stackKey{ownerID, itemID}
	qty, ok := t.state.stacks[key]
	if !ok {
		return 0, false, nil
	}
	if delta > domain.MaxStackQuantity-qty {
		return 0, false, fmt.Errorf(ErrMsgStackLimitFmt, domain.ErrStackLimit, itemID)
	}
	qty += delta
	t.state.stacks[key] = qty
	return qty, true, nil
}

func (t *tx) UpsertStack(ctx context.Context, ownerID string, itemID, delta int) (int, error) {
	key := stackKey{ownerID, itemID}
	qty := t.state.stacks[key]
	if delta > domain.MaxStackQuantity-qty {
		return 0, fmt.Errorf(ErrMsgStackLimitFmt, domain.ErrStackLimit, itemID)
	}
	t.state.stacks[key] = qty + delta
	return qty + delta, nil
}

func (t *tx) DeleteStack(ctx context.Context, ownerID string, itemID int) error {
	delete(t.state.stacks, stackKey{ownerID, itemID})
	return nil
}

func (t *tx) ListStacks(ctx context.Context, ownerID string) ([]domain.StackEntry, error) {
	var out []domain.StackEntry
	for k, qty := range t.state.stacks {
		if k.ownerID == ownerID {
			out = append(out, domain.StackEntry{OwnerID: ownerID, ItemID: k.itemID, Quantity: qty})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (t *tx) FindInstance(ctx context.Context, worldID uuid.UUID) (*domain.ItemInstance, error) {
	inst, ok := t.state.instances[worldID]
	if !ok {
		return nil, nil
	}
	inst = copyInstance(inst)
	return &inst, nil
}

func (t *tx) FindInstanceByOwnerItem(ctx context.Context, ownerID string, itemID int) (*domain.ItemInstance, error) {
	owned, err := t.ListInstances(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range owned {
		if owned[i].ItemID == itemID {
			return &owned[i], nil
		}
	}
	return nil, nil
}

func (t *tx) InsertInstance(ctx context.Context, instance *domain.ItemInstance) error {
	if _, exists := t.state.instances[instance.WorldID]; exists {
		return errors.New("duplicate world id " + instance.WorldID.String())
	}
	if instance.CreatedAt.IsZero() {
		instance.CreatedAt = t.store.now().UTC()
	}
	t.state.instances[instance.WorldID] = copyInstance(*instance)
	return nil
}

func (t *tx) ReassignOwner(ctx context.Context, worldID uuid.UUID, ownerID *string) error {
	inst, ok := t.state.instances[worldID]
	if !ok {
		return domain.ErrInstanceNotFound
	}
	inst.OwnerID = copyOwner(ownerID)
	t.state.instances[worldID] = inst
	return nil
}

func (t *tx) DeleteInstance(ctx context.Context, worldID uuid.UUID) error {
	delete(t.state.instances, worldID)
	return nil
}

func (t *tx) ListInstances(ctx context.Context, ownerID string) ([]domain.ItemInstance, error) {
	var out []domain.ItemInstance
	for _, inst := range t.state.instances {
		if inst.OwnedBy(ownerID) {
			out = append(out, copyInstance(inst))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].WorldID.String() < out[j].WorldID.String()
	})
	return out, nil
}

func (t *tx) FindWallet(ctx context.Context, ownerID string, currencyID int) (*domain.Wallet, error) {
	amount, ok := t.state.wallets[walletKey{ownerID, currencyID}]
	if !ok {
		return nil, nil
	}
	return &domain.Wallet{OwnerID: ownerID, CurrencyID: currencyID, Amount: amount}, nil
}

func (t *tx) UpsertWallet(ctx context.Context, wallet *domain.Wallet) error {
	t.state.wallets[walletKey{wallet.OwnerID, wallet.CurrencyID}] = wallet.Amount
	return nil
}

func (t *tx) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	return t.store.GetItemByID(ctx, id)
}

func (t *tx) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return t.store.GetCurrencyByCode(ctx, code)
}

func copyOwner(ownerID *string) *string {
	if ownerID == nil {
		return nil
	}
	o := *ownerID
	return &o
}

func copyInstance(inst domain.ItemInstance) domain.ItemInstance {
	inst.OwnerID = copyOwner(inst.OwnerID)
	return inst
}
