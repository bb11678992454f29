package domain

import (
	"time"

	"github.com/google/uuid"
)

// StackEntry holds a fungible item as a single counter per owner.
// Quantity is always positive; the entry is deleted when it reaches zero.
type StackEntry struct {
	OwnerID  string `json:"owner_id" db:"owner_id"`
	ItemID   int    `json:"item_id" db:"item_id"`
	Quantity int    `json:"quantity" db:"quantity"`
}

// ItemInstance is one unique, non-stackable item. WorldID is immutable and
// never reused. A nil OwnerID means the instance lies unowned in the world.
type ItemInstance struct {
	WorldID   uuid.UUID `json:"world_id" db:"world_id"`
	ItemID    int       `json:"item_id" db:"item_id"`
	OwnerID   *string   `json:"owner_id,omitempty" db:"owner_id"`
	Bonuses   Stats     `json:"bonuses"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// OwnedBy reports whether the instance belongs to ownerID
func (i *ItemInstance) OwnedBy(ownerID string) bool {
	return i.OwnerID != nil && *i.OwnerID == ownerID
}

// Holding is the held representation of an item: exactly one of Stack or
// Instance is set.
type Holding struct {
	Stack    *StackEntry
	Instance *ItemInstance
}

// IsStack reports whether the holding is a stacked entry
func (h Holding) IsStack() bool {
	return h.Stack != nil
}

// Quantity returns the number of units the holding represents
func (h Holding) Quantity() int {
	switch {
	case h.Stack != nil:
		return h.Stack.Quantity
	case h.Instance != nil:
		return 1
	default:
		return 0
	}
}

// HoldingKind labels an inventory display record
type HoldingKind string

const (
	HoldingKindStack    HoldingKind = "stack"
	HoldingKindInstance HoldingKind = "instance"
	HoldingKindEmpty    HoldingKind = "empty"
)

// HoldingView is one slot of an owner's inventory as presented to callers
type HoldingView struct {
	Kind        HoldingKind `json:"type"`
	SlotNumber  int         `json:"slot_number"`
	ItemID      int         `json:"item_id,omitempty"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Quantity    int         `json:"quantity,omitempty"`
	WorldID     *uuid.UUID  `json:"world_id,omitempty"`
	Stats       []StatLine  `json:"stats,omitempty"`
}

// Grant is a single inventory change: Amount units of ItemID, or the
// specific unique instance WorldID. Amount is signed.
type Grant struct {
	ItemID  int        `json:"item_id"`
	Amount  int        `json:"amount"`
	WorldID *uuid.UUID `json:"world_id,omitempty"`
}
