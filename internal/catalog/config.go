package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
)

// Config represents the JSON catalog configuration
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Currencies []CurrencyDef `json:"currencies"`
	Items      []ItemDef     `json:"items"`
	Monsters   []MonsterDef  `json:"monsters"`
}

// CurrencyDef represents a single currency definition in the JSON
type CurrencyDef struct {
	Code   string `json:"code" validate:"required,max=64"`
	Name   string `json:"name" validate:"required"`
	Active *bool  `json:"active,omitempty"`
}

// ItemDef represents a single item template definition in the JSON
type ItemDef struct {
	Code        string       `json:"code" validate:"required,max=64"`
	Name        string       `json:"name" validate:"required,max=100"`
	Description string       `json:"description"`
	Type        string       `json:"type" validate:"required,itemtype"`
	Stacked     bool         `json:"stacked"`
	Sellable    bool         `json:"sellable"`
	Active      *bool        `json:"active,omitempty"`
	Cost        int          `json:"cost" validate:"gte=0"`
	MinLevel    int          `json:"min_level" validate:"gte=0"`
	Stats       domain.Stats `json:"stats"`
}

// MonsterDef represents a monster and its drop table. Drops reference items
// and currencies by code.
type MonsterDef struct {
	Code     string    `json:"code" validate:"required,max=64"`
	Name     string    `json:"name" validate:"required"`
	Level    int       `json:"level" validate:"gte=1"`
	XPReward int       `json:"xp_reward" validate:"gte=0"`
	Active   *bool     `json:"active,omitempty"`
	Drops    []DropDef `json:"drops"`
}

// DropDef is one drop table line of a MonsterDef
type DropDef struct {
	Kind          domain.DropKind `json:"kind"`
	Item          string          `json:"item,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	MinAmount     int             `json:"min_amount"`
	MaxAmount     int             `json:"max_amount"`
	ChancePercent decimal.Decimal `json:"chance_percent"`
}

// SyncResult contains the result of syncing a catalog to storage
type SyncResult struct {
	CurrenciesSynced int
	ItemsSynced      int
	MonstersSynced   int
	DropsSynced      int
}

func activeOrDefault(active *bool) bool {
	return active == nil || *active
}

// ToDomain converts the definition into an item template
func (d ItemDef) ToDomain() *domain.Item {
	return &domain.Item{
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		ItemType:    domain.ItemType(d.Type),
		IsStacked:   d.Stacked,
		IsSellable:  d.Sellable,
		IsActive:    activeOrDefault(d.Active),
		Cost:        d.Cost,
		MinLevel:    d.MinLevel,
		BaseStats:   d.Stats,
	}
}

// ToDomain converts the definition into a currency
func (d CurrencyDef) ToDomain() *domain.Currency {
	return &domain.Currency{
		Code:     d.Code,
		Name:     d.Name,
		IsActive: activeOrDefault(d.Active),
	}
}

// ToDomain converts the definition into a monster without its drop table
func (d MonsterDef) ToDomain() *domain.Monster {
	return &domain.Monster{
		Code:     d.Code,
		Name:     d.Name,
		Level:    d.Level,
		XPReward: d.XPReward,
		IsActive: activeOrDefault(d.Active),
	}
}

// toEntry resolves the drop's codes through the given lookups. ok is false
// when a referenced code is unknown.
func (d DropDef) toEntry(itemIDs, currencyIDs map[string]int) (domain.DropTableEntry, string, bool) {
	entry := domain.DropTableEntry{
		Kind:          d.Kind,
		MinAmount:     d.MinAmount,
		MaxAmount:     d.MaxAmount,
		ChancePercent: d.ChancePercent,
	}
	if d.Item != "" {
		id, ok := itemIDs[d.Item]
		if !ok {
			return entry, DefItem, false
		}
		entry.ItemID = &id
	}
	if d.Currency != "" {
		id, ok := currencyIDs[d.Currency]
		if !ok {
			return entry, DefCurrency, false
		}
		entry.CurrencyID = &id
	}
	return entry, "", true
}
