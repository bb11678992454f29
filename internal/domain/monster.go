package domain

import "github.com/shopspring/decimal"

// DropKind says what a drop table entry rewards
type DropKind string

const (
	DropKindCurrency DropKind = "CURRENCY"
	DropKindItem     DropKind = "ITEM"
)

// DropTableEntry is one independent reward line of a monster's drop table.
// Exactly one of CurrencyID or ItemID is set, matching Kind.
type DropTableEntry struct {
	ID            int             `json:"id" db:"drop_id"`
	MonsterID     int             `json:"monster_id" db:"monster_id"`
	Kind          DropKind        `json:"kind" db:"kind" validate:"oneof=CURRENCY ITEM"`
	CurrencyID    *int            `json:"currency_id,omitempty" db:"currency_id" validate:"required_if=Kind CURRENCY,excluded_if=Kind ITEM"`
	ItemID        *int            `json:"item_id,omitempty" db:"item_id" validate:"required_if=Kind ITEM,excluded_if=Kind CURRENCY"`
	MinAmount     int             `json:"min_amount" db:"min_amount" validate:"min=1"`
	MaxAmount     int             `json:"max_amount" db:"max_amount" validate:"gtefield=MinAmount"`
	ChancePercent decimal.Decimal `json:"chance_percent" db:"chance_percent" validate:"gte=0,lte=100"`
}

// Monster is a configured monster type with its drop table
type Monster struct {
	ID       int              `json:"monster_id" db:"monster_id"`
	Code     string           `json:"code" db:"code"`
	Name     string           `json:"name" db:"name"`
	Level    int              `json:"level" db:"level"`
	XPReward int              `json:"xp_reward" db:"xp_reward"`
	IsActive bool             `json:"is_active" db:"is_active"`
	Drops    []DropTableEntry `json:"drops"`
}
