package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Lootkeeper_Go/internal/database/memory"
	"github.com/osse101/Lootkeeper_Go/internal/domain"
)

func validConfig() *Config {
	return &Config{
		Version:    "1.0",
		Currencies: []CurrencyDef{{Code: "GOLD", Name: "Gold"}},
		Items: []ItemDef{
			{Code: "potion", Name: "Potion", Type: "POTION", Stacked: true, Sellable: true, Cost: 10},
			{Code: "sword", Name: "Sword", Type: "WEAPON", Sellable: true, Cost: 50, Stats: domain.Stats{Strength: 3}},
		},
		Monsters: []MonsterDef{
			{
				Code: "rat", Name: "Rat", Level: 1, XPReward: 3,
				Drops: []DropDef{
					{Kind: domain.DropKindItem, Item: "potion", MinAmount: 1, MaxAmount: 2, ChancePercent: decimal.RequireFromString("50.00")},
					{Kind: domain.DropKindCurrency, Currency: "GOLD", MinAmount: 1, MaxAmount: 3, ChancePercent: decimal.NewFromInt(100)},
				},
			},
		},
	}
}

func TestLoader_EmbeddedCatalog(t *testing.T) {
	// ARRANGE
	loader := NewLoader()
	store := memory.NewStore()
	ctx := context.Background()

	// ACT
	config, err := loader.Load(ctx, "")
	require.NoError(t, err)
	result, err := loader.SyncToStore(ctx, config, store)

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, len(config.Currencies), result.CurrenciesSynced)
	assert.Equal(t, len(config.Items), result.ItemsSynced)
	assert.Equal(t, len(config.Monsters), result.MonstersSynced)
	assert.Positive(t, result.DropsSynced)

	gold, err := store.GetCurrencyByCode(ctx, domain.CurrencyGold)
	require.NoError(t, err)
	require.NotNil(t, gold)
	assert.True(t, gold.IsActive)

	sword, err := store.GetItemByCode(ctx, "rusty_sword")
	require.NoError(t, err)
	require.NotNil(t, sword)
	assert.False(t, sword.IsStacked)
	assert.Equal(t, 2, sword.BaseStats.Strength)
}

func TestLoader_SyncResolvesDropReferences(t *testing.T) {
	loader := NewLoader()
	store := memory.NewStore()
	ctx := context.Background()
	config := validConfig()

	_, err := loader.SyncToStore(ctx, config, store)
	require.NoError(t, err)

	potion, err := store.GetItemByCode(ctx, "potion")
	require.NoError(t, err)
	gold, err := store.GetCurrencyByCode(ctx, "GOLD")
	require.NoError(t, err)

	rat, err := store.GetMonsterByCode(ctx, "rat")
	require.NoError(t, err)
	require.NotNil(t, rat)
	assert.Equal(t, 3, rat.XPReward)
	require.Len(t, rat.Drops, 2)
	require.NotNil(t, rat.Drops[0].ItemID)
	assert.Equal(t, potion.ID, *rat.Drops[0].ItemID)
	assert.Nil(t, rat.Drops[0].CurrencyID)
	require.NotNil(t, rat.Drops[1].CurrencyID)
	assert.Equal(t, gold.ID, *rat.Drops[1].CurrencyID)
	assert.True(t, rat.Drops[0].ChancePercent.Equal(decimal.NewFromInt(50)))
}

func TestLoader_SyncIsIdempotent(t *testing.T) {
	loader := NewLoader()
	store := memory.NewStore()
	ctx := context.Background()

	_, err := loader.SyncToStore(ctx, validConfig(), store)
	require.NoError(t, err)
	first, err := store.GetAllItems(ctx)
	require.NoError(t, err)

	_, err = loader.SyncToStore(ctx, validConfig(), store)
	require.NoError(t, err)
	second, err := store.GetAllItems(ctx)
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second)
}

func TestLoader_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": "2",
		"currencies": [{"code": "GOLD", "name": "Gold"}],
		"items": [{"code": "ore", "name": "Ore", "type": "ORE", "stacked": true, "cost": 3}],
		"monsters": []
	}`), 0o600))

	config, err := NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "2", config.Version)
	require.Len(t, config.Items, 1)
	assert.True(t, config.Items[0].Stacked)
	assert.True(t, config.Items[0].ToDomain().IsActive)
}

func TestLoader_LoadMissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")
}

func TestLoader_ParseRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing items", `{"version": "1", "currencies": [], "monsters": []}`},
		{"unknown item type", `{"version": "1", "currencies": [], "monsters": [],
			"items": [{"code": "x", "name": "X", "type": "GEM", "cost": 1}]}`},
		{"negative cost", `{"version": "1", "currencies": [], "monsters": [],
			"items": [{"code": "x", "name": "X", "type": "JUNK", "cost": -1}]}`},
		{"unknown field", `{"version": "1", "currencies": [], "monsters": [], "shops": [],
			"items": [{"code": "x", "name": "X", "type": "JUNK", "cost": 1}]}`},
		{"item drop naming a currency", `{"version": "1", "currencies": [], "items": [{"code": "x", "name": "X", "type": "JUNK", "cost": 1}],
			"monsters": [{"code": "m", "name": "M", "level": 1, "drops": [
				{"kind": "ITEM", "currency": "GOLD", "min_amount": 1, "max_amount": 1, "chance_percent": 5}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().Parse([]byte(tt.data), "test")
			assert.Error(t, err)
		})
	}
}

func TestLoader_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:    "duplicate item code",
			mutate:  func(c *Config) { c.Items = append(c.Items, c.Items[0]) },
			wantErr: ErrDuplicateCode,
		},
		{
			name:    "duplicate currency code",
			mutate:  func(c *Config) { c.Currencies = append(c.Currencies, c.Currencies[0]) },
			wantErr: ErrDuplicateCode,
		},
		{
			name:    "unknown item type",
			mutate:  func(c *Config) { c.Items[0].Type = "GEM" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "no items",
			mutate:  func(c *Config) { c.Items = nil; c.Monsters = nil },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "drop references unknown item",
			mutate:  func(c *Config) { c.Monsters[0].Drops[0].Item = "elixir" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "drop with max below min",
			mutate:  func(c *Config) { c.Monsters[0].Drops[0].MaxAmount = 0 },
			wantErr: domain.ErrInvalidDropTable,
		},
		{
			name:    "drop chance with three decimals",
			mutate:  func(c *Config) { c.Monsters[0].Drops[1].ChancePercent = decimal.RequireFromString("33.333") },
			wantErr: domain.ErrInvalidDropTable,
		},
		{
			name:    "monster level zero",
			mutate:  func(c *Config) { c.Monsters[0].Level = 0 },
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(config)

			err := NewLoader().Validate(config)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_ValidateNil(t *testing.T) {
	assert.ErrorIs(t, NewLoader().Validate(nil), ErrInvalidConfig)
}

func TestLoader_SyncRejectsInvalidConfig(t *testing.T) {
	store := memory.NewStore()
	config := validConfig()
	config.Items[0].Type = "GEM"

	_, err := NewLoader().SyncToStore(context.Background(), config, store)

	assert.ErrorIs(t, err, ErrInvalidConfig)
	items, err := store.GetAllItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}
