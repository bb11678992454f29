package catalog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/logger"
	"github.com/osse101/Lootkeeper_Go/internal/metrics"
)

// Reader is the catalog read surface served by the cache
type Reader interface {
	GetItemByID(ctx context.Context, id int) (*domain.Item, error)
	GetCurrencyByID(ctx context.Context, id int) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	GetMonsterByID(ctx context.Context, id int) (*domain.Monster, error)
}

// Cache is a read-through LRU cache in front of catalog storage with
// time-based expiration. Catalog rows only change on sync, so entries are
// dropped wholesale with Purge rather than invalidated one by one. Misses
// that find nothing are not cached.
type Cache struct {
	repo       Reader
	items      *expirable.LRU[int, *domain.Item]
	currencies *expirable.LRU[string, *domain.Currency]
	monsters   *expirable.LRU[int, *domain.Monster]
}

var _ Reader = (*Cache)(nil)

// NewCache creates a new catalog cache with the specified size per kind and TTL
func NewCache(repo Reader, size int, ttl time.Duration) *Cache {
	return &Cache{
		repo:       repo,
		items:      expirable.NewLRU[int, *domain.Item](size, nil, ttl),
		currencies: expirable.NewLRU[string, *domain.Currency](size, nil, ttl),
		monsters:   expirable.NewLRU[int, *domain.Monster](size, nil, ttl),
	}
}

func recordLookup(hit bool) {
	if hit {
		metrics.CatalogCacheLookups.WithLabelValues(metrics.ResultHit).Inc()
		return
	}
	metrics.CatalogCacheLookups.WithLabelValues(metrics.ResultMiss).Inc()
}

// GetItemByID returns a copy of the item template, or nil when unknown
func (c *Cache) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	if item, ok := c.items.Get(id); ok {
		recordLookup(true)
		cp := *item
		return &cp, nil
	}
	recordLookup(false)

	item, err := c.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemFailed, err)
	}
	if item == nil {
		return nil, nil
	}
	cp := *item
	c.items.Add(id, &cp)
	return item, nil
}

// GetCurrencyByCode returns a copy of the currency, or nil when unknown
func (c *Cache) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	if currency, ok := c.currencies.Get(code); ok {
		recordLookup(true)
		cp := *currency
		return &cp, nil
	}
	recordLookup(false)

	currency, err := c.repo.GetCurrencyByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCurrencyFailed, err)
	}
	if currency == nil {
		return nil, nil
	}
	c.storeCurrency(currency)
	return currency, nil
}

// GetCurrencyByID returns a copy of the currency, or nil when unknown
func (c *Cache) GetCurrencyByID(ctx context.Context, id int) (*domain.Currency, error) {
	if currency, ok := c.currencies.Get(currencyIDKey(id)); ok {
		recordLookup(true)
		cp := *currency
		return &cp, nil
	}
	recordLookup(false)

	currency, err := c.repo.GetCurrencyByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCurrencyFailed, err)
	}
	if currency == nil {
		return nil, nil
	}
	c.storeCurrency(currency)
	return currency, nil
}

// Currencies share one LRU under both their code and their id
func (c *Cache) storeCurrency(currency *domain.Currency) {
	cp := *currency
	c.currencies.Add(cp.Code, &cp)
	c.currencies.Add(currencyIDKey(cp.ID), &cp)
}

func currencyIDKey(id int) string {
	return "#" + strconv.Itoa(id)
}

// GetMonsterByID returns a copy of the monster with its drop table, or nil
// when unknown
func (c *Cache) GetMonsterByID(ctx context.Context, id int) (*domain.Monster, error) {
	if monster, ok := c.monsters.Get(id); ok {
		recordLookup(true)
		return copyMonster(monster), nil
	}
	recordLookup(false)

	monster, err := c.repo.GetMonsterByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetMonsterFailed, err)
	}
	if monster == nil {
		return nil, nil
	}
	c.monsters.Add(id, copyMonster(monster))
	return monster, nil
}

func copyMonster(m *domain.Monster) *domain.Monster {
	cp := *m
	cp.Drops = append([]domain.DropTableEntry(nil), m.Drops...)
	return &cp
}

// Purge removes all entries from the cache. Call it after a catalog sync.
func (c *Cache) Purge(ctx context.Context) {
	c.items.Purge()
	c.currencies.Purge()
	c.monsters.Purge()
	logger.FromContext(ctx).Info(LogMsgCachePurged)
}

// Len returns the number of cached entries across all kinds
func (c *Cache) Len() int {
	return c.items.Len() + c.currencies.Len() + c.monsters.Len()
}
