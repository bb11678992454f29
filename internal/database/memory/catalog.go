package memory

import (
	"context"
	"sort"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
)

func (s *Store) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	s.catMu.RLock()
	defer s.catMu.RUnlock()
	item, ok := s.catalog.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *Store) GetItemByCode(ctx context.Context, code string) (*domain.Item, error) {
	s.catMu.RLock()
	defer s.catMu.RUnlock()
	for _, item := range s.catalog.items {
		if item.Code == code {
			item := item
			return &item, nil
		}
	}
	return nil, nil
}

func (s *Store) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	s.catMu.RLock()
	defer s.catMu.RUnlock()
	out := make([]domain.Item, 0, len(s.catalog.items))
	for _, item := range s.catalog.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpsertItem inserts or updates an item keyed by code. A zero ID is assigned.
func (s *Store) UpsertItem(ctx context.Context, item *domain.Item) (int, error) {
	s.catMu.Lock()
	defer s.catMu.Unlock()
	for id, existing := range s.catalog.items {
		if existing.Code == item.Code {
			item.ID = id
			s.catalog.items[id] = *item
			return id, nil
		}
	}
	if item.ID == 0 {
		item.ID = s.nextIDLocked()
	}
	s.catalog.items[item.ID] = *item
	return item.ID, nil
}

func (s *Store) GetAllCurrencies(ctx context.Context) ([]domain.Currency, error) {
	s.catMu.RLock()
	defer s.catMu.RUnlock()
	out := make([]domain.Currency, 0, len(s.catalog.currencies))
	for _, c := range s.catalog.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetCurrencyByID(ctx context.Context, id int) (*domain.Currency, error) {
	s.catMu.RLock()
	defer s.catMu.RUnlock()
	c, ok := s.catalog.currencies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *Store) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	s.catMu.RLock()
	defer s.catMu.RUnlock()
	for _, c := range s.catalog.currencies {
		if c.Code == code {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

// UpsertCurrency inserts or updates a currency keyed by code
func (s *Store) UpsertCurrency(ctx context.Context, currency *domain.Currency) (int, error) {
	s.catMu.Lock()
	defer s.catMu.Unlock()
	for id, existing := range s.catalog.currencies {
		if existing.Code == currency.Code {
			currency.ID = id
			s.catalog.currencies[id] = *currency
			return id, nil
		}
	}
	if currency.ID == 0 {
		currency.ID = s.nextIDLocked()
	}
	s.catalog.currencies[currency.ID] = *currency
	return currency.ID, nil
}

func (s *Store) GetMonsterByID(ctx context.Context, id int) (*domain.Monster, error) {
	s.catMu.RLock()
	defer s.catMu.RUnlock()
	m, ok := s.catalog.monsters[id]
	if !ok {
		return nil, nil
	}
	m.Drops = append([]domain.DropTableEntry(nil), m.Drops...)
	return &m, nil
}

func (s *Store) GetMonsterByCode(ctx context.Context, code string) (*domain.Monster, error) {
	s.catMu.RLock()
	defer s.catMu.RUnlock()
	for _, m := range s.catalog.monsters {
		if m.Code == code {
			m.Drops = append([]domain.DropTableEntry(nil), m.Drops...)
			return &m, nil
		}
	}
	return nil, nil
}

// UpsertMonster inserts or updates a monster keyed by code, leaving its drop table untouched
func (s *Store) UpsertMonster(ctx context.Context, monster *domain.Monster) (int, error) {
	s.catMu.Lock()
	defer s.catMu.Unlock()
	for id, existing := range s.catalog.monsters {
		if existing.Code == monster.Code {
			monster.ID = id
			updated := *monster
			updated.Drops = existing.Drops
			s.catalog.monsters[id] = updated
			return id, nil
		}
	}
	if monster.ID == 0 {
		monster.ID = s.nextIDLocked()
	}
	stored := *monster
	stored.Drops = nil
	s.catalog.monsters[monster.ID] = stored
	return monster.ID, nil
}

func (s *Store) ReplaceDropTable(ctx context.Context, monsterID int, drops []domain.DropTableEntry) error {
	s.catMu.Lock()
	defer s.catMu.Unlock()
	m, ok := s.catalog.monsters[monsterID]
	if !ok {
		return domain.ErrMonsterNotFound
	}
	m.Drops = make([]domain.DropTableEntry, len(drops))
	for i, d := range drops {
		d.MonsterID = monsterID
		if d.ID == 0 {
			d.ID = s.nextIDLocked()
		}
		m.Drops[i] = d
	}
	s.catalog.monsters[monsterID] = m
	return nil
}

func (s *Store) nextIDLocked() int {
	s.catalog.nextID++
	for s.idTakenLocked(s.catalog.nextID) {
		s.catalog.nextID++
	}
	return s.catalog.nextID
}

func (s *Store) idTakenLocked(id int) bool {
	_, item := s.catalog.items[id]
	_, cur := s.catalog.currencies[id]
	_, mon := s.catalog.monsters[id]
	return item || cur || mon
}
