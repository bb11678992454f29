package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/logger"
)

// Item names are player-facing and frequently non-ASCII, so they are ordered
// with a locale-aware collator rather than by byte value.
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.Und, collate.IgnoreCase)
)

func compareNames(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// ListHoldings returns the owner's stacks followed by unique instances, each
// group ordered by item name, padded with empty slots up to slotCapacity.
// Capacity is display-only: holdings beyond it are still listed.
func (m *Mutator) ListHoldings(ctx context.Context, ownerID string, slotCapacity int) ([]domain.HoldingView, error) {
	stacks, err := m.tx.ListStacks(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListHoldingsFailed, err)
	}
	instances, err := m.tx.ListInstances(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListHoldingsFailed, err)
	}

	templates := make(map[int]*domain.Item)
	template := func(itemID int) (*domain.Item, error) {
		if item, ok := templates[itemID]; ok {
			return item, nil
		}
		item, err := m.item(ctx, itemID)
		if err != nil {
			return nil, err
		}
		templates[itemID] = item
		return item, nil
	}

	stackViews := make([]domain.HoldingView, 0, len(stacks))
	for _, s := range stacks {
		item, err := template(s.ItemID)
		if err != nil {
			return nil, err
		}
		stackViews = append(stackViews, domain.HoldingView{
			Kind:        domain.HoldingKindStack,
			ItemID:      s.ItemID,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    s.Quantity,
		})
	}

	instanceViews := make([]domain.HoldingView, 0, len(instances))
	for i := range instances {
		inst := instances[i]
		item, err := template(inst.ItemID)
		if err != nil {
			return nil, err
		}
		worldID := inst.WorldID
		instanceViews = append(instanceViews, domain.HoldingView{
			Kind:        domain.HoldingKindInstance,
			ItemID:      inst.ItemID,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    1,
			WorldID:     &worldID,
			Stats:       domain.StatLines(item.BaseStats, inst.Bonuses),
		})
	}

	sortByName(stackViews)
	sortByName(instanceViews)

	views := append(stackViews, instanceViews...)
	if slotCapacity > 0 && len(views) > slotCapacity {
		logger.FromContext(ctx).Warn(LogMsgCapacityExceeded, "owner_id", ownerID, "held", len(views), "capacity", slotCapacity)
	}
	for len(views) < slotCapacity {
		views = append(views, domain.HoldingView{Kind: domain.HoldingKindEmpty})
	}
	for i := range views {
		views[i].SlotNumber = i + 1
	}
	return views, nil
}

func sortByName(views []domain.HoldingView) {
	sort.SliceStable(views, func(i, j int) bool {
		return compareNames(views[i].Name, views[j].Name) < 0
	})
}
