package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"snowrent-backend/internal/domain"
	"snowrent-backend/internal/logger"
	"snowrent-backend/internal/repository"
)

// itemIDBase seeds the ID counter for an empty inventory; the first
// generated item ID is then "1000".
const itemIDBase = 999

type inventory struct {
	mu     sync.RWMutex
	items  []domain.Item
	nextID int64
	store  repository.Store
}

// NewInventory loads the equipment collection and rebuilds the ID counter
// from the highest numeric ID found.
func NewInventory(store repository.Store) Inventory {
	inv := &inventory{
		items: store.LoadItems(),
		store: store,
	}
	inv.nextID = maxNumericID(itemIDBase, len(inv.items), func(i int) string { return inv.items[i].Common().ID() }) + 1
	return inv
}

func (inv *inventory) GenerateID() string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	id := inv.nextID
	inv.nextID++
	return strconv.FormatInt(id, 10)
}

func (inv *inventory) Add(item domain.Item) error {
	inv.mu.Lock()
	if _, ok := inv.findLocked(item.Common().ID()); ok {
		inv.mu.Unlock()
		return fmt.Errorf("%w: item %s", ErrDuplicateID, item.Common().ID())
	}
	inv.items = append(inv.items, item.Clone())
	snap := inv.snapshotLocked()
	inv.mu.Unlock()

	inv.persist(snap)
	return nil
}

// Update copies the mutable fields of the given item onto the stored item
// with the same ID: name, price, availability, and the variant-specific
// fields when the variants match. The stored identity and rental counter are
// untouched.
func (inv *inventory) Update(item domain.Item) error {
	inv.mu.Lock()
	existing, ok := inv.findLocked(item.Common().ID())
	if !ok {
		inv.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrItemNotFound, item.Common().ID())
	}

	existing.Common().SetName(item.Common().Name())
	if err := existing.Common().SetPricePerHour(item.Common().PricePerHour()); err != nil {
		inv.mu.Unlock()
		return err
	}
	existing.Common().SetAvailable(item.Common().Available())

	switch want := item.(type) {
	case *domain.Scooter:
		if have, ok := existing.(*domain.Scooter); ok {
			if err := have.SetEngineDisplacement(want.EngineDisplacement()); err != nil {
				inv.mu.Unlock()
				return err
			}
			have.SetLicensePlate(want.LicensePlate())
			have.SetElectricStart(want.ElectricStart())
		}
	case *domain.Sled:
		if have, ok := existing.(*domain.Sled); ok {
			if err := have.SetMaxLoadKg(want.MaxLoadKg()); err != nil {
				inv.mu.Unlock()
				return err
			}
			have.SetCategory(want.Category())
		}
	}
	snap := inv.snapshotLocked()
	inv.mu.Unlock()

	inv.persist(snap)
	return nil
}

func (inv *inventory) Remove(itemID string) error {
	inv.mu.Lock()
	idx := -1
	for i, item := range inv.items {
		if item.Common().ID() == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		inv.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	inv.items = append(inv.items[:idx], inv.items[idx+1:]...)
	snap := inv.snapshotLocked()
	inv.mu.Unlock()

	inv.persist(snap)
	return nil
}

func (inv *inventory) FindByID(itemID string) (domain.Item, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	item, ok := inv.findLocked(itemID)
	if !ok {
		return nil, false
	}
	return item.Clone(), true
}

func (inv *inventory) All() []domain.Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.snapshotLocked()
}

func (inv *inventory) Available() []domain.Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	var out []domain.Item
	for _, item := range inv.items {
		if item.Common().Available() {
			out = append(out, item.Clone())
		}
	}
	return out
}

// Search matches the query case-insensitively against the item name, and for
// scooters additionally against the engine displacement rendered as text and
// the license plate. An empty query matches everything.
func (inv *inventory) Search(query string, filter ItemFilter, onlyAvailable bool) []domain.Item {
	q := strings.ToLower(query)
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	var out []domain.Item
	for _, item := range inv.items {
		switch filter {
		case ItemFilterScooter:
			if item.Kind() != domain.ItemKindScooter {
				continue
			}
		case ItemFilterSled:
			if item.Kind() != domain.ItemKindSled {
				continue
			}
		}
		if onlyAvailable && !item.Common().Available() {
			continue
		}
		if !matchesQuery(item, q) {
			continue
		}
		out = append(out, item.Clone())
	}
	return out
}

func matchesQuery(item domain.Item, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.Common().Name()), q) {
		return true
	}
	if s, ok := item.(*domain.Scooter); ok {
		return strings.Contains(strconv.Itoa(s.EngineDisplacement()), q) ||
			strings.Contains(strings.ToLower(s.LicensePlate()), q)
	}
	return false
}

func (inv *inventory) MostPopular(limit int) []domain.Item {
	inv.mu.RLock()
	snap := inv.snapshotLocked()
	inv.mu.RUnlock()

	sort.SliceStable(snap, func(i, j int) bool {
		return snap[i].Common().RentalCount() > snap[j].Common().RentalCount()
	})
	if limit >= 0 && limit < len(snap) {
		snap = snap[:limit]
	}
	return snap
}

func (inv *inventory) PopularityByName() map[string]int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make(map[string]int)
	for _, item := range inv.items {
		out[item.Common().Name()] += item.Common().RentalCount()
	}
	return out
}

func (inv *inventory) TotalCount() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.items)
}

func (inv *inventory) AvailableCount() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	n := 0
	for _, item := range inv.items {
		if item.Common().Available() {
			n++
		}
	}
	return n
}

func (inv *inventory) RentedCount() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	n := 0
	for _, item := range inv.items {
		if !item.Common().Available() {
			n++
		}
	}
	return n
}

func (inv *inventory) MarkRented(itemID string) error {
	inv.mu.Lock()
	item, ok := inv.findLocked(itemID)
	if !ok {
		inv.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	item.Common().SetAvailable(false)
	item.Common().IncrementRentalCount()
	snap := inv.snapshotLocked()
	inv.mu.Unlock()

	inv.persist(snap)
	return nil
}

func (inv *inventory) MarkReturned(itemID string) error {
	inv.mu.Lock()
	item, ok := inv.findLocked(itemID)
	if !ok {
		inv.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	item.Common().SetAvailable(true)
	snap := inv.snapshotLocked()
	inv.mu.Unlock()

	inv.persist(snap)
	return nil
}

func (inv *inventory) Save() error {
	inv.mu.RLock()
	snap := inv.snapshotLocked()
	inv.mu.RUnlock()

	logger.FileWrite("items.json", "count", len(snap))
	err := inv.store.SaveItems(snap)
	logger.FileWriteResult("items.json", err)
	return err
}

func (inv *inventory) findLocked(itemID string) (domain.Item, bool) {
	for _, item := range inv.items {
		if item.Common().ID() == itemID {
			return item, true
		}
	}
	return nil, false
}

func (inv *inventory) snapshotLocked() []domain.Item {
	snap := make([]domain.Item, 0, len(inv.items))
	for _, item := range inv.items {
		snap = append(snap, item.Clone())
	}
	return snap
}

func (inv *inventory) persist(snap []domain.Item) {
	logger.FileWrite("items.json", "count", len(snap))
	err := inv.store.SaveItems(snap)
	logger.FileWriteResult("items.json", err)
}
