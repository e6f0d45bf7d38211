package service

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"snowrent-backend/internal/domain"
	"snowrent-backend/internal/logger"
	"snowrent-backend/internal/repository"
)

type rentalLedger struct {
	mu      sync.RWMutex
	rentals []*domain.Rental
	nextID  int64
	store   repository.Store

	members   MemberRegistry
	inventory Inventory

	// now is the ledger clock; swapped out in tests.
	now func() time.Time
}

// NewRentalLedger loads the rental collection and rebuilds the ID counter
// from the highest numeric ID found, so restarts never reuse a rental ID.
// The ledger holds non-owning references into the two registries: it looks
// entities up by ID and requests mutations through their public operations,
// never duplicating their state.
func NewRentalLedger(store repository.Store, members MemberRegistry, inv Inventory) RentalLedger {
	l := &rentalLedger{
		rentals:   store.LoadRentals(),
		store:     store,
		members:   members,
		inventory: inv,
		now:       time.Now,
	}
	l.nextID = maxNumericID(0, len(l.rentals), func(i int) string { return l.rentals[i].ID() }) + 1
	return l
}

// StartRental opens a rental for the member on the item. The whole step
// sequence runs under the ledger lock: create the record, flip the item
// unavailable and bump its counter, append the rental reference to the
// member's history, persist the ledger. Any lookup or availability failure
// leaves all three collections untouched.
func (l *rentalLedger) StartRental(memberID, itemID string, policy domain.PricePolicy) (*domain.Rental, error) {
	l.mu.Lock()

	member, ok := l.members.FindByID(memberID)
	if !ok {
		l.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
	}
	item, ok := l.inventory.FindByID(itemID)
	if !ok {
		l.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	if !item.Common().Available() {
		l.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, itemID)
	}

	id := strconv.FormatInt(l.nextID, 10)
	l.nextID++

	rental := domain.NewRental(id, member.ID(), item.Common().ID(), policy, l.now())
	l.rentals = append(l.rentals, rental)

	if err := l.inventory.MarkRented(itemID); err != nil {
		logger.Error("Failed to mark item rented", "item_id", itemID, "error", err)
	}
	if err := l.members.AppendRentalHistory(member.ID(), id); err != nil {
		logger.Error("Failed to append rental to member history", "member_id", member.ID(), "error", err)
	}

	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(snap)
	return rental.Clone(), nil
}

// EndRental closes the active rental with the given ID and returns the final
// cost. A closed rental is not found again: a second call reports
// ErrRentalNotFound. If the rented item has been removed from inventory the
// rental still closes, at cost zero.
func (l *rentalLedger) EndRental(rentalID string) (float64, error) {
	l.mu.Lock()

	rental, ok := l.findActiveLocked(rentalID)
	if !ok {
		l.mu.Unlock()
		return 0, fmt.Errorf("%w: %s", ErrRentalNotFound, rentalID)
	}

	now := l.now()
	var cost float64
	item, itemExists := l.inventory.FindByID(rental.ItemID())
	if itemExists {
		cost = rental.CostAt(item.Common().PricePerHour(), now)
	}
	rental.Close(cost, now)

	if itemExists {
		if err := l.inventory.MarkReturned(rental.ItemID()); err != nil {
			logger.Error("Failed to mark item returned", "item_id", rental.ItemID(), "error", err)
		}
	}

	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(snap)
	return cost, nil
}

func (l *rentalLedger) CurrentCost(rentalID string) (float64, error) {
	l.mu.RLock()
	var rental *domain.Rental
	for _, r := range l.rentals {
		if r.ID() == rentalID {
			rental = r
			break
		}
	}
	l.mu.RUnlock()

	if rental == nil {
		return 0, fmt.Errorf("%w: %s", ErrRentalNotFound, rentalID)
	}

	var basePrice float64
	if item, ok := l.inventory.FindByID(rental.ItemID()); ok {
		basePrice = item.Common().PricePerHour()
	}
	return rental.CostAt(basePrice, l.now()), nil
}

func (l *rentalLedger) ActiveRentals() []*domain.Rental {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*domain.Rental
	for _, r := range l.rentals {
		if r.Active() {
			out = append(out, r.Clone())
		}
	}
	return out
}

func (l *rentalLedger) All() []*domain.Rental {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

func (l *rentalLedger) TotalRevenue() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var sum float64
	for _, r := range l.rentals {
		if !r.Active() {
			sum += r.TotalCost()
		}
	}
	return sum
}

var periodWindows = map[string]int{
	"1 Dag":   1,
	"1 Vecka": 7,
	"1 Månad": 30,
	"1 År":    365,
}

const dateLayout = "2006-01-02"

// RevenueByPeriod accumulates each closed rental's frozen cost into the
// bucket for the date portion of its start timestamp, over a window ending
// today. Unknown period labels use the one-week window.
func (l *rentalLedger) RevenueByPeriod(period string) map[string]float64 {
	days, ok := periodWindows[period]
	if !ok {
		days = periodWindows["1 Vecka"]
	}

	now := l.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowStart := today.AddDate(0, 0, -(days - 1))

	buckets := make(map[string]float64, days)
	for d := windowStart; !d.After(today); d = d.AddDate(0, 0, 1) {
		buckets[d.Format(dateLayout)] = 0
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, r := range l.rentals {
		if r.Active() {
			continue
		}
		start, err := domain.ParseTime(r.StartTime())
		if err != nil {
			continue
		}
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
		if day.Before(windowStart) || day.After(today) {
			continue
		}
		buckets[day.Format(dateLayout)] += r.TotalCost()
	}
	return buckets
}

func (l *rentalLedger) Save() error {
	l.mu.RLock()
	snap := l.snapshotLocked()
	l.mu.RUnlock()

	logger.FileWrite("rentals.json", "count", len(snap))
	err := l.store.SaveRentals(snap)
	logger.FileWriteResult("rentals.json", err)
	return err
}

// SaveAll persists the member, item and rental collections in sequence while
// holding the ledger lock, so no rental can be half-applied across the three
// files within one pass. Individual failures are collected, never aborting
// the remaining saves.
func (l *rentalLedger) SaveAll() []error {
	l.mu.RLock()
	snap := l.snapshotLocked()

	var errs []error
	if err := l.members.Save(); err != nil {
		errs = append(errs, fmt.Errorf("save members: %w", err))
	}
	if err := l.inventory.Save(); err != nil {
		errs = append(errs, fmt.Errorf("save items: %w", err))
	}
	l.mu.RUnlock()

	logger.FileWrite("rentals.json", "count", len(snap))
	err := l.store.SaveRentals(snap)
	logger.FileWriteResult("rentals.json", err)
	if err != nil {
		errs = append(errs, fmt.Errorf("save rentals: %w", err))
	}
	return errs
}

func (l *rentalLedger) findActiveLocked(rentalID string) (*domain.Rental, bool) {
	for _, r := range l.rentals {
		if r.ID() == rentalID && r.Active() {
			return r, true
		}
	}
	return nil, false
}

func (l *rentalLedger) snapshotLocked() []*domain.Rental {
	snap := make([]*domain.Rental, 0, len(l.rentals))
	for _, r := range l.rentals {
		snap = append(snap, r.Clone())
	}
	return snap
}

func (l *rentalLedger) persist(snap []*domain.Rental) {
	logger.FileWrite("rentals.json", "count", len(snap))
	err := l.store.SaveRentals(snap)
	logger.FileWriteResult("rentals.json", err)
}
