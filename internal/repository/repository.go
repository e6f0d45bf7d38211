package repository

import (
	"snowrent-backend/internal/domain"
)

// Store is the durable home of the three entity collections. Loads are
// fail-soft: a missing or unreadable file yields an empty collection so the
// caller can start with a blank registry instead of crashing. Saves rewrite
// the whole collection from the given snapshot and report failure to the
// caller without retrying.
type Store interface {
	LoadMembers() []*domain.Member
	SaveMembers(members []*domain.Member) error

	LoadItems() []domain.Item
	SaveItems(items []domain.Item) error

	LoadRentals() []*domain.Rental
	SaveRentals(rentals []*domain.Rental) error
}
