package service

import (
	"snowrent-backend/internal/domain"
)

// ItemFilter narrows an inventory search to one equipment variant. The
// labels are the ones the item browser presents.
type ItemFilter string

const (
	ItemFilterAll     ItemFilter = "Alla"
	ItemFilterScooter ItemFilter = "Scooter"
	ItemFilterSled    ItemFilter = "Sled"
)

type MemberRegistry interface {
	// GenerateID returns the next free numeric member ID, one past the
	// highest numeric ID seen at load time.
	GenerateID() string
	Add(member *domain.Member) error
	// Update overwrites name/phone/email/tier of the stored member with the
	// same ID. The stored identity is never replaced.
	Update(member *domain.Member) error
	Remove(memberID string) error
	// FindByID matches case-insensitively.
	FindByID(memberID string) (*domain.Member, bool)
	// SearchByName matches a case-insensitive substring of first or last name.
	SearchByName(query string) []*domain.Member
	All() []*domain.Member
	// AppendRentalHistory records a rental reference on the member.
	AppendRentalHistory(memberID, rentalRef string) error
	Save() error
}

type Inventory interface {
	GenerateID() string
	Add(item domain.Item) error
	Update(item domain.Item) error
	Remove(itemID string) error
	FindByID(itemID string) (domain.Item, bool)
	All() []domain.Item
	Available() []domain.Item
	Search(query string, filter ItemFilter, onlyAvailable bool) []domain.Item
	// MostPopular returns up to limit items by descending cumulative rental
	// count; ties keep their original order.
	MostPopular(limit int) []domain.Item
	// PopularityByName sums rental counts per item display name.
	PopularityByName() map[string]int
	TotalCount() int
	AvailableCount() int
	RentedCount() int
	// MarkRented flips the item unavailable and bumps its rental counter.
	MarkRented(itemID string) error
	// MarkReturned flips the item available again.
	MarkReturned(itemID string) error
	Save() error
}

type RentalLedger interface {
	StartRental(memberID, itemID string, policy domain.PricePolicy) (*domain.Rental, error)
	// EndRental closes an active rental and returns the frozen final cost.
	EndRental(rentalID string) (float64, error)
	// CurrentCost returns the running meter for an active rental, or the
	// frozen total for a closed one.
	CurrentCost(rentalID string) (float64, error)
	ActiveRentals() []*domain.Rental
	All() []*domain.Rental
	TotalRevenue() float64
	// RevenueByPeriod buckets closed-rental revenue per start date over a
	// named window ("1 Dag", "1 Vecka", "1 Månad", "1 År"), zero-filling
	// dates without revenue. Keys use the "2006-01-02" date form.
	RevenueByPeriod(period string) map[string]float64
	Save() error
	// SaveAll persists members, items and rentals from one consistent
	// snapshot. Used by the autosave loop and the shutdown path.
	SaveAll() []error
}

// MembershipService layers registration conveniences over the raw registry.
type MembershipService interface {
	// RegisterNewMember creates a member from a full name, generating the ID
	// and a placeholder email address.
	RegisterNewMember(fullName, phone string, tier domain.MemberTier) (*domain.Member, error)
	UpdateMemberDetails(memberID, fullName, phone string, tier domain.MemberTier) error
	AllMembers() []*domain.Member
	// SearchMembers tries an exact ID match first, then a name search.
	SearchMembers(query string) []*domain.Member
}
