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

// memberIDBase seeds the ID counter for an empty registry; the first
// generated member ID is then "1001".
const memberIDBase = 1000

type memberRegistry struct {
	mu      sync.RWMutex
	members []*domain.Member
	nextID  int64
	store   repository.Store
}

// NewMemberRegistry loads the member collection from the store and rebuilds
// the ID counter from the highest numeric ID found, so restarts never hand
// out an ID that is already taken.
func NewMemberRegistry(store repository.Store) MemberRegistry {
	r := &memberRegistry{
		members: store.LoadMembers(),
		store:   store,
	}
	r.nextID = maxNumericID(memberIDBase, len(r.members), func(i int) string { return r.members[i].ID() }) + 1
	return r
}

// maxNumericID scans IDs for the largest all-digit value, falling back to
// base when none is numeric.
func maxNumericID(base int64, n int, idAt func(int) string) int64 {
	max := base
	for i := 0; i < n; i++ {
		v, err := strconv.ParseInt(idAt(i), 10, 64)
		if err != nil {
			continue
		}
		if v > max {
			max = v
		}
	}
	return max
}

func (r *memberRegistry) GenerateID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	return strconv.FormatInt(id, 10)
}

func (r *memberRegistry) Add(member *domain.Member) error {
	r.mu.Lock()
	if _, ok := r.findLocked(member.ID()); ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: member %s", ErrDuplicateID, member.ID())
	}
	r.members = append(r.members, member.Clone())
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(snap)
	return nil
}

func (r *memberRegistry) Update(member *domain.Member) error {
	r.mu.Lock()
	existing, ok := r.findLocked(member.ID())
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrMemberNotFound, member.ID())
	}
	// Fields on the incoming member already passed construction-time
	// validation; copying them cannot leave the stored member invalid.
	if err := existing.SetFirstName(member.FirstName()); err != nil {
		r.mu.Unlock()
		return err
	}
	if err := existing.SetLastName(member.LastName()); err != nil {
		r.mu.Unlock()
		return err
	}
	if err := existing.SetPhone(member.Phone()); err != nil {
		r.mu.Unlock()
		return err
	}
	existing.SetEmail(member.Email())
	existing.SetTier(member.Tier())
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(snap)
	return nil
}

func (r *memberRegistry) Remove(memberID string) error {
	r.mu.Lock()
	idx := -1
	for i, m := range r.members {
		if strings.EqualFold(m.ID(), memberID) {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
	}
	r.members = append(r.members[:idx], r.members[idx+1:]...)
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(snap)
	return nil
}

func (r *memberRegistry) FindByID(memberID string) (*domain.Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.findLocked(memberID)
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

func (r *memberRegistry) SearchByName(query string) []*domain.Member {
	q := strings.ToLower(query)
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Member
	for _, m := range r.members {
		if strings.Contains(strings.ToLower(m.FirstName()), q) ||
			strings.Contains(strings.ToLower(m.LastName()), q) {
			out = append(out, m.Clone())
		}
	}
	return out
}

func (r *memberRegistry) All() []*domain.Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *memberRegistry) AppendRentalHistory(memberID, rentalRef string) error {
	r.mu.Lock()
	m, ok := r.findLocked(memberID)
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
	}
	m.AddRentalToHistory(rentalRef)
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(snap)
	return nil
}

func (r *memberRegistry) Save() error {
	r.mu.RLock()
	snap := r.snapshotLocked()
	r.mu.RUnlock()

	logger.FileWrite("members.json", "count", len(snap))
	err := r.store.SaveMembers(snap)
	logger.FileWriteResult("members.json", err)
	return err
}

func (r *memberRegistry) findLocked(memberID string) (*domain.Member, bool) {
	for _, m := range r.members {
		if strings.EqualFold(m.ID(), memberID) {
			return m, true
		}
	}
	return nil, false
}

func (r *memberRegistry) snapshotLocked() []*domain.Member {
	snap := make([]*domain.Member, 0, len(r.members))
	for _, m := range r.members {
		snap = append(snap, m.Clone())
	}
	return snap
}

// persist performs the save-on-write after a successful mutation. A failed
// write leaves in-memory state intact; the next autosave cycle will try
// again, so the mutation itself still counts as a success.
func (r *memberRegistry) persist(snap []*domain.Member) {
	logger.FileWrite("members.json", "count", len(snap))
	err := r.store.SaveMembers(snap)
	logger.FileWriteResult("members.json", err)
}

// membershipService implements registration conveniences on top of a
// MemberRegistry.
type membershipService struct {
	registry MemberRegistry
}

func NewMembershipService(registry MemberRegistry) MembershipService {
	return &membershipService{registry: registry}
}

func (s *membershipService) RegisterNewMember(fullName, phone string, tier domain.MemberTier) (*domain.Member, error) {
	firstName, lastName := splitFullName(fullName)
	if lastName == "" {
		lastName = "Okänd"
	}
	email := strings.ToLower(firstName) + "." + strings.ReplaceAll(strings.ToLower(lastName), " ", "") + "@snowrent.se"

	member, err := domain.NewMember(s.registry.GenerateID(), firstName, lastName, phone, email, tier)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Add(member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *membershipService) UpdateMemberDetails(memberID, fullName, phone string, tier domain.MemberTier) error {
	existing, ok := s.registry.FindByID(memberID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
	}

	firstName, lastName := splitFullName(fullName)
	if lastName == "" {
		lastName = existing.LastName()
	}

	if err := existing.SetFirstName(firstName); err != nil {
		return err
	}
	if err := existing.SetLastName(lastName); err != nil {
		return err
	}
	if err := existing.SetPhone(phone); err != nil {
		return err
	}
	existing.SetTier(tier)
	return s.registry.Update(existing)
}

func (s *membershipService) AllMembers() []*domain.Member {
	members := s.registry.All()
	sort.SliceStable(members, func(i, j int) bool { return members[i].ID() < members[j].ID() })
	return members
}

func (s *membershipService) SearchMembers(query string) []*domain.Member {
	if m, ok := s.registry.FindByID(query); ok {
		return []*domain.Member{m}
	}
	return s.registry.SearchByName(query)
}

func splitFullName(fullName string) (firstName, lastName string) {
	trimmed := strings.TrimSpace(fullName)
	if idx := strings.IndexByte(trimmed, ' '); idx >= 0 {
		return trimmed[:idx], strings.TrimSpace(trimmed[idx+1:])
	}
	return trimmed, ""
}
