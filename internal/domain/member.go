package domain

import (
	"fmt"
	"regexp"
	"strings"
)

type MemberTier string

const (
	MemberTierStandard MemberTier = "STANDARD"
	MemberTierPremium  MemberTier = "PREMIUM"
	MemberTierStudent  MemberTier = "STUDENT"
)

// Permissive phone check: optional leading +, then digits/spaces/hyphens,
// 7-15 characters total after the sign.
var phonePattern = regexp.MustCompile(`^[+]?[0-9 -]{7,15}$`)

// Member is a registered member of the rental club. Fields are unexported so
// every mutation goes through a validating setter; a Member never holds an
// invalid ID, name or phone number.
type Member struct {
	id            string
	firstName     string
	lastName      string
	phone         string
	email         string
	tier          MemberTier
	rentalHistory []string
}

func NewMember(id, firstName, lastName, phone, email string, tier MemberTier) (*Member, error) {
	m := &Member{email: email, tier: tier}
	if err := m.SetID(id); err != nil {
		return nil, err
	}
	if err := m.SetFirstName(firstName); err != nil {
		return nil, err
	}
	if err := m.SetLastName(lastName); err != nil {
		return nil, err
	}
	if err := m.SetPhone(phone); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Member) ID() string        { return m.id }
func (m *Member) FirstName() string { return m.firstName }
func (m *Member) LastName() string  { return m.lastName }
func (m *Member) Phone() string     { return m.phone }
func (m *Member) Email() string     { return m.email }
func (m *Member) Tier() MemberTier  { return m.tier }

// Name returns the display name "First Last".
func (m *Member) Name() string {
	return m.firstName + " " + m.lastName
}

// RentalHistory returns a copy of the append-only rental reference list.
func (m *Member) RentalHistory() []string {
	out := make([]string, len(m.rentalHistory))
	copy(out, m.rentalHistory)
	return out
}

// SetID changes the member ID. The registry is responsible for keeping IDs
// unique; this only rejects empty IDs.
func (m *Member) SetID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("member ID must not be empty")
	}
	m.id = strings.TrimSpace(id)
	return nil
}

func (m *Member) SetFirstName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("first name is required")
	}
	m.firstName = strings.TrimSpace(name)
	return nil
}

func (m *Member) SetLastName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("last name is required")
	}
	m.lastName = strings.TrimSpace(name)
	return nil
}

func (m *Member) SetPhone(phone string) error {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return fmt.Errorf("phone number is required")
	}
	if !phonePattern.MatchString(trimmed) {
		return fmt.Errorf("invalid phone number: %q", phone)
	}
	m.phone = trimmed
	return nil
}

func (m *Member) SetEmail(email string) {
	m.email = email
}

func (m *Member) SetTier(tier MemberTier) {
	m.tier = tier
}

// AddRentalToHistory appends a rental reference. History is append-only.
func (m *Member) AddRentalToHistory(rentalRef string) {
	m.rentalHistory = append(m.rentalHistory, rentalRef)
}

// RestoreRentalHistory replaces the history wholesale. Only the persistence
// layer uses this when rebuilding a member from a stored record.
func (m *Member) RestoreRentalHistory(history []string) {
	m.rentalHistory = append([]string(nil), history...)
}

// Clone returns a deep copy, safe to hand out across the registry boundary.
func (m *Member) Clone() *Member {
	c := *m
	c.rentalHistory = append([]string(nil), m.rentalHistory...)
	return &c
}

func (m *Member) String() string {
	return fmt.Sprintf("%s %s (ID: %s) [%s]", m.firstName, m.lastName, m.id, m.tier)
}
