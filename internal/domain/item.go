package domain

import "fmt"

// ItemKind is the discriminator tag identifying which equipment variant a
// record represents. It is persisted alongside the item fields.
type ItemKind string

const (
	ItemKindScooter ItemKind = "Scooter"
	ItemKindSled    ItemKind = "Sled"
)

// Item is the polymorphic rental equipment type. Concrete variants are
// Scooter and Sled; callers dispatch on Kind rather than type assertions
// where possible.
type Item interface {
	Kind() ItemKind
	Common() *ItemCommon
	// UniqueInfo renders the variant-specific attributes for display.
	UniqueInfo() string
	// Clone returns a deep copy, safe to hand out across the inventory boundary.
	Clone() Item
}

// ItemCommon carries the attributes shared by every equipment variant.
type ItemCommon struct {
	id           string
	name         string
	available    bool
	pricePerHour float64
	rentalCount  int
}

func newItemCommon(id, name string, pricePerHour float64) (ItemCommon, error) {
	if id == "" {
		return ItemCommon{}, fmt.Errorf("item ID must not be empty")
	}
	c := ItemCommon{id: id, name: name, available: true}
	if err := c.SetPricePerHour(pricePerHour); err != nil {
		return ItemCommon{}, err
	}
	return c, nil
}

func (c *ItemCommon) ID() string            { return c.id }
func (c *ItemCommon) Name() string          { return c.name }
func (c *ItemCommon) Available() bool       { return c.available }
func (c *ItemCommon) PricePerHour() float64 { return c.pricePerHour }
func (c *ItemCommon) RentalCount() int      { return c.rentalCount }

func (c *ItemCommon) SetName(name string) { c.name = name }

func (c *ItemCommon) SetAvailable(available bool) { c.available = available }

func (c *ItemCommon) SetPricePerHour(price float64) error {
	if price < 0 {
		return fmt.Errorf("hourly price must not be negative: %.2f", price)
	}
	c.pricePerHour = price
	return nil
}

// IncrementRentalCount bumps the cumulative rental counter. The counter is
// monotonic; there is no way to decrement it.
func (c *ItemCommon) IncrementRentalCount() { c.rentalCount++ }

// RestoreRentalCount sets the counter from a stored record. Only the
// persistence layer uses this.
func (c *ItemCommon) RestoreRentalCount(count int) { c.rentalCount = count }

func (c *ItemCommon) String() string {
	return fmt.Sprintf("ID: %s, Namn: %s, Pris: %.2f kr/h", c.id, c.name, c.pricePerHour)
}

// Scooter is a rentable snow scooter.
type Scooter struct {
	ItemCommon
	engineDisplacementCC int
	licensePlate         string
	electricStart        bool
}

func NewScooter(id, name string, pricePerHour float64, licensePlate string, engineDisplacementCC int, electricStart bool) (*Scooter, error) {
	common, err := newItemCommon(id, name, pricePerHour)
	if err != nil {
		return nil, err
	}
	s := &Scooter{ItemCommon: common, licensePlate: licensePlate, electricStart: electricStart}
	if err := s.SetEngineDisplacement(engineDisplacementCC); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scooter) Kind() ItemKind      { return ItemKindScooter }
func (s *Scooter) Common() *ItemCommon { return &s.ItemCommon }

func (s *Scooter) EngineDisplacement() int { return s.engineDisplacementCC }
func (s *Scooter) LicensePlate() string    { return s.licensePlate }
func (s *Scooter) ElectricStart() bool     { return s.electricStart }

func (s *Scooter) SetEngineDisplacement(cc int) error {
	if cc <= 0 {
		return fmt.Errorf("engine displacement must be greater than 0 cc: %d", cc)
	}
	s.engineDisplacementCC = cc
	return nil
}

func (s *Scooter) SetLicensePlate(plate string) { s.licensePlate = plate }

func (s *Scooter) SetElectricStart(electric bool) { s.electricStart = electric }

func (s *Scooter) UniqueInfo() string {
	start := "Kickstart"
	if s.electricStart {
		start = "Elstart"
	}
	return fmt.Sprintf("Skylt: %s, Motor: %d cc, Start: %s", s.licensePlate, s.engineDisplacementCC, start)
}

func (s *Scooter) Clone() Item {
	c := *s
	return &c
}

// Sled is a rentable sled (pulka, kicksled and the like).
type Sled struct {
	ItemCommon
	category  string
	maxLoadKg int
}

func NewSled(id, name string, pricePerHour float64, category string, maxLoadKg int) (*Sled, error) {
	common, err := newItemCommon(id, name, pricePerHour)
	if err != nil {
		return nil, err
	}
	s := &Sled{ItemCommon: common, category: category}
	if err := s.SetMaxLoadKg(maxLoadKg); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sled) Kind() ItemKind      { return ItemKindSled }
func (s *Sled) Common() *ItemCommon { return &s.ItemCommon }

func (s *Sled) Category() string { return s.category }
func (s *Sled) MaxLoadKg() int   { return s.maxLoadKg }

func (s *Sled) SetCategory(category string) { s.category = category }

func (s *Sled) SetMaxLoadKg(kg int) error {
	if kg <= 0 {
		return fmt.Errorf("max load must be greater than zero: %d", kg)
	}
	s.maxLoadKg = kg
	return nil
}

func (s *Sled) UniqueInfo() string {
	return fmt.Sprintf("Typ: %s, Maxvikt: %d kg", s.category, s.maxLoadKg)
}

func (s *Sled) Clone() Item {
	c := *s
	return &c
}
