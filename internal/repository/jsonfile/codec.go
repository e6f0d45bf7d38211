// Package jsonfile persists the entity collections as pretty-printed JSON
// files, one file per collection. Polymorphic records (equipment variants,
// price policies) carry an explicit discriminator tag; decoding dispatches on
// the tag, never on guesswork.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"

	"snowrent-backend/internal/domain"
)

var (
	// ErrMissingDiscriminator reports an item record without an itemType tag.
	// Legacy files without tags are rejected, not guessed.
	ErrMissingDiscriminator = errors.New("missing itemType discriminator")
	// ErrUnknownVariant reports an itemType tag matching no known variant.
	ErrUnknownVariant = errors.New("unknown item variant")
)

const (
	itemTagField = "itemType"
)

type memberRecord struct {
	MemberID      string   `json:"memberId"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	Status        string   `json:"status"`
	RentalHistory []string `json:"rentalHistory"`
}

type itemRecord struct {
	ItemType           string  `json:"itemType"`
	ItemID             string  `json:"itemId"`
	Name               string  `json:"name"`
	IsAvailable        bool    `json:"isAvailable"`
	CurrentRentalPrice float64 `json:"currentRentalPrice"`
	RentalCount        int     `json:"rentalCount"`

	// Scooter fields
	EngineDisplacement int    `json:"engineDisplacement,omitempty"`
	LicensePlate       string `json:"licensePlate,omitempty"`
	HasElectricStart   bool   `json:"hasElectricStart,omitempty"`

	// Sled fields
	Type        string `json:"type,omitempty"`
	MaxWeightKg int    `json:"maxWeightKg,omitempty"`
}

type policyRecord struct {
	PolicyType domain.PolicyTag `json:"policyType"`
}

type rentalRecord struct {
	ID          string        `json:"id"`
	MemberID    string        `json:"memberId"`
	ItemID      string        `json:"itemId"`
	PricePolicy *policyRecord `json:"pricePolicy"`
	StartTime   string        `json:"startTime"`
	EndTime     string        `json:"endTime,omitempty"`
	IsActive    bool          `json:"isActive"`
	TotalCost   float64       `json:"totalCost"`
}

// MarshalMembers encodes the member collection.
func MarshalMembers(members []*domain.Member) ([]byte, error) {
	records := make([]memberRecord, 0, len(members))
	for _, m := range members {
		records = append(records, memberRecord{
			MemberID:      m.ID(),
			FirstName:     m.FirstName(),
			LastName:      m.LastName(),
			Phone:         m.Phone(),
			Email:         m.Email(),
			Status:        string(m.Tier()),
			RentalHistory: m.RentalHistory(),
		})
	}
	return json.MarshalIndent(records, "", "  ")
}

// UnmarshalMembers decodes a member collection. Records flow through the
// validating constructor, so a file holding an invalid member fails the whole
// decode rather than producing an invalid in-memory object.
func UnmarshalMembers(data []byte) ([]*domain.Member, error) {
	var records []memberRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}

	members := make([]*domain.Member, 0, len(records))
	for _, rec := range records {
		m, err := domain.NewMember(rec.MemberID, rec.FirstName, rec.LastName, rec.Phone, rec.Email, domain.MemberTier(rec.Status))
		if err != nil {
			return nil, fmt.Errorf("decode member %q: %w", rec.MemberID, err)
		}
		m.RestoreRentalHistory(rec.RentalHistory)
		members = append(members, m)
	}
	return members, nil
}

// MarshalItems encodes the equipment collection, tagging every record with
// its variant discriminator before the variant fields.
func MarshalItems(items []domain.Item) ([]byte, error) {
	records := make([]itemRecord, 0, len(items))
	for _, item := range items {
		c := item.Common()
		rec := itemRecord{
			ItemType:           string(item.Kind()),
			ItemID:             c.ID(),
			Name:               c.Name(),
			IsAvailable:        c.Available(),
			CurrentRentalPrice: c.PricePerHour(),
			RentalCount:        c.RentalCount(),
		}
		switch v := item.(type) {
		case *domain.Scooter:
			rec.EngineDisplacement = v.EngineDisplacement()
			rec.LicensePlate = v.LicensePlate()
			rec.HasElectricStart = v.ElectricStart()
		case *domain.Sled:
			rec.Type = v.Category()
			rec.MaxWeightKg = v.MaxLoadKg()
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnknownVariant, item)
		}
		records = append(records, rec)
	}
	return json.MarshalIndent(records, "", "  ")
}

// UnmarshalItems decodes the equipment collection, dispatching on the
// itemType tag to the matching variant constructor.
func UnmarshalItems(data []byte) ([]domain.Item, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	items := make([]domain.Item, 0, len(raws))
	for _, raw := range raws {
		item, err := unmarshalItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func unmarshalItem(raw json.RawMessage) (domain.Item, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode item record: %w", err)
	}
	tagRaw, ok := envelope[itemTagField]
	if !ok {
		return nil, ErrMissingDiscriminator
	}
	var tag string
	if err := json.Unmarshal(tagRaw, &tag); err != nil {
		return nil, fmt.Errorf("decode item discriminator: %w", err)
	}

	var rec itemRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode item record: %w", err)
	}

	var item domain.Item
	switch domain.ItemKind(tag) {
	case domain.ItemKindScooter:
		s, err := domain.NewScooter(rec.ItemID, rec.Name, rec.CurrentRentalPrice, rec.LicensePlate, rec.EngineDisplacement, rec.HasElectricStart)
		if err != nil {
			return nil, fmt.Errorf("decode scooter %q: %w", rec.ItemID, err)
		}
		item = s
	case domain.ItemKindSled:
		s, err := domain.NewSled(rec.ItemID, rec.Name, rec.CurrentRentalPrice, rec.Type, rec.MaxWeightKg)
		if err != nil {
			return nil, fmt.Errorf("decode sled %q: %w", rec.ItemID, err)
		}
		item = s
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, tag)
	}

	item.Common().SetAvailable(rec.IsAvailable)
	item.Common().RestoreRentalCount(rec.RentalCount)
	return item, nil
}

// MarshalRentals encodes the rental collection. Policies serialize as a bare
// discriminator; they carry no other state.
func MarshalRentals(rentals []*domain.Rental) ([]byte, error) {
	records := make([]rentalRecord, 0, len(rentals))
	for _, r := range rentals {
		rec := rentalRecord{
			ID:        r.ID(),
			MemberID:  r.MemberID(),
			ItemID:    r.ItemID(),
			StartTime: r.StartTime(),
			EndTime:   r.EndTime(),
			IsActive:  r.Active(),
			TotalCost: r.TotalCost(),
		}
		if policy := r.Policy(); policy != nil {
			rec.PricePolicy = &policyRecord{PolicyType: policy.Tag()}
		}
		records = append(records, rec)
	}
	return json.MarshalIndent(records, "", "  ")
}

// UnmarshalRentals decodes the rental collection. Timestamps must match the
// canonical or the legacy layout; a record failing both aborts the decode. A
// missing or unrecognized policy tag falls back to the standard policy
// instead of failing: the worst case is a wrong discount on redisplay, not
// data loss.
func UnmarshalRentals(data []byte) ([]*domain.Rental, error) {
	var records []rentalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode rentals: %w", err)
	}

	rentals := make([]*domain.Rental, 0, len(records))
	for _, rec := range records {
		if _, err := domain.ParseTime(rec.StartTime); err != nil {
			return nil, fmt.Errorf("decode rental %q start time: %w", rec.ID, err)
		}
		if rec.EndTime != "" {
			if _, err := domain.ParseTime(rec.EndTime); err != nil {
				return nil, fmt.Errorf("decode rental %q end time: %w", rec.ID, err)
			}
		}

		policy := domain.PolicyFromTag("")
		if rec.PricePolicy != nil {
			policy = domain.PolicyFromTag(rec.PricePolicy.PolicyType)
		}

		rentals = append(rentals, domain.RestoreRental(
			rec.ID, rec.MemberID, rec.ItemID, policy,
			rec.StartTime, rec.EndTime, rec.IsActive, rec.TotalCost,
		))
	}
	return rentals, nil
}
