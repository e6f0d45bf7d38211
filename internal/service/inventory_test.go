package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snowrent-backend/internal/domain"
)

func mustScooter(t *testing.T, id, name string, price float64) *domain.Scooter {
	t.Helper()
	s, err := domain.NewScooter(id, name, price, "ABC123", 600, true)
	require.NoError(t, err)
	return s
}

func mustSled(t *testing.T, id, name string, price float64) *domain.Sled {
	t.Helper()
	s, err := domain.NewSled(id, name, price, "Pulka", 120)
	require.NoError(t, err)
	return s
}

func TestInventory_GenerateID(t *testing.T) {
	t.Run("EmptyInventoryStartsAt1000", func(t *testing.T) {
		inv := NewInventory(newTestStore(t))
		assert.Equal(t, "1000", inv.GenerateID())
		assert.Equal(t, "1001", inv.GenerateID())
	})

	t.Run("ResumesPastHighestLoadedID", func(t *testing.T) {
		store := newTestStore(t)
		inv := NewInventory(store)
		require.NoError(t, inv.Add(mustScooter(t, "1017", "Lynx", 200)))

		reloaded := NewInventory(store)
		assert.Equal(t, "1018", reloaded.GenerateID())
	})
}

func TestInventory_Add(t *testing.T) {
	store := newTestStore(t)
	inv := NewInventory(store)

	require.NoError(t, inv.Add(mustScooter(t, "1000", "Lynx", 200)))

	t.Run("DuplicateIDRejected", func(t *testing.T) {
		assert.ErrorIs(t, inv.Add(mustSled(t, "1000", "Stiga", 50)), ErrDuplicateID)
	})

	t.Run("PersistedImmediately", func(t *testing.T) {
		reloaded := NewInventory(store)
		item, ok := reloaded.FindByID("1000")
		require.True(t, ok)
		assert.Equal(t, domain.ItemKindScooter, item.Kind())
	})
}

func TestInventory_FindByID(t *testing.T) {
	inv := NewInventory(newTestStore(t))
	require.NoError(t, inv.Add(mustScooter(t, "abc", "Lynx", 200)))

	t.Run("ExactMatch", func(t *testing.T) {
		_, ok := inv.FindByID("abc")
		assert.True(t, ok)
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		_, ok := inv.FindByID("ABC")
		assert.False(t, ok)
	})

	t.Run("ReturnsACopy", func(t *testing.T) {
		item, ok := inv.FindByID("abc")
		require.True(t, ok)
		item.Common().SetAvailable(false)

		again, ok := inv.FindByID("abc")
		require.True(t, ok)
		assert.True(t, again.Common().Available())
	})
}

func TestInventory_Update(t *testing.T) {
	inv := NewInventory(newTestStore(t))
	original := mustScooter(t, "1000", "Lynx", 200)
	original.Common().RestoreRentalCount(4)
	require.NoError(t, inv.Add(original))

	t.Run("CopiesMutableFields", func(t *testing.T) {
		edited, err := domain.NewScooter("1000", "Lynx Adventure", 250, "XYZ789", 800, false)
		require.NoError(t, err)
		require.NoError(t, inv.Update(edited))

		got, ok := inv.FindByID("1000")
		require.True(t, ok)
		s := got.(*domain.Scooter)
		assert.Equal(t, "Lynx Adventure", s.Common().Name())
		assert.Equal(t, 250.0, s.Common().PricePerHour())
		assert.Equal(t, "XYZ789", s.LicensePlate())
		assert.Equal(t, 800, s.EngineDisplacement())
		assert.False(t, s.ElectricStart())
		// The cumulative counter survives edits.
		assert.Equal(t, 4, s.Common().RentalCount())
	})

	t.Run("MismatchedVariantKeepsVariantFields", func(t *testing.T) {
		sled := mustSled(t, "1000", "Renamed", 60)
		require.NoError(t, inv.Update(sled))

		got, ok := inv.FindByID("1000")
		require.True(t, ok)
		s, isScooter := got.(*domain.Scooter)
		require.True(t, isScooter)
		assert.Equal(t, "Renamed", s.Common().Name())
		assert.Equal(t, "XYZ789", s.LicensePlate())
	})

	t.Run("UnknownItem", func(t *testing.T) {
		assert.ErrorIs(t, inv.Update(mustSled(t, "9999", "Ghost", 10)), ErrItemNotFound)
	})
}

func TestInventory_Remove(t *testing.T) {
	store := newTestStore(t)
	inv := NewInventory(store)
	require.NoError(t, inv.Add(mustScooter(t, "1000", "Lynx", 200)))

	require.NoError(t, inv.Remove("1000"))
	_, ok := inv.FindByID("1000")
	assert.False(t, ok)
	assert.Empty(t, NewInventory(store).All())

	assert.ErrorIs(t, inv.Remove("1000"), ErrItemNotFound)
}

func TestInventory_Search(t *testing.T) {
	inv := NewInventory(newTestStore(t))
	lynx := mustScooter(t, "1000", "Lynx Adventure", 200)
	require.NoError(t, inv.Add(lynx))
	require.NoError(t, inv.Add(mustSled(t, "1001", "Stiga Racer", 50)))
	require.NoError(t, inv.Add(mustSled(t, "1002", "Lynx Pulka", 40)))

	t.Run("EmptyQueryMatchesAll", func(t *testing.T) {
		assert.Len(t, inv.Search("", ItemFilterAll, false), 3)
	})

	t.Run("FilterByVariant", func(t *testing.T) {
		assert.Len(t, inv.Search("", ItemFilterScooter, false), 1)
		assert.Len(t, inv.Search("", ItemFilterSled, false), 2)
	})

	t.Run("NameSubstringCaseInsensitive", func(t *testing.T) {
		assert.Len(t, inv.Search("lynx", ItemFilterAll, false), 2)
	})

	t.Run("ScooterMatchesLicensePlate", func(t *testing.T) {
		hits := inv.Search("abc", ItemFilterAll, false)
		require.Len(t, hits, 1)
		assert.Equal(t, "1000", hits[0].Common().ID())
	})

	t.Run("ScooterMatchesDisplacementText", func(t *testing.T) {
		hits := inv.Search("600", ItemFilterAll, false)
		require.Len(t, hits, 1)
		assert.Equal(t, "1000", hits[0].Common().ID())
	})

	t.Run("OnlyAvailable", func(t *testing.T) {
		require.NoError(t, inv.MarkRented("1001"))
		hits := inv.Search("", ItemFilterSled, true)
		require.Len(t, hits, 1)
		assert.Equal(t, "1002", hits[0].Common().ID())
	})
}

func TestInventory_Popularity(t *testing.T) {
	inv := NewInventory(newTestStore(t))

	a := mustScooter(t, "1000", "Lynx", 200)
	a.Common().RestoreRentalCount(3)
	b := mustSled(t, "1001", "Stiga", 50)
	b.Common().RestoreRentalCount(7)
	c := mustSled(t, "1002", "Stiga", 40)
	c.Common().RestoreRentalCount(1)
	require.NoError(t, inv.Add(a))
	require.NoError(t, inv.Add(b))
	require.NoError(t, inv.Add(c))

	t.Run("MostPopularDescending", func(t *testing.T) {
		top := inv.MostPopular(2)
		require.Len(t, top, 2)
		assert.Equal(t, "1001", top[0].Common().ID())
		assert.Equal(t, "1000", top[1].Common().ID())
	})

	t.Run("LimitLargerThanInventory", func(t *testing.T) {
		assert.Len(t, inv.MostPopular(10), 3)
	})

	t.Run("PopularityByNameSumsSharedNames", func(t *testing.T) {
		byName := inv.PopularityByName()
		assert.Equal(t, 3, byName["Lynx"])
		assert.Equal(t, 8, byName["Stiga"])
	})
}

func TestInventory_Counts(t *testing.T) {
	inv := NewInventory(newTestStore(t))
	require.NoError(t, inv.Add(mustScooter(t, "1000", "Lynx", 200)))
	require.NoError(t, inv.Add(mustSled(t, "1001", "Stiga", 50)))

	require.NoError(t, inv.MarkRented("1000"))

	assert.Equal(t, 2, inv.TotalCount())
	assert.Equal(t, 1, inv.AvailableCount())
	assert.Equal(t, 1, inv.RentedCount())
	assert.Len(t, inv.Available(), 1)
}

func TestInventory_MarkRentedAndReturned(t *testing.T) {
	inv := NewInventory(newTestStore(t))
	require.NoError(t, inv.Add(mustScooter(t, "1000", "Lynx", 200)))

	require.NoError(t, inv.MarkRented("1000"))
	item, ok := inv.FindByID("1000")
	require.True(t, ok)
	assert.False(t, item.Common().Available())
	assert.Equal(t, 1, item.Common().RentalCount())

	require.NoError(t, inv.MarkReturned("1000"))
	item, ok = inv.FindByID("1000")
	require.True(t, ok)
	assert.True(t, item.Common().Available())
	// Returning does not touch the counter.
	assert.Equal(t, 1, item.Common().RentalCount())

	assert.ErrorIs(t, inv.MarkRented("9999"), ErrItemNotFound)
	assert.ErrorIs(t, inv.MarkReturned("9999"), ErrItemNotFound)
}
