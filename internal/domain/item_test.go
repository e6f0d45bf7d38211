package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScooter(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s, err := NewScooter("1000", "Lynx Adventure", 200, "ABC123", 600, true)
		require.NoError(t, err)
		assert.Equal(t, ItemKindScooter, s.Kind())
		assert.Equal(t, "1000", s.Common().ID())
		assert.True(t, s.Common().Available())
		assert.Equal(t, 200.0, s.Common().PricePerHour())
		assert.Equal(t, 0, s.Common().RentalCount())
		assert.Equal(t, 600, s.EngineDisplacement())
	})

	t.Run("EmptyID", func(t *testing.T) {
		_, err := NewScooter("", "Lynx", 200, "ABC123", 600, false)
		assert.Error(t, err)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		_, err := NewScooter("1000", "Lynx", -1, "ABC123", 600, false)
		assert.Error(t, err)
	})

	t.Run("ZeroDisplacement", func(t *testing.T) {
		_, err := NewScooter("1000", "Lynx", 200, "ABC123", 0, false)
		assert.Error(t, err)
	})

	t.Run("ZeroPriceAllowed", func(t *testing.T) {
		_, err := NewScooter("1000", "Lynx", 0, "ABC123", 600, false)
		assert.NoError(t, err)
	})
}

func TestNewSled(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s, err := NewSled("1001", "Stiga Racer", 50, "Pulka", 120)
		require.NoError(t, err)
		assert.Equal(t, ItemKindSled, s.Kind())
		assert.Equal(t, "Pulka", s.Category())
		assert.Equal(t, 120, s.MaxLoadKg())
	})

	t.Run("ZeroMaxLoad", func(t *testing.T) {
		_, err := NewSled("1001", "Stiga", 50, "Pulka", 0)
		assert.Error(t, err)
	})

	t.Run("NegativeMaxLoad", func(t *testing.T) {
		_, err := NewSled("1001", "Stiga", 50, "Pulka", -10)
		assert.Error(t, err)
	})
}

func TestItem_UniqueInfo(t *testing.T) {
	t.Run("ScooterElectricStart", func(t *testing.T) {
		s, err := NewScooter("1000", "Lynx", 200, "ABC123", 600, true)
		require.NoError(t, err)
		assert.Equal(t, "Skylt: ABC123, Motor: 600 cc, Start: Elstart", s.UniqueInfo())
	})

	t.Run("ScooterKickstart", func(t *testing.T) {
		s, err := NewScooter("1000", "Lynx", 200, "ABC123", 600, false)
		require.NoError(t, err)
		assert.Equal(t, "Skylt: ABC123, Motor: 600 cc, Start: Kickstart", s.UniqueInfo())
	})

	t.Run("Sled", func(t *testing.T) {
		s, err := NewSled("1001", "Stiga", 50, "Pulka", 120)
		require.NoError(t, err)
		assert.Equal(t, "Typ: Pulka, Maxvikt: 120 kg", s.UniqueInfo())
	})
}

func TestItemCommon_RentalCount(t *testing.T) {
	s, err := NewSled("1001", "Stiga", 50, "Pulka", 120)
	require.NoError(t, err)

	s.Common().IncrementRentalCount()
	s.Common().IncrementRentalCount()
	assert.Equal(t, 2, s.Common().RentalCount())

	s.Common().RestoreRentalCount(9)
	assert.Equal(t, 9, s.Common().RentalCount())
}

func TestItem_Clone(t *testing.T) {
	s, err := NewScooter("1000", "Lynx", 200, "ABC123", 600, true)
	require.NoError(t, err)

	c := s.Clone()
	c.Common().SetAvailable(false)
	c.Common().SetName("Other")

	assert.True(t, s.Common().Available())
	assert.Equal(t, "Lynx", s.Common().Name())
	assert.False(t, c.Common().Available())
}
