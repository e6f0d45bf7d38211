package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"snowrent-backend/internal/service"
)

// stubLedger overrides SaveAll; the embedded interface covers the rest.
type stubLedger struct {
	service.RentalLedger
	saveAll func() []error
}

func (s *stubLedger) SaveAll() []error { return s.saveAll() }

func TestAutosaver_RunOnce(t *testing.T) {
	t.Run("SavesAndNotifiesCallback", func(t *testing.T) {
		saves := 0
		a := NewAutosaver(&stubLedger{saveAll: func() []error {
			saves++
			return nil
		}})

		notified := 0
		a.SetOnSaveCallback(func() { notified++ })

		a.RunOnce()
		a.RunOnce()
		assert.Equal(t, 2, saves)
		assert.Equal(t, 2, notified)
	})

	t.Run("SaveFailuresDoNotStopThePass", func(t *testing.T) {
		a := NewAutosaver(&stubLedger{saveAll: func() []error {
			return []error{errors.New("disk full"), errors.New("disk still full")}
		}})

		notified := false
		a.SetOnSaveCallback(func() { notified = true })

		a.RunOnce()
		assert.True(t, notified)
	})

	t.Run("PanicIsRecovered", func(t *testing.T) {
		a := NewAutosaver(&stubLedger{saveAll: func() []error {
			panic("boom")
		}})

		assert.NotPanics(t, a.RunOnce)
	})

	t.Run("NilCallbackIsFine", func(t *testing.T) {
		a := NewAutosaver(&stubLedger{saveAll: func() []error { return nil }})
		a.SetOnSaveCallback(nil)
		assert.NotPanics(t, a.RunOnce)
	})
}
