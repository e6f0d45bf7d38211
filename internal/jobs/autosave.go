package jobs

import (
	"snowrent-backend/internal/logger"
	"snowrent-backend/internal/service"
)

// Autosaver runs the periodic background flush of all registries. A failed
// save of one collection is logged and never aborts the remaining saves; the
// next cycle retries from the then-current in-memory state.
type Autosaver struct {
	ledger service.RentalLedger

	// onSave is notified after every completed pass. Only the wrapping UI
	// layer uses it (a "saved" indicator); nothing in the core depends on it.
	onSave func()
}

func NewAutosaver(ledger service.RentalLedger) *Autosaver {
	return &Autosaver{ledger: ledger}
}

// SetOnSaveCallback registers a function invoked after each completed save
// pass. Pass nil to clear it.
func (a *Autosaver) SetOnSaveCallback(callback func()) {
	a.onSave = callback
}

// RunOnce performs one full save pass: members, items, rentals, in that
// order, from one consistent snapshot.
func (a *Autosaver) RunOnce() {
	a.runWithRecovery("autosave", func() {
		errs := a.ledger.SaveAll()
		for _, err := range errs {
			logger.Error("Autosave: collection save failed", "error", err)
		}
		logger.Debug("Autosave pass completed", "failures", len(errs))

		if a.onSave != nil {
			a.onSave()
		}
	})
}

// runWithRecovery wraps job execution with panic recovery
func (a *Autosaver) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()
	jobFunc()
}
