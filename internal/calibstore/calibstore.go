// Package calibstore persists versioned calibration artifacts and scored
// profiles across SQLite, MySQL and PostgreSQL backends.
package calibstore

import (
	"sync"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
)

// StoreManager manages the calibration store instance.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.CalibrationStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetStore returns the calibration store.
func (mgr *StoreManager) GetStore() contract.CalibrationStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}
