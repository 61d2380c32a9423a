// Package contract provides interfaces, configuration and shared utilities
// for the scoring core's internal architecture.
package contract

import "github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"

// StoreManager defines the interface for managing the calibration store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetStore() CalibrationStore
}

// CalibrationStore defines durable storage for versioned calibration
// artifacts and scored profiles. All artifact reads return immutable values;
// switching versions means loading a different object, never editing one.
type CalibrationStore interface {
	// GetCalibration loads the item-parameter set for a version.
	GetCalibration(version string) (*schema.CalibrationSet, error)

	// PutCalibration stores an item-parameter set under its version.
	PutCalibration(set *schema.CalibrationSet) error

	// GetNorms loads the normative reference table for a version.
	GetNorms(version string) (*schema.NormTable, error)

	// PutNorms stores a normative reference table under its version.
	PutNorms(norms *schema.NormTable) error

	// GetDesign loads a generated block design for a version.
	GetDesign(version string) (*schema.BlockDesign, error)

	// PutDesign stores a generated block design under its version.
	PutDesign(design *schema.BlockDesign) error

	// RecordProfile appends a scored profile for later export.
	RecordProfile(profile *schema.TieredProfile) error

	// ListProfiles returns up to limit stored profiles, newest first.
	ListProfiles(limit int) ([]schema.TieredProfile, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
