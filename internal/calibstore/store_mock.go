package calibstore

import (
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetStore implements the StoreManager interface.
func (m *MockStoreManager) GetStore() contract.CalibrationStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CalibrationStore)
	return store
}

// MockCalibrationStore is a mock implementation of CalibrationStore for testing.
type MockCalibrationStore struct {
	mock.Mock
}

var _ contract.CalibrationStore = &MockCalibrationStore{} // Compile-time check

// GetCalibration implements the CalibrationStore interface.
func (m *MockCalibrationStore) GetCalibration(version string) (*schema.CalibrationSet, error) {
	args := m.Called(version)
	set, _ := args.Get(0).(*schema.CalibrationSet)
	return set, args.Error(1)
}

// PutCalibration implements the CalibrationStore interface.
func (m *MockCalibrationStore) PutCalibration(set *schema.CalibrationSet) error {
	args := m.Called(set)
	return args.Error(0)
}

// GetNorms implements the CalibrationStore interface.
func (m *MockCalibrationStore) GetNorms(version string) (*schema.NormTable, error) {
	args := m.Called(version)
	norms, _ := args.Get(0).(*schema.NormTable)
	return norms, args.Error(1)
}

// PutNorms implements the CalibrationStore interface.
func (m *MockCalibrationStore) PutNorms(norms *schema.NormTable) error {
	args := m.Called(norms)
	return args.Error(0)
}

// GetDesign implements the CalibrationStore interface.
func (m *MockCalibrationStore) GetDesign(version string) (*schema.BlockDesign, error) {
	args := m.Called(version)
	design, _ := args.Get(0).(*schema.BlockDesign)
	return design, args.Error(1)
}

// PutDesign implements the CalibrationStore interface.
func (m *MockCalibrationStore) PutDesign(design *schema.BlockDesign) error {
	args := m.Called(design)
	return args.Error(0)
}

// RecordProfile implements the CalibrationStore interface.
func (m *MockCalibrationStore) RecordProfile(profile *schema.TieredProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

// ListProfiles implements the CalibrationStore interface.
func (m *MockCalibrationStore) ListProfiles(limit int) ([]schema.TieredProfile, error) {
	args := m.Called(limit)
	profiles, _ := args.Get(0).([]schema.TieredProfile)
	return profiles, args.Error(1)
}

// GetStatus implements the CalibrationStore interface.
func (m *MockCalibrationStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the CalibrationStore interface.
func (m *MockCalibrationStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
