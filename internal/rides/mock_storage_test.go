package rides_test

import (
	"github.com/Roshanpeter07/GLIMCarPool/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveRequest(req *models.RideRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockStorage) ListRequests() ([]models.RideRequest, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RideRequest), args.Error(1)
}

func (m *MockStorage) FindLatestRequestByIdentity(identity string) (*models.RideRequest, error) {
	args := m.Called(identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RideRequest), args.Error(1)
}

func (m *MockStorage) AssignRequestGroup(requestID uint, groupID string) error {
	args := m.Called(requestID, groupID)
	return args.Error(0)
}

func (m *MockStorage) SaveGroup(group *models.Group) error {
	args := m.Called(group)
	return args.Error(0)
}

func (m *MockStorage) ListGroups() ([]models.Group, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockStorage) ListGroupsByDate(date string) ([]models.Group, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockStorage) AcquireConfirmLock(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) ReleaseConfirmLock(key string) error {
	args := m.Called(key)
	return args.Error(0)
}
