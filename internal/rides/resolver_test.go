package rides_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Roshanpeter07/GLIMCarPool/internal/models"
	"github.com/Roshanpeter07/GLIMCarPool/internal/rides"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newResolver(storageMock *MockStorage) *rides.ResolverService {
	matcher := rides.NewMatcherService(storageMock)
	return rides.NewResolverService(storageMock, matcher)
}

func storedRequest(id uint, identity, location, date, timeStr string) *models.RideRequest {
	req := pendingRequest(identity, location, date, timeStr)
	req.ID = id
	return &req
}

// TestConfirmCreatesNewGroup verifies that confirming a request with no
// grouped matches mints exactly one new group and stamps the request with it.
func TestConfirmCreatesNewGroup(t *testing.T) {
	// Arrange
	storageMock := new(MockStorage)
	resolver := newResolver(storageMock)

	req := storedRequest(7, "111", "Library", "2024-05-01", "10:00")
	storageMock.On("FindLatestRequestByIdentity", "111").Return(req, nil)
	storageMock.On("AcquireConfirmLock", mock.AnythingOfType("string")).Return(true, nil)
	storageMock.On("ReleaseConfirmLock", mock.AnythingOfType("string")).Return(nil)
	storageMock.On("ListRequests").Return([]models.RideRequest{*req}, nil)
	storageMock.On("SaveGroup", mock.AnythingOfType("*models.Group")).Return(nil)
	storageMock.On("AssignRequestGroup", uint(7), mock.AnythingOfType("string")).Return(nil)

	// Act
	groupID, err := resolver.Confirm("111")

	// Assert
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(groupID, "GRP-"), "group id should carry the GRP- prefix")
	storageMock.AssertNumberOfCalls(t, "SaveGroup", 1)

	saved := storageMock.Calls[findCall(storageMock, "SaveGroup")].Arguments.Get(0).(*models.Group)
	assert.Equal(t, groupID, saved.GroupID)
	assert.Equal(t, "Library", saved.Location)
	assert.Equal(t, "2024-05-01", saved.Date)
	assert.Equal(t, "111", saved.FounderIdentity)
	assert.Equal(t, models.GroupStateForming, saved.State)

	storageMock.AssertCalled(t, "AssignRequestGroup", uint(7), groupID)
}

// TestConfirmReusesExistingGroup verifies that confirming a request whose
// cluster already carries a group joins it instead of minting a second one.
func TestConfirmReusesExistingGroup(t *testing.T) {
	// Arrange
	storageMock := new(MockStorage)
	resolver := newResolver(storageMock)

	second := storedRequest(8, "222", "library", "2024-05-01", "11:30")
	first := pendingRequest("111", "Library", "2024-05-01", "10:00")
	first.Status = models.StatusConfirmed
	first.GroupRef = "GRP-abc123"

	storageMock.On("FindLatestRequestByIdentity", "222").Return(second, nil)
	storageMock.On("AcquireConfirmLock", mock.AnythingOfType("string")).Return(true, nil)
	storageMock.On("ReleaseConfirmLock", mock.AnythingOfType("string")).Return(nil)
	storageMock.On("ListRequests").Return([]models.RideRequest{first, *second}, nil)
	storageMock.On("AssignRequestGroup", uint(8), "GRP-abc123").Return(nil)

	// Act
	groupID, err := resolver.Confirm("222")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "GRP-abc123", groupID)
	storageMock.AssertNotCalled(t, "SaveGroup", mock.Anything)
	storageMock.AssertCalled(t, "AssignRequestGroup", uint(8), "GRP-abc123")
}

// TestConfirmTwiceKeepsGroup verifies that re-confirming an already-confirmed
// request returns its existing group without minting or writing anything.
// The confirmation context outlives one turn, so a sole cluster member saying
// "Yes" twice must not end up founding a second group.
func TestConfirmTwiceKeepsGroup(t *testing.T) {
	// Arrange
	storageMock := new(MockStorage)
	resolver := newResolver(storageMock)

	req := storedRequest(7, "111", "Library", "2024-05-01", "10:00")
	req.Status = models.StatusConfirmed
	req.GroupRef = "GRP-first"
	storageMock.On("FindLatestRequestByIdentity", "111").Return(req, nil)

	// Act
	groupID, err := resolver.Confirm("111")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "GRP-first", groupID)
	storageMock.AssertNotCalled(t, "SaveGroup", mock.Anything)
	storageMock.AssertNotCalled(t, "AssignRequestGroup", mock.Anything, mock.Anything)
	storageMock.AssertNotCalled(t, "AcquireConfirmLock", mock.Anything)
}

// TestConfirmUnknownIdentity verifies the NotFound branch performs no writes.
func TestConfirmUnknownIdentity(t *testing.T) {
	storageMock := new(MockStorage)
	resolver := newResolver(storageMock)
	storageMock.On("FindLatestRequestByIdentity", "999").Return(nil, nil)

	groupID, err := resolver.Confirm("999")

	assert.ErrorIs(t, err, rides.ErrRequestNotFound)
	assert.Empty(t, groupID)
	storageMock.AssertNotCalled(t, "SaveGroup", mock.Anything)
	storageMock.AssertNotCalled(t, "AssignRequestGroup", mock.Anything, mock.Anything)
}

// TestConfirmClusterLocked verifies that a held confirm lock aborts the
// confirmation without scanning or writing.
func TestConfirmClusterLocked(t *testing.T) {
	storageMock := new(MockStorage)
	resolver := newResolver(storageMock)

	req := storedRequest(7, "111", "Library", "2024-05-01", "10:00")
	storageMock.On("FindLatestRequestByIdentity", "111").Return(req, nil)
	storageMock.On("AcquireConfirmLock", mock.AnythingOfType("string")).Return(false, nil)

	_, err := resolver.Confirm("111")

	assert.ErrorIs(t, err, rides.ErrClusterBusy)
	storageMock.AssertNotCalled(t, "ListRequests")
	storageMock.AssertNotCalled(t, "SaveGroup", mock.Anything)
	storageMock.AssertNotCalled(t, "AssignRequestGroup", mock.Anything, mock.Anything)
}

// TestConfirmReleasesLockOnStorageFailure verifies the lock is released even
// when the matcher scan fails mid-confirmation.
func TestConfirmReleasesLockOnStorageFailure(t *testing.T) {
	storageMock := new(MockStorage)
	resolver := newResolver(storageMock)

	req := storedRequest(7, "111", "Library", "2024-05-01", "10:00")
	storageMock.On("FindLatestRequestByIdentity", "111").Return(req, nil)
	storageMock.On("AcquireConfirmLock", mock.AnythingOfType("string")).Return(true, nil)
	storageMock.On("ReleaseConfirmLock", mock.AnythingOfType("string")).Return(nil)
	storageMock.On("ListRequests").Return(nil, errors.New("connection refused"))

	_, err := resolver.Confirm("111")

	assert.Error(t, err)
	storageMock.AssertCalled(t, "ReleaseConfirmLock", mock.AnythingOfType("string"))
}

// TestRejectLeavesRequestPending verifies rejection mutates nothing.
func TestRejectLeavesRequestPending(t *testing.T) {
	storageMock := new(MockStorage)
	resolver := newResolver(storageMock)

	req := storedRequest(7, "111", "Library", "2024-05-01", "10:00")
	storageMock.On("FindLatestRequestByIdentity", "111").Return(req, nil)

	err := resolver.Reject("111")

	assert.NoError(t, err)
	storageMock.AssertNotCalled(t, "SaveGroup", mock.Anything)
	storageMock.AssertNotCalled(t, "AssignRequestGroup", mock.Anything, mock.Anything)
}

// TestRejectUnknownIdentity verifies rejecting an unknown identity reports
// NotFound.
func TestRejectUnknownIdentity(t *testing.T) {
	storageMock := new(MockStorage)
	resolver := newResolver(storageMock)
	storageMock.On("FindLatestRequestByIdentity", "999").Return(nil, nil)

	err := resolver.Reject("999")

	assert.ErrorIs(t, err, rides.ErrRequestNotFound)
}

// findCall returns the index of the first recorded call with the given method
// name.
func findCall(m *MockStorage, method string) int {
	for i, call := range m.Calls {
		if call.Method == method {
			return i
		}
	}
	return -1
}
