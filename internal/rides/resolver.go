package rides

import (
	"errors"
	"log"
	"strings"

	"github.com/Roshanpeter07/GLIMCarPool/internal/dialogflow"
	"github.com/Roshanpeter07/GLIMCarPool/internal/models"
	"github.com/Roshanpeter07/GLIMCarPool/internal/storage"

	"github.com/google/uuid"
)

var (
	// ErrRequestNotFound means the identity has no stored ride request.
	ErrRequestNotFound = errors.New("ride request not found")
	// ErrClusterBusy means another confirmation for the same cluster holds
	// the confirm lock right now.
	ErrClusterBusy = errors.New("cluster confirmation in progress")
)

// ResolverService commits a pending request to a group. It reuses the group
// of any already-confirmed cluster member and mints a new one otherwise, so a
// cluster ends up with exactly one group no matter in which order its members
// confirm.
type ResolverService struct {
	Storage storage.Storage
	Matcher *MatcherService
}

// NewResolverService creates a new Resolver.
func NewResolverService(s storage.Storage, matcher *MatcherService) *ResolverService {
	return &ResolverService{Storage: s, Matcher: matcher}
}

// Confirm marks the identity's request as Confirmed and returns the group it
// was assigned to. The whole scan-then-write sequence runs under a
// per-cluster lock: without it, two members confirming concurrently would
// both observe "no group yet" and split the cluster into two groups.
func (r *ResolverService) Confirm(identity string) (string, error) {
	req, err := r.Storage.FindLatestRequestByIdentity(identity)
	if err != nil {
		return "", err
	}
	if req == nil {
		return "", ErrRequestNotFound
	}
	// Re-confirmation is a no-op: the confirmation context survives two
	// turns, so a member can say "Yes" twice. Minting again here would
	// split the cluster into a second group.
	if req.GroupRef != "" {
		return req.GroupRef, nil
	}

	lockKey := clusterKey(req.Location, req.Date)
	acquired, err := r.Storage.AcquireConfirmLock(lockKey)
	if err != nil {
		return "", err
	}
	if !acquired {
		return "", ErrClusterBusy
	}
	defer func() {
		if err := r.Storage.ReleaseConfirmLock(lockKey); err != nil {
			log.Printf("ERROR: Failed to release confirm lock %s: %v", lockKey, err)
		}
	}()

	matches, err := r.Matcher.FindMatches(req.Location, req.Date, req.Time, identity)
	if err != nil {
		return "", err
	}

	groupID := ""
	for _, match := range matches {
		if match.GroupRef != "" {
			groupID = match.GroupRef
			break
		}
	}

	if groupID == "" {
		groupID = "GRP-" + uuid.New().String()
		group := &models.Group{
			GroupID:         groupID,
			Location:        req.Location,
			Date:            dialogflow.NormalizeDate(req.Date),
			Time:            req.Time,
			FounderIdentity: req.Identity,
			State:           models.GroupStateForming,
		}
		if err := r.Storage.SaveGroup(group); err != nil {
			return "", err
		}
		log.Printf("INFO: New group %s founded by %s for %s on %s", groupID, identity, req.Location, group.Date)
	}

	if err := r.Storage.AssignRequestGroup(req.ID, groupID); err != nil {
		return "", err
	}
	return groupID, nil
}

// Reject leaves the identity's request untouched: the status stays Pending
// and no group is assigned. It only verifies that a request exists.
func (r *ResolverService) Reject(identity string) error {
	req, err := r.Storage.FindLatestRequestByIdentity(identity)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrRequestNotFound
	}
	return nil
}

// clusterKey buckets confirmations by location and date. Every member of a
// cluster shares both, so serializing on this key is enough to keep a
// cluster from forming two groups.
func clusterKey(location, date string) string {
	return "confirm:" + strings.ToLower(location) + "|" + dialogflow.NormalizeDate(date)
}
